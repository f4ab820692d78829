package http

import (
	"context"

	"github.com/example/yamp/internal/application"
)

type contextKey string

const (
	principalContextKey    contextKey = "principal"
	userIDContextKey       contextKey = "user_id"
	meetingIDContextKey    contextKey = "meeting_id"
	invitationIDContextKey contextKey = "invitation_id"
)

// ContextWithPrincipal returns a derived context containing the authenticated principal.
func ContextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from context if available.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(application.Principal)
	return principal, ok
}

// ContextWithUserID injects the user identifier resolved from the request path.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext extracts a user identifier previously associated with the context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDContextKey).(string)
	return id, ok
}

// ContextWithMeetingID injects the meeting identifier resolved from the request path.
func ContextWithMeetingID(ctx context.Context, meetingID string) context.Context {
	return context.WithValue(ctx, meetingIDContextKey, meetingID)
}

// MeetingIDFromContext extracts a meeting identifier previously associated with the context.
func MeetingIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(meetingIDContextKey).(string)
	return id, ok
}

// ContextWithInvitationID injects the invitation identifier resolved from the request path.
func ContextWithInvitationID(ctx context.Context, invitationID string) context.Context {
	return context.WithValue(ctx, invitationIDContextKey, invitationID)
}

// InvitationIDFromContext extracts an invitation identifier previously associated with the context.
func InvitationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(invitationIDContextKey).(string)
	return id, ok
}
