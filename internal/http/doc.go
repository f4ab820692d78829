// Package http provides HTTP handlers and middleware for the meeting API.
//
// The router exposes the following endpoints:
//   - POST /login: authenticates {"email","password"} and responds with the
//     user payload. The session token is surfaced via the `X-Session-Token`
//     header and a `session_token` cookie.
//   - GET /logout: revokes the session token extracted from the Authorization
//     header or session cookie, clears the cookie, and responds 200. Logging
//     out without a session still succeeds.
//   - GET /users, POST /users, DELETE /users, GET/PUT/DELETE /users/{id}:
//     member account endpoints exchanging the `userDTO` payload defined in
//     user_handler.go. GET /users?email= performs a single lookup.
//   - GET /meetings, POST /meetings, DELETE /meetings, GET/PUT/DELETE
//     /meetings/{id}: meeting endpoints exchanging the `meetingDTO` payload
//     defined in meeting_handler.go. GET /meetings?initiatedBy= filters by
//     organizer. Deleting a meeting cascades to its invitations.
//   - GET /invitations, POST /invitations, DELETE /invitations,
//     GET/PUT/DELETE /invitations/{id}: invitation endpoints exchanging the
//     `invitationDTO` payload defined in invitation_handler.go. The
//     ?meetingId= query scopes both GET and DELETE on the collection.
//     Creating an invitation fires a notification mail to the attendant.
//   - /nonMemberMeetings and /nonMemberInvitations mirror the member
//     collections for the anonymous flow. Creation responds with just the
//     generated identity, mutations acknowledge with a JSON `true`, and
//     every failure is reported as a bare 500.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
