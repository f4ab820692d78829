package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/yamp/internal/application"
)

type nonMemberInvitationService interface {
	Create(ctx context.Context, input application.CreateNonMemberInvitationInput) (application.NonMemberInvitation, error)
	GetByID(ctx context.Context, id string) (application.NonMemberInvitation, error)
	GetAll(ctx context.Context) ([]application.NonMemberInvitation, error)
	GetAllByMeetingID(ctx context.Context, meetingID string) ([]application.NonMemberInvitation, error)
	Update(ctx context.Context, input application.UpdateNonMemberInvitationInput) error
	DeleteOne(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// NonMemberInvitationHandler serves the anonymous invitation routes. Like the
// anonymous meeting surface, mutations acknowledge with a JSON `true` and
// every failure is a bare 500.
type NonMemberInvitationHandler struct {
	service   nonMemberInvitationService
	mailer    InvitationMailer
	responder responder
	logger    *slog.Logger
}

func NewNonMemberInvitationHandler(service nonMemberInvitationService, mailer InvitationMailer, logger *slog.Logger) *NonMemberInvitationHandler {
	base := defaultLogger(logger)
	return &NonMemberInvitationHandler{service: service, mailer: mailer, responder: newResponder(base), logger: base}
}

func (h *NonMemberInvitationHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "NonMemberInvitationHandler", operation, attrs...)
}

// Create persists the invitation, fires the notification mail, and responds
// with the generated identity.
func (h *NonMemberInvitationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req nonMemberInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	logger := h.log(r.Context(), "Create")

	invitation, err := h.service.Create(r.Context(), application.CreateNonMemberInvitationInput{
		MeetingID:             req.MeetingID,
		AttendantEmail:        req.AttendantEmail,
		AcceptedDatesAndTimes: req.AcceptedDatesAndTimes,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "non-member invitation creation failed", "error", err)
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	if h.mailer != nil {
		go h.mailer.SendInvitation(context.WithoutCancel(r.Context()), invitation.AttendantEmail, invitation.ID)
	}

	logger.With("invitation_id", invitation.ID).InfoContext(r.Context(), "non-member invitation created")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"invitationId": invitation.ID})
}

// List serves both the full collection and the ?meetingId= filter.
func (h *NonMemberInvitationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if meetingID := strings.TrimSpace(r.URL.Query().Get("meetingId")); meetingID != "" {
		invitations, err := h.service.GetAllByMeetingID(r.Context(), meetingID)
		if err != nil {
			h.log(r.Context(), "List", "meeting_id", meetingID).ErrorContext(r.Context(), "non-member invitation list failed", "error", err)
			h.responder.handleOpaqueError(r.Context(), w, err)
			return
		}
		h.responder.writeJSON(r.Context(), w, http.StatusOK, toNonMemberInvitationDTOs(invitations))
		return
	}

	invitations, err := h.service.GetAll(r.Context())
	if err != nil {
		h.log(r.Context(), "List").ErrorContext(r.Context(), "non-member invitation list failed", "error", err)
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toNonMemberInvitationDTOs(invitations))
}

func (h *NonMemberInvitationHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	invitationID, _ := InvitationIDFromContext(r.Context())
	invitation, err := h.service.GetByID(r.Context(), invitationID)
	if err != nil {
		h.log(r.Context(), "Get", "invitation_id", invitationID).ErrorContext(r.Context(), "non-member invitation lookup failed", "error", err)
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toNonMemberInvitationDTO(invitation))
}

func (h *NonMemberInvitationHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	invitationID, _ := InvitationIDFromContext(r.Context())

	var req nonMemberInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	logger := h.log(r.Context(), "Update", "invitation_id", invitationID)

	if err := h.service.Update(r.Context(), application.UpdateNonMemberInvitationInput{
		InvitationID:          invitationID,
		MeetingID:             req.MeetingID,
		AttendantEmail:        req.AttendantEmail,
		AcceptedDatesAndTimes: req.AcceptedDatesAndTimes,
	}); err != nil {
		logger.ErrorContext(r.Context(), "non-member invitation update failed", "error", err)
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "non-member invitation updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, true)
}

func (h *NonMemberInvitationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	invitationID, _ := InvitationIDFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "invitation_id", invitationID)

	if err := h.service.DeleteOne(r.Context(), invitationID); err != nil {
		logger.ErrorContext(r.Context(), "non-member invitation delete failed", "error", err)
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "non-member invitation deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, true)
}

func (h *NonMemberInvitationHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "DeleteAll")
	if err := h.service.DeleteAll(r.Context()); err != nil {
		logger.ErrorContext(r.Context(), "non-member invitation purge failed", "error", err)
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "all non-member invitations deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, true)
}

type nonMemberInvitationRequest struct {
	MeetingID             *string                  `json:"meetingId"`
	AttendantEmail        *string                  `json:"attendantEmail"`
	AcceptedDatesAndTimes *[]application.TimeRange `json:"acceptedDatesAndTimes"`
}

type nonMemberInvitationDTO struct {
	InvitationID          string                  `json:"invitation_id"`
	MeetingID             string                  `json:"meeting_id"`
	AttendantEmail        string                  `json:"attendant_email"`
	AcceptedDatesAndTimes []application.TimeRange `json:"accepted_dates_and_times"`
	CreatedAt             string                  `json:"created_at"`
	UpdatedAt             string                  `json:"updated_at"`
}

func toNonMemberInvitationDTO(invitation application.NonMemberInvitation) nonMemberInvitationDTO {
	return nonMemberInvitationDTO{
		InvitationID:          invitation.ID,
		MeetingID:             invitation.MeetingID,
		AttendantEmail:        invitation.AttendantEmail,
		AcceptedDatesAndTimes: invitation.AcceptedDatesAndTimes,
		CreatedAt:             invitation.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:             invitation.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toNonMemberInvitationDTOs(invitations []application.NonMemberInvitation) []nonMemberInvitationDTO {
	out := make([]nonMemberInvitationDTO, 0, len(invitations))
	for _, invitation := range invitations {
		out = append(out, toNonMemberInvitationDTO(invitation))
	}
	return out
}
