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

type invitationService interface {
	Create(ctx context.Context, input application.CreateInvitationInput) (application.Invitation, error)
	GetByID(ctx context.Context, id string) (application.Invitation, error)
	GetAll(ctx context.Context) ([]application.Invitation, error)
	GetAllByMeetingID(ctx context.Context, meetingID string) ([]application.Invitation, error)
	Update(ctx context.Context, input application.UpdateInvitationInput) (application.Invitation, error)
	DeleteOne(ctx context.Context, id string) error
	DeleteAllByMeetingID(ctx context.Context, meetingID string) error
	DeleteAll(ctx context.Context) error
}

// InvitationMailer delivers the invitation notification side effect.
type InvitationMailer interface {
	SendInvitation(ctx context.Context, recipientEmail, invitationID string)
}

type InvitationHandler struct {
	service   invitationService
	mailer    InvitationMailer
	responder responder
	logger    *slog.Logger
}

func NewInvitationHandler(service invitationService, mailer InvitationMailer, logger *slog.Logger) *InvitationHandler {
	base := defaultLogger(logger)
	return &InvitationHandler{service: service, mailer: mailer, responder: newResponder(base), logger: base}
}

func (h *InvitationHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "InvitationHandler", operation, attrs...)
}

// Create persists the invitation and fires the notification mail. Delivery is
// asynchronous and never affects the response.
func (h *InvitationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req invitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode invitation request", "error", err)
		h.responder.writeBadRequest(r.Context(), w, "Invalid input!")
		return
	}

	logger := h.log(r.Context(), "Create")

	invitation, err := h.service.Create(r.Context(), application.CreateInvitationInput{
		MeetingID:             req.MeetingID,
		AttendantEmail:        req.AttendantEmail,
		AcceptedDatesAndTimes: req.AcceptedDatesAndTimes,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "invitation creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	if h.mailer != nil {
		go h.mailer.SendInvitation(context.WithoutCancel(r.Context()), invitation.AttendantEmail, invitation.ID)
	}

	logger.With("invitation_id", invitation.ID).InfoContext(r.Context(), "invitation created")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toInvitationDTO(invitation))
}

// List serves both the full collection and the ?meetingId= filter.
func (h *InvitationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if meetingID := strings.TrimSpace(r.URL.Query().Get("meetingId")); meetingID != "" {
		logger := h.log(r.Context(), "List", "meeting_id", meetingID)
		invitations, err := h.service.GetAllByMeetingID(r.Context(), meetingID)
		if err != nil {
			logger.ErrorContext(r.Context(), "invitation list failed", "error", err, "error_kind", application.ErrorKind(err))
			h.responder.handleServiceError(r.Context(), w, err)
			return
		}
		h.responder.writeJSON(r.Context(), w, http.StatusOK, toInvitationDTOs(invitations))
		return
	}

	logger := h.log(r.Context(), "List")
	invitations, err := h.service.GetAll(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "invitation list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(invitations)).InfoContext(r.Context(), "invitations listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toInvitationDTOs(invitations))
}

func (h *InvitationHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	invitationID, _ := InvitationIDFromContext(r.Context())
	logger := h.log(r.Context(), "Get", "invitation_id", invitationID)

	invitation, err := h.service.GetByID(r.Context(), invitationID)
	if err != nil {
		logger.ErrorContext(r.Context(), "invitation lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toInvitationDTO(invitation))
}

func (h *InvitationHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	invitationID, _ := InvitationIDFromContext(r.Context())

	var req invitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log(r.Context(), "Update", "invitation_id", invitationID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode invitation update", "error", err)
		h.responder.writeBadRequest(r.Context(), w, "Invalid input!")
		return
	}

	logger := h.log(r.Context(), "Update", "invitation_id", invitationID)

	invitation, err := h.service.Update(r.Context(), application.UpdateInvitationInput{
		InvitationID:          invitationID,
		MeetingID:             req.MeetingID,
		AttendantEmail:        req.AttendantEmail,
		AcceptedDatesAndTimes: req.AcceptedDatesAndTimes,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "invitation update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "invitation updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toInvitationDTO(invitation))
}

func (h *InvitationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	invitationID, _ := InvitationIDFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "invitation_id", invitationID)

	if err := h.service.DeleteOne(r.Context(), invitationID); err != nil {
		logger.ErrorContext(r.Context(), "invitation delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "invitation deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, messageResponse{
		Message: "Invitation " + invitationID + " was deleted successfully!",
	})
}

// DeleteAll serves both the full purge and the ?meetingId= scoped purge.
func (h *InvitationHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if meetingID := strings.TrimSpace(r.URL.Query().Get("meetingId")); meetingID != "" {
		logger := h.log(r.Context(), "DeleteAll", "meeting_id", meetingID)
		if err := h.service.DeleteAllByMeetingID(r.Context(), meetingID); err != nil {
			logger.ErrorContext(r.Context(), "invitation purge failed", "error", err, "error_kind", application.ErrorKind(err))
			h.responder.handleServiceError(r.Context(), w, err)
			return
		}
		logger.InfoContext(r.Context(), "meeting invitations deleted")
		h.responder.writeJSON(r.Context(), w, http.StatusOK, messageResponse{
			Message: "All invitations to meeting " + meetingID + " have been deleted!",
		})
		return
	}

	logger := h.log(r.Context(), "DeleteAll")
	if err := h.service.DeleteAll(r.Context()); err != nil {
		logger.ErrorContext(r.Context(), "invitation purge failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "all invitations deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "All invitations have been deleted!"})
}

type invitationRequest struct {
	MeetingID             *string                  `json:"meetingId"`
	AttendantEmail        *string                  `json:"attendantEmail"`
	AcceptedDatesAndTimes *[]application.TimeRange `json:"acceptedDatesAndTimes"`
}

type invitationDTO struct {
	InvitationID          string                  `json:"invitation_id"`
	MeetingID             string                  `json:"meeting_id"`
	AttendantEmail        string                  `json:"attendant_email"`
	AcceptedDatesAndTimes []application.TimeRange `json:"accepted_dates_and_times"`
	CreatedAt             string                  `json:"created_at"`
	UpdatedAt             string                  `json:"updated_at"`
}

func toInvitationDTO(invitation application.Invitation) invitationDTO {
	return invitationDTO{
		InvitationID:          invitation.ID,
		MeetingID:             invitation.MeetingID,
		AttendantEmail:        invitation.AttendantEmail,
		AcceptedDatesAndTimes: invitation.AcceptedDatesAndTimes,
		CreatedAt:             invitation.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:             invitation.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toInvitationDTOs(invitations []application.Invitation) []invitationDTO {
	out := make([]invitationDTO, 0, len(invitations))
	for _, invitation := range invitations {
		out = append(out, toInvitationDTO(invitation))
	}
	return out
}
