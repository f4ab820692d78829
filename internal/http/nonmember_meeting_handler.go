package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/yamp/internal/application"
)

type nonMemberMeetingService interface {
	Create(ctx context.Context, input application.CreateNonMemberMeetingInput) (string, error)
	GetByID(ctx context.Context, id string) (application.NonMemberMeeting, error)
	GetAll(ctx context.Context) ([]application.NonMemberMeeting, error)
	Update(ctx context.Context, input application.UpdateNonMemberMeetingInput) error
	DeleteOne(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// NonMemberMeetingHandler serves the anonymous meeting routes. The anonymous
// surface acknowledges mutations with a JSON `true` and reports every failure
// as a bare 500.
type NonMemberMeetingHandler struct {
	service   nonMemberMeetingService
	responder responder
	logger    *slog.Logger
}

func NewNonMemberMeetingHandler(service nonMemberMeetingService, logger *slog.Logger) *NonMemberMeetingHandler {
	base := defaultLogger(logger)
	return &NonMemberMeetingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *NonMemberMeetingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "NonMemberMeetingHandler", operation, attrs...)
}

func (h *NonMemberMeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req nonMemberMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	logger := h.log(r.Context(), "Create")

	id, err := h.service.Create(r.Context(), application.CreateNonMemberMeetingInput{
		MeetingName:           req.MeetingName,
		MeetingDescription:    req.MeetingDescription,
		UserName:              req.UserName,
		UserEmail:             req.UserEmail,
		ProposedDatesAndTimes: req.ProposedDatesAndTimes,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "non-member meeting creation failed", "error", err)
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	logger.With("meeting_id", id).InfoContext(r.Context(), "non-member meeting created")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"meetingId": id})
}

func (h *NonMemberMeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	meetings, err := h.service.GetAll(r.Context())
	if err != nil {
		h.log(r.Context(), "List").ErrorContext(r.Context(), "non-member meeting list failed", "error", err)
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toNonMemberMeetingDTOs(meetings))
}

func (h *NonMemberMeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	meetingID, _ := MeetingIDFromContext(r.Context())
	meeting, err := h.service.GetByID(r.Context(), meetingID)
	if err != nil {
		h.log(r.Context(), "Get", "meeting_id", meetingID).ErrorContext(r.Context(), "non-member meeting lookup failed", "error", err)
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toNonMemberMeetingDTO(meeting))
}

func (h *NonMemberMeetingHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	meetingID, _ := MeetingIDFromContext(r.Context())

	var req nonMemberMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	logger := h.log(r.Context(), "Update", "meeting_id", meetingID)

	if err := h.service.Update(r.Context(), application.UpdateNonMemberMeetingInput{
		MeetingID:             meetingID,
		MeetingName:           req.MeetingName,
		MeetingDescription:    req.MeetingDescription,
		UserName:              req.UserName,
		UserEmail:             req.UserEmail,
		ProposedDatesAndTimes: req.ProposedDatesAndTimes,
	}); err != nil {
		logger.ErrorContext(r.Context(), "non-member meeting update failed", "error", err)
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "non-member meeting updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, true)
}

func (h *NonMemberMeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	meetingID, _ := MeetingIDFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "meeting_id", meetingID)

	if err := h.service.DeleteOne(r.Context(), meetingID); err != nil {
		logger.ErrorContext(r.Context(), "non-member meeting delete failed", "error", err)
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "non-member meeting deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, true)
}

func (h *NonMemberMeetingHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "DeleteAll")
	if err := h.service.DeleteAll(r.Context()); err != nil {
		logger.ErrorContext(r.Context(), "non-member meeting purge failed", "error", err)
		h.responder.handleOpaqueError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "all non-member meetings deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, true)
}

type nonMemberMeetingRequest struct {
	MeetingName           *string                  `json:"meetingName"`
	MeetingDescription    *string                  `json:"meetingDescription"`
	UserName              *string                  `json:"userName"`
	UserEmail             *string                  `json:"userEmail"`
	ProposedDatesAndTimes *[]application.TimeRange `json:"proposedDatesAndTimes"`
}

type nonMemberMeetingDTO struct {
	MeetingID             string                  `json:"meeting_id"`
	MeetingName           string                  `json:"meeting_name"`
	MeetingDescription    *string                 `json:"meeting_description"`
	UserName              string                  `json:"user_name"`
	UserEmail             string                  `json:"user_email"`
	ProposedDatesAndTimes []application.TimeRange `json:"proposed_dates_and_times"`
	CreatedAt             string                  `json:"created_at"`
	UpdatedAt             string                  `json:"updated_at"`
}

func toNonMemberMeetingDTO(meeting application.NonMemberMeeting) nonMemberMeetingDTO {
	return nonMemberMeetingDTO{
		MeetingID:             meeting.ID,
		MeetingName:           meeting.MeetingName,
		MeetingDescription:    meeting.MeetingDescription,
		UserName:              meeting.UserName,
		UserEmail:             meeting.UserEmail,
		ProposedDatesAndTimes: meeting.ProposedDatesAndTimes,
		CreatedAt:             meeting.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:             meeting.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toNonMemberMeetingDTOs(meetings []application.NonMemberMeeting) []nonMemberMeetingDTO {
	out := make([]nonMemberMeetingDTO, 0, len(meetings))
	for _, meeting := range meetings {
		out = append(out, toNonMemberMeetingDTO(meeting))
	}
	return out
}
