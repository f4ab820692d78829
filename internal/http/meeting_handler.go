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

type meetingService interface {
	Create(ctx context.Context, input application.CreateMeetingInput) (application.Meeting, error)
	GetByID(ctx context.Context, id string) (application.Meeting, error)
	GetAll(ctx context.Context) ([]application.Meeting, error)
	GetAllByUserID(ctx context.Context, userID string) ([]application.Meeting, error)
	Update(ctx context.Context, input application.UpdateMeetingInput) (application.Meeting, error)
	DeleteOne(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type MeetingHandler struct {
	service   meetingService
	responder responder
	logger    *slog.Logger
}

func NewMeetingHandler(service meetingService, logger *slog.Logger) *MeetingHandler {
	base := defaultLogger(logger)
	return &MeetingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *MeetingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "MeetingHandler", operation, attrs...)
}

func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req meetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode meeting request", "error", err)
		h.responder.writeBadRequest(r.Context(), w, "Invalid input!")
		return
	}

	logger := h.log(r.Context(), "Create")

	meeting, err := h.service.Create(r.Context(), application.CreateMeetingInput{
		MeetingName:           req.MeetingName,
		MeetingDescription:    req.MeetingDescription,
		InitiatedBy:           req.InitiatedBy,
		ProposedDatesAndTimes: req.ProposedDatesAndTimes,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "meeting creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("meeting_id", meeting.ID).InfoContext(r.Context(), "meeting created")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMeetingDTO(meeting))
}

// List serves both the full collection and the ?initiatedBy= filter.
func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if initiatedBy := strings.TrimSpace(r.URL.Query().Get("initiatedBy")); initiatedBy != "" {
		logger := h.log(r.Context(), "List", "initiated_by", initiatedBy)
		meetings, err := h.service.GetAllByUserID(r.Context(), initiatedBy)
		if err != nil {
			logger.ErrorContext(r.Context(), "meeting list failed", "error", err, "error_kind", application.ErrorKind(err))
			h.responder.handleServiceError(r.Context(), w, err)
			return
		}
		h.responder.writeJSON(r.Context(), w, http.StatusOK, toMeetingDTOs(meetings))
		return
	}

	logger := h.log(r.Context(), "List")
	meetings, err := h.service.GetAll(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "meeting list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(meetings)).InfoContext(r.Context(), "meetings listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMeetingDTOs(meetings))
}

func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	meetingID, _ := MeetingIDFromContext(r.Context())
	logger := h.log(r.Context(), "Get", "meeting_id", meetingID)

	meeting, err := h.service.GetByID(r.Context(), meetingID)
	if err != nil {
		logger.ErrorContext(r.Context(), "meeting lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMeetingDTO(meeting))
}

func (h *MeetingHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	meetingID, _ := MeetingIDFromContext(r.Context())

	var req meetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log(r.Context(), "Update", "meeting_id", meetingID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode meeting update", "error", err)
		h.responder.writeBadRequest(r.Context(), w, "Invalid input!")
		return
	}

	logger := h.log(r.Context(), "Update", "meeting_id", meetingID)

	meeting, err := h.service.Update(r.Context(), application.UpdateMeetingInput{
		MeetingID:             meetingID,
		MeetingName:           req.MeetingName,
		MeetingDescription:    req.MeetingDescription,
		InitiatedBy:           req.InitiatedBy,
		ProposedDatesAndTimes: req.ProposedDatesAndTimes,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "meeting update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "meeting updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMeetingDTO(meeting))
}

func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	meetingID, _ := MeetingIDFromContext(r.Context())
	logger := h.log(r.Context(), "Delete", "meeting_id", meetingID)

	if err := h.service.DeleteOne(r.Context(), meetingID); err != nil {
		logger.ErrorContext(r.Context(), "meeting delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "meeting deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, messageResponse{
		Message: "Meeting " + meetingID + " was deleted successfully!",
	})
}

func (h *MeetingHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "DeleteAll")
	if err := h.service.DeleteAll(r.Context()); err != nil {
		logger.ErrorContext(r.Context(), "meeting purge failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "all meetings deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "All meetings have been deleted!"})
}

type meetingRequest struct {
	MeetingName           *string                  `json:"meetingName"`
	MeetingDescription    *string                  `json:"meetingDescription"`
	InitiatedBy           *string                  `json:"initiatedBy"`
	ProposedDatesAndTimes *[]application.TimeRange `json:"proposedDatesAndTimes"`
}

type meetingDTO struct {
	MeetingID             string                  `json:"meeting_id"`
	MeetingName           string                  `json:"meeting_name"`
	MeetingDescription    *string                 `json:"meeting_description"`
	InitiatedBy           string                  `json:"initiated_by"`
	ProposedDatesAndTimes []application.TimeRange `json:"proposed_dates_and_times"`
	CreatedAt             string                  `json:"created_at"`
	UpdatedAt             string                  `json:"updated_at"`
}

func toMeetingDTO(meeting application.Meeting) meetingDTO {
	return meetingDTO{
		MeetingID:             meeting.ID,
		MeetingName:           meeting.MeetingName,
		MeetingDescription:    meeting.MeetingDescription,
		InitiatedBy:           meeting.InitiatedBy,
		ProposedDatesAndTimes: meeting.ProposedDatesAndTimes,
		CreatedAt:             meeting.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:             meeting.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toMeetingDTOs(meetings []application.Meeting) []meetingDTO {
	out := make([]meetingDTO, 0, len(meetings))
	for _, meeting := range meetings {
		out = append(out, toMeetingDTO(meeting))
	}
	return out
}
