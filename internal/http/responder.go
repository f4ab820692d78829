package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/yamp/internal/application"
)

var errMissingSessionToken = errors.New("session token is required")

// errorResponse mirrors the wire shape of the service's serialized errors.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// messageResponse carries the delete-confirmation style payloads.
type messageResponse struct {
	Message string `json:"message"`
}

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeBadRequest(ctx context.Context, w http.ResponseWriter, message string) {
	r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Code: "InvalidInputError", Message: message})
}

// handleServiceError translates service errors into the original wire
// contract: typed errors become 400/404 bodies, credential failures 401, and
// anything else a bare 500.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeJSON(ctx, w, http.StatusInternalServerError, nil)
		return
	}

	var invalid *application.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{
			Code:    "InvalidInputError",
			Message: invalid.Message,
		})
	case errors.Is(err, application.ErrDuplicate):
		r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{
			Code:    "DuplicateError",
			Message: "Resource already exists!",
		})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{
			Code:    "NotFoundError",
			Message: "Resource not found!",
		})
	case errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, application.ErrSessionExpired),
		errors.Is(err, application.ErrSessionRevoked):
		r.writeJSON(ctx, w, http.StatusUnauthorized, nil)
	default:
		r.writeJSON(ctx, w, http.StatusInternalServerError, nil)
	}
}

// handleOpaqueError reports every failure as a server error. The anonymous
// routes never expose error detail.
func (r responder) handleOpaqueError(ctx context.Context, w http.ResponseWriter, err error) {
	r.loggerFor(ctx).ErrorContext(ctx, "request failed", "error", err)
	r.writeJSON(ctx, w, http.StatusInternalServerError, nil)
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}
