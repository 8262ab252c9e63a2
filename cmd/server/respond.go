package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/estimator/internal/export"
	"github.com/Simplici0/estimator/internal/pricing/videotech"
	"github.com/Simplici0/estimator/internal/pricing/webmobile"
	"github.com/Simplici0/estimator/internal/ratecard"
	"github.com/Simplici0/estimator/internal/session"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps err to a status code and writes the JSON error body.
func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		message = "internal error"
	}
	writeJSON(w, s.logger, status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, webmobile.ErrItemNotFound),
		errors.Is(err, ratecard.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, export.ErrNothingToExport),
		errors.Is(err, ratecard.ErrInvalidRate),
		errors.Is(err, videotech.ErrUnknownProfile),
		errors.Is(err, videotech.ErrUnknownPlatform),
		errors.Is(err, videotech.ErrUnknownMargin),
		errors.Is(err, webmobile.ErrUnknownTier),
		errors.Is(err, webmobile.ErrUnknownInfraType),
		errors.Is(err, webmobile.ErrUnknownQA),
		errors.Is(err, webmobile.ErrUnknownPM),
		errors.Is(err, webmobile.ErrUnknownMarkup),
		errors.Is(err, webmobile.ErrDuplicateItemID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
	}
	return nil
}

func wantsText(r *http.Request) bool {
	return r.URL.Query().Get("format") == "text"
}

func writeText(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
}
