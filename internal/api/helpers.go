package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/healthscript/healthscript-backend/internal/model"
	"github.com/healthscript/healthscript-backend/internal/records"
)

const (
	maxJSONBodyBytes = 1 << 20

	msgInternal       = "Internal server error"
	msgInvalidBody    = "Invalid request body"
	msgRequiredFields = "Required fields are missing"
	msgNoUpdateFields = "No valid fields to update"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.Failure(message))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// pathID parses the {id} URL parameter. Anything that is not a positive
// integer cannot name a record.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeRecordsError maps records errors to responses. notFound is the
// resource-specific 404 message.
func (s *Server) writeRecordsError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var fieldErr *records.FieldError
	switch {
	case errors.Is(err, records.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, records.ErrRequiredFields):
		writeError(w, http.StatusBadRequest, msgRequiredFields)
	case errors.Is(err, records.ErrNoUpdateFields):
		writeError(w, http.StatusBadRequest, msgNoUpdateFields)
	case errors.Is(err, records.ErrAppointmentInPast):
		writeError(w, http.StatusBadRequest, "Appointment date must be in the future")
	case errors.As(err, &fieldErr):
		writeError(w, http.StatusBadRequest, fieldErr.Message)
	default:
		s.internalError(w, r, err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, msgInternal)
}

func queryBool(r *http.Request, key string) bool {
	return strings.EqualFold(strings.TrimSpace(r.URL.Query().Get(key)), "true")
}
