package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"soko/apperrors"
)

type M map[string]any

// RespondWithJSON writes payload as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"error": msg})
}

// RespondError maps domain errors onto HTTP responses. Validation errors
// include the full field list so callers can render per-field feedback.
func RespondError(w http.ResponseWriter, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		RespondWithJSON(w, http.StatusUnprocessableEntity, M{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
		return
	}

	var serr *apperrors.StorageError
	if errors.As(err, &serr) {
		log.Printf("storage error: %v", serr)
		RespondWithError(w, http.StatusServiceUnavailable, "storage temporarily unavailable")
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, "not found")
	case errors.Is(err, apperrors.ErrForbidden):
		RespondWithError(w, http.StatusForbidden, "forbidden")
	default:
		log.Printf("unhandled error: %v", err)
		RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
