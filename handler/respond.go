package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"campusccms/models"
)

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondWithError sends an error response
func respondWithError(w http.ResponseWriter, statusCode int, errorType, message string) {
	response := models.ErrorResponse{
		Error:   errorType,
		Message: message,
		Code:    statusCode,
	}
	respondWithJSON(w, statusCode, response)
}

// respondServiceError maps service-layer sentinel errors onto HTTP
// status codes. Anything unrecognized is reported as a persistence
// failure.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, models.ErrConflict):
		respondWithError(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, models.ErrFeedbackNotAllowed):
		respondWithError(w, http.StatusUnprocessableEntity, "Not allowed", err.Error())
	case errors.Is(err, models.ErrNoAdmin):
		respondWithError(w, http.StatusServiceUnavailable, "No administrator", err.Error())
	case errors.Is(err, models.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "Forbidden", err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
