package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentmatch-backend/internal/logger"
	"rentmatch-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps service-layer errors onto HTTP statuses. Domain
// violation messages pass through verbatim; everything unrecognized becomes
// an opaque 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrMatchNotFound),
		errors.Is(err, service.ErrListingNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoMatchForBooking),
		errors.Is(err, service.ErrPaidRentExists),
		errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrBookingTerminal),
		errors.Is(err, service.ErrAlreadySigned),
		errors.Is(err, service.ErrModificationResolved),
		errors.Is(err, service.ErrPaidPaymentImmutable):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
