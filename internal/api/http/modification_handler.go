package http

import (
	"encoding/json"
	"net/http"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/service"
)

type ModificationHandler struct {
	modSvc service.ModificationService
}

func NewModificationHandler(modSvc service.ModificationService) *ModificationHandler {
	return &ModificationHandler{modSvc: modSvc}
}

type bookingModificationRequest struct {
	NewStartDate        *string `json:"new_start_date,omitempty"`
	NewEndDate          *string `json:"new_end_date,omitempty"`
	NewMonthlyRentCents *int32  `json:"new_monthly_rent_cents,omitempty"`
	Reason              string  `json:"reason"`
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *ModificationHandler) RequestBookingModification(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid booking id")
		return
	}
	var req bookingModificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	start, err := parseOptionalDate(req.NewStartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	end, err := parseOptionalDate(req.NewEndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	mod := &domain.BookingModification{
		BookingID:           bookingID,
		NewStartDate:        start,
		NewEndDate:          end,
		NewMonthlyRentCents: req.NewMonthlyRentCents,
		Reason:              req.Reason,
	}
	if err := h.modSvc.RequestBookingModification(r.Context(), callerID(r), mod); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mod)
}

func (h *ModificationHandler) ApproveBookingModification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid modification id")
		return
	}
	if err := h.modSvc.ApproveBookingModification(r.Context(), callerID(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"approved": true})
}

func (h *ModificationHandler) RejectBookingModification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid modification id")
		return
	}
	if err := h.modSvc.RejectBookingModification(r.Context(), callerID(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"rejected": true})
}

type paymentModificationRequest struct {
	NewAmountCents *int32  `json:"new_amount_cents,omitempty"`
	NewDueDate     *string `json:"new_due_date,omitempty"`
	Reason         string  `json:"reason"`
}

func (h *ModificationHandler) RequestPaymentModification(w http.ResponseWriter, r *http.Request) {
	paymentID, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid rent payment id")
		return
	}
	var req paymentModificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	due, err := parseOptionalDate(req.NewDueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	mod := &domain.PaymentModification{
		RentPaymentID:  paymentID,
		NewAmountCents: req.NewAmountCents,
		NewDueDate:     due,
		Reason:         req.Reason,
	}
	if err := h.modSvc.RequestPaymentModification(r.Context(), callerID(r), mod); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mod)
}

func (h *ModificationHandler) ApprovePaymentModification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid modification id")
		return
	}
	if err := h.modSvc.ApprovePaymentModification(r.Context(), callerID(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"approved": true})
}

func (h *ModificationHandler) RejectPaymentModification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid modification id")
		return
	}
	if err := h.modSvc.RejectPaymentModification(r.Context(), callerID(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"rejected": true})
}
