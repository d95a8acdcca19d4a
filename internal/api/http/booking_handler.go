package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
	"rentmatch-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingAdminService
}

func NewBookingHandler(bookingSvc service.BookingAdminService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

func pathID(r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil || id < 1 {
		return 0, false
	}
	return int32(id), true
}

func callerID(r *http.Request) int32 {
	claims, _ := ClaimsFromContext(r.Context())
	if claims == nil {
		return 0
	}
	return claims.UserID
}

func parseBookingFilter(r *http.Request) repository.BookingFilter {
	q := r.URL.Query()
	filter := repository.BookingFilter{Search: q.Get("search")}
	if v, err := strconv.ParseInt(q.Get("page"), 10, 32); err == nil {
		filter.Page = int32(v)
	}
	if v, err := strconv.ParseInt(q.Get("page_size"), 10, 32); err == nil {
		filter.PageSize = int32(v)
	}
	if v := q.Get("status"); v != "" {
		status := domain.BookingStatus(v)
		filter.Status = &status
	}
	if v := q.Get("start_after"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartAfter = &t
		}
	}
	if v := q.Get("end_before"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.EndBefore = &t
		}
	}
	return filter
}

type bookingListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int32            `json:"total"`
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, total, err := h.bookingSvc.GetAllBookings(r.Context(), callerID(r), parseBookingFilter(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingListResponse{Bookings: bookings, Total: total})
}

type bookingUpdateRequest struct {
	StartDate        *string               `json:"start_date,omitempty"`
	EndDate          *string               `json:"end_date,omitempty"`
	MonthlyRentCents *int32                `json:"monthly_rent_cents,omitempty"`
	Status           *domain.BookingStatus `json:"status,omitempty"`
	Guests           *guestsUpdate         `json:"guests,omitempty"`
}

type guestsUpdate struct {
	NumAdults   *int32 `json:"num_adults,omitempty"`
	NumChildren *int32 `json:"num_children,omitempty"`
	NumPets     *int32 `json:"num_pets,omitempty"`
}

func (r bookingUpdateRequest) toUpdate() (repository.BookingUpdate, error) {
	update := repository.BookingUpdate{
		MonthlyRentCents: r.MonthlyRentCents,
		Status:           r.Status,
	}
	if r.StartDate != nil {
		t, err := time.Parse("2006-01-02", *r.StartDate)
		if err != nil {
			return update, err
		}
		update.StartDate = &t
	}
	if r.EndDate != nil {
		t, err := time.Parse("2006-01-02", *r.EndDate)
		if err != nil {
			return update, err
		}
		update.EndDate = &t
	}
	if r.Guests != nil {
		update.Guests = &repository.TripGuests{
			NumAdults:   r.Guests.NumAdults,
			NumChildren: r.Guests.NumChildren,
			NumPets:     r.Guests.NumPets,
		}
	}
	return update, nil
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid booking id")
		return
	}
	var req bookingUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	update, err := req.toUpdate()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	booking, err := h.bookingSvc.UpdateBookingDetails(r.Context(), callerID(r), id, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid booking id")
		return
	}
	var req reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	booking, err := h.bookingSvc.CancelBooking(r.Context(), callerID(r), id, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Revert(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid booking id")
		return
	}
	var req reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.bookingSvc.RevertBookingToMatch(r.Context(), callerID(r), id, req.Reason); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"reverted": true})
}

type bulkCancelRequest struct {
	BookingIDs []int32 `json:"booking_ids"`
	Reason     string  `json:"reason"`
}

func (h *BookingHandler) BulkCancel(w http.ResponseWriter, r *http.Request) {
	var req bulkCancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.BookingIDs) == 0 {
		writeError(w, http.StatusBadRequest, "booking_ids is required")
		return
	}

	results := h.bookingSvc.BulkCancelBookings(r.Context(), callerID(r), req.BookingIDs, req.Reason)
	writeJSON(w, http.StatusOK, map[string][]service.BulkCancelResult{"results": results})
}
