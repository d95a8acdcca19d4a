package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
	"rentmatch-backend/internal/service"
)

type ListingHandler struct {
	listingSvc service.ListingAdminService
}

func NewListingHandler(listingSvc service.ListingAdminService) *ListingHandler {
	return &ListingHandler{listingSvc: listingSvc}
}

func parseListingFilter(r *http.Request) repository.ListingFilter {
	q := r.URL.Query()
	filter := repository.ListingFilter{Search: q.Get("search")}
	if v, err := strconv.ParseInt(q.Get("page"), 10, 32); err == nil {
		filter.Page = int32(v)
	}
	if v, err := strconv.ParseInt(q.Get("page_size"), 10, 32); err == nil {
		filter.PageSize = int32(v)
	}
	if v := q.Get("active"); v != "" {
		active := v == "true"
		filter.Active = &active
	}
	if v := q.Get("created_after"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.CreatedAfter = &t
		}
	}
	if v := q.Get("created_before"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.CreatedBefore = &t
		}
	}
	return filter
}

type listingListResponse struct {
	Listings []domain.ListingWithHost `json:"listings"`
	Total    int32                    `json:"total"`
}

func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, total, err := h.listingSvc.GetAllListings(r.Context(), callerID(r), parseListingFilter(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listingListResponse{Listings: listings, Total: total})
}

type listingUpdateRequest struct {
	Listing domain.Listing          `json:"listing"`
	Pricing []domain.MonthlyPricing `json:"pricing"`
	Comment string                  `json:"comment"`
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}
	var req listingUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	listing, err := h.listingSvc.UpdateListing(r.Context(), callerID(r), id, &req.Listing, req.Pricing, req.Comment)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) Copy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}

	listing, err := h.listingSvc.CopyListingToAdmin(r.Context(), callerID(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, listing)
}
