package domain

import "time"

type BookingStatus string

const (
	BookingStatusReserved  BookingStatus = "RESERVED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Terminal reports whether no further status transitions are allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

type Booking struct {
	ID               int32         `json:"id"`
	TenantID         int32         `json:"tenant_id"`
	ListingID        int32         `json:"listing_id"`
	TripID           int32         `json:"trip_id"`
	MatchID          *int32        `json:"match_id,omitempty"`
	StartDate        time.Time     `json:"start_date"`
	EndDate          time.Time     `json:"end_date"`
	MonthlyRentCents int32         `json:"monthly_rent_cents"`
	Status           BookingStatus `json:"status"`
	CancelReason     string        `json:"cancel_reason,omitempty"`
	CreatedOn        time.Time     `json:"created_on"`
	UpdatedOn        time.Time     `json:"updated_on"`
}
