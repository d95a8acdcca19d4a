package service

import "errors"

// Domain violation messages double as admin-facing copy: the UI surfaces
// them verbatim.
var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrBookingNotFound      = errors.New("Booking not found")
	ErrMatchNotFound        = errors.New("Match not found")
	ErrListingNotFound      = errors.New("Listing not found")
	ErrNoMatchForBooking    = errors.New("Booking has no associated match")
	ErrPaidRentExists       = errors.New("Cannot revert a booking with paid rent payments")
	ErrAlreadyCancelled     = errors.New("Booking is already cancelled")
	ErrBookingTerminal      = errors.New("Booking is already completed")
	ErrAlreadySigned        = errors.New("Lease is already signed")
	ErrModificationResolved = errors.New("Modification is not pending")
	ErrPaidPaymentImmutable = errors.New("Paid rent payments cannot be modified")
)
