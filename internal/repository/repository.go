package repository

import (
	"context"
	"time"

	"rentmatch-backend/internal/domain"
)

// BookingFilter narrows admin booking queries. Zero values mean "all";
// page/pageSize default to the first page.
type BookingFilter struct {
	Page       int32
	PageSize   int32
	Search     string
	Status     *domain.BookingStatus
	StartAfter *time.Time
	EndBefore  *time.Time
}

// ListingFilter narrows admin listing queries.
type ListingFilter struct {
	Page          int32
	PageSize      int32
	Search        string
	Active        *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// BookingUpdate carries the partial fields an admin may change on a booking.
// Nil fields are left untouched.
type BookingUpdate struct {
	StartDate        *time.Time
	EndDate          *time.Time
	MonthlyRentCents *int32
	Status           *domain.BookingStatus
	Guests           *TripGuests
}

// TripGuests is the optional nested guest-count update.
type TripGuests struct {
	NumAdults   *int32
	NumChildren *int32
	NumPets     *int32
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SoftDelete(ctx context.Context, id int32) error
}

type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) error
	GetByID(ctx context.Context, id int32) (*domain.Trip, error)
	Update(ctx context.Context, trip *domain.Trip) error
}

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id int32) (*domain.Listing, error)
	Update(ctx context.Context, listing *domain.Listing) error
	List(ctx context.Context, filter ListingFilter) ([]domain.Listing, int32, error)
	// ReplacePricing swaps the listing's full tier set in one transaction.
	ReplacePricing(ctx context.Context, listingID int32, tiers []domain.MonthlyPricing) error
	// Copy duplicates the listing with its pricing tiers and image rows under
	// a new owner, in one transaction. Returns the new listing id.
	Copy(ctx context.Context, listingID, newOwnerID int32, titleSuffix string) (int32, error)
}

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id int32) (*domain.Match, error)
	Update(ctx context.Context, match *domain.Match) error
	SetTenantSigned(ctx context.Context, id int32, at time.Time) error
	SetPaymentAuthorized(ctx context.Context, id int32, at time.Time) error
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	GetByMatchID(ctx context.Context, matchID int32) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, int32, error)
	// ListStatusStartedBy returns bookings in the given status whose start
	// date is on or before the cutoff. Used by the activation job.
	ListStatusStartedBy(ctx context.Context, status domain.BookingStatus, cutoff time.Time) ([]domain.Booking, error)
	// ListStatusEndedBy returns bookings in the given status whose end date
	// is before the cutoff. Used by the completion job.
	ListStatusEndedBy(ctx context.Context, status domain.BookingStatus, cutoff time.Time) ([]domain.Booking, error)
	// CreateWithSchedule inserts the booking and its rent payment schedule in
	// one transaction.
	CreateWithSchedule(ctx context.Context, booking *domain.Booking, schedule []domain.RentPayment) error
	// ApplyUpdate applies the partial update and, when rent changes and the
	// booking has a match, propagates the new rent to the match row in the
	// same transaction. Guest-count updates hit the trip row likewise.
	ApplyUpdate(ctx context.Context, booking *domain.Booking, update BookingUpdate) error
	// RevertToMatch hard-deletes the booking's payment transactions, rent
	// payments, and the booking row itself in one transaction. The match row
	// is left untouched. Callers must have verified no rent payment is paid.
	RevertToMatch(ctx context.Context, bookingID int32) error
}

type RentPaymentRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.RentPayment, error)
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.RentPayment, error)
	AnyPaid(ctx context.Context, bookingID int32) (bool, error)
	Update(ctx context.Context, payment *domain.RentPayment) error
	MarkPaid(ctx context.Context, id int32, at time.Time) error
	ListDueUnpaid(ctx context.Context, dueBy time.Time) ([]domain.RentPayment, error)
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type PaymentTransactionRepository interface {
	Create(ctx context.Context, tx *domain.PaymentTransaction) error
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.PaymentTransaction, error)
	ListByMatch(ctx context.Context, matchID int32) ([]domain.PaymentTransaction, error)
}

type ModificationRepository interface {
	CreateBookingModification(ctx context.Context, mod *domain.BookingModification) error
	GetBookingModification(ctx context.Context, id int32) (*domain.BookingModification, error)
	ResolveBookingModification(ctx context.Context, id int32, status domain.ModificationStatus, at time.Time) error
	ListBookingModifications(ctx context.Context, bookingID int32) ([]domain.BookingModification, error)

	CreatePaymentModification(ctx context.Context, mod *domain.PaymentModification) error
	GetPaymentModification(ctx context.Context, id int32) (*domain.PaymentModification, error)
	ResolvePaymentModification(ctx context.Context, id int32, status domain.ModificationStatus, at time.Time) error
	ListPaymentModifications(ctx context.Context, rentPaymentID int32) ([]domain.PaymentModification, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.LeaseDocument) error
	GetByID(ctx context.Context, id int32) (*domain.LeaseDocument, error)
	GetByMatch(ctx context.Context, matchID int32) (*domain.LeaseDocument, error)
	ListByListing(ctx context.Context, listingID int32) ([]domain.LeaseDocument, error)
	Update(ctx context.Context, doc *domain.LeaseDocument) error
}
