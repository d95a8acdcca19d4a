package service

import (
	"context"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/lease"
	"rentmatch-backend/internal/pricing"
	"rentmatch-backend/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// BulkCancelResult is one item's outcome in a bulk cancel. Failures never
// abort the remaining items.
type BulkCancelResult struct {
	BookingID int32  `json:"booking_id"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

type BookingAdminService interface {
	GetAllBookings(ctx context.Context, adminID int32, filter repository.BookingFilter) ([]domain.Booking, int32, error)
	CancelBooking(ctx context.Context, adminID, bookingID int32, reason string) (*domain.Booking, error)
	RevertBookingToMatch(ctx context.Context, adminID, bookingID int32, reason string) error
	UpdateBookingDetails(ctx context.Context, adminID, bookingID int32, update repository.BookingUpdate) (*domain.Booking, error)
	BulkCancelBookings(ctx context.Context, adminID int32, bookingIDs []int32, reason string) []BulkCancelResult
}

type ListingAdminService interface {
	GetAllListings(ctx context.Context, adminID int32, filter repository.ListingFilter) ([]domain.ListingWithHost, int32, error)
	UpdateListing(ctx context.Context, adminID, listingID int32, updated *domain.Listing, tiers []domain.MonthlyPricing, comment string) (*domain.Listing, error)
	CopyListingToAdmin(ctx context.Context, adminID, listingID int32) (*domain.Listing, error)
}

// MatchView is the response shape for match reads: the match plus everything
// the signing/payment client needs to render its current step.
type MatchView struct {
	Match     *domain.Match      `json:"match"`
	Listing   *domain.Listing    `json:"listing"`
	Trip      *domain.Trip       `json:"trip"`
	Breakdown *pricing.Breakdown `json:"breakdown,omitempty"`
	Step      lease.Step         `json:"step"`
	// PendingBooking marks a payment-authorized, half-signed match that has
	// not produced a booking yet.
	PendingBooking bool `json:"pending_booking"`
}

type MatchService interface {
	GetMatch(ctx context.Context, userID, matchID int32) (*MatchView, error)
	RecordTenantSignature(ctx context.Context, userID, matchID int32) (*MatchView, error)
	AuthorizeExistingPayment(ctx context.Context, userID, matchID int32) (*MatchView, error)
}

type ModificationService interface {
	RequestBookingModification(ctx context.Context, requestorID int32, mod *domain.BookingModification) error
	ApproveBookingModification(ctx context.Context, userID, modificationID int32) error
	RejectBookingModification(ctx context.Context, userID, modificationID int32) error

	RequestPaymentModification(ctx context.Context, requestorID int32, mod *domain.PaymentModification) error
	ApprovePaymentModification(ctx context.Context, userID, modificationID int32) error
	RejectPaymentModification(ctx context.Context, userID, modificationID int32) error
}

type DocumentService interface {
	GetDocument(ctx context.Context, userID, documentID int32) (*domain.LeaseDocument, error)
	ListListingDocuments(ctx context.Context, userID, listingID int32) ([]domain.LeaseDocument, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendBookingCancelledNotification(ctx context.Context, email, name, listingTitle, reason string) error
	SendBookingRevertedNotification(ctx context.Context, email, name, listingTitle, reason string) error
	SendBookingUpdatedNotification(ctx context.Context, email, name, listingTitle, changeSummary string) error
	SendBookingConfirmedNotification(ctx context.Context, email, name, listingTitle string, startDate, endDate time.Time) error
	SendListingUpdatedNotification(ctx context.Context, email, name, listingTitle, comment string) error
	SendRentDueReminder(ctx context.Context, email, name string, amountCents int32, dueDate time.Time) error
}
