package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/logger"
	"rentmatch-backend/internal/repository"
)

type bookingAdminService struct {
	bookingRepo repository.BookingRepository
	paymentRepo repository.RentPaymentRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
	noteRepo    repository.NotificationRepository
}

func NewBookingAdminService(
	bookingRepo repository.BookingRepository,
	paymentRepo repository.RentPaymentRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
) BookingAdminService {
	return &bookingAdminService{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		noteRepo:    noteRepo,
	}
}

// requireAdmin is the single authorization gate for every admin action.
func (s *bookingAdminService) requireAdmin(ctx context.Context, adminID int32) error {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil || !admin.IsAdmin() {
		return ErrUnauthorized
	}
	return nil
}

func (s *bookingAdminService) GetAllBookings(ctx context.Context, adminID int32, filter repository.BookingFilter) ([]domain.Booking, int32, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, 0, err
	}
	return s.bookingRepo.List(ctx, filter)
}

func (s *bookingAdminService) CancelBooking(ctx context.Context, adminID, bookingID int32, reason string) (*domain.Booking, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	// Cancelling twice would fan the notifications out again, so a second
	// cancel is rejected instead of silently repeated.
	if b.Status == domain.BookingStatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if b.Status == domain.BookingStatusCompleted {
		return nil, ErrBookingTerminal
	}

	b.Status = domain.BookingStatusCancelled
	b.CancelReason = reason
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	// Rent payment rows stay untouched for audit regardless of paid status.
	s.notifyCancelled(ctx, b, reason)
	return b, nil
}

func (s *bookingAdminService) RevertBookingToMatch(ctx context.Context, adminID, bookingID int32, reason string) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return err
	}
	if b.MatchID == nil {
		return ErrNoMatchForBooking
	}

	paid, err := s.paymentRepo.AnyPaid(ctx, bookingID)
	if err != nil {
		return err
	}
	if paid {
		return ErrPaidRentExists
	}

	// One transaction deletes transactions, rent payments, and the booking;
	// the match row is left as it was before the booking existed.
	if err := s.bookingRepo.RevertToMatch(ctx, bookingID); err != nil {
		return err
	}

	s.notifyReverted(ctx, b, reason)
	return nil
}

func (s *bookingAdminService) UpdateBookingDetails(ctx context.Context, adminID, bookingID int32, update repository.BookingUpdate) (*domain.Booking, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.Status == domain.BookingStatusCancelled && update.Status == nil {
		return nil, ErrAlreadyCancelled
	}

	summary := describeChanges(b, update)

	// ApplyUpdate also propagates a rent change to the linked match inside
	// the same transaction.
	if err := s.bookingRepo.ApplyUpdate(ctx, b, update); err != nil {
		return nil, err
	}

	if summary != "" {
		s.notifyUpdated(ctx, b, summary)
	}
	return b, nil
}

func (s *bookingAdminService) BulkCancelBookings(ctx context.Context, adminID int32, bookingIDs []int32, reason string) []BulkCancelResult {
	results := make([]BulkCancelResult, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		_, err := s.CancelBooking(ctx, adminID, id, reason)
		res := BulkCancelResult{BookingID: id, Success: err == nil}
		if err != nil {
			res.Error = err.Error()
		}
		results = append(results, res)
	}
	return results
}

// describeChanges renders a human-readable diff of the fields an update
// touches, for the notification messages.
func describeChanges(b *domain.Booking, update repository.BookingUpdate) string {
	var parts []string
	if update.StartDate != nil && !update.StartDate.Equal(b.StartDate) {
		parts = append(parts, fmt.Sprintf("start date %s → %s", b.StartDate.Format("2006-01-02"), update.StartDate.Format("2006-01-02")))
	}
	if update.EndDate != nil && !update.EndDate.Equal(b.EndDate) {
		parts = append(parts, fmt.Sprintf("end date %s → %s", b.EndDate.Format("2006-01-02"), update.EndDate.Format("2006-01-02")))
	}
	if update.MonthlyRentCents != nil && *update.MonthlyRentCents != b.MonthlyRentCents {
		parts = append(parts, fmt.Sprintf("monthly rent %s → %s", formatCents(b.MonthlyRentCents), formatCents(*update.MonthlyRentCents)))
	}
	if update.Status != nil && *update.Status != b.Status {
		parts = append(parts, fmt.Sprintf("status %s → %s", b.Status, *update.Status))
	}
	if update.Guests != nil {
		parts = append(parts, "guest counts updated")
	}
	return strings.Join(parts, ", ")
}

func formatCents(cents int32) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// parties resolves the booking's tenant and host for notification fan-out.
// A soft-deleted host simply drops out of the fan-out.
func (s *bookingAdminService) parties(ctx context.Context, b *domain.Booking) (tenant, host *domain.User, listingTitle string) {
	tenant, _ = s.userRepo.GetByID(ctx, b.TenantID)
	listing, err := s.listingRepo.GetByID(ctx, b.ListingID)
	if err != nil {
		return tenant, nil, ""
	}
	listingTitle = listing.Title
	host, _ = s.userRepo.GetByID(ctx, listing.HostID)
	if host != nil && host.DeletedOn != nil {
		host = nil
	}
	return tenant, host, listingTitle
}

func (s *bookingAdminService) notifyCancelled(ctx context.Context, b *domain.Booking, reason string) {
	tenant, host, title := s.parties(ctx, b)
	for _, u := range []*domain.User{tenant, host} {
		if u == nil {
			continue
		}
		if err := s.emailSvc.SendBookingCancelledNotification(ctx, u.Email, u.Name, title, reason); err != nil {
			logger.Error("Failed to send cancellation email", "booking_id", b.ID, "user_id", u.ID, "error", err)
		}
		notif := &domain.Notification{
			UserID:  u.ID,
			Title:   "Booking Cancelled",
			Message: fmt.Sprintf("Your booking for %s was cancelled: %s", title, reason),
			Attributes: map[string]string{
				"type":       "BOOKING_CANCELLED",
				"booking_id": fmt.Sprintf("%d", b.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}
}

func (s *bookingAdminService) notifyReverted(ctx context.Context, b *domain.Booking, reason string) {
	tenant, host, title := s.parties(ctx, b)
	for _, u := range []*domain.User{tenant, host} {
		if u == nil {
			continue
		}
		if err := s.emailSvc.SendBookingRevertedNotification(ctx, u.Email, u.Name, title, reason); err != nil {
			logger.Error("Failed to send revert email", "booking_id", b.ID, "user_id", u.ID, "error", err)
		}
		notif := &domain.Notification{
			UserID:  u.ID,
			Title:   "Booking Reverted",
			Message: fmt.Sprintf("Your booking for %s was reverted to a match: %s", title, reason),
			Attributes: map[string]string{
				"type":     "BOOKING_REVERTED",
				"match_id": fmt.Sprintf("%d", *b.MatchID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}
}

func (s *bookingAdminService) notifyUpdated(ctx context.Context, b *domain.Booking, summary string) {
	tenant, host, title := s.parties(ctx, b)
	for _, u := range []*domain.User{tenant, host} {
		if u == nil {
			continue
		}
		if err := s.emailSvc.SendBookingUpdatedNotification(ctx, u.Email, u.Name, title, summary); err != nil {
			logger.Error("Failed to send update email", "booking_id", b.ID, "user_id", u.ID, "error", err)
		}
		notif := &domain.Notification{
			UserID:  u.ID,
			Title:   "Booking Updated",
			Message: fmt.Sprintf("Your booking for %s was updated: %s", title, summary),
			Attributes: map[string]string{
				"type":       "BOOKING_UPDATED",
				"booking_id": fmt.Sprintf("%d", b.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}
}
