package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/logger"
	"rentmatch-backend/internal/repository"
)

type modificationService struct {
	modRepo     repository.ModificationRepository
	bookingRepo repository.BookingRepository
	paymentRepo repository.RentPaymentRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
}

func NewModificationService(
	modRepo repository.ModificationRepository,
	bookingRepo repository.BookingRepository,
	paymentRepo repository.RentPaymentRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
) ModificationService {
	return &modificationService{
		modRepo:     modRepo,
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
	}
}

// hostID resolves the booking's landlord through the listing row.
func (s *modificationService) hostID(ctx context.Context, b *domain.Booking) (int32, error) {
	listing, err := s.listingRepo.GetByID(ctx, b.ListingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrListingNotFound
		}
		return 0, err
	}
	return listing.HostID, nil
}

func (s *modificationService) RequestBookingModification(ctx context.Context, requestorID int32, mod *domain.BookingModification) error {
	booking, err := s.bookingRepo.GetByID(ctx, mod.BookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return err
	}
	if booking.Status.Terminal() {
		return ErrBookingTerminal
	}
	hostID, err := s.hostID(ctx, booking)
	if err != nil {
		return err
	}
	if requestorID != booking.TenantID && requestorID != hostID {
		return ErrUnauthorized
	}
	if mod.NewStartDate == nil && mod.NewEndDate == nil && mod.NewMonthlyRentCents == nil {
		return errors.New("Modification request has no changes")
	}

	mod.RequestorID = requestorID
	mod.RecipientID = booking.TenantID
	if requestorID == booking.TenantID {
		mod.RecipientID = hostID
	}
	mod.Status = domain.ModificationStatusPending
	if err := s.modRepo.CreateBookingModification(ctx, mod); err != nil {
		return err
	}

	s.notify(ctx, mod.RecipientID, "Booking Change Requested",
		fmt.Sprintf("A change to booking %d has been requested: %s", mod.BookingID, mod.Reason),
		map[string]string{"type": "BOOKING_MODIFICATION_REQUESTED", "modification_id": fmt.Sprintf("%d", mod.ID)})
	return nil
}

func (s *modificationService) ApproveBookingModification(ctx context.Context, userID, modificationID int32) error {
	mod, err := s.getPendingBookingModification(ctx, userID, modificationID)
	if err != nil {
		return err
	}

	booking, err := s.bookingRepo.GetByID(ctx, mod.BookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return err
	}
	if booking.Status.Terminal() {
		return ErrBookingTerminal
	}

	update := repository.BookingUpdate{
		StartDate:        mod.NewStartDate,
		EndDate:          mod.NewEndDate,
		MonthlyRentCents: mod.NewMonthlyRentCents,
	}
	if err := s.bookingRepo.ApplyUpdate(ctx, booking, update); err != nil {
		return err
	}
	if err := s.modRepo.ResolveBookingModification(ctx, modificationID, domain.ModificationStatusApproved, time.Now()); err != nil {
		return err
	}

	s.notify(ctx, mod.RequestorID, "Booking Change Approved",
		fmt.Sprintf("Your requested change to booking %d was approved", mod.BookingID),
		map[string]string{"type": "BOOKING_MODIFICATION_APPROVED", "modification_id": fmt.Sprintf("%d", mod.ID)})
	return nil
}

func (s *modificationService) RejectBookingModification(ctx context.Context, userID, modificationID int32) error {
	mod, err := s.getPendingBookingModification(ctx, userID, modificationID)
	if err != nil {
		return err
	}
	if err := s.modRepo.ResolveBookingModification(ctx, modificationID, domain.ModificationStatusRejected, time.Now()); err != nil {
		return err
	}
	s.notify(ctx, mod.RequestorID, "Booking Change Rejected",
		fmt.Sprintf("Your requested change to booking %d was rejected", mod.BookingID),
		map[string]string{"type": "BOOKING_MODIFICATION_REJECTED", "modification_id": fmt.Sprintf("%d", mod.ID)})
	return nil
}

func (s *modificationService) getPendingBookingModification(ctx context.Context, userID, modificationID int32) (*domain.BookingModification, error) {
	mod, err := s.modRepo.GetBookingModification(ctx, modificationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("Modification not found")
		}
		return nil, err
	}
	if mod.RecipientID != userID {
		return nil, ErrUnauthorized
	}
	if mod.Status != domain.ModificationStatusPending {
		return nil, ErrModificationResolved
	}
	return mod, nil
}

func (s *modificationService) RequestPaymentModification(ctx context.Context, requestorID int32, mod *domain.PaymentModification) error {
	payment, booking, err := s.loadPayment(ctx, mod.RentPaymentID)
	if err != nil {
		return err
	}
	if payment.IsPaid {
		return ErrPaidPaymentImmutable
	}
	hostID, err := s.hostID(ctx, booking)
	if err != nil {
		return err
	}
	if requestorID != booking.TenantID && requestorID != hostID {
		return ErrUnauthorized
	}
	if mod.NewAmountCents == nil && mod.NewDueDate == nil {
		return errors.New("Modification request has no changes")
	}

	mod.RequestorID = requestorID
	mod.RecipientID = booking.TenantID
	if requestorID == booking.TenantID {
		mod.RecipientID = hostID
	}
	mod.Status = domain.ModificationStatusPending
	if err := s.modRepo.CreatePaymentModification(ctx, mod); err != nil {
		return err
	}

	s.notify(ctx, mod.RecipientID, "Rent Payment Change Requested",
		fmt.Sprintf("A change to a rent installment on booking %d has been requested: %s", booking.ID, mod.Reason),
		map[string]string{"type": "PAYMENT_MODIFICATION_REQUESTED", "modification_id": fmt.Sprintf("%d", mod.ID)})
	return nil
}

func (s *modificationService) ApprovePaymentModification(ctx context.Context, userID, modificationID int32) error {
	mod, err := s.getPendingPaymentModification(ctx, userID, modificationID)
	if err != nil {
		return err
	}

	payment, _, err := s.loadPayment(ctx, mod.RentPaymentID)
	if err != nil {
		return err
	}
	// The installment may have been paid between request and approval.
	if payment.IsPaid {
		return ErrPaidPaymentImmutable
	}

	if mod.NewAmountCents != nil {
		payment.AmountCents = *mod.NewAmountCents
	}
	if mod.NewDueDate != nil {
		payment.DueDate = *mod.NewDueDate
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return err
	}
	if err := s.modRepo.ResolvePaymentModification(ctx, modificationID, domain.ModificationStatusApproved, time.Now()); err != nil {
		return err
	}

	s.notify(ctx, mod.RequestorID, "Rent Payment Change Approved",
		fmt.Sprintf("Your requested change to rent installment %d was approved", mod.RentPaymentID),
		map[string]string{"type": "PAYMENT_MODIFICATION_APPROVED", "modification_id": fmt.Sprintf("%d", mod.ID)})
	return nil
}

func (s *modificationService) RejectPaymentModification(ctx context.Context, userID, modificationID int32) error {
	mod, err := s.getPendingPaymentModification(ctx, userID, modificationID)
	if err != nil {
		return err
	}
	if err := s.modRepo.ResolvePaymentModification(ctx, modificationID, domain.ModificationStatusRejected, time.Now()); err != nil {
		return err
	}
	s.notify(ctx, mod.RequestorID, "Rent Payment Change Rejected",
		fmt.Sprintf("Your requested change to rent installment %d was rejected", mod.RentPaymentID),
		map[string]string{"type": "PAYMENT_MODIFICATION_REJECTED", "modification_id": fmt.Sprintf("%d", mod.ID)})
	return nil
}

func (s *modificationService) getPendingPaymentModification(ctx context.Context, userID, modificationID int32) (*domain.PaymentModification, error) {
	mod, err := s.modRepo.GetPaymentModification(ctx, modificationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("Modification not found")
		}
		return nil, err
	}
	if mod.RecipientID != userID {
		return nil, ErrUnauthorized
	}
	if mod.Status != domain.ModificationStatusPending {
		return nil, ErrModificationResolved
	}
	return mod, nil
}

func (s *modificationService) loadPayment(ctx context.Context, rentPaymentID int32) (*domain.RentPayment, *domain.Booking, error) {
	payment, err := s.paymentRepo.GetByID(ctx, rentPaymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, errors.New("Rent payment not found")
		}
		return nil, nil, err
	}
	booking, err := s.bookingRepo.GetByID(ctx, payment.BookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrBookingNotFound
		}
		return nil, nil, err
	}
	return payment, booking, nil
}

func (s *modificationService) notify(ctx context.Context, userID int32, title, message string, attrs map[string]string) {
	notif := &domain.Notification{
		UserID:     userID,
		Title:      title,
		Message:    message,
		Attributes: attrs,
	}
	if err := s.noteRepo.Create(ctx, notif); err != nil {
		logger.Error("Failed to create notification", "user_id", userID, "error", err)
	}
}
