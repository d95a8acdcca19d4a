package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/lease"
	"rentmatch-backend/internal/logger"
	"rentmatch-backend/internal/payments"
	"rentmatch-backend/internal/pricing"
	"rentmatch-backend/internal/repository"
)

type matchService struct {
	matchRepo   repository.MatchRepository
	bookingRepo repository.BookingRepository
	tripRepo    repository.TripRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	docRepo     repository.DocumentRepository
	txRepo      repository.PaymentTransactionRepository
	gateway     payments.Gateway
	fees        pricing.Fees
	emailSvc    EmailService
	noteRepo    repository.NotificationRepository
}

func NewMatchService(
	matchRepo repository.MatchRepository,
	bookingRepo repository.BookingRepository,
	tripRepo repository.TripRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	docRepo repository.DocumentRepository,
	txRepo repository.PaymentTransactionRepository,
	gateway payments.Gateway,
	fees pricing.Fees,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
) MatchService {
	return &matchService{
		matchRepo:   matchRepo,
		bookingRepo: bookingRepo,
		tripRepo:    tripRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		docRepo:     docRepo,
		txRepo:      txRepo,
		gateway:     gateway,
		fees:        fees,
		emailSvc:    emailSvc,
		noteRepo:    noteRepo,
	}
}

func (s *matchService) loadMatch(ctx context.Context, userID, matchID int32) (*domain.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if m.TenantID != userID && m.LandlordID != userID {
		return nil, ErrUnauthorized
	}
	return m, nil
}

func (s *matchService) GetMatch(ctx context.Context, userID, matchID int32) (*MatchView, error) {
	m, err := s.loadMatch(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, m)
}

func (s *matchService) buildView(ctx context.Context, m *domain.Match) (*MatchView, error) {
	trip, err := s.tripRepo.GetByID(ctx, m.TripID)
	if err != nil {
		return nil, err
	}
	listing, err := s.listingRepo.GetByID(ctx, m.ListingID)
	if err != nil {
		return nil, err
	}

	view := &MatchView{Match: m, Listing: listing, Trip: trip}

	// A tier-less listing is surfaced as a view without a breakdown, never
	// as a placeholder amount.
	method := pricing.MethodBankTransfer
	tenant, err := s.userRepo.GetByID(ctx, m.TenantID)
	hasStoredMethod := err == nil && tenant.HasStoredPayment
	if hasStoredMethod {
		method = pricing.MethodCard
	}
	breakdown, err := pricing.ComputeBreakdown(trip, listing, method, s.fees)
	if err == nil {
		view.Breakdown = &breakdown
	} else if !errors.Is(err, pricing.ErrRentUnavailable) {
		return nil, err
	}

	hasDocument := false
	if m.LeaseDocumentID != nil {
		doc, err := s.docRepo.GetByID(ctx, *m.LeaseDocumentID)
		hasDocument = err == nil && doc.Status != domain.DocumentStatusDraft
	}
	view.Step = lease.DeriveStep(m, hasDocument, hasStoredMethod)

	hasBooking := true
	if _, err := s.bookingRepo.GetByMatchID(ctx, m.ID); errors.Is(err, sql.ErrNoRows) {
		hasBooking = false
	}
	view.PendingBooking = m.PendingBooking(hasBooking)

	return view, nil
}

func (s *matchService) RecordTenantSignature(ctx context.Context, userID, matchID int32) (*MatchView, error) {
	m, err := s.loadMatch(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}
	if m.TenantID != userID {
		return nil, ErrUnauthorized
	}

	// Re-signing a submitted lease is not allowed.
	if err := s.matchRepo.SetTenantSigned(ctx, matchID, time.Now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlreadySigned
		}
		return nil, err
	}

	m, err = s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if err := s.maybeCreateBooking(ctx, m); err != nil {
		return nil, err
	}
	return s.buildView(ctx, m)
}

func (s *matchService) AuthorizeExistingPayment(ctx context.Context, userID, matchID int32) (*MatchView, error) {
	m, err := s.loadMatch(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}
	if m.TenantID != userID {
		return nil, ErrUnauthorized
	}

	tenant, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !tenant.HasStoredPayment || tenant.StripeCustomerRef == "" {
		return nil, errors.New("No stored payment method on file")
	}

	trip, err := s.tripRepo.GetByID(ctx, m.TripID)
	if err != nil {
		return nil, err
	}
	listing, err := s.listingRepo.GetByID(ctx, m.ListingID)
	if err != nil {
		return nil, err
	}
	breakdown, err := pricing.ComputeBreakdown(trip, listing, pricing.MethodCard, s.fees)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Move-in payment for match %d", m.ID)
	chargeRef, chargeErr := s.gateway.ChargeStoredMethod(ctx, tenant.StripeCustomerRef, breakdown.TotalDueTodayCents, desc)

	tx := &domain.PaymentTransaction{
		MatchID:     &m.ID,
		UserID:      userID,
		AmountCents: breakdown.TotalDueTodayCents,
		Gateway:     s.gateway.Name(),
		ChargeRef:   chargeRef,
		Status:      domain.TransactionStatusSucceeded,
		Description: desc,
	}
	if chargeErr != nil {
		tx.Status = domain.TransactionStatusFailed
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		logger.Error("Failed to record payment transaction", "match_id", m.ID, "error", err)
	}
	if chargeErr != nil {
		return nil, chargeErr
	}

	if err := s.matchRepo.SetPaymentAuthorized(ctx, matchID, time.Now()); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	m, err = s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := s.maybeCreateBooking(ctx, m); err != nil {
		return nil, err
	}
	return s.buildView(ctx, m)
}

// maybeCreateBooking creates the booking with its rent schedule once the
// match is fully signed and payment-authorized, exactly once per match.
func (s *matchService) maybeCreateBooking(ctx context.Context, m *domain.Match) error {
	if !m.FullySigned() || m.PaymentAuthorizedOn == nil {
		return nil
	}
	if _, err := s.bookingRepo.GetByMatchID(ctx, m.ID); err == nil {
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	trip, err := s.tripRepo.GetByID(ctx, m.TripID)
	if err != nil {
		return err
	}

	b := &domain.Booking{
		TenantID:         m.TenantID,
		ListingID:        m.ListingID,
		TripID:           m.TripID,
		MatchID:          &m.ID,
		StartDate:        trip.StartDate,
		EndDate:          trip.EndDate,
		MonthlyRentCents: m.MonthlyRentCents,
		Status:           domain.BookingStatusReserved,
	}
	schedule := buildRentSchedule(m.MonthlyRentCents, trip.StartDate, trip.EndDate)
	if err := s.bookingRepo.CreateWithSchedule(ctx, b, schedule); err != nil {
		return err
	}

	s.notifyBooked(ctx, m, b)
	return nil
}

// buildRentSchedule lays out the rent installments: a prorated first month
// due on move-in, full months on the first thereafter, and a prorated final
// month when the trip ends mid-month.
func buildRentSchedule(monthlyRentCents int32, start, end time.Time) []domain.RentPayment {
	var schedule []domain.RentPayment

	schedule = append(schedule, domain.RentPayment{
		AmountCents: pricing.ProratedRent(monthlyRentCents, start),
		DueDate:     start,
	})

	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	for !cursor.After(end) {
		amount := monthlyRentCents
		dim := pricing.DaysInMonth(cursor.Year(), int(cursor.Month()))
		if end.Year() == cursor.Year() && end.Month() == cursor.Month() && end.Day() < dim {
			// Final partial month.
			amount = int32((int64(monthlyRentCents)*int64(end.Day()) + int64(dim)/2) / int64(dim))
		}
		schedule = append(schedule, domain.RentPayment{AmountCents: amount, DueDate: cursor})
		cursor = cursor.AddDate(0, 1, 0)
	}

	return schedule
}

func (s *matchService) notifyBooked(ctx context.Context, m *domain.Match, b *domain.Booking) {
	listing, err := s.listingRepo.GetByID(ctx, m.ListingID)
	title := ""
	if err == nil {
		title = listing.Title
	}
	for _, id := range []int32{m.TenantID, m.LandlordID} {
		u, err := s.userRepo.GetByID(ctx, id)
		if err != nil || u.DeletedOn != nil {
			continue
		}
		if err := s.emailSvc.SendBookingConfirmedNotification(ctx, u.Email, u.Name, title, b.StartDate, b.EndDate); err != nil {
			logger.Error("Failed to send booking confirmation email", "booking_id", b.ID, "user_id", u.ID, "error", err)
		}
		notif := &domain.Notification{
			UserID:  u.ID,
			Title:   "Booking Confirmed",
			Message: fmt.Sprintf("The lease for %s is fully signed and paid; the booking is confirmed", title),
			Attributes: map[string]string{
				"type":       "BOOKING_CONFIRMED",
				"booking_id": fmt.Sprintf("%d", b.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}
}
