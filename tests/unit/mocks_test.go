package unit

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTripRepo
type MockTripRepo struct {
	mock.Mock
}

func (m *MockTripRepo) Create(ctx context.Context, trip *domain.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}
func (m *MockTripRepo) GetByID(ctx context.Context, id int32) (*domain.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}
func (m *MockTripRepo) Update(ctx context.Context, trip *domain.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

// MockListingRepo
type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepo) GetByID(ctx context.Context, id int32) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepo) Update(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepo) List(ctx context.Context, filter repository.ListingFilter) ([]domain.Listing, int32, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Listing), args.Get(1).(int32), args.Error(2)
}
func (m *MockListingRepo) ReplacePricing(ctx context.Context, listingID int32, tiers []domain.MonthlyPricing) error {
	args := m.Called(ctx, listingID, tiers)
	return args.Error(0)
}
func (m *MockListingRepo) Copy(ctx context.Context, listingID, newOwnerID int32, titleSuffix string) (int32, error) {
	args := m.Called(ctx, listingID, newOwnerID, titleSuffix)
	return args.Get(0).(int32), args.Error(1)
}

// MockMatchRepo
type MockMatchRepo struct {
	mock.Mock
}

func (m *MockMatchRepo) Create(ctx context.Context, match *domain.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}
func (m *MockMatchRepo) GetByID(ctx context.Context, id int32) (*domain.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Match), args.Error(1)
}
func (m *MockMatchRepo) Update(ctx context.Context, match *domain.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}
func (m *MockMatchRepo) SetTenantSigned(ctx context.Context, id int32, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
func (m *MockMatchRepo) SetPaymentAuthorized(ctx context.Context, id int32, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) GetByMatchID(ctx context.Context, matchID int32) (*domain.Booking, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListStatusStartedBy(ctx context.Context, status domain.BookingStatus, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, status, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListStatusEndedBy(ctx context.Context, status domain.BookingStatus, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, status, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) CreateWithSchedule(ctx context.Context, booking *domain.Booking, schedule []domain.RentPayment) error {
	args := m.Called(ctx, booking, schedule)
	return args.Error(0)
}
func (m *MockBookingRepo) ApplyUpdate(ctx context.Context, booking *domain.Booking, update repository.BookingUpdate) error {
	args := m.Called(ctx, booking, update)
	return args.Error(0)
}
func (m *MockBookingRepo) RevertToMatch(ctx context.Context, bookingID int32) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

// MockRentPaymentRepo
type MockRentPaymentRepo struct {
	mock.Mock
}

func (m *MockRentPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.RentPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentPayment), args.Error(1)
}
func (m *MockRentPaymentRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.RentPayment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentPayment), args.Error(1)
}
func (m *MockRentPaymentRepo) AnyPaid(ctx context.Context, bookingID int32) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentPaymentRepo) Update(ctx context.Context, payment *domain.RentPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockRentPaymentRepo) MarkPaid(ctx context.Context, id int32, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
func (m *MockRentPaymentRepo) ListDueUnpaid(ctx context.Context, dueBy time.Time) ([]domain.RentPayment, error) {
	args := m.Called(ctx, dueBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentPayment), args.Error(1)
}
func (m *MockRentPaymentRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentTransactionRepo
type MockPaymentTransactionRepo struct {
	mock.Mock
}

func (m *MockPaymentTransactionRepo) Create(ctx context.Context, tx *domain.PaymentTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockPaymentTransactionRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.PaymentTransaction, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentTransaction), args.Error(1)
}
func (m *MockPaymentTransactionRepo) ListByMatch(ctx context.Context, matchID int32) ([]domain.PaymentTransaction, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentTransaction), args.Error(1)
}

// MockModificationRepo
type MockModificationRepo struct {
	mock.Mock
}

func (m *MockModificationRepo) CreateBookingModification(ctx context.Context, mod *domain.BookingModification) error {
	args := m.Called(ctx, mod)
	return args.Error(0)
}
func (m *MockModificationRepo) GetBookingModification(ctx context.Context, id int32) (*domain.BookingModification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingModification), args.Error(1)
}
func (m *MockModificationRepo) ResolveBookingModification(ctx context.Context, id int32, status domain.ModificationStatus, at time.Time) error {
	args := m.Called(ctx, id, status, at)
	return args.Error(0)
}
func (m *MockModificationRepo) ListBookingModifications(ctx context.Context, bookingID int32) ([]domain.BookingModification, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingModification), args.Error(1)
}
func (m *MockModificationRepo) CreatePaymentModification(ctx context.Context, mod *domain.PaymentModification) error {
	args := m.Called(ctx, mod)
	return args.Error(0)
}
func (m *MockModificationRepo) GetPaymentModification(ctx context.Context, id int32) (*domain.PaymentModification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentModification), args.Error(1)
}
func (m *MockModificationRepo) ResolvePaymentModification(ctx context.Context, id int32, status domain.ModificationStatus, at time.Time) error {
	args := m.Called(ctx, id, status, at)
	return args.Error(0)
}
func (m *MockModificationRepo) ListPaymentModifications(ctx context.Context, rentPaymentID int32) ([]domain.PaymentModification, error) {
	args := m.Called(ctx, rentPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentModification), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockDocumentRepo
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.LeaseDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
func (m *MockDocumentRepo) GetByID(ctx context.Context, id int32) (*domain.LeaseDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaseDocument), args.Error(1)
}
func (m *MockDocumentRepo) GetByMatch(ctx context.Context, matchID int32) (*domain.LeaseDocument, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaseDocument), args.Error(1)
}
func (m *MockDocumentRepo) ListByListing(ctx context.Context, listingID int32) ([]domain.LeaseDocument, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaseDocument), args.Error(1)
}
func (m *MockDocumentRepo) Update(ctx context.Context, doc *domain.LeaseDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingCancelledNotification(ctx context.Context, email, name, listingTitle, reason string) error {
	args := m.Called(ctx, email, name, listingTitle, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingRevertedNotification(ctx context.Context, email, name, listingTitle, reason string) error {
	args := m.Called(ctx, email, name, listingTitle, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingUpdatedNotification(ctx context.Context, email, name, listingTitle, changeSummary string) error {
	args := m.Called(ctx, email, name, listingTitle, changeSummary)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingConfirmedNotification(ctx context.Context, email, name, listingTitle string, startDate, endDate time.Time) error {
	args := m.Called(ctx, email, name, listingTitle, startDate, endDate)
	return args.Error(0)
}
func (m *MockEmailService) SendListingUpdatedNotification(ctx context.Context, email, name, listingTitle, comment string) error {
	args := m.Called(ctx, email, name, listingTitle, comment)
	return args.Error(0)
}
func (m *MockEmailService) SendRentDueReminder(ctx context.Context, email, name string, amountCents int32, dueDate time.Time) error {
	args := m.Called(ctx, email, name, amountCents, dueDate)
	return args.Error(0)
}
