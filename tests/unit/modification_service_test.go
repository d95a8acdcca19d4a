package unit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
	"rentmatch-backend/internal/service"
)

func newModificationService() (*MockModificationRepo, *MockBookingRepo, *MockRentPaymentRepo, *MockListingRepo, *MockNotificationRepo, service.ModificationService) {
	modRepo := new(MockModificationRepo)
	bookingRepo := new(MockBookingRepo)
	paymentRepo := new(MockRentPaymentRepo)
	listingRepo := new(MockListingRepo)
	userRepo := new(MockUserRepo)
	noteRepo := new(MockNotificationRepo)
	svc := service.NewModificationService(modRepo, bookingRepo, paymentRepo, listingRepo, userRepo, noteRepo)
	return modRepo, bookingRepo, paymentRepo, listingRepo, noteRepo, svc
}

func TestModificationService_BookingModificationWorkflow(t *testing.T) {
	ctx := context.Background()
	tenantID := int32(1)
	hostID := int32(10)
	bookingID := int32(5)
	modID := int32(3)

	booking := &domain.Booking{ID: bookingID, TenantID: tenantID, ListingID: 2, Status: domain.BookingStatusActive}
	listing := &domain.Listing{ID: 2, HostID: hostID}

	t.Run("Tenant Requests, Host Receives", func(t *testing.T) {
		modRepo, bookingRepo, _, listingRepo, noteRepo, svc := newModificationService()

		newRent := int32(140000)
		mod := &domain.BookingModification{BookingID: bookingID, NewMonthlyRentCents: &newRent, Reason: "negotiated"}

		bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)
		listingRepo.On("GetByID", ctx, int32(2)).Return(listing, nil)
		modRepo.On("CreateBookingModification", ctx, mod).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		err := svc.RequestBookingModification(ctx, tenantID, mod)
		assert.NoError(t, err)
		assert.Equal(t, tenantID, mod.RequestorID)
		assert.Equal(t, hostID, mod.RecipientID)
		assert.Equal(t, domain.ModificationStatusPending, mod.Status)
	})

	t.Run("Empty Request Rejected", func(t *testing.T) {
		modRepo, bookingRepo, _, listingRepo, _, svc := newModificationService()

		bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)
		listingRepo.On("GetByID", ctx, int32(2)).Return(listing, nil)

		err := svc.RequestBookingModification(ctx, tenantID, &domain.BookingModification{BookingID: bookingID})
		assert.Error(t, err)
		modRepo.AssertNotCalled(t, "CreateBookingModification")
	})

	t.Run("Recipient Approves, Changes Apply", func(t *testing.T) {
		modRepo, bookingRepo, _, _, noteRepo, svc := newModificationService()

		newRent := int32(140000)
		pending := &domain.BookingModification{
			ID: modID, BookingID: bookingID,
			RequestorID: tenantID, RecipientID: hostID,
			NewMonthlyRentCents: &newRent,
			Status:              domain.ModificationStatusPending,
		}

		modRepo.On("GetBookingModification", ctx, modID).Return(pending, nil)
		bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)
		bookingRepo.On("ApplyUpdate", ctx, booking, repository.BookingUpdate{MonthlyRentCents: &newRent}).Return(nil)
		modRepo.On("ResolveBookingModification", ctx, modID, domain.ModificationStatusApproved, mock.AnythingOfType("time.Time")).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		err := svc.ApproveBookingModification(ctx, hostID, modID)
		assert.NoError(t, err)
		bookingRepo.AssertCalled(t, "ApplyUpdate", ctx, booking, repository.BookingUpdate{MonthlyRentCents: &newRent})
	})

	t.Run("Requestor Cannot Approve Own Request", func(t *testing.T) {
		modRepo, bookingRepo, _, _, _, svc := newModificationService()

		pending := &domain.BookingModification{
			ID: modID, BookingID: bookingID,
			RequestorID: tenantID, RecipientID: hostID,
			Status: domain.ModificationStatusPending,
		}
		modRepo.On("GetBookingModification", ctx, modID).Return(pending, nil)

		err := svc.ApproveBookingModification(ctx, tenantID, modID)
		assert.ErrorIs(t, err, service.ErrUnauthorized)
		bookingRepo.AssertNotCalled(t, "ApplyUpdate")
	})

	t.Run("Resolved Modification Cannot Be Rejected Again", func(t *testing.T) {
		modRepo, _, _, _, _, svc := newModificationService()

		resolved := &domain.BookingModification{
			ID: modID, BookingID: bookingID,
			RequestorID: tenantID, RecipientID: hostID,
			Status: domain.ModificationStatusApproved,
		}
		modRepo.On("GetBookingModification", ctx, modID).Return(resolved, nil)

		err := svc.RejectBookingModification(ctx, hostID, modID)
		assert.ErrorIs(t, err, service.ErrModificationResolved)
	})
}

func TestModificationService_PaymentModificationWorkflow(t *testing.T) {
	ctx := context.Background()
	tenantID := int32(1)
	hostID := int32(10)
	bookingID := int32(5)
	paymentID := int32(8)
	modID := int32(3)

	booking := &domain.Booking{ID: bookingID, TenantID: tenantID, ListingID: 2, Status: domain.BookingStatusActive}

	t.Run("Paid Payment Cannot Be Modified", func(t *testing.T) {
		modRepo, bookingRepo, paymentRepo, _, _, svc := newModificationService()

		paidOn := time.Now()
		paid := &domain.RentPayment{ID: paymentID, BookingID: bookingID, IsPaid: true, PaidOn: &paidOn}
		paymentRepo.On("GetByID", ctx, paymentID).Return(paid, nil)
		bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)

		newAmount := int32(120000)
		err := svc.RequestPaymentModification(ctx, tenantID, &domain.PaymentModification{
			RentPaymentID: paymentID, NewAmountCents: &newAmount,
		})
		assert.ErrorIs(t, err, service.ErrPaidPaymentImmutable)
		modRepo.AssertNotCalled(t, "CreatePaymentModification")
	})

	t.Run("Approval Applies New Due Date", func(t *testing.T) {
		modRepo, bookingRepo, paymentRepo, _, noteRepo, svc := newModificationService()

		unpaid := &domain.RentPayment{
			ID: paymentID, BookingID: bookingID,
			AmountCents: 150000,
			DueDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		}
		newDue := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		pending := &domain.PaymentModification{
			ID: modID, RentPaymentID: paymentID,
			RequestorID: tenantID, RecipientID: hostID,
			NewDueDate: &newDue,
			Status:     domain.ModificationStatusPending,
		}

		modRepo.On("GetPaymentModification", ctx, modID).Return(pending, nil)
		paymentRepo.On("GetByID", ctx, paymentID).Return(unpaid, nil)
		bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)
		paymentRepo.On("Update", ctx, mock.AnythingOfType("*domain.RentPayment")).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(*domain.RentPayment)
				assert.Equal(t, newDue, p.DueDate)
				assert.Equal(t, int32(150000), p.AmountCents)
			}).
			Return(nil)
		modRepo.On("ResolvePaymentModification", ctx, modID, domain.ModificationStatusApproved, mock.AnythingOfType("time.Time")).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		err := svc.ApprovePaymentModification(ctx, hostID, modID)
		assert.NoError(t, err)
	})

	t.Run("Payment Paid Between Request And Approval", func(t *testing.T) {
		modRepo, bookingRepo, paymentRepo, _, _, svc := newModificationService()

		paidOn := time.Now()
		nowPaid := &domain.RentPayment{ID: paymentID, BookingID: bookingID, IsPaid: true, PaidOn: &paidOn}
		newAmount := int32(120000)
		pending := &domain.PaymentModification{
			ID: modID, RentPaymentID: paymentID,
			RequestorID: tenantID, RecipientID: hostID,
			NewAmountCents: &newAmount,
			Status:         domain.ModificationStatusPending,
		}

		modRepo.On("GetPaymentModification", ctx, modID).Return(pending, nil)
		paymentRepo.On("GetByID", ctx, paymentID).Return(nowPaid, nil)
		bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)

		err := svc.ApprovePaymentModification(ctx, hostID, modID)
		assert.ErrorIs(t, err, service.ErrPaidPaymentImmutable)
		paymentRepo.AssertNotCalled(t, "Update")
	})
}
