package unit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
	"rentmatch-backend/internal/service"
)

func adminUser(id int32) *domain.User {
	return &domain.User{ID: id, Name: "Admin", Email: "admin@test.com", Role: domain.UserRoleAdmin}
}

func newBookingService() (*MockBookingRepo, *MockRentPaymentRepo, *MockListingRepo, *MockUserRepo, *MockEmailService, *MockNotificationRepo, service.BookingAdminService) {
	bookingRepo := new(MockBookingRepo)
	paymentRepo := new(MockRentPaymentRepo)
	listingRepo := new(MockListingRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailService)
	noteRepo := new(MockNotificationRepo)
	svc := service.NewBookingAdminService(bookingRepo, paymentRepo, listingRepo, userRepo, emailSvc, noteRepo)
	return bookingRepo, paymentRepo, listingRepo, userRepo, emailSvc, noteRepo, svc
}

func TestBookingAdminService_CancelBooking(t *testing.T) {
	ctx := context.Background()
	adminID := int32(99)
	bookingID := int32(1)

	booking := func(status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{
			ID:        bookingID,
			TenantID:  1,
			ListingID: 2,
			Status:    status,
		}
	}
	listing := &domain.Listing{ID: 2, HostID: 10, Title: "Sunny Loft"}

	t.Run("Success", func(t *testing.T) {
		bookingRepo, _, listingRepo, userRepo, emailSvc, noteRepo, svc := newBookingService()

		userRepo.On("GetByID", ctx, adminID).Return(adminUser(adminID), nil)
		bookingRepo.On("GetByID", ctx, bookingID).Return(booking(domain.BookingStatusActive), nil)
		bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "tenant@test.com", Name: "Tenant"}, nil)
		listingRepo.On("GetByID", ctx, int32(2)).Return(listing, nil)
		userRepo.On("GetByID", ctx, int32(10)).Return(&domain.User{ID: 10, Email: "host@test.com", Name: "Host"}, nil)
		emailSvc.On("SendBookingCancelledNotification", ctx, "tenant@test.com", "Tenant", "Sunny Loft", "fraud").Return(nil)
		emailSvc.On("SendBookingCancelledNotification", ctx, "host@test.com", "Host", "Sunny Loft", "fraud").Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		res, err := svc.CancelBooking(ctx, adminID, bookingID, "fraud")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, res.Status)
		assert.Equal(t, "fraud", res.CancelReason)
		emailSvc.AssertNumberOfCalls(t, "SendBookingCancelledNotification", 2)
		noteRepo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("Already Cancelled", func(t *testing.T) {
		bookingRepo, _, _, userRepo, emailSvc, _, svc := newBookingService()

		userRepo.On("GetByID", ctx, adminID).Return(adminUser(adminID), nil)
		bookingRepo.On("GetByID", ctx, bookingID).Return(booking(domain.BookingStatusCancelled), nil)

		_, err := svc.CancelBooking(ctx, adminID, bookingID, "again")
		assert.ErrorIs(t, err, service.ErrAlreadyCancelled)
		emailSvc.AssertNotCalled(t, "SendBookingCancelledNotification")
	})

	t.Run("Completed Is Terminal", func(t *testing.T) {
		bookingRepo, _, _, userRepo, _, _, svc := newBookingService()

		userRepo.On("GetByID", ctx, adminID).Return(adminUser(adminID), nil)
		bookingRepo.On("GetByID", ctx, bookingID).Return(booking(domain.BookingStatusCompleted), nil)

		_, err := svc.CancelBooking(ctx, adminID, bookingID, "late")
		assert.ErrorIs(t, err, service.ErrBookingTerminal)
	})

	t.Run("Not Found", func(t *testing.T) {
		bookingRepo, _, _, userRepo, _, _, svc := newBookingService()

		userRepo.On("GetByID", ctx, adminID).Return(adminUser(adminID), nil)
		bookingRepo.On("GetByID", ctx, bookingID).Return(nil, sql.ErrNoRows)

		_, err := svc.CancelBooking(ctx, adminID, bookingID, "gone")
		assert.ErrorIs(t, err, service.ErrBookingNotFound)
		assert.Equal(t, "Booking not found", err.Error())
	})

	t.Run("Non-Admin Rejected", func(t *testing.T) {
		bookingRepo, _, _, userRepo, _, _, svc := newBookingService()

		userRepo.On("GetByID", ctx, adminID).Return(&domain.User{ID: adminID, Role: domain.UserRoleTenant}, nil)

		_, err := svc.CancelBooking(ctx, adminID, bookingID, "nope")
		assert.ErrorIs(t, err, service.ErrUnauthorized)
		bookingRepo.AssertNotCalled(t, "GetByID")
	})
}

func TestBookingAdminService_RevertBookingToMatch(t *testing.T) {
	ctx := context.Background()
	adminID := int32(99)
	bookingID := int32(1)
	matchID := int32(7)

	booking := &domain.Booking{
		ID:        bookingID,
		TenantID:  1,
		ListingID: 2,
		MatchID:   &matchID,
		Status:    domain.BookingStatusReserved,
	}

	t.Run("Success", func(t *testing.T) {
		bookingRepo, paymentRepo, listingRepo, userRepo, emailSvc, noteRepo, svc := newBookingService()

		userRepo.On("GetByID", ctx, adminID).Return(adminUser(adminID), nil)
		bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)
		paymentRepo.On("AnyPaid", ctx, bookingID).Return(false, nil)
		bookingRepo.On("RevertToMatch", ctx, bookingID).Return(nil)

		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "tenant@test.com", Name: "Tenant"}, nil)
		listingRepo.On("GetByID", ctx, int32(2)).Return(&domain.Listing{ID: 2, HostID: 10, Title: "Sunny Loft"}, nil)
		userRepo.On("GetByID", ctx, int32(10)).Return(&domain.User{ID: 10, Email: "host@test.com", Name: "Host"}, nil)
		emailSvc.On("SendBookingRevertedNotification", ctx, mock.Anything, mock.Anything, "Sunny Loft", "mistake").Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		err := svc.RevertBookingToMatch(ctx, adminID, bookingID, "mistake")
		assert.NoError(t, err)
		bookingRepo.AssertCalled(t, "RevertToMatch", ctx, bookingID)
	})

	t.Run("Paid Rent Blocks Revert", func(t *testing.T) {
		bookingRepo, paymentRepo, _, userRepo, _, _, svc := newBookingService()

		userRepo.On("GetByID", ctx, adminID).Return(adminUser(adminID), nil)
		bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)
		paymentRepo.On("AnyPaid", ctx, bookingID).Return(true, nil)

		err := svc.RevertBookingToMatch(ctx, adminID, bookingID, "mistake")
		assert.ErrorIs(t, err, service.ErrPaidRentExists)
		bookingRepo.AssertNotCalled(t, "RevertToMatch")
	})

	t.Run("No Match", func(t *testing.T) {
		bookingRepo, _, _, userRepo, _, _, svc := newBookingService()

		orphan := &domain.Booking{ID: bookingID, TenantID: 1, ListingID: 2, Status: domain.BookingStatusReserved}
		userRepo.On("GetByID", ctx, adminID).Return(adminUser(adminID), nil)
		bookingRepo.On("GetByID", ctx, bookingID).Return(orphan, nil)

		err := svc.RevertBookingToMatch(ctx, adminID, bookingID, "mistake")
		assert.ErrorIs(t, err, service.ErrNoMatchForBooking)
	})
}

func TestBookingAdminService_UpdateBookingDetails(t *testing.T) {
	ctx := context.Background()
	adminID := int32(99)
	bookingID := int32(1)
	matchID := int32(7)

	t.Run("Rent Change Notifies", func(t *testing.T) {
		bookingRepo, _, listingRepo, userRepo, emailSvc, noteRepo, svc := newBookingService()

		booking := &domain.Booking{
			ID:               bookingID,
			TenantID:         1,
			ListingID:        2,
			MatchID:          &matchID,
			MonthlyRentCents: 150000,
			Status:           domain.BookingStatusActive,
		}
		newRent := int32(160000)
		update := repository.BookingUpdate{MonthlyRentCents: &newRent}

		userRepo.On("GetByID", ctx, adminID).Return(adminUser(adminID), nil)
		bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)
		bookingRepo.On("ApplyUpdate", ctx, booking, update).Return(nil)

		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "tenant@test.com", Name: "Tenant"}, nil)
		listingRepo.On("GetByID", ctx, int32(2)).Return(&domain.Listing{ID: 2, HostID: 10, Title: "Sunny Loft"}, nil)
		userRepo.On("GetByID", ctx, int32(10)).Return(&domain.User{ID: 10, Email: "host@test.com", Name: "Host"}, nil)
		emailSvc.On("SendBookingUpdatedNotification", ctx, mock.Anything, mock.Anything, "Sunny Loft", "monthly rent $1500.00 → $1600.00").Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		res, err := svc.UpdateBookingDetails(ctx, adminID, bookingID, update)
		assert.NoError(t, err)
		assert.NotNil(t, res)
		emailSvc.AssertNumberOfCalls(t, "SendBookingUpdatedNotification", 2)
	})

	t.Run("No Effective Change Skips Notifications", func(t *testing.T) {
		bookingRepo, _, _, userRepo, emailSvc, _, svc := newBookingService()

		booking := &domain.Booking{
			ID:               bookingID,
			TenantID:         1,
			ListingID:        2,
			MonthlyRentCents: 150000,
			Status:           domain.BookingStatusActive,
		}
		sameRent := int32(150000)
		update := repository.BookingUpdate{MonthlyRentCents: &sameRent}

		userRepo.On("GetByID", ctx, adminID).Return(adminUser(adminID), nil)
		bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)
		bookingRepo.On("ApplyUpdate", ctx, booking, update).Return(nil)

		_, err := svc.UpdateBookingDetails(ctx, adminID, bookingID, update)
		assert.NoError(t, err)
		emailSvc.AssertNotCalled(t, "SendBookingUpdatedNotification")
	})

	t.Run("Cancelled Booking Rejected", func(t *testing.T) {
		bookingRepo, _, _, userRepo, _, _, svc := newBookingService()

		booking := &domain.Booking{ID: bookingID, Status: domain.BookingStatusCancelled}
		start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		update := repository.BookingUpdate{StartDate: &start}

		userRepo.On("GetByID", ctx, adminID).Return(adminUser(adminID), nil)
		bookingRepo.On("GetByID", ctx, bookingID).Return(booking, nil)

		_, err := svc.UpdateBookingDetails(ctx, adminID, bookingID, update)
		assert.ErrorIs(t, err, service.ErrAlreadyCancelled)
	})
}

func TestBookingAdminService_BulkCancelBookings(t *testing.T) {
	ctx := context.Background()
	adminID := int32(99)

	bookingRepo, _, listingRepo, userRepo, emailSvc, noteRepo, svc := newBookingService()

	userRepo.On("GetByID", ctx, adminID).Return(adminUser(adminID), nil)

	mkBooking := func(id int32) *domain.Booking {
		return &domain.Booking{ID: id, TenantID: 1, ListingID: 2, Status: domain.BookingStatusActive}
	}
	bookingRepo.On("GetByID", ctx, int32(1)).Return(mkBooking(1), nil)
	bookingRepo.On("GetByID", ctx, int32(2)).Return(nil, sql.ErrNoRows)
	bookingRepo.On("GetByID", ctx, int32(3)).Return(mkBooking(3), nil)
	bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

	userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "tenant@test.com", Name: "Tenant"}, nil)
	listingRepo.On("GetByID", ctx, int32(2)).Return(&domain.Listing{ID: 2, HostID: 10, Title: "Sunny Loft"}, nil)
	userRepo.On("GetByID", ctx, int32(10)).Return(&domain.User{ID: 10, Email: "host@test.com", Name: "Host"}, nil)
	emailSvc.On("SendBookingCancelledNotification", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

	results := svc.BulkCancelBookings(ctx, adminID, []int32{1, 2, 3}, "sweep")

	assert.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, "Booking not found", results[1].Error)
	assert.True(t, results[2].Success)
}
