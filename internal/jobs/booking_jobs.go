package jobs

import (
	"context"
	"fmt"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/logger"
)

// ActivateDueBookings moves reserved bookings whose start date has arrived
// into ACTIVE status.
func (jr *JobRunner) ActivateDueBookings() {
	jr.runWithRecovery("ActivateDueBookings", func() {
		ctx := context.Background()

		bookings, err := jr.store.BookingRepository.ListStatusStartedBy(ctx, domain.BookingStatusReserved, time.Now())
		if err != nil {
			logger.Error("Failed to list due bookings", "error", err)
			return
		}

		count := 0
		for i := range bookings {
			b := &bookings[i]
			b.Status = domain.BookingStatusActive
			if err := jr.store.BookingRepository.Update(ctx, b); err != nil {
				logger.Error("Failed to activate booking", "booking_id", b.ID, "error", err)
				continue
			}
			count++
			logger.Debug("Activated booking", "booking_id", b.ID, "start_date", b.StartDate.Format("2006-01-02"))
		}

		logger.Info("Activated due bookings", "count", count)
	})
}

// CompleteElapsedBookings moves active bookings past their end date into
// COMPLETED status and notifies the tenant.
func (jr *JobRunner) CompleteElapsedBookings() {
	jr.runWithRecovery("CompleteElapsedBookings", func() {
		ctx := context.Background()

		bookings, err := jr.store.BookingRepository.ListStatusEndedBy(ctx, domain.BookingStatusActive, time.Now())
		if err != nil {
			logger.Error("Failed to list elapsed bookings", "error", err)
			return
		}

		count := 0
		for i := range bookings {
			b := &bookings[i]
			b.Status = domain.BookingStatusCompleted
			if err := jr.store.BookingRepository.Update(ctx, b); err != nil {
				logger.Error("Failed to complete booking", "booking_id", b.ID, "error", err)
				continue
			}
			count++

			notif := &domain.Notification{
				UserID:  b.TenantID,
				Title:   "Booking Completed",
				Message: fmt.Sprintf("Your stay ending %s is complete", b.EndDate.Format("Jan 2, 2006")),
				Attributes: map[string]string{
					"type":       "BOOKING_COMPLETED",
					"booking_id": fmt.Sprintf("%d", b.ID),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, notif); err != nil {
				logger.Error("Failed to create completion notification", "booking_id", b.ID, "error", err)
			}
		}

		logger.Info("Completed elapsed bookings", "count", count)
	})
}
