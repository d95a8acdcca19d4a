package jobs

import (
	"context"
	"fmt"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/logger"
)

// MarkOverdueRentPayments flags unpaid rent payments past their due date.
func (jr *JobRunner) MarkOverdueRentPayments() {
	jr.runWithRecovery("MarkOverdueRentPayments", func() {
		ctx := context.Background()

		count, err := jr.store.RentPaymentRepository.MarkOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to mark overdue rent payments", "error", err)
			return
		}
		logger.Info("Marked rent payments as overdue", "count", count)
	})
}

// SendRentDueReminders emails tenants whose unpaid rent comes due within the
// configured lead window, with a notification row alongside.
func (jr *JobRunner) SendRentDueReminders() {
	jr.runWithRecovery("SendRentDueReminders", func() {
		ctx := context.Background()

		dueBy := time.Now().AddDate(0, 0, jr.config.Scheduler.RentReminderLeadDays)
		payments, err := jr.store.RentPaymentRepository.ListDueUnpaid(ctx, dueBy)
		if err != nil {
			logger.Error("Failed to list due rent payments", "error", err)
			return
		}

		count := 0
		for i := range payments {
			p := &payments[i]
			booking, err := jr.store.BookingRepository.GetByID(ctx, p.BookingID)
			if err != nil {
				logger.Error("Failed to load booking for reminder", "rent_payment_id", p.ID, "error", err)
				continue
			}
			if booking.Status != domain.BookingStatusActive && booking.Status != domain.BookingStatusReserved {
				continue
			}
			tenant, err := jr.store.UserRepository.GetByID(ctx, booking.TenantID)
			if err != nil || tenant.DeletedOn != nil {
				continue
			}

			if err := jr.email.SendRentDueReminder(ctx, tenant.Email, tenant.Name, p.AmountCents, p.DueDate); err != nil {
				logger.Error("Failed to send rent reminder email", "rent_payment_id", p.ID, "error", err)
			}
			notif := &domain.Notification{
				UserID:  tenant.ID,
				Title:   "Rent Due Soon",
				Message: fmt.Sprintf("A rent payment is due on %s", p.DueDate.Format("Jan 2, 2006")),
				Attributes: map[string]string{
					"type":            "RENT_DUE_REMINDER",
					"rent_payment_id": fmt.Sprintf("%d", p.ID),
					"booking_id":      fmt.Sprintf("%d", booking.ID),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, notif); err != nil {
				logger.Error("Failed to create reminder notification", "rent_payment_id", p.ID, "error", err)
			}
			count++
		}

		logger.Info("Sent rent due reminders", "count", count)
	})
}
