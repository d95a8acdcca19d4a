package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"rentmatch-backend/internal/config"
	"rentmatch-backend/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	return &sendGridEmailService{
		apiKey:    cfg.APIKey,
		fromEmail: cfg.From,
		fromName:  cfg.FromName,
	}
}

func (s *sendGridEmailService) send(ctx context.Context, to, toName, subject, plainText, htmlContent string) error {
	if s.apiKey == "" {
		// Without an API key the send is logged and skipped. Local dev runs
		// this way.
		logger.Info("Email sending skipped, no API key configured", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendBookingCancelledNotification(ctx context.Context, email, name, listingTitle, reason string) error {
	subject := fmt.Sprintf("Booking Cancelled: %s", listingTitle)
	plain := fmt.Sprintf("Your booking at %s has been cancelled. Reason: %s", listingTitle, reason)
	html := fmt.Sprintf(`<html><body><h2>Booking Cancelled</h2><p>Your booking at <strong>%s</strong> has been cancelled.</p><p>Reason: %s</p></body></html>`, listingTitle, reason)
	return s.send(ctx, email, name, subject, plain, html)
}

func (s *sendGridEmailService) SendBookingRevertedNotification(ctx context.Context, email, name, listingTitle, reason string) error {
	subject := fmt.Sprintf("Booking Reverted: %s", listingTitle)
	plain := fmt.Sprintf("Your booking at %s has been reverted to the signing stage. Reason: %s", listingTitle, reason)
	html := fmt.Sprintf(`<html><body><h2>Booking Reverted</h2><p>Your booking at <strong>%s</strong> has been reverted to the signing stage.</p><p>Reason: %s</p></body></html>`, listingTitle, reason)
	return s.send(ctx, email, name, subject, plain, html)
}

func (s *sendGridEmailService) SendBookingUpdatedNotification(ctx context.Context, email, name, listingTitle, changeSummary string) error {
	subject := fmt.Sprintf("Booking Updated: %s", listingTitle)
	plain := fmt.Sprintf("Your booking at %s has been updated. Changes: %s", listingTitle, changeSummary)
	html := fmt.Sprintf(`<html><body><h2>Booking Updated</h2><p>Your booking at <strong>%s</strong> has been updated.</p><p>Changes: %s</p></body></html>`, listingTitle, changeSummary)
	return s.send(ctx, email, name, subject, plain, html)
}

func (s *sendGridEmailService) SendBookingConfirmedNotification(ctx context.Context, email, name, listingTitle string, startDate, endDate time.Time) error {
	subject := fmt.Sprintf("Booking Confirmed: %s", listingTitle)
	dates := fmt.Sprintf("%s to %s", startDate.Format("Jan 2, 2006"), endDate.Format("Jan 2, 2006"))
	plain := fmt.Sprintf("Your booking at %s is confirmed for %s.", listingTitle, dates)
	html := fmt.Sprintf(`<html><body><h2>Booking Confirmed</h2><p>Your booking at <strong>%s</strong> is confirmed for %s.</p></body></html>`, listingTitle, dates)
	return s.send(ctx, email, name, subject, plain, html)
}

func (s *sendGridEmailService) SendListingUpdatedNotification(ctx context.Context, email, name, listingTitle, comment string) error {
	subject := fmt.Sprintf("Listing Updated: %s", listingTitle)
	plain := fmt.Sprintf("Your listing %s has been updated by an administrator. %s", listingTitle, comment)
	html := fmt.Sprintf(`<html><body><h2>Listing Updated</h2><p>Your listing <strong>%s</strong> has been updated by an administrator.</p><p>%s</p></body></html>`, listingTitle, comment)
	return s.send(ctx, email, name, subject, plain, html)
}

func (s *sendGridEmailService) SendRentDueReminder(ctx context.Context, email, name string, amountCents int32, dueDate time.Time) error {
	amount := fmt.Sprintf("$%.2f", float64(amountCents)/100)
	subject := fmt.Sprintf("Rent Due %s", dueDate.Format("Jan 2"))
	plain := fmt.Sprintf("Your rent payment of %s is due on %s.", amount, dueDate.Format("Jan 2, 2006"))
	html := fmt.Sprintf(`<html><body><h2>Rent Due Soon</h2><p>Your rent payment of <strong>%s</strong> is due on %s.</p></body></html>`, amount, dueDate.Format("Jan 2, 2006"))
	return s.send(ctx, email, name, subject, plain, html)
}
