package domain

import "time"

// RentPayment is one scheduled rent installment owned by a booking. Paid
// installments are immutable: they are never deleted outside the explicit
// admin override path, and a booking with any paid installment cannot be
// reverted to its match.
type RentPayment struct {
	ID          int32      `json:"id"`
	BookingID   int32      `json:"booking_id"`
	AmountCents int32      `json:"amount_cents"`
	DueDate     time.Time  `json:"due_date"`
	IsPaid      bool       `json:"is_paid"`
	PaidOn      *time.Time `json:"paid_on,omitempty"`
	IsOverdue   bool       `json:"is_overdue"`
	CreatedOn   time.Time  `json:"created_on"`
	UpdatedOn   time.Time  `json:"updated_on"`
}

type TransactionStatus string

const (
	TransactionStatusSucceeded TransactionStatus = "SUCCEEDED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// PaymentTransaction records a gateway charge attempt. Rows are written for
// audit and are only removed when a booking is reverted to its match.
type PaymentTransaction struct {
	ID          int32             `json:"id"`
	BookingID   *int32            `json:"booking_id,omitempty"`
	MatchID     *int32            `json:"match_id,omitempty"`
	UserID      int32             `json:"user_id"`
	AmountCents int32             `json:"amount_cents"`
	Gateway     string            `json:"gateway"`
	ChargeRef   string            `json:"charge_ref"`
	Status      TransactionStatus `json:"status"`
	Description string            `json:"description"`
	CreatedOn   time.Time         `json:"created_on"`
}
