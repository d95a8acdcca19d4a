package domain

import "time"

type ModificationStatus string

const (
	ModificationStatusPending  ModificationStatus = "PENDING"
	ModificationStatusApproved ModificationStatus = "APPROVED"
	ModificationStatusRejected ModificationStatus = "REJECTED"
)

// BookingModification is a proposed change to a booking's dates or rent,
// raised by one party for the other to approve. Rows form an append-only
// audit trail and are never deleted.
type BookingModification struct {
	ID                  int32              `json:"id"`
	BookingID           int32              `json:"booking_id"`
	RequestorID         int32              `json:"requestor_id"`
	RecipientID         int32              `json:"recipient_id"`
	NewStartDate        *time.Time         `json:"new_start_date,omitempty"`
	NewEndDate          *time.Time         `json:"new_end_date,omitempty"`
	NewMonthlyRentCents *int32             `json:"new_monthly_rent_cents,omitempty"`
	Reason              string             `json:"reason"`
	Status              ModificationStatus `json:"status"`
	ResolvedOn          *time.Time         `json:"resolved_on,omitempty"`
	CreatedOn           time.Time          `json:"created_on"`
}

// PaymentModification proposes a change to an unpaid rent installment's
// amount or due date. Paid installments cannot be modified.
type PaymentModification struct {
	ID             int32              `json:"id"`
	RentPaymentID  int32              `json:"rent_payment_id"`
	RequestorID    int32              `json:"requestor_id"`
	RecipientID    int32              `json:"recipient_id"`
	NewAmountCents *int32             `json:"new_amount_cents,omitempty"`
	NewDueDate     *time.Time         `json:"new_due_date,omitempty"`
	Reason         string             `json:"reason"`
	Status         ModificationStatus `json:"status"`
	ResolvedOn     *time.Time         `json:"resolved_on,omitempty"`
	CreatedOn      time.Time          `json:"created_on"`
}
