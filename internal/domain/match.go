package domain

import "time"

// Match pairs a tenant's trip with a listing before a lease exists. Signature
// and payment-authorization timestamps accumulate on the match; once both
// sides have signed and payment is authorized, a Booking is created from it.
type Match struct {
	ID                  int32      `json:"id"`
	TripID              int32      `json:"trip_id"`
	ListingID           int32      `json:"listing_id"`
	TenantID            int32      `json:"tenant_id"`
	LandlordID          int32      `json:"landlord_id"`
	MonthlyRentCents    int32      `json:"monthly_rent_cents"`
	LeaseDocumentID     *int32     `json:"lease_document_id,omitempty"`
	TenantSignedOn      *time.Time `json:"tenant_signed_on,omitempty"`
	LandlordSignedOn    *time.Time `json:"landlord_signed_on,omitempty"`
	PaymentAuthorizedOn *time.Time `json:"payment_authorized_on,omitempty"`
	CreatedOn           time.Time  `json:"created_on"`
	UpdatedOn           time.Time  `json:"updated_on"`
}

func (m *Match) FullySigned() bool {
	return m.TenantSignedOn != nil && m.LandlordSignedOn != nil
}

// PendingBooking reports whether the match is surfaced as a pending booking:
// payment authorized, lease signed on exactly one side, and no booking yet.
// The caller supplies whether a booking row exists for the match.
func (m *Match) PendingBooking(hasBooking bool) bool {
	if hasBooking || m.PaymentAuthorizedOn == nil {
		return false
	}
	tenantSigned := m.TenantSignedOn != nil
	landlordSigned := m.LandlordSignedOn != nil
	return tenantSigned != landlordSigned
}
