// Package pricing computes the cost breakdown for a trip against a listing.
// Everything here is a pure function over cents: for fixed inputs the result
// is deterministic, with no I/O and no hidden state.
package pricing

import (
	"errors"
	"math"
	"time"

	"rentmatch-backend/internal/domain"
)

// ErrRentUnavailable is returned when no pricing tier covers the trip length.
// Callers must treat the listing as unbookable for that trip rather than
// falling back to any default amount.
var ErrRentUnavailable = errors.New("no monthly pricing tier covers the trip length")

type PaymentMethod string

const (
	MethodCard         PaymentMethod = "CARD"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// Fees holds the configured fee constants. Rates are in basis points so the
// arithmetic stays integer until the final rounding step.
type Fees struct {
	ServiceFeeShortBps   int32 // trips up to and including the boundary
	ServiceFeeLongBps    int32 // trips longer than the boundary
	ServiceFeeBoundaryMo int32 // boundary in months
	TransferFeeCents     int32 // flat, charged once per deposit transaction
	CardRateBps          int32 // gateway percentage fee
	CardFixedCents       int32 // gateway fixed fee
}

// DefaultFees mirrors the production configuration defaults.
func DefaultFees() Fees {
	return Fees{
		ServiceFeeShortBps:   300,
		ServiceFeeLongBps:    150,
		ServiceFeeBoundaryMo: 6,
		TransferFeeCents:     500,
		CardRateBps:          290,
		CardFixedCents:       30,
	}
}

// RentQuote is the result of tier selection. Available is false when the
// listing has no tier covering the requested length; AmountCents is only
// meaningful when Available is true.
type RentQuote struct {
	AmountCents int32
	Months      int32
	Available   bool
}

// QuoteMonthlyRent selects the listing tier for a trip of the given length in
// months: the smallest tier at or above the trip length, else the largest
// tier below it. A listing with no tiers yields an unavailable quote.
func QuoteMonthlyRent(tiers []domain.MonthlyPricing, tripMonths int32) RentQuote {
	var atOrAbove *domain.MonthlyPricing
	var below *domain.MonthlyPricing
	for i := range tiers {
		t := &tiers[i]
		if t.Months >= tripMonths {
			if atOrAbove == nil || t.Months < atOrAbove.Months {
				atOrAbove = t
			}
		} else {
			if below == nil || t.Months > below.Months {
				below = t
			}
		}
	}
	if atOrAbove != nil {
		return RentQuote{AmountCents: atOrAbove.PriceCents, Months: atOrAbove.Months, Available: true}
	}
	if below != nil {
		return RentQuote{AmountCents: below.PriceCents, Months: below.Months, Available: true}
	}
	return RentQuote{}
}

// ProratedRent computes the partial first-month rent for a move-in on the
// given date: monthlyRent * daysFromMoveInToEndOfMonth / daysInMonth, rounded
// to the nearest cent.
func ProratedRent(monthlyRentCents int32, moveIn time.Time) int32 {
	dim := DaysInMonth(moveIn.Year(), int(moveIn.Month()))
	occupied := dim - moveIn.Day() + 1
	return roundRatio(int64(monthlyRentCents)*int64(occupied), int64(dim))
}

// ServiceFee computes the recurring-rent fee: the short rate applies up to
// and including the boundary month count, the long rate beyond it.
func ServiceFee(monthlyRentCents int32, tripMonths int32, fees Fees) int32 {
	bps := fees.ServiceFeeLongBps
	if tripMonths <= fees.ServiceFeeBoundaryMo {
		bps = fees.ServiceFeeShortBps
	}
	return roundRatio(int64(monthlyRentCents)*int64(bps), 10000)
}

// CardGrossUp returns the gross charge for a desired net amount under the
// gateway's inclusive fee formula G = (N + f) / (1 - r).
func CardGrossUp(netCents int32, fees Fees) int32 {
	rate := float64(fees.CardRateBps) / 10000.0
	gross := (float64(netCents) + float64(fees.CardFixedCents)) / (1.0 - rate)
	return int32(math.Round(gross))
}

// CardProcessingFee is the displayed fee: gross minus net.
func CardProcessingFee(netCents int32, fees Fees) int32 {
	return CardGrossUp(netCents, fees) - netCents
}

// Breakdown is the full deterministic cost summary shown before payment.
type Breakdown struct {
	MonthlyRentCents     int32 `json:"monthly_rent_cents"`
	BaseRentCents        int32 `json:"base_rent_cents"`
	PetRentCents         int32 `json:"pet_rent_cents"`
	ProratedRentCents    int32 `json:"prorated_rent_cents"`
	SecurityDepositCents int32 `json:"security_deposit_cents"`
	PetDepositCents      int32 `json:"pet_deposit_cents"`
	TransferFeeCents     int32 `json:"transfer_fee_cents"`
	ServiceFeeCents      int32 `json:"service_fee_cents"`
	ProcessingFeeCents   int32 `json:"processing_fee_cents"`
	TotalDueTodayCents   int32 `json:"total_due_today_cents"`
	TripMonths           int32 `json:"trip_months"`
}

// ComputeBreakdown produces the cost breakdown for a trip against a listing.
// The card method adds the gateway gross-up on the total; bank transfer does
// not. Returns ErrRentUnavailable when no tier covers the trip.
func ComputeBreakdown(trip *domain.Trip, listing *domain.Listing, method PaymentMethod, fees Fees) (Breakdown, error) {
	months, err := TripMonths(trip.StartDate, trip.EndDate)
	if err != nil {
		return Breakdown{}, err
	}
	tripMonths := int32(months)

	quote := QuoteMonthlyRent(listing.Pricing, tripMonths)
	if !quote.Available {
		return Breakdown{}, ErrRentUnavailable
	}

	petRent := int32(0)
	petDeposit := int32(0)
	if trip.NumPets > 0 && listing.PetFriendly {
		petRent = listing.PetRentCents * trip.NumPets
		petDeposit = listing.PetDepositCents
	}

	monthly := quote.AmountCents + petRent
	prorated := ProratedRent(monthly, trip.StartDate)
	serviceFee := ServiceFee(monthly, tripMonths, fees)

	b := Breakdown{
		MonthlyRentCents:     monthly,
		BaseRentCents:        quote.AmountCents,
		PetRentCents:         petRent,
		ProratedRentCents:    prorated,
		SecurityDepositCents: listing.SecurityDepositCents,
		PetDepositCents:      petDeposit,
		TransferFeeCents:     fees.TransferFeeCents,
		ServiceFeeCents:      serviceFee,
		TripMonths:           tripMonths,
	}

	net := prorated + b.SecurityDepositCents + petDeposit + fees.TransferFeeCents + serviceFee
	if method == MethodCard {
		b.ProcessingFeeCents = CardProcessingFee(net, fees)
	}
	b.TotalDueTodayCents = net + b.ProcessingFeeCents
	return b, nil
}

// roundRatio divides num by den rounding half away from zero. Inputs are
// non-negative in every call site.
func roundRatio(num, den int64) int32 {
	return int32((num + den/2) / den)
}
