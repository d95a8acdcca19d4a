package config

import "rentmatch-backend/internal/pricing"

// PricingFees maps the fee configuration into the pricing package's value
// type so the calculator stays free of config concerns.
func (c *Config) PricingFees() pricing.Fees {
	return pricing.Fees{
		ServiceFeeShortBps:   c.Fees.ServiceFeeShortBps,
		ServiceFeeLongBps:    c.Fees.ServiceFeeLongBps,
		ServiceFeeBoundaryMo: c.Fees.ServiceFeeBoundaryMo,
		TransferFeeCents:     c.Fees.TransferFeeCents,
		CardRateBps:          c.Fees.CardRateBps,
		CardFixedCents:       c.Fees.CardFixedCents,
	}
}
