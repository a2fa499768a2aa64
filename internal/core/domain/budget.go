package domain

import "github.com/shopspring/decimal"

// Budget is a campaign budget triple plus the amount the client pays.
// Amounts carry two decimal places.
type Budget struct {
	Base       decimal.Decimal `json:"base"`
	VAT        decimal.Decimal `json:"vat"`
	Total      decimal.Decimal `json:"total"`
	NetPayable decimal.Decimal `json:"net_payable"`
}

// AssignmentBudget is the computed breakdown of a single offer.
type AssignmentBudget struct {
	Offer       decimal.Decimal `json:"offer"`
	VAT         decimal.Decimal `json:"vat"`
	Total       decimal.Decimal `json:"total"`
	PlatformFee decimal.Decimal `json:"platform_fee"`
	Payout      decimal.Decimal `json:"payout"`
}

// Pricing is the budget calculator. It is a pure function of its
// configured rates and the input amount.
type Pricing struct {
	VATRate            decimal.Decimal
	PlatformFeePercent decimal.Decimal
}

// DefaultPricing uses 15% VAT and a 10% platform fee.
func DefaultPricing() Pricing {
	return Pricing{
		VATRate:            decimal.RequireFromString("0.15"),
		PlatformFeePercent: decimal.NewFromInt(10),
	}
}

var hundred = decimal.NewFromInt(100)

// Compute derives VAT, total and net payable from a base amount. VAT is
// rounded first and the total is rounded from base+VAT, never derived by
// subtraction. decimal.Round rounds half away from zero.
func (p Pricing) Compute(base decimal.Decimal) Budget {
	vat := base.Mul(p.VATRate).Round(2)
	total := base.Add(vat).Round(2)
	return Budget{Base: base, VAT: vat, Total: total, NetPayable: total}
}

// ComputeAssignment applies the VAT formula to an assignment offer and
// splits off the platform fee.
func (p Pricing) ComputeAssignment(offer decimal.Decimal) AssignmentBudget {
	b := p.Compute(offer)
	fee := offer.Mul(p.PlatformFeePercent).Div(hundred).Round(2)
	return AssignmentBudget{
		Offer:       offer,
		VAT:         b.VAT,
		Total:       b.Total,
		PlatformFee: fee,
		Payout:      offer.Sub(fee),
	}
}

// Consistent reports whether b satisfies the VAT invariant under p.
func (p Pricing) Consistent(b Budget) bool {
	want := p.Compute(b.Base)
	return want.VAT.Equal(b.VAT) && want.Total.Equal(b.Total)
}
