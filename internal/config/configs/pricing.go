package configs

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pricing holds the commercial constants applied to campaign and
// assignment budgets. VATRate is a fraction (0.15 means 15%), while
// PlatformFeePercent is expressed in percent of an assignment offer.
// Both are parsed through decimal.Decimal's text unmarshaler so that no
// binary floating point is involved.
type Pricing struct {
	VATRate            decimal.Decimal `env:"VAT_RATE" envDefault:"0.15"`
	PlatformFeePercent decimal.Decimal `env:"PLATFORM_FEE_PERCENT" envDefault:"10"`
	// OfferTTL is applied to assignment offers created without an
	// explicit expiry. Zero disables the default.
	OfferTTL time.Duration `env:"OFFER_TTL" envDefault:"168h"`
}
