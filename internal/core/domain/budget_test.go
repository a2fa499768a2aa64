package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompute(t *testing.T) {
	p := DefaultPricing()
	cases := []struct {
		name            string
		base            string
		vat, total, net string
	}{
		{"round amount", "10000", "1500", "11500", "11500"},
		{"vat rounds half away from zero", "0.05", "0.01", "0.06", "0.06"},
		{"total is rounded from base plus rounded vat", "33.33", "5.00", "38.33", "38.33"},
		{"cents", "199.99", "30.00", "229.99", "229.99"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := p.Compute(dec(tc.base))
			assert.True(t, b.VAT.Equal(dec(tc.vat)), "vat %s", b.VAT)
			assert.True(t, b.Total.Equal(dec(tc.total)), "total %s", b.Total)
			assert.True(t, b.NetPayable.Equal(dec(tc.net)), "net %s", b.NetPayable)
			assert.True(t, p.Consistent(b))
		})
	}
}

func TestComputeRoundsVATBeforeAdding(t *testing.T) {
	for _, rate := range []string{"0.15", "0.075", "0.05"} {
		p := Pricing{VATRate: dec(rate), PlatformFeePercent: dec("10")}
		for cents := int64(0); cents <= 250000; cents += 7 {
			base := decimal.New(cents, -2)
			vat := base.Mul(p.VATRate).Round(2)
			want := base.Add(vat).Round(2)

			got := p.Compute(base)
			if !got.VAT.Equal(vat) {
				t.Fatalf("rate %s base %s: vat %s, want %s", rate, base, got.VAT, vat)
			}
			if !got.Total.Equal(want) || !got.NetPayable.Equal(want) {
				t.Fatalf("rate %s base %s: total %s, want %s", rate, base, got.Total, want)
			}
			if !got.Total.Sub(got.VAT).Equal(base) {
				t.Fatalf("rate %s base %s: total minus vat is %s", rate, base, got.Total.Sub(got.VAT))
			}
		}
	}
}

func TestConsistentRejectsDerivedVAT(t *testing.T) {
	p := DefaultPricing()
	b := Budget{Base: dec("100"), VAT: dec("14"), Total: dec("114")}
	assert.False(t, p.Consistent(b))
}

func TestComputeAssignment(t *testing.T) {
	p := Pricing{VATRate: dec("0.15"), PlatformFeePercent: dec("12.5")}
	b := p.ComputeAssignment(dec("1000"))

	assert.True(t, b.VAT.Equal(dec("150")))
	assert.True(t, b.Total.Equal(dec("1150")))
	assert.True(t, b.PlatformFee.Equal(dec("125")))
	assert.True(t, b.Payout.Equal(dec("875")))
}

func TestBudgetProposalRoundTrip(t *testing.T) {
	p := NewBudgetProposal(DefaultPricing(), dec("12000"))
	b := p.Budget()
	assert.True(t, b.Total.Equal(dec("13800")))
	assert.True(t, b.NetPayable.Equal(b.Total))
	assert.Equal(t, ProposalBudget, ProposalKind(p))
	assert.Equal(t, ProposalServiceFee, ProposalKind(ServiceFeeProposal{Percent: dec("5")}))
	assert.Empty(t, ProposalKind(nil))
}
