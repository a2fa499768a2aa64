package postgres

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influence-hub/internal/core/domain"
)

// fakeRow scans a values slice back as if it came from the database.
type fakeRow []any

func (r fakeRow) Scan(dest ...any) error {
	if len(dest) != len(r) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(r))
	}
	for i, v := range r {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

var equalDecimals = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestSQLBuilders(t *testing.T) {
	cols := []string{"id", "name", "version", "updated_at"}

	assert.Equal(t, "SELECT id, name, version, updated_at FROM campaigns", selectSQL("campaigns", cols))
	assert.Equal(t, "INSERT INTO campaigns (id, name, version, updated_at) VALUES ($1, $2, $3, $4)", insertSQL("campaigns", cols))
	assert.Equal(t,
		"UPDATE campaigns SET name = $2, version = version + 1, updated_at = $4 WHERE id = $1 AND version = $3",
		updateSQL("campaigns", cols))
	assert.Equal(t,
		"UPDATE assets SET url = $2 WHERE id = $1",
		updateSQL("assets", []string{"id", "url"}))
}

func TestColumnCounts(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	c := domain.Campaign{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	vals, err := campaignValues(&c)
	require.NoError(t, err)
	assert.Len(t, vals, len(campaignCols))

	m := domain.Milestone{ID: uuid.New()}
	vals, err = milestoneValues(&m)
	require.NoError(t, err)
	assert.Len(t, vals, len(milestoneCols))

	assert.Len(t, assignmentValues(&domain.Assignment{}), len(assignmentCols))

	vals, err = negotiationValues(&domain.Negotiation{})
	require.NoError(t, err)
	assert.Len(t, vals, len(negotiationCols))
}

func TestCampaignRow(t *testing.T) {
	pricing := domain.DefaultPricing()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	agency := uuid.New()
	fee := decimal.NewFromInt(8)
	turn := domain.SideAdmin
	quoted := pricing.Compute(decimal.NewFromInt(12000))

	in := domain.Campaign{
		ID:                uuid.New(),
		ClientID:          uuid.New(),
		AgencyID:          &agency,
		Name:              "Launch",
		Type:              domain.TypePaidAd,
		Niche:             "beauty",
		Targeting:         domain.Targeting{Platforms: []string{"instagram"}, AgeMin: 18},
		Details:           domain.Details{Objective: "awareness"},
		Status:            domain.StatusNegotiating,
		CurrentStep:       5,
		IsPlaced:          true,
		PlacedAt:          &now,
		Budget:            pricing.Compute(decimal.NewFromInt(10000)),
		Quoted:            &quoted,
		ServiceFeePercent: &fee,
		PaidAmount:        decimal.Zero,
		PaymentStatus:     domain.PaymentPending,
		NegotiationTurn:   &turn,
		Version:           4,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	vals, err := campaignValues(&in)
	require.NoError(t, err)

	out, err := scanCampaign(fakeRow(vals))
	require.NoError(t, err)
	if diff := cmp.Diff(in, out, equalDecimals); diff != "" {
		t.Fatalf("campaign row mismatch (-want +got):\n%s", diff)
	}

	in.Quoted, in.AgencyID, in.NegotiationTurn, in.ServiceFeePercent = nil, nil, nil, nil
	vals, err = campaignValues(&in)
	require.NoError(t, err)
	out, err = scanCampaign(fakeRow(vals))
	require.NoError(t, err)
	assert.Nil(t, out.Quoted)
	assert.Nil(t, out.AgencyID)
	assert.Nil(t, out.NegotiationTurn)
	assert.Nil(t, out.ServiceFeePercent)
}

func TestNegotiationRow(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	proposals := []domain.Proposal{
		nil,
		domain.NewBudgetProposal(domain.DefaultPricing(), decimal.RequireFromString("33.33")),
		domain.ServiceFeeProposal{Percent: decimal.NewFromInt(12)},
	}
	for _, p := range proposals {
		in := domain.Negotiation{
			ID:         uuid.New(),
			CampaignID: uuid.New(),
			Sender:     domain.RoleAgency,
			SenderID:   uuid.New(),
			Action:     domain.ActionCounterOffer,
			Proposal:   p,
			CreatedAt:  now,
		}
		vals, err := negotiationValues(&in)
		require.NoError(t, err)
		out, err := scanNegotiation(fakeRow(vals))
		require.NoError(t, err)
		if diff := cmp.Diff(in, out, equalDecimals); diff != "" {
			t.Fatalf("negotiation %q mismatch (-want +got):\n%s", domain.ProposalKind(p), diff)
		}
	}

	kind := "discount"
	_, err := scanNegotiation(fakeRow{uuid.New(), uuid.New(), "admin", uuid.New(), "counter_offer", &kind, []byte("{}"), "", false, now})
	assert.ErrorContains(t, err, `unknown proposal kind "discount"`)
}

func TestTranslate(t *testing.T) {
	plain := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		conflict bool
	}{
		{"nil", nil, false},
		{"plain", plain, false},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "assignments_open_party"}, true},
		{"foreign key", &pgconn.PgError{Code: "23503"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.Equal(t, tt.conflict, errors.Is(got, domain.ErrConflict), "got %v", got)
			if !tt.conflict {
				assert.ErrorIs(t, got, tt.err)
			}
		})
	}
}
