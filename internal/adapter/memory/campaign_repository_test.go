package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func seedCampaign(t *testing.T, r *CampaignRepository, clientID uuid.UUID, created time.Time) *domain.Campaign {
	t.Helper()
	c := &domain.Campaign{
		ID:        uuid.New(),
		ClientID:  clientID,
		Name:      "c",
		Status:    domain.StatusDraft,
		CreatedAt: created,
	}
	ms := []domain.Milestone{{ID: uuid.New(), CampaignID: c.ID, Order: 1, Title: "m", Quantity: 1, Status: domain.MilestonePending}}
	require.NoError(t, r.CreateCampaign(context.Background(), c, ms, nil))
	return c
}

type snapshot struct {
	Campaign     *domain.Campaign
	Milestones   []domain.Milestone
	Negotiations []domain.Negotiation
	Assignments  []domain.Assignment
}

func snap(t *testing.T, r *CampaignRepository, id uuid.UUID) snapshot {
	t.Helper()
	ctx := context.Background()
	c, err := r.GetCampaign(ctx, id)
	require.NoError(t, err)
	ms, err := r.ListMilestones(ctx, id)
	require.NoError(t, err)
	ns, err := r.ListNegotiations(ctx, id)
	require.NoError(t, err)
	as, err := r.ListAssignments(ctx, port.AssignmentFilter{CampaignID: &id})
	require.NoError(t, err)
	return snapshot{Campaign: c, Milestones: ms, Negotiations: ns, Assignments: as}
}

func TestAtomicRollsBackOnError(t *testing.T) {
	r := NewCampaignRepository()
	c := seedCampaign(t, r, uuid.New(), epoch)
	before := snap(t, r, c.ID)
	boom := errors.New("boom")

	err := r.Atomic(context.Background(), c.ID, func(tx port.CampaignTx) error {
		ctx := context.Background()
		cur, err := tx.Campaign(ctx)
		require.NoError(t, err)
		cur.Status = domain.StatusCancelled
		require.NoError(t, tx.UpdateCampaign(ctx, cur))
		require.NoError(t, tx.ReplaceMilestones(ctx, nil))
		require.NoError(t, tx.AppendNegotiation(ctx, &domain.Negotiation{ID: uuid.New(), Action: domain.ActionMessage}))
		require.NoError(t, tx.InsertAssignments(ctx, []domain.Assignment{{ID: uuid.New(), CampaignID: c.ID}}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	if diff := cmp.Diff(before, snap(t, r, c.ID)); diff != "" {
		t.Fatalf("state changed after rollback (-want +got):\n%s", diff)
	}
}

func TestAtomicCommits(t *testing.T) {
	r := NewCampaignRepository()
	c := seedCampaign(t, r, uuid.New(), epoch)
	ms, _ := r.ListMilestones(context.Background(), c.ID)
	oldMilestone := ms[0].ID
	replacement := domain.Milestone{ID: uuid.New(), CampaignID: c.ID, Order: 1, Title: "new", Quantity: 2}
	offer := domain.Assignment{ID: uuid.New(), CampaignID: c.ID, PartyID: uuid.New(), Status: domain.AssignmentNewOffer}

	err := r.Atomic(context.Background(), c.ID, func(tx port.CampaignTx) error {
		ctx := context.Background()
		if err := tx.ReplaceMilestones(ctx, []domain.Milestone{replacement}); err != nil {
			return err
		}
		return tx.InsertAssignments(ctx, []domain.Assignment{offer})
	})
	require.NoError(t, err)

	ctx := context.Background()
	owner, _ := r.CampaignOfMilestone(ctx, replacement.ID)
	assert.Equal(t, c.ID, owner)
	owner, _ = r.CampaignOfMilestone(ctx, oldMilestone)
	assert.Equal(t, uuid.Nil, owner)
	owner, _ = r.CampaignOfAssignment(ctx, offer.ID)
	assert.Equal(t, c.ID, owner)

	got := snap(t, r, c.ID)
	if diff := cmp.Diff([]domain.Assignment{offer}, got.Assignments); diff != "" {
		t.Fatalf("assignments mismatch (-want +got):\n%s", diff)
	}
}

func TestAtomicMissingCampaign(t *testing.T) {
	r := NewCampaignRepository()
	err := r.Atomic(context.Background(), uuid.New(), func(port.CampaignTx) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAtomicHonoursCancelledContext(t *testing.T) {
	r := NewCampaignRepository()
	c := seedCampaign(t, r, uuid.New(), epoch)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Atomic(ctx, c.ID, func(port.CampaignTx) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUpdateCampaignRejectsStaleVersion(t *testing.T) {
	r := NewCampaignRepository()
	c := seedCampaign(t, r, uuid.New(), epoch)

	err := r.Atomic(context.Background(), c.ID, func(tx port.CampaignTx) error {
		stale := *c
		stale.Version = 0
		return tx.UpdateCampaign(context.Background(), &stale)
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAtomicSerializesWriters(t *testing.T) {
	r := NewCampaignRepository()
	c := seedCampaign(t, r, uuid.New(), epoch)

	wg := sync.WaitGroup{}
	count := 20
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			err := r.Atomic(context.Background(), c.ID, func(tx port.CampaignTx) error {
				cur, err := tx.Campaign(context.Background())
				if err != nil {
					return err
				}
				cur.PaidAmount = cur.PaidAmount.Add(decimal.NewFromInt(1))
				return tx.UpdateCampaign(context.Background(), cur)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := r.GetCampaign(context.Background(), c.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.Equal(decimal.NewFromInt(int64(count))), "paid %s", got.PaidAmount)
	assert.Equal(t, int64(count+1), got.Version)
}

func TestListCampaigns(t *testing.T) {
	r := NewCampaignRepository()
	ctx := context.Background()
	alice, bob, party := uuid.New(), uuid.New(), uuid.New()
	first := seedCampaign(t, r, alice, epoch)
	second := seedCampaign(t, r, alice, epoch.Add(time.Hour))
	third := seedCampaign(t, r, bob, epoch.Add(2*time.Hour))

	require.NoError(t, r.Atomic(ctx, second.ID, func(tx port.CampaignTx) error {
		return tx.InsertAssignments(ctx, []domain.Assignment{{ID: uuid.New(), CampaignID: second.ID, PartyID: party}})
	}))

	ids := func(cs []domain.Campaign) []uuid.UUID {
		out := make([]uuid.UUID, len(cs))
		for i, c := range cs {
			out[i] = c.ID
		}
		return out
	}

	all, err := r.ListCampaigns(ctx, port.CampaignFilter{})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{third.ID, second.ID, first.ID}, ids(all))

	own, err := r.ListCampaigns(ctx, port.CampaignFilter{ClientID: &alice, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID}, ids(own))

	staffed, err := r.ListCampaigns(ctx, port.CampaignFilter{PartyID: &party})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second.ID}, ids(staffed))

	draft := domain.StatusDraft
	none, err := r.ListCampaigns(ctx, port.CampaignFilter{Status: &draft, Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMarkNegotiationsRead(t *testing.T) {
	r := NewCampaignRepository()
	c := seedCampaign(t, r, uuid.New(), epoch)
	ctx := context.Background()

	var marked int
	require.NoError(t, r.Atomic(ctx, c.ID, func(tx port.CampaignTx) error {
		for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleAgency, domain.RoleClient} {
			if err := tx.AppendNegotiation(ctx, &domain.Negotiation{ID: uuid.New(), Sender: role, Action: domain.ActionMessage}); err != nil {
				return err
			}
		}
		var err error
		marked, err = tx.MarkNegotiationsRead(ctx, domain.RoleAdmin, domain.RoleAgency)
		return err
	}))
	assert.Equal(t, 2, marked)

	log, _ := r.ListNegotiations(ctx, c.ID)
	read := make([]bool, len(log))
	for i, n := range log {
		read[i] = n.IsRead
	}
	assert.Equal(t, []bool{true, true, false}, read)
}

func TestProfileDirectory(t *testing.T) {
	d := NewProfileDirectory()
	ctx := context.Background()
	p := domain.Profile{ID: uuid.New(), UserID: uuid.New(), Role: domain.RoleInfluencer}
	require.NoError(t, d.AddProfile(ctx, p))

	id, err := d.ResolveProfile(ctx, p.UserID, domain.RoleInfluencer)
	require.NoError(t, err)
	assert.Equal(t, p.ID, id)

	_, err = d.ResolveProfile(ctx, p.UserID, domain.RoleClient)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	user, err := d.UserOfProfile(ctx, domain.RoleInfluencer, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, user)

	ghost := uuid.New()
	missing, err := d.MissingProfiles(ctx, domain.RoleInfluencer, []uuid.UUID{p.ID, ghost})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ghost}, missing)
}
