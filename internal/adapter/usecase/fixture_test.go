package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"influence-hub/internal/adapter/memory"
	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
	"influence-hub/internal/core/port/mocks"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fixture wires the state machine over the in-memory adapters with one
// profile per role and three influencers.
type fixture struct {
	t     *testing.T
	ctx   context.Context
	clock *testClock
	repo  *memory.CampaignRepository
	dir   *memory.ProfileDirectory
	lc    *Lifecycle

	client     *ClientService
	admin      *AdminService
	agency     *AgencyService
	influencer *InfluencerService

	clientActor, adminActor, agencyActor domain.Actor
	clientID, adminID, agencyID          uuid.UUID
	creators                             []domain.Actor
	creatorIDs                           []uuid.UUID

	mu        sync.Mutex
	sent      []domain.Notification
	notifyErr error
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		t:     t,
		ctx:   context.Background(),
		clock: &testClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		repo:  memory.NewCampaignRepository(),
		dir:   memory.NewProfileDirectory(),
	}

	notifier := mocks.NewMockNotifier(t)
	notifier.EXPECT().
		Notify(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, n domain.Notification) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.sent = append(f.sent, n)
			return f.notifyErr
		}).
		Maybe()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]Option{WithClock(f.clock.Now), WithOfferTTL(72 * time.Hour)}, opts...)
	f.lc = NewLifecycle(f.repo, f.dir, notifier, logger, opts...)
	f.client = NewClientService(f.lc)
	f.admin = NewAdminService(f.lc)
	f.agency = NewAgencyService(f.lc)
	f.influencer = NewInfluencerService(f.lc)

	f.clientActor, f.clientID = f.addProfile(domain.RoleClient, "brand")
	f.adminActor, f.adminID = f.addProfile(domain.RoleAdmin, "ops")
	f.agencyActor, f.agencyID = f.addProfile(domain.RoleAgency, "agency")
	for _, name := range []string{"creator-1", "creator-2", "creator-3"} {
		a, id := f.addProfile(domain.RoleInfluencer, name)
		f.creators = append(f.creators, a)
		f.creatorIDs = append(f.creatorIDs, id)
	}
	return f
}

func (f *fixture) addProfile(role domain.Role, name string) (domain.Actor, uuid.UUID) {
	f.t.Helper()
	p := domain.Profile{ID: uuid.New(), UserID: uuid.New(), Role: role, DisplayName: name}
	require.NoError(f.t, f.dir.AddProfile(f.ctx, p))
	return domain.Actor{UserID: p.UserID, Role: role}, p.ID
}

func (f *fixture) notifications() []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Notification(nil), f.sent...)
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// placed walks a client campaign through the wizard with a base budget of
// 10000 and the given number of milestones, then places it.
func (f *fixture) placed(milestones int) *domain.Campaign {
	f.t.Helper()
	c, err := f.client.CreateDraft(f.ctx, f.clientActor, domain.BasicInfo{
		Name: "Summer drop", Type: domain.TypeInfluencerPromotion, Niche: "fashion",
	})
	require.NoError(f.t, err)

	_, err = f.client.UpdateTargeting(f.ctx, f.clientActor, c.ID, domain.TargetingInput{
		Targeting: domain.Targeting{Platforms: []string{"instagram"}},
	})
	require.NoError(f.t, err)
	_, err = f.client.UpdateDetails(f.ctx, f.clientActor, c.ID, domain.Details{Objective: "sales"})
	require.NoError(f.t, err)

	plan := make([]domain.MilestoneDraft, milestones)
	for i := range plan {
		plan[i] = domain.MilestoneDraft{Order: i + 1, Title: "Post", Quantity: 1}
	}
	_, err = f.client.UpdateBudget(f.ctx, f.clientActor, c.ID, domain.BudgetInput{BaseBudget: amount("10000"), Milestones: plan})
	require.NoError(f.t, err)

	c, err = f.client.Place(f.ctx, f.clientActor, c.ID)
	require.NoError(f.t, err)
	return c
}

// accepted quotes 10000 and lets the client accept, which confirms a total
// of 11500.
func (f *fixture) accepted(milestones int) *domain.Campaign {
	f.t.Helper()
	c := f.placed(milestones)
	_, err := f.admin.SendQuote(f.ctx, f.adminActor, c.ID, amount("10000"))
	require.NoError(f.t, err)
	c, err = f.client.Accept(f.ctx, f.clientActor, c.ID)
	require.NoError(f.t, err)
	return c
}

func (f *fixture) funded(milestones int) *domain.Campaign {
	f.t.Helper()
	c := f.accepted(milestones)
	c, err := f.admin.RecordPayment(f.ctx, f.adminActor, c.ID, amount("11500"))
	require.NoError(f.t, err)
	return c
}

func (f *fixture) offer(campaignID uuid.UUID, creators ...int) []domain.Assignment {
	f.t.Helper()
	offers := make([]domain.OfferInput, len(creators))
	for i, n := range creators {
		offers[i] = domain.OfferInput{PartyKind: domain.PartyInfluencer, PartyID: f.creatorIDs[n], OfferAmount: amount("1000")}
	}
	as, err := f.admin.CreateAssignments(f.ctx, f.adminActor, campaignID, offers)
	require.NoError(f.t, err)
	return as
}

// executing returns a funded, active campaign staffed by creator 0.
func (f *fixture) executing(milestones int) (*domain.Campaign, []domain.Milestone) {
	f.t.Helper()
	c := f.funded(milestones)
	as := f.offer(c.ID, 0)
	_, err := f.influencer.RespondToOffer(f.ctx, f.creators[0], as[0].ID, domain.DecisionAccept, "")
	require.NoError(f.t, err)
	return f.view(c.ID)
}

func (f *fixture) view(campaignID uuid.UUID) (*domain.Campaign, []domain.Milestone) {
	f.t.Helper()
	v, err := f.admin.GetCampaign(f.ctx, f.adminActor, campaignID)
	require.NoError(f.t, err)
	return &v.Campaign, v.Milestones
}

func (f *fixture) assignments(campaignID uuid.UUID) []domain.Assignment {
	f.t.Helper()
	as, err := f.lc.Assignments(f.ctx, port.AssignmentFilter{CampaignID: &campaignID})
	require.NoError(f.t, err)
	return as
}

func (f *fixture) negotiations(campaignID uuid.UUID) []domain.Negotiation {
	f.t.Helper()
	log, err := f.repo.ListNegotiations(f.ctx, campaignID)
	require.NoError(f.t, err)
	return log
}
