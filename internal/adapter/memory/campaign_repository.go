package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// bundle is a campaign with every record it owns.
type bundle struct {
	campaign     domain.Campaign
	milestones   []domain.Milestone
	assignments  []domain.Assignment
	negotiations []domain.Negotiation
	assets       []domain.Asset
}

func (b *bundle) clone() *bundle {
	return &bundle{
		campaign:     b.campaign,
		milestones:   slices.Clone(b.milestones),
		assignments:  slices.Clone(b.assignments),
		negotiations: slices.Clone(b.negotiations),
		assets:       slices.Clone(b.assets),
	}
}

// CampaignRepository implements port.CampaignRepository in process memory.
// Writers of one campaign are serialized by a per-campaign mutex and work
// on a staged copy that replaces the stored bundle only on success.
type CampaignRepository struct {
	mu          sync.RWMutex
	bundles     map[uuid.UUID]*bundle
	milestoneOf map[uuid.UUID]uuid.UUID
	assignOf    map[uuid.UUID]uuid.UUID

	locks sync.Map // campaign id -> *sync.Mutex
}

// NewCampaignRepository returns an empty repository.
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{
		bundles:     make(map[uuid.UUID]*bundle),
		milestoneOf: make(map[uuid.UUID]uuid.UUID),
		assignOf:    make(map[uuid.UUID]uuid.UUID),
	}
}

// CreateCampaign stores a new campaign with its milestones and assets.
func (r *CampaignRepository) CreateCampaign(_ context.Context, c *domain.Campaign, milestones []domain.Milestone, assets []domain.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bundles[c.ID]; ok {
		return domain.Conflict("campaign already exists")
	}
	c.Version = 1
	b := &bundle{
		campaign:   *c,
		milestones: slices.Clone(milestones),
		assets:     slices.Clone(assets),
	}
	r.bundles[c.ID] = b
	for _, m := range milestones {
		r.milestoneOf[m.ID] = c.ID
	}
	return nil
}

// GetCampaign returns a copy of the campaign, or nil.
func (r *CampaignRepository) GetCampaign(_ context.Context, id uuid.UUID) (*domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bundles[id]
	if !ok {
		return nil, nil
	}
	c := b.campaign
	return &c, nil
}

// ListCampaigns returns matching campaigns, newest first.
func (r *CampaignRepository) ListCampaigns(_ context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Campaign, 0)
	for _, b := range r.bundles {
		c := b.campaign
		if f.ClientID != nil && c.ClientID != *f.ClientID {
			continue
		}
		if f.AgencyID != nil && (c.AgencyID == nil || *c.AgencyID != *f.AgencyID) {
			continue
		}
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		if f.PartyID != nil && !slices.ContainsFunc(b.assignments, func(a domain.Assignment) bool {
			return a.PartyID == *f.PartyID
		}) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []domain.Campaign{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *CampaignRepository) ListMilestones(_ context.Context, campaignID uuid.UUID) ([]domain.Milestone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b, ok := r.bundles[campaignID]; ok {
		return slices.Clone(b.milestones), nil
	}
	return []domain.Milestone{}, nil
}

func (r *CampaignRepository) ListAssets(_ context.Context, campaignID uuid.UUID) ([]domain.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b, ok := r.bundles[campaignID]; ok {
		return slices.Clone(b.assets), nil
	}
	return []domain.Asset{}, nil
}

func (r *CampaignRepository) ListNegotiations(_ context.Context, campaignID uuid.UUID) ([]domain.Negotiation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b, ok := r.bundles[campaignID]; ok {
		return slices.Clone(b.negotiations), nil
	}
	return []domain.Negotiation{}, nil
}

// ListAssignments scans every campaign for matching assignments.
func (r *CampaignRepository) ListAssignments(_ context.Context, f port.AssignmentFilter) ([]domain.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Assignment, 0)
	for id, b := range r.bundles {
		if f.CampaignID != nil && id != *f.CampaignID {
			continue
		}
		for _, a := range b.assignments {
			if f.PartyID != nil && a.PartyID != *f.PartyID {
				continue
			}
			if f.Status != nil && a.Status != *f.Status {
				continue
			}
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *CampaignRepository) CampaignOfMilestone(_ context.Context, milestoneID uuid.UUID) (uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.milestoneOf[milestoneID], nil
}

func (r *CampaignRepository) CampaignOfAssignment(_ context.Context, assignmentID uuid.UUID) (uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.assignOf[assignmentID], nil
}

func (r *CampaignRepository) lockFor(id uuid.UUID) *sync.Mutex {
	l, _ := r.locks.LoadOrStore(id, &sync.Mutex{})
	return l.(*sync.Mutex)
}

// Atomic runs fn against a staged copy of the campaign and publishes the
// copy when fn succeeds.
func (r *CampaignRepository) Atomic(ctx context.Context, campaignID uuid.UUID, fn func(tx port.CampaignTx) error) error {
	l := r.lockFor(campaignID)
	l.Lock()
	defer l.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	stored, ok := r.bundles[campaignID]
	var staged *bundle
	if ok {
		staged = stored.clone()
	}
	r.mu.RUnlock()
	if !ok {
		return domain.NotFound("campaign not found")
	}

	if err := fn(&campaignTx{b: staged}); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bundles[campaignID] != stored {
		return domain.Conflict("campaign was modified concurrently")
	}
	r.bundles[campaignID] = staged
	for _, m := range stored.milestones {
		delete(r.milestoneOf, m.ID)
	}
	for _, m := range staged.milestones {
		r.milestoneOf[m.ID] = campaignID
	}
	for _, a := range staged.assignments {
		r.assignOf[a.ID] = campaignID
	}
	return nil
}

type campaignTx struct {
	b *bundle
}

func (t *campaignTx) Campaign(context.Context) (*domain.Campaign, error) {
	c := t.b.campaign
	return &c, nil
}

func (t *campaignTx) UpdateCampaign(_ context.Context, c *domain.Campaign) error {
	if c.Version != t.b.campaign.Version {
		return domain.Conflict("campaign version mismatch")
	}
	c.Version++
	t.b.campaign = *c
	return nil
}

func (t *campaignTx) Milestones(context.Context) ([]domain.Milestone, error) {
	return slices.Clone(t.b.milestones), nil
}

func (t *campaignTx) ReplaceMilestones(_ context.Context, ms []domain.Milestone) error {
	t.b.milestones = slices.Clone(ms)
	return nil
}

func (t *campaignTx) UpdateMilestone(_ context.Context, m *domain.Milestone) error {
	for i := range t.b.milestones {
		if t.b.milestones[i].ID == m.ID {
			t.b.milestones[i] = *m
			return nil
		}
	}
	return domain.NotFound("milestone not found")
}

func (t *campaignTx) Assignments(context.Context) ([]domain.Assignment, error) {
	return slices.Clone(t.b.assignments), nil
}

func (t *campaignTx) InsertAssignments(_ context.Context, as []domain.Assignment) error {
	t.b.assignments = append(t.b.assignments, as...)
	return nil
}

func (t *campaignTx) UpdateAssignment(_ context.Context, a *domain.Assignment) error {
	for i := range t.b.assignments {
		if t.b.assignments[i].ID == a.ID {
			t.b.assignments[i] = *a
			return nil
		}
	}
	return domain.NotFound("assignment not found")
}

func (t *campaignTx) Negotiations(context.Context) ([]domain.Negotiation, error) {
	return slices.Clone(t.b.negotiations), nil
}

func (t *campaignTx) AppendNegotiation(_ context.Context, n *domain.Negotiation) error {
	t.b.negotiations = append(t.b.negotiations, *n)
	return nil
}

func (t *campaignTx) MarkNegotiationsRead(_ context.Context, senders ...domain.Role) (int, error) {
	n := 0
	for i := range t.b.negotiations {
		neg := &t.b.negotiations[i]
		if !neg.IsRead && slices.Contains(senders, neg.Sender) {
			neg.IsRead = true
			n++
		}
	}
	return n, nil
}

func (t *campaignTx) ReplaceAssets(_ context.Context, assets []domain.Asset) error {
	t.b.assets = slices.Clone(assets)
	return nil
}
