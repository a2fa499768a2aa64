package usecase

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// View loads a campaign with everything it owns after guard approved it.
// The owned records are read concurrently.
func (l *Lifecycle) View(ctx context.Context, campaignID uuid.UUID, guard Guard) (*port.CampaignView, error) {
	c, err := l.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("campaign not found")
	}
	if guard != nil {
		if err = guard(c); err != nil {
			return nil, err
		}
	}
	view := &port.CampaignView{Campaign: *c}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		view.Milestones, err = l.repo.ListMilestones(gctx, campaignID)
		return err
	})
	g.Go(func() (err error) {
		view.Assets, err = l.repo.ListAssets(gctx, campaignID)
		return err
	})
	g.Go(func() (err error) {
		view.Negotiations, err = l.repo.ListNegotiations(gctx, campaignID)
		return err
	})
	g.Go(func() (err error) {
		view.Assignments, err = l.repo.ListAssignments(gctx, port.AssignmentFilter{CampaignID: &campaignID})
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

// List returns campaigns matching f.
func (l *Lifecycle) List(ctx context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	return l.repo.ListCampaigns(ctx, f)
}

// Assignments returns assignments matching f.
func (l *Lifecycle) Assignments(ctx context.Context, f port.AssignmentFilter) ([]domain.Assignment, error) {
	return l.repo.ListAssignments(ctx, f)
}
