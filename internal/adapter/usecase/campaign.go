package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// CreateDraft starts a campaign at wizard step 1.
func (l *Lifecycle) CreateDraft(ctx context.Context, clientID uuid.UUID, info domain.BasicInfo) (*domain.Campaign, error) {
	c, err := domain.NewDraft(clientID, info, l.now)
	if err != nil {
		return nil, err
	}
	if err = l.repo.CreateCampaign(ctx, &c, nil, nil); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return &c, nil
}

// UpdateBasicInfo rewrites wizard step 1.
func (l *Lifecycle) UpdateBasicInfo(ctx context.Context, campaignID uuid.UUID, guard Guard, info domain.BasicInfo) (*domain.Campaign, error) {
	return l.run(ctx, campaignID, guard, func(_ context.Context, _ port.CampaignTx, c *domain.Campaign, _ *effects) error {
		if err := c.EnsureEditable(); err != nil {
			return err
		}
		normalized, err := info.Normalize()
		if err != nil {
			return err
		}
		c.Name, c.Type = normalized.Name, normalized.Type
		c.Niche, c.ProductCategory = normalized.Niche, normalized.ProductCategory
		c.CompleteStep(1)
		return nil
	})
}

// UpdateTargeting rewrites wizard step 2.
func (l *Lifecycle) UpdateTargeting(ctx context.Context, campaignID uuid.UUID, guard Guard, in domain.TargetingInput) (*domain.Campaign, error) {
	return l.run(ctx, campaignID, guard, func(ctx context.Context, _ port.CampaignTx, c *domain.Campaign, _ *effects) error {
		if err := c.EnsureEditable(); err != nil {
			return err
		}
		if err := l.validateTargeting(ctx, in); err != nil {
			return err
		}
		c.Targeting = in.Targeting
		c.Preferences = in.Preferences
		c.CompleteStep(2)
		return nil
	})
}

func (l *Lifecycle) validateTargeting(ctx context.Context, in domain.TargetingInput) error {
	var v []string
	t := in.Targeting
	if t.AgeMin < 0 || t.AgeMax < 0 || (t.AgeMax > 0 && t.AgeMin > t.AgeMax) {
		v = append(v, "age range is invalid")
	}
	excluded := make(map[uuid.UUID]bool, len(in.Preferences.Excluded))
	for _, id := range in.Preferences.Excluded {
		excluded[id] = true
	}
	for _, id := range in.Preferences.Preferred {
		if excluded[id] {
			v = append(v, fmt.Sprintf("influencer %s is both preferred and excluded", id))
		}
	}
	ids := append(append([]uuid.UUID{}, in.Preferences.Preferred...), in.Preferences.Excluded...)
	if len(ids) > 0 {
		missing, err := l.profiles.MissingProfiles(ctx, domain.RoleInfluencer, ids)
		if err != nil {
			return err
		}
		for _, id := range missing {
			v = append(v, fmt.Sprintf("influencer %s does not exist", id))
		}
	}
	if len(v) > 0 {
		return domain.InvalidInput("invalid targeting", v...)
	}
	return nil
}

// UpdateDetails rewrites wizard step 3.
func (l *Lifecycle) UpdateDetails(ctx context.Context, campaignID uuid.UUID, guard Guard, d domain.Details) (*domain.Campaign, error) {
	return l.run(ctx, campaignID, guard, func(_ context.Context, _ port.CampaignTx, c *domain.Campaign, _ *effects) error {
		if err := c.EnsureEditable(); err != nil {
			return err
		}
		if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
			return domain.InvalidInput("end date is before start date")
		}
		c.Details = d
		c.CompleteStep(3)
		return nil
	})
}

// UpdateBudget sets the base budget and replaces the milestone plan
// (wizard step 4). Earlier milestones are deleted, not merged.
func (l *Lifecycle) UpdateBudget(ctx context.Context, campaignID uuid.UUID, guard Guard, in domain.BudgetInput) (*domain.Campaign, error) {
	if !in.BaseBudget.IsPositive() {
		return nil, domain.InvalidInput("base budget must be positive")
	}
	return l.run(ctx, campaignID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, _ *effects) error {
		if err := c.EnsureEditable(); err != nil {
			return err
		}
		ms, err := domain.BuildMilestones(c.ID, in.Milestones, l.now().UTC())
		if err != nil {
			return err
		}
		if err = tx.ReplaceMilestones(ctx, ms); err != nil {
			return err
		}
		c.Budget = l.pricing.Compute(in.BaseBudget)
		c.CompleteStep(4)
		return nil
	})
}

// UpdateAssets replaces the asset references (wizard step 5).
func (l *Lifecycle) UpdateAssets(ctx context.Context, campaignID uuid.UUID, guard Guard, drafts []domain.AssetDraft) (*domain.Campaign, error) {
	return l.run(ctx, campaignID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, _ *effects) error {
		if err := c.EnsureEditable(); err != nil {
			return err
		}
		assets, err := buildAssets(c.ID, drafts, l.now().UTC())
		if err != nil {
			return err
		}
		if err = tx.ReplaceAssets(ctx, assets); err != nil {
			return err
		}
		c.CompleteStep(5)
		return nil
	})
}

func buildAssets(campaignID uuid.UUID, drafts []domain.AssetDraft, now time.Time) ([]domain.Asset, error) {
	var v []string
	assets := make([]domain.Asset, 0, len(drafts))
	for i, d := range drafts {
		if strings.TrimSpace(d.URL) == "" {
			v = append(v, fmt.Sprintf("asset %d: url is required", i+1))
		}
		assets = append(assets, domain.Asset{
			ID:         uuid.New(),
			CampaignID: campaignID,
			URL:        d.URL,
			Filename:   d.Filename,
			Type:       d.Type,
			CreatedAt:  now,
		})
	}
	if len(v) > 0 {
		return nil, domain.InvalidInput("invalid assets", v...)
	}
	return assets, nil
}

// Place locks the wizard and opens quoting. All missing data is reported
// in one error.
func (l *Lifecycle) Place(ctx context.Context, campaignID uuid.UUID, guard Guard) (*domain.Campaign, error) {
	return l.run(ctx, campaignID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error {
		ms, err := tx.Milestones(ctx)
		if err != nil {
			return err
		}
		if err = c.Place(ms, l.now()); err != nil {
			return err
		}
		notifySide(fx, c, domain.SideAdmin, domain.CategoryCampaign, "New campaign placed",
			fmt.Sprintf("Campaign %q is waiting for a quote.", c.Name))
		return nil
	})
}

// CreatePlaced creates a complete campaign on behalf of a client and
// places it immediately. The creating admin is assigned to it.
func (l *Lifecycle) CreatePlaced(ctx context.Context, admin Party, clientID uuid.UUID, draft port.CampaignDraft) (*domain.Campaign, error) {
	missing, err := l.profiles.MissingProfiles(ctx, domain.RoleClient, []uuid.UUID{clientID})
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, domain.NotFound("client profile not found")
	}
	c, err := domain.NewDraft(clientID, draft.Info, l.now)
	if err != nil {
		return nil, err
	}
	if err = l.validateTargeting(ctx, draft.Targeting); err != nil {
		return nil, err
	}
	if !draft.Budget.BaseBudget.IsPositive() {
		return nil, domain.InvalidInput("base budget must be positive")
	}
	now := l.now().UTC()
	ms, err := domain.BuildMilestones(c.ID, draft.Budget.Milestones, now)
	if err != nil {
		return nil, err
	}
	assets, err := buildAssets(c.ID, draft.Assets, now)
	if err != nil {
		return nil, err
	}
	c.Targeting = draft.Targeting.Targeting
	c.Preferences = draft.Targeting.Preferences
	c.Details = draft.Details
	c.Budget = l.pricing.Compute(draft.Budget.BaseBudget)
	c.CurrentStep = domain.WizardSteps
	c.AssignedAdminID = &admin.ID
	if err = c.Place(ms, now); err != nil {
		return nil, err
	}
	if err = l.repo.CreateCampaign(ctx, &c, ms, assets); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return &c, nil
}

// Cancel ends a campaign before completion and withdraws every open
// assignment.
func (l *Lifecycle) Cancel(ctx context.Context, campaignID uuid.UUID, guard Guard, reason string) (*domain.Campaign, error) {
	return l.run(ctx, campaignID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error {
		if c.Status.Terminal() {
			return domain.InvalidTransition(fmt.Sprintf("campaign is already %s", c.Status))
		}
		if err := c.MoveTo(domain.StatusCancelled); err != nil {
			return err
		}
		c.NegotiationTurn = nil
		c.Quoted = nil
		if err := l.terminateAssignments(ctx, tx, fx, reason); err != nil {
			return err
		}
		notifySide(fx, c, domain.SideAdmin, domain.CategoryCampaign, "Campaign cancelled",
			fmt.Sprintf("Campaign %q was cancelled by the client.", c.Name))
		return nil
	})
}

func (l *Lifecycle) terminateAssignments(ctx context.Context, tx port.CampaignTx, fx *effects, reason string) error {
	as, err := tx.Assignments(ctx)
	if err != nil {
		return err
	}
	now := l.now()
	for i := range as {
		a := &as[i]
		from := a.Status
		if !a.Terminate(reason, now) {
			continue
		}
		if err = tx.UpdateAssignment(ctx, a); err != nil {
			return err
		}
		fx.observe("assignment", string(from), string(a.Status))
		fx.notify(a.PartyKind.Role(), a.PartyID, domain.CategoryAssignment, "Offer withdrawn",
			"The campaign was cancelled and your assignment was withdrawn.")
	}
	return nil
}

// Decline refuses a placed campaign before a budget was agreed.
func (l *Lifecycle) Decline(ctx context.Context, campaignID uuid.UUID, admin Party, reason string) (*domain.Campaign, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.InvalidInput("a reason is required to decline a campaign")
	}
	return l.run(ctx, campaignID, nil, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error {
		if !c.Status.Negotiable() {
			return domain.InvalidTransition(fmt.Sprintf("campaign is %s and can no longer be declined", c.Status))
		}
		if err := c.MoveTo(domain.StatusDeclined); err != nil {
			return err
		}
		c.NegotiationTurn = nil
		c.Quoted = nil
		err := tx.AppendNegotiation(ctx, &domain.Negotiation{
			ID:         uuid.New(),
			CampaignID: c.ID,
			Sender:     admin.Role,
			SenderID:   admin.ID,
			Action:     domain.ActionReject,
			Message:    reason,
			CreatedAt:  l.now().UTC(),
		})
		if err != nil {
			return err
		}
		notifySide(fx, c, domain.SideClient, domain.CategoryCampaign, "Campaign declined", reason)
		return nil
	})
}

// AttachAgency hands a campaign to an agency, which may then negotiate
// and staff it.
func (l *Lifecycle) AttachAgency(ctx context.Context, campaignID uuid.UUID, admin Party, agencyID uuid.UUID) (*domain.Campaign, error) {
	missing, err := l.profiles.MissingProfiles(ctx, domain.RoleAgency, []uuid.UUID{agencyID})
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, domain.NotFound("agency profile not found")
	}
	return l.run(ctx, campaignID, nil, func(_ context.Context, _ port.CampaignTx, c *domain.Campaign, fx *effects) error {
		if c.Status.Terminal() {
			return domain.InvalidTransition(fmt.Sprintf("campaign is %s", c.Status))
		}
		if !c.IsPlaced {
			return domain.InvalidTransition("campaign is not placed yet")
		}
		c.AgencyID = &agencyID
		if c.AssignedAdminID == nil {
			c.AssignedAdminID = &admin.ID
		}
		fx.notify(domain.RoleAgency, agencyID, domain.CategoryCampaign, "Campaign assigned",
			fmt.Sprintf("Campaign %q was assigned to your agency.", c.Name))
		return nil
	})
}

// RecordPayment registers funds collected from the client. Reaching the
// full amount can promote or complete the campaign.
func (l *Lifecycle) RecordPayment(ctx context.Context, campaignID uuid.UUID, amount decimal.Decimal) (*domain.Campaign, error) {
	return l.run(ctx, campaignID, nil, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error {
		if err := c.RecordPayment(amount); err != nil {
			return err
		}
		if err := l.promoteIfReady(ctx, tx, c, fx); err != nil {
			return err
		}
		if err := l.completeIfDone(ctx, tx, c, fx); err != nil {
			return err
		}
		fx.notify(domain.RoleClient, c.ClientID, domain.CategoryCampaign, "Payment received",
			fmt.Sprintf("We received %s for campaign %q.", amount.StringFixed(2), c.Name))
		return nil
	})
}
