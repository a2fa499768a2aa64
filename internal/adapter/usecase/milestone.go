package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// withMilestone runs fn on one milestone of its campaign and persists it.
// fn receives every sibling with the target already pointing into the
// slice, so completion checks see the pending change.
func (l *Lifecycle) withMilestone(ctx context.Context, milestoneID uuid.UUID, guard Guard, fn func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, m *domain.Milestone, siblings []domain.Milestone, fx *effects) error) (*domain.Milestone, error) {
	campaignID, err := l.repo.CampaignOfMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if campaignID == uuid.Nil {
		return nil, domain.NotFound("milestone not found")
	}
	var out domain.Milestone
	_, err = l.run(ctx, campaignID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error {
		ms, err := tx.Milestones(ctx)
		if err != nil {
			return err
		}
		var m *domain.Milestone
		for i := range ms {
			if ms[i].ID == milestoneID {
				m = &ms[i]
				break
			}
		}
		if m == nil {
			return domain.NotFound("milestone not found")
		}
		from := m.Status
		if err = fn(ctx, tx, c, m, ms, fx); err != nil {
			return err
		}
		if err = tx.UpdateMilestone(ctx, m); err != nil {
			return err
		}
		fx.observe("milestone", string(from), string(m.Status))
		out = *m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Submit sends deliverable evidence for review. Only a party executing
// the campaign may submit; fields absent from the patch keep their value.
func (l *Lifecycle) Submit(ctx context.Context, milestoneID uuid.UUID, p Party, patch domain.SubmissionPatch) (*domain.Milestone, error) {
	return l.withMilestone(ctx, milestoneID, nil, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, m *domain.Milestone, _ []domain.Milestone, fx *effects) error {
		as, err := tx.Assignments(ctx)
		if err != nil {
			return err
		}
		holds := false
		for _, a := range as {
			if a.PartyID == p.ID && a.PartyKind.Role() == p.Role && a.Status.Active() {
				holds = true
				break
			}
		}
		if !holds {
			return domain.Forbidden("no active assignment on this campaign")
		}
		if !c.Status.Executing() {
			return domain.InvalidTransition(fmt.Sprintf("campaign is %s", c.Status))
		}
		if err = m.Submit(p.ID, patch, l.now()); err != nil {
			return err
		}
		if c.Status == domain.StatusActive {
			if err = c.MoveTo(domain.StatusInReview); err != nil {
				return err
			}
		}
		fx.notify(domain.RoleClient, c.ClientID, domain.CategoryMilestone, "Milestone submitted",
			fmt.Sprintf("Milestone %q of campaign %q is ready for review.", m.Title, c.Name))
		return nil
	})
}

// Review accepts or declines a submitted milestone. Accepting may
// complete the campaign; declining hands it back to the submitter.
func (l *Lifecycle) Review(ctx context.Context, milestoneID uuid.UUID, guard Guard, d domain.Decision, reason string) (*domain.Milestone, error) {
	return l.withMilestone(ctx, milestoneID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, m *domain.Milestone, siblings []domain.Milestone, fx *effects) error {
		if c.Status.Terminal() {
			return domain.InvalidTransition(fmt.Sprintf("campaign is %s", c.Status))
		}
		if err := m.Review(d, reason, l.now()); err != nil {
			return err
		}
		if err := l.notifySubmitter(ctx, tx, c, m, fx); err != nil {
			return err
		}
		if m.Status == domain.MilestoneDeclined {
			if c.Status == domain.StatusInReview {
				return c.MoveTo(domain.StatusActive)
			}
			return nil
		}
		if err := tx.UpdateMilestone(ctx, m); err != nil {
			return err
		}
		if err := l.completeIfDone(ctx, tx, c, fx); err != nil {
			return err
		}
		if c.Status == domain.StatusInReview && !domain.AnyInReview(siblings) {
			return c.MoveTo(domain.StatusActive)
		}
		return nil
	})
}

func (l *Lifecycle) notifySubmitter(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, m *domain.Milestone, fx *effects) error {
	if m.Submission.SubmittedBy == nil {
		return nil
	}
	as, err := tx.Assignments(ctx)
	if err != nil {
		return err
	}
	title, message := "Milestone approved", fmt.Sprintf("Milestone %q of campaign %q was approved.", m.Title, c.Name)
	if m.Status == domain.MilestoneDeclined {
		title, message = "Milestone declined", fmt.Sprintf("Milestone %q of campaign %q was declined: %s", m.Title, c.Name, m.RejectionReason)
	}
	for _, a := range as {
		if a.PartyID == *m.Submission.SubmittedBy {
			fx.notify(a.PartyKind.Role(), a.PartyID, domain.CategoryMilestone, title, message)
			return nil
		}
	}
	return nil
}

// completeIfDone re-reads every milestone and completes the campaign when
// all of them are accepted and the budget is fully paid. A campaign still
// waiting on offers completes too once a party is executing; the open
// offers are withdrawn. Executing assignments are closed with it.
func (l *Lifecycle) completeIfDone(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error {
	if c.PaymentStatus != domain.PaymentFull {
		return nil
	}
	if err := l.promoteIfReady(ctx, tx, c, fx); err != nil {
		return err
	}
	if !c.Status.Executing() {
		return nil
	}
	ms, err := tx.Milestones(ctx)
	if err != nil {
		return err
	}
	if !domain.AllAccepted(ms) {
		return nil
	}
	as, err := tx.Assignments(ctx)
	if err != nil {
		return err
	}
	if c.Status == domain.StatusPendingAssignment && !anyActive(as) {
		return nil
	}
	now := l.now()
	for i := range as {
		a := &as[i]
		from := a.Status
		if a.Status == domain.AssignmentNewOffer {
			a.Terminate("campaign completed", now)
		} else {
			a.Complete(now)
		}
		if a.Status == from {
			continue
		}
		if err = tx.UpdateAssignment(ctx, a); err != nil {
			return err
		}
		fx.observe("assignment", string(from), string(a.Status))
		fx.notify(a.PartyKind.Role(), a.PartyID, domain.CategoryCampaign, "Campaign completed",
			fmt.Sprintf("Campaign %q is complete.", c.Name))
	}
	if c.Status == domain.StatusPendingAssignment {
		if err = c.MoveTo(domain.StatusActive); err != nil {
			return err
		}
	}
	if err = c.MoveTo(domain.StatusCompleted); err != nil {
		return err
	}
	fx.notify(domain.RoleClient, c.ClientID, domain.CategoryCampaign, "Campaign completed",
		fmt.Sprintf("Campaign %q is complete.", c.Name))
	return nil
}

func anyActive(as []domain.Assignment) bool {
	for _, a := range as {
		if a.Status.Active() {
			return true
		}
	}
	return false
}

// SetMilestonePayment records the payout state of an accepted milestone.
// Payouts are still settled after completion but not on a cancelled or
// declined campaign.
func (l *Lifecycle) SetMilestonePayment(ctx context.Context, milestoneID uuid.UUID, status domain.MilestonePayment) (*domain.Milestone, error) {
	if !status.Valid() {
		return nil, domain.InvalidInput(fmt.Sprintf("unknown payment status %q", status))
	}
	return l.withMilestone(ctx, milestoneID, nil, func(_ context.Context, _ port.CampaignTx, c *domain.Campaign, m *domain.Milestone, _ []domain.Milestone, _ *effects) error {
		if c.Status.Terminal() && c.Status != domain.StatusCompleted {
			return domain.InvalidTransition(fmt.Sprintf("campaign is %s", c.Status))
		}
		if m.Status != domain.MilestoneAccepted {
			return domain.InvalidTransition(fmt.Sprintf("milestone is %s, not accepted", m.Status))
		}
		m.PaymentStatus = status
		m.UpdatedAt = l.now().UTC()
		return nil
	})
}
