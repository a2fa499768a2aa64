package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// checkTurn rejects a negotiation move by a side that does not hold the
// turn. An unassigned turn lets either side make the first move.
func checkTurn(c *domain.Campaign, side domain.Side) error {
	if c.NegotiationTurn != nil && *c.NegotiationTurn != side {
		return domain.InvalidTransition(fmt.Sprintf("it is the %s side's turn to respond", *c.NegotiationTurn))
	}
	return nil
}

func sideOf(p Party) (domain.Side, error) {
	side, ok := domain.SideOf(p.Role)
	if !ok {
		return "", domain.Forbidden(fmt.Sprintf("%s cannot negotiate a campaign budget", p.Role))
	}
	return side, nil
}

func (l *Lifecycle) entry(c *domain.Campaign, p Party, action domain.NegotiationAction, proposal domain.Proposal, message string) *domain.Negotiation {
	return &domain.Negotiation{
		ID:         uuid.New(),
		CampaignID: c.ID,
		Sender:     p.Role,
		SenderID:   p.ID,
		Action:     action,
		Proposal:   proposal,
		Message:    message,
		CreatedAt:  l.now().UTC(),
	}
}

func setTurn(c *domain.Campaign, side domain.Side) {
	c.NegotiationTurn = &side
}

// SendQuote proposes a budget to the client from the platform side. The
// quote is kept in the quoted fields; the confirmed budget is untouched.
func (l *Lifecycle) SendQuote(ctx context.Context, campaignID uuid.UUID, guard Guard, p Party, base decimal.Decimal) (*domain.Campaign, error) {
	if !base.IsPositive() {
		return nil, domain.InvalidInput("quoted base budget must be positive")
	}
	return l.run(ctx, campaignID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error {
		if !c.Status.Negotiable() {
			return domain.InvalidTransition(fmt.Sprintf("campaign is %s and cannot be quoted", c.Status))
		}
		if err := checkTurn(c, domain.SideAdmin); err != nil {
			return err
		}
		proposal := domain.NewBudgetProposal(l.pricing, base)
		if err := tx.AppendNegotiation(ctx, l.entry(c, p, domain.ActionRequest, proposal, "")); err != nil {
			return err
		}
		quoted := proposal.Budget()
		c.Quoted = &quoted
		if p.Role == domain.RoleAdmin && c.AssignedAdminID == nil {
			c.AssignedAdminID = &p.ID
		}
		if err := c.MoveTo(domain.StatusQuoted); err != nil {
			return err
		}
		setTurn(c, domain.SideClient)
		notifySide(fx, c, domain.SideClient, domain.CategoryQuote, "Quote received",
			fmt.Sprintf("Campaign %q was quoted at %s.", c.Name, quoted.Total.StringFixed(2)))
		return nil
	})
}

// CounterOffer answers the other side with a new proposal and hands the
// turn over. Service fee proposals are reserved to agencies.
func (l *Lifecycle) CounterOffer(ctx context.Context, campaignID uuid.UUID, guard Guard, p Party, proposal domain.Proposal, message string) (*domain.Campaign, error) {
	side, err := sideOf(p)
	if err != nil {
		return nil, err
	}
	switch pr := proposal.(type) {
	case domain.BudgetProposal:
		if !pr.Base.IsPositive() {
			return nil, domain.InvalidInput("proposed base budget must be positive")
		}
	case domain.ServiceFeeProposal:
		if p.Role != domain.RoleAgency {
			return nil, domain.Forbidden("only agencies can propose a service fee")
		}
		if pr.Percent.IsNegative() || pr.Percent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.InvalidInput("service fee must be between 0 and 100 percent")
		}
	default:
		return nil, domain.InvalidInput("a counter offer needs a proposal")
	}
	return l.run(ctx, campaignID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error {
		if !c.Status.Negotiable() {
			return domain.InvalidTransition(fmt.Sprintf("campaign is %s and cannot be negotiated", c.Status))
		}
		if err := checkTurn(c, side); err != nil {
			return err
		}
		if err := tx.AppendNegotiation(ctx, l.entry(c, p, domain.ActionCounterOffer, proposal, message)); err != nil {
			return err
		}
		if bp, ok := proposal.(domain.BudgetProposal); ok {
			quoted := bp.Budget()
			c.Quoted = &quoted
		}
		if err := c.MoveTo(domain.StatusNegotiating); err != nil {
			return err
		}
		setTurn(c, side.Other())
		notifySide(fx, c, side.Other(), domain.CategoryNegotiation, "New counter offer",
			fmt.Sprintf("The %s side sent a counter offer for campaign %q.", side, c.Name))
		return nil
	})
}

// Accept confirms the most recent budget proposal: its triple is copied
// verbatim onto the confirmed budget and the campaign moves to funding.
func (l *Lifecycle) Accept(ctx context.Context, campaignID uuid.UUID, guard Guard, p Party) (*domain.Campaign, error) {
	side, err := sideOf(p)
	if err != nil {
		return nil, err
	}
	return l.run(ctx, campaignID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error {
		if !c.Status.Negotiable() {
			return domain.InvalidTransition(fmt.Sprintf("campaign is %s and has nothing to accept", c.Status))
		}
		if err := checkTurn(c, side); err != nil {
			return err
		}
		log, err := tx.Negotiations(ctx)
		if err != nil {
			return err
		}
		proposal, ok := domain.LatestBudgetProposal(log)
		if !ok {
			return domain.InvalidTransition("there is no proposal to accept")
		}
		c.Budget = proposal.Budget()
		if fee, ok := domain.LatestServiceFeeProposal(log); ok {
			pct := fee.Percent
			c.ServiceFeePercent = &pct
		}
		c.Quoted = nil
		if err = tx.AppendNegotiation(ctx, l.entry(c, p, domain.ActionAccept, nil, "")); err != nil {
			return err
		}
		if err = c.MoveTo(domain.StatusAccepted); err != nil {
			return err
		}
		c.NegotiationTurn = nil
		notifySide(fx, c, side.Other(), domain.CategoryNegotiation, "Budget accepted",
			fmt.Sprintf("The budget of campaign %q was accepted at %s.", c.Name, c.Budget.Total.StringFixed(2)))
		return nil
	})
}

// Reject ends the negotiation and cancels the campaign.
func (l *Lifecycle) Reject(ctx context.Context, campaignID uuid.UUID, guard Guard, p Party, reason string) (*domain.Campaign, error) {
	side, err := sideOf(p)
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	return l.run(ctx, campaignID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error {
		if !c.Status.Negotiable() {
			return domain.InvalidTransition(fmt.Sprintf("campaign is %s and cannot be rejected", c.Status))
		}
		if err := checkTurn(c, side); err != nil {
			return err
		}
		if err := tx.AppendNegotiation(ctx, l.entry(c, p, domain.ActionReject, nil, reason)); err != nil {
			return err
		}
		if err := c.MoveTo(domain.StatusCancelled); err != nil {
			return err
		}
		c.NegotiationTurn = nil
		c.Quoted = nil
		notifySide(fx, c, side.Other(), domain.CategoryNegotiation, "Negotiation rejected",
			fmt.Sprintf("Campaign %q was rejected: %s", c.Name, reason))
		return nil
	})
}

// PostMessage appends a free-text entry. Messages never move the turn.
func (l *Lifecycle) PostMessage(ctx context.Context, campaignID uuid.UUID, guard Guard, p Party, text string) error {
	side, err := sideOf(p)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.InvalidInput("message is empty")
	}
	_, err = l.run(ctx, campaignID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error {
		if c.Status.Terminal() {
			return domain.InvalidTransition(fmt.Sprintf("campaign is %s", c.Status))
		}
		if err := tx.AppendNegotiation(ctx, l.entry(c, p, domain.ActionMessage, nil, text)); err != nil {
			return err
		}
		notifySide(fx, c, side.Other(), domain.CategoryNegotiation, "New message", text)
		return nil
	})
	return err
}

// MarkRead flags every entry sent by the other side as read.
func (l *Lifecycle) MarkRead(ctx context.Context, campaignID uuid.UUID, guard Guard, p Party) (int, error) {
	side, err := sideOf(p)
	if err != nil {
		return 0, err
	}
	senders := []domain.Role{domain.RoleClient}
	if side == domain.SideClient {
		senders = []domain.Role{domain.RoleAdmin, domain.RoleAgency}
	}
	var n int
	err = l.logOnly(ctx, campaignID, guard, func(ctx context.Context, tx port.CampaignTx) error {
		var err error
		n, err = tx.MarkNegotiationsRead(ctx, senders...)
		return err
	})
	return n, err
}
