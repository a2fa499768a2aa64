package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NegotiationAction is what a negotiation entry records.
type NegotiationAction string

const (
	ActionRequest      NegotiationAction = "request"
	ActionCounterOffer NegotiationAction = "counter_offer"
	ActionAccept       NegotiationAction = "accept"
	ActionReject       NegotiationAction = "reject"
	ActionMessage      NegotiationAction = "message"
)

// Proposal is the payload of a quote or counter offer: either a
// BudgetProposal or a ServiceFeeProposal.
type Proposal interface {
	proposalKind() string
}

// BudgetProposal proposes a campaign budget triple.
type BudgetProposal struct {
	Base  decimal.Decimal `json:"base"`
	VAT   decimal.Decimal `json:"vat"`
	Total decimal.Decimal `json:"total"`
}

func (BudgetProposal) proposalKind() string { return ProposalBudget }

// Budget expands the proposal into a confirmed budget.
func (p BudgetProposal) Budget() Budget {
	return Budget{Base: p.Base, VAT: p.VAT, Total: p.Total, NetPayable: p.Total}
}

// ServiceFeeProposal proposes the agency service fee in percent.
type ServiceFeeProposal struct {
	Percent decimal.Decimal `json:"percent"`
}

func (ServiceFeeProposal) proposalKind() string { return ProposalServiceFee }

// Proposal kinds as persisted.
const (
	ProposalBudget     = "budget"
	ProposalServiceFee = "service_fee"
)

// ProposalKind returns the persisted kind of p, or "" for nil.
func ProposalKind(p Proposal) string {
	if p == nil {
		return ""
	}
	return p.proposalKind()
}

// NewBudgetProposal computes a budget proposal from a base amount.
func NewBudgetProposal(pricing Pricing, base decimal.Decimal) BudgetProposal {
	b := pricing.Compute(base)
	return BudgetProposal{Base: b.Base, VAT: b.VAT, Total: b.Total}
}

// Negotiation is one immutable turn of the budget dialogue. Only IsRead
// changes after creation.
type Negotiation struct {
	ID         uuid.UUID
	CampaignID uuid.UUID
	Sender     Role
	SenderID   uuid.UUID
	Action     NegotiationAction
	Proposal   Proposal
	Message    string
	IsRead     bool
	CreatedAt  time.Time
}

// LatestBudgetProposal returns the most recent budget proposal in a log
// ordered oldest first.
func LatestBudgetProposal(log []Negotiation) (BudgetProposal, bool) {
	for i := len(log) - 1; i >= 0; i-- {
		if p, ok := log[i].Proposal.(BudgetProposal); ok {
			return p, true
		}
	}
	return BudgetProposal{}, false
}

// LatestServiceFeeProposal returns the most recent service fee proposal.
func LatestServiceFeeProposal(log []Negotiation) (ServiceFeeProposal, bool) {
	for i := len(log) - 1; i >= 0; i-- {
		if p, ok := log[i].Proposal.(ServiceFeeProposal); ok {
			return p, true
		}
	}
	return ServiceFeeProposal{}, false
}
