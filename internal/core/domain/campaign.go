package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CampaignType distinguishes paid ads from influencer promotions.
type CampaignType string

const (
	TypePaidAd              CampaignType = "paid_ad"
	TypeInfluencerPromotion CampaignType = "influencer_promotion"
)

// Valid reports whether t is a known campaign type.
func (t CampaignType) Valid() bool {
	return t == TypePaidAd || t == TypeInfluencerPromotion
}

// WizardSteps is the number of client wizard steps.
const WizardSteps = 5

// Details is collected at wizard step 3.
type Details struct {
	Objective    string     `json:"objective"`
	Description  string     `json:"description"`
	Dos          []string   `json:"dos,omitempty"`
	Donts        []string   `json:"donts,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	ShipsProduct bool       `json:"ships_product"`
}

// Campaign is the lifecycle aggregate. Milestones, assets, negotiations
// and assignments belong to it but are loaded separately.
type Campaign struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	AgencyID        *uuid.UUID
	AssignedAdminID *uuid.UUID

	Name            string
	Type            CampaignType
	Niche           string
	ProductCategory string
	Targeting       Targeting
	Details         Details
	Preferences     InfluencerPreferences

	Status      Status
	CurrentStep int
	IsPlaced    bool
	PlacedAt    *time.Time

	// Budget is the confirmed budget; it only changes on wizard step 4
	// (before placement) and on negotiation accept.
	Budget Budget
	// Quoted is the outstanding proposal, nil when none is pending.
	Quoted            *Budget
	ServiceFeePercent *decimal.Decimal

	PaidAmount    decimal.Decimal
	PaymentStatus PaymentStatus

	NegotiationTurn *Side

	// Version is bumped on every committed change.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BasicInfo is wizard step 1.
type BasicInfo struct {
	Name            string       `json:"name"`
	Type            CampaignType `json:"type"`
	Niche           string       `json:"niche"`
	ProductCategory string       `json:"product_category"`
}

// Normalize trims and validates step 1 input.
func (b BasicInfo) Normalize() (BasicInfo, error) {
	b.Name = strings.TrimSpace(b.Name)
	b.Niche = strings.TrimSpace(b.Niche)
	b.ProductCategory = strings.TrimSpace(b.ProductCategory)
	var v []string
	if b.Name == "" {
		v = append(v, "name is required")
	}
	if !b.Type.Valid() {
		v = append(v, fmt.Sprintf("unknown campaign type %q", b.Type))
	}
	if len(v) > 0 {
		return BasicInfo{}, InvalidInput("invalid basic info", v...)
	}
	return b, nil
}

// TargetingInput is wizard step 2.
type TargetingInput struct {
	Targeting   Targeting             `json:"targeting"`
	Preferences InfluencerPreferences `json:"preferences"`
}

// BudgetInput is wizard step 4: the proposed base budget and the full
// milestone plan, which replaces any earlier plan.
type BudgetInput struct {
	BaseBudget decimal.Decimal  `json:"base_budget"`
	Milestones []MilestoneDraft `json:"milestones"`
}

// AssetDraft is one wizard step 5 upload reference.
type AssetDraft struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Type     string `json:"type"`
}

// NewDraft creates a campaign in draft status at step 1.
func NewDraft(clientID uuid.UUID, info BasicInfo, now func() time.Time) (Campaign, error) {
	if now == nil {
		now = time.Now
	}
	normalized, err := info.Normalize()
	if err != nil {
		return Campaign{}, err
	}
	createdAt := now().UTC()
	return Campaign{
		ID:              uuid.New(),
		ClientID:        clientID,
		Name:            normalized.Name,
		Type:            normalized.Type,
		Niche:           normalized.Niche,
		ProductCategory: normalized.ProductCategory,
		Status:          StatusDraft,
		CurrentStep:     1,
		PaymentStatus:   PaymentPending,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}, nil
}

// EnsureEditable rejects wizard edits on placed or terminated campaigns.
func (c *Campaign) EnsureEditable() error {
	if c.IsPlaced {
		return InvalidTransition("campaign is already placed")
	}
	if c.Status.Terminal() {
		return InvalidTransition(fmt.Sprintf("campaign is %s", c.Status))
	}
	return nil
}

// CompleteStep records wizard progress; the step never moves backwards.
func (c *Campaign) CompleteStep(step int) {
	next := step + 1
	if next > WizardSteps {
		next = WizardSteps
	}
	if next > c.CurrentStep {
		c.CurrentStep = next
	}
}

// MoveTo applies a status transition. Moving to the current status is a
// no-op.
func (c *Campaign) MoveTo(next Status) error {
	if c.Status == next {
		return nil
	}
	if !c.Status.CanTransitionTo(next) {
		return InvalidTransition(fmt.Sprintf("campaign cannot move from %s to %s", c.Status, next))
	}
	c.Status = next
	return nil
}

// PlacementViolations lists every field still missing before the campaign
// can be placed.
func (c *Campaign) PlacementViolations(milestones []Milestone) []string {
	var v []string
	if c.Name == "" {
		v = append(v, "name is required")
	}
	if !c.Type.Valid() {
		v = append(v, "campaign type is required")
	}
	if c.Niche == "" {
		v = append(v, "niche is required")
	}
	if len(c.Targeting.Platforms) == 0 {
		v = append(v, "at least one target platform is required")
	}
	if strings.TrimSpace(c.Details.Objective) == "" {
		v = append(v, "objective is required")
	}
	if s, e := c.Details.StartDate, c.Details.EndDate; s != nil && e != nil && e.Before(*s) {
		v = append(v, "end date is before start date")
	}
	if !c.Budget.Base.IsPositive() {
		v = append(v, "base budget must be positive")
	}
	if len(milestones) == 0 {
		v = append(v, "at least one milestone is required")
	}
	return v
}

// Place locks the wizard and opens quoting.
func (c *Campaign) Place(milestones []Milestone, now time.Time) error {
	if c.IsPlaced {
		return InvalidTransition("campaign is already placed")
	}
	if v := c.PlacementViolations(milestones); len(v) > 0 {
		return InvalidTransition("campaign is not ready to be placed", v...)
	}
	if err := c.MoveTo(StatusNeedsQuote); err != nil {
		return err
	}
	c.IsPlaced = true
	placedAt := now.UTC()
	c.PlacedAt = &placedAt
	return nil
}

// RecordPayment adds a collected amount and updates payment status.
// Funding moves an accepted campaign into partial_paid or paid.
func (c *Campaign) RecordPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return InvalidInput("payment amount must be positive")
	}
	switch c.Status {
	case StatusAccepted, StatusPartialPaid, StatusPaid, StatusPendingAssignment, StatusActive, StatusInReview:
	default:
		return InvalidTransition(fmt.Sprintf("payments are not accepted while campaign is %s", c.Status))
	}
	if c.PaymentStatus == PaymentFull {
		return InvalidTransition("campaign is already fully paid")
	}
	c.PaidAmount = c.PaidAmount.Add(amount)
	if c.PaidAmount.GreaterThanOrEqual(c.Budget.NetPayable) {
		c.PaymentStatus = PaymentFull
	} else {
		c.PaymentStatus = PaymentPartial
	}
	switch c.Status {
	case StatusAccepted, StatusPartialPaid:
		if c.PaymentStatus == PaymentFull {
			return c.MoveTo(StatusPaid)
		}
		return c.MoveTo(StatusPartialPaid)
	}
	return nil
}

// Excludes reports whether the influencer is on the excluded list.
func (c *Campaign) Excludes(influencerID uuid.UUID) bool {
	for _, id := range c.Preferences.Excluded {
		if id == influencerID {
			return true
		}
	}
	return false
}
