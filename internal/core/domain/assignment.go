package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssignmentStatus is the offer lifecycle of one execution party.
type AssignmentStatus string

const (
	AssignmentNewOffer   AssignmentStatus = "new_offer"
	AssignmentAccepted   AssignmentStatus = "accepted"
	AssignmentDeclined   AssignmentStatus = "declined"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
	AssignmentCancelled  AssignmentStatus = "cancelled"
	AssignmentExpired    AssignmentStatus = "expired"
)

// Terminal reports whether the assignment can no longer change.
func (s AssignmentStatus) Terminal() bool {
	switch s {
	case AssignmentDeclined, AssignmentCompleted, AssignmentCancelled, AssignmentExpired:
		return true
	}
	return false
}

// Active reports whether the party is executing the campaign.
func (s AssignmentStatus) Active() bool {
	return s == AssignmentAccepted || s == AssignmentInProgress
}

// PartyKind says whether an assignment targets an influencer or an agency.
type PartyKind string

const (
	PartyInfluencer PartyKind = "influencer"
	PartyAgency     PartyKind = "agency"
)

// Role returns the actor role of the party.
func (k PartyKind) Role() Role {
	if k == PartyAgency {
		return RoleAgency
	}
	return RoleInfluencer
}

// DeliveryStatus tracks a shipped product for physical campaigns.
type DeliveryStatus string

const (
	DeliveryNotRequired DeliveryStatus = "not_required"
	DeliveryPending     DeliveryStatus = "pending"
	DeliveryShipped     DeliveryStatus = "shipped"
	DeliveryDelivered   DeliveryStatus = "delivered"
)

// Valid reports whether d is a known delivery status.
func (d DeliveryStatus) Valid() bool {
	switch d {
	case DeliveryNotRequired, DeliveryPending, DeliveryShipped, DeliveryDelivered:
		return true
	}
	return false
}

// Assignment binds a campaign to an influencer or agency.
type Assignment struct {
	ID              uuid.UUID
	CampaignID      uuid.UUID
	PartyKind       PartyKind
	PartyID         uuid.UUID
	Status          AssignmentStatus
	Budget          AssignmentBudget
	Percentage      *decimal.Decimal
	Message         string
	Terms           string
	OfferExpiresAt  *time.Time
	AcceptedAt      *time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	RejectionReason string
	DeliveryAddress string
	DeliveryStatus  DeliveryStatus
	AssignedBy      uuid.UUID
	AssignedByRole  Role
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OfferInput describes one offer in a batch.
type OfferInput struct {
	PartyKind   PartyKind        `json:"party_kind"`
	PartyID     uuid.UUID        `json:"party_id"`
	OfferAmount decimal.Decimal  `json:"offer_amount"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
	Message     string           `json:"message,omitempty"`
	Terms       string           `json:"terms,omitempty"`
	ExpiresAt   *time.Time       `json:"expires_at,omitempty"`
}

// Validate checks caller input of a single offer.
func (in OfferInput) Validate(now time.Time) []string {
	var v []string
	if in.PartyID == uuid.Nil {
		v = append(v, "party id is required")
	}
	if in.PartyKind != PartyInfluencer && in.PartyKind != PartyAgency {
		v = append(v, fmt.Sprintf("party %s: unknown party kind %q", in.PartyID, in.PartyKind))
	}
	if !in.OfferAmount.IsPositive() {
		v = append(v, fmt.Sprintf("party %s: offer amount must be positive", in.PartyID))
	}
	if in.Percentage != nil && (in.Percentage.IsNegative() || in.Percentage.GreaterThan(hundred)) {
		v = append(v, fmt.Sprintf("party %s: percentage must be between 0 and 100", in.PartyID))
	}
	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) {
		v = append(v, fmt.Sprintf("party %s: expiry must be in the future", in.PartyID))
	}
	return v
}

// ExpireIfDue moves an open offer whose expiry has passed to expired and
// reports whether it did.
func (a *Assignment) ExpireIfDue(now time.Time) bool {
	if a.Status != AssignmentNewOffer || a.OfferExpiresAt == nil || now.Before(*a.OfferExpiresAt) {
		return false
	}
	a.Status = AssignmentExpired
	a.UpdatedAt = now.UTC()
	return true
}

// Respond applies the party's decision to an open offer. Accepting starts
// execution immediately.
func (a *Assignment) Respond(d Decision, message string, now time.Time) error {
	if a.Status != AssignmentNewOffer {
		return InvalidTransition(fmt.Sprintf("assignment is %s", a.Status))
	}
	at := now.UTC()
	switch d {
	case DecisionAccept:
		a.AcceptedAt = &at
		a.StartedAt = &at
		a.Status = AssignmentInProgress
	case DecisionDecline:
		a.Status = AssignmentDeclined
		a.RejectionReason = strings.TrimSpace(message)
	default:
		return InvalidInput(fmt.Sprintf("unknown decision %q", d))
	}
	a.UpdatedAt = at
	return nil
}

// Cancel withdraws an open or accepted offer.
func (a *Assignment) Cancel(now time.Time) error {
	if a.Status != AssignmentNewOffer && a.Status != AssignmentAccepted {
		return InvalidTransition(fmt.Sprintf("assignment is %s and cannot be cancelled", a.Status))
	}
	a.Status = AssignmentCancelled
	a.UpdatedAt = now.UTC()
	return nil
}

// Complete closes an executing assignment.
func (a *Assignment) Complete(now time.Time) {
	if !a.Status.Active() {
		return
	}
	at := now.UTC()
	a.Status = AssignmentCompleted
	a.CompletedAt = &at
	a.UpdatedAt = at
}

// AssignmentPatch updates an open offer. Nil fields are left unchanged.
type AssignmentPatch struct {
	OfferAmount *decimal.Decimal `json:"offer_amount,omitempty"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
	Message     *string          `json:"message,omitempty"`
	Terms       *string          `json:"terms,omitempty"`
	ExpiresAt   *time.Time       `json:"expires_at,omitempty"`
}

// Update applies a patch to an open offer, recomputing the budget when the
// amount changes.
func (a *Assignment) Update(p AssignmentPatch, pricing Pricing, now time.Time) error {
	if a.Status != AssignmentNewOffer {
		return InvalidTransition(fmt.Sprintf("assignment is %s and can no longer be edited", a.Status))
	}
	if p.OfferAmount != nil {
		if !p.OfferAmount.IsPositive() {
			return InvalidInput("offer amount must be positive")
		}
		a.Budget = pricing.ComputeAssignment(*p.OfferAmount)
	}
	if p.Percentage != nil {
		pct := *p.Percentage
		a.Percentage = &pct
	}
	if p.Message != nil {
		a.Message = *p.Message
	}
	if p.Terms != nil {
		a.Terms = *p.Terms
	}
	if p.ExpiresAt != nil {
		if !p.ExpiresAt.After(now) {
			return InvalidInput("expiry must be in the future")
		}
		exp := p.ExpiresAt.UTC()
		a.OfferExpiresAt = &exp
	}
	a.UpdatedAt = now.UTC()
	return nil
}

// Terminate cancels any non-terminal assignment, used when the whole
// campaign ends early. It reports whether the status changed.
func (a *Assignment) Terminate(reason string, now time.Time) bool {
	if a.Status.Terminal() {
		return false
	}
	a.Status = AssignmentCancelled
	if reason != "" {
		a.RejectionReason = reason
	}
	a.UpdatedAt = now.UTC()
	return true
}
