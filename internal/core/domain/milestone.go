package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MilestoneStatus is the review state of one deliverable.
type MilestoneStatus string

const (
	MilestonePending  MilestoneStatus = "pending"
	MilestoneInReview MilestoneStatus = "in_review"
	MilestoneAccepted MilestoneStatus = "accepted"
	MilestoneDeclined MilestoneStatus = "declined"
)

// MilestonePayment tracks payout of a single deliverable.
type MilestonePayment string

const (
	MilestoneUnpaid  MilestonePayment = "unpaid"
	MilestonePartial MilestonePayment = "partial"
	MilestonePaid    MilestonePayment = "paid"
)

// Valid reports whether p is a known payment status.
func (p MilestonePayment) Valid() bool {
	return p == MilestoneUnpaid || p == MilestonePartial || p == MilestonePaid
}

// Metrics are reach and engagement figures of a deliverable.
type Metrics struct {
	Reach    int64 `json:"reach"`
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

// Submission is the deliverable evidence sent for review.
type Submission struct {
	Description     string           `json:"description"`
	Attachments     []string         `json:"attachments,omitempty"`
	LiveLinks       []string         `json:"live_links,omitempty"`
	RequestedAmount *decimal.Decimal `json:"requested_amount,omitempty"`
	SubmittedBy     *uuid.UUID       `json:"submitted_by,omitempty"`
	SubmittedAt     *time.Time       `json:"submitted_at,omitempty"`
}

// Milestone is one deliverable of a campaign.
type Milestone struct {
	ID              uuid.UUID
	CampaignID      uuid.UUID
	Order           int
	Title           string
	Platform        string
	ContentType     string
	Quantity        int
	Expected        Metrics
	Actual          Metrics
	Status          MilestoneStatus
	PaymentStatus   MilestonePayment
	Submission      Submission
	RejectionReason string
	ReviewedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MilestoneDraft is a milestone as planned in wizard step 4.
type MilestoneDraft struct {
	Order       int     `json:"order"`
	Title       string  `json:"title"`
	Platform    string  `json:"platform"`
	ContentType string  `json:"content_type"`
	Quantity    int     `json:"quantity"`
	Expected    Metrics `json:"expected"`
}

// BuildMilestones validates a plan and turns it into pending milestones
// sorted by order. Every problem is reported at once.
func BuildMilestones(campaignID uuid.UUID, drafts []MilestoneDraft, now time.Time) ([]Milestone, error) {
	var v []string
	seen := make(map[int]bool, len(drafts))
	out := make([]Milestone, 0, len(drafts))
	for i, d := range drafts {
		if d.Order < 1 {
			v = append(v, fmt.Sprintf("milestone %d: order must be positive", i+1))
		} else if seen[d.Order] {
			v = append(v, fmt.Sprintf("milestone %d: duplicate order %d", i+1, d.Order))
		}
		seen[d.Order] = true
		if strings.TrimSpace(d.Title) == "" {
			v = append(v, fmt.Sprintf("milestone %d: title is required", i+1))
		}
		if d.Quantity < 1 {
			v = append(v, fmt.Sprintf("milestone %d: quantity must be positive", i+1))
		}
		out = append(out, Milestone{
			ID:            uuid.New(),
			CampaignID:    campaignID,
			Order:         d.Order,
			Title:         strings.TrimSpace(d.Title),
			Platform:      d.Platform,
			ContentType:   d.ContentType,
			Quantity:      d.Quantity,
			Expected:      d.Expected,
			Status:        MilestonePending,
			PaymentStatus: MilestoneUnpaid,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	if len(v) > 0 {
		return nil, InvalidInput("invalid milestone plan", v...)
	}
	SortMilestones(out)
	return out, nil
}

// SortMilestones orders milestones by their execution order.
func SortMilestones(ms []Milestone) {
	sort.Slice(ms, func(i, j int) bool { return ms[i].Order < ms[j].Order })
}

// SubmissionPatch carries the fields a submitter wants to set. Nil
// fields keep their stored value.
type SubmissionPatch struct {
	Description     *string          `json:"description,omitempty"`
	Attachments     []string         `json:"attachments,omitempty"`
	LiveLinks       []string         `json:"live_links,omitempty"`
	RequestedAmount *decimal.Decimal `json:"requested_amount,omitempty"`
	Actual          *Metrics         `json:"actual,omitempty"`
}

// Submit applies a (partial) submission and puts the milestone in review.
// Resubmitting a declined milestone clears the rejection reason.
func (m *Milestone) Submit(by uuid.UUID, p SubmissionPatch, now time.Time) error {
	switch m.Status {
	case MilestonePending, MilestoneDeclined, MilestoneInReview:
	default:
		return InvalidTransition(fmt.Sprintf("milestone is %s", m.Status))
	}
	if p.Description != nil {
		m.Submission.Description = *p.Description
	}
	if p.Attachments != nil {
		m.Submission.Attachments = p.Attachments
	}
	if p.LiveLinks != nil {
		m.Submission.LiveLinks = p.LiveLinks
	}
	if p.RequestedAmount != nil {
		amount := *p.RequestedAmount
		m.Submission.RequestedAmount = &amount
	}
	if p.Actual != nil {
		m.Actual = *p.Actual
	}
	at := now.UTC()
	m.Submission.SubmittedBy = &by
	m.Submission.SubmittedAt = &at
	m.RejectionReason = ""
	m.Status = MilestoneInReview
	m.UpdatedAt = at
	return nil
}

// Decision is a review or offer response verdict.
type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

// Review accepts or declines a milestone in review. Declining requires a
// reason.
func (m *Milestone) Review(d Decision, reason string, now time.Time) error {
	if m.Status != MilestoneInReview {
		return InvalidTransition(fmt.Sprintf("milestone is %s, not in review", m.Status))
	}
	at := now.UTC()
	switch d {
	case DecisionAccept:
		m.Status = MilestoneAccepted
	case DecisionDecline:
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return InvalidInput("a reason is required to decline a milestone")
		}
		m.Status = MilestoneDeclined
		m.RejectionReason = reason
	default:
		return InvalidInput(fmt.Sprintf("unknown decision %q", d))
	}
	m.ReviewedAt = &at
	m.UpdatedAt = at
	return nil
}

// AllAccepted reports whether ms is non-empty and every milestone is
// accepted.
func AllAccepted(ms []Milestone) bool {
	if len(ms) == 0 {
		return false
	}
	for _, m := range ms {
		if m.Status != MilestoneAccepted {
			return false
		}
	}
	return true
}

// AnyInReview reports whether a milestone still waits for review.
func AnyInReview(ms []Milestone) bool {
	for _, m := range ms {
		if m.Status == MilestoneInReview {
			return true
		}
	}
	return false
}
