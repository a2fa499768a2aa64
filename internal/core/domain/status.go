package domain

import "slices"

// Status is the canonical campaign lifecycle status.
type Status string

const (
	StatusDraft             Status = "draft"
	StatusNeedsQuote        Status = "needs_quote"
	StatusQuoted            Status = "quoted"
	StatusNegotiating       Status = "negotiating"
	StatusAccepted          Status = "accepted"
	StatusPartialPaid       Status = "partial_paid"
	StatusPaid              Status = "paid"
	StatusPendingAssignment Status = "pending_assignment"
	StatusActive            Status = "active"
	StatusInReview          Status = "in_review"
	StatusCompleted         Status = "completed"
	StatusCancelled         Status = "cancelled"
	StatusDeclined          Status = "declined"
)

// legacyStatuses maps older names still sent by some clients to their
// canonical value.
var legacyStatuses = map[string]Status{
	"received":  StatusNeedsQuote,
	"promoting": StatusActive,
}

// ParseStatus accepts canonical and legacy names.
func ParseStatus(s string) (Status, bool) {
	if st, ok := legacyStatuses[s]; ok {
		return st, true
	}
	st := Status(s)
	if _, ok := transitions[st]; ok {
		return st, true
	}
	return "", false
}

var transitions = map[Status][]Status{
	StatusDraft:             {StatusNeedsQuote, StatusCancelled},
	StatusNeedsQuote:        {StatusQuoted, StatusNegotiating, StatusCancelled, StatusDeclined},
	StatusQuoted:            {StatusQuoted, StatusNegotiating, StatusAccepted, StatusCancelled, StatusDeclined},
	StatusNegotiating:       {StatusQuoted, StatusNegotiating, StatusAccepted, StatusCancelled, StatusDeclined},
	StatusAccepted:          {StatusPartialPaid, StatusPaid, StatusCancelled},
	StatusPartialPaid:       {StatusPaid, StatusPendingAssignment, StatusCancelled},
	StatusPaid:              {StatusPendingAssignment, StatusCancelled},
	StatusPendingAssignment: {StatusActive, StatusCancelled},
	StatusActive:            {StatusInReview, StatusCompleted, StatusCancelled},
	StatusInReview:          {StatusActive, StatusCompleted, StatusCancelled},
	StatusCompleted:         nil,
	StatusCancelled:         nil,
	StatusDeclined:          nil,
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusDeclined
}

// Negotiable reports whether budget negotiation actions are accepted.
func (s Status) Negotiable() bool {
	return s == StatusNeedsQuote || s == StatusQuoted || s == StatusNegotiating
}

// Executable reports whether assignments may be offered.
func (s Status) Executable() bool {
	switch s {
	case StatusPartialPaid, StatusPaid, StatusPendingAssignment, StatusActive, StatusInReview:
		return true
	}
	return false
}

// Executing reports whether deliverables may be submitted.
func (s Status) Executing() bool {
	return s == StatusPendingAssignment || s == StatusActive || s == StatusInReview
}

// PaymentStatus tracks how much of the confirmed total was collected.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentFull    PaymentStatus = "full"
)

// StatusLabel returns the label a role sees for a status. Each role's
// screens historically used its own wording; the state machine only
// knows the canonical values.
func StatusLabel(role Role, s Status) string {
	switch role {
	case RoleClient:
		switch s {
		case StatusNeedsQuote:
			return "Awaiting quote"
		case StatusQuoted:
			return "Quote received"
		case StatusAccepted:
			return "Awaiting payment"
		case StatusActive:
			return "Promoting"
		}
	case RoleAdmin:
		switch s {
		case StatusNeedsQuote:
			return "Received"
		case StatusQuoted:
			return "Quote sent"
		case StatusPendingAssignment:
			return "Pending invitation"
		}
	case RoleAgency:
		switch s {
		case StatusNeedsQuote:
			return "New request"
		case StatusPendingAssignment:
			return "Assigning influencers"
		}
	case RoleInfluencer:
		switch s {
		case StatusActive:
			return "Promoting"
		case StatusInReview:
			return "Under review"
		}
	}
	return defaultLabels[s]
}

var defaultLabels = map[Status]string{
	StatusDraft:             "Draft",
	StatusNeedsQuote:        "Needs quote",
	StatusQuoted:            "Quoted",
	StatusNegotiating:       "Negotiating",
	StatusAccepted:          "Accepted",
	StatusPartialPaid:       "Partially paid",
	StatusPaid:              "Paid",
	StatusPendingAssignment: "Pending assignment",
	StatusActive:            "Active",
	StatusInReview:          "In review",
	StatusCompleted:         "Completed",
	StatusCancelled:         "Cancelled",
	StatusDeclined:          "Declined",
}
