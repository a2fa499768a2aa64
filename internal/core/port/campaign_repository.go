package port

import (
	"context"

	"github.com/google/uuid"

	"influence-hub/internal/core/domain"
)

// CampaignRepository defines the persistence layer for campaigns and the
// records they own. It is an outbound port in hexagonal architecture.
// Implementations must be concurrency-safe: Atomic serializes all writers
// of a campaign and commits their changes as one unit.
type CampaignRepository interface {
	// CreateCampaign stores a new campaign together with its initial
	// milestones and assets.
	CreateCampaign(ctx context.Context, c *domain.Campaign, milestones []domain.Milestone, assets []domain.Asset) error
	// GetCampaign returns a campaign by id, or nil when it does not exist.
	GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	// ListCampaigns returns campaigns matching the filter, newest first.
	ListCampaigns(ctx context.Context, f CampaignFilter) ([]domain.Campaign, error)

	ListMilestones(ctx context.Context, campaignID uuid.UUID) ([]domain.Milestone, error)
	ListAssets(ctx context.Context, campaignID uuid.UUID) ([]domain.Asset, error)
	ListNegotiations(ctx context.Context, campaignID uuid.UUID) ([]domain.Negotiation, error)
	ListAssignments(ctx context.Context, f AssignmentFilter) ([]domain.Assignment, error)

	// CampaignOfMilestone returns the owning campaign id, or uuid.Nil.
	CampaignOfMilestone(ctx context.Context, milestoneID uuid.UUID) (uuid.UUID, error)
	// CampaignOfAssignment returns the owning campaign id, or uuid.Nil.
	CampaignOfAssignment(ctx context.Context, assignmentID uuid.UUID) (uuid.UUID, error)

	// Atomic locks the campaign and runs fn inside one transaction. The
	// transaction commits only when fn returns nil. A missing campaign
	// yields a not-found error; a lost race yields a conflict error.
	Atomic(ctx context.Context, campaignID uuid.UUID, fn func(tx CampaignTx) error) error
}

// CampaignTx is the view of one locked campaign inside Atomic. Every
// method operates on that campaign only.
type CampaignTx interface {
	Campaign(ctx context.Context) (*domain.Campaign, error)
	// UpdateCampaign writes the campaign and bumps its version. It fails
	// with a conflict when the stored version differs from c.Version.
	// Transactions that only touch the negotiation read flags skip it.
	UpdateCampaign(ctx context.Context, c *domain.Campaign) error

	Milestones(ctx context.Context) ([]domain.Milestone, error)
	// ReplaceMilestones deletes every milestone and inserts ms.
	ReplaceMilestones(ctx context.Context, ms []domain.Milestone) error
	UpdateMilestone(ctx context.Context, m *domain.Milestone) error

	Assignments(ctx context.Context) ([]domain.Assignment, error)
	InsertAssignments(ctx context.Context, as []domain.Assignment) error
	UpdateAssignment(ctx context.Context, a *domain.Assignment) error

	// Negotiations returns the log oldest first.
	Negotiations(ctx context.Context) ([]domain.Negotiation, error)
	AppendNegotiation(ctx context.Context, n *domain.Negotiation) error
	// MarkNegotiationsRead flags entries sent by any of senders as read
	// and returns how many changed.
	MarkNegotiationsRead(ctx context.Context, senders ...domain.Role) (int, error)

	ReplaceAssets(ctx context.Context, assets []domain.Asset) error
}

// CampaignFilter narrows ListCampaigns. Zero fields are ignored.
type CampaignFilter struct {
	ClientID *uuid.UUID
	AgencyID *uuid.UUID
	// PartyID lists campaigns where the party holds an assignment.
	PartyID *uuid.UUID
	Status  *domain.Status
	Limit   int
	Offset  int
}

// AssignmentFilter narrows ListAssignments. Zero fields are ignored.
type AssignmentFilter struct {
	CampaignID *uuid.UUID
	PartyID    *uuid.UUID
	Status     *domain.AssignmentStatus
}
