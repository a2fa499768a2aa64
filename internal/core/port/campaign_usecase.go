package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"influence-hub/internal/core/domain"
)

// ClientUseCase is the brand-facing facade. Every call checks that the
// actor owns the campaign before delegating to the state machine.
type ClientUseCase interface {
	CreateDraft(ctx context.Context, actor domain.Actor, info domain.BasicInfo) (*domain.Campaign, error)
	UpdateBasicInfo(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, info domain.BasicInfo) (*domain.Campaign, error)
	UpdateTargeting(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, in domain.TargetingInput) (*domain.Campaign, error)
	UpdateDetails(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, d domain.Details) (*domain.Campaign, error)
	UpdateBudget(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, in domain.BudgetInput) (*domain.Campaign, error)
	UpdateAssets(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, assets []domain.AssetDraft) (*domain.Campaign, error)
	Place(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*domain.Campaign, error)
	Cancel(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, reason string) (*domain.Campaign, error)

	CounterOffer(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, base decimal.Decimal) (*domain.Campaign, error)
	Accept(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*domain.Campaign, error)
	Reject(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, reason string) (*domain.Campaign, error)
	SendMessage(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, text string) error
	MarkRead(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (int, error)

	ReviewMilestone(ctx context.Context, actor domain.Actor, milestoneID uuid.UUID, d domain.Decision, reason string) (*domain.Milestone, error)

	GetCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*CampaignView, error)
	ListCampaigns(ctx context.Context, actor domain.Actor, status *domain.Status) ([]domain.Campaign, error)
}

// AdminUseCase is the platform operator facade.
type AdminUseCase interface {
	CreateCampaign(ctx context.Context, actor domain.Actor, clientID uuid.UUID, draft CampaignDraft) (*domain.Campaign, error)
	AttachAgency(ctx context.Context, actor domain.Actor, campaignID, agencyID uuid.UUID) (*domain.Campaign, error)
	Decline(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, reason string) (*domain.Campaign, error)
	RecordPayment(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, amount decimal.Decimal) (*domain.Campaign, error)

	SendQuote(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, base decimal.Decimal) (*domain.Campaign, error)
	CounterOffer(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, base decimal.Decimal) (*domain.Campaign, error)
	Accept(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*domain.Campaign, error)
	Reject(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, reason string) (*domain.Campaign, error)
	SendMessage(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, text string) error
	MarkRead(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (int, error)

	CreateAssignments(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, offers []domain.OfferInput) ([]domain.Assignment, error)
	UpdateAssignment(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, p domain.AssignmentPatch) (*domain.Assignment, error)
	CancelAssignment(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID) (*domain.Assignment, error)
	UpdateDelivery(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, status domain.DeliveryStatus, address string) (*domain.Assignment, error)

	ReviewMilestone(ctx context.Context, actor domain.Actor, milestoneID uuid.UUID, d domain.Decision, reason string) (*domain.Milestone, error)
	SetMilestonePayment(ctx context.Context, actor domain.Actor, milestoneID uuid.UUID, status domain.MilestonePayment) (*domain.Milestone, error)

	GetCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*CampaignView, error)
	ListCampaigns(ctx context.Context, actor domain.Actor, f CampaignFilter) ([]domain.Campaign, error)
}

// AgencyUseCase is the agency facade. Agencies negotiate and staff the
// campaigns attached to them and may themselves execute offers.
type AgencyUseCase interface {
	SendQuote(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, base decimal.Decimal) (*domain.Campaign, error)
	CounterOffer(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, base decimal.Decimal) (*domain.Campaign, error)
	ProposeServiceFee(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, percent decimal.Decimal) (*domain.Campaign, error)
	Accept(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*domain.Campaign, error)
	Reject(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, reason string) (*domain.Campaign, error)
	SendMessage(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, text string) error
	MarkRead(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (int, error)

	CreateAssignments(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, offers []domain.OfferInput) ([]domain.Assignment, error)
	UpdateAssignment(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, p domain.AssignmentPatch) (*domain.Assignment, error)
	CancelAssignment(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID) (*domain.Assignment, error)

	RespondToOffer(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, d domain.Decision, message string) (*domain.Assignment, error)
	SubmitMilestone(ctx context.Context, actor domain.Actor, milestoneID uuid.UUID, p domain.SubmissionPatch) (*domain.Milestone, error)

	GetCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*CampaignView, error)
	ListCampaigns(ctx context.Context, actor domain.Actor, status *domain.Status) ([]domain.Campaign, error)
}

// InfluencerUseCase is the influencer facade.
type InfluencerUseCase interface {
	ListOffers(ctx context.Context, actor domain.Actor, status *domain.AssignmentStatus) ([]domain.Assignment, error)
	RespondToOffer(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, d domain.Decision, message string) (*domain.Assignment, error)
	SubmitMilestone(ctx context.Context, actor domain.Actor, milestoneID uuid.UUID, p domain.SubmissionPatch) (*domain.Milestone, error)
	GetCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*CampaignView, error)
	ListCampaigns(ctx context.Context, actor domain.Actor) ([]domain.Campaign, error)
}

// CampaignView is a campaign with everything it owns. It is a DTO used
// by the HTTP layer and does not contain domain behaviour.
type CampaignView struct {
	Campaign     domain.Campaign
	Milestones   []domain.Milestone
	Assets       []domain.Asset
	Assignments  []domain.Assignment
	Negotiations []domain.Negotiation
}

// CampaignDraft carries every wizard section at once, for campaigns an
// admin creates on behalf of a client.
type CampaignDraft struct {
	Info      domain.BasicInfo      `json:"info"`
	Targeting domain.TargetingInput `json:"targeting"`
	Details   domain.Details        `json:"details"`
	Budget    domain.BudgetInput    `json:"budget"`
	Assets    []domain.AssetDraft   `json:"assets"`
}
