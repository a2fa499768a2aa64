package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// AdminService implements port.AdminUseCase. Admins may act on every
// campaign, so no ownership guard applies.
type AdminService struct {
	lc *Lifecycle
}

// NewAdminService returns the admin facade over the state machine.
func NewAdminService(lc *Lifecycle) *AdminService {
	return &AdminService{lc: lc}
}

var _ port.AdminUseCase = (*AdminService)(nil)

func (s *AdminService) party(ctx context.Context, actor domain.Actor) (Party, error) {
	return s.lc.resolve(ctx, actor, domain.RoleAdmin)
}

func (s *AdminService) CreateCampaign(ctx context.Context, actor domain.Actor, clientID uuid.UUID, draft port.CampaignDraft) (*domain.Campaign, error) {
	p, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.CreatePlaced(ctx, p, clientID, draft)
}

func (s *AdminService) AttachAgency(ctx context.Context, actor domain.Actor, campaignID, agencyID uuid.UUID) (*domain.Campaign, error) {
	p, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.AttachAgency(ctx, campaignID, p, agencyID)
}

func (s *AdminService) Decline(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, reason string) (*domain.Campaign, error) {
	p, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.Decline(ctx, campaignID, p, reason)
}

func (s *AdminService) RecordPayment(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, amount decimal.Decimal) (*domain.Campaign, error) {
	if _, err := s.party(ctx, actor); err != nil {
		return nil, err
	}
	return s.lc.RecordPayment(ctx, campaignID, amount)
}

func (s *AdminService) SendQuote(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, base decimal.Decimal) (*domain.Campaign, error) {
	p, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.SendQuote(ctx, campaignID, nil, p, base)
}

func (s *AdminService) CounterOffer(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, base decimal.Decimal) (*domain.Campaign, error) {
	p, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.CounterOffer(ctx, campaignID, nil, p, domain.NewBudgetProposal(s.lc.Pricing(), base), "")
}

func (s *AdminService) Accept(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*domain.Campaign, error) {
	p, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.Accept(ctx, campaignID, nil, p)
}

func (s *AdminService) Reject(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, reason string) (*domain.Campaign, error) {
	p, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.Reject(ctx, campaignID, nil, p, reason)
}

func (s *AdminService) SendMessage(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, text string) error {
	p, err := s.party(ctx, actor)
	if err != nil {
		return err
	}
	return s.lc.PostMessage(ctx, campaignID, nil, p, text)
}

func (s *AdminService) MarkRead(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (int, error) {
	p, err := s.party(ctx, actor)
	if err != nil {
		return 0, err
	}
	return s.lc.MarkRead(ctx, campaignID, nil, p)
}

func (s *AdminService) CreateAssignments(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, offers []domain.OfferInput) ([]domain.Assignment, error) {
	p, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.CreateAssignments(ctx, campaignID, nil, p, offers)
}

func (s *AdminService) UpdateAssignment(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, patch domain.AssignmentPatch) (*domain.Assignment, error) {
	if _, err := s.party(ctx, actor); err != nil {
		return nil, err
	}
	return s.lc.UpdateAssignment(ctx, assignmentID, nil, patch)
}

func (s *AdminService) CancelAssignment(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID) (*domain.Assignment, error) {
	if _, err := s.party(ctx, actor); err != nil {
		return nil, err
	}
	return s.lc.CancelAssignment(ctx, assignmentID, nil)
}

func (s *AdminService) UpdateDelivery(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, status domain.DeliveryStatus, address string) (*domain.Assignment, error) {
	if _, err := s.party(ctx, actor); err != nil {
		return nil, err
	}
	return s.lc.UpdateDelivery(ctx, assignmentID, nil, status, address)
}

func (s *AdminService) ReviewMilestone(ctx context.Context, actor domain.Actor, milestoneID uuid.UUID, d domain.Decision, reason string) (*domain.Milestone, error) {
	if _, err := s.party(ctx, actor); err != nil {
		return nil, err
	}
	return s.lc.Review(ctx, milestoneID, nil, d, reason)
}

func (s *AdminService) SetMilestonePayment(ctx context.Context, actor domain.Actor, milestoneID uuid.UUID, status domain.MilestonePayment) (*domain.Milestone, error) {
	if _, err := s.party(ctx, actor); err != nil {
		return nil, err
	}
	return s.lc.SetMilestonePayment(ctx, milestoneID, status)
}

func (s *AdminService) GetCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*port.CampaignView, error) {
	if _, err := s.party(ctx, actor); err != nil {
		return nil, err
	}
	return s.lc.View(ctx, campaignID, nil)
}

func (s *AdminService) ListCampaigns(ctx context.Context, actor domain.Actor, f port.CampaignFilter) ([]domain.Campaign, error) {
	if _, err := s.party(ctx, actor); err != nil {
		return nil, err
	}
	return s.lc.List(ctx, f)
}
