package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// AgencyService implements port.AgencyUseCase for campaigns attached to
// the calling agency.
type AgencyService struct {
	lc *Lifecycle
}

func NewAgencyService(lc *Lifecycle) *AgencyService {
	return &AgencyService{lc: lc}
}

var _ port.AgencyUseCase = (*AgencyService)(nil)

func attachedTo(agencyID uuid.UUID) Guard {
	return func(c *domain.Campaign) error {
		if c.AgencyID == nil || *c.AgencyID != agencyID {
			return domain.Forbidden("campaign is not attached to this agency")
		}
		return nil
	}
}

func (s *AgencyService) party(ctx context.Context, actor domain.Actor) (Party, Guard, error) {
	p, err := s.lc.resolve(ctx, actor, domain.RoleAgency)
	if err != nil {
		return Party{}, nil, err
	}
	return p, attachedTo(p.ID), nil
}

func (s *AgencyService) SendQuote(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, base decimal.Decimal) (*domain.Campaign, error) {
	p, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.SendQuote(ctx, campaignID, guard, p, base)
}

func (s *AgencyService) CounterOffer(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, base decimal.Decimal) (*domain.Campaign, error) {
	p, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.CounterOffer(ctx, campaignID, guard, p, domain.NewBudgetProposal(s.lc.Pricing(), base), "")
}

// ProposeServiceFee counters with the agency's fee instead of a budget.
func (s *AgencyService) ProposeServiceFee(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, percent decimal.Decimal) (*domain.Campaign, error) {
	p, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.CounterOffer(ctx, campaignID, guard, p, domain.ServiceFeeProposal{Percent: percent}, "")
}

func (s *AgencyService) Accept(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*domain.Campaign, error) {
	p, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.Accept(ctx, campaignID, guard, p)
}

func (s *AgencyService) Reject(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, reason string) (*domain.Campaign, error) {
	p, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.Reject(ctx, campaignID, guard, p, reason)
}

func (s *AgencyService) SendMessage(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, text string) error {
	p, guard, err := s.party(ctx, actor)
	if err != nil {
		return err
	}
	return s.lc.PostMessage(ctx, campaignID, guard, p, text)
}

func (s *AgencyService) MarkRead(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (int, error) {
	p, guard, err := s.party(ctx, actor)
	if err != nil {
		return 0, err
	}
	return s.lc.MarkRead(ctx, campaignID, guard, p)
}

// CreateAssignments staffs the campaign with influencers. Agencies cannot
// offer work to other agencies.
func (s *AgencyService) CreateAssignments(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, offers []domain.OfferInput) ([]domain.Assignment, error) {
	p, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	for _, in := range offers {
		if in.PartyKind != domain.PartyInfluencer {
			return nil, domain.Forbidden("agencies can only offer campaigns to influencers")
		}
	}
	return s.lc.CreateAssignments(ctx, campaignID, guard, p, offers)
}

func (s *AgencyService) UpdateAssignment(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, patch domain.AssignmentPatch) (*domain.Assignment, error) {
	_, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.UpdateAssignment(ctx, assignmentID, guard, patch)
}

func (s *AgencyService) CancelAssignment(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID) (*domain.Assignment, error) {
	_, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.CancelAssignment(ctx, assignmentID, guard)
}

// RespondToOffer answers an offer made to the agency itself.
func (s *AgencyService) RespondToOffer(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, d domain.Decision, message string) (*domain.Assignment, error) {
	p, _, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.Respond(ctx, assignmentID, p, d, message)
}

func (s *AgencyService) SubmitMilestone(ctx context.Context, actor domain.Actor, milestoneID uuid.UUID, patch domain.SubmissionPatch) (*domain.Milestone, error) {
	p, _, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.Submit(ctx, milestoneID, p, patch)
}

func (s *AgencyService) GetCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*port.CampaignView, error) {
	_, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.View(ctx, campaignID, guard)
}

func (s *AgencyService) ListCampaigns(ctx context.Context, actor domain.Actor, status *domain.Status) ([]domain.Campaign, error) {
	p, _, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.List(ctx, port.CampaignFilter{AgencyID: &p.ID, Status: status})
}
