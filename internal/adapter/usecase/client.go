package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// ClientService implements port.ClientUseCase.
type ClientService struct {
	lc *Lifecycle
}

// NewClientService returns the client facade over the state machine.
func NewClientService(lc *Lifecycle) *ClientService {
	return &ClientService{lc: lc}
}

var _ port.ClientUseCase = (*ClientService)(nil)

func ownedByClient(clientID uuid.UUID) Guard {
	return func(c *domain.Campaign) error {
		if c.ClientID != clientID {
			return domain.Forbidden("campaign belongs to another client")
		}
		return nil
	}
}

func (s *ClientService) party(ctx context.Context, actor domain.Actor) (Party, Guard, error) {
	p, err := s.lc.resolve(ctx, actor, domain.RoleClient)
	if err != nil {
		return Party{}, nil, err
	}
	return p, ownedByClient(p.ID), nil
}

func (s *ClientService) CreateDraft(ctx context.Context, actor domain.Actor, info domain.BasicInfo) (*domain.Campaign, error) {
	p, _, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.CreateDraft(ctx, p.ID, info)
}

func (s *ClientService) UpdateBasicInfo(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, info domain.BasicInfo) (*domain.Campaign, error) {
	_, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.UpdateBasicInfo(ctx, campaignID, guard, info)
}

func (s *ClientService) UpdateTargeting(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, in domain.TargetingInput) (*domain.Campaign, error) {
	_, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.UpdateTargeting(ctx, campaignID, guard, in)
}

func (s *ClientService) UpdateDetails(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, d domain.Details) (*domain.Campaign, error) {
	_, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.UpdateDetails(ctx, campaignID, guard, d)
}

func (s *ClientService) UpdateBudget(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, in domain.BudgetInput) (*domain.Campaign, error) {
	_, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.UpdateBudget(ctx, campaignID, guard, in)
}

func (s *ClientService) UpdateAssets(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, assets []domain.AssetDraft) (*domain.Campaign, error) {
	_, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.UpdateAssets(ctx, campaignID, guard, assets)
}

func (s *ClientService) Place(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*domain.Campaign, error) {
	_, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.Place(ctx, campaignID, guard)
}

func (s *ClientService) Cancel(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, reason string) (*domain.Campaign, error) {
	_, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.Cancel(ctx, campaignID, guard, reason)
}

func (s *ClientService) CounterOffer(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, base decimal.Decimal) (*domain.Campaign, error) {
	p, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.CounterOffer(ctx, campaignID, guard, p, domain.NewBudgetProposal(s.lc.Pricing(), base), "")
}

func (s *ClientService) Accept(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*domain.Campaign, error) {
	p, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.Accept(ctx, campaignID, guard, p)
}

func (s *ClientService) Reject(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, reason string) (*domain.Campaign, error) {
	p, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.Reject(ctx, campaignID, guard, p, reason)
}

func (s *ClientService) SendMessage(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, text string) error {
	p, guard, err := s.party(ctx, actor)
	if err != nil {
		return err
	}
	return s.lc.PostMessage(ctx, campaignID, guard, p, text)
}

func (s *ClientService) MarkRead(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (int, error) {
	p, guard, err := s.party(ctx, actor)
	if err != nil {
		return 0, err
	}
	return s.lc.MarkRead(ctx, campaignID, guard, p)
}

func (s *ClientService) ReviewMilestone(ctx context.Context, actor domain.Actor, milestoneID uuid.UUID, d domain.Decision, reason string) (*domain.Milestone, error) {
	_, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.Review(ctx, milestoneID, guard, d, reason)
}

func (s *ClientService) GetCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*port.CampaignView, error) {
	_, guard, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.View(ctx, campaignID, guard)
}

func (s *ClientService) ListCampaigns(ctx context.Context, actor domain.Actor, status *domain.Status) ([]domain.Campaign, error) {
	p, _, err := s.party(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.lc.List(ctx, port.CampaignFilter{ClientID: &p.ID, Status: status})
}
