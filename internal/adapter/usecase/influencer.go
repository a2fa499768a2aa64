package usecase

import (
	"context"

	"github.com/google/uuid"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// InfluencerService implements port.InfluencerUseCase. Influencers only
// see campaigns they were offered.
type InfluencerService struct {
	lc *Lifecycle
}

func NewInfluencerService(lc *Lifecycle) *InfluencerService {
	return &InfluencerService{lc: lc}
}

var _ port.InfluencerUseCase = (*InfluencerService)(nil)

func (s *InfluencerService) ListOffers(ctx context.Context, actor domain.Actor, status *domain.AssignmentStatus) ([]domain.Assignment, error) {
	p, err := s.lc.resolve(ctx, actor, domain.RoleInfluencer)
	if err != nil {
		return nil, err
	}
	return s.lc.Assignments(ctx, port.AssignmentFilter{PartyID: &p.ID, Status: status})
}

func (s *InfluencerService) RespondToOffer(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, d domain.Decision, message string) (*domain.Assignment, error) {
	p, err := s.lc.resolve(ctx, actor, domain.RoleInfluencer)
	if err != nil {
		return nil, err
	}
	return s.lc.Respond(ctx, assignmentID, p, d, message)
}

func (s *InfluencerService) SubmitMilestone(ctx context.Context, actor domain.Actor, milestoneID uuid.UUID, patch domain.SubmissionPatch) (*domain.Milestone, error) {
	p, err := s.lc.resolve(ctx, actor, domain.RoleInfluencer)
	if err != nil {
		return nil, err
	}
	return s.lc.Submit(ctx, milestoneID, p, patch)
}

// GetCampaign returns the campaign with only the caller's own assignment
// and without the budget negotiation.
func (s *InfluencerService) GetCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*port.CampaignView, error) {
	p, err := s.lc.resolve(ctx, actor, domain.RoleInfluencer)
	if err != nil {
		return nil, err
	}
	view, err := s.lc.View(ctx, campaignID, nil)
	if err != nil {
		return nil, err
	}
	var own []domain.Assignment
	for _, a := range view.Assignments {
		if a.PartyKind == domain.PartyInfluencer && a.PartyID == p.ID {
			own = append(own, a)
		}
	}
	if len(own) == 0 {
		return nil, domain.Forbidden("campaign was not offered to this influencer")
	}
	view.Assignments = own
	view.Negotiations = nil
	return view, nil
}

func (s *InfluencerService) ListCampaigns(ctx context.Context, actor domain.Actor) ([]domain.Campaign, error) {
	p, err := s.lc.resolve(ctx, actor, domain.RoleInfluencer)
	if err != nil {
		return nil, err
	}
	return s.lc.List(ctx, port.CampaignFilter{PartyID: &p.ID})
}
