package usecase

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influence-hub/internal/core/domain"
)

func TestClientOwnership(t *testing.T) {
	f := newFixture(t)
	c := f.placed(1)
	other, _ := f.addProfile(domain.RoleClient, "rival")

	_, err := f.client.GetCampaign(f.ctx, other, c.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.client.Cancel(f.ctx, other, c.ID, "")
	require.ErrorIs(t, err, domain.ErrForbidden)

	stored, _ := f.view(c.ID)
	assert.Equal(t, domain.StatusNeedsQuote, stored.Status)

	list, err := f.client.ListCampaigns(f.ctx, other, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
	list, err = f.client.ListCampaigns(f.ctx, f.clientActor, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRoleMismatch(t *testing.T) {
	f := newFixture(t)
	c := f.placed(1)

	_, err := f.admin.SendQuote(f.ctx, f.clientActor, c.ID, amount("1000"))
	require.ErrorIs(t, err, domain.ErrForbidden)

	stranger := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	_, err = f.admin.SendQuote(f.ctx, stranger, c.ID, amount("1000"))
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.client.GetCampaign(f.ctx, f.clientActor, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAgencyNeedsAttachment(t *testing.T) {
	f := newFixture(t)
	c := f.placed(1)

	_, err := f.agency.SendQuote(f.ctx, f.agencyActor, c.ID, amount("1000"))
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.agency.GetCampaign(f.ctx, f.agencyActor, c.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.admin.AttachAgency(f.ctx, f.adminActor, c.ID, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
	c, err = f.admin.AttachAgency(f.ctx, f.adminActor, c.ID, f.agencyID)
	require.NoError(t, err)
	assert.Equal(t, f.adminID, *c.AssignedAdminID)

	_, err = f.agency.SendQuote(f.ctx, f.agencyActor, c.ID, amount("1000"))
	require.NoError(t, err)
	list, err := f.agency.ListCampaigns(f.ctx, f.agencyActor, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAgencyStaffsInfluencersOnly(t *testing.T) {
	f := newFixture(t)
	c := f.funded(1)
	_, err := f.admin.AttachAgency(f.ctx, f.adminActor, c.ID, f.agencyID)
	require.NoError(t, err)

	_, err = f.agency.CreateAssignments(f.ctx, f.agencyActor, c.ID, []domain.OfferInput{
		{PartyKind: domain.PartyAgency, PartyID: f.agencyID, OfferAmount: amount("1000")},
	})
	require.ErrorIs(t, err, domain.ErrForbidden)

	as, err := f.agency.CreateAssignments(f.ctx, f.agencyActor, c.ID, []domain.OfferInput{
		{PartyKind: domain.PartyInfluencer, PartyID: f.creatorIDs[0], OfferAmount: amount("1000")},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAgency, as[0].AssignedByRole)

	a, err := f.influencer.RespondToOffer(f.ctx, f.creators[0], as[0].ID, domain.DecisionAccept, "")
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentInProgress, a.Status)

	var toAgency int
	for _, n := range f.notifications() {
		if n.UserID == f.agencyActor.UserID && n.Title == "Offer accepted" {
			toAgency++
		}
	}
	assert.Equal(t, 1, toAgency, "the assigning agency hears about the answer")
}

func TestInfluencerSeesOnlyOwnOffer(t *testing.T) {
	f := newFixture(t)
	c := f.funded(1)
	_, err := f.influencer.GetCampaign(f.ctx, f.creators[0], c.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	f.offer(c.ID, 0, 1)

	v, err := f.influencer.GetCampaign(f.ctx, f.creators[0], c.ID)
	require.NoError(t, err)
	require.Len(t, v.Assignments, 1)
	assert.Equal(t, f.creatorIDs[0], v.Assignments[0].PartyID)
	assert.Nil(t, v.Negotiations)

	open := domain.AssignmentNewOffer
	offers, err := f.influencer.ListOffers(f.ctx, f.creators[1], &open)
	require.NoError(t, err)
	assert.Len(t, offers, 1)

	list, err := f.influencer.ListCampaigns(f.ctx, f.creators[2])
	require.NoError(t, err)
	assert.Empty(t, list)
}
