package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influence-hub/internal/core/domain"
)

func TestNegotiationTurnsAlternate(t *testing.T) {
	f := newFixture(t)
	c := f.placed(1)

	c, err := f.admin.SendQuote(f.ctx, f.adminActor, c.ID, amount("12000"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuoted, c.Status)
	require.NotNil(t, c.NegotiationTurn)
	assert.Equal(t, domain.SideClient, *c.NegotiationTurn)
	assert.True(t, c.Budget.Base.Equal(amount("10000")), "quote must not touch the confirmed budget")
	assert.True(t, c.Quoted.Total.Equal(amount("13800")))

	// the platform side has to wait for the client now
	_, err = f.admin.CounterOffer(f.ctx, f.adminActor, c.ID, amount("11000"))
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Len(t, f.negotiations(c.ID), 1, "a rejected move leaves no trace")

	c, err = f.client.CounterOffer(f.ctx, f.clientActor, c.ID, amount("9000"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNegotiating, c.Status)
	assert.Equal(t, domain.SideAdmin, *c.NegotiationTurn)

	_, err = f.client.Accept(f.ctx, f.clientActor, c.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	c, err = f.admin.CounterOffer(f.ctx, f.adminActor, c.ID, amount("9500"))
	require.NoError(t, err)
	assert.Equal(t, domain.SideClient, *c.NegotiationTurn)

	c, err = f.client.Accept(f.ctx, f.clientActor, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, c.Status)
	assert.Nil(t, c.NegotiationTurn)
	assert.Nil(t, c.Quoted)
	assert.True(t, c.Budget.Base.Equal(amount("9500")))
	assert.True(t, c.Budget.VAT.Equal(amount("1425")))
	assert.True(t, c.Budget.Total.Equal(amount("10925")))
	assert.True(t, c.Budget.NetPayable.Equal(c.Budget.Total))

	log := f.negotiations(c.ID)
	actions := make([]domain.NegotiationAction, len(log))
	for i, n := range log {
		actions[i] = n.Action
	}
	assert.Equal(t, []domain.NegotiationAction{
		domain.ActionRequest, domain.ActionCounterOffer, domain.ActionCounterOffer, domain.ActionAccept,
	}, actions)
}

func TestAcceptKeepsLatestBudgetAndServiceFee(t *testing.T) {
	f := newFixture(t)
	c := f.placed(1)
	_, err := f.admin.AttachAgency(f.ctx, f.adminActor, c.ID, f.agencyID)
	require.NoError(t, err)

	_, err = f.agency.SendQuote(f.ctx, f.agencyActor, c.ID, amount("15000"))
	require.NoError(t, err)
	_, err = f.client.CounterOffer(f.ctx, f.clientActor, c.ID, amount("12000"))
	require.NoError(t, err)
	c, err = f.agency.ProposeServiceFee(f.ctx, f.agencyActor, c.ID, amount("8"))
	require.NoError(t, err)
	assert.True(t, c.Quoted.Base.Equal(amount("12000")), "a fee proposal keeps the quoted budget")

	c, err = f.client.Accept(f.ctx, f.clientActor, c.ID)
	require.NoError(t, err)
	assert.True(t, c.Budget.Total.Equal(amount("13800")))
	require.NotNil(t, c.ServiceFeePercent)
	assert.True(t, c.ServiceFeePercent.Equal(amount("8")))
}

func TestOnlyAgenciesProposeServiceFees(t *testing.T) {
	f := newFixture(t)
	c := f.placed(1)

	_, err := f.lc.CounterOffer(f.ctx, c.ID, nil, Party{Role: domain.RoleAdmin, ID: f.adminID},
		domain.ServiceFeeProposal{Percent: amount("5")}, "")
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.lc.CounterOffer(f.ctx, c.ID, nil, Party{Role: domain.RoleInfluencer, ID: f.creatorIDs[0]},
		domain.NewBudgetProposal(f.lc.Pricing(), amount("1")), "")
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAcceptWithoutProposal(t *testing.T) {
	f := newFixture(t)
	c := f.placed(1)

	_, err := f.client.Accept(f.ctx, f.clientActor, c.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, _ := f.view(c.ID)
	assert.Equal(t, domain.StatusNeedsQuote, stored.Status)
}

func TestRejectCancelsCampaign(t *testing.T) {
	f := newFixture(t)
	c := f.placed(1)
	_, err := f.admin.SendQuote(f.ctx, f.adminActor, c.ID, amount("10000"))
	require.NoError(t, err)

	c, err = f.client.Reject(f.ctx, f.clientActor, c.ID, "too expensive")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, c.Status)

	_, err = f.admin.SendQuote(f.ctx, f.adminActor, c.ID, amount("9000"))
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeclineNeedsReason(t *testing.T) {
	f := newFixture(t)
	c := f.placed(1)

	_, err := f.admin.Decline(f.ctx, f.adminActor, c.ID, "  ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err = f.admin.Decline(f.ctx, f.adminActor, c.ID, "out of scope")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeclined, c.Status)
	log := f.negotiations(c.ID)
	require.Len(t, log, 1)
	assert.Equal(t, "out of scope", log[0].Message)
}

func TestMessagesAndReadMarks(t *testing.T) {
	f := newFixture(t)
	c := f.placed(1)
	_, err := f.admin.SendQuote(f.ctx, f.adminActor, c.ID, amount("10000"))
	require.NoError(t, err)

	require.ErrorIs(t, f.client.SendMessage(f.ctx, f.clientActor, c.ID, " "), domain.ErrInvalidInput)
	require.NoError(t, f.admin.SendMessage(f.ctx, f.adminActor, c.ID, "any questions?"))
	require.NoError(t, f.client.SendMessage(f.ctx, f.clientActor, c.ID, "looks good"))

	stored, _ := f.view(c.ID)
	assert.Equal(t, domain.SideClient, *stored.NegotiationTurn, "messages never move the turn")

	n, err := f.client.MarkRead(f.ctx, f.clientActor, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = f.client.MarkRead(f.ctx, f.clientActor, c.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = f.admin.MarkRead(f.ctx, f.adminActor, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestQuoteNotifiesClient(t *testing.T) {
	f := newFixture(t)
	c := f.placed(1)

	_, err := f.admin.SendQuote(f.ctx, f.adminActor, c.ID, amount("10000"))
	require.NoError(t, err)

	sent := f.notifications()
	require.Len(t, sent, 1)
	assert.Equal(t, f.clientActor.UserID, sent[0].UserID)
	assert.Equal(t, domain.CategoryQuote, sent[0].Category)
	assert.Contains(t, sent[0].Message, "11500.00")
}

func TestNotificationFailureDoesNotRollBack(t *testing.T) {
	f := newFixture(t)
	c := f.placed(1)
	f.notifyErr = errors.New("mailer down")

	c, err := f.admin.SendQuote(f.ctx, f.adminActor, c.ID, amount("10000"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuoted, c.Status)
	assert.Len(t, f.notifications(), 1)
}

func TestReadMarksKeepCampaignVersion(t *testing.T) {
	f := newFixture(t)
	c := f.placed(1)
	_, err := f.admin.SendQuote(f.ctx, f.adminActor, c.ID, amount("10000"))
	require.NoError(t, err)
	require.NoError(t, f.client.SendMessage(f.ctx, f.clientActor, c.ID, "one question"))
	before, _ := f.view(c.ID)

	n, err := f.admin.MarkRead(f.ctx, f.adminActor, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = f.client.MarkRead(f.ctx, f.clientActor, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	after, _ := f.view(c.ID)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)

	other, _ := f.addProfile(domain.RoleClient, "other brand")
	_, err = f.client.MarkRead(f.ctx, other, c.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
}
