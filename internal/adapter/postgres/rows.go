package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"influence-hub/internal/core/domain"
)

var campaignCols = []string{
	"id", "client_id", "agency_id", "assigned_admin_id",
	"name", "type", "niche", "product_category",
	"targeting", "details", "preferences",
	"status", "current_step", "is_placed", "placed_at",
	"base_budget", "vat", "total_budget", "net_payable",
	"quoted_base", "quoted_vat", "quoted_total", "service_fee_percent",
	"paid_amount", "payment_status", "negotiation_turn",
	"version", "created_at", "updated_at",
}

var milestoneCols = []string{
	"id", "campaign_id", "position", "title", "platform", "content_type", "quantity",
	"expected", "actual", "status", "payment_status", "submission",
	"rejection_reason", "reviewed_at", "created_at", "updated_at",
}

var assignmentCols = []string{
	"id", "campaign_id", "party_kind", "party_id", "status",
	"offer_amount", "vat", "total", "platform_fee", "payout", "percentage",
	"message", "terms", "offer_expires_at", "accepted_at", "started_at", "completed_at",
	"rejection_reason", "delivery_address", "delivery_status",
	"assigned_by", "assigned_by_role", "created_at", "updated_at",
}

var negotiationCols = []string{
	"id", "campaign_id", "sender_role", "sender_id", "action",
	"proposal_kind", "proposal", "message", "is_read", "created_at",
}

var assetCols = []string{"id", "campaign_id", "url", "filename", "type", "created_at"}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

func uuidPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func campaignValues(c *domain.Campaign) ([]any, error) {
	targeting, err := marshal(c.Targeting)
	if err != nil {
		return nil, err
	}
	details, err := marshal(c.Details)
	if err != nil {
		return nil, err
	}
	prefs, err := marshal(c.Preferences)
	if err != nil {
		return nil, err
	}
	var quoted [3]decimal.NullDecimal
	if c.Quoted != nil {
		quoted[0] = decimal.NullDecimal{Decimal: c.Quoted.Base, Valid: true}
		quoted[1] = decimal.NullDecimal{Decimal: c.Quoted.VAT, Valid: true}
		quoted[2] = decimal.NullDecimal{Decimal: c.Quoted.Total, Valid: true}
	}
	var turn *string
	if c.NegotiationTurn != nil {
		s := string(*c.NegotiationTurn)
		turn = &s
	}
	return []any{
		c.ID, c.ClientID, nullUUID(c.AgencyID), nullUUID(c.AssignedAdminID),
		c.Name, string(c.Type), c.Niche, c.ProductCategory,
		targeting, details, prefs,
		string(c.Status), c.CurrentStep, c.IsPlaced, c.PlacedAt,
		c.Budget.Base, c.Budget.VAT, c.Budget.Total, c.Budget.NetPayable,
		quoted[0], quoted[1], quoted[2], nullDecimal(c.ServiceFeePercent),
		c.PaidAmount, string(c.PaymentStatus), turn,
		c.Version, c.CreatedAt, c.UpdatedAt,
	}, nil
}

func scanCampaign(row scanner) (domain.Campaign, error) {
	var (
		c                         domain.Campaign
		agency, admin             uuid.NullUUID
		targeting, details, prefs []byte
		typ, status, payment      string
		qBase, qVAT, qTotal, fee  decimal.NullDecimal
		turn                      *string
	)
	err := row.Scan(
		&c.ID, &c.ClientID, &agency, &admin,
		&c.Name, &typ, &c.Niche, &c.ProductCategory,
		&targeting, &details, &prefs,
		&status, &c.CurrentStep, &c.IsPlaced, &c.PlacedAt,
		&c.Budget.Base, &c.Budget.VAT, &c.Budget.Total, &c.Budget.NetPayable,
		&qBase, &qVAT, &qTotal, &fee,
		&c.PaidAmount, &payment, &turn,
		&c.Version, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	c.AgencyID, c.AssignedAdminID = uuidPtr(agency), uuidPtr(admin)
	c.Type, c.Status, c.PaymentStatus = domain.CampaignType(typ), domain.Status(status), domain.PaymentStatus(payment)
	c.ServiceFeePercent = decimalPtr(fee)
	if qBase.Valid {
		c.Quoted = &domain.Budget{Base: qBase.Decimal, VAT: qVAT.Decimal, Total: qTotal.Decimal, NetPayable: qTotal.Decimal}
	}
	if turn != nil {
		side := domain.Side(*turn)
		c.NegotiationTurn = &side
	}
	if err = unmarshal(targeting, &c.Targeting); err != nil {
		return c, err
	}
	if err = unmarshal(details, &c.Details); err != nil {
		return c, err
	}
	return c, unmarshal(prefs, &c.Preferences)
}

func milestoneValues(m *domain.Milestone) ([]any, error) {
	expected, err := marshal(m.Expected)
	if err != nil {
		return nil, err
	}
	actual, err := marshal(m.Actual)
	if err != nil {
		return nil, err
	}
	submission, err := marshal(m.Submission)
	if err != nil {
		return nil, err
	}
	return []any{
		m.ID, m.CampaignID, m.Order, m.Title, m.Platform, m.ContentType, m.Quantity,
		expected, actual, string(m.Status), string(m.PaymentStatus), submission,
		m.RejectionReason, m.ReviewedAt, m.CreatedAt, m.UpdatedAt,
	}, nil
}

func scanMilestone(row scanner) (domain.Milestone, error) {
	var (
		m                            domain.Milestone
		status, payment              string
		expected, actual, submission []byte
	)
	err := row.Scan(
		&m.ID, &m.CampaignID, &m.Order, &m.Title, &m.Platform, &m.ContentType, &m.Quantity,
		&expected, &actual, &status, &payment, &submission,
		&m.RejectionReason, &m.ReviewedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return m, err
	}
	m.Status, m.PaymentStatus = domain.MilestoneStatus(status), domain.MilestonePayment(payment)
	if err = unmarshal(expected, &m.Expected); err != nil {
		return m, err
	}
	if err = unmarshal(actual, &m.Actual); err != nil {
		return m, err
	}
	return m, unmarshal(submission, &m.Submission)
}

func assignmentValues(a *domain.Assignment) []any {
	return []any{
		a.ID, a.CampaignID, string(a.PartyKind), a.PartyID, string(a.Status),
		a.Budget.Offer, a.Budget.VAT, a.Budget.Total, a.Budget.PlatformFee, a.Budget.Payout, nullDecimal(a.Percentage),
		a.Message, a.Terms, a.OfferExpiresAt, a.AcceptedAt, a.StartedAt, a.CompletedAt,
		a.RejectionReason, a.DeliveryAddress, string(a.DeliveryStatus),
		a.AssignedBy, string(a.AssignedByRole), a.CreatedAt, a.UpdatedAt,
	}
}

func scanAssignment(row scanner) (domain.Assignment, error) {
	var (
		a                              domain.Assignment
		kind, status, delivery, byRole string
		pct                            decimal.NullDecimal
	)
	err := row.Scan(
		&a.ID, &a.CampaignID, &kind, &a.PartyID, &status,
		&a.Budget.Offer, &a.Budget.VAT, &a.Budget.Total, &a.Budget.PlatformFee, &a.Budget.Payout, &pct,
		&a.Message, &a.Terms, &a.OfferExpiresAt, &a.AcceptedAt, &a.StartedAt, &a.CompletedAt,
		&a.RejectionReason, &a.DeliveryAddress, &delivery,
		&a.AssignedBy, &byRole, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}
	a.PartyKind, a.Status = domain.PartyKind(kind), domain.AssignmentStatus(status)
	a.DeliveryStatus, a.AssignedByRole = domain.DeliveryStatus(delivery), domain.Role(byRole)
	a.Percentage = decimalPtr(pct)
	return a, nil
}

func negotiationValues(n *domain.Negotiation) ([]any, error) {
	var (
		kind *string
		raw  []byte
	)
	if k := domain.ProposalKind(n.Proposal); k != "" {
		kind = &k
		var err error
		if raw, err = marshal(n.Proposal); err != nil {
			return nil, err
		}
	}
	return []any{
		n.ID, n.CampaignID, string(n.Sender), n.SenderID, string(n.Action),
		kind, raw, n.Message, n.IsRead, n.CreatedAt,
	}, nil
}

func scanNegotiation(row scanner) (domain.Negotiation, error) {
	var (
		n              domain.Negotiation
		sender, action string
		kind           *string
		raw            []byte
	)
	err := row.Scan(&n.ID, &n.CampaignID, &sender, &n.SenderID, &action, &kind, &raw, &n.Message, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return n, err
	}
	n.Sender, n.Action = domain.Role(sender), domain.NegotiationAction(action)
	if kind == nil {
		return n, nil
	}
	switch *kind {
	case domain.ProposalBudget:
		var p domain.BudgetProposal
		err = json.Unmarshal(raw, &p)
		n.Proposal = p
	case domain.ProposalServiceFee:
		var p domain.ServiceFeeProposal
		err = json.Unmarshal(raw, &p)
		n.Proposal = p
	default:
		err = fmt.Errorf("unknown proposal kind %q", *kind)
	}
	return n, err
}
