package httpadapter

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

type campaignResponse struct {
	ID                uuid.UUID                    `json:"id"`
	ClientID          uuid.UUID                    `json:"client_id"`
	AgencyID          *uuid.UUID                   `json:"agency_id,omitempty"`
	AssignedAdminID   *uuid.UUID                   `json:"assigned_admin_id,omitempty"`
	Name              string                       `json:"name"`
	Type              domain.CampaignType          `json:"type"`
	Niche             string                       `json:"niche"`
	ProductCategory   string                       `json:"product_category"`
	Targeting         domain.Targeting             `json:"targeting"`
	Details           domain.Details               `json:"details"`
	Preferences       domain.InfluencerPreferences `json:"preferences"`
	Status            domain.Status                `json:"status"`
	StatusLabel       string                       `json:"status_label"`
	CurrentStep       int                          `json:"current_step"`
	IsPlaced          bool                         `json:"is_placed"`
	PlacedAt          *time.Time                   `json:"placed_at,omitempty"`
	Budget            domain.Budget                `json:"budget"`
	Quoted            *domain.Budget               `json:"quoted,omitempty"`
	ServiceFeePercent *decimal.Decimal             `json:"service_fee_percent,omitempty"`
	PaidAmount        decimal.Decimal              `json:"paid_amount"`
	PaymentStatus     domain.PaymentStatus         `json:"payment_status"`
	NegotiationTurn   *domain.Side                 `json:"negotiation_turn,omitempty"`
	Version           int64                        `json:"version"`
	CreatedAt         time.Time                    `json:"created_at"`
	UpdatedAt         time.Time                    `json:"updated_at"`
}

func toCampaign(role domain.Role, c *domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:                c.ID,
		ClientID:          c.ClientID,
		AgencyID:          c.AgencyID,
		AssignedAdminID:   c.AssignedAdminID,
		Name:              c.Name,
		Type:              c.Type,
		Niche:             c.Niche,
		ProductCategory:   c.ProductCategory,
		Targeting:         c.Targeting,
		Details:           c.Details,
		Preferences:       c.Preferences,
		Status:            c.Status,
		StatusLabel:       domain.StatusLabel(role, c.Status),
		CurrentStep:       c.CurrentStep,
		IsPlaced:          c.IsPlaced,
		PlacedAt:          c.PlacedAt,
		Budget:            c.Budget,
		Quoted:            c.Quoted,
		ServiceFeePercent: c.ServiceFeePercent,
		PaidAmount:        c.PaidAmount,
		PaymentStatus:     c.PaymentStatus,
		NegotiationTurn:   c.NegotiationTurn,
		Version:           c.Version,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func toCampaigns(role domain.Role, cs []domain.Campaign) []campaignResponse {
	out := make([]campaignResponse, len(cs))
	for i := range cs {
		out[i] = toCampaign(role, &cs[i])
	}
	return out
}

type milestoneResponse struct {
	ID              uuid.UUID               `json:"id"`
	CampaignID      uuid.UUID               `json:"campaign_id"`
	Order           int                     `json:"order"`
	Title           string                  `json:"title"`
	Platform        string                  `json:"platform"`
	ContentType     string                  `json:"content_type"`
	Quantity        int                     `json:"quantity"`
	Expected        domain.Metrics          `json:"expected"`
	Actual          domain.Metrics          `json:"actual"`
	Status          domain.MilestoneStatus  `json:"status"`
	PaymentStatus   domain.MilestonePayment `json:"payment_status"`
	Submission      domain.Submission       `json:"submission"`
	RejectionReason string                  `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time              `json:"reviewed_at,omitempty"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

func toMilestone(m *domain.Milestone) milestoneResponse {
	return milestoneResponse{
		ID:              m.ID,
		CampaignID:      m.CampaignID,
		Order:           m.Order,
		Title:           m.Title,
		Platform:        m.Platform,
		ContentType:     m.ContentType,
		Quantity:        m.Quantity,
		Expected:        m.Expected,
		Actual:          m.Actual,
		Status:          m.Status,
		PaymentStatus:   m.PaymentStatus,
		Submission:      m.Submission,
		RejectionReason: m.RejectionReason,
		ReviewedAt:      m.ReviewedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type assignmentResponse struct {
	ID              uuid.UUID               `json:"id"`
	CampaignID      uuid.UUID               `json:"campaign_id"`
	PartyKind       domain.PartyKind        `json:"party_kind"`
	PartyID         uuid.UUID               `json:"party_id"`
	Status          domain.AssignmentStatus `json:"status"`
	Budget          domain.AssignmentBudget `json:"budget"`
	Percentage      *decimal.Decimal        `json:"percentage,omitempty"`
	Message         string                  `json:"message,omitempty"`
	Terms           string                  `json:"terms,omitempty"`
	OfferExpiresAt  *time.Time              `json:"offer_expires_at,omitempty"`
	AcceptedAt      *time.Time              `json:"accepted_at,omitempty"`
	StartedAt       *time.Time              `json:"started_at,omitempty"`
	CompletedAt     *time.Time              `json:"completed_at,omitempty"`
	RejectionReason string                  `json:"rejection_reason,omitempty"`
	DeliveryAddress string                  `json:"delivery_address,omitempty"`
	DeliveryStatus  domain.DeliveryStatus   `json:"delivery_status"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

func toAssignment(a *domain.Assignment) assignmentResponse {
	return assignmentResponse{
		ID:              a.ID,
		CampaignID:      a.CampaignID,
		PartyKind:       a.PartyKind,
		PartyID:         a.PartyID,
		Status:          a.Status,
		Budget:          a.Budget,
		Percentage:      a.Percentage,
		Message:         a.Message,
		Terms:           a.Terms,
		OfferExpiresAt:  a.OfferExpiresAt,
		AcceptedAt:      a.AcceptedAt,
		StartedAt:       a.StartedAt,
		CompletedAt:     a.CompletedAt,
		RejectionReason: a.RejectionReason,
		DeliveryAddress: a.DeliveryAddress,
		DeliveryStatus:  a.DeliveryStatus,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toAssignments(as []domain.Assignment) []assignmentResponse {
	out := make([]assignmentResponse, len(as))
	for i := range as {
		out[i] = toAssignment(&as[i])
	}
	return out
}

type negotiationResponse struct {
	ID           uuid.UUID                `json:"id"`
	Sender       domain.Role              `json:"sender"`
	SenderID     uuid.UUID                `json:"sender_id"`
	Action       domain.NegotiationAction `json:"action"`
	ProposalKind string                   `json:"proposal_kind,omitempty"`
	Proposal     domain.Proposal          `json:"proposal,omitempty"`
	Message      string                   `json:"message,omitempty"`
	IsRead       bool                     `json:"is_read"`
	CreatedAt    time.Time                `json:"created_at"`
}

type viewResponse struct {
	Campaign     campaignResponse      `json:"campaign"`
	Milestones   []milestoneResponse   `json:"milestones"`
	Assets       []domain.Asset        `json:"assets"`
	Assignments  []assignmentResponse  `json:"assignments"`
	Negotiations []negotiationResponse `json:"negotiations,omitempty"`
}

func toView(role domain.Role, v *port.CampaignView) viewResponse {
	out := viewResponse{
		Campaign:    toCampaign(role, &v.Campaign),
		Milestones:  make([]milestoneResponse, len(v.Milestones)),
		Assets:      v.Assets,
		Assignments: toAssignments(v.Assignments),
	}
	if out.Assets == nil {
		out.Assets = []domain.Asset{}
	}
	for i := range v.Milestones {
		out.Milestones[i] = toMilestone(&v.Milestones[i])
	}
	for _, n := range v.Negotiations {
		out.Negotiations = append(out.Negotiations, negotiationResponse{
			ID:           n.ID,
			Sender:       n.Sender,
			SenderID:     n.SenderID,
			Action:       n.Action,
			ProposalKind: domain.ProposalKind(n.Proposal),
			Proposal:     n.Proposal,
			Message:      n.Message,
			IsRead:       n.IsRead,
			CreatedAt:    n.CreatedAt,
		})
	}
	return out
}

type baseBudgetRequest struct {
	BaseBudget decimal.Decimal `json:"base_budget"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type decisionRequest struct {
	Decision domain.Decision `json:"decision"`
	Reason   string          `json:"reason,omitempty"`
	Message  string          `json:"message,omitempty"`
}

type offersRequest struct {
	Offers []domain.OfferInput `json:"offers"`
}

type paymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type agencyRequest struct {
	AgencyID uuid.UUID `json:"agency_id"`
}

type serviceFeeRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

type deliveryRequest struct {
	Status  domain.DeliveryStatus `json:"status"`
	Address string                `json:"address,omitempty"`
}

type milestonePaymentRequest struct {
	Status domain.MilestonePayment `json:"status"`
}

type createCampaignRequest struct {
	ClientID uuid.UUID `json:"client_id"`
	port.CampaignDraft
}

type readResponse struct {
	Marked int `json:"marked"`
}
