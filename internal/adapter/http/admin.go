package httpadapter

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// handleAdminCreate creates a complete campaign for a client and places
// it in one call.
func (h *Handler) handleAdminCreate(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.svc.Admin.CreateCampaign(r.Context(), actorFrom(r.Context()), req.ClientID, req.CampaignDraft)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toCampaign(domain.RoleAdmin, c))
}

// handleAdminCampaigns lists every campaign. It accepts optional
// `status`, `client_id`, `agency_id`, `limit` and `offset` query
// parameters.
func (h *Handler) handleAdminCampaigns(w http.ResponseWriter, r *http.Request) {
	var (
		q   = r.URL.Query()
		f   port.CampaignFilter
		ok  bool
		err error
	)
	if f.Status, ok = h.statusQuery(w, r); !ok {
		return
	}
	for key, dst := range map[string]**uuid.UUID{"client_id": &f.ClientID, "agency_id": &f.AgencyID} {
		if raw := q.Get(key); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				h.writeProblem(w, http.StatusBadRequest, "invalid "+key, string(domain.KindInvalidInput), nil)
				return
			}
			*dst = &id
		}
	}
	for key, dst := range map[string]*int{"limit": &f.Limit, "offset": &f.Offset} {
		if raw := q.Get(key); raw != "" {
			if *dst, err = strconv.Atoi(raw); err != nil || *dst < 0 {
				h.writeProblem(w, http.StatusBadRequest, "invalid "+key, string(domain.KindInvalidInput), nil)
				return
			}
		}
	}
	cs, err := h.svc.Admin.ListCampaigns(r.Context(), actorFrom(r.Context()), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaigns(domain.RoleAdmin, cs))
}

func (h *Handler) handleAttachAgency(w http.ResponseWriter, r *http.Request) {
	var req agencyRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.campaignCall(domain.RoleAdmin, func(ctx context.Context, a domain.Actor, id uuid.UUID) (*domain.Campaign, error) {
		return h.svc.Admin.AttachAgency(ctx, a, id, req.AgencyID)
	})(w, r)
}

func (h *Handler) handleDecline(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.campaignCall(domain.RoleAdmin, func(ctx context.Context, a domain.Actor, id uuid.UUID) (*domain.Campaign, error) {
		return h.svc.Admin.Decline(ctx, a, id, req.Reason)
	})(w, r)
}

func (h *Handler) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.campaignCall(domain.RoleAdmin, func(ctx context.Context, a domain.Actor, id uuid.UUID) (*domain.Campaign, error) {
		return h.svc.Admin.RecordPayment(ctx, a, id, req.Amount)
	})(w, r)
}

func (h *Handler) handleMilestonePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req milestonePaymentRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.milestoneResult(w, r)(h.svc.Admin.SetMilestonePayment(r.Context(), actorFrom(r.Context()), id, req.Status))
}

func (h *Handler) handleDelivery(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req deliveryRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.assignmentResult(w, r)(h.svc.Admin.UpdateDelivery(r.Context(), actorFrom(r.Context()), id, req.Status, req.Address))
}
