package httpadapter

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"influence-hub/internal/core/domain"
)

func (h *Handler) handleAgencyCampaigns(w http.ResponseWriter, r *http.Request) {
	status, ok := h.statusQuery(w, r)
	if !ok {
		return
	}
	cs, err := h.svc.Agency.ListCampaigns(r.Context(), actorFrom(r.Context()), status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaigns(domain.RoleAgency, cs))
}

// handleServiceFee counters with the agency's service fee percentage.
func (h *Handler) handleServiceFee(w http.ResponseWriter, r *http.Request) {
	var req serviceFeeRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.campaignCall(domain.RoleAgency, func(ctx context.Context, a domain.Actor, id uuid.UUID) (*domain.Campaign, error) {
		return h.svc.Agency.ProposeServiceFee(ctx, a, id, req.Percent)
	})(w, r)
}
