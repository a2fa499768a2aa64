package httpadapter

import (
	"net/http"

	"influence-hub/internal/core/domain"
)

// handleOffers lists the influencer's assignments, optionally filtered by
// `status`.
func (h *Handler) handleOffers(w http.ResponseWriter, r *http.Request) {
	var status *domain.AssignmentStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.AssignmentStatus(raw)
		status = &s
	}
	as, err := h.svc.Influencer.ListOffers(r.Context(), actorFrom(r.Context()), status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toAssignments(as))
}

func (h *Handler) handleInfluencerCampaigns(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.Influencer.ListCampaigns(r.Context(), actorFrom(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaigns(domain.RoleInfluencer, cs))
}
