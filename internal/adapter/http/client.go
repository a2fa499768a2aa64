package httpadapter

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"influence-hub/internal/core/domain"
)

// handleCreateDraft starts a new campaign wizard from the basic info of
// step 1 and returns it with HTTP 201.
func (h *Handler) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	var info domain.BasicInfo
	if !h.decode(w, r, &info) {
		return
	}
	c, err := h.svc.Client.CreateDraft(r.Context(), actorFrom(r.Context()), info)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toCampaign(domain.RoleClient, c))
}

func (h *Handler) handleClientCampaigns(w http.ResponseWriter, r *http.Request) {
	status, ok := h.statusQuery(w, r)
	if !ok {
		return
	}
	cs, err := h.svc.Client.ListCampaigns(r.Context(), actorFrom(r.Context()), status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaigns(domain.RoleClient, cs))
}

// wizardStep decodes one wizard section and applies it with fn.
func wizardStep[T any](h *Handler, fn func(ctx context.Context, a domain.Actor, id uuid.UUID, in T) (*domain.Campaign, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in T
		if !h.decode(w, r, &in) {
			return
		}
		h.campaignCall(domain.RoleClient, func(ctx context.Context, a domain.Actor, id uuid.UUID) (*domain.Campaign, error) {
			return fn(ctx, a, id, in)
		})(w, r)
	}
}

func (h *Handler) handleUpdateBasicInfo(w http.ResponseWriter, r *http.Request) {
	wizardStep(h, h.svc.Client.UpdateBasicInfo)(w, r)
}

func (h *Handler) handleUpdateTargeting(w http.ResponseWriter, r *http.Request) {
	wizardStep(h, h.svc.Client.UpdateTargeting)(w, r)
}

func (h *Handler) handleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	wizardStep(h, h.svc.Client.UpdateDetails)(w, r)
}

func (h *Handler) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	wizardStep(h, h.svc.Client.UpdateBudget)(w, r)
}

func (h *Handler) handleUpdateAssets(w http.ResponseWriter, r *http.Request) {
	wizardStep(h, h.svc.Client.UpdateAssets)(w, r)
}

// handlePlace submits the finished wizard. Missing sections are reported
// together in the violations list of a 409.
func (h *Handler) handlePlace(w http.ResponseWriter, r *http.Request) {
	h.campaignCall(domain.RoleClient, h.svc.Client.Place)(w, r)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.campaignCall(domain.RoleClient, func(ctx context.Context, a domain.Actor, id uuid.UUID) (*domain.Campaign, error) {
		return h.svc.Client.Cancel(ctx, a, id, req.Reason)
	})(w, r)
}
