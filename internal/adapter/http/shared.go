package httpadapter

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// viewer is implemented by every facade.
type viewer interface {
	GetCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*port.CampaignView, error)
}

// negotiator is the budget dialogue shared by clients, admins and agencies.
type negotiator interface {
	viewer
	CounterOffer(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, base decimal.Decimal) (*domain.Campaign, error)
	Accept(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (*domain.Campaign, error)
	Reject(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, reason string) (*domain.Campaign, error)
	SendMessage(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, text string) error
	MarkRead(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) (int, error)
}

type quoter interface {
	SendQuote(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, base decimal.Decimal) (*domain.Campaign, error)
}

// staffer creates and manages assignments.
type staffer interface {
	CreateAssignments(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, offers []domain.OfferInput) ([]domain.Assignment, error)
	UpdateAssignment(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, p domain.AssignmentPatch) (*domain.Assignment, error)
	CancelAssignment(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID) (*domain.Assignment, error)
}

// executor answers offers and delivers milestones.
type executor interface {
	RespondToOffer(ctx context.Context, actor domain.Actor, assignmentID uuid.UUID, d domain.Decision, message string) (*domain.Assignment, error)
	SubmitMilestone(ctx context.Context, actor domain.Actor, milestoneID uuid.UUID, p domain.SubmissionPatch) (*domain.Milestone, error)
}

type reviewer interface {
	ReviewMilestone(ctx context.Context, actor domain.Actor, milestoneID uuid.UUID, d domain.Decision, reason string) (*domain.Milestone, error)
}

// campaignMutation is the shape shared by every call that returns the
// updated campaign.
type campaignMutation func(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Campaign, error)

func (h *Handler) campaignCall(role domain.Role, fn campaignMutation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		c, err := fn(r.Context(), actorFrom(r.Context()), id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusOK, toCampaign(role, c))
	}
}

func (h *Handler) campaignView(svc viewer, role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		v, err := svc.GetCampaign(r.Context(), actorFrom(r.Context()), id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusOK, toView(role, v))
	}
}

func (h *Handler) negotiationRoutes(r chi.Router, svc negotiator, role domain.Role) {
	r.Get("/campaigns/{id}", h.campaignView(svc, role))
	r.Post("/campaigns/{id}/counter-offer", func(w http.ResponseWriter, r *http.Request) {
		var req baseBudgetRequest
		if !h.decode(w, r, &req) {
			return
		}
		h.campaignCall(role, func(ctx context.Context, a domain.Actor, id uuid.UUID) (*domain.Campaign, error) {
			return svc.CounterOffer(ctx, a, id, req.BaseBudget)
		})(w, r)
	})
	r.Post("/campaigns/{id}/accept", h.campaignCall(role, svc.Accept))
	r.Post("/campaigns/{id}/reject", func(w http.ResponseWriter, r *http.Request) {
		var req reasonRequest
		if !h.decode(w, r, &req) {
			return
		}
		h.campaignCall(role, func(ctx context.Context, a domain.Actor, id uuid.UUID) (*domain.Campaign, error) {
			return svc.Reject(ctx, a, id, req.Reason)
		})(w, r)
	})
	r.Post("/campaigns/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		var req messageRequest
		if !h.decode(w, r, &req) {
			return
		}
		if err := svc.SendMessage(r.Context(), actorFrom(r.Context()), id, req.Text); err != nil {
			h.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/campaigns/{id}/messages/read", func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		n, err := svc.MarkRead(r.Context(), actorFrom(r.Context()), id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusOK, readResponse{Marked: n})
	})
}

func (h *Handler) quoteRoutes(r chi.Router, svc quoter, role domain.Role) {
	r.Post("/campaigns/{id}/quote", func(w http.ResponseWriter, r *http.Request) {
		var req baseBudgetRequest
		if !h.decode(w, r, &req) {
			return
		}
		h.campaignCall(role, func(ctx context.Context, a domain.Actor, id uuid.UUID) (*domain.Campaign, error) {
			return svc.SendQuote(ctx, a, id, req.BaseBudget)
		})(w, r)
	})
}

func (h *Handler) staffingRoutes(r chi.Router, svc staffer) {
	r.Post("/campaigns/{id}/assignments", func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		var req offersRequest
		if !h.decode(w, r, &req) {
			return
		}
		as, err := svc.CreateAssignments(r.Context(), actorFrom(r.Context()), id, req.Offers)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusCreated, toAssignments(as))
	})
	r.Patch("/assignments/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		var patch domain.AssignmentPatch
		if !h.decode(w, r, &patch) {
			return
		}
		h.assignmentResult(w, r)(svc.UpdateAssignment(r.Context(), actorFrom(r.Context()), id, patch))
	})
	r.Post("/assignments/{id}/cancel", func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		h.assignmentResult(w, r)(svc.CancelAssignment(r.Context(), actorFrom(r.Context()), id))
	})
}

func (h *Handler) executionRoutes(r chi.Router, svc executor) {
	r.Post("/assignments/{id}/respond", func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		var req decisionRequest
		if !h.decode(w, r, &req) {
			return
		}
		h.assignmentResult(w, r)(svc.RespondToOffer(r.Context(), actorFrom(r.Context()), id, req.Decision, req.Message))
	})
	r.Put("/milestones/{id}/submission", func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		var patch domain.SubmissionPatch
		if !h.decode(w, r, &patch) {
			return
		}
		h.milestoneResult(w, r)(svc.SubmitMilestone(r.Context(), actorFrom(r.Context()), id, patch))
	})
}

func (h *Handler) reviewRoutes(r chi.Router, svc reviewer) {
	r.Post("/milestones/{id}/review", func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		var req decisionRequest
		if !h.decode(w, r, &req) {
			return
		}
		h.milestoneResult(w, r)(svc.ReviewMilestone(r.Context(), actorFrom(r.Context()), id, req.Decision, req.Reason))
	})
}

// assignmentResult writes an assignment outcome.
func (h *Handler) assignmentResult(w http.ResponseWriter, r *http.Request) func(*domain.Assignment, error) {
	return func(a *domain.Assignment, err error) {
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusOK, toAssignment(a))
	}
}

func (h *Handler) milestoneResult(w http.ResponseWriter, r *http.Request) func(*domain.Milestone, error) {
	return func(m *domain.Milestone, err error) {
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusOK, toMilestone(m))
	}
}
