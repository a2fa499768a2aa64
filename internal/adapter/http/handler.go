package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
	"influence-hub/internal/metrics"
)

// Services bundles the role facades served over HTTP.
type Services struct {
	Client     port.ClientUseCase
	Admin      port.AdminUseCase
	Agency     port.AgencyUseCase
	Influencer port.InfluencerUseCase
}

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. Every role has its own route group; the caller identity comes
// from a trusted gateway in the X-User-ID and X-User-Role headers.
type Handler struct {
	svc     Services
	logger  *slog.Logger
	metrics *metrics.Recorder
	router  chi.Router
}

// Option customizes a Handler.
type Option func(*Handler)

// WithMetrics times every request and serves /metrics.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(h *Handler) { h.metrics = rec }
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc Services, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{svc: svc, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, h.logRequests, middleware.Recoverer)
	if h.metrics != nil {
		r.Use(h.metrics.Middleware)
		r.Handle("/metrics", h.metrics.Handler())
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.withActor)

		r.Route("/client", func(r chi.Router) {
			c := svc.Client
			r.Post("/campaigns", h.handleCreateDraft)
			r.Get("/campaigns", h.handleClientCampaigns)
			r.Put("/campaigns/{id}/basic-info", h.handleUpdateBasicInfo)
			r.Put("/campaigns/{id}/targeting", h.handleUpdateTargeting)
			r.Put("/campaigns/{id}/details", h.handleUpdateDetails)
			r.Put("/campaigns/{id}/budget", h.handleUpdateBudget)
			r.Put("/campaigns/{id}/assets", h.handleUpdateAssets)
			r.Post("/campaigns/{id}/place", h.handlePlace)
			r.Post("/campaigns/{id}/cancel", h.handleCancel)
			h.negotiationRoutes(r, c, domain.RoleClient)
			h.reviewRoutes(r, c)
		})

		r.Route("/admin", func(r chi.Router) {
			a := svc.Admin
			r.Post("/campaigns", h.handleAdminCreate)
			r.Get("/campaigns", h.handleAdminCampaigns)
			r.Post("/campaigns/{id}/agency", h.handleAttachAgency)
			r.Post("/campaigns/{id}/decline", h.handleDecline)
			r.Post("/campaigns/{id}/payments", h.handleRecordPayment)
			r.Put("/milestones/{id}/payment", h.handleMilestonePayment)
			r.Put("/assignments/{id}/delivery", h.handleDelivery)
			h.quoteRoutes(r, a, domain.RoleAdmin)
			h.negotiationRoutes(r, a, domain.RoleAdmin)
			h.staffingRoutes(r, a)
			h.reviewRoutes(r, a)
		})

		r.Route("/agency", func(r chi.Router) {
			g := svc.Agency
			r.Get("/campaigns", h.handleAgencyCampaigns)
			r.Post("/campaigns/{id}/service-fee", h.handleServiceFee)
			h.quoteRoutes(r, g, domain.RoleAgency)
			h.negotiationRoutes(r, g, domain.RoleAgency)
			h.staffingRoutes(r, g)
			h.executionRoutes(r, g)
		})

		r.Route("/influencer", func(r chi.Router) {
			i := svc.Influencer
			r.Get("/offers", h.handleOffers)
			r.Get("/campaigns", h.handleInfluencerCampaigns)
			r.Get("/campaigns/{id}", h.campaignView(i, domain.RoleInfluencer))
			h.executionRoutes(r, i)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
