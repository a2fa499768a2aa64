package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"influence-hub/internal/core/domain"
)

type actorKey struct{}

// withActor reads the verified identity forwarded by the gateway.
// Requests without one are rejected before reaching a facade.
func (h *Handler) withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.Header.Get("X-User-ID"))
		if err != nil {
			h.writeProblem(w, http.StatusUnauthorized, "missing or invalid X-User-ID", "unauthenticated", nil)
			return
		}
		role, err := domain.ParseRole(r.Header.Get("X-User-Role"))
		if err != nil {
			h.writeProblem(w, http.StatusUnauthorized, err.Error(), "unauthenticated", nil)
			return
		}
		ctx := context.WithValue(r.Context(), actorKey{}, domain.Actor{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func actorFrom(ctx context.Context) domain.Actor {
	a, _ := ctx.Value(actorKey{}).(domain.Actor)
	return a
}

// logRequests writes one structured line per request.
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Info("http request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
