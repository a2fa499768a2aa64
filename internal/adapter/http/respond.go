package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"influence-hub/internal/core/domain"
)

type problem struct {
	Error      string   `json:"error"`
	Kind       string   `json:"kind"`
	Violations []string `json:"violations,omitempty"`
}

var statusOf = map[domain.Kind]int{
	domain.KindNotFound:          http.StatusNotFound,
	domain.KindForbidden:         http.StatusForbidden,
	domain.KindInvalidTransition: http.StatusConflict,
	domain.KindConflict:          http.StatusConflict,
	domain.KindInvalidInput:      http.StatusBadRequest,
}

// writeError maps a domain error kind to its HTTP status. Anything
// unclassified is logged and hidden behind a 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		if status, ok := statusOf[de.Kind]; ok {
			h.writeProblem(w, status, de.Message, string(de.Kind), de.Violations)
			return
		}
	}
	h.logger.Error("request failed",
		slog.String("method", r.Method), slog.String("path", r.URL.Path), slog.Any("error", err))
	h.writeProblem(w, http.StatusInternalServerError, "internal error", string(domain.KindInternal), nil)
}

func (h *Handler) writeProblem(w http.ResponseWriter, status int, msg, kind string, violations []string) {
	h.writeJSON(w, status, problem{Error: msg, Kind: kind, Violations: violations})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// encoding should rarely fail; the header is already sent
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// decode reads a JSON body into dst and answers 400 on failure. An empty
// body leaves dst at its zero value.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		h.writeProblem(w, http.StatusBadRequest, "invalid JSON: "+err.Error(), string(domain.KindInvalidInput), nil)
		return false
	}
	return true
}

// pathID parses the {id} URL parameter.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeProblem(w, http.StatusBadRequest, "invalid id", string(domain.KindInvalidInput), nil)
		return uuid.Nil, false
	}
	return id, true
}

// statusQuery parses the optional ?status= filter, accepting legacy names.
func (h *Handler) statusQuery(w http.ResponseWriter, r *http.Request) (*domain.Status, bool) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil, true
	}
	s, ok := domain.ParseStatus(raw)
	if !ok {
		h.writeProblem(w, http.StatusBadRequest, "unknown status "+raw, string(domain.KindInvalidInput), nil)
		return nil, false
	}
	return &s, true
}
