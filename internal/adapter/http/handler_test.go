package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"influence-hub/internal/adapter/memory"
	"influence-hub/internal/adapter/usecase"
	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
	"influence-hub/internal/core/port/mocks"
	"influence-hub/internal/metrics"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func services(profiles port.ProfileDirectory) Services {
	lc := usecase.NewLifecycle(memory.NewCampaignRepository(), profiles, nil, discard)
	return Services{
		Client:     usecase.NewClientService(lc),
		Admin:      usecase.NewAdminService(lc),
		Agency:     usecase.NewAgencyService(lc),
		Influencer: usecase.NewInfluencerService(lc),
	}
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	dir     *memory.ProfileDirectory
}

func newTestServer(t *testing.T, opts ...Option) *testServer {
	dir := memory.NewProfileDirectory()
	return &testServer{t: t, handler: NewHandler(services(dir), discard, opts...).Router(), dir: dir}
}

func (s *testServer) actor(role domain.Role) domain.Actor {
	s.t.Helper()
	p := domain.Profile{ID: uuid.New(), UserID: uuid.New(), Role: role}
	require.NoError(s.t, s.dir.AddProfile(context.Background(), p))
	return domain.Actor{UserID: p.UserID, Role: role}
}

func (s *testServer) do(method, path string, actor *domain.Actor, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if actor != nil {
		req.Header.Set("X-User-ID", actor.UserID.String())
		req.Header.Set("X-User-Role", string(actor.Role))
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type campaignBody struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	CurrentStep int       `json:"current_step"`
	Quoted      *struct {
		Total string `json:"total"`
	} `json:"quoted"`
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestIdentityIsRequired(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/v1/client/campaigns", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthenticated", decodeBody[problem](t, rec).Kind)

	bogus := domain.Actor{UserID: uuid.New(), Role: "owner"}
	rec = s.do(http.MethodGet, "/api/v1/client/campaigns", &bogus, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCampaignFlow(t *testing.T) {
	s := newTestServer(t)
	client, admin := s.actor(domain.RoleClient), s.actor(domain.RoleAdmin)

	rec := s.do(http.MethodPost, "/api/v1/client/campaigns", &client, `{"name":"Launch","type":"paid_ad","niche":"beauty"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decodeBody[campaignBody](t, rec)
	assert.Equal(t, "draft", c.Status)
	assert.Equal(t, 1, c.CurrentStep)
	base := "/api/v1/client/campaigns/" + c.ID.String()

	steps := []struct {
		path, body string
	}{
		{base + "/targeting", `{"targeting":{"platforms":["instagram"],"locations":["Jeddah"]}}`},
		{base + "/details", `{"objective":"awareness","description":"launch"}`},
		{base + "/budget", `{"base_budget":"10000","milestones":[{"order":1,"title":"Reel","quantity":1}]}`},
		{base + "/assets", `[{"url":"https://cdn.example.com/a.png","filename":"a.png"}]`},
	}
	for _, step := range steps {
		rec = s.do(http.MethodPut, step.path, &client, step.body)
		require.Equal(t, http.StatusOK, rec.Code, "%s: %s", step.path, rec.Body.String())
	}

	rec = s.do(http.MethodPost, base+"/place", &client, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	c = decodeBody[campaignBody](t, rec)
	assert.Equal(t, "needs_quote", c.Status)
	assert.Equal(t, "Awaiting quote", c.StatusLabel)

	list := s.do(http.MethodGet, "/api/v1/admin/campaigns?status=received", &admin, nil)
	require.Equal(t, http.StatusOK, list.Code)
	listed := decodeBody[[]campaignBody](t, list)
	require.Len(t, listed, 1)
	assert.Equal(t, "Received", listed[0].StatusLabel)

	rec = s.do(http.MethodPost, "/api/v1/admin/campaigns/"+c.ID.String()+"/quote", &admin, `{"base_budget":12000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	c = decodeBody[campaignBody](t, rec)
	assert.Equal(t, "Quote sent", c.StatusLabel)
	require.NotNil(t, c.Quoted)
	assert.Equal(t, "13800", c.Quoted.Total)

	rec = s.do(http.MethodGet, base, &client, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeBody[struct {
		Campaign     campaignBody     `json:"campaign"`
		Milestones   []map[string]any `json:"milestones"`
		Assets       []map[string]any `json:"assets"`
		Negotiations []struct {
			Action       string `json:"action"`
			ProposalKind string `json:"proposal_kind"`
		} `json:"negotiations"`
	}](t, rec)
	assert.Equal(t, "Quote received", view.Campaign.StatusLabel)
	assert.Len(t, view.Milestones, 1)
	assert.Len(t, view.Assets, 1)
	require.Len(t, view.Negotiations, 1)
	assert.Equal(t, "request", view.Negotiations[0].Action)
	assert.Equal(t, "budget", view.Negotiations[0].ProposalKind)

	rec = s.do(http.MethodPost, base+"/messages", &client, `{"text":"can we talk?"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodPost, "/api/v1/admin/campaigns/"+c.ID.String()+"/messages/read", &admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeBody[readResponse](t, rec).Marked)
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)
	client, other := s.actor(domain.RoleClient), s.actor(domain.RoleClient)

	rec := s.do(http.MethodPost, "/api/v1/client/campaigns", &client, `{"name":"Launch","type":"paid_ad"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody[campaignBody](t, rec).ID.String()

	cases := []struct {
		name   string
		method string
		path   string
		actor  domain.Actor
		body   string
		status int
		kind   string
	}{
		{"incomplete wizard", http.MethodPost, "/api/v1/client/campaigns/" + id + "/place", client, "", http.StatusConflict, "invalid_transition"},
		{"foreign campaign", http.MethodGet, "/api/v1/client/campaigns/" + id, other, "", http.StatusForbidden, "forbidden"},
		{"unknown campaign", http.MethodGet, "/api/v1/client/campaigns/" + uuid.NewString(), client, "", http.StatusNotFound, "not_found"},
		{"malformed id", http.MethodGet, "/api/v1/client/campaigns/42", client, "", http.StatusBadRequest, "invalid_input"},
		{"unknown field", http.MethodPut, "/api/v1/client/campaigns/" + id + "/details", client, `{"objectiv":"x"}`, http.StatusBadRequest, "invalid_input"},
		{"broken json", http.MethodPost, "/api/v1/client/campaigns", client, `{"name":`, http.StatusBadRequest, "invalid_input"},
		{"invalid input", http.MethodPut, "/api/v1/client/campaigns/" + id + "/budget", client, `{"base_budget":"-5"}`, http.StatusBadRequest, "invalid_input"},
		{"unknown status filter", http.MethodGet, "/api/v1/client/campaigns?status=archived", client, "", http.StatusBadRequest, "invalid_input"},
		{"wrong role", http.MethodGet, "/api/v1/admin/campaigns", client, "", http.StatusForbidden, "forbidden"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body any
			if tc.body != "" {
				body = tc.body
			}
			rec := s.do(tc.method, tc.path, &tc.actor, body)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			p := decodeBody[problem](t, rec)
			assert.Equal(t, tc.kind, p.Kind)
			assert.NotEmpty(t, p.Error)
		})
	}

	rec = s.do(http.MethodPost, "/api/v1/client/campaigns/"+id+"/place", &client, nil)
	assert.Contains(t, decodeBody[problem](t, rec).Violations, "at least one milestone is required")
}

func TestUnclassifiedErrorsAreHidden(t *testing.T) {
	profiles := mocks.NewMockProfileDirectory(t)
	profiles.EXPECT().
		ResolveProfile(mock.Anything, mock.Anything, domain.RoleClient).
		Return(uuid.Nil, errors.New("connection reset by peer"))

	h := NewHandler(services(profiles), discard).Router()
	actor := domain.Actor{UserID: uuid.New(), Role: domain.RoleClient}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/client/campaigns", nil)
	req.Header.Set("X-User-ID", actor.UserID.String())
	req.Header.Set("X-User-Role", string(actor.Role))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	p := decodeBody[problem](t, rec)
	assert.Equal(t, "internal", p.Kind)
	assert.NotContains(t, p.Error, "connection reset")
}

func TestMetricsRoute(t *testing.T) {
	rec := metrics.NewRecorder()
	s := newTestServer(t, WithMetrics(rec))

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodGet, "/healthz", nil, nil).Code)

	out := s.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, out.Code)
	assert.Contains(t, out.Body.String(), `influence_hub_http_request_duration_seconds_count{method="GET",route="/healthz",status="204"} 1`)
}
