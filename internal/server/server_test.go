package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-pitch-evaluator-be/internal/bootstrap"
	"ai-pitch-evaluator-be/internal/config"
	"ai-pitch-evaluator-be/internal/controller"
	"ai-pitch-evaluator-be/internal/pkg/logger"
	"ai-pitch-evaluator-be/internal/repository/memory"
	"ai-pitch-evaluator-be/internal/service"
	"ai-pitch-evaluator-be/internal/websocket"
	"ai-pitch-evaluator-be/pkg/advisor"
	"ai-pitch-evaluator-be/pkg/conversation"
	"ai-pitch-evaluator-be/pkg/llm/llmtest"
	"ai-pitch-evaluator-be/pkg/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	nop := logger.NewNopLogger()
	provider := llmtest.Reply("도움말")

	pitch := service.NewPitchService(
		conversation.NewExtractor(provider, nop, "m"),
		scoring.NewEngine(provider, nop, "m", scoring.Canonical),
		advisor.NewAdvisor(provider, nop, "m", "v"),
		nop,
	)
	results := service.NewResultService(memory.NewResultRepository(), nop)

	c := &bootstrap.Container{
		PitchController:  controller.NewPitchController(pitch),
		ResultController: controller.NewResultController(results),
		Hub:              websocket.NewHub(nil, "", nop),
		Logger:           nop,
	}
	cfg := &config.Config{App: config.AppConfig{Port: "0", CorsAllowedOrigins: "*"}}
	return New(cfg, c)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestRoutesMountedUnderAPI(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/helper", strings.NewReader(`{"userPrompt":"?"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = srv.GetApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/chatbot", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLiveFeedRequiresUpgrade(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}
