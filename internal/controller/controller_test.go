package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-pitch-evaluator-be/internal/constant"
	"ai-pitch-evaluator-be/internal/entity"
	"ai-pitch-evaluator-be/internal/pkg/logger"
	"ai-pitch-evaluator-be/internal/pkg/serverutils"
	"ai-pitch-evaluator-be/internal/repository/memory"
	"ai-pitch-evaluator-be/internal/service"
	"ai-pitch-evaluator-be/pkg/advisor"
	"ai-pitch-evaluator-be/pkg/conversation"
	"ai-pitch-evaluator-be/pkg/llm"
	"ai-pitch-evaluator-be/pkg/llm/llmtest"
	"ai-pitch-evaluator-be/pkg/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extractionReply = `{"analysis":{
	"idea":{"content":"카페 리워드 앱","provided":"true","feedback":null},
	"target_customer":{"content":"20대","provided":"partial","feedback":"어떤 20대인가요?"},
	"value_proposition":{"content":"리워드","provided":"partial","feedback":null},
	"etc":{"content":"","provided":"false","feedback":null}},
	"message":"좋아요! 주요 고객을 조금 더 알려주세요."}`

const scoringReply = `{"analysis":{
	"market_opportunity":{"score":30,"feedback":"a"},
	"product_solution":{"score":20,"feedback":"b"},
	"business_model":{"score":10,"feedback":"c"},
	"competition_differentiation":{"score":5,"feedback":"d"},
	"investment_potential":{"score":5,"feedback":"e"},
	"total_score":70,"summary":"좋습니다."}}`

func routed() *llmtest.FakeProvider {
	return &llmtest.FakeProvider{Respond: func(history []llm.Message, _ llm.Options) (string, error) {
		system := history[0].Content
		switch {
		case system == constant.ConversationExtractionPromptV1:
			return extractionReply, nil
		case strings.Contains(system, "Venture Capitalist"):
			return scoringReply, nil
		case system == constant.HelperSystemPromptV1:
			return "고객을 좁혀 보세요.", nil
		default:
			return "가능성이 있습니다.", nil
		}
	}}
}

type testApp struct {
	app  *fiber.App
	repo *memory.ResultRepository
}

func newTestApp(p llm.LLMProvider) *testApp {
	nop := logger.NewNopLogger()
	repo := memory.NewResultRepository()

	pitch := service.NewPitchService(
		conversation.NewExtractor(p, nop, "m"),
		scoring.NewEngine(p, nop, "m", scoring.Canonical),
		advisor.NewAdvisor(p, nop, "m", "mini"),
		nop,
	)
	results := service.NewResultService(repo, nop)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(nop))
	api := app.Group("/api")
	NewPitchController(pitch).RegisterRoutes(api)
	NewResultController(results).RegisterRoutes(api)
	return &testApp{app: app, repo: repo}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

var fullInput = map[string]interface{}{
	"idea":              map[string]interface{}{"content": "카페 앱", "provided": "true", "feedback": nil},
	"target_customer":   map[string]interface{}{"content": "20대", "provided": "partial", "feedback": nil},
	"value_proposition": map[string]interface{}{"content": "", "provided": "false", "feedback": nil},
	"etc":               map[string]interface{}{"content": "", "provided": "false", "feedback": nil},
}

func TestChatEndpoint(t *testing.T) {
	a := newTestApp(routed())

	status, body := a.do(t, "POST", "/api/chat", map[string]interface{}{
		"messages": []map[string]string{{"role": "user", "content": "카페 앱 아이디어, 타겟은 20대, 리워드 제공"}},
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["message"])
	analysis := body["analysis"].(map[string]interface{})
	assert.Equal(t, "true", analysis["idea"].(map[string]interface{})["provided"])
}

func TestChatEndpointFailures(t *testing.T) {
	a := newTestApp(llmtest.Fail(errors.New("upstream 503")))

	status, body := a.do(t, "POST", "/api/chat", map[string]interface{}{
		"messages": []map[string]string{{"role": "user", "content": "안녕"}},
	})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Nil(t, body["analysis"])
	assert.Equal(t, constant.ChatApologyMessage, body["message"])

	status, _ = a.do(t, "POST", "/api/chat", `{"messages": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(t, "POST", "/api/chat", map[string]interface{}{
		"messages": []map[string]string{{"role": "system", "content": "x"}},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = a.do(t, "POST", "/api/chat", map[string]interface{}{
		"messages": []map[string]string{{"role": "assistant", "content": "안녕하세요"}},
	})
	assert.Equal(t, http.StatusBadRequest, status, "history without a user turn")
}

func TestVCAnalyzerEndpoint(t *testing.T) {
	a := newTestApp(routed())

	status, body := a.do(t, "POST", "/api/vc_analyzer", map[string]interface{}{"analysisInput": fullInput})
	require.Equal(t, http.StatusOK, status)
	analysis := body["analysis"].(map[string]interface{})
	assert.Equal(t, 70.0, analysis["total_score"])
	assert.Contains(t, analysis, "market_opportunity")

	status, _ = a.do(t, "POST", "/api/vc_analyzer", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestVCAnalyzerEndpointFailure(t *testing.T) {
	a := newTestApp(llmtest.Reply("not json"))

	status, body := a.do(t, "POST", "/api/vc_analyzer", map[string]interface{}{"analysisInput": fullInput})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, constant.VCAnalyzerErrorMessage, body["error"])
	assert.NotContains(t, body, "analysis")
}

func TestHelperAndAnalyzerEndpoints(t *testing.T) {
	a := newTestApp(routed())

	status, body := a.do(t, "POST", "/api/helper", map[string]interface{}{
		"currentStatus": fullInput,
		"userPrompt":    "다음 단계는?",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "고객을 좁혀 보세요.", body["suggestion"])

	status, body = a.do(t, "POST", "/api/analyzer", map[string]interface{}{"userIdea": "카페 앱"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "가능성이 있습니다.", body["verdict"])

	status, _ = a.do(t, "POST", "/api/helper", map[string]interface{}{"currentStatus": fullInput})
	assert.Equal(t, http.StatusBadRequest, status)

	failing := newTestApp(llmtest.Fail(errors.New("down")))
	status, body = failing.do(t, "POST", "/api/helper", map[string]interface{}{"currentStatus": fullInput, "userPrompt": "?"})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, constant.HelperErrorMessage, body["error"])
}

func TestReadinessEndpoint(t *testing.T) {
	a := newTestApp(routed())

	status, body := a.do(t, "POST", "/api/readiness", map[string]interface{}{"analysisInput": fullInput})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["canProceedToScoring"])

	empty := map[string]interface{}{
		"idea":              map[string]interface{}{"content": "", "provided": false},
		"target_customer":   map[string]interface{}{"content": "", "provided": "false"},
		"value_proposition": map[string]interface{}{"content": "", "provided": "partial"},
	}
	status, body = a.do(t, "POST", "/api/readiness", map[string]interface{}{"analysisInput": empty})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["canProceedToScoring"])
	assert.Equal(t, true, body["requiresConfirmation"])
	assert.Equal(t, false, body["allowed"])

	status, body = a.do(t, "POST", "/api/readiness", map[string]interface{}{"analysisInput": empty, "override": true})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["allowed"])

	bad := map[string]interface{}{"idea": map[string]interface{}{"content": "x", "provided": "maybe"}}
	status, _ = a.do(t, "POST", "/api/readiness", map[string]interface{}{"analysisInput": bad})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestResultUpdateAndFetch(t *testing.T) {
	a := newTestApp(routed())
	update := map[string]interface{}{
		"userName": "kim",
		"messages": []map[string]string{{"role": "user", "content": "안녕하세요"}},
	}

	status, body := a.do(t, "POST", "/api/result_update", update)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, _ = a.do(t, "POST", "/api/result_update", update)
	require.Equal(t, http.StatusOK, status)

	status, body = a.do(t, "GET", "/api/data_fetching?userName=kim", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["messages"], 2)

	status, body = a.do(t, "POST", "/api/data_fetching", map[string]string{"userName": "nobody"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{}, body["messages"])

	status, _ = a.do(t, "GET", "/api/data_fetching", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = a.do(t, "POST", "/api/result_update", map[string]interface{}{"messages": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])
}

func TestResultUpdateStoreFailure(t *testing.T) {
	a := newTestApp(routed())
	require.NoError(t, a.repo.Put(context.Background(), "broken", []byte("{")))

	status, body := a.do(t, "POST", "/api/result_update", map[string]interface{}{"userName": "broken"})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, constant.ResultUpdateError, body["error"])
	assert.NotEmpty(t, body["details"])
}

func TestLeaderboardEndpoint(t *testing.T) {
	a := newTestApp(routed())
	ctx := context.Background()

	require.NoError(t, a.repo.Put(ctx, "alice", []byte(`{"messages":[],"analysis":{"idea":{"content":"카페 앱","provided":"true"}},"vcAnalysis":{"total_score":80}}`)))
	require.NoError(t, a.repo.Put(ctx, "bob", []byte(`{"messages":[],"vcAnalysis":{"total_score":90}}`)))
	require.NoError(t, a.repo.Put(ctx, "carol", []byte(`{"messages":[]}`)))
	require.NoError(t, a.repo.Put(ctx, "dave", []byte(`###`)))

	status, body := a.do(t, "GET", "/api/leaderboard", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2.0, body["totalCount"])

	entries := body["entries"].([]interface{})
	first := entries[0].(map[string]interface{})
	second := entries[1].(map[string]interface{})
	assert.Equal(t, "bob", first["userName"])
	assert.Equal(t, entity.UnnamedIdea, first["ideaName"])
	assert.Equal(t, 1.0, first["rank"])
	assert.Equal(t, "카페 앱", second["ideaName"])
}
