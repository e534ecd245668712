package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-pitch-evaluator-be/internal/constant"
	"ai-pitch-evaluator-be/internal/entity"
	"ai-pitch-evaluator-be/internal/pkg/apperr"
	"ai-pitch-evaluator-be/internal/pkg/logger"
	"ai-pitch-evaluator-be/pkg/advisor"
	"ai-pitch-evaluator-be/pkg/conversation"
	"ai-pitch-evaluator-be/pkg/llm"
	"ai-pitch-evaluator-be/pkg/llm/llmtest"
	"ai-pitch-evaluator-be/pkg/scoring"

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
	"market_opportunity":{"score":20,"feedback":"a"},
	"product_solution":{"score":15,"feedback":"b"},
	"business_model":{"score":8,"feedback":"c"},
	"competition_differentiation":{"score":5,"feedback":"d"},
	"investment_potential":{"score":4,"feedback":"e"},
	"total_score":52,"summary":"성장 가능성이 있습니다."}}`

// routedProvider answers by looking at the system prompt of each call.
func routedProvider() *llmtest.FakeProvider {
	return &llmtest.FakeProvider{Respond: func(history []llm.Message, _ llm.Options) (string, error) {
		system := history[0].Content
		switch {
		case system == constant.ConversationExtractionPromptV1:
			return extractionReply, nil
		case strings.Contains(system, "Venture Capitalist"):
			return scoringReply, nil
		case system == constant.HelperSystemPromptV1:
			return "타겟 고객을 좁혀 보세요.", nil
		default:
			return "시장성이 있습니다.", nil
		}
	}}
}

func newTestPitchService(p llm.LLMProvider) IPitchService {
	nop := logger.NewNopLogger()
	return NewPitchService(
		conversation.NewExtractor(p, nop, "m"),
		scoring.NewEngine(p, nop, "m", scoring.Canonical),
		advisor.NewAdvisor(p, nop, "m", "mini"),
		nop,
	)
}

func TestPitchFlow(t *testing.T) {
	ctx := context.Background()
	svc := newTestPitchService(routedProvider())

	session := conversation.NewSessionState()
	require.NoError(t, session.AddUserTurn("카페 앱 아이디어, 타겟은 20대, 리워드 제공"))

	res, err := svc.Chat(ctx, session.History())
	require.NoError(t, err)
	session.Apply(res)

	assert.Len(t, session.Messages, 2)
	assert.Equal(t, entity.ProvidedTrue, session.Readiness.Idea.Provided)

	decision := svc.Readiness(session.Readiness, false)
	assert.True(t, decision.CanProceedToScoring)
	assert.Equal(t, []string{entity.FieldIdea}, decision.ProvidedFields)

	analysis, err := svc.Score(ctx, session.Readiness)
	require.NoError(t, err)
	assert.InDelta(t, 52.0, analysis.TotalScore, 1e-9)

	suggestion, err := svc.Suggest(ctx, session.Readiness, "다음엔 뭘 해야 할까요?")
	require.NoError(t, err)
	assert.NotEmpty(t, suggestion)

	verdict, err := svc.Verdict(ctx, "카페 리워드 앱")
	require.NoError(t, err)
	assert.Equal(t, "시장성이 있습니다.", verdict)
}

func TestPitchReadinessWarnsOnEmptyRecord(t *testing.T) {
	svc := newTestPitchService(routedProvider())

	d := svc.Readiness(entity.NewEmptyReadinessRecord(), false)
	assert.False(t, d.CanProceedToScoring)
	assert.True(t, d.RequiresConfirmation)
	assert.False(t, d.Allowed)

	assert.True(t, svc.Readiness(entity.NewEmptyReadinessRecord(), true).Allowed)
}

func TestPitchErrorsKeepTheirKind(t *testing.T) {
	ctx := context.Background()
	svc := newTestPitchService(llmtest.Fail(errors.New("rate limited")))

	_, err := svc.Chat(ctx, []entity.Message{userMsg("hi")})
	assert.True(t, apperr.Is(err, apperr.KindExternalService))

	_, err = svc.Score(ctx, entity.NewEmptyReadinessRecord())
	assert.True(t, apperr.Is(err, apperr.KindScoring))

	_, err = svc.Verdict(ctx, "idea")
	assert.True(t, apperr.Is(err, apperr.KindExternalService))
}
