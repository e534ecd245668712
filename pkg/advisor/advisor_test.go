package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-pitch-evaluator-be/internal/constant"
	"ai-pitch-evaluator-be/internal/entity"
	"ai-pitch-evaluator-be/internal/pkg/apperr"
	"ai-pitch-evaluator-be/internal/pkg/logger"
	"ai-pitch-evaluator-be/pkg/llm"
	"ai-pitch-evaluator-be/pkg/llm/llmtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdvisor(p llm.LLMProvider) *Advisor {
	return NewAdvisor(p, logger.NewNopLogger(), "main-model", "small-model")
}

func TestStatusMark(t *testing.T) {
	assert.Equal(t, "✓", StatusMark(entity.ProvidedTrue))
	assert.Equal(t, "!", StatusMark(entity.ProvidedPartial))
	assert.Equal(t, "•", StatusMark(entity.ProvidedFalse))
	assert.Equal(t, "•", StatusMark(""))
}

func TestStatusBlock(t *testing.T) {
	status := entity.ReadinessRecord{
		Idea:             entity.Field{Content: "카페 리워드 앱", Provided: entity.ProvidedTrue},
		TargetCustomer:   entity.Field{Content: "20대", Provided: entity.ProvidedPartial},
		ValueProposition: entity.Field{Provided: entity.ProvidedFalse},
	}
	lines := strings.Split(StatusBlock(status), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "✓ 아이디어 설명: 카페 리워드 앱", lines[0])
	assert.Equal(t, "! 타겟 고객: 20대", lines[1])
	assert.Equal(t, "• 가치 제안: "+constant.NotEnteredText, lines[2])
}

func TestSuggest(t *testing.T) {
	fake := llmtest.Reply("  타겟 고객을 더 구체화해 보세요.  ")
	got, err := newTestAdvisor(fake).Suggest(context.Background(), entity.NewEmptyReadinessRecord(), "무엇부터 할까요?")
	require.NoError(t, err)
	assert.Equal(t, "타겟 고객을 더 구체화해 보세요.", got)

	call := fake.LastCall()
	require.Len(t, call.History, 2)
	assert.Equal(t, constant.HelperSystemPromptV1, call.History[0].Content)
	assert.Contains(t, call.History[1].Content, "사용자 질문: 무엇부터 할까요?")
	assert.Contains(t, call.History[1].Content, "• 아이디어 설명: "+constant.NotEnteredText)
	assert.Equal(t, "main-model", call.Options.Model)
	assert.Equal(t, constant.HelperMaxTokens, call.Options.MaxTokens)
	assert.False(t, call.Options.JSONMode)
}

func TestSuggestValidation(t *testing.T) {
	fake := llmtest.Reply("unused")
	_, err := newTestAdvisor(fake).Suggest(context.Background(), entity.NewEmptyReadinessRecord(), "   ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Empty(t, fake.Calls())
}

func TestSuggestProviderFailure(t *testing.T) {
	_, err := newTestAdvisor(llmtest.Fail(errors.New("down"))).Suggest(context.Background(), entity.NewEmptyReadinessRecord(), "질문")
	assert.True(t, apperr.Is(err, apperr.KindExternalService))
}

func TestVerdict(t *testing.T) {
	fake := llmtest.Reply("시장성이 높습니다.")
	got, err := newTestAdvisor(fake).Verdict(context.Background(), "반려동물 산책 대행")
	require.NoError(t, err)
	assert.Equal(t, "시장성이 높습니다.", got)
	assert.Equal(t, "small-model", fake.LastCall().Options.Model)
	assert.Equal(t, constant.VerdictMaxTokens, fake.LastCall().Options.MaxTokens)
}

func TestVerdictEdgeCases(t *testing.T) {
	got, err := newTestAdvisor(llmtest.Reply("")).Verdict(context.Background(), "아이디어")
	require.NoError(t, err)
	assert.Equal(t, constant.VerdictFallbackText, got)

	_, err = newTestAdvisor(llmtest.Reply("x")).Verdict(context.Background(), "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
