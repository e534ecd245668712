// Package advisor answers free-form questions about a pitch in progress.
package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-pitch-evaluator-be/internal/constant"
	"ai-pitch-evaluator-be/internal/entity"
	"ai-pitch-evaluator-be/internal/pkg/apperr"
	"ai-pitch-evaluator-be/internal/pkg/logger"
	"ai-pitch-evaluator-be/pkg/llm"
)

const traceModule = "ADVISOR"

type Advisor struct {
	provider     llm.LLMProvider
	trace        logger.ILogger
	model        string
	verdictModel string
}

func NewAdvisor(provider llm.LLMProvider, trace logger.ILogger, model, verdictModel string) *Advisor {
	return &Advisor{provider: provider, trace: trace, model: model, verdictModel: verdictModel}
}

// StatusMark maps a completeness value onto the marker shown to the model.
func StatusMark(p entity.Provided) string {
	switch p {
	case entity.ProvidedTrue:
		return "✓"
	case entity.ProvidedPartial:
		return "!"
	default:
		return "•"
	}
}

// StatusBlock renders one marked line per core field.
func StatusBlock(status entity.ReadinessRecord) string {
	status.Normalize()
	line := func(label string, f entity.Field) string {
		content := strings.TrimSpace(f.Content)
		if content == "" {
			content = constant.NotEnteredText
		}
		return fmt.Sprintf("%s %s: %s", StatusMark(f.Provided), label, content)
	}
	return strings.Join([]string{
		line(constant.StatusLabelIdea, status.Idea),
		line(constant.StatusLabelTargetCustomer, status.TargetCustomer),
		line(constant.StatusLabelValueProposition, status.ValueProposition),
	}, "\n")
}

// Suggest gives a short next-step suggestion for the current status.
func (a *Advisor) Suggest(ctx context.Context, status entity.ReadinessRecord, userPrompt string) (string, error) {
	const op = "advisor.Suggest"

	userPrompt = strings.TrimSpace(userPrompt)
	if userPrompt == "" {
		return "", apperr.Validation(op, "userPrompt is required")
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.HelperSystemPromptV1},
		{Role: llm.RoleUser, Content: fmt.Sprintf(constant.HelperUserPromptTemplateV1, StatusBlock(status), userPrompt)},
	}
	reply, err := a.call(ctx, op, history,
		llm.WithModel(a.model),
		llm.WithTemperature(0),
		llm.WithMaxTokens(constant.HelperMaxTokens),
	)
	if err != nil {
		return "", err
	}
	return reply, nil
}

// Verdict gives a brief market and feasibility read of a raw idea.
func (a *Advisor) Verdict(ctx context.Context, userIdea string) (string, error) {
	const op = "advisor.Verdict"

	userIdea = strings.TrimSpace(userIdea)
	if userIdea == "" {
		return "", apperr.Validation(op, "userIdea is required")
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.VerdictSystemPromptV1},
		{Role: llm.RoleUser, Content: userIdea},
	}
	reply, err := a.call(ctx, op, history,
		llm.WithModel(a.verdictModel),
		llm.WithMaxTokens(constant.VerdictMaxTokens),
	)
	if err != nil {
		return "", err
	}
	if reply == "" {
		return constant.VerdictFallbackText, nil
	}
	return reply, nil
}

func (a *Advisor) call(ctx context.Context, op string, history []llm.Message, opts ...llm.Option) (string, error) {
	start := time.Now()
	reply, err := a.provider.Chat(ctx, history, opts...)
	a.trace.Info(traceModule, "Advisor call finished", map[string]interface{}{
		"op":          op,
		"duration_ms": time.Since(start).Milliseconds(),
		"reply_len":   len(reply),
		"failed":      err != nil,
	})
	if err != nil {
		return "", apperr.ExternalService(op, err)
	}
	return strings.TrimSpace(reply), nil
}
