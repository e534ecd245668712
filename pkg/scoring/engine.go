package scoring

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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const traceModule = "SCORING"

type scoringOutput struct {
	Analysis *entity.VCAnalysisRecord `json:"analysis"`
}

// Engine scores a readiness record against a rubric in a single LLM call.
type Engine struct {
	provider llm.LLMProvider
	trace    logger.ILogger
	model    string
	rubric   Rubric
	prompt   string
}

func NewEngine(provider llm.LLMProvider, llmLog logger.ILogger, model string, rubric Rubric) *Engine {
	return &Engine{
		provider: provider,
		trace:    llmLog,
		model:    model,
		rubric:   rubric,
		prompt:   SystemPrompt(rubric),
	}
}

func (e *Engine) Rubric() Rubric { return e.rubric }

// SystemPrompt renders the scoring instructions for a rubric.
func SystemPrompt(r Rubric) string {
	return fmt.Sprintf(constant.VCScoringPromptTemplateV1, r.Table(), r.Skeleton())
}

// BuildInput renders the user turn: one line per field, each tagged with
// its completeness.
func BuildInput(record entity.ReadinessRecord) string {
	record.Normalize()
	etc := strings.TrimSpace(record.Etc.Content)
	if etc == "" {
		etc = constant.NoneText
	}

	lines := []string{
		fmt.Sprintf("%s (%s): %s", constant.ScoringLabelIdea, record.Idea.Provided, record.Idea.Content),
		fmt.Sprintf("%s (%s): %s", constant.ScoringLabelTargetCustomer, record.TargetCustomer.Provided, record.TargetCustomer.Content),
		fmt.Sprintf("%s (%s): %s", constant.ScoringLabelValueProposition, record.ValueProposition.Provided, record.ValueProposition.Content),
		fmt.Sprintf("%s (%s): %s", constant.ScoringLabelEtc, record.Etc.Provided, etc),
	}
	return strings.Join(lines, "\n")
}

// Score never falls back to a default analysis: any failure comes back as
// a scoring error.
func (e *Engine) Score(ctx context.Context, record entity.ReadinessRecord) (*entity.VCAnalysis, error) {
	const op = "scoring.Score"

	ctx, span := otel.Tracer("scoring").Start(ctx, op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("llm.model", e.model)),
	)
	defer span.End()

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: e.prompt},
		{Role: llm.RoleUser, Content: BuildInput(record)},
	}

	start := time.Now()
	raw, err := e.provider.Chat(ctx, history,
		llm.WithModel(e.model),
		llm.WithTemperature(0),
		llm.WithMaxTokens(constant.ScoringMaxTokens),
		llm.WithJSONMode(),
	)
	e.trace.Info(traceModule, "Scoring call finished", map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
		"reply_len":   len(raw),
		"failed":      err != nil,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "llm call failed")
		return nil, apperr.Scoring(op, err)
	}

	analysis, err := e.Parse(raw)
	if err != nil {
		e.trace.Warn(traceModule, "Unusable scoring reply", map[string]interface{}{
			"error": err.Error(),
			"reply": raw,
		})
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed reply")
		return nil, apperr.Scoring(op, err)
	}

	span.SetAttributes(attribute.Float64("scoring.total", analysis.TotalScore))
	return analysis, nil
}

// Parse decodes a reply and checks it against the rubric. A reply without
// the "analysis" wrapper is accepted as the analysis itself.
func (e *Engine) Parse(raw string) (*entity.VCAnalysis, error) {
	var out scoringOutput
	if err := llm.DecodeJSON(raw, &out); err != nil {
		return nil, err
	}
	if out.Analysis == nil {
		var bare entity.VCAnalysisRecord
		if err := llm.DecodeJSON(raw, &bare); err != nil {
			return nil, err
		}
		out.Analysis = &bare
	}
	if len(out.Analysis.Ignored) > 0 {
		e.trace.Warn(traceModule, "Ignored non-category keys in scoring reply", map[string]interface{}{
			"keys": out.Analysis.Ignored,
		})
	}
	return e.rubric.Finalize(out.Analysis)
}
