package conversation

import (
	"context"
	"errors"
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
)

const traceModule = "EXTRACTOR"

// Result is one extraction turn: a fresh readiness record and the reply.
type Result struct {
	Analysis entity.ReadinessRecord `json:"analysis"`
	Message  string                 `json:"message"`
}

type fieldSchema struct {
	Content  string  `json:"content" jsonschema:"required"`
	Provided string  `json:"provided" jsonschema:"required,enum=true,enum=partial,enum=false"`
	Feedback *string `json:"feedback" jsonschema:"required,nullable"`
}

type analysisSchema struct {
	Idea             fieldSchema `json:"idea" jsonschema:"required"`
	TargetCustomer   fieldSchema `json:"target_customer" jsonschema:"required"`
	ValueProposition fieldSchema `json:"value_proposition" jsonschema:"required"`
	Etc              fieldSchema `json:"etc" jsonschema:"required"`
}

type outputSchema struct {
	Analysis analysisSchema `json:"analysis" jsonschema:"required"`
	Message  string         `json:"message" jsonschema:"required"`
}

var extractionSchema = llm.GenerateSchema[outputSchema]("ReadinessExtraction")

// extractionOutput mirrors outputSchema but keeps pointers so missing
// fields are detectable.
type extractionOutput struct {
	Analysis *struct {
		Idea             *entity.Field `json:"idea"`
		TargetCustomer   *entity.Field `json:"target_customer"`
		ValueProposition *entity.Field `json:"value_proposition"`
		Etc              *entity.Field `json:"etc"`
	} `json:"analysis"`
	Message string `json:"message"`
}

// Extractor turns a full chat history into a readiness record and a reply.
// It keeps no state between calls.
type Extractor struct {
	provider llm.LLMProvider
	trace    logger.ILogger
	model    string
}

func NewExtractor(provider llm.LLMProvider, trace logger.ILogger, model string) *Extractor {
	return &Extractor{provider: provider, trace: trace, model: model}
}

// Extract re-derives every field from the entire history.
func (e *Extractor) Extract(ctx context.Context, messages []entity.Message) (*Result, error) {
	const op = "conversation.Extract"

	if !entity.HasUserMessage(messages) {
		return nil, apperr.Validation(op, "history must contain at least one user message")
	}

	ctx, span := otel.Tracer("conversation").Start(ctx, op)
	defer span.End()
	span.SetAttributes(attribute.Int("conversation.turns", len(messages)))

	history := make([]llm.Message, 0, len(messages)+1)
	history = append(history, llm.Message{Role: llm.RoleSystem, Content: constant.ConversationExtractionPromptV1})
	for _, m := range messages {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	start := time.Now()
	raw, err := e.provider.Chat(ctx, history,
		llm.WithModel(e.model),
		llm.WithTemperature(0),
		llm.WithMaxTokens(constant.ExtractionMaxTokens),
		llm.WithSchema(extractionSchema),
	)
	e.trace.Info(traceModule, "Extraction call finished", map[string]interface{}{
		"turns":       len(messages),
		"duration_ms": time.Since(start).Milliseconds(),
		"reply_len":   len(raw),
		"failed":      err != nil,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "llm call failed")
		return nil, apperr.Extraction(op, err)
	}

	res, err := ParseExtraction(raw)
	if err != nil {
		e.trace.Warn(traceModule, "Malformed extraction reply", map[string]interface{}{
			"error": err.Error(),
			"reply": raw,
		})
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed reply")
		return nil, apperr.Extraction(op, err)
	}
	return res, nil
}

// ParseExtraction decodes and checks a raw model reply.
func ParseExtraction(raw string) (*Result, error) {
	var out extractionOutput
	if err := llm.DecodeJSON(raw, &out); err != nil {
		return nil, err
	}
	if out.Analysis == nil {
		return nil, errors.New("reply has no analysis object")
	}
	a := out.Analysis
	if a.Idea == nil || a.TargetCustomer == nil || a.ValueProposition == nil {
		return nil, errors.New("reply analysis is missing a required field")
	}

	message := strings.TrimSpace(out.Message)
	if message == "" {
		return nil, errors.New("reply message is empty")
	}

	record := entity.ReadinessRecord{
		Idea:             cleanField(*a.Idea),
		TargetCustomer:   cleanField(*a.TargetCustomer),
		ValueProposition: cleanField(*a.ValueProposition),
		Etc:              entity.Field{Provided: entity.ProvidedFalse},
	}
	if a.Etc != nil {
		record.Etc = cleanField(*a.Etc)
	}
	record.Normalize()

	return &Result{Analysis: record, Message: message}, nil
}

func cleanField(f entity.Field) entity.Field {
	f.Content = strings.TrimSpace(f.Content)
	if f.Feedback != nil && strings.TrimSpace(*f.Feedback) == "" {
		f.Feedback = nil
	}
	return f
}
