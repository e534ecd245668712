package service

import (
	"context"

	"ai-pitch-evaluator-be/internal/entity"
	"ai-pitch-evaluator-be/internal/pkg/logger"
	"ai-pitch-evaluator-be/pkg/advisor"
	"ai-pitch-evaluator-be/pkg/conversation"
	"ai-pitch-evaluator-be/pkg/gate"
	"ai-pitch-evaluator-be/pkg/scoring"
)

// IPitchService groups the model-backed operations on a pitch. None of
// them touch the result store.
type IPitchService interface {
	Chat(ctx context.Context, messages []entity.Message) (*conversation.Result, error)
	Score(ctx context.Context, record entity.ReadinessRecord) (*entity.VCAnalysis, error)
	Readiness(record entity.ReadinessRecord, override bool) gate.Decision
	Suggest(ctx context.Context, status entity.ReadinessRecord, userPrompt string) (string, error)
	Verdict(ctx context.Context, userIdea string) (string, error)
}

type pitchService struct {
	extractor *conversation.Extractor
	scorer    *scoring.Engine
	advisor   *advisor.Advisor
	logger    logger.ILogger
}

func NewPitchService(extractor *conversation.Extractor, scorer *scoring.Engine, adv *advisor.Advisor, log logger.ILogger) IPitchService {
	return &pitchService{
		extractor: extractor,
		scorer:    scorer,
		advisor:   adv,
		logger:    log,
	}
}

func (s *pitchService) Chat(ctx context.Context, messages []entity.Message) (*conversation.Result, error) {
	res, err := s.extractor.Extract(ctx, messages)
	if err != nil {
		s.logger.Error("CHAT", "Extraction failed", map[string]interface{}{
			"error": err.Error(),
			"turns": len(messages),
		})
		return nil, err
	}

	d := gate.Evaluate(res.Analysis, false)
	s.logger.Debug("CHAT", "Extraction finished", map[string]interface{}{
		"turns":    len(messages),
		"provided": d.ProvidedFields,
		"partial":  d.PartialFields,
	})
	return res, nil
}

// Score does not consult the gate; callers that want the warning flow ask
// Readiness first.
func (s *pitchService) Score(ctx context.Context, record entity.ReadinessRecord) (*entity.VCAnalysis, error) {
	record.Normalize()
	analysis, err := s.scorer.Score(ctx, record)
	if err != nil {
		s.logger.Error("SCORING", "VC analysis failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	s.logger.Info("SCORING", "VC analysis finished", map[string]interface{}{"total_score": analysis.TotalScore})
	return analysis, nil
}

func (s *pitchService) Readiness(record entity.ReadinessRecord, override bool) gate.Decision {
	record.Normalize()
	return gate.Evaluate(record, override)
}

func (s *pitchService) Suggest(ctx context.Context, status entity.ReadinessRecord, userPrompt string) (string, error) {
	out, err := s.advisor.Suggest(ctx, status, userPrompt)
	if err != nil {
		s.logger.Error("HELPER", "Suggestion failed", map[string]interface{}{"error": err.Error()})
	}
	return out, err
}

func (s *pitchService) Verdict(ctx context.Context, userIdea string) (string, error) {
	out, err := s.advisor.Verdict(ctx, userIdea)
	if err != nil {
		s.logger.Error("ANALYZER", "Verdict failed", map[string]interface{}{"error": err.Error()})
	}
	return out, err
}
