package dto

import (
	"ai-pitch-evaluator-be/internal/entity"
)

type ChatRequest struct {
	Messages []entity.Message `json:"messages" validate:"required,min=1,dive"`
}

// ChatResponse carries a nil analysis when extraction failed.
type ChatResponse struct {
	Analysis *entity.ReadinessRecord `json:"analysis"`
	Message  string                  `json:"message"`
}

type VCAnalyzerRequest struct {
	AnalysisInput *entity.ReadinessRecord `json:"analysisInput" validate:"required"`
}

type VCAnalyzerResponse struct {
	Analysis *entity.VCAnalysis `json:"analysis"`
}

type HelperRequest struct {
	CurrentStatus *entity.ReadinessRecord `json:"currentStatus" validate:"required"`
	UserPrompt    string                  `json:"userPrompt" validate:"required"`
}

type HelperResponse struct {
	Suggestion string `json:"suggestion"`
}

type AnalyzerRequest struct {
	UserIdea string `json:"userIdea" validate:"required"`
}

type AnalyzerResponse struct {
	Verdict string `json:"verdict"`
}

type ReadinessRequest struct {
	AnalysisInput *entity.ReadinessRecord `json:"analysisInput" validate:"required"`
	Override      bool                    `json:"override"`
}
