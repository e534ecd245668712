package dto

import (
	"strings"

	"ai-pitch-evaluator-be/internal/entity"
)

type ResultUpdateRequest struct {
	UserName   string                   `json:"userName" validate:"required"`
	Messages   []entity.Message         `json:"messages" validate:"omitempty,dive"`
	Analysis   *entity.AnalysisRecord   `json:"analysis"`
	VCAnalysis *entity.VCAnalysisRecord `json:"vcAnalysis"`
	UserData   *entity.UserData         `json:"userData"`
	RequestId  string                   `json:"requestId" validate:"omitempty,max=128"`
}

func (r *ResultUpdateRequest) ToPatch() entity.RecordPatch {
	return entity.RecordPatch{
		Messages:   r.Messages,
		Analysis:   r.Analysis,
		VCAnalysis: r.VCAnalysis,
		UserData:   r.UserData,
		RequestId:  strings.TrimSpace(r.RequestId),
	}
}

type ResultUpdateResponse struct {
	Success bool                     `json:"success"`
	Data    *entity.StoredUserRecord `json:"data"`
}

type LeaderboardResponse struct {
	Entries    []entity.LeaderboardEntry `json:"entries"`
	TotalCount int                       `json:"totalCount"`
}

type DataFetchingRequest struct {
	UserName string `json:"userName" query:"userName" validate:"required"`
}

type DataFetchingResponse struct {
	Messages []entity.Message `json:"messages"`
}
