package entity

import "time"

// LeaderboardEntry is derived from a stored record on read; it is never
// persisted.
type LeaderboardEntry struct {
	Rank           int                `json:"rank"`
	UserName       string             `json:"userName"`
	IdeaName       string             `json:"ideaName"`
	TotalScore     float64            `json:"totalScore"`
	CategoryScores map[string]float64 `json:"categoryScores"`
	ScoredAt       *time.Time         `json:"scoredAt,omitempty"`
}
