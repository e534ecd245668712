// Package leaderboard ranks stored evaluation records.
package leaderboard

import (
	"sort"

	"ai-pitch-evaluator-be/internal/entity"
)

// Item is one raw stored value and the user name it is keyed by.
type Item struct {
	UserName string
	Value    []byte
}

// Skipped names a value that could not be decoded.
type Skipped struct {
	UserName string
	Err      error
}

// Rank decodes items, drops records that were never scored and orders the
// rest. Undecodable values are reported in skipped and never abort the
// ranking.
func Rank(items []Item) (entries []entity.LeaderboardEntry, skipped []Skipped) {
	entries = make([]entity.LeaderboardEntry, 0, len(items))
	for _, item := range items {
		rec, err := entity.DecodeStoredUserRecord(item.Value)
		if err != nil {
			skipped = append(skipped, Skipped{UserName: item.UserName, Err: err})
			continue
		}
		if entry, ok := EntryFor(item.UserName, rec); ok {
			entries = append(entries, entry)
		}
	}

	Sort(entries)
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, skipped
}

// EntryFor builds the leaderboard row of a record; ok is false when the
// record carries no vcAnalysis.
func EntryFor(userName string, rec *entity.StoredUserRecord) (entity.LeaderboardEntry, bool) {
	if rec == nil || rec.VCAnalysis == nil {
		return entity.LeaderboardEntry{}, false
	}

	scores := make(map[string]float64, len(rec.VCAnalysis.Categories))
	for key, c := range rec.VCAnalysis.Categories {
		scores[key] = c.Score
	}
	return entity.LeaderboardEntry{
		UserName:       userName,
		IdeaName:       rec.Analysis.IdeaName(),
		TotalScore:     rec.VCAnalysis.Total(),
		CategoryScores: scores,
		ScoredAt:       rec.ScoredAt,
	}, true
}

// Sort orders by total score descending, then earlier scoredAt (missing
// last), then user name.
func Sort(entries []entity.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		switch {
		case a.ScoredAt != nil && b.ScoredAt != nil:
			if !a.ScoredAt.Equal(*b.ScoredAt) {
				return a.ScoredAt.Before(*b.ScoredAt)
			}
		case a.ScoredAt != nil:
			return true
		case b.ScoredAt != nil:
			return false
		}
		return a.UserName < b.UserName
	})
}
