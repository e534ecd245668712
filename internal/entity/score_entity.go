package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

const (
	KeyTotalScore = "total_score"
	KeySummary    = "summary"
)

type CategoryScore struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// VCAnalysis is a complete, rubric-checked evaluation. Categories are
// flattened next to total_score and summary on the wire.
type VCAnalysis struct {
	Categories map[string]CategoryScore
	TotalScore float64
	Summary    string
}

func (a VCAnalysis) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(a.Categories)+2)
	for k, v := range a.Categories {
		out[k] = v
	}
	out[KeyTotalScore] = a.TotalScore
	out[KeySummary] = a.Summary
	return json.Marshal(out)
}

func (a *VCAnalysis) UnmarshalJSON(data []byte) error {
	var rec VCAnalysisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*a = VCAnalysis{Categories: rec.Categories}
	if rec.TotalScore != nil {
		a.TotalScore = *rec.TotalScore
	}
	if rec.Summary != nil {
		a.Summary = *rec.Summary
	}
	return nil
}

// ToRecord converts a finished analysis into its stored, mergeable form.
func (a VCAnalysis) ToRecord() *VCAnalysisRecord {
	cats := make(map[string]CategoryScore, len(a.Categories))
	for k, v := range a.Categories {
		cats[k] = v
	}
	total := a.TotalScore
	summary := a.Summary
	return &VCAnalysisRecord{Categories: cats, TotalScore: &total, Summary: &summary}
}

// VCAnalysisRecord is the stored (possibly partial) evaluation. Absent keys
// stay nil so a patch only overwrites what it carries.
type VCAnalysisRecord struct {
	Categories map[string]CategoryScore
	TotalScore *float64
	Summary    *string

	// Ignored lists keys dropped while decoding because their value was not
	// a category object. They are never written back.
	Ignored []string
}

func (r VCAnalysisRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Categories)+2)
	for k, v := range r.Categories {
		out[k] = v
	}
	if r.TotalScore != nil {
		out[KeyTotalScore] = *r.TotalScore
	}
	if r.Summary != nil {
		out[KeySummary] = *r.Summary
	}
	return json.Marshal(out)
}

func (r *VCAnalysisRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rec := VCAnalysisRecord{Categories: make(map[string]CategoryScore)}
	for key, value := range raw {
		switch key {
		case KeyTotalScore:
			var total float64
			if err := json.Unmarshal(value, &total); err != nil {
				return fmt.Errorf("total_score: %w", err)
			}
			rec.TotalScore = &total
		case KeySummary:
			var summary string
			if err := json.Unmarshal(value, &summary); err != nil {
				return fmt.Errorf("summary: %w", err)
			}
			rec.Summary = &summary
		default:
			if trimmed := bytes.TrimSpace(value); len(trimmed) == 0 || trimmed[0] != '{' {
				rec.Ignored = append(rec.Ignored, key)
				continue
			}
			var cat CategoryScore
			if err := json.Unmarshal(value, &cat); err != nil {
				return fmt.Errorf("category %s: %w", key, err)
			}
			rec.Categories[key] = cat
		}
	}
	*r = rec
	return nil
}

// Merge overwrites per leaf key with whatever patch carries.
func (r *VCAnalysisRecord) Merge(patch *VCAnalysisRecord) {
	if patch == nil {
		return
	}
	if r.Categories == nil {
		r.Categories = make(map[string]CategoryScore, len(patch.Categories))
	}
	for k, v := range patch.Categories {
		r.Categories[k] = v
	}
	if patch.TotalScore != nil {
		total := *patch.TotalScore
		r.TotalScore = &total
	}
	if patch.Summary != nil {
		summary := *patch.Summary
		r.Summary = &summary
	}
}

// Total returns the stored total, or the category sum when the total was
// never written.
func (r VCAnalysisRecord) Total() float64 {
	if r.TotalScore != nil && !math.IsNaN(*r.TotalScore) {
		return *r.TotalScore
	}
	var sum float64
	for _, c := range r.Categories {
		sum += c.Score
	}
	return sum
}

// CategoryKeys returns the category keys in stable order.
func (r VCAnalysisRecord) CategoryKeys() []string {
	keys := make([]string, 0, len(r.Categories))
	for k := range r.Categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
