// Package gate decides whether a readiness record may go to scoring.
//
// The gate is soft: when no field is fully provided the caller must show a
// warning and ask for confirmation, and a confirmed override always passes.
package gate

import "ai-pitch-evaluator-be/internal/entity"

type Decision struct {
	CanProceedToScoring  bool     `json:"canProceedToScoring"`
	RequiresConfirmation bool     `json:"requiresConfirmation"`
	Allowed              bool     `json:"allowed"`
	ProvidedFields       []string `json:"providedFields"`
	PartialFields        []string `json:"partialFields"`
	MissingFields        []string `json:"missingFields"`
}

// Evaluate inspects every field. Scoring may proceed once at least one
// field is fully provided.
func Evaluate(record entity.ReadinessRecord, override bool) Decision {
	d := Decision{
		ProvidedFields: []string{},
		PartialFields:  []string{},
		MissingFields:  []string{},
	}
	for _, name := range entity.FieldNames {
		f, _ := record.Get(name)
		switch f.Provided {
		case entity.ProvidedTrue:
			d.ProvidedFields = append(d.ProvidedFields, name)
		case entity.ProvidedPartial:
			d.PartialFields = append(d.PartialFields, name)
		default:
			d.MissingFields = append(d.MissingFields, name)
		}
	}

	d.CanProceedToScoring = len(d.ProvidedFields) > 0
	d.RequiresConfirmation = !d.CanProceedToScoring
	d.Allowed = d.CanProceedToScoring || override
	return d
}

// CanProceed is Evaluate without an override.
func CanProceed(record entity.ReadinessRecord) bool {
	return Evaluate(record, false).CanProceedToScoring
}

// Allow reports whether scoring may start, counting an explicit override.
func Allow(record entity.ReadinessRecord, override bool) bool {
	return Evaluate(record, override).Allowed
}
