package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Provided is the completeness of one readiness field.
type Provided string

const (
	ProvidedTrue    Provided = "true"
	ProvidedPartial Provided = "partial"
	ProvidedFalse   Provided = "false"
)

func (p Provided) Valid() bool {
	switch p {
	case ProvidedTrue, ProvidedPartial, ProvidedFalse:
		return true
	}
	return false
}

// ParseProvided accepts the canonical strings plus the boolean spellings
// older prompts produced.
func ParseProvided(s string) (Provided, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return ProvidedTrue, nil
	case "partial":
		return ProvidedPartial, nil
	case "false", "":
		return ProvidedFalse, nil
	}
	return "", fmt.Errorf("invalid provided value %q", s)
}

func (p *Provided) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ProvidedFalse
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*p = ProvidedTrue
		} else {
			*p = ProvidedFalse
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("provided must be a string or boolean: %w", err)
	}
	parsed, err := ParseProvided(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Field is one tracked dimension of the pitch.
type Field struct {
	Content  string   `json:"content"`
	Provided Provided `json:"provided"`
	Feedback *string  `json:"feedback"`
}

func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = Field{Provided: ProvidedFalse}
		return nil
	}

	// Version 0 records stored only the content string.
	if len(data) > 0 && data[0] == '"' {
		var content string
		if err := json.Unmarshal(data, &content); err != nil {
			return err
		}
		*f = Field{Content: content, Provided: ProvidedFalse}
		if strings.TrimSpace(content) != "" {
			f.Provided = ProvidedTrue
		}
		return nil
	}

	type rawField struct {
		Content  *string  `json:"content"`
		Provided Provided `json:"provided"`
		Feedback *string  `json:"feedback"`
	}
	var raw rawField
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = Field{Provided: raw.Provided, Feedback: raw.Feedback}
	if raw.Content != nil {
		f.Content = *raw.Content
	}
	if f.Provided == "" {
		f.Provided = ProvidedFalse
	}
	return nil
}

// ReadinessRecord is the four-field extraction state of one conversation.
type ReadinessRecord struct {
	Idea             Field `json:"idea"`
	TargetCustomer   Field `json:"target_customer"`
	ValueProposition Field `json:"value_proposition"`
	Etc              Field `json:"etc"`
}

const (
	FieldIdea             = "idea"
	FieldTargetCustomer   = "target_customer"
	FieldValueProposition = "value_proposition"
	FieldEtc              = "etc"
)

// FieldNames lists the readiness fields in display order.
var FieldNames = []string{FieldIdea, FieldTargetCustomer, FieldValueProposition, FieldEtc}

func NewEmptyReadinessRecord() ReadinessRecord {
	return ReadinessRecord{
		Idea:             Field{Provided: ProvidedFalse},
		TargetCustomer:   Field{Provided: ProvidedFalse},
		ValueProposition: Field{Provided: ProvidedFalse},
		Etc:              Field{Provided: ProvidedFalse},
	}
}

// Get returns the field with the given wire name.
func (r ReadinessRecord) Get(name string) (Field, bool) {
	switch name {
	case FieldIdea:
		return r.Idea, true
	case FieldTargetCustomer:
		return r.TargetCustomer, true
	case FieldValueProposition:
		return r.ValueProposition, true
	case FieldEtc:
		return r.Etc, true
	}
	return Field{}, false
}

// Normalize fills zero-valued completeness flags so every field carries a
// valid tri-state value.
func (r *ReadinessRecord) Normalize() {
	for _, f := range []*Field{&r.Idea, &r.TargetCustomer, &r.ValueProposition, &r.Etc} {
		if !f.Provided.Valid() {
			f.Provided = ProvidedFalse
		}
	}
}

// Validate rejects records whose completeness flags are outside the tri-state.
func (r ReadinessRecord) Validate() error {
	for _, name := range FieldNames {
		f, _ := r.Get(name)
		if !f.Provided.Valid() {
			return fmt.Errorf("field %s has invalid provided value %q", name, f.Provided)
		}
	}
	return nil
}
