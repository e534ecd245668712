package entity

import (
	"encoding/json"
	"strings"
	"time"
)

// CurrentSchemaVersion tags every record written by this service. Records
// without a tag are version 0 and carry string-only analysis fields.
const CurrentSchemaVersion = 1

// MaxAppliedRequestIds bounds the request id history kept per record.
const MaxAppliedRequestIds = 32

const UnnamedIdea = "Unnamed Idea"

type AnalysisRecord struct {
	Idea             *Field `json:"idea,omitempty"`
	TargetCustomer   *Field `json:"target_customer,omitempty"`
	ValueProposition *Field `json:"value_proposition,omitempty"`
	Etc              *Field `json:"etc,omitempty"`
}

func AnalysisRecordFrom(r ReadinessRecord) *AnalysisRecord {
	idea, target, value, etc := r.Idea, r.TargetCustomer, r.ValueProposition, r.Etc
	return &AnalysisRecord{Idea: &idea, TargetCustomer: &target, ValueProposition: &value, Etc: &etc}
}

func (a *AnalysisRecord) Merge(patch *AnalysisRecord) {
	if patch == nil {
		return
	}
	if patch.Idea != nil {
		a.Idea = copyField(patch.Idea)
	}
	if patch.TargetCustomer != nil {
		a.TargetCustomer = copyField(patch.TargetCustomer)
	}
	if patch.ValueProposition != nil {
		a.ValueProposition = copyField(patch.ValueProposition)
	}
	if patch.Etc != nil {
		a.Etc = copyField(patch.Etc)
	}
}

// IdeaName is the leaderboard title of the stored idea.
func (a *AnalysisRecord) IdeaName() string {
	if a == nil || a.Idea == nil || strings.TrimSpace(a.Idea.Content) == "" {
		return UnnamedIdea
	}
	return a.Idea.Content
}

func copyField(f *Field) *Field {
	c := *f
	return &c
}

type UserData struct {
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

func (u *UserData) HasContact() bool {
	return u != nil && (nonEmpty(u.Email) || nonEmpty(u.Phone))
}

func (u *UserData) Merge(patch *UserData) {
	if patch == nil {
		return
	}
	if patch.Email != nil {
		email := *patch.Email
		u.Email = &email
	}
	if patch.Phone != nil {
		phone := *patch.Phone
		u.Phone = &phone
	}
}

func nonEmpty(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// StoredUserRecord is the per-user value persisted under the user name key.
type StoredUserRecord struct {
	SchemaVersion     int               `json:"schemaVersion"`
	Messages          []Message         `json:"messages"`
	Analysis          *AnalysisRecord   `json:"analysis,omitempty"`
	VCAnalysis        *VCAnalysisRecord `json:"vcAnalysis,omitempty"`
	UserData          *UserData         `json:"userData,omitempty"`
	ScoredAt          *time.Time        `json:"scoredAt,omitempty"`
	UpdatedAt         *time.Time        `json:"updatedAt,omitempty"`
	AppliedRequestIds []string          `json:"appliedRequestIds,omitempty"`
}

func NewStoredUserRecord() *StoredUserRecord {
	return &StoredUserRecord{SchemaVersion: CurrentSchemaVersion, Messages: []Message{}}
}

// RecordPatch is a partial update for one stored record.
type RecordPatch struct {
	Messages   []Message
	Analysis   *AnalysisRecord
	VCAnalysis *VCAnalysisRecord
	UserData   *UserData
	RequestId  string
}

// HasApplied reports whether a patch with this request id was already merged.
func (r *StoredUserRecord) HasApplied(requestId string) bool {
	if requestId == "" {
		return false
	}
	for _, id := range r.AppliedRequestIds {
		if id == requestId {
			return true
		}
	}
	return false
}

// Apply merges patch into the record. Messages are appended as-is, so two
// identical patches without a request id append twice.
func (r *StoredUserRecord) Apply(patch RecordPatch, now time.Time) {
	if r.Messages == nil {
		r.Messages = []Message{}
	}
	if len(patch.Messages) > 0 {
		r.Messages = append(r.Messages, patch.Messages...)
	}

	if patch.Analysis != nil {
		if r.Analysis == nil {
			r.Analysis = &AnalysisRecord{}
		}
		r.Analysis.Merge(patch.Analysis)
	}

	if patch.VCAnalysis != nil {
		if r.VCAnalysis == nil {
			r.VCAnalysis = &VCAnalysisRecord{}
		}
		r.VCAnalysis.Merge(patch.VCAnalysis)
		scoredAt := now
		r.ScoredAt = &scoredAt
	}

	if patch.UserData.HasContact() {
		if r.UserData == nil {
			r.UserData = &UserData{}
		}
		r.UserData.Merge(patch.UserData)
	}

	if patch.RequestId != "" {
		r.AppliedRequestIds = append(r.AppliedRequestIds, patch.RequestId)
		if over := len(r.AppliedRequestIds) - MaxAppliedRequestIds; over > 0 {
			r.AppliedRequestIds = r.AppliedRequestIds[over:]
		}
	}

	r.SchemaVersion = CurrentSchemaVersion
	updatedAt := now
	r.UpdatedAt = &updatedAt
}

// Normalize fills defaults on records decoded from storage.
func (r *StoredUserRecord) Normalize() {
	if r.Messages == nil {
		r.Messages = []Message{}
	}
}

// DecodeStoredUserRecord reads a persisted value of any schema version.
func DecodeStoredUserRecord(data []byte) (*StoredUserRecord, error) {
	var r StoredUserRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	r.Normalize()
	return &r, nil
}
