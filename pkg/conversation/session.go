package conversation

import (
	"strings"

	"ai-pitch-evaluator-be/internal/entity"
	"ai-pitch-evaluator-be/internal/pkg/apperr"
)

// SessionState is the client-held conversation: the full history and the
// latest readiness record. The server keeps no copy between requests.
type SessionState struct {
	Messages  []entity.Message       `json:"messages"`
	Readiness entity.ReadinessRecord `json:"readiness"`
}

func NewSessionState() *SessionState {
	return &SessionState{
		Messages:  []entity.Message{},
		Readiness: entity.NewEmptyReadinessRecord(),
	}
}

// AddUserTurn appends a user message.
func (s *SessionState) AddUserTurn(content string) error {
	if strings.TrimSpace(content) == "" {
		return apperr.Validation("conversation.AddUserTurn", "message content is empty")
	}
	s.Messages = append(s.Messages, entity.Message{Role: entity.MessageRoleUser, Content: content})
	return nil
}

// Apply records a successful extraction: the reply is appended and the
// readiness record is replaced wholesale.
func (s *SessionState) Apply(res *Result) {
	s.Messages = append(s.Messages, entity.Message{Role: entity.MessageRoleAssistant, Content: res.Message})
	s.Readiness = res.Analysis
}

// ApplyFailure appends the apology reply and leaves readiness untouched.
func (s *SessionState) ApplyFailure(apology string) {
	s.Messages = append(s.Messages, entity.Message{Role: entity.MessageRoleAssistant, Content: apology})
}

// DropLastUserTurn removes a trailing user message left behind by a turn
// that got no reply. It reports whether anything was removed.
func (s *SessionState) DropLastUserTurn() bool {
	n := len(s.Messages)
	if n == 0 || s.Messages[n-1].Role != entity.MessageRoleUser {
		return false
	}
	s.Messages = s.Messages[:n-1]
	return true
}

// History returns a copy of the messages safe to hand to another goroutine.
func (s *SessionState) History() []entity.Message {
	out := make([]entity.Message, len(s.Messages))
	copy(out, s.Messages)
	return out
}
