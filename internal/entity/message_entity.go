package entity

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content"`
}

// HasUserMessage reports whether at least one turn came from the user.
func HasUserMessage(messages []Message) bool {
	for _, m := range messages {
		if m.Role == MessageRoleUser {
			return true
		}
	}
	return false
}
