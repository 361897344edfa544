// Package chat provides the conversation record shared by every pipeline
// stage: immutable turns and an append-only log of them.
package chat

import "encoding/json"

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message-like record in a conversation. A turn carries
// either free text or a structured JSON payload, never both. Turns are
// immutable once appended to a Log.
type Turn struct {
	Role Role `json:"role"`

	// Text content for free-text turns.
	Text string `json:"text,omitempty"`

	// Payload holds the raw JSON of structured turns (classifier labels,
	// plot specs, evaluator verdicts).
	Payload json.RawMessage `json:"payload,omitempty"`
}

// User creates a free-text user turn.
func User(text string) Turn {
	return Turn{Role: RoleUser, Text: text}
}

// Assistant creates a free-text assistant turn.
func Assistant(text string) Turn {
	return Turn{Role: RoleAssistant, Text: text}
}

// AssistantPayload creates a structured assistant turn.
func AssistantPayload(payload json.RawMessage) Turn {
	return Turn{Role: RoleAssistant, Payload: payload}
}

// Content returns the turn's text, or the raw payload JSON for
// structured turns. Useful when a turn is rendered into a prompt.
func (t Turn) Content() string {
	if t.Text != "" {
		return t.Text
	}
	return string(t.Payload)
}
