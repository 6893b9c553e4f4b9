package model

import "time"

// MessageKind tags the variant of a ChatMessage.
type MessageKind string

const (
	KindUser        MessageKind = "user"
	KindBotText     MessageKind = "bot-text"
	KindBotAnalysis MessageKind = "bot-analysis"
	KindBotError    MessageKind = "bot-error"
	KindBotInfo     MessageKind = "bot-info"
)

// Analysis is the structured reply to a chart screenshot.
type Analysis struct {
	Trend      string `json:"trend"`
	Resistance string `json:"resistance"`
	Support    string `json:"support"`
	Patterns   string `json:"patterns"`
	Volume     string `json:"volume"`
	Education  string `json:"education"`
	Disclaimer string `json:"disclaimer"`
}

// ChatMessage is one entry of the conversation. Analysis is set only for
// KindBotAnalysis; Text is empty for that kind.
type ChatMessage struct {
	ID        string      `json:"id"`
	Kind      MessageKind `json:"kind"`
	Text      string      `json:"text,omitempty"`
	Analysis  *Analysis   `json:"analysis,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// FromBot reports whether the message was produced by the assistant side.
func (m ChatMessage) FromBot() bool { return m.Kind != KindUser }
