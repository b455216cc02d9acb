package core

import "time"

const (
	BotName          = "RoomBot"
	BotUserAgent     = "RoomBot-Agent/0.1"
	BotRepositoryURL = "https://github.com/sandevgo/roombot"
	BotVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// UnknownIdentity is used when a sender cannot be resolved.
const UnknownIdentity = "Unknown"

// Interaction is a single exchange between a user and the bot.
// UserID is implied by the snapshot key and therefore not serialized.
type Interaction struct {
	UserID      string    `json:"-"`
	Timestamp   time.Time `json:"timestamp"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MemoryRecord is an entry returned by the hosted memory service.
type MemoryRecord struct {
	ID        string    `json:"id"`
	Memory    string    `json:"memory"`
	Score     float64   `json:"score,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// InboundMessage is a data packet delivered by a transport.
type InboundMessage struct {
	ID             string
	SenderIdentity string
	Payload        []byte
	Topic          string
	ReceivedAt     time.Time
}
