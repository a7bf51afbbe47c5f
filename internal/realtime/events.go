package realtime

import (
	"encoding/json"
	"time"
)

// Inbound events
const (
	EventSendMessage = "send_message"
	EventMarkRead    = "mark_read"
)

// Outbound events
const (
	EventNewMessage  = "new_message"
	EventMessageRead = "message_read"
	EventUserStatus  = "user_status"
	EventError       = "error"
)

// Envelope is the wire frame in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Event is an outbound frame before encoding.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type SendMessagePayload struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

type MarkReadPayload struct {
	MessageID string `json:"messageId"`
}

type MessageReadPayload struct {
	MessageID string `json:"messageId"`
}

type UserStatusPayload struct {
	UserID   string     `json:"userId"`
	Status   string     `json:"status"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
}

type ErrorPayload struct {
	Event   string `json:"event,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
