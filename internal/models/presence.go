package models

import "time"

// Presence status constants
const (
	PresenceOnline  = "online"
	PresenceOffline = "offline"
)

// PresenceState is derived from live connections and never persisted.
type PresenceState struct {
	UserID      string     `json:"userId"`
	Status      string     `json:"status"`
	Connections int        `json:"connections"`
	LastSeen    *time.Time `json:"lastSeen,omitempty"`
}
