package entity

import "time"

const (
	EventClientCreated = "created"
	EventClientUpdated = "updated"
	EventClientDeleted = "deleted"
)

// ClientEvent is published after a client write has been committed.
type ClientEvent struct {
	Type       string    `json:"type"`
	ClientID   int64     `json:"client_id"`
	PartID     int64     `json:"part_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
