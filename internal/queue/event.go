// Package queue defines message payloads exchanged over the message broker
// and the consumer that turns them into an audit trail.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/rental-admin/internal/model"
)

// StatusQueueName is the durable queue carrying StatusChangedEvent messages.
const StatusQueueName = "user.status_changed"

// StatusChangedEvent is published after a customer or staff member's active
// flag was written.  Consumers can audit or notify without querying the
// primary database.
type StatusChangedEvent struct {
	EventID   string         `json:"event_id"`
	UserID    uint64         `json:"user_id"`
	UserType  model.UserKind `json:"user_type"`
	Active    bool           `json:"active"`
	ChangedAt string         `json:"changed_at"`
}

// NewStatusChangedEvent stamps an event for u with a fresh id.
func NewStatusChangedEvent(u model.StatusUpdate, at time.Time) StatusChangedEvent {
	return StatusChangedEvent{
		EventID:   uuid.NewString(),
		UserID:    u.ID,
		UserType:  u.Kind,
		Active:    u.Active,
		ChangedAt: at.UTC().Format(time.RFC3339),
	}
}
