package models

import "time"

// KnockoutStage is the elimination phase of an event.
type KnockoutStage struct {
	ID        int       `json:"id" db:"id"`
	EventID   int       `json:"event_id" db:"event_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
