package models

import (
	"time"
)

// Quest represents a task offering posted by the host
type Quest struct {
	// ID is the unique identifier for the quest
	ID string `json:"id"`

	// Title is the quest title
	Title string `json:"title"`

	// Description explains the quest objectives
	Description string `json:"description"`

	// Rank is the difficulty tier, E through S
	Rank Rank `json:"rank"`

	// XPReward is the experience granted on approval
	XPReward int `json:"xpReward"`

	// CreatedBy is the Discord user ID of the host who posted the quest
	CreatedBy string `json:"createdBy"`

	// CreatedAt is when the quest was posted
	CreatedAt time.Time `json:"createdAt"`

	// ExpiresAt is when the quest stops being acceptable; nil means never
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`

	// MaxParticipants caps how many players may accept; 0 means unlimited
	MaxParticipants int `json:"maxParticipants,omitempty"`

	// AcceptedBy holds the IDs of players who accepted, each at most once
	AcceptedBy []string `json:"acceptedBy"`

	// Active is flipped false on expiry or explicit deactivation, never back
	Active bool `json:"active"`
}

// ExpiredAt reports whether the quest's deadline has passed as of now.
// The stored Active flag can lag this until the next read sweeps it.
func (q *Quest) ExpiredAt(now time.Time) bool {
	return q.ExpiresAt != nil && q.ExpiresAt.Before(now)
}

// AcceptedByPlayer reports whether the player already accepted this quest
func (q *Quest) AcceptedByPlayer(playerID string) bool {
	for _, id := range q.AcceptedBy {
		if id == playerID {
			return true
		}
	}
	return false
}

// Full reports whether the participant cap has been reached
func (q *Quest) Full() bool {
	return q.MaxParticipants > 0 && len(q.AcceptedBy) >= q.MaxParticipants
}
