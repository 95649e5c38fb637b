package models

import (
	"time"
)

// Review is the legacy review record, keyed off player and quest rather than a
// submission snapshot. Approval re-reads the reward live from the quest, so an
// edit to the quest between submission and approval changes the payout. Kept
// for messages still carrying the old button IDs.
type Review struct {
	// ID is a generated identifier for the pending review
	ID string `json:"id"`

	// UserID is the submitting player's Discord user ID
	UserID string `json:"userId"`

	// Username is the submitting player's name
	Username string `json:"username"`

	// QuestID references the quest under review
	QuestID string `json:"questId"`

	// GuildID is where the completion announcement goes
	GuildID string `json:"guildId"`

	// ChannelID is where the completion announcement goes
	ChannelID string `json:"channelId"`

	// CreatedAt is when the review was opened
	CreatedAt time.Time `json:"createdAt"`
}
