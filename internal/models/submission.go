package models

import (
	"time"
)

// SubmissionStatus is the forward-only workflow state of a submission
type SubmissionStatus string

const (
	// SubmissionStatusPendingSubmission means the player accepted the quest
	// but has not handed in work yet
	SubmissionStatusPendingSubmission SubmissionStatus = "pending_submission"

	// SubmissionStatusPendingReview means work is handed in and awaiting the
	// host's verdict
	SubmissionStatusPendingReview SubmissionStatus = "pending_review"
)

// Submission tracks one player's attempt at one quest from acceptance through
// review. Quest terms are snapshotted at acceptance time so a later quest edit
// cannot change a pending reward.
type Submission struct {
	// ID combines player, quest and creation time
	ID string `json:"id"`

	// UserID is the submitting player's Discord user ID
	UserID string `json:"userId"`

	// Username is the submitting player's name at acceptance time
	Username string `json:"username"`

	// QuestID references the accepted quest
	QuestID string `json:"questId"`

	// QuestTitle is the quest title snapshot
	QuestTitle string `json:"questTitle"`

	// QuestRank is the quest rank snapshot
	QuestRank Rank `json:"questRank"`

	// QuestXP is the reward snapshot used on approval
	QuestXP int `json:"questXP"`

	// GuildID is where the completion announcement goes
	GuildID string `json:"guildId"`

	// ChannelID is where the completion announcement goes
	ChannelID string `json:"channelId"`

	// Status is pending_submission until work is recorded, then pending_review
	Status SubmissionStatus `json:"status"`

	// TextSubmission is the player's written proof of completion
	TextSubmission string `json:"textSubmission,omitempty"`

	// ImageURL is an optional image proof link
	ImageURL string `json:"imageUrl,omitempty"`

	// CreatedAt is when the quest was accepted
	CreatedAt time.Time `json:"createdAt"`

	// SubmittedAt is when work was handed in
	SubmittedAt time.Time `json:"submittedAt,omitempty"`
}
