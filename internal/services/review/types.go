package review

import (
	"github.com/hunterguild/system-bot/internal/common/clock"
	"github.com/hunterguild/system-bot/internal/common/identity"
	"github.com/hunterguild/system-bot/internal/models"
	reviewRepo "github.com/hunterguild/system-bot/internal/repositories/review"
	submissionRepo "github.com/hunterguild/system-bot/internal/repositories/submission"
	"github.com/hunterguild/system-bot/internal/services/progression"
	questService "github.com/hunterguild/system-bot/internal/services/quest"
)

// Limits on the work fields a player may hand in
const (
	// MaxTextLength caps the written proof of completion
	MaxTextLength = 2000

	// MaxImageURLLength caps the optional image link
	MaxImageURLLength = 500
)

// Config holds configuration for the review service
type Config struct {
	// Repository dependencies
	SubmissionRepo submissionRepo.Repository
	ReviewRepo     reviewRepo.Repository

	// Service dependencies
	ProgressionService progression.Service
	QuestService       questService.Service
	Clock              clock.Clock
	IDGen              identity.Generator
}

// OpenSubmissionInput contains parameters for opening a submission
type OpenSubmissionInput struct {
	// Quest is the quest being attempted; its terms are snapshotted
	Quest *models.Quest

	// UserID is the submitting player's Discord user ID
	UserID string

	// Username is the submitting player's name
	Username string

	// GuildID is where the completion announcement will go
	GuildID string

	// ChannelID is where the completion announcement will go
	ChannelID string
}

// OpenSubmissionOutput contains the created submission
type OpenSubmissionOutput struct {
	Submission *models.Submission
}

// GetSubmissionInput contains parameters for retrieving a submission
type GetSubmissionInput struct {
	SubmissionID string
}

// GetSubmissionOutput contains the retrieved submission
type GetSubmissionOutput struct {
	Submission *models.Submission
}

// RecordWorkInput contains the player's handed-in work
type RecordWorkInput struct {
	SubmissionID string

	// Text is the written proof of completion; required
	Text string

	// ImageURL is an optional image proof link
	ImageURL string
}

// RecordWorkOutput contains the submission after work is recorded
type RecordWorkOutput struct {
	Submission *models.Submission
}

// ApproveInput contains parameters for approving a submission
type ApproveInput struct {
	SubmissionID string
}

// ApproveOutput contains everything the boundary needs to announce the
// completion after state has committed
type ApproveOutput struct {
	// Player is the updated player record
	Player *models.Player

	// Submission is the resolved submission, including the quest term
	// snapshot the reward was paid from
	Submission *models.Submission

	// XPAwarded is the snapshotted reward that was granted
	XPAwarded int

	// ClassUnlocked is true when this approval made class selection
	// available; the caller offers the choice exactly once
	ClassUnlocked bool
}

// RejectInput contains parameters for rejecting a submission
type RejectInput struct {
	SubmissionID string
}

// RejectOutput identifies the submission that was discarded
type RejectOutput struct {
	Submission *models.Submission
}

// OpenReviewInput contains parameters for opening a legacy review
type OpenReviewInput struct {
	UserID    string
	Username  string
	QuestID   string
	GuildID   string
	ChannelID string
}

// OpenReviewOutput contains the created legacy review
type OpenReviewOutput struct {
	Review *models.Review
}

// ApproveReviewInput contains parameters for approving a legacy review
type ApproveReviewInput struct {
	ReviewID string
}

// ApproveReviewOutput contains the result of a legacy approval
type ApproveReviewOutput struct {
	// Player is the updated player record
	Player *models.Player

	// Review is the resolved review
	Review *models.Review

	// Quest is the live quest record the reward was read from
	Quest *models.Quest

	// XPAwarded is the live reward that was granted
	XPAwarded int
}

// RejectReviewInput contains parameters for rejecting a legacy review
type RejectReviewInput struct {
	ReviewID string
}

// RejectReviewOutput identifies the review that was discarded
type RejectReviewOutput struct {
	Review *models.Review
}
