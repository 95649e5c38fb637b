package review

import "context"

// Service defines the interface for the submit/review workflow
type Service interface {
	// OpenSubmission creates a pending submission snapshotting the quest
	// terms at acceptance time
	OpenSubmission(ctx context.Context, input *OpenSubmissionInput) (*OpenSubmissionOutput, error)

	// GetSubmission retrieves a pending submission
	GetSubmission(ctx context.Context, input *GetSubmissionInput) (*GetSubmissionOutput, error)

	// RecordWork attaches the player's work and moves the submission to
	// pending review
	RecordWork(ctx context.Context, input *RecordWorkInput) (*RecordWorkOutput, error)

	// Approve resolves a submission in the player's favor, granting the
	// snapshotted reward
	Approve(ctx context.Context, input *ApproveInput) (*ApproveOutput, error)

	// Reject resolves a submission against the player, leaving their quest
	// state untouched so they can retry
	Reject(ctx context.Context, input *RejectInput) (*RejectOutput, error)

	// OpenReview creates a legacy pending review keyed off player and quest
	OpenReview(ctx context.Context, input *OpenReviewInput) (*OpenReviewOutput, error)

	// ApproveReview resolves a legacy review, re-reading the reward live from
	// the quest record
	ApproveReview(ctx context.Context, input *ApproveReviewInput) (*ApproveReviewOutput, error)

	// RejectReview discards a legacy review
	RejectReview(ctx context.Context, input *RejectReviewInput) (*RejectReviewOutput, error)
}
