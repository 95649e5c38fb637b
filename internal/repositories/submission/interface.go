package submission

import (
	"context"

	"github.com/hunterguild/system-bot/internal/models"
)

// Repository defines the interface for submission data persistence
type Repository interface {
	// SaveSubmission persists a submission
	SaveSubmission(ctx context.Context, input *SaveSubmissionInput) error

	// GetSubmission retrieves a submission by ID
	GetSubmission(ctx context.Context, input *GetSubmissionInput) (*models.Submission, error)

	// DeleteSubmission removes a submission record
	DeleteSubmission(ctx context.Context, input *DeleteSubmissionInput) error
}
