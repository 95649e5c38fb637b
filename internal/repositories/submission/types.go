package submission

import "github.com/hunterguild/system-bot/internal/models"

// SaveSubmissionInput contains parameters for saving a submission
type SaveSubmissionInput struct {
	Submission *models.Submission
}

// GetSubmissionInput contains parameters for retrieving a submission
type GetSubmissionInput struct {
	SubmissionID string
}

// DeleteSubmissionInput contains parameters for deleting a submission
type DeleteSubmissionInput struct {
	SubmissionID string
}
