package review

import "github.com/hunterguild/system-bot/internal/models"

// SaveReviewInput contains parameters for saving a pending review
type SaveReviewInput struct {
	Review *models.Review
}

// GetReviewInput contains parameters for retrieving a pending review
type GetReviewInput struct {
	ReviewID string
}

// DeleteReviewInput contains parameters for deleting a pending review
type DeleteReviewInput struct {
	ReviewID string
}
