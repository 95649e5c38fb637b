package review

import (
	"context"

	"github.com/hunterguild/system-bot/internal/models"
)

// Repository defines the interface for legacy pending-review persistence
type Repository interface {
	// SaveReview persists a pending review
	SaveReview(ctx context.Context, input *SaveReviewInput) error

	// GetReview retrieves a pending review by ID
	GetReview(ctx context.Context, input *GetReviewInput) (*models.Review, error)

	// DeleteReview removes a pending review
	DeleteReview(ctx context.Context, input *DeleteReviewInput) error
}
