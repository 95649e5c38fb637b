package quest

import (
	"context"

	"github.com/hunterguild/system-bot/internal/models"
)

// Repository defines the interface for quest data persistence
type Repository interface {
	// SaveQuest persists a quest
	SaveQuest(ctx context.Context, input *SaveQuestInput) error

	// GetQuest retrieves a quest by ID
	GetQuest(ctx context.Context, input *GetQuestInput) (*models.Quest, error)

	// ListQuests retrieves every stored quest
	ListQuests(ctx context.Context, input *ListQuestsInput) (*ListQuestsOutput, error)
}
