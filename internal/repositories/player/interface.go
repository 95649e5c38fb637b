package player

import (
	"context"

	"github.com/hunterguild/system-bot/internal/models"
)

// Repository defines the interface for player data persistence
type Repository interface {
	// SavePlayer persists a player
	SavePlayer(ctx context.Context, input *SavePlayerInput) error

	// GetPlayer retrieves a player by ID
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error)

	// DeletePlayer removes a player record
	DeletePlayer(ctx context.Context, input *DeletePlayerInput) error
}
