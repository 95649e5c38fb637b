package player

import "github.com/hunterguild/system-bot/internal/models"

// SavePlayerInput contains parameters for saving a player
type SavePlayerInput struct {
	Player *models.Player
}

// GetPlayerInput contains parameters for retrieving a player
type GetPlayerInput struct {
	PlayerID string
}

// DeletePlayerInput contains parameters for deleting a player
type DeletePlayerInput struct {
	PlayerID string
}
