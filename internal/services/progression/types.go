package progression

import (
	"github.com/hunterguild/system-bot/internal/models"
	playerRepo "github.com/hunterguild/system-bot/internal/repositories/player"
)

// Config holds configuration for the progression service
type Config struct {
	// Repository dependencies
	PlayerRepo playerRepo.Repository
}

// GetPlayerInput contains parameters for retrieving a player
type GetPlayerInput struct {
	// PlayerID is the Discord user ID of the player
	PlayerID string
}

// GetPlayerOutput contains the retrieved player
type GetPlayerOutput struct {
	// Player is the player record, freshly created if it did not exist
	Player *models.Player
}

// IsAcceptedInput contains parameters for the registration check
type IsAcceptedInput struct {
	PlayerID string
}

// IsAcceptedOutput contains the result of the registration check
type IsAcceptedOutput struct {
	Accepted bool
}

// AcceptRegistrationInput contains parameters for registering a player
type AcceptRegistrationInput struct {
	PlayerID string
}

// AcceptRegistrationOutput contains the registered player
type AcceptRegistrationOutput struct {
	Player *models.Player
}

// GrantXPInput contains parameters for granting experience
type GrantXPInput struct {
	// PlayerID is the Discord user ID of the player
	PlayerID string

	// Amount is the experience to grant; one call is one quest resolution
	Amount int
}

// GrantXPOutput contains the result of granting experience
type GrantXPOutput struct {
	// Player is the updated player record
	Player *models.Player

	// LevelsGained is how many level-ups the grant produced
	LevelsGained int

	// ClassUnlocked is true when this grant made class selection available
	ClassUnlocked bool
}

// CanSelectClassInput contains parameters for the class eligibility check
type CanSelectClassInput struct {
	PlayerID string
}

// CanSelectClassOutput contains the result of the class eligibility check
type CanSelectClassOutput struct {
	CanSelect bool
}

// AssignClassInput contains parameters for assigning a class
type AssignClassInput struct {
	// PlayerID is the Discord user ID of the player
	PlayerID string

	// Class is the chosen specialization
	Class models.Class
}

// AssignClassOutput contains the player after class assignment
type AssignClassOutput struct {
	Player *models.Player
}

// ResetPlayerInput contains parameters for resetting a player
type ResetPlayerInput struct {
	PlayerID string
}

// ResetPlayerOutput contains the reset player record
type ResetPlayerOutput struct {
	Player *models.Player
}
