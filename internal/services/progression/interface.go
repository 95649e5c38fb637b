package progression

import "context"

// Service defines the interface for player progression operations
type Service interface {
	// GetPlayer retrieves a player, creating the default record on first
	// reference
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*GetPlayerOutput, error)

	// IsAccepted reports whether a player has completed registration consent
	IsAccepted(ctx context.Context, input *IsAcceptedInput) (*IsAcceptedOutput, error)

	// AcceptRegistration marks a player as registered
	AcceptRegistration(ctx context.Context, input *AcceptRegistrationInput) (*AcceptRegistrationOutput, error)

	// GrantXP adds experience for one quest resolution, leveling up as many
	// times as the amount covers
	GrantXP(ctx context.Context, input *GrantXPInput) (*GrantXPOutput, error)

	// CanSelectClass reports whether the player may choose a class
	CanSelectClass(ctx context.Context, input *CanSelectClassInput) (*CanSelectClassOutput, error)

	// AssignClass sets the player's class, permanently
	AssignClass(ctx context.Context, input *AssignClassInput) (*AssignClassOutput, error)

	// ResetPlayer restores a player to the default record
	ResetPlayer(ctx context.Context, input *ResetPlayerInput) (*ResetPlayerOutput, error)
}
