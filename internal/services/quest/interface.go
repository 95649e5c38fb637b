package quest

import "context"

// Service defines the interface for quest lifecycle operations
type Service interface {
	// CreateQuest posts a new quest to the board
	CreateQuest(ctx context.Context, input *CreateQuestInput) (*CreateQuestOutput, error)

	// ListActive returns all active, unexpired quests, sweeping any quest
	// found expired along the way
	ListActive(ctx context.Context, input *ListActiveInput) (*ListActiveOutput, error)

	// GetQuest retrieves a quest by ID without expiry side effects
	GetQuest(ctx context.Context, input *GetQuestInput) (*GetQuestOutput, error)

	// CanAccept checks whether a player may accept a quest, with no side
	// effects
	CanAccept(ctx context.Context, input *CanAcceptInput) (*CanAcceptOutput, error)

	// Accept records a player's acceptance on both the quest and the player
	Accept(ctx context.Context, input *AcceptInput) (*AcceptOutput, error)

	// CompleteForPlayer removes a quest from a player's active set
	CompleteForPlayer(ctx context.Context, input *CompleteForPlayerInput) (*CompleteForPlayerOutput, error)

	// Deactivate forces a quest off the board
	Deactivate(ctx context.Context, input *DeactivateInput) (*DeactivateOutput, error)
}
