package quest

import (
	"github.com/hunterguild/system-bot/internal/common/clock"
	"github.com/hunterguild/system-bot/internal/common/identity"
	"github.com/hunterguild/system-bot/internal/models"
	playerRepo "github.com/hunterguild/system-bot/internal/repositories/player"
	questRepo "github.com/hunterguild/system-bot/internal/repositories/quest"
)

// Config holds configuration for the quest service
type Config struct {
	// Repository dependencies
	QuestRepo  questRepo.Repository
	PlayerRepo playerRepo.Repository

	// Service dependencies
	Clock clock.Clock
	IDGen identity.Generator
}

// CreateQuestInput contains parameters for posting a quest
type CreateQuestInput struct {
	// Title is the quest title
	Title string

	// Description explains the quest objectives
	Description string

	// Rank is the difficulty tier, E through S
	Rank models.Rank

	// XPReward is the experience granted on approval; must be positive
	XPReward int

	// DurationHours is how long the quest stays acceptable; 0 means forever
	DurationHours int

	// MaxParticipants caps how many players may accept; 0 means unlimited
	MaxParticipants int

	// CreatedBy is the host's Discord user ID
	CreatedBy string
}

// CreateQuestOutput contains the posted quest
type CreateQuestOutput struct {
	Quest *models.Quest
}

// ListActiveInput contains parameters for listing the quest board
type ListActiveInput struct{}

// ListActiveOutput contains the active quests in creation order
type ListActiveOutput struct {
	Quests []*models.Quest
}

// GetQuestInput contains parameters for retrieving a quest
type GetQuestInput struct {
	QuestID string
}

// GetQuestOutput contains the retrieved quest
type GetQuestOutput struct {
	Quest *models.Quest
}

// CanAcceptInput contains parameters for the acceptance check
type CanAcceptInput struct {
	QuestID  string
	PlayerID string
}

// CanAcceptOutput contains the result of the acceptance check. When CanAccept
// is false, Reason carries the typed rejection.
type CanAcceptOutput struct {
	CanAccept bool
	Reason    error
}

// AcceptInput contains parameters for accepting a quest
type AcceptInput struct {
	QuestID  string
	PlayerID string
}

// AcceptOutput contains the quest after acceptance
type AcceptOutput struct {
	Quest *models.Quest
}

// CompleteForPlayerInput contains parameters for clearing a player's active
// quest entry
type CompleteForPlayerInput struct {
	QuestID  string
	PlayerID string
}

// CompleteForPlayerOutput contains the updated player
type CompleteForPlayerOutput struct {
	Player *models.Player
}

// DeactivateInput contains parameters for deactivating a quest
type DeactivateInput struct {
	QuestID string
}

// DeactivateOutput contains the result of deactivating a quest
type DeactivateOutput struct {
	// Deactivated is false when the quest was missing or already inactive
	Deactivated bool
}
