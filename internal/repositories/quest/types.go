package quest

import "github.com/hunterguild/system-bot/internal/models"

// SaveQuestInput contains parameters for saving a quest
type SaveQuestInput struct {
	Quest *models.Quest
}

// GetQuestInput contains parameters for retrieving a quest
type GetQuestInput struct {
	QuestID string
}

// ListQuestsInput contains parameters for listing quests
type ListQuestsInput struct{}

// ListQuestsOutput contains the result of listing quests
type ListQuestsOutput struct {
	Quests []*models.Quest
}
