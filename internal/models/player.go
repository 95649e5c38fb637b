package models

// Class is a permanent specialization a player chooses once they reach level 10
type Class string

const (
	// ClassAssassin is the Assassin specialization
	ClassAssassin Class = "Assassin"

	// ClassMage is the Mage specialization
	ClassMage Class = "Mage"

	// ClassTank is the Tank specialization
	ClassTank Class = "Tank"

	// ClassSpy is the Spy specialization
	ClassSpy Class = "Spy"

	// ClassNone means no class has been chosen yet
	ClassNone Class = ""
)

// Classes lists every selectable class
var Classes = []Class{ClassAssassin, ClassMage, ClassTank, ClassSpy}

// ValidClass reports whether c is one of the selectable classes
func ValidClass(c Class) bool {
	for _, class := range Classes {
		if c == class {
			return true
		}
	}
	return false
}

const (
	// DefaultTitle is the title a new player starts with
	DefaultTitle = "None"

	// DefaultJob is the job a new player starts with
	DefaultJob = "Not Assigned"
)

// Player represents one hunter's progression, keyed by their Discord user ID
type Player struct {
	// ID is the Discord user ID of the player
	ID string `json:"id"`

	// Title is the player's display title
	Title string `json:"title"`

	// Job is the player's display job
	Job string `json:"job"`

	// Class is the chosen specialization; empty until selected, immutable after
	Class Class `json:"class"`

	// Level is the player's current level
	Level int `json:"level"`

	// XP is progress toward the next level, always below XPRequired(Level)
	XP int `json:"xp"`

	// Rank is derived from Level via the rank threshold table
	Rank Rank `json:"rank"`

	// QuestsCompleted counts approved quest resolutions
	QuestsCompleted int `json:"questsCompleted"`

	// ActiveQuests holds the IDs of quests accepted but not yet resolved
	ActiveQuests []string `json:"activeQuests"`

	// Accepted is the registration-consent gate; everything except reset
	// requires it to be true
	Accepted bool `json:"accepted"`
}

// NewPlayer creates a player record with default progression
func NewPlayer(id string) *Player {
	return &Player{
		ID:           id,
		Title:        DefaultTitle,
		Job:          DefaultJob,
		Class:        ClassNone,
		Level:        0,
		XP:           0,
		Rank:         RankE,
		ActiveQuests: []string{},
		Accepted:     false,
	}
}

// IsDefault reports whether the player has no progress worth resetting
func (p *Player) IsDefault() bool {
	return p.Level == 0 &&
		p.XP == 0 &&
		!p.Accepted &&
		p.Class == ClassNone &&
		p.QuestsCompleted == 0 &&
		len(p.ActiveQuests) == 0
}

// HasActiveQuest reports whether questID is in the player's active set
func (p *Player) HasActiveQuest(questID string) bool {
	for _, id := range p.ActiveQuests {
		if id == questID {
			return true
		}
	}
	return false
}
