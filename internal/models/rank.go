package models

// Rank is a coarse tier derived purely from level
type Rank string

const (
	// RankE is the starting tier
	RankE Rank = "E"

	// RankD requires level 10
	RankD Rank = "D"

	// RankC requires level 25
	RankC Rank = "C"

	// RankB requires level 35
	RankB Rank = "B"

	// RankA requires level 50
	RankA Rank = "A"

	// RankS requires level 75
	RankS Rank = "S"

	// RankN is the national-level tier, requiring level 100
	RankN Rank = "N"
)

// rankThreshold pairs a rank with the minimum level that earns it
type rankThreshold struct {
	Rank  Rank
	Level int
}

// rankThresholds is ordered highest first; the first threshold not exceeding
// the level wins
var rankThresholds = []rankThreshold{
	{RankN, 100},
	{RankS, 75},
	{RankA, 50},
	{RankB, 35},
	{RankC, 25},
	{RankD, 10},
	{RankE, 0},
}

// RankForLevel returns the rank earned at the given level
func RankForLevel(level int) Rank {
	for _, t := range rankThresholds {
		if level >= t.Level {
			return t.Rank
		}
	}
	return RankE
}

// QuestRanks lists the ranks a quest may be posted at. Rank N is reserved for
// players; quests top out at S.
var QuestRanks = []Rank{RankE, RankD, RankC, RankB, RankA, RankS}

// ValidQuestRank reports whether r is a rank a quest can carry
func ValidQuestRank(r Rank) bool {
	for _, rank := range QuestRanks {
		if r == rank {
			return true
		}
	}
	return false
}
