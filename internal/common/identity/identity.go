package identity

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/hunterguild/system-bot/internal/common/clock"
)

// Generator produces the identifier formats the quest economy uses
type Generator interface {
	// NewQuestID returns a millisecond-timestamp quest ID, unique and
	// monotonically non-decreasing across creations
	NewQuestID() string

	// NewSubmissionID returns a submission ID combining player, quest and
	// creation time
	NewSubmissionID(userID, questID string) string

	// NewReviewID returns an identifier for a legacy pending review
	NewReviewID() string
}

// DefaultGenerator implements Generator off a Clock. Quest IDs are the
// creation time in Unix milliseconds; a guard bumps the value past the last
// one issued so two creations in the same millisecond stay unique.
type DefaultGenerator struct {
	clock clock.Clock

	mu          sync.Mutex
	lastQuestID int64
}

// New creates a generator using the given clock
func New(clk clock.Clock) *DefaultGenerator {
	return &DefaultGenerator{
		clock: clk,
	}
}

// NewQuestID returns the next quest ID
func (g *DefaultGenerator) NewQuestID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.clock.Now().UnixMilli()
	if id <= g.lastQuestID {
		id = g.lastQuestID + 1
	}
	g.lastQuestID = id

	return fmt.Sprintf("%d", id)
}

// NewSubmissionID returns a submission ID for the player/quest pair
func (g *DefaultGenerator) NewSubmissionID(userID, questID string) string {
	return fmt.Sprintf("%s_%s_%d", userID, questID, g.clock.Now().UnixMilli())
}

// NewReviewID returns a fresh review ID
func (g *DefaultGenerator) NewReviewID() string {
	return uuid.New().String()
}

var _ Generator = (*DefaultGenerator)(nil)

// Sequence is a deterministic Generator for tests: quest IDs count up from a
// base, submission and review IDs are derived predictably.
type Sequence struct {
	Base int64

	mu sync.Mutex
	n  int64
}

// NewQuestID returns the next sequential quest ID
func (s *Sequence) NewQuestID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%d", s.Base+s.n)
}

// NewSubmissionID returns a predictable submission ID
func (s *Sequence) NewSubmissionID(userID, questID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s_%s_%d", userID, questID, s.Base+s.n)
}

// NewReviewID returns a predictable review ID
func (s *Sequence) NewReviewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("review-%d", s.n)
}

var _ Generator = (*Sequence)(nil)
