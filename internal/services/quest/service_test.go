package quest

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/hunterguild/system-bot/internal/common/clock"
	"github.com/hunterguild/system-bot/internal/common/identity"
	apperrors "github.com/hunterguild/system-bot/internal/errors"
	"github.com/hunterguild/system-bot/internal/models"
	playerRepo "github.com/hunterguild/system-bot/internal/repositories/player"
	questRepo "github.com/hunterguild/system-bot/internal/repositories/quest"
)

type QuestServiceTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	quests  questRepo.Repository
	players playerRepo.Repository
	clk     *clock.Fixed
	svc     Service
}

func (s *QuestServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	quests, err := questRepo.NewRedis(&questRepo.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.quests = quests

	players, err := playerRepo.NewRedis(&playerRepo.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.players = players

	s.clk = &clock.Fixed{Time: time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)}

	svc, err := New(&Config{
		QuestRepo:  quests,
		PlayerRepo: players,
		Clock:      s.clk,
		IDGen:      &identity.Sequence{Base: 1743847200000},
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *QuestServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestQuestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuestServiceTestSuite))
}

func (s *QuestServiceTestSuite) createQuest(input *CreateQuestInput) *models.Quest {
	if input.Title == "" {
		input.Title = "Test Quest"
	}
	if input.Rank == "" {
		input.Rank = models.RankE
	}
	if input.XPReward == 0 {
		input.XPReward = 100
	}
	if input.CreatedBy == "" {
		input.CreatedBy = "host-1"
	}

	output, err := s.svc.CreateQuest(context.Background(), input)
	s.Require().NoError(err)
	return output.Quest
}

func (s *QuestServiceTestSuite) TestCreateQuest() {
	quest := s.createQuest(&CreateQuestInput{
		Title:           "Clear the Goblin Den",
		Description:     "Wipe out the camp.",
		Rank:            models.RankC,
		XPReward:        500,
		DurationHours:   24,
		MaxParticipants: 3,
	})

	s.Equal("1743847200001", quest.ID)
	s.Equal("Clear the Goblin Den", quest.Title)
	s.Equal(models.RankC, quest.Rank)
	s.Equal(500, quest.XPReward)
	s.True(quest.Active)
	s.Empty(quest.AcceptedBy)
	s.Require().NotNil(quest.ExpiresAt)
	s.Equal(s.clk.Time.Add(24*time.Hour), *quest.ExpiresAt)
}

func (s *QuestServiceTestSuite) TestCreateQuestDefaults() {
	quest := s.createQuest(&CreateQuestInput{})

	// No duration means no deadline, no cap means unlimited
	s.Nil(quest.ExpiresAt)
	s.Equal(0, quest.MaxParticipants)
}

func (s *QuestServiceTestSuite) TestCreateQuestIDsAreMonotonic() {
	first := s.createQuest(&CreateQuestInput{})
	second := s.createQuest(&CreateQuestInput{})

	s.Less(first.ID, second.ID)
}

func (s *QuestServiceTestSuite) TestCreateQuestValidation() {
	cases := []struct {
		name  string
		input *CreateQuestInput
	}{
		{"empty title", &CreateQuestInput{Rank: models.RankE, XPReward: 100}},
		{"bad rank", &CreateQuestInput{Title: "t", Rank: models.Rank("X"), XPReward: 100}},
		{"rank N reserved", &CreateQuestInput{Title: "t", Rank: models.RankN, XPReward: 100}},
		{"zero XP", &CreateQuestInput{Title: "t", Rank: models.RankE}},
		{"negative XP", &CreateQuestInput{Title: "t", Rank: models.RankE, XPReward: -5}},
		{"negative duration", &CreateQuestInput{Title: "t", Rank: models.RankE, XPReward: 100, DurationHours: -1}},
		{"negative cap", &CreateQuestInput{Title: "t", Rank: models.RankE, XPReward: 100, MaxParticipants: -1}},
	}

	for _, c := range cases {
		_, err := s.svc.CreateQuest(context.Background(), c.input)
		s.Require().Error(err, c.name)
		s.True(apperrors.IsInvalidInput(err), c.name)
	}
}

func (s *QuestServiceTestSuite) TestListActiveSweepsExpired() {
	forever := s.createQuest(&CreateQuestInput{Title: "Forever"})
	expiring := s.createQuest(&CreateQuestInput{Title: "Expiring", DurationHours: 1})

	listed, err := s.svc.ListActive(context.Background(), &ListActiveInput{})
	s.Require().NoError(err)
	s.Len(listed.Quests, 2)

	// Past the deadline the quest drops off the board and the flip persists
	s.clk.Time = s.clk.Time.Add(2 * time.Hour)

	listed, err = s.svc.ListActive(context.Background(), &ListActiveInput{})
	s.Require().NoError(err)
	s.Require().Len(listed.Quests, 1)
	s.Equal(forever.ID, listed.Quests[0].ID)

	stored, err := s.quests.GetQuest(context.Background(), &questRepo.GetQuestInput{
		QuestID: expiring.ID,
	})
	s.Require().NoError(err)
	s.False(stored.Active)
}

func (s *QuestServiceTestSuite) TestListActivePreservesCreationOrder() {
	first := s.createQuest(&CreateQuestInput{Title: "First"})
	second := s.createQuest(&CreateQuestInput{Title: "Second"})
	third := s.createQuest(&CreateQuestInput{Title: "Third"})

	listed, err := s.svc.ListActive(context.Background(), &ListActiveInput{})
	s.Require().NoError(err)
	s.Require().Len(listed.Quests, 3)
	s.Equal(first.ID, listed.Quests[0].ID)
	s.Equal(second.ID, listed.Quests[1].ID)
	s.Equal(third.ID, listed.Quests[2].ID)
}

func (s *QuestServiceTestSuite) TestGetQuestHasNoExpirySideEffects() {
	quest := s.createQuest(&CreateQuestInput{DurationHours: 1})

	s.clk.Time = s.clk.Time.Add(2 * time.Hour)

	// The record still reads as stored, sweep only happens on list
	output, err := s.svc.GetQuest(context.Background(), &GetQuestInput{
		QuestID: quest.ID,
	})
	s.Require().NoError(err)
	s.True(output.Quest.Active)
}

func (s *QuestServiceTestSuite) TestGetQuestNotFound() {
	_, err := s.svc.GetQuest(context.Background(), &GetQuestInput{
		QuestID: "0",
	})
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *QuestServiceTestSuite) TestCanAcceptOrderedReasons() {
	quest := s.createQuest(&CreateQuestInput{DurationHours: 1, MaxParticipants: 1})

	// Unknown quest
	check, err := s.svc.CanAccept(context.Background(), &CanAcceptInput{
		QuestID:  "0",
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.False(check.CanAccept)
	s.True(apperrors.IsNotFound(check.Reason))

	// Acceptable
	check, err = s.svc.CanAccept(context.Background(), &CanAcceptInput{
		QuestID:  quest.ID,
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.True(check.CanAccept)
	s.Nil(check.Reason)

	_, err = s.svc.Accept(context.Background(), &AcceptInput{
		QuestID:  quest.ID,
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)

	// Duplicate acceptance outranks the full board for the same player
	check, err = s.svc.CanAccept(context.Background(), &CanAcceptInput{
		QuestID:  quest.ID,
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.False(check.CanAccept)
	s.True(apperrors.IsAlreadyDone(check.Reason))

	// A different player hits the cap
	check, err = s.svc.CanAccept(context.Background(), &CanAcceptInput{
		QuestID:  quest.ID,
		PlayerID: "hunter-2",
	})
	s.Require().NoError(err)
	s.False(check.CanAccept)
	s.True(apperrors.Is(check.Reason, apperrors.CodeCapacityReached))

	// Expiry outranks everything but existence
	s.clk.Time = s.clk.Time.Add(2 * time.Hour)
	check, err = s.svc.CanAccept(context.Background(), &CanAcceptInput{
		QuestID:  quest.ID,
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.False(check.CanAccept)
	s.True(apperrors.Is(check.Reason, apperrors.CodeExpired))
}

func (s *QuestServiceTestSuite) TestCanAcceptInactiveQuest() {
	quest := s.createQuest(&CreateQuestInput{})

	_, err := s.svc.Deactivate(context.Background(), &DeactivateInput{
		QuestID: quest.ID,
	})
	s.Require().NoError(err)

	check, err := s.svc.CanAccept(context.Background(), &CanAcceptInput{
		QuestID:  quest.ID,
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.False(check.CanAccept)
	s.True(apperrors.IsNotFound(check.Reason))
}

func (s *QuestServiceTestSuite) TestAcceptRecordsBothSides() {
	quest := s.createQuest(&CreateQuestInput{})

	output, err := s.svc.Accept(context.Background(), &AcceptInput{
		QuestID:  quest.ID,
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.Equal([]string{"hunter-1"}, output.Quest.AcceptedBy)

	player, err := s.players.GetPlayer(context.Background(), &playerRepo.GetPlayerInput{
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.True(player.HasActiveQuest(quest.ID))
}

func (s *QuestServiceTestSuite) TestAcceptRejectsDuplicate() {
	quest := s.createQuest(&CreateQuestInput{})

	_, err := s.svc.Accept(context.Background(), &AcceptInput{
		QuestID:  quest.ID,
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)

	_, err = s.svc.Accept(context.Background(), &AcceptInput{
		QuestID:  quest.ID,
		PlayerID: "hunter-1",
	})
	s.Require().Error(err)
	s.True(apperrors.IsAlreadyDone(err))
}

func (s *QuestServiceTestSuite) TestAcceptEnforcesCapacity() {
	quest := s.createQuest(&CreateQuestInput{MaxParticipants: 2})

	for _, playerID := range []string{"hunter-1", "hunter-2"} {
		_, err := s.svc.Accept(context.Background(), &AcceptInput{
			QuestID:  quest.ID,
			PlayerID: playerID,
		})
		s.Require().NoError(err)
	}

	_, err := s.svc.Accept(context.Background(), &AcceptInput{
		QuestID:  quest.ID,
		PlayerID: "hunter-3",
	})
	s.Require().Error(err)
	s.True(apperrors.Is(err, apperrors.CodeCapacityReached))
}

func (s *QuestServiceTestSuite) TestCompleteForPlayer() {
	quest := s.createQuest(&CreateQuestInput{})
	other := s.createQuest(&CreateQuestInput{Title: "Other"})

	for _, q := range []*models.Quest{quest, other} {
		_, err := s.svc.Accept(context.Background(), &AcceptInput{
			QuestID:  q.ID,
			PlayerID: "hunter-1",
		})
		s.Require().NoError(err)
	}

	output, err := s.svc.CompleteForPlayer(context.Background(), &CompleteForPlayerInput{
		QuestID:  quest.ID,
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)

	s.False(output.Player.HasActiveQuest(quest.ID))
	s.True(output.Player.HasActiveQuest(other.ID))
}

func (s *QuestServiceTestSuite) TestDeactivateIsIdempotent() {
	quest := s.createQuest(&CreateQuestInput{})

	first, err := s.svc.Deactivate(context.Background(), &DeactivateInput{
		QuestID: quest.ID,
	})
	s.Require().NoError(err)
	s.True(first.Deactivated)

	second, err := s.svc.Deactivate(context.Background(), &DeactivateInput{
		QuestID: quest.ID,
	})
	s.Require().NoError(err)
	s.False(second.Deactivated)

	missing, err := s.svc.Deactivate(context.Background(), &DeactivateInput{
		QuestID: "0",
	})
	s.Require().NoError(err)
	s.False(missing.Deactivated)
}
