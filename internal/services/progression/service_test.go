package progression

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	apperrors "github.com/hunterguild/system-bot/internal/errors"
	"github.com/hunterguild/system-bot/internal/models"
	playerRepo "github.com/hunterguild/system-bot/internal/repositories/player"
)

type ProgressionServiceTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	players playerRepo.Repository
	svc     Service
}

func (s *ProgressionServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	players, err := playerRepo.NewRedis(&playerRepo.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.players = players

	svc, err := New(&Config{
		PlayerRepo: players,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ProgressionServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestProgressionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProgressionServiceTestSuite))
}

func (s *ProgressionServiceTestSuite) TestGetPlayerCreatesDefault() {
	output, err := s.svc.GetPlayer(context.Background(), &GetPlayerInput{
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)

	player := output.Player
	s.Equal("hunter-1", player.ID)
	s.Equal(models.DefaultTitle, player.Title)
	s.Equal(models.DefaultJob, player.Job)
	s.Equal(models.ClassNone, player.Class)
	s.Equal(1, player.Level)
	s.Equal(0, player.XP)
	s.Equal(models.RankE, player.Rank)
	s.False(player.Accepted)

	// The default record is persisted, not just returned
	stored, err := s.players.GetPlayer(context.Background(), &playerRepo.GetPlayerInput{
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.Equal(1, stored.Level)
}

func (s *ProgressionServiceTestSuite) TestXPRequiredCurve() {
	s.Equal(1200, XPRequired(1))
	s.Equal(1400, XPRequired(2))
	s.Equal(3000, XPRequired(10))
}

func (s *ProgressionServiceTestSuite) TestGrantXPLevelsUp() {
	// 1200 clears level 1 exactly
	output, err := s.svc.GrantXP(context.Background(), &GrantXPInput{
		PlayerID: "hunter-1",
		Amount:   1200,
	})
	s.Require().NoError(err)

	s.Equal(2, output.Player.Level)
	s.Equal(0, output.Player.XP)
	s.Equal(1, output.LevelsGained)
	s.Equal(1, output.Player.QuestsCompleted)
	s.False(output.ClassUnlocked)
}

func (s *ProgressionServiceTestSuite) TestGrantXPMultipleLevels() {
	// 2600 clears levels 1 and 2 (1200 + 1400) with nothing left over
	output, err := s.svc.GrantXP(context.Background(), &GrantXPInput{
		PlayerID: "hunter-1",
		Amount:   2600,
	})
	s.Require().NoError(err)

	s.Equal(3, output.Player.Level)
	s.Equal(0, output.Player.XP)
	s.Equal(2, output.LevelsGained)
}

func (s *ProgressionServiceTestSuite) TestGrantXPSplitEqualsLump() {
	lump, err := s.svc.GrantXP(context.Background(), &GrantXPInput{
		PlayerID: "lump",
		Amount:   2500,
	})
	s.Require().NoError(err)

	_, err = s.svc.GrantXP(context.Background(), &GrantXPInput{
		PlayerID: "split",
		Amount:   1000,
	})
	s.Require().NoError(err)
	split, err := s.svc.GrantXP(context.Background(), &GrantXPInput{
		PlayerID: "split",
		Amount:   1500,
	})
	s.Require().NoError(err)

	s.Equal(lump.Player.Level, split.Player.Level)
	s.Equal(lump.Player.XP, split.Player.XP)
}

func (s *ProgressionServiceTestSuite) TestGrantXPCountsOneQuestPerCall() {
	for i := 0; i < 3; i++ {
		_, err := s.svc.GrantXP(context.Background(), &GrantXPInput{
			PlayerID: "hunter-1",
			Amount:   100,
		})
		s.Require().NoError(err)
	}

	output, err := s.svc.GetPlayer(context.Background(), &GetPlayerInput{
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.Equal(3, output.Player.QuestsCompleted)
	s.Equal(300, output.Player.XP)
	s.Equal(1, output.Player.Level)
}

func (s *ProgressionServiceTestSuite) TestGrantXPRejectsNonPositive() {
	_, err := s.svc.GrantXP(context.Background(), &GrantXPInput{
		PlayerID: "hunter-1",
		Amount:   0,
	})
	s.Require().Error(err)
	s.True(apperrors.IsInvalidInput(err))

	_, err = s.svc.GrantXP(context.Background(), &GrantXPInput{
		PlayerID: "hunter-1",
		Amount:   -50,
	})
	s.Require().Error(err)
	s.True(apperrors.IsInvalidInput(err))
}

func (s *ProgressionServiceTestSuite) TestRankFollowsLevel() {
	s.seedPlayerAtLevel("hunter-1", 9)

	// Clearing level 9 (2800 XP) lands on level 10, rank D
	output, err := s.svc.GrantXP(context.Background(), &GrantXPInput{
		PlayerID: "hunter-1",
		Amount:   2800,
	})
	s.Require().NoError(err)
	s.Equal(10, output.Player.Level)
	s.Equal(models.RankD, output.Player.Rank)
}

func (s *ProgressionServiceTestSuite) TestRankThresholds() {
	cases := []struct {
		level int
		rank  models.Rank
	}{
		{1, models.RankE},
		{9, models.RankE},
		{10, models.RankD},
		{25, models.RankC},
		{35, models.RankB},
		{50, models.RankA},
		{75, models.RankS},
		{99, models.RankS},
		{100, models.RankN},
		{150, models.RankN},
	}

	for _, c := range cases {
		s.Equal(c.rank, models.RankForLevel(c.level), "level %d", c.level)
	}
}

func (s *ProgressionServiceTestSuite) TestClassUnlockedFlagFiresOnce() {
	s.seedPlayerAtLevel("hunter-1", 9)

	// Crossing into level 10 unlocks class selection
	output, err := s.svc.GrantXP(context.Background(), &GrantXPInput{
		PlayerID: "hunter-1",
		Amount:   2800,
	})
	s.Require().NoError(err)
	s.True(output.ClassUnlocked)

	// Already eligible, so a later grant does not re-announce
	output, err = s.svc.GrantXP(context.Background(), &GrantXPInput{
		PlayerID: "hunter-1",
		Amount:   100,
	})
	s.Require().NoError(err)
	s.False(output.ClassUnlocked)
}

func (s *ProgressionServiceTestSuite) TestAssignClassRequiresLevelTen() {
	_, err := s.svc.AssignClass(context.Background(), &AssignClassInput{
		PlayerID: "hunter-1",
		Class:    models.ClassMage,
	})
	s.Require().Error(err)
	s.True(apperrors.IsInvalidInput(err))
}

func (s *ProgressionServiceTestSuite) TestAssignClassIsPermanent() {
	s.seedPlayerAtLevel("hunter-1", 10)

	output, err := s.svc.AssignClass(context.Background(), &AssignClassInput{
		PlayerID: "hunter-1",
		Class:    models.ClassTank,
	})
	s.Require().NoError(err)
	s.Equal(models.ClassTank, output.Player.Class)

	_, err = s.svc.AssignClass(context.Background(), &AssignClassInput{
		PlayerID: "hunter-1",
		Class:    models.ClassMage,
	})
	s.Require().Error(err)
	s.True(apperrors.IsAlreadyDone(err))

	// The original choice survives
	player, err := s.svc.GetPlayer(context.Background(), &GetPlayerInput{
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.Equal(models.ClassTank, player.Player.Class)
}

func (s *ProgressionServiceTestSuite) TestAssignClassRejectsUnknownClass() {
	s.seedPlayerAtLevel("hunter-1", 10)

	_, err := s.svc.AssignClass(context.Background(), &AssignClassInput{
		PlayerID: "hunter-1",
		Class:    models.Class("Necromancer"),
	})
	s.Require().Error(err)
	s.True(apperrors.IsInvalidInput(err))
}

func (s *ProgressionServiceTestSuite) TestClassBlocksEligibility() {
	s.seedPlayerAtLevel("hunter-1", 10)

	can, err := s.svc.CanSelectClass(context.Background(), &CanSelectClassInput{
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.True(can.CanSelect)

	_, err = s.svc.AssignClass(context.Background(), &AssignClassInput{
		PlayerID: "hunter-1",
		Class:    models.ClassSpy,
	})
	s.Require().NoError(err)

	can, err = s.svc.CanSelectClass(context.Background(), &CanSelectClassInput{
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.False(can.CanSelect)
}

func (s *ProgressionServiceTestSuite) TestAcceptRegistration() {
	accepted, err := s.svc.IsAccepted(context.Background(), &IsAcceptedInput{
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.False(accepted.Accepted)

	_, err = s.svc.AcceptRegistration(context.Background(), &AcceptRegistrationInput{
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)

	accepted, err = s.svc.IsAccepted(context.Background(), &IsAcceptedInput{
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.True(accepted.Accepted)
}

func (s *ProgressionServiceTestSuite) TestResetPlayerWithProgress() {
	_, err := s.svc.GrantXP(context.Background(), &GrantXPInput{
		PlayerID: "hunter-1",
		Amount:   5000,
	})
	s.Require().NoError(err)

	output, err := s.svc.ResetPlayer(context.Background(), &ResetPlayerInput{
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)

	s.Equal(1, output.Player.Level)
	s.Equal(0, output.Player.XP)
	s.Equal(models.RankE, output.Player.Rank)
	s.Equal(0, output.Player.QuestsCompleted)
	s.False(output.Player.Accepted)
}

func (s *ProgressionServiceTestSuite) TestResetUnknownPlayer() {
	_, err := s.svc.ResetPlayer(context.Background(), &ResetPlayerInput{
		PlayerID: "nobody",
	})
	s.Require().Error(err)
	s.True(apperrors.IsAlreadyDone(err))
}

func (s *ProgressionServiceTestSuite) TestResetDefaultPlayer() {
	// Seen before, but never progressed
	_, err := s.svc.GetPlayer(context.Background(), &GetPlayerInput{
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)

	_, err = s.svc.ResetPlayer(context.Background(), &ResetPlayerInput{
		PlayerID: "hunter-1",
	})
	s.Require().Error(err)
	s.True(apperrors.IsAlreadyDone(err))
}

// seedPlayerAtLevel stores a player directly at the given level
func (s *ProgressionServiceTestSuite) seedPlayerAtLevel(playerID string, level int) {
	player := models.NewPlayer(playerID)
	player.Level = level
	player.Rank = models.RankForLevel(level)
	player.Accepted = true

	err := s.players.SavePlayer(context.Background(), &playerRepo.SavePlayerInput{
		Player: player,
	})
	s.Require().NoError(err)
}
