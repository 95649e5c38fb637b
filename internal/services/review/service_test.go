package review

import (
	"context"
	"strings"
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
	reviewRepo "github.com/hunterguild/system-bot/internal/repositories/review"
	submissionRepo "github.com/hunterguild/system-bot/internal/repositories/submission"
	"github.com/hunterguild/system-bot/internal/services/progression"
	questService "github.com/hunterguild/system-bot/internal/services/quest"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	players playerRepo.Repository
	quests  questRepo.Repository
	clk     *clock.Fixed

	progressionSvc progression.Service
	questSvc       questService.Service
	svc            Service
}

func (s *ReviewServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	players, err := playerRepo.NewRedis(&playerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.players = players

	quests, err := questRepo.NewRedis(&questRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.quests = quests

	submissions, err := submissionRepo.NewRedis(&submissionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	reviews, err := reviewRepo.NewRedis(&reviewRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.clk = &clock.Fixed{Time: time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)}
	idGen := &identity.Sequence{Base: 1743847200000}

	progressionSvc, err := progression.New(&progression.Config{
		PlayerRepo: players,
	})
	s.Require().NoError(err)
	s.progressionSvc = progressionSvc

	questSvc, err := questService.New(&questService.Config{
		QuestRepo:  quests,
		PlayerRepo: players,
		Clock:      s.clk,
		IDGen:      idGen,
	})
	s.Require().NoError(err)
	s.questSvc = questSvc

	svc, err := New(&Config{
		SubmissionRepo:     submissions,
		ReviewRepo:         reviews,
		ProgressionService: progressionSvc,
		QuestService:       questSvc,
		Clock:              s.clk,
		IDGen:              idGen,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ReviewServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestReviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}

// acceptQuest runs the accept path end to end and returns the quest and the
// opened submission
func (s *ReviewServiceTestSuite) acceptQuest(playerID string, xpReward int) (*models.Quest, *models.Submission) {
	created, err := s.questSvc.CreateQuest(context.Background(), &questService.CreateQuestInput{
		Title:     "Clear the Goblin Den",
		Rank:      models.RankC,
		XPReward:  xpReward,
		CreatedBy: "host-1",
	})
	s.Require().NoError(err)

	_, err = s.questSvc.Accept(context.Background(), &questService.AcceptInput{
		QuestID:  created.Quest.ID,
		PlayerID: playerID,
	})
	s.Require().NoError(err)

	opened, err := s.svc.OpenSubmission(context.Background(), &OpenSubmissionInput{
		Quest:     created.Quest,
		UserID:    playerID,
		Username:  "Hunter",
		GuildID:   "guild-1",
		ChannelID: "channel-1",
	})
	s.Require().NoError(err)

	return created.Quest, opened.Submission
}

func (s *ReviewServiceTestSuite) recordWork(submissionID string) {
	_, err := s.svc.RecordWork(context.Background(), &RecordWorkInput{
		SubmissionID: submissionID,
		Text:         "Cleared the den.",
	})
	s.Require().NoError(err)
}

func (s *ReviewServiceTestSuite) TestOpenSubmissionSnapshotsQuestTerms() {
	quest, sub := s.acceptQuest("hunter-1", 500)

	s.Equal(quest.ID, sub.QuestID)
	s.Equal("Clear the Goblin Den", sub.QuestTitle)
	s.Equal(models.RankC, sub.QuestRank)
	s.Equal(500, sub.QuestXP)
	s.Equal(models.SubmissionStatusPendingSubmission, sub.Status)
}

func (s *ReviewServiceTestSuite) TestRecordWorkTransitionsStatus() {
	_, sub := s.acceptQuest("hunter-1", 500)

	output, err := s.svc.RecordWork(context.Background(), &RecordWorkInput{
		SubmissionID: sub.ID,
		Text:         "Cleared the den.",
		ImageURL:     "https://example.com/proof.png",
	})
	s.Require().NoError(err)

	s.Equal(models.SubmissionStatusPendingReview, output.Submission.Status)
	s.Equal("Cleared the den.", output.Submission.TextSubmission)
	s.Equal("https://example.com/proof.png", output.Submission.ImageURL)
}

func (s *ReviewServiceTestSuite) TestRecordWorkRequiresText() {
	_, sub := s.acceptQuest("hunter-1", 500)

	_, err := s.svc.RecordWork(context.Background(), &RecordWorkInput{
		SubmissionID: sub.ID,
		Text:         "   ",
	})
	s.Require().Error(err)
	s.True(apperrors.IsInvalidInput(err))
}

func (s *ReviewServiceTestSuite) TestRecordWorkEnforcesLengths() {
	_, sub := s.acceptQuest("hunter-1", 500)

	_, err := s.svc.RecordWork(context.Background(), &RecordWorkInput{
		SubmissionID: sub.ID,
		Text:         strings.Repeat("a", MaxTextLength+1),
	})
	s.Require().Error(err)
	s.True(apperrors.IsInvalidInput(err))

	_, err = s.svc.RecordWork(context.Background(), &RecordWorkInput{
		SubmissionID: sub.ID,
		Text:         "fine",
		ImageURL:     "https://example.com/" + strings.Repeat("a", MaxImageURLLength),
	})
	s.Require().Error(err)
	s.True(apperrors.IsInvalidInput(err))
}

func (s *ReviewServiceTestSuite) TestRecordWorkTwiceFails() {
	_, sub := s.acceptQuest("hunter-1", 500)
	s.recordWork(sub.ID)

	_, err := s.svc.RecordWork(context.Background(), &RecordWorkInput{
		SubmissionID: sub.ID,
		Text:         "Second attempt.",
	})
	s.Require().Error(err)
	s.True(apperrors.IsAlreadyDone(err))
}

func (s *ReviewServiceTestSuite) TestApprovePaysSnapshotAndClearsQuest() {
	quest, sub := s.acceptQuest("hunter-1", 500)
	s.recordWork(sub.ID)

	// Editing the stored reward after acceptance must not change the payout
	quest.XPReward = 9999
	err := s.quests.SaveQuest(context.Background(), &questRepo.SaveQuestInput{
		Quest: quest,
	})
	s.Require().NoError(err)

	output, err := s.svc.Approve(context.Background(), &ApproveInput{
		SubmissionID: sub.ID,
	})
	s.Require().NoError(err)

	s.Equal(500, output.XPAwarded)
	s.Equal(500, output.Player.XP)
	s.Equal(1, output.Player.QuestsCompleted)
	s.False(output.Player.HasActiveQuest(quest.ID))

	// Resolved submissions are gone
	_, err = s.svc.GetSubmission(context.Background(), &GetSubmissionInput{
		SubmissionID: sub.ID,
	})
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *ReviewServiceTestSuite) TestApproveTwiceFails() {
	_, sub := s.acceptQuest("hunter-1", 500)
	s.recordWork(sub.ID)

	_, err := s.svc.Approve(context.Background(), &ApproveInput{
		SubmissionID: sub.ID,
	})
	s.Require().NoError(err)

	_, err = s.svc.Approve(context.Background(), &ApproveInput{
		SubmissionID: sub.ID,
	})
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *ReviewServiceTestSuite) TestApproveReportsClassUnlock() {
	// Level 9 needs 2800 XP to clear; a big reward crosses the threshold
	player := models.NewPlayer("hunter-1")
	player.Level = 9
	player.Rank = models.RankForLevel(9)
	err := s.players.SavePlayer(context.Background(), &playerRepo.SavePlayerInput{
		Player: player,
	})
	s.Require().NoError(err)

	_, sub := s.acceptQuest("hunter-1", 3000)
	s.recordWork(sub.ID)

	output, err := s.svc.Approve(context.Background(), &ApproveInput{
		SubmissionID: sub.ID,
	})
	s.Require().NoError(err)
	s.Equal(10, output.Player.Level)
	s.True(output.ClassUnlocked)
}

func (s *ReviewServiceTestSuite) TestRejectLeavesPlayerUntouched() {
	quest, sub := s.acceptQuest("hunter-1", 500)
	s.recordWork(sub.ID)

	output, err := s.svc.Reject(context.Background(), &RejectInput{
		SubmissionID: sub.ID,
	})
	s.Require().NoError(err)
	s.Equal(sub.ID, output.Submission.ID)

	// No XP granted and the quest stays active for the player
	player, err := s.players.GetPlayer(context.Background(), &playerRepo.GetPlayerInput{
		PlayerID: "hunter-1",
	})
	s.Require().NoError(err)
	s.Equal(0, player.XP)
	s.Equal(0, player.QuestsCompleted)
	s.True(player.HasActiveQuest(quest.ID))

	// But the submission is gone and cannot be approved later
	_, err = s.svc.Approve(context.Background(), &ApproveInput{
		SubmissionID: sub.ID,
	})
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *ReviewServiceTestSuite) TestLegacyApprovePaysLiveReward() {
	created, err := s.questSvc.CreateQuest(context.Background(), &questService.CreateQuestInput{
		Title:     "Old Quest",
		Rank:      models.RankD,
		XPReward:  300,
		CreatedBy: "host-1",
	})
	s.Require().NoError(err)
	quest := created.Quest

	opened, err := s.svc.OpenReview(context.Background(), &OpenReviewInput{
		UserID:    "hunter-1",
		Username:  "Hunter",
		QuestID:   quest.ID,
		GuildID:   "guild-1",
		ChannelID: "channel-1",
	})
	s.Require().NoError(err)

	// The legacy path re-reads the reward at approval time, so an edit
	// between submission and approval changes the payout
	quest.XPReward = 450
	err = s.quests.SaveQuest(context.Background(), &questRepo.SaveQuestInput{
		Quest: quest,
	})
	s.Require().NoError(err)

	output, err := s.svc.ApproveReview(context.Background(), &ApproveReviewInput{
		ReviewID: opened.Review.ID,
	})
	s.Require().NoError(err)

	s.Equal(450, output.XPAwarded)
	s.Equal(450, output.Player.XP)
	s.Equal(quest.ID, output.Quest.ID)

	// Resolved reviews are gone
	_, err = s.svc.ApproveReview(context.Background(), &ApproveReviewInput{
		ReviewID: opened.Review.ID,
	})
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *ReviewServiceTestSuite) TestLegacyApproveFailsWhenQuestGone() {
	opened, err := s.svc.OpenReview(context.Background(), &OpenReviewInput{
		UserID:  "hunter-1",
		QuestID: "0",
	})
	s.Require().NoError(err)

	_, err = s.svc.ApproveReview(context.Background(), &ApproveReviewInput{
		ReviewID: opened.Review.ID,
	})
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *ReviewServiceTestSuite) TestLegacyReject() {
	opened, err := s.svc.OpenReview(context.Background(), &OpenReviewInput{
		UserID:  "hunter-1",
		QuestID: "1",
	})
	s.Require().NoError(err)

	output, err := s.svc.RejectReview(context.Background(), &RejectReviewInput{
		ReviewID: opened.Review.ID,
	})
	s.Require().NoError(err)
	s.Equal(opened.Review.ID, output.Review.ID)

	_, err = s.svc.RejectReview(context.Background(), &RejectReviewInput{
		ReviewID: opened.Review.ID,
	})
	s.Require().Error(err)
	s.True(apperrors.IsNotFound(err))
}
