package review

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hunterguild/system-bot/internal/common/clock"
	"github.com/hunterguild/system-bot/internal/common/identity"
	apperrors "github.com/hunterguild/system-bot/internal/errors"
	"github.com/hunterguild/system-bot/internal/models"
	reviewRepo "github.com/hunterguild/system-bot/internal/repositories/review"
	submissionRepo "github.com/hunterguild/system-bot/internal/repositories/submission"
	"github.com/hunterguild/system-bot/internal/services/progression"
	questService "github.com/hunterguild/system-bot/internal/services/quest"
)

// Constructor validation errors
var (
	ErrNilConfig             = errors.New("config cannot be nil")
	ErrNilSubmissionRepo     = errors.New("submission repository cannot be nil")
	ErrNilReviewRepo         = errors.New("review repository cannot be nil")
	ErrNilProgressionService = errors.New("progression service cannot be nil")
	ErrNilQuestService       = errors.New("quest service cannot be nil")
	ErrNilClock              = errors.New("clock cannot be nil")
	ErrNilIDGen              = errors.New("ID generator cannot be nil")
)

// service implements the Service interface
type service struct {
	submissionRepo submissionRepo.Repository
	reviewRepo     reviewRepo.Repository
	progression    progression.Service
	quests         questService.Service
	clock          clock.Clock
	idGen          identity.Generator

	// Serializes workflow transitions so a submission cannot be resolved
	// twice by racing approve/reject handlers
	mu sync.Mutex
}

// New creates a new review service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SubmissionRepo == nil {
		return nil, ErrNilSubmissionRepo
	}

	if cfg.ReviewRepo == nil {
		return nil, ErrNilReviewRepo
	}

	if cfg.ProgressionService == nil {
		return nil, ErrNilProgressionService
	}

	if cfg.QuestService == nil {
		return nil, ErrNilQuestService
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.IDGen == nil {
		return nil, ErrNilIDGen
	}

	return &service{
		submissionRepo: cfg.SubmissionRepo,
		reviewRepo:     cfg.ReviewRepo,
		progression:    cfg.ProgressionService,
		quests:         cfg.QuestService,
		clock:          cfg.Clock,
		idGen:          cfg.IDGen,
	}, nil
}

// OpenSubmission creates a pending submission. Quest terms are copied in so a
// later quest edit or deletion cannot change the pending reward.
func (s *service) OpenSubmission(ctx context.Context, input *OpenSubmissionInput) (*OpenSubmissionOutput, error) {
	if input == nil || input.Quest == nil {
		return nil, apperrors.InvalidInput("quest is required")
	}

	if input.UserID == "" {
		return nil, apperrors.InvalidInput("user ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &models.Submission{
		ID:         s.idGen.NewSubmissionID(input.UserID, input.Quest.ID),
		UserID:     input.UserID,
		Username:   input.Username,
		QuestID:    input.Quest.ID,
		QuestTitle: input.Quest.Title,
		QuestRank:  input.Quest.Rank,
		QuestXP:    input.Quest.XPReward,
		GuildID:    input.GuildID,
		ChannelID:  input.ChannelID,
		Status:     models.SubmissionStatusPendingSubmission,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.submissionRepo.SaveSubmission(ctx, &submissionRepo.SaveSubmissionInput{
		Submission: sub,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to save submission")
	}

	return &OpenSubmissionOutput{Submission: sub}, nil
}

// GetSubmission retrieves a pending submission
func (s *service) GetSubmission(ctx context.Context, input *GetSubmissionInput) (*GetSubmissionOutput, error) {
	if input == nil || input.SubmissionID == "" {
		return nil, apperrors.InvalidInput("submission ID is required")
	}

	sub, err := s.getSubmission(ctx, input.SubmissionID)
	if err != nil {
		return nil, err
	}

	return &GetSubmissionOutput{Submission: sub}, nil
}

// getSubmission loads a submission, translating absence into the workflow's
// not-found error. Resolved submissions are deleted, so absence also covers
// "already resolved".
func (s *service) getSubmission(ctx context.Context, submissionID string) (*models.Submission, error) {
	sub, err := s.submissionRepo.GetSubmission(ctx, &submissionRepo.GetSubmissionInput{
		SubmissionID: submissionID,
	})
	if err != nil {
		if errors.Is(err, submissionRepo.ErrSubmissionNotFound) {
			return nil, apperrors.NotFound("Submission not found or expired.")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to get submission")
	}
	return sub, nil
}

// RecordWork attaches the player's work and moves the submission to pending
// review. This is the only mutation a pending submission permits.
func (s *service) RecordWork(ctx context.Context, input *RecordWorkInput) (*RecordWorkOutput, error) {
	if input == nil || input.SubmissionID == "" {
		return nil, apperrors.InvalidInput("submission ID is required")
	}

	if strings.TrimSpace(input.Text) == "" {
		return nil, apperrors.InvalidInput("a written description of your work is required")
	}

	if len(input.Text) > MaxTextLength {
		return nil, apperrors.InvalidInputf("submission text cannot exceed %d characters", MaxTextLength)
	}

	if len(input.ImageURL) > MaxImageURLLength {
		return nil, apperrors.InvalidInputf("image URL cannot exceed %d characters", MaxImageURLLength)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.getSubmission(ctx, input.SubmissionID)
	if err != nil {
		return nil, err
	}

	if sub.Status != models.SubmissionStatusPendingSubmission {
		return nil, apperrors.AlreadyDone("work has already been submitted for review")
	}

	sub.TextSubmission = input.Text
	sub.ImageURL = input.ImageURL
	sub.Status = models.SubmissionStatusPendingReview
	sub.SubmittedAt = s.clock.Now()

	if err := s.submissionRepo.SaveSubmission(ctx, &submissionRepo.SaveSubmissionInput{
		Submission: sub,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to save submission")
	}

	return &RecordWorkOutput{Submission: sub}, nil
}

// Approve grants the snapshotted reward, clears the quest from the player's
// active set and deletes the submission. The record is gone afterward, so a
// second resolution of the same submission reports not found.
func (s *service) Approve(ctx context.Context, input *ApproveInput) (*ApproveOutput, error) {
	if input == nil || input.SubmissionID == "" {
		return nil, apperrors.InvalidInput("submission ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.getSubmission(ctx, input.SubmissionID)
	if err != nil {
		return nil, err
	}

	granted, err := s.progression.GrantXP(ctx, &progression.GrantXPInput{
		PlayerID: sub.UserID,
		Amount:   sub.QuestXP,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.quests.CompleteForPlayer(ctx, &questService.CompleteForPlayerInput{
		QuestID:  sub.QuestID,
		PlayerID: sub.UserID,
	}); err != nil {
		return nil, err
	}

	if err := s.submissionRepo.DeleteSubmission(ctx, &submissionRepo.DeleteSubmissionInput{
		SubmissionID: sub.ID,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete submission")
	}

	return &ApproveOutput{
		Player:        granted.Player,
		Submission:    sub,
		XPAwarded:     sub.QuestXP,
		ClassUnlocked: granted.ClassUnlocked,
	}, nil
}

// Reject deletes the submission with no player or quest mutation; the quest
// stays in the player's active set so they can try again
func (s *service) Reject(ctx context.Context, input *RejectInput) (*RejectOutput, error) {
	if input == nil || input.SubmissionID == "" {
		return nil, apperrors.InvalidInput("submission ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.getSubmission(ctx, input.SubmissionID)
	if err != nil {
		return nil, err
	}

	if err := s.submissionRepo.DeleteSubmission(ctx, &submissionRepo.DeleteSubmissionInput{
		SubmissionID: sub.ID,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete submission")
	}

	return &RejectOutput{Submission: sub}, nil
}

// OpenReview creates a legacy pending review
func (s *service) OpenReview(ctx context.Context, input *OpenReviewInput) (*OpenReviewOutput, error) {
	if input == nil || input.UserID == "" || input.QuestID == "" {
		return nil, apperrors.InvalidInput("user ID and quest ID are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rev := &models.Review{
		ID:        s.idGen.NewReviewID(),
		UserID:    input.UserID,
		Username:  input.Username,
		QuestID:   input.QuestID,
		GuildID:   input.GuildID,
		ChannelID: input.ChannelID,
		CreatedAt: s.clock.Now(),
	}

	if err := s.reviewRepo.SaveReview(ctx, &reviewRepo.SaveReviewInput{
		Review: rev,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to save review")
	}

	return &OpenReviewOutput{Review: rev}, nil
}

// getReview loads a legacy review, translating absence into not found
func (s *service) getReview(ctx context.Context, reviewID string) (*models.Review, error) {
	rev, err := s.reviewRepo.GetReview(ctx, &reviewRepo.GetReviewInput{
		ReviewID: reviewID,
	})
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			return nil, apperrors.NotFound("This review is no longer valid.")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to get review")
	}
	return rev, nil
}

// ApproveReview resolves a legacy review. Unlike the submission path the
// reward is re-read live from the quest record, so a quest edited after the
// review was opened pays the edited amount. The player's active set is left
// alone, matching the old behavior.
func (s *service) ApproveReview(ctx context.Context, input *ApproveReviewInput) (*ApproveReviewOutput, error) {
	if input == nil || input.ReviewID == "" {
		return nil, apperrors.InvalidInput("review ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rev, err := s.getReview(ctx, input.ReviewID)
	if err != nil {
		return nil, err
	}

	questOut, err := s.quests.GetQuest(ctx, &questService.GetQuestInput{
		QuestID: rev.QuestID,
	})
	if err != nil {
		return nil, err
	}
	quest := questOut.Quest

	granted, err := s.progression.GrantXP(ctx, &progression.GrantXPInput{
		PlayerID: rev.UserID,
		Amount:   quest.XPReward,
	})
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.DeleteReview(ctx, &reviewRepo.DeleteReviewInput{
		ReviewID: rev.ID,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete review")
	}

	return &ApproveReviewOutput{
		Player:    granted.Player,
		Review:    rev,
		Quest:     quest,
		XPAwarded: quest.XPReward,
	}, nil
}

// RejectReview discards a legacy review with no other state change
func (s *service) RejectReview(ctx context.Context, input *RejectReviewInput) (*RejectReviewOutput, error) {
	if input == nil || input.ReviewID == "" {
		return nil, apperrors.InvalidInput("review ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rev, err := s.getReview(ctx, input.ReviewID)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.DeleteReview(ctx, &reviewRepo.DeleteReviewInput{
		ReviewID: rev.ID,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete review")
	}

	return &RejectReviewOutput{Review: rev}, nil
}
