package quest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hunterguild/system-bot/internal/common/clock"
	"github.com/hunterguild/system-bot/internal/common/identity"
	apperrors "github.com/hunterguild/system-bot/internal/errors"
	"github.com/hunterguild/system-bot/internal/models"
	playerRepo "github.com/hunterguild/system-bot/internal/repositories/player"
	questRepo "github.com/hunterguild/system-bot/internal/repositories/quest"
)

// Constructor validation errors
var (
	ErrNilConfig     = errors.New("config cannot be nil")
	ErrNilQuestRepo  = errors.New("quest repository cannot be nil")
	ErrNilPlayerRepo = errors.New("player repository cannot be nil")
	ErrNilClock      = errors.New("clock cannot be nil")
	ErrNilIDGen      = errors.New("ID generator cannot be nil")
)

// service implements the Service interface
type service struct {
	questRepo  questRepo.Repository
	playerRepo playerRepo.Repository
	clock      clock.Clock
	idGen      identity.Generator

	// Serializes read-modify-write cycles across concurrent handlers
	mu sync.Mutex
}

// New creates a new quest service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.QuestRepo == nil {
		return nil, ErrNilQuestRepo
	}

	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.IDGen == nil {
		return nil, ErrNilIDGen
	}

	return &service{
		questRepo:  cfg.QuestRepo,
		playerRepo: cfg.PlayerRepo,
		clock:      cfg.Clock,
		idGen:      cfg.IDGen,
	}, nil
}

// CreateQuest validates the quest terms and posts it to the board
func (s *service) CreateQuest(ctx context.Context, input *CreateQuestInput) (*CreateQuestOutput, error) {
	if input == nil {
		return nil, apperrors.InvalidInput("input cannot be nil")
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.InvalidInput("quest title is required")
	}

	if !models.ValidQuestRank(input.Rank) {
		return nil, apperrors.InvalidInput("Invalid rank! Please use E, D, C, B, A, or S.")
	}

	if input.XPReward <= 0 {
		return nil, apperrors.InvalidInput("Invalid XP reward! Please enter a positive number.")
	}

	if input.DurationHours < 0 {
		return nil, apperrors.InvalidInput("duration cannot be negative")
	}

	if input.MaxParticipants < 0 {
		return nil, apperrors.InvalidInput("max participants cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	quest := &models.Quest{
		ID:              s.idGen.NewQuestID(),
		Title:           input.Title,
		Description:     input.Description,
		Rank:            input.Rank,
		XPReward:        input.XPReward,
		CreatedBy:       input.CreatedBy,
		CreatedAt:       now,
		MaxParticipants: input.MaxParticipants,
		AcceptedBy:      []string{},
		Active:          true,
	}

	if input.DurationHours > 0 {
		expiresAt := now.Add(time.Duration(input.DurationHours) * time.Hour)
		quest.ExpiresAt = &expiresAt
	}

	if err := s.questRepo.SaveQuest(ctx, &questRepo.SaveQuestInput{
		Quest: quest,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to save quest")
	}

	return &CreateQuestOutput{Quest: quest}, nil
}

// ListActive returns the quest board. Expiry is lazy: any active quest found
// past its deadline during this scan is flipped inactive and persisted, so the
// stored Active flag can lag real-world expiry until somebody looks.
func (s *service) ListActive(ctx context.Context, input *ListActiveInput) (*ListActiveOutput, error) {
	if input == nil {
		input = &ListActiveInput{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	listed, err := s.questRepo.ListQuests(ctx, &questRepo.ListQuestsInput{})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list quests")
	}

	now := s.clock.Now()
	active := make([]*models.Quest, 0, len(listed.Quests))

	for _, quest := range listed.Quests {
		if !quest.Active {
			continue
		}

		if quest.ExpiredAt(now) {
			quest.Active = false
			if err := s.questRepo.SaveQuest(ctx, &questRepo.SaveQuestInput{
				Quest: quest,
			}); err != nil {
				return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to sweep expired quest")
			}
			continue
		}

		active = append(active, quest)
	}

	return &ListActiveOutput{Quests: active}, nil
}

// GetQuest retrieves a quest by ID without expiry side effects
func (s *service) GetQuest(ctx context.Context, input *GetQuestInput) (*GetQuestOutput, error) {
	if input == nil || input.QuestID == "" {
		return nil, apperrors.InvalidInput("quest ID is required")
	}

	quest, err := s.questRepo.GetQuest(ctx, &questRepo.GetQuestInput{
		QuestID: input.QuestID,
	})
	if err != nil {
		if errors.Is(err, questRepo.ErrQuestNotFound) {
			return nil, apperrors.NotFound("Quest not found or no longer available!")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to get quest")
	}

	return &GetQuestOutput{Quest: quest}, nil
}

// CanAccept checks whether a player may accept a quest. Checks run in a fixed
// priority order and the first failure wins; nothing is mutated either way.
func (s *service) CanAccept(ctx context.Context, input *CanAcceptInput) (*CanAcceptOutput, error) {
	if input == nil || input.QuestID == "" || input.PlayerID == "" {
		return nil, apperrors.InvalidInput("quest ID and player ID are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.canAccept(ctx, input.QuestID, input.PlayerID)
}

// canAccept runs the ordered acceptance checks. Callers must hold s.mu.
func (s *service) canAccept(ctx context.Context, questID, playerID string) (*CanAcceptOutput, error) {
	quest, err := s.questRepo.GetQuest(ctx, &questRepo.GetQuestInput{
		QuestID: questID,
	})
	if err != nil {
		if errors.Is(err, questRepo.ErrQuestNotFound) {
			return &CanAcceptOutput{
				Reason: apperrors.NotFound("Quest not found or inactive"),
			}, nil
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to get quest")
	}

	if !quest.Active {
		return &CanAcceptOutput{
			Reason: apperrors.NotFound("Quest not found or inactive"),
		}, nil
	}

	if quest.ExpiredAt(s.clock.Now()) {
		return &CanAcceptOutput{
			Reason: apperrors.Expired("Quest has expired"),
		}, nil
	}

	if quest.AcceptedByPlayer(playerID) {
		return &CanAcceptOutput{
			Reason: apperrors.AlreadyDone("You have already accepted this quest"),
		}, nil
	}

	if quest.Full() {
		return &CanAcceptOutput{
			Reason: apperrors.CapacityReached("Quest has reached maximum participants"),
		}, nil
	}

	return &CanAcceptOutput{CanAccept: true}, nil
}

// Accept records the acceptance on both records, idempotently: a repeated call
// adds no duplicate entries on either side
func (s *service) Accept(ctx context.Context, input *AcceptInput) (*AcceptOutput, error) {
	if input == nil || input.QuestID == "" || input.PlayerID == "" {
		return nil, apperrors.InvalidInput("quest ID and player ID are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	check, err := s.canAccept(ctx, input.QuestID, input.PlayerID)
	if err != nil {
		return nil, err
	}
	if !check.CanAccept {
		return nil, check.Reason
	}

	quest, err := s.questRepo.GetQuest(ctx, &questRepo.GetQuestInput{
		QuestID: input.QuestID,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to get quest")
	}

	if !quest.AcceptedByPlayer(input.PlayerID) {
		quest.AcceptedBy = append(quest.AcceptedBy, input.PlayerID)
		if err := s.questRepo.SaveQuest(ctx, &questRepo.SaveQuestInput{
			Quest: quest,
		}); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to save quest")
		}
	}

	player, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		if !errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load player")
		}
		player = models.NewPlayer(input.PlayerID)
	}

	if !player.HasActiveQuest(input.QuestID) {
		player.ActiveQuests = append(player.ActiveQuests, input.QuestID)
		if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{
			Player: player,
		}); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to save player")
		}
	}

	return &AcceptOutput{Quest: quest}, nil
}

// CompleteForPlayer removes the quest from the player's active set
func (s *service) CompleteForPlayer(ctx context.Context, input *CompleteForPlayerInput) (*CompleteForPlayerOutput, error) {
	if input == nil || input.QuestID == "" || input.PlayerID == "" {
		return nil, apperrors.InvalidInput("quest ID and player ID are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, apperrors.NotFound("player not found")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load player")
	}

	remaining := make([]string, 0, len(player.ActiveQuests))
	for _, id := range player.ActiveQuests {
		if id != input.QuestID {
			remaining = append(remaining, id)
		}
	}
	player.ActiveQuests = remaining

	if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{
		Player: player,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to save player")
	}

	return &CompleteForPlayerOutput{Player: player}, nil
}

// Deactivate forces a quest inactive. Missing or already-inactive quests are a
// safe no-op.
func (s *service) Deactivate(ctx context.Context, input *DeactivateInput) (*DeactivateOutput, error) {
	if input == nil || input.QuestID == "" {
		return nil, apperrors.InvalidInput("quest ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quest, err := s.questRepo.GetQuest(ctx, &questRepo.GetQuestInput{
		QuestID: input.QuestID,
	})
	if err != nil {
		if errors.Is(err, questRepo.ErrQuestNotFound) {
			return &DeactivateOutput{Deactivated: false}, nil
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to get quest")
	}

	if !quest.Active {
		return &DeactivateOutput{Deactivated: false}, nil
	}

	quest.Active = false
	if err := s.questRepo.SaveQuest(ctx, &questRepo.SaveQuestInput{
		Quest: quest,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to save quest")
	}

	return &DeactivateOutput{Deactivated: true}, nil
}
