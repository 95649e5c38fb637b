package progression

import (
	"context"
	"errors"
	"sync"

	apperrors "github.com/hunterguild/system-bot/internal/errors"
	"github.com/hunterguild/system-bot/internal/models"
	playerRepo "github.com/hunterguild/system-bot/internal/repositories/player"
)

// Constructor validation errors
var (
	ErrNilConfig     = errors.New("config cannot be nil")
	ErrNilPlayerRepo = errors.New("player repository cannot be nil")
)

// ClassUnlockLevel is the level at which class selection opens up
const ClassUnlockLevel = 10

// XPRequired returns the experience needed to clear the given level
func XPRequired(level int) int {
	return 1000 + 200*level
}

// service implements the Service interface
type service struct {
	playerRepo playerRepo.Repository

	// Serializes read-modify-write cycles; discordgo runs handlers on
	// separate goroutines, so the store discipline has to be explicit
	mu sync.Mutex
}

// New creates a new progression service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}

	return &service{
		playerRepo: cfg.PlayerRepo,
	}, nil
}

// GetPlayer retrieves a player, creating the default record on first reference
func (s *service) GetPlayer(ctx context.Context, input *GetPlayerInput) (*GetPlayerOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, apperrors.InvalidInput("player ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.getOrCreate(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &GetPlayerOutput{Player: player}, nil
}

// getOrCreate loads the player, persisting a fresh default record when the
// player has never been seen. Callers must hold s.mu.
func (s *service) getOrCreate(ctx context.Context, playerID string) (*models.Player, error) {
	player, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{
		PlayerID: playerID,
	})
	if err == nil {
		return player, nil
	}

	if !errors.Is(err, playerRepo.ErrPlayerNotFound) {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load player")
	}

	player = models.NewPlayer(playerID)
	if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{
		Player: player,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create player")
	}

	return player, nil
}

// IsAccepted reports whether a player has completed registration consent
func (s *service) IsAccepted(ctx context.Context, input *IsAcceptedInput) (*IsAcceptedOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, apperrors.InvalidInput("player ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.getOrCreate(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &IsAcceptedOutput{Accepted: player.Accepted}, nil
}

// AcceptRegistration marks a player as registered
func (s *service) AcceptRegistration(ctx context.Context, input *AcceptRegistrationInput) (*AcceptRegistrationOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, apperrors.InvalidInput("player ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.getOrCreate(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	player.Accepted = true
	if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{
		Player: player,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to save player")
	}

	return &AcceptRegistrationOutput{Player: player}, nil
}

// GrantXP adds experience, looping through as many level-ups as the amount
// covers, then counts exactly one completed quest for the call
func (s *service) GrantXP(ctx context.Context, input *GrantXPInput) (*GrantXPOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, apperrors.InvalidInput("player ID is required")
	}

	if input.Amount <= 0 {
		return nil, apperrors.InvalidInput("XP amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.getOrCreate(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	couldSelectBefore := canSelectClass(player)

	player.XP += input.Amount

	levelsGained := 0
	for player.XP >= XPRequired(player.Level) {
		player.XP -= XPRequired(player.Level)
		player.Level++
		player.Rank = models.RankForLevel(player.Level)
		levelsGained++
	}

	player.QuestsCompleted++

	if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{
		Player: player,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to save player")
	}

	return &GrantXPOutput{
		Player:        player,
		LevelsGained:  levelsGained,
		ClassUnlocked: !couldSelectBefore && canSelectClass(player),
	}, nil
}

// canSelectClass is the eligibility rule: level 10 with no class chosen
func canSelectClass(player *models.Player) bool {
	return player.Level >= ClassUnlockLevel && player.Class == models.ClassNone
}

// CanSelectClass reports whether the player may choose a class
func (s *service) CanSelectClass(ctx context.Context, input *CanSelectClassInput) (*CanSelectClassOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, apperrors.InvalidInput("player ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.getOrCreate(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &CanSelectClassOutput{CanSelect: canSelectClass(player)}, nil
}

// AssignClass sets the player's class. The choice is permanent; a second
// assignment fails and leaves the original class untouched.
func (s *service) AssignClass(ctx context.Context, input *AssignClassInput) (*AssignClassOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, apperrors.InvalidInput("player ID is required")
	}

	if !models.ValidClass(input.Class) {
		return nil, apperrors.InvalidInputf("unknown class %q", input.Class)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.getOrCreate(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	if player.Class != models.ClassNone {
		return nil, apperrors.AlreadyDone("class already selected")
	}

	if player.Level < ClassUnlockLevel {
		return nil, apperrors.InvalidInputf("class selection requires level %d", ClassUnlockLevel)
	}

	player.Class = input.Class
	if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{
		Player: player,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to save player")
	}

	return &AssignClassOutput{Player: player}, nil
}

// ResetPlayer restores a player to the default record. Resetting a player who
// never made progress reports "nothing to reset" instead of rewriting state.
func (s *service) ResetPlayer(ctx context.Context, input *ResetPlayerInput) (*ResetPlayerOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, apperrors.InvalidInput("player ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		if errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, apperrors.AlreadyDone("nothing to reset")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load player")
	}

	if player.IsDefault() {
		return nil, apperrors.AlreadyDone("nothing to reset")
	}

	fresh := models.NewPlayer(input.PlayerID)
	if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{
		Player: fresh,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to save player")
	}

	return &ResetPlayerOutput{Player: fresh}, nil
}
