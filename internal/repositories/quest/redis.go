package quest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/hunterguild/system-bot/internal/models"
)

const (
	// Key prefixes for Redis
	questKeyPrefix = "quest:"
	questIndexKey  = "quests"
)

// ErrQuestNotFound is returned when a quest is not found
var ErrQuestNotFound = errors.New("quest not found")

// Config holds configuration for the Redis quest repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed quest repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveQuest persists a quest to Redis and records it in the quest index
func (r *redisRepository) SaveQuest(ctx context.Context, input *SaveQuestInput) error {
	if input == nil || input.Quest == nil {
		return errors.New("input and quest cannot be nil")
	}

	quest := input.Quest

	if quest.ID == "" {
		return errors.New("quest ID cannot be empty")
	}

	questJSON, err := json.Marshal(quest)
	if err != nil {
		return fmt.Errorf("failed to marshal quest: %w", err)
	}

	pipe := r.client.Pipeline()

	questKey := fmt.Sprintf("%s%s", questKeyPrefix, quest.ID)
	pipe.Set(ctx, questKey, questJSON, 0)
	pipe.SAdd(ctx, questIndexKey, quest.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save quest: %w", err)
	}

	return nil
}

// GetQuest retrieves a quest by ID from Redis
func (r *redisRepository) GetQuest(ctx context.Context, input *GetQuestInput) (*models.Quest, error) {
	if input == nil || input.QuestID == "" {
		return nil, errors.New("input and quest ID cannot be empty")
	}

	questKey := fmt.Sprintf("%s%s", questKeyPrefix, input.QuestID)
	questJSON, err := r.client.Get(ctx, questKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}

	var quest models.Quest
	if err := json.Unmarshal([]byte(questJSON), &quest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quest: %w", err)
	}

	return &quest, nil
}

// ListQuests retrieves every stored quest, ordered by ID
func (r *redisRepository) ListQuests(ctx context.Context, input *ListQuestsInput) (*ListQuestsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	questIDs, err := r.client.SMembers(ctx, questIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get quest IDs: %w", err)
	}

	if len(questIDs) == 0 {
		return &ListQuestsOutput{
			Quests: []*models.Quest{},
		}, nil
	}

	// Fetch all quest records in one round trip
	pipe := r.client.Pipeline()
	questCommands := make(map[string]*redis.StringCmd, len(questIDs))

	for _, questID := range questIDs {
		questKey := fmt.Sprintf("%s%s", questKeyPrefix, questID)
		questCommands[questID] = pipe.Get(ctx, questKey)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get quests: %w", err)
	}

	quests := make([]*models.Quest, 0, len(questIDs))
	for questID, cmd := range questCommands {
		questJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Indexed but deleted between the two reads
				continue
			}
			return nil, fmt.Errorf("failed to get quest %s: %w", questID, err)
		}

		var quest models.Quest
		if err := json.Unmarshal([]byte(questJSON), &quest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quest %s: %w", questID, err)
		}

		quests = append(quests, &quest)
	}

	// Quest IDs are time-based, so ID order is creation order
	sort.Slice(quests, func(i, j int) bool {
		return quests[i].ID < quests[j].ID
	})

	return &ListQuestsOutput{
		Quests: quests,
	}, nil
}
