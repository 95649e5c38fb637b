package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hunterguild/system-bot/internal/models"
)

const (
	// Key prefix for Redis
	reviewKeyPrefix = "pending_review:"
)

// ErrReviewNotFound is returned when a pending review is not found
var ErrReviewNotFound = errors.New("pending review not found")

// Config holds configuration for the Redis review repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed review repository
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

// SaveReview persists a pending review to Redis
func (r *redisRepository) SaveReview(ctx context.Context, input *SaveReviewInput) error {
	if input == nil || input.Review == nil {
		return errors.New("input and review cannot be nil")
	}

	rev := input.Review

	if rev.ID == "" {
		return errors.New("review ID cannot be empty")
	}

	revJSON, err := json.Marshal(rev)
	if err != nil {
		return fmt.Errorf("failed to marshal review: %w", err)
	}

	revKey := fmt.Sprintf("%s%s", reviewKeyPrefix, rev.ID)
	if err := r.client.Set(ctx, revKey, revJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}

	return nil
}

// GetReview retrieves a pending review by ID from Redis
func (r *redisRepository) GetReview(ctx context.Context, input *GetReviewInput) (*models.Review, error) {
	if input == nil || input.ReviewID == "" {
		return nil, errors.New("input and review ID cannot be empty")
	}

	revKey := fmt.Sprintf("%s%s", reviewKeyPrefix, input.ReviewID)
	revJSON, err := r.client.Get(ctx, revKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	var rev models.Review
	if err := json.Unmarshal([]byte(revJSON), &rev); err != nil {
		return nil, fmt.Errorf("failed to unmarshal review: %w", err)
	}

	return &rev, nil
}

// DeleteReview removes a pending review from Redis
func (r *redisRepository) DeleteReview(ctx context.Context, input *DeleteReviewInput) error {
	if input == nil || input.ReviewID == "" {
		return errors.New("input and review ID cannot be empty")
	}

	revKey := fmt.Sprintf("%s%s", reviewKeyPrefix, input.ReviewID)
	if err := r.client.Del(ctx, revKey).Err(); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}
