package submission

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
	submissionKeyPrefix = "submission:"
)

// ErrSubmissionNotFound is returned when a submission is not found
var ErrSubmissionNotFound = errors.New("submission not found")

// Config holds configuration for the Redis submission repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed submission repository
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

// SaveSubmission persists a submission to Redis
func (r *redisRepository) SaveSubmission(ctx context.Context, input *SaveSubmissionInput) error {
	if input == nil || input.Submission == nil {
		return errors.New("input and submission cannot be nil")
	}

	sub := input.Submission

	if sub.ID == "" {
		return errors.New("submission ID cannot be empty")
	}

	subJSON, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	subKey := fmt.Sprintf("%s%s", submissionKeyPrefix, sub.ID)
	if err := r.client.Set(ctx, subKey, subJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}

	return nil
}

// GetSubmission retrieves a submission by ID from Redis
func (r *redisRepository) GetSubmission(ctx context.Context, input *GetSubmissionInput) (*models.Submission, error) {
	if input == nil || input.SubmissionID == "" {
		return nil, errors.New("input and submission ID cannot be empty")
	}

	subKey := fmt.Sprintf("%s%s", submissionKeyPrefix, input.SubmissionID)
	subJSON, err := r.client.Get(ctx, subKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	var sub models.Submission
	if err := json.Unmarshal([]byte(subJSON), &sub); err != nil {
		return nil, fmt.Errorf("failed to unmarshal submission: %w", err)
	}

	return &sub, nil
}

// DeleteSubmission removes a submission record from Redis
func (r *redisRepository) DeleteSubmission(ctx context.Context, input *DeleteSubmissionInput) error {
	if input == nil || input.SubmissionID == "" {
		return errors.New("input and submission ID cannot be empty")
	}

	subKey := fmt.Sprintf("%s%s", submissionKeyPrefix, input.SubmissionID)
	if err := r.client.Del(ctx, subKey).Err(); err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	return nil
}
