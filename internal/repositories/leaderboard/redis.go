package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/lightmatch/internal/models"
)

const (
	// Key prefixes for Redis
	entryKeyPrefix       = "score:"
	leaderboardKeyPrefix = "leaderboard:"
	allDifficulties      = "all"
)

// ErrInvalidDifficulty is returned when filtering by an unknown tier
var ErrInvalidDifficulty = errors.New("unknown difficulty")

// Config holds configuration for the Redis leaderboard repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed leaderboard repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func boardKey(difficulty string) string {
	return fmt.Sprintf("%s%s", leaderboardKeyPrefix, difficulty)
}

// AddEntries stores each entry and indexes it by score
func (r *redisRepository) AddEntries(ctx context.Context, input *AddEntriesInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	if len(input.Entries) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()

	for _, entry := range input.Entries {
		if entry == nil || entry.ID == "" {
			return errors.New("leaderboard entry ID cannot be empty")
		}

		if entry.RecordedAt.IsZero() {
			entry.RecordedAt = time.Now()
		}

		entryJSON, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal leaderboard entry: %w", err)
		}

		pipe.Set(ctx, fmt.Sprintf("%s%s", entryKeyPrefix, entry.ID), entryJSON, 0)

		z := redis.Z{
			Score:  float64(entry.Score),
			Member: entry.ID,
		}
		pipe.ZAdd(ctx, boardKey(allDifficulties), z)
		pipe.ZAdd(ctx, boardKey(string(entry.Difficulty)), z)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add leaderboard entries: %w", err)
	}

	return nil
}

// GetTopScores reads the highest scores in descending order
func (r *redisRepository) GetTopScores(ctx context.Context, input *GetTopScoresInput) (*GetTopScoresOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = allDifficulties
	}
	if difficulty != allDifficulties && !models.Difficulty(difficulty).IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDifficulty, difficulty)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	ids, err := r.client.ZRevRange(ctx, boardKey(difficulty), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if len(ids) == 0 {
		return &GetTopScoresOutput{
			Entries: []*models.LeaderboardEntry{},
		}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, fmt.Sprintf("%s%s", entryKeyPrefix, id))
	}

	// redis.Nil from a single missing entry surfaces here; it is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get leaderboard entries: %w", err)
	}

	entries := make([]*models.LeaderboardEntry, 0, len(ids))
	for i, cmd := range cmds {
		entryJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get leaderboard entry %s: %w", ids[i], err)
		}

		var entry models.LeaderboardEntry
		if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal leaderboard entry %s: %w", ids[i], err)
		}

		entries = append(entries, &entry)
	}

	return &GetTopScoresOutput{
		Entries: entries,
	}, nil
}
