package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/KirkDiggler/lightmatch/internal/models"
)

const (
	// Key prefix for Redis
	settingsKeyPrefix = "settings:"
)

var (
	// ErrInvalidPoints is returned when a point value is negative
	ErrInvalidPoints = errors.New("points cannot be negative")

	// ErrInvalidDifficulty is returned when a point value names an unknown tier
	ErrInvalidDifficulty = errors.New("unknown difficulty")
)

// Config holds configuration for the Redis settings repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed settings repository
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

func settingsKey(profileID string) string {
	return fmt.Sprintf("%s%s", settingsKeyPrefix, profileID)
}

// GetSettings retrieves settings from Redis
func (r *redisRepository) GetSettings(ctx context.Context, input *GetSettingsInput) (*GetSettingsOutput, error) {
	if input == nil || input.ProfileID == "" {
		return nil, errors.New("input and profile ID cannot be empty")
	}

	raw, err := r.client.Get(ctx, settingsKey(input.ProfileID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &GetSettingsOutput{
				Settings: models.DefaultSettings(),
			}, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if !gjson.Valid(raw) {
		return &GetSettingsOutput{
			Settings: models.DefaultSettings(),
			Found:    true,
			Corrupt:  true,
		}, nil
	}

	return &GetSettingsOutput{
		Settings: decode(raw),
		Found:    true,
	}, nil
}

// decode reads each field on its own so a missing or mistyped field only loses itself
func decode(raw string) *models.Settings {
	settings := models.DefaultSettings()

	if lang := gjson.Get(raw, "language"); lang.Type == gjson.String && lang.Str != "" {
		settings.Language = lang.Str
	}
	if display := gjson.Get(raw, "displayScore"); display.IsBool() {
		settings.DisplayScore = display.Bool()
	}
	if manual := gjson.Get(raw, "manualPoints"); manual.IsBool() {
		settings.ManualPoints = manual.Bool()
	}

	for _, d := range []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard} {
		value := gjson.Get(raw, "points."+string(d))
		if value.Type == gjson.Number && value.Int() >= 0 {
			settings.Points = settings.Points.With(d, int(value.Int()))
		}
	}

	return settings
}

// SaveSettings persists settings to Redis
func (r *redisRepository) SaveSettings(ctx context.Context, input *SaveSettingsInput) error {
	if input == nil || input.Settings == nil {
		return errors.New("input and settings cannot be nil")
	}

	if input.ProfileID == "" {
		return errors.New("profile ID cannot be empty")
	}

	settingsJSON, err := json.Marshal(input.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := r.client.Set(ctx, settingsKey(input.ProfileID), settingsJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// UpdateSettings patches the stored document field by field
func (r *redisRepository) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	if input == nil || input.ProfileID == "" {
		return nil, errors.New("input and profile ID cannot be empty")
	}

	for d, points := range input.Points {
		if !d.IsValid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDifficulty, d)
		}
		if points < 0 {
			return nil, ErrInvalidPoints
		}
	}

	key := settingsKey(input.ProfileID)
	raw, err := r.client.Get(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if !gjson.Valid(raw) {
		raw = "{}"
	}

	patched := raw
	if input.Language != nil {
		if patched, err = sjson.Set(patched, "language", *input.Language); err != nil {
			return nil, fmt.Errorf("failed to set language: %w", err)
		}
	}
	if input.DisplayScore != nil {
		if patched, err = sjson.Set(patched, "displayScore", *input.DisplayScore); err != nil {
			return nil, fmt.Errorf("failed to set display score: %w", err)
		}
	}
	if input.ManualPoints != nil {
		if patched, err = sjson.Set(patched, "manualPoints", *input.ManualPoints); err != nil {
			return nil, fmt.Errorf("failed to set manual points: %w", err)
		}
	}
	for d, points := range input.Points {
		if patched, err = sjson.Set(patched, "points."+string(d), points); err != nil {
			return nil, fmt.Errorf("failed to set %s points: %w", d, err)
		}
	}

	if err := r.client.Set(ctx, key, patched, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	return &UpdateSettingsOutput{
		Settings: decode(patched),
	}, nil
}
