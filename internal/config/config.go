package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/lightmatch/internal/models"
)

// Config holds the server configuration
type Config struct {
	ListenAddr     string
	RedisAddr      string
	RedisPassword  string
	LogLevel       zerolog.Level
	GameConfigPath string
	CORSOrigins    []string

	// Game is nil when no game config file is set
	Game *GameConfig
}

// GameConfig tunes pacing and difficulty
type GameConfig struct {
	Difficulty      map[string]DifficultyConfig `yaml:"difficulty"`
	CountdownFrom   int                         `yaml:"countdown_from"`
	CountdownTickMS int                         `yaml:"countdown_tick_ms"`
	FeedbackDelayMS int                         `yaml:"feedback_delay_ms"`
}

// DifficultyConfig overrides one difficulty tier
type DifficultyConfig struct {
	TimeMS int `yaml:"time_ms"`
	Points int `yaml:"points"`
}

// Load reads configuration from the environment, loading a .env file first if present
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		LogLevel:       level,
		GameConfigPath: getEnv("GAME_CONFIG", ""),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if cfg.GameConfigPath != "" {
		game, err := LoadGameConfig(cfg.GameConfigPath)
		if err != nil {
			return nil, err
		}
		cfg.Game = game
	}

	return cfg, nil
}

// LoadGameConfig reads and validates a YAML game config file
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}

	var game GameConfig
	if err := yaml.Unmarshal(data, &game); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	if _, err := game.Profiles(); err != nil {
		return nil, err
	}
	if game.CountdownFrom < 0 || game.CountdownTickMS < 0 || game.FeedbackDelayMS < 0 {
		return nil, fmt.Errorf("game config pacing values cannot be negative")
	}

	return &game, nil
}

// Profiles returns the difficulty overrides as profiles
func (g *GameConfig) Profiles() (models.DifficultyProfiles, error) {
	profiles := make(models.DifficultyProfiles)
	if g == nil {
		return profiles, nil
	}

	for name, d := range g.Difficulty {
		difficulty := models.Difficulty(strings.ToLower(name))
		if !difficulty.IsValid() {
			return nil, fmt.Errorf("unknown difficulty %q in game config", name)
		}
		if d.TimeMS <= 0 {
			return nil, fmt.Errorf("difficulty %q needs a positive time_ms", name)
		}
		if d.Points < 0 {
			return nil, fmt.Errorf("difficulty %q points cannot be negative", name)
		}
		profiles[difficulty] = models.DifficultyProfile{
			Time:   time.Duration(d.TimeMS) * time.Millisecond,
			Points: d.Points,
		}
	}

	return profiles, nil
}

// CountdownTick returns the countdown step, zero when unset
func (g *GameConfig) CountdownTick() time.Duration {
	if g == nil {
		return 0
	}
	return time.Duration(g.CountdownTickMS) * time.Millisecond
}

// FeedbackDelay returns the post-answer pause, zero when unset
func (g *GameConfig) FeedbackDelay() time.Duration {
	if g == nil {
		return 0
	}
	return time.Duration(g.FeedbackDelayMS) * time.Millisecond
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
