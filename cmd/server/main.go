package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/lightmatch/internal/board"
	"github.com/KirkDiggler/lightmatch/internal/catalog"
	"github.com/KirkDiggler/lightmatch/internal/common/clock"
	"github.com/KirkDiggler/lightmatch/internal/common/uuid"
	"github.com/KirkDiggler/lightmatch/internal/config"
	"github.com/KirkDiggler/lightmatch/internal/handlers/httpapi"
	"github.com/KirkDiggler/lightmatch/internal/handlers/ws"
	leaderboardRepo "github.com/KirkDiggler/lightmatch/internal/repositories/leaderboard"
	settingsRepo "github.com/KirkDiggler/lightmatch/internal/repositories/settings"
	"github.com/KirkDiggler/lightmatch/internal/services/game"
	"github.com/KirkDiggler/lightmatch/internal/services/messaging"
)

func main() {
	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("redis_addr", cfg.RedisAddr).Msg("failed to connect to Redis")
	}

	// Initialize repositories
	settings, err := settingsRepo.NewRedis(&settingsRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create settings repository")
	}

	leaderboard, err := leaderboardRepo.NewRedis(&leaderboardRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create leaderboard repository")
	}

	labels, err := catalog.New(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load label catalog")
	}

	messages, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create messaging service")
	}

	profiles, err := cfg.Game.Profiles()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid difficulty config")
	}
	countdownFrom := 0
	if cfg.Game != nil {
		countdownFrom = cfg.Game.CountdownFrom
	}

	randomizer := board.New(&board.Config{})
	realClock := clock.New()
	ids := uuid.New()

	connConfig := ws.DefaultConnectionConfig()
	connConfig.CheckOrigin = allowOrigin(cfg.CORSOrigins)

	gateway, err := ws.New(&ws.Config{
		Connection:    connConfig,
		Messaging:     messages,
		UUIDGenerator: ids,
		NewSession: func(profileID string, renderer game.Renderer, audio game.Audio) (game.Service, error) {
			return game.New(&game.Config{
				ProfileID:       profileID,
				Profiles:        profiles,
				CountdownFrom:   countdownFrom,
				CountdownTick:   cfg.Game.CountdownTick(),
				FeedbackDelay:   cfg.Game.FeedbackDelay(),
				SettingsRepo:    settings,
				LeaderboardRepo: leaderboard,
				Sampler:         randomizer,
				Catalog:         labels,
				Renderer:        renderer,
				Audio:           audio,
				Clock:           realClock,
				UUIDGenerator:   ids,
			})
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create gateway")
	}

	api, err := httpapi.New(&httpapi.Config{
		Gateway:         gateway,
		SettingsRepo:    settings,
		LeaderboardRepo: leaderboard,
		Catalog:         labels,
		AllowedOrigins:  cfg.CORSOrigins,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP server")
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("redis_addr", cfg.RedisAddr).
			Strs("languages", labels.Languages()).
			Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	// Hijacked WebSocket connections are not closed by Shutdown
	gateway.Close()

	log.Info().Msg("server shutdown complete")
}

// allowOrigin checks WebSocket origins against the CORS list
func allowOrigin(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(r *http.Request) bool { return true }
		}
		allowed[o] = true
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}
