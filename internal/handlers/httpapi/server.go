package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/lightmatch/internal/catalog"
	"github.com/KirkDiggler/lightmatch/internal/common/uuid"
	"github.com/KirkDiggler/lightmatch/internal/models"
	leaderboardRepo "github.com/KirkDiggler/lightmatch/internal/repositories/leaderboard"
	settingsRepo "github.com/KirkDiggler/lightmatch/internal/repositories/settings"
)

// Config holds the server dependencies
type Config struct {
	// Gateway serves the game WebSocket at /ws
	Gateway http.Handler

	SettingsRepo    settingsRepo.Repository
	LeaderboardRepo leaderboardRepo.Repository
	Catalog         *catalog.Catalog

	// AllowedOrigins for CORS; "*" allows any
	AllowedOrigins []string
}

// Server bundles the router and its dependencies
type Server struct {
	r       *chi.Mux
	handler http.Handler

	settings    settingsRepo.Repository
	leaderboard leaderboardRepo.Repository
	catalog     *catalog.Catalog
}

// New constructs a Server, installs middleware, and registers routes
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Gateway == nil {
		return nil, errors.New("gateway cannot be nil")
	}
	if cfg.SettingsRepo == nil {
		return nil, errors.New("settings repository cannot be nil")
	}
	if cfg.LeaderboardRepo == nil {
		return nil, errors.New("leaderboard repository cannot be nil")
	}
	if cfg.Catalog == nil {
		return nil, errors.New("catalog cannot be nil")
	}

	s := &Server{
		r:           chi.NewRouter(),
		settings:    cfg.SettingsRepo,
		leaderboard: cfg.LeaderboardRepo,
		catalog:     cfg.Catalog,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// The WebSocket outlives any request timeout
	s.r.Handle("/ws", cfg.Gateway)

	s.r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Get("/languages", s.handleLanguages)
		r.Get("/labels", s.handleLabels)
		r.Get("/settings/{profileID}", s.handleGetSettings)
		r.Put("/settings/{profileID}", s.handleReplaceSettings)
		r.Patch("/settings/{profileID}", s.handleUpdateSettings)
		r.Get("/leaderboard", s.handleLeaderboard)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPut,
			http.MethodPatch,
		},
		AllowedHeaders: []string{"*"},
	})
	s.handler = c.Handler(s.r)

	return s, nil
}

// Handler returns the router wrapped with CORS
func (s *Server) Handler() http.Handler { return s.handler }

// Router exposes the internal router
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"languages": s.catalog.Languages()})
}

type labelRes struct {
	Label     string `json:"label"`
	Text      string `json:"text"`
	ImagePath string `json:"imagePath"`
}

// handleLabels lists the labels of a language; lang is negotiated, so pt-BR serves pt
func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	lang := s.catalog.Resolve(r.URL.Query().Get("lang"))

	labels := []labelRes{}
	for _, o := range s.catalog.Options(lang, s.catalog.Labels(lang)) {
		labels = append(labels, labelRes{Label: o.Label, Text: o.Text, ImagePath: o.ImagePath})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"language": lang,
		"labels":   labels,
	})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")
	if !uuid.IsValid(profileID) {
		writeError(w, http.StatusBadRequest, "invalid_profile")
		return
	}

	out, err := s.settings.GetSettings(r.Context(), &settingsRepo.GetSettingsInput{
		ProfileID: profileID,
	})
	if err != nil {
		log.Error().Err(err).Str("profile", profileID).Msg("get settings")
		writeError(w, http.StatusInternalServerError, "settings_unavailable")
		return
	}

	writeJSON(w, http.StatusOK, out.Settings)
}

// handleReplaceSettings stores a whole settings document; absent fields take defaults
func (s *Server) handleReplaceSettings(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")
	if !uuid.IsValid(profileID) {
		writeError(w, http.StatusBadRequest, "invalid_profile")
		return
	}

	settings := models.DefaultSettings()
	if err := json.NewDecoder(r.Body).Decode(settings); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	if s.catalog.Resolve(settings.Language) != settings.Language {
		writeError(w, http.StatusBadRequest, "invalid_language")
		return
	}
	p := settings.Points
	if p.Easy < 0 || p.Medium < 0 || p.Hard < 0 {
		writeError(w, http.StatusBadRequest, "invalid_points")
		return
	}

	err := s.settings.SaveSettings(r.Context(), &settingsRepo.SaveSettingsInput{
		ProfileID: profileID,
		Settings:  settings,
	})
	if err != nil {
		log.Error().Err(err).Str("profile", profileID).Msg("save settings")
		writeError(w, http.StatusInternalServerError, "settings_unavailable")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// updateSettingsReq carries only the fields to change
type updateSettingsReq struct {
	Language     *string        `json:"language"`
	DisplayScore *bool          `json:"displayScore"`
	ManualPoints *bool          `json:"manualPoints"`
	Points       map[string]int `json:"points"`
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")
	if !uuid.IsValid(profileID) {
		writeError(w, http.StatusBadRequest, "invalid_profile")
		return
	}

	var req updateSettingsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	if req.Language != nil && s.catalog.Resolve(*req.Language) != *req.Language {
		writeError(w, http.StatusBadRequest, "invalid_language")
		return
	}

	var points map[models.Difficulty]int
	if len(req.Points) > 0 {
		points = make(map[models.Difficulty]int, len(req.Points))
		for name, value := range req.Points {
			d := models.Difficulty(name)
			if !d.IsValid() {
				writeError(w, http.StatusBadRequest, "invalid_difficulty")
				return
			}
			if value < 0 {
				writeError(w, http.StatusBadRequest, "invalid_points")
				return
			}
			points[d] = value
		}
	}

	out, err := s.settings.UpdateSettings(r.Context(), &settingsRepo.UpdateSettingsInput{
		ProfileID:    profileID,
		Language:     req.Language,
		DisplayScore: req.DisplayScore,
		ManualPoints: req.ManualPoints,
		Points:       points,
	})
	if errors.Is(err, settingsRepo.ErrInvalidPoints) || errors.Is(err, settingsRepo.ErrInvalidDifficulty) {
		writeError(w, http.StatusBadRequest, "invalid_points")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("profile", profileID).Msg("update settings")
		writeError(w, http.StatusInternalServerError, "settings_unavailable")
		return
	}

	writeJSON(w, http.StatusOK, out.Settings)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	difficulty := r.URL.Query().Get("difficulty")
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = n
	}

	out, err := s.leaderboard.GetTopScores(r.Context(), &leaderboardRepo.GetTopScoresInput{
		Difficulty: difficulty,
		Limit:      limit,
	})
	if errors.Is(err, leaderboardRepo.ErrInvalidDifficulty) {
		writeError(w, http.StatusBadRequest, "invalid_difficulty")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("difficulty", difficulty).Msg("get leaderboard")
		writeError(w, http.StatusInternalServerError, "leaderboard_unavailable")
		return
	}

	entries := out.Entries
	if entries == nil {
		entries = []*models.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
