package game

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/lightmatch/internal/board"
	"github.com/KirkDiggler/lightmatch/internal/common/clock"
	"github.com/KirkDiggler/lightmatch/internal/common/uuid"
	"github.com/KirkDiggler/lightmatch/internal/models"
	leaderboardRepo "github.com/KirkDiggler/lightmatch/internal/repositories/leaderboard"
	settingsRepo "github.com/KirkDiggler/lightmatch/internal/repositories/settings"
	"github.com/KirkDiggler/lightmatch/internal/services/cycle"
)

// recordTimeout bounds the leaderboard write at the end of a game
const recordTimeout = 2 * time.Second

// service implements the Service interface.
//
// The countdown and the feedback delay share one pending timer. Each timer
// captures the epoch it was scheduled in and only acts if the epoch is still
// current, so leaving a phase early cancels whatever it had queued.
type service struct {
	mu sync.Mutex

	profileID     string
	profiles      models.DifficultyProfiles
	countdownFrom int
	countdownTick time.Duration
	feedbackDelay time.Duration

	settingsRepo    settingsRepo.Repository
	leaderboardRepo leaderboardRepo.Repository
	sampler         board.Sampler
	catalog         LabelCatalog
	renderer        Renderer
	audio           Audio
	clock           clock.Clock
	uuidGenerator   uuid.Generator

	settings  *models.Settings
	selected  models.GameMode
	session   *models.Session
	cycle     *cycle.Cycle
	countdown int
	result    *models.Result

	pending clockwork.Timer
	epoch   uint64
}

// New creates a new round controller
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.ProfileID == "" {
		return nil, ErrMissingProfileID
	}
	if cfg.SettingsRepo == nil {
		return nil, ErrNilSettingsRepo
	}
	if cfg.LeaderboardRepo == nil {
		return nil, ErrNilLeaderboardRepo
	}
	if cfg.Sampler == nil {
		return nil, ErrNilSampler
	}
	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}
	if cfg.Renderer == nil {
		return nil, ErrNilRenderer
	}
	if cfg.Audio == nil {
		return nil, ErrNilAudio
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	profiles := models.DefaultDifficultyProfiles()
	for d, p := range cfg.Profiles {
		profiles[d] = p
	}

	s := &service{
		profileID:       cfg.ProfileID,
		profiles:        profiles,
		countdownFrom:   DefaultCountdownFrom,
		countdownTick:   DefaultCountdownTick,
		feedbackDelay:   DefaultFeedbackDelay,
		settingsRepo:    cfg.SettingsRepo,
		leaderboardRepo: cfg.LeaderboardRepo,
		sampler:         cfg.Sampler,
		catalog:         cfg.Catalog,
		renderer:        cfg.Renderer,
		audio:           cfg.Audio,
		clock:           cfg.Clock,
		uuidGenerator:   cfg.UUIDGenerator,
		settings:        models.DefaultSettings(),
	}
	if cfg.CountdownFrom > 0 {
		s.countdownFrom = cfg.CountdownFrom
	}
	if cfg.CountdownTick > 0 {
		s.countdownTick = cfg.CountdownTick
	}
	if cfg.FeedbackDelay > 0 {
		s.feedbackDelay = cfg.FeedbackDelay
	}

	return s, nil
}

// LoadSettings reads the saved settings for the profile, falling back to defaults
func (s *service) LoadSettings(ctx context.Context, input *LoadSettingsInput) (*LoadSettingsOutput, error) {
	out, err := s.settingsRepo.GetSettings(ctx, &settingsRepo.GetSettingsInput{
		ProfileID: s.profileID,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Str("profile", s.profileID).Msg("could not load settings, using defaults")
		s.settings = models.DefaultSettings()
		s.settings.Language = s.catalog.Resolve(s.settings.Language)
		return &LoadSettingsOutput{Settings: s.copySettings()}, nil
	}
	if out.Corrupt {
		log.Warn().Str("profile", s.profileID).Msg("stored settings were unreadable, using defaults")
	}

	loaded := *models.DefaultSettings()
	if out.Settings != nil {
		loaded = *out.Settings
	}
	loaded.Language = s.catalog.Resolve(loaded.Language)
	s.settings = &loaded

	return &LoadSettingsOutput{
		Settings: s.copySettings(),
		Found:    out.Found,
	}, nil
}

// UpdateSettings changes and persists settings
func (s *service) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	for d, points := range input.Points {
		if !d.IsValid() {
			return nil, ErrInvalidDifficulty
		}
		if points < 0 {
			return nil, ErrInvalidPoints
		}
	}

	s.mu.Lock()
	next := *s.settings
	if input.Language != nil {
		lang := s.catalog.Resolve(*input.Language)
		if lang != *input.Language {
			s.mu.Unlock()
			return nil, ErrInvalidLanguage
		}
		next.Language = lang
	}
	if input.DisplayScore != nil {
		next.DisplayScore = *input.DisplayScore
	}
	if input.ManualPoints != nil {
		next.ManualPoints = *input.ManualPoints
	}
	for d, points := range input.Points {
		next.Points = next.Points.With(d, points)
	}
	s.settings = &next
	updated := s.copySettings()
	s.mu.Unlock()

	persisted := true
	_, err := s.settingsRepo.UpdateSettings(ctx, &settingsRepo.UpdateSettingsInput{
		ProfileID:    s.profileID,
		Language:     input.Language,
		DisplayScore: input.DisplayScore,
		ManualPoints: input.ManualPoints,
		Points:       input.Points,
	})
	if err != nil {
		log.Warn().Err(err).Str("profile", s.profileID).Msg("could not persist settings")
		persisted = false
	}

	return &UpdateSettingsOutput{
		Settings:  updated,
		Persisted: persisted,
	}, nil
}

// SelectMode moves from the menu to the setup screen for a mode
func (s *service) SelectMode(ctx context.Context, input *SelectModeInput) (*SelectModeOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if !input.Mode.IsValid() {
		return nil, ErrInvalidMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = input.Mode
	s.renderer.ShowScreen(ScreenSetup)

	return &SelectModeOutput{
		Mode:             input.Mode,
		DefaultNames:     defaultNames(input.Mode),
		DifficultyLocked: input.Mode.IsMultiplayer(),
	}, nil
}

// StartGame builds a session from the setup values and starts round 1
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if !input.Mode.IsValid() {
		return nil, ErrInvalidMode
	}
	if input.Rounds < 1 {
		return nil, ErrInvalidRounds
	}

	difficulty := models.DifficultyEasy
	if input.Mode == models.GameModeSolo && input.Difficulty != "" {
		if !input.Difficulty.IsValid() {
			return nil, ErrInvalidDifficulty
		}
		difficulty = input.Difficulty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.teardown()

	session := &models.Session{
		ID:           s.uuidGenerator.NewUUID(),
		Mode:         input.Mode,
		Language:     s.catalog.Resolve(s.settings.Language),
		Difficulty:   difficulty,
		Rounds:       input.Rounds,
		Players:      buildPlayers(input.Mode, input.Names),
		DisplayScore: s.settings.DisplayScore,
		ManualPoints: s.settings.ManualPoints,
		Points:       s.settings.Points,
		Phase:        models.GamePhaseCountdown,
		CreatedAt:    s.clock.Now(),
	}

	c, err := cycle.New(&cycle.Config{
		Clock:   s.clock,
		Display: s.renderer,
	})
	if err != nil {
		return nil, err
	}

	s.session = session
	s.cycle = c
	s.selected = input.Mode

	log.Info().
		Str("session", session.ID).
		Str("mode", string(session.Mode)).
		Str("difficulty", string(session.Difficulty)).
		Int("rounds", session.Rounds).
		Msg("game started")

	s.startRound()

	return &StartGameOutput{
		SessionID:  session.ID,
		Mode:       session.Mode,
		Difficulty: session.Difficulty,
		Rounds:     session.Rounds,
		Players:    standings(session.Players),
	}, nil
}

// SubmitAnswer evaluates the selected label against the highlighted cell
func (s *service) SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoGame
	}
	if s.session.Phase != models.GamePhasePlaying {
		return nil, ErrNotAcceptingAnswers
	}

	snap := s.cycle.Pause()
	s.session.Board.Cursor = snap.Cursor
	s.session.Board.CorrectAnswer = snap.CorrectAnswer
	s.session.Phase = models.GamePhaseFeedback
	s.renderer.SetControlsEnabled(false)

	player := s.session.CurrentPlayer()
	correct := input.Label == snap.CorrectAnswer
	awarded := 0

	feedback := models.CellFeedbackWrong
	if correct {
		feedback = models.CellFeedbackCorrect
		awarded = s.session.AwardFor(s.profiles)
		player.AddPoints(awarded)
		s.play("correct", s.audio.PlayCorrect)
	} else {
		s.play("wrong", s.audio.PlayWrong)
	}
	if snap.Highlighted >= 0 {
		s.renderer.MarkCellFeedback(snap.Highlighted, feedback)
	}
	s.renderer.RenderFeedback(&Feedback{
		PlayerName:    player.Name,
		Correct:       correct,
		CorrectAnswer: snap.CorrectAnswer,
		Points:        awarded,
	})
	s.renderHeader()

	log.Debug().
		Str("session", s.session.ID).
		Str("player", player.Name).
		Str("answer", input.Label).
		Str("expected", snap.CorrectAnswer).
		Bool("correct", correct).
		Msg("answer submitted")

	s.schedule(s.feedbackDelay, s.advanceTurn)

	return &SubmitAnswerOutput{
		Correct:       correct,
		CorrectAnswer: snap.CorrectAnswer,
		PointsAwarded: awarded,
		PlayerName:    player.Name,
		Score:         player.Score,
	}, nil
}

// RetryGame replays the current setup from round 1 with scores cleared
func (s *service) RetryGame(ctx context.Context, input *RetryGameInput) (*RetryGameOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoGame
	}

	s.teardown()

	c, err := cycle.New(&cycle.Config{
		Clock:   s.clock,
		Display: s.renderer,
	})
	if err != nil {
		return nil, err
	}
	s.cycle = c
	s.result = nil
	s.session.ResetProgress()

	log.Info().Str("session", s.session.ID).Msg("game restarted")

	s.startRound()

	return &RetryGameOutput{SessionID: s.session.ID}, nil
}

// ReturnToMenu abandons the current game and shows the main menu
func (s *service) ReturnToMenu(ctx context.Context, input *ReturnToMenuInput) (*ReturnToMenuOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil && s.session.Phase != models.GamePhaseResults {
		s.play("stop music", s.audio.StopBackgroundMusic)
	}
	s.teardown()
	s.session = nil
	s.cycle = nil
	s.result = nil
	s.renderer.ShowScreen(ScreenMenu)

	return &ReturnToMenuOutput{}, nil
}

// GetState returns a snapshot of the session
func (s *service) GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := &GetStateOutput{
		Phase:        models.GamePhaseMenu,
		SelectedMode: s.selected,
		Settings:     s.copySettings(),
	}
	if s.session == nil {
		return out, nil
	}

	out.Phase = s.session.Phase
	out.SessionID = s.session.ID
	out.Mode = s.session.Mode
	out.Difficulty = s.session.Difficulty
	out.Language = s.session.Language
	out.CurrentRound = s.session.CurrentRound
	out.TotalRounds = s.session.Rounds
	out.CurrentPlayerIndex = s.session.CurrentPlayerIndex
	out.Players = standings(s.session.Players)
	out.Countdown = s.countdown
	out.Result = s.result

	if s.session.Board != nil {
		b := *s.session.Board
		b.Cells = append([]string(nil), b.Cells...)
		b.Options = append([]string(nil), b.Options...)
		if s.session.Phase == models.GamePhasePlaying {
			snap := s.cycle.Snapshot()
			b.Cursor = snap.Cursor
			b.CorrectAnswer = snap.CorrectAnswer
		}
		out.Board = &b
	}

	return out, nil
}

// startRound advances the round counter and runs the countdown
func (s *service) startRound() {
	s.session.CurrentRound++
	s.session.CurrentPlayerIndex = 0
	s.session.Board.ResetCursor()
	s.session.Phase = models.GamePhaseCountdown
	s.renderer.ShowScreen(ScreenGame)
	s.countdownStep(s.countdownFrom)
}

func (s *service) countdownStep(n int) {
	if n <= 0 {
		s.countdown = 0
		s.beginTurn(true)
		return
	}

	s.countdown = n
	s.renderer.RenderCountdown(n)
	s.schedule(s.countdownTick, func() {
		s.countdownStep(n - 1)
	})
}

// beginTurn sets up a fresh board and starts the highlight cycle
func (s *service) beginTurn(newRound bool) {
	s.setupBoard()

	if newRound {
		s.play("start", s.audio.PlayStart)
		s.play("background music", s.audio.PlayBackgroundMusic)
	}

	s.session.Phase = models.GamePhasePlaying
	s.renderer.SetControlsEnabled(true)

	profile := s.profiles.For(s.session.Difficulty)
	if err := s.cycle.Start(s.session.Board.Cells, profile.Time); err != nil {
		log.Error().Err(err).Str("session", s.session.ID).Msg("could not start highlight cycle")
	}
}

func (s *service) setupBoard() {
	lang := s.session.Language
	labels := s.catalog.Labels(lang)

	s.session.Board = &models.Board{
		Cells:   s.sampler.Sample(labels, models.BoardSize),
		Options: s.sampler.Shuffle(labels),
	}

	s.renderer.ClearFeedback()
	s.renderer.RenderBoard(s.catalog.Options(lang, s.session.Board.Cells))
	s.renderer.RenderAnswerOptions(s.catalog.Options(lang, s.session.Board.Options), s.onSelect)
	s.renderHeader()
}

// onSelect is handed to the renderer with the answer buttons
func (s *service) onSelect(label string) {
	if _, err := s.SubmitAnswer(context.Background(), &SubmitAnswerInput{Label: label}); err != nil {
		log.Debug().Err(err).Str("answer", label).Msg("answer ignored")
	}
}

// advanceTurn runs when the feedback delay expires
func (s *service) advanceTurn() {
	session := s.session
	s.renderer.ClearFeedback()
	s.renderer.SetControlsEnabled(true)

	if session.Mode.IsMultiplayer() {
		session.CurrentPlayerIndex = (session.CurrentPlayerIndex + 1) % len(session.Players)
		if session.CurrentPlayerIndex != 0 {
			s.beginTurn(false)
			return
		}
	}

	if session.CurrentRound >= session.Rounds {
		s.endGame()
		return
	}
	s.startRound()
}

func (s *service) endGame() {
	s.cycle.Stop()
	s.cancelPending()

	s.renderer.ClearFeedback()
	s.renderer.RenderAnswerOptions(nil, nil)
	s.play("stop music", s.audio.StopBackgroundMusic)

	s.session.Phase = models.GamePhaseResults
	s.result = determineResult(s.session)

	log.Info().
		Str("session", s.session.ID).
		Int("winner", s.result.WinnerIndex).
		Bool("draw", s.result.IsDraw).
		Msg("game finished")

	s.recordResult()

	s.renderer.ShowScreen(ScreenResults)
	s.renderer.RenderResults(s.result)
}

// recordResult adds the final scores to the leaderboard
func (s *service) recordResult() {
	now := s.clock.Now()
	entries := make([]*models.LeaderboardEntry, 0, len(s.session.Players))
	for _, p := range s.session.Players {
		entries = append(entries, &models.LeaderboardEntry{
			ID:         s.uuidGenerator.NewUUID(),
			Name:       p.Name,
			Mode:       s.session.Mode,
			Difficulty: s.session.Difficulty,
			Rounds:     s.session.Rounds,
			Score:      p.Score,
			RecordedAt: now,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := s.leaderboardRepo.AddEntries(ctx, &leaderboardRepo.AddEntriesInput{
		Entries: entries,
	}); err != nil {
		log.Warn().Err(err).Str("session", s.session.ID).Msg("could not record leaderboard entries")
	}
}

func (s *service) renderHeader() {
	player := s.session.CurrentPlayer()
	s.renderer.RenderHeader(&Header{
		PlayerName:   player.Name,
		Score:        player.Score,
		CurrentRound: s.session.CurrentRound,
		TotalRounds:  s.session.Rounds,
	})
}

// schedule replaces the pending timer; fn runs with the lock held
func (s *service) schedule(d time.Duration, fn func()) {
	s.cancelPending()
	epoch := s.epoch
	s.pending = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if epoch != s.epoch || s.session == nil {
			return
		}
		s.pending = nil
		fn()
	})
}

func (s *service) cancelPending() {
	s.epoch++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// teardown stops every timer the current game owns
func (s *service) teardown() {
	s.cancelPending()
	s.countdown = 0
	if s.cycle != nil {
		s.cycle.Stop()
	}
}

func (s *service) play(sound string, fn func() error) {
	if err := fn(); err != nil {
		log.Warn().Err(err).Str("sound", sound).Msg("audio playback failed")
	}
}

func (s *service) copySettings() *models.Settings {
	settings := *s.settings
	return &settings
}
