package game

import (
	"time"

	"github.com/KirkDiggler/lightmatch/internal/board"
	"github.com/KirkDiggler/lightmatch/internal/common/clock"
	"github.com/KirkDiggler/lightmatch/internal/common/uuid"
	"github.com/KirkDiggler/lightmatch/internal/models"
	leaderboardRepo "github.com/KirkDiggler/lightmatch/internal/repositories/leaderboard"
	settingsRepo "github.com/KirkDiggler/lightmatch/internal/repositories/settings"
)

const (
	// DefaultCountdownFrom is the first number shown before a round
	DefaultCountdownFrom = 3

	// DefaultCountdownTick is the time each countdown number stays up
	DefaultCountdownTick = time.Second

	// DefaultFeedbackDelay is how long answer feedback stays up before the turn advances
	DefaultFeedbackDelay = time.Second

	// DefaultSoloName is used when the solo name field is left blank
	DefaultSoloName = "Player 1"
)

// Config holds the round controller settings and dependencies
type Config struct {
	// ProfileID keys the saved settings for this client
	ProfileID string

	// Profiles overrides the built in difficulty profiles
	Profiles models.DifficultyProfiles

	// CountdownFrom overrides the countdown start value
	CountdownFrom int

	// CountdownTick overrides the countdown step
	CountdownTick time.Duration

	// FeedbackDelay overrides the pause after an answer
	FeedbackDelay time.Duration

	// Repository dependencies
	SettingsRepo    settingsRepo.Repository
	LeaderboardRepo leaderboardRepo.Repository

	// Service dependencies
	Sampler       board.Sampler
	Catalog       LabelCatalog
	Renderer      Renderer
	Audio         Audio
	Clock         clock.Clock
	UUIDGenerator uuid.Generator
}

// LoadSettingsInput contains parameters for loading settings
type LoadSettingsInput struct{}

// LoadSettingsOutput contains the loaded settings
type LoadSettingsOutput struct {
	Settings *models.Settings

	// Found is false when nothing was saved and defaults were used
	Found bool
}

// UpdateSettingsInput changes only the fields that are set
type UpdateSettingsInput struct {
	Language     *string
	DisplayScore *bool
	ManualPoints *bool

	// Points sets the manual award for individual tiers
	Points map[models.Difficulty]int
}

// UpdateSettingsOutput contains the settings after the update
type UpdateSettingsOutput struct {
	Settings *models.Settings

	// Persisted is false when the settings store could not be written
	Persisted bool
}

// SelectModeInput contains the mode chosen on the menu
type SelectModeInput struct {
	Mode models.GameMode
}

// SelectModeOutput describes the setup screen for the mode
type SelectModeOutput struct {
	Mode models.GameMode

	// DefaultNames are the placeholder names for the name fields
	DefaultNames []string

	// DifficultyLocked is true when the mode always plays on easy
	DifficultyLocked bool
}

// StartGameInput contains the setup screen values
type StartGameInput struct {
	Mode models.GameMode

	// Names are the player or team names in turn order; blanks take defaults
	Names []string

	// Difficulty applies to solo games; pvp and team always play on easy
	Difficulty models.Difficulty

	// Rounds is the number of rounds, at least 1
	Rounds int
}

// StartGameOutput contains the created session
type StartGameOutput struct {
	SessionID  string
	Mode       models.GameMode
	Difficulty models.Difficulty
	Rounds     int
	Players    []models.PlayerResult
}

// SubmitAnswerInput contains the selected answer
type SubmitAnswerInput struct {
	Label string
}

// SubmitAnswerOutput contains the evaluation of an answer
type SubmitAnswerOutput struct {
	Correct       bool
	CorrectAnswer string
	PointsAwarded int
	PlayerName    string
	Score         int
}

// RetryGameInput contains parameters for a retry
type RetryGameInput struct{}

// RetryGameOutput contains the restarted session id
type RetryGameOutput struct {
	SessionID string
}

// ReturnToMenuInput contains parameters for returning to the menu
type ReturnToMenuInput struct{}

// ReturnToMenuOutput is empty
type ReturnToMenuOutput struct{}

// GetStateInput contains parameters for a state snapshot
type GetStateInput struct{}

// GetStateOutput is a copy of the session state
type GetStateOutput struct {
	Phase              models.GamePhase
	SelectedMode       models.GameMode
	SessionID          string
	Mode               models.GameMode
	Difficulty         models.Difficulty
	Language           string
	CurrentRound       int
	TotalRounds        int
	CurrentPlayerIndex int
	Players            []models.PlayerResult

	// Countdown is the number on screen during the countdown, 0 otherwise
	Countdown int

	// Board is nil until the first board is set up
	Board *models.Board

	// Result is set once the game has ended
	Result *models.Result

	Settings *models.Settings
}
