package game

import (
	"context"

	"github.com/KirkDiggler/lightmatch/internal/models"
)

// Service defines the interface for the round controller.
// A service drives a single client; every method is safe for concurrent use.
type Service interface {
	// LoadSettings reads the saved settings for the profile, falling back to defaults
	LoadSettings(ctx context.Context, input *LoadSettingsInput) (*LoadSettingsOutput, error)

	// UpdateSettings changes and persists settings; a running game keeps the values it started with
	UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*UpdateSettingsOutput, error)

	// SelectMode moves from the menu to the setup screen for a mode
	SelectMode(ctx context.Context, input *SelectModeInput) (*SelectModeOutput, error)

	// StartGame builds a session from the setup values and starts round 1
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// SubmitAnswer evaluates the selected label against the highlighted cell
	SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error)

	// RetryGame replays the current setup from round 1 with scores cleared
	RetryGame(ctx context.Context, input *RetryGameInput) (*RetryGameOutput, error)

	// ReturnToMenu abandons the current game and shows the main menu
	ReturnToMenu(ctx context.Context, input *ReturnToMenuInput) (*ReturnToMenuOutput, error)

	// GetState returns a snapshot of the session
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)
}

// Screen identifies a top level view
type Screen string

const (
	ScreenMenu     Screen = "mainMenu"
	ScreenSetup    Screen = "setupScreen"
	ScreenGame     Screen = "gameScreen"
	ScreenResults  Screen = "resultsScreen"
	ScreenSettings Screen = "settingsScreen"
)

// Header is the per-turn status line
type Header struct {
	PlayerName   string
	Score        int
	CurrentRound int
	TotalRounds  int
}

// Feedback describes an evaluated answer
type Feedback struct {
	PlayerName    string
	Correct       bool
	CorrectAnswer string
	Points        int
}

//go:generate mockgen -package=mocks -destination=mocks/mock_renderer.go github.com/KirkDiggler/lightmatch/internal/services/game Renderer

// Renderer draws the game for one client.
// Methods are called with the controller lock held and must not call back
// into the Service; onSelect is meant to be invoked later, from input handling.
type Renderer interface {
	ShowScreen(screen Screen)
	RenderCountdown(value int)
	RenderHeader(header *Header)
	RenderBoard(cells []models.AnswerOption)
	HighlightCell(index int)
	ClearHighlights()
	MarkCellFeedback(index int, feedback models.CellFeedback)
	RenderFeedback(feedback *Feedback)
	ClearFeedback()
	RenderAnswerOptions(options []models.AnswerOption, onSelect func(label string))
	SetControlsEnabled(enabled bool)
	RenderResults(result *models.Result)
}

//go:generate mockgen -package=mocks -destination=mocks/mock_audio.go github.com/KirkDiggler/lightmatch/internal/services/game Audio

// Audio plays sound cues. Playback is fire and forget; a returned error is only logged.
type Audio interface {
	PlayStart() error
	PlayCorrect() error
	PlayWrong() error
	PlayBackgroundMusic() error
	StopBackgroundMusic() error
}

// LabelCatalog supplies board labels and their display form
type LabelCatalog interface {
	Resolve(lang string) string
	Labels(lang string) []string
	Options(lang string, ids []string) []models.AnswerOption
}
