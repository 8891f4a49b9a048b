package ws

import (
	"github.com/KirkDiggler/lightmatch/internal/models"
	"github.com/KirkDiggler/lightmatch/internal/services/game"
)

// EventType names an outbound message
type EventType string

const (
	EventHello           EventType = "hello"
	EventScreen          EventType = "screen"
	EventSetup           EventType = "setup"
	EventCountdown       EventType = "countdown"
	EventHeader          EventType = "header"
	EventBoard           EventType = "board"
	EventHighlight       EventType = "highlight"
	EventClearHighlights EventType = "clear_highlights"
	EventCellFeedback    EventType = "cell_feedback"
	EventClearFeedback   EventType = "clear_feedback"
	EventFeedback        EventType = "feedback"
	EventOptions         EventType = "options"
	EventControls        EventType = "controls"
	EventResults         EventType = "results"
	EventSound           EventType = "sound"
	EventSettings        EventType = "settings"
	EventState           EventType = "state"
	EventError           EventType = "error"
)

// Event is the envelope for every outbound message
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type helloPayload struct {
	ProfileID string           `json:"profileId"`
	Settings  *models.Settings `json:"settings"`
}

type screenPayload struct {
	Screen game.Screen `json:"screen"`
}

type setupPayload struct {
	Mode             models.GameMode `json:"mode"`
	Title            string          `json:"title"`
	DefaultNames     []string        `json:"defaultNames"`
	DifficultyLocked bool            `json:"difficultyLocked"`
}

type countdownPayload struct {
	Value int `json:"value"`
}

type headerPayload struct {
	PlayerName   string `json:"playerName"`
	Score        int    `json:"score"`
	CurrentRound int    `json:"currentRound"`
	TotalRounds  int    `json:"totalRounds"`
}

type optionPayload struct {
	Label     string `json:"label"`
	Text      string `json:"text"`
	ImagePath string `json:"imagePath"`
}

type boardPayload struct {
	Cells []optionPayload `json:"cells"`
}

type cellPayload struct {
	Index    int                 `json:"index"`
	Feedback models.CellFeedback `json:"feedback,omitempty"`
}

type feedbackPayload struct {
	Message       string `json:"message"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Points        int    `json:"points"`
}

type optionsPayload struct {
	Options []optionPayload `json:"options"`
}

type controlsPayload struct {
	Enabled bool `json:"enabled"`
}

type resultsPayload struct {
	Title       string   `json:"title"`
	Lines       []string `json:"lines"`
	Verdict     string   `json:"verdict,omitempty"`
	WinnerIndex int      `json:"winnerIndex"`
	IsDraw      bool     `json:"isDraw"`
}

type soundPayload struct {
	Sound  string `json:"sound"`
	Action string `json:"action"`
}

type statePayload struct {
	Phase              models.GamePhase      `json:"phase"`
	SessionID          string                `json:"sessionId,omitempty"`
	Mode               models.GameMode       `json:"mode,omitempty"`
	Difficulty         models.Difficulty     `json:"difficulty,omitempty"`
	CurrentRound       int                   `json:"currentRound"`
	TotalRounds        int                   `json:"totalRounds"`
	CurrentPlayerIndex int                   `json:"currentPlayerIndex"`
	Players            []models.PlayerResult `json:"players,omitempty"`
	Countdown          int                   `json:"countdown,omitempty"`
	Settings           *models.Settings      `json:"settings"`
}

type errorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func toOptionPayloads(options []models.AnswerOption) []optionPayload {
	out := make([]optionPayload, 0, len(options))
	for _, o := range options {
		out = append(out, optionPayload{Label: o.Label, Text: o.Text, ImagePath: o.ImagePath})
	}
	return out
}
