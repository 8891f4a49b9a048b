package ws

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/lightmatch/internal/models"
	"github.com/KirkDiggler/lightmatch/internal/services/game"
	"github.com/KirkDiggler/lightmatch/internal/services/messaging"
)

// CommandType names an inbound message
type CommandType string

const (
	CommandSelectMode     CommandType = "select_mode"
	CommandStartGame      CommandType = "start_game"
	CommandAnswer         CommandType = "answer"
	CommandRetry          CommandType = "retry"
	CommandMenu           CommandType = "menu"
	CommandOpenSettings   CommandType = "open_settings"
	CommandCloseSettings  CommandType = "close_settings"
	CommandUpdateSettings CommandType = "update_settings"
	CommandGetState       CommandType = "get_state"
)

// Command is an inbound client message. Rounds and points arrive as the raw
// text of their input fields and are parsed here.
type Command struct {
	Type       CommandType `json:"type"`
	Mode       string      `json:"mode,omitempty"`
	Names      []string    `json:"names,omitempty"`
	Difficulty string      `json:"difficulty,omitempty"`
	Rounds     string      `json:"rounds,omitempty"`
	Label      string      `json:"label,omitempty"`

	Language     *string           `json:"language,omitempty"`
	DisplayScore *bool             `json:"displayScore,omitempty"`
	ManualPoints *bool             `json:"manualPoints,omitempty"`
	Points       map[string]string `json:"points,omitempty"`
}

// handleCommand decodes and dispatches one client message
func (c *Connection) handleCommand(raw []byte) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		log.Debug().Err(err).Str("connection_id", c.ID).Msg("invalid client message")
		c.emit(EventError, errorPayload{Code: "bad_json", Message: "invalid message"})
		return
	}

	log.Debug().
		Str("connection_id", c.ID).
		Str("command", string(cmd.Type)).
		Msg("received client command")

	var err error
	switch cmd.Type {
	case CommandSelectMode:
		err = c.handleSelectMode(&cmd)
	case CommandStartGame:
		err = c.handleStartGame(&cmd)
	case CommandAnswer:
		if !c.choose(cmd.Label) {
			log.Debug().Str("connection_id", c.ID).Str("label", cmd.Label).Msg("answer not on the board")
		}
	case CommandRetry:
		_, err = c.game.RetryGame(c.ctx, &game.RetryGameInput{})
	case CommandMenu:
		_, err = c.game.ReturnToMenu(c.ctx, &game.ReturnToMenuInput{})
	case CommandOpenSettings:
		c.emit(EventScreen, screenPayload{Screen: game.ScreenSettings})
	case CommandCloseSettings:
		c.emit(EventScreen, screenPayload{Screen: game.ScreenMenu})
	case CommandUpdateSettings:
		err = c.handleUpdateSettings(&cmd)
	case CommandGetState:
		err = c.handleGetState()
	default:
		err = errUnknownCommand
	}

	if err != nil {
		c.emitError(err)
	}
}

var errUnknownCommand = errors.New("unknown command")

func (c *Connection) handleSelectMode(cmd *Command) error {
	out, err := c.game.SelectMode(c.ctx, &game.SelectModeInput{
		Mode: models.GameMode(cmd.Mode),
	})
	if err != nil {
		return err
	}

	payload := setupPayload{
		Mode:             out.Mode,
		DefaultNames:     out.DefaultNames,
		DifficultyLocked: out.DifficultyLocked,
	}
	title, err := c.gateway.messaging.GetSetupTitle(c.ctx, &messaging.GetSetupTitleInput{
		Language: c.currentLanguage(),
		Mode:     out.Mode,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to build setup title")
	} else {
		payload.Title = title.Title
	}

	c.emit(EventSetup, payload)
	return nil
}

func (c *Connection) handleStartGame(cmd *Command) error {
	rounds, err := parseRounds(cmd.Rounds)
	if err != nil {
		return err
	}

	_, err = c.game.StartGame(c.ctx, &game.StartGameInput{
		Mode:       models.GameMode(cmd.Mode),
		Names:      cmd.Names,
		Difficulty: models.Difficulty(cmd.Difficulty),
		Rounds:     rounds,
	})
	return err
}

func (c *Connection) handleUpdateSettings(cmd *Command) error {
	points, err := parsePoints(cmd.Points)
	if err != nil {
		return err
	}

	out, err := c.game.UpdateSettings(c.ctx, &game.UpdateSettingsInput{
		Language:     cmd.Language,
		DisplayScore: cmd.DisplayScore,
		ManualPoints: cmd.ManualPoints,
		Points:       points,
	})
	if err != nil {
		return err
	}

	c.setLanguage(out.Settings.Language)
	c.emit(EventSettings, out.Settings)
	return nil
}

func (c *Connection) handleGetState() error {
	out, err := c.game.GetState(c.ctx, &game.GetStateInput{})
	if err != nil {
		return err
	}

	c.emit(EventState, statePayload{
		Phase:              out.Phase,
		SessionID:          out.SessionID,
		Mode:               out.Mode,
		Difficulty:         out.Difficulty,
		CurrentRound:       out.CurrentRound,
		TotalRounds:        out.TotalRounds,
		CurrentPlayerIndex: out.CurrentPlayerIndex,
		Players:            out.Players,
		Countdown:          out.Countdown,
		Settings:           out.Settings,
	})
	return nil
}

// emitError sends a localized prompt for known validation failures
func (c *Connection) emitError(err error) {
	errorType, known := errorTypeFor(err)
	payload := errorPayload{Code: string(errorType), Message: err.Error()}

	if known {
		out, msgErr := c.gateway.messaging.GetErrorMessage(c.ctx, &messaging.GetErrorMessageInput{
			Language:  c.currentLanguage(),
			ErrorType: errorType,
		})
		if msgErr == nil {
			payload.Message = out.Message
		}
	}

	c.emit(EventError, payload)
}

func errorTypeFor(err error) (messaging.ErrorType, bool) {
	switch {
	case errors.Is(err, game.ErrInvalidRounds):
		return messaging.ErrorTypeInvalidRounds, true
	case errors.Is(err, game.ErrInvalidMode):
		return messaging.ErrorTypeInvalidMode, true
	case errors.Is(err, game.ErrInvalidPoints):
		return messaging.ErrorTypeInvalidPoints, true
	case errors.Is(err, game.ErrNoGame):
		return messaging.ErrorTypeNoGame, true
	}
	return "", false
}

// parseRounds reads the rounds field; anything but a positive whole number is rejected
func parseRounds(text string) (int, error) {
	rounds, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || rounds < 1 {
		return 0, game.ErrInvalidRounds
	}
	return rounds, nil
}

// parsePoints reads the manual point fields keyed by difficulty
func parsePoints(fields map[string]string) (map[models.Difficulty]int, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	points := make(map[models.Difficulty]int, len(fields))
	for name, text := range fields {
		value, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || value < 0 {
			return nil, game.ErrInvalidPoints
		}
		points[models.Difficulty(name)] = value
	}
	return points, nil
}
