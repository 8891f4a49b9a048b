package messaging

import (
	"github.com/KirkDiggler/lightmatch/internal/models"
)

// ErrorType is a category of rejected user action
type ErrorType string

const (
	// ErrorTypeInvalidRounds is a round count that is not a positive number
	ErrorTypeInvalidRounds ErrorType = "invalid_rounds"

	// ErrorTypeInvalidMode is an unknown game mode
	ErrorTypeInvalidMode ErrorType = "invalid_mode"

	// ErrorTypeInvalidPoints is a manual point value that is not a non-negative number
	ErrorTypeInvalidPoints ErrorType = "invalid_points"

	// ErrorTypeNoGame is an action that needs a running game
	ErrorTypeNoGame ErrorType = "no_game"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Seed makes feedback selection deterministic when non-zero
	Seed int64
}

// GetSetupTitleInput is the input for GetSetupTitle
type GetSetupTitleInput struct {
	Language string
	Mode     models.GameMode
}

// GetSetupTitleOutput is the output for GetSetupTitle
type GetSetupTitleOutput struct {
	Title string
}

// GetResultMessageInput is the input for GetResultMessage
type GetResultMessageInput struct {
	Language string
	Result   *models.Result
}

// GetResultMessageOutput is the output for GetResultMessage
type GetResultMessageOutput struct {
	// Title is the heading of the results screen
	Title string

	// Lines are the score lines in player order
	Lines []string

	// Verdict is the winner or draw line, empty for solo and hidden scores
	Verdict string
}

// GetFeedbackMessageInput is the input for GetFeedbackMessage
type GetFeedbackMessageInput struct {
	Language   string
	PlayerName string
	Correct    bool
	Points     int
}

// GetFeedbackMessageOutput is the output for GetFeedbackMessage
type GetFeedbackMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	Language  string
	ErrorType ErrorType
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
}
