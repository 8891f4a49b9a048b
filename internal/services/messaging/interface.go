package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lightmatch/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetSetupTitle returns the setup screen title for a game mode
	GetSetupTitle(ctx context.Context, input *GetSetupTitleInput) (*GetSetupTitleOutput, error)

	// GetResultMessage returns the results screen text for a finished game
	GetResultMessage(ctx context.Context, input *GetResultMessageInput) (*GetResultMessageOutput, error)

	// GetFeedbackMessage returns a short reaction to an answer
	GetFeedbackMessage(ctx context.Context, input *GetFeedbackMessageInput) (*GetFeedbackMessageOutput, error)

	// GetErrorMessage returns a user-facing prompt for a rejected action
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
