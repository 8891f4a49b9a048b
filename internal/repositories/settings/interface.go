package settings

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lightmatch/internal/repositories/settings Repository

import (
	"context"
)

// Repository defines the interface for settings persistence
type Repository interface {
	// GetSettings retrieves a profile's settings, falling back to defaults per field
	GetSettings(ctx context.Context, input *GetSettingsInput) (*GetSettingsOutput, error)

	// SaveSettings replaces a profile's settings
	SaveSettings(ctx context.Context, input *SaveSettingsInput) error

	// UpdateSettings changes only the provided fields and returns the result
	UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*UpdateSettingsOutput, error)
}
