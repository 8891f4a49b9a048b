package settings

import "github.com/KirkDiggler/lightmatch/internal/models"

// GetSettingsInput contains parameters for retrieving settings
type GetSettingsInput struct {
	ProfileID string
}

// GetSettingsOutput contains the retrieved settings
type GetSettingsOutput struct {
	Settings *models.Settings

	// Found is false when nothing was stored for the profile
	Found bool

	// Corrupt is true when the stored value was not valid JSON
	Corrupt bool
}

// SaveSettingsInput contains parameters for saving settings
type SaveSettingsInput struct {
	ProfileID string
	Settings  *models.Settings
}

// UpdateSettingsInput contains the fields to change; nil fields are left alone
type UpdateSettingsInput struct {
	ProfileID    string
	Language     *string
	DisplayScore *bool
	ManualPoints *bool
	Points       map[models.Difficulty]int
}

// UpdateSettingsOutput contains the settings after the update
type UpdateSettingsOutput struct {
	Settings *models.Settings
}
