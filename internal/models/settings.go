package models

// DefaultLanguage is used when no language has been saved
const DefaultLanguage = "pt"

// Settings are the preferences that survive returning to the menu
type Settings struct {
	Language     string     `json:"language"`
	DisplayScore bool       `json:"displayScore"`
	ManualPoints bool       `json:"manualPoints"`
	Points       PointTable `json:"points"`
}

// DefaultSettings returns the settings used when nothing has been saved
func DefaultSettings() *Settings {
	return &Settings{
		Language:     DefaultLanguage,
		DisplayScore: true,
		ManualPoints: false,
		Points:       DefaultPointTable(),
	}
}
