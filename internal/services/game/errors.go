package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNoGame              GameError = "no game in progress"
	ErrInvalidMode         GameError = "invalid game mode"
	ErrInvalidRounds       GameError = "rounds must be at least 1"
	ErrInvalidDifficulty   GameError = "invalid difficulty"
	ErrInvalidPoints       GameError = "points cannot be negative"
	ErrInvalidLanguage     GameError = "language is not in the label catalog"
	ErrNotAcceptingAnswers GameError = "answers are only accepted while the highlight is cycling"
	ErrNilInput            GameError = "input cannot be nil"
	ErrNilConfig           GameError = "config cannot be nil"
	ErrNilSettingsRepo     GameError = "settings repository cannot be nil"
	ErrNilLeaderboardRepo  GameError = "leaderboard repository cannot be nil"
	ErrNilSampler          GameError = "board sampler cannot be nil"
	ErrNilCatalog          GameError = "label catalog cannot be nil"
	ErrNilRenderer         GameError = "renderer cannot be nil"
	ErrNilAudio            GameError = "audio cannot be nil"
	ErrNilClock            GameError = "clock cannot be nil"
	ErrNilUUIDGenerator    GameError = "UUID generator cannot be nil"
	ErrMissingProfileID    GameError = "profile ID cannot be empty"
)
