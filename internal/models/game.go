package models

import (
	"time"
)

// GameMode represents how players are arranged in a game
type GameMode string

const (
	// GameModeSolo is a single player game
	GameModeSolo GameMode = "solo"

	// GameModePvP is a player versus player game
	GameModePvP GameMode = "pvp"

	// GameModeTeam is a team versus team game
	GameModeTeam GameMode = "team"
)

// IsValid returns true if the mode is one of the known modes
func (m GameMode) IsValid() bool {
	switch m {
	case GameModeSolo, GameModePvP, GameModeTeam:
		return true
	}
	return false
}

// IsMultiplayer returns true if turns rotate between players
func (m GameMode) IsMultiplayer() bool {
	return m == GameModePvP || m == GameModeTeam
}

// GamePhase represents the screen the game is currently on
type GamePhase string

const (
	// GamePhaseMenu indicates no game is running
	GamePhaseMenu GamePhase = "menu"

	// GamePhaseCountdown indicates the 3-2-1 countdown before a round
	GamePhaseCountdown GamePhase = "countdown"

	// GamePhasePlaying indicates the highlight cycle is running
	GamePhasePlaying GamePhase = "playing"

	// GamePhaseFeedback indicates an answer was submitted and feedback is visible
	GamePhaseFeedback GamePhase = "feedback"

	// GamePhaseResults indicates the game has ended
	GamePhaseResults GamePhase = "results"
)

// Session represents a single running game
type Session struct {
	// ID is the unique identifier for the session
	ID string

	// Mode is how players are arranged
	Mode GameMode

	// Language is the label language for the board
	Language string

	// Difficulty selects the highlight duration and point award
	Difficulty Difficulty

	// Rounds is the total number of rounds
	Rounds int

	// CurrentRound is 1-based once the first round has started
	CurrentRound int

	// Players are the participants in turn order
	Players []*Player

	// CurrentPlayerIndex is the index of the player whose turn it is
	CurrentPlayerIndex int

	// DisplayScore controls whether final scores are shown
	DisplayScore bool

	// ManualPoints selects the points table over the difficulty profile
	ManualPoints bool

	// Points is the manual point award per difficulty
	Points PointTable

	// Phase is the current screen
	Phase GamePhase

	// Board is the board for the current turn
	Board *Board

	// CreatedAt is when the session was started
	CreatedAt time.Time
}

// CurrentPlayer returns the player whose turn it is
func (s *Session) CurrentPlayer() *Player {
	if len(s.Players) == 0 {
		return nil
	}
	return s.Players[s.CurrentPlayerIndex%len(s.Players)]
}

// AwardFor returns the points a correct answer is worth
func (s *Session) AwardFor(profiles DifficultyProfiles) int {
	if s.ManualPoints {
		return s.Points.For(s.Difficulty)
	}
	return profiles.For(s.Difficulty).Points
}

// ResetProgress clears round, turn and score state but keeps the setup
func (s *Session) ResetProgress() {
	s.CurrentRound = 0
	s.CurrentPlayerIndex = 0
	for _, p := range s.Players {
		p.Score = 0
	}
	s.Board.ResetCursor()
}
