package models

import (
	"time"
)

// PlayerResult is a player's final standing
type PlayerResult struct {
	// Name is the display name of the player
	Name string `json:"name"`

	// Score is the final score
	Score int `json:"score"`
}

// Result is the outcome of a finished game
type Result struct {
	// SessionID is the session that produced the result
	SessionID string

	// Mode is the mode the game was played in
	Mode GameMode

	// Difficulty is the tier the game was played at
	Difficulty Difficulty

	// Players are the final standings in turn order
	Players []PlayerResult

	// WinnerIndex is the index of the single winner, -1 for solo or a draw
	WinnerIndex int

	// IsDraw is true when no single player has the top score
	IsDraw bool

	// TopScorers are the indices of every player sharing the top score
	TopScorers []int

	// ScoresHidden mirrors the display score setting
	ScoresHidden bool
}

// Winner returns the winning player or nil
func (r *Result) Winner() *PlayerResult {
	if r == nil || r.WinnerIndex < 0 || r.WinnerIndex >= len(r.Players) {
		return nil
	}
	return &r.Players[r.WinnerIndex]
}

// LeaderboardEntry is one recorded score
type LeaderboardEntry struct {
	// ID is the unique identifier for the entry
	ID string `json:"id"`

	// Name is the display name of the player
	Name string `json:"name"`

	// Mode is the mode the score was made in
	Mode GameMode `json:"mode"`

	// Difficulty is the tier the score was made at
	Difficulty Difficulty `json:"difficulty"`

	// Rounds is the number of rounds played
	Rounds int `json:"rounds"`

	// Score is the final score
	Score int `json:"score"`

	// RecordedAt is when the game ended
	RecordedAt time.Time `json:"recordedAt"`
}
