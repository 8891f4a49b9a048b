package leaderboard

import "github.com/KirkDiggler/lightmatch/internal/models"

// DefaultLimit is the number of entries returned when no limit is given
const DefaultLimit = 10

// AddEntriesInput contains the entries to record
type AddEntriesInput struct {
	Entries []*models.LeaderboardEntry
}

// GetTopScoresInput contains parameters for reading the leaderboard
type GetTopScoresInput struct {
	// Difficulty filters entries; empty or "all" returns every tier
	Difficulty string

	// Limit caps the number of entries, DefaultLimit when zero
	Limit int
}

// GetTopScoresOutput contains the highest scores in descending order
type GetTopScoresOutput struct {
	Entries []*models.LeaderboardEntry
}
