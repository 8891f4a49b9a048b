package leaderboard

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lightmatch/internal/repositories/leaderboard Repository

import (
	"context"
)

// Repository defines the interface for recorded scores
type Repository interface {
	// AddEntries records final scores
	AddEntries(ctx context.Context, input *AddEntriesInput) error

	// GetTopScores returns the highest scores, optionally for one difficulty
	GetTopScores(ctx context.Context, input *GetTopScoresInput) (*GetTopScoresOutput, error)
}
