package models

import (
	"time"
)

// Difficulty is a difficulty tier
type Difficulty string

const (
	// DifficultyEasy is the slowest highlight
	DifficultyEasy Difficulty = "easy"

	// DifficultyMedium is the default middle tier
	DifficultyMedium Difficulty = "medium"

	// DifficultyHard is the fastest highlight
	DifficultyHard Difficulty = "hard"
)

// IsValid returns true for the known tiers
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// DifficultyProfile is the highlight duration and point award for a tier
type DifficultyProfile struct {
	Time   time.Duration
	Points int
}

// DifficultyProfiles holds a profile per tier
type DifficultyProfiles map[Difficulty]DifficultyProfile

// DefaultDifficultyProfiles returns the built in profiles
func DefaultDifficultyProfiles() DifficultyProfiles {
	return DifficultyProfiles{
		DifficultyEasy:   {Time: 800 * time.Millisecond, Points: 5},
		DifficultyMedium: {Time: 600 * time.Millisecond, Points: 10},
		DifficultyHard:   {Time: 400 * time.Millisecond, Points: 15},
	}
}

// For returns the profile for a tier, falling back to easy
func (p DifficultyProfiles) For(d Difficulty) DifficultyProfile {
	if profile, ok := p[d]; ok {
		return profile
	}
	return DefaultDifficultyProfiles()[DifficultyEasy]
}

// PointTable is the manual point award per tier
type PointTable struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// DefaultPointTable returns the default manual points
func DefaultPointTable() PointTable {
	return PointTable{Easy: 5, Medium: 10, Hard: 15}
}

// For returns the manual points for a tier
func (t PointTable) For(d Difficulty) int {
	switch d {
	case DifficultyMedium:
		return t.Medium
	case DifficultyHard:
		return t.Hard
	default:
		return t.Easy
	}
}

// With returns a copy of the table with one tier changed
func (t PointTable) With(d Difficulty, points int) PointTable {
	switch d {
	case DifficultyMedium:
		t.Medium = points
	case DifficultyHard:
		t.Hard = points
	default:
		t.Easy = points
	}
	return t
}
