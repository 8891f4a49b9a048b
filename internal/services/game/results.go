package game

import (
	"strings"

	"github.com/KirkDiggler/lightmatch/internal/models"
)

// defaultNames returns the placeholder names for a mode
func defaultNames(mode models.GameMode) []string {
	switch mode {
	case models.GameModePvP:
		return []string{"Player 1", "Player 2"}
	case models.GameModeTeam:
		return []string{"Team 1", "Team 2"}
	default:
		return []string{DefaultSoloName}
	}
}

// buildPlayers pairs the entered names with the mode defaults
func buildPlayers(mode models.GameMode, names []string) []*models.Player {
	defaults := defaultNames(mode)
	players := make([]*models.Player, 0, len(defaults))
	for i, fallback := range defaults {
		name := fallback
		if i < len(names) {
			if trimmed := strings.TrimSpace(names[i]); trimmed != "" {
				name = trimmed
			}
		}
		players = append(players, &models.Player{Name: name})
	}
	return players
}

// standings copies the players' names and scores in turn order
func standings(players []*models.Player) []models.PlayerResult {
	out := make([]models.PlayerResult, 0, len(players))
	for _, p := range players {
		out = append(out, models.PlayerResult{Name: p.Name, Score: p.Score})
	}
	return out
}

// determineResult works out the winner of a finished session.
// Any tie for the top score is a draw, however many players share it.
func determineResult(session *models.Session) *models.Result {
	result := &models.Result{
		SessionID:    session.ID,
		Mode:         session.Mode,
		Difficulty:   session.Difficulty,
		Players:      standings(session.Players),
		WinnerIndex:  -1,
		ScoresHidden: !session.DisplayScore,
	}

	if len(result.Players) == 0 {
		return result
	}

	best := result.Players[0].Score
	for _, p := range result.Players[1:] {
		if p.Score > best {
			best = p.Score
		}
	}
	for i, p := range result.Players {
		if p.Score == best {
			result.TopScorers = append(result.TopScorers, i)
		}
	}

	if session.Mode == models.GameModeSolo {
		return result
	}

	if len(result.TopScorers) == 1 {
		result.WinnerIndex = result.TopScorers[0]
	} else {
		result.IsDraw = true
	}

	return result
}
