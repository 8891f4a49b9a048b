package models

// Player represents a participant in a game; in team mode a player is a team
type Player struct {
	// Name is the display name of the player or team
	Name string

	// Score is the accumulated score, it only ever increases
	Score int
}

// AddPoints increases the player's score; negative awards are ignored
func (p *Player) AddPoints(points int) {
	if points <= 0 {
		return
	}
	p.Score += points
}
