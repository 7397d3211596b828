// internal/game/player.go
package game

import "github.com/google/uuid"

// Player is one seat in a room. Hands are owned here exclusively; views only
// ever copy out of them.
type Player struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	IsHost bool      `json:"isHost"`
	Hand   []Card    `json:"-"`
}
