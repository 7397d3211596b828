// internal/game/turn.go
package game

import "math/rand"

// pickStartIndex selects the seat index of the first active player.
//
// Turn advancement (direction, skip/reverse/draw effects) belongs to in-game
// play and is not implemented here; a future advance step would live beside
// this with a direction field on the room.
func pickStartIndex(rng *rand.Rand, playerCount int, policy TurnStartPolicy) int {
	if playerCount <= 0 {
		return 0
	}
	switch policy {
	case TurnStartFirstSeat:
		return 0
	default:
		return rng.Intn(playerCount)
	}
}
