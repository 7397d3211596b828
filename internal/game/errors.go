// internal/game/errors.go
package game

import "errors"

// Validation errors are client-correctable and are only ever delivered to the
// connection that triggered them, never broadcast to the room.
var (
	ErrAlreadyStarted   = errors.New("game already started")
	ErrAlreadyJoined    = errors.New("player already joined this room")
	ErrRoomFull         = errors.New("room is full")
	ErrNotEnoughPlayers = errors.New("not enough players to start")

	// ErrNotHost replaces the silent no-op the old server performed when a
	// non-host asked to start. The room itself still sees nothing.
	ErrNotHost = errors.New("only the host can start the game")

	ErrRoomNotFound = errors.New("room not found")
)

// Resource errors cannot occur with the stock 108-card deck and a 6-player,
// 7-card deal, but the checks exist for alternate Rules configurations. A
// failed Start leaves the room in the lobby.
var (
	ErrDeckExhausted = errors.New("deck exhausted during deal")
	ErrEmptyDeck     = errors.New("deck emptied before a starting card was found")
)
