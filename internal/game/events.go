// internal/game/events.go
package game

import "github.com/google/uuid"

// EventType is an enum-like type for outbound room notifications.
type EventType string

const (
	// Room-wide events.
	EventPlayerList  EventType = "player_list"  // current public player list
	EventFirstCard   EventType = "first_card"   // starting discard card
	EventGameStarted EventType = "game_started" // room transitioned to active
	EventTurnUpdate  EventType = "turn_update"  // id of the first active player
	EventGameState   EventType = "game_state"   // full public view

	// Caller-only events.
	EventYourHand EventType = "your_hand" // the recipient's private hand

	EventGameAlreadyStarted EventType = "game_already_started"
	EventAlreadyJoined      EventType = "already_joined"
	EventRoomFull           EventType = "room_full"
	EventNotEnoughPlayers   EventType = "not_enough_players"
	EventNotHost            EventType = "not_host"
	EventRoomNotFound       EventType = "room_not_found"
	EventError              EventType = "error" // catch-all with message
)

// Event is the single outbound message shape. Exactly one of the optional
// payload fields is set, depending on Type.
type Event struct {
	Type EventType `json:"type"`

	Players         []PlayerSummary `json:"players,omitempty"`         // player_list
	Hand            []Card          `json:"hand,omitempty"`            // your_hand
	Card            *Card           `json:"card,omitempty"`            // first_card
	CurrentPlayerID string          `json:"currentPlayerId,omitempty"` // turn_update
	State           *PublicView     `json:"state,omitempty"`           // game_state
	Message         string          `json:"message,omitempty"`         // error variants
}

// ErrorEvent maps a Join/Start failure to its caller-only event. Unknown
// errors fall through to the generic error type.
func ErrorEvent(err error) Event {
	var typ EventType
	switch err {
	case ErrAlreadyStarted:
		typ = EventGameAlreadyStarted
	case ErrAlreadyJoined:
		typ = EventAlreadyJoined
	case ErrRoomFull:
		typ = EventRoomFull
	case ErrNotEnoughPlayers:
		typ = EventNotEnoughPlayers
	case ErrNotHost:
		typ = EventNotHost
	case ErrRoomNotFound:
		typ = EventRoomNotFound
	default:
		typ = EventError
	}
	return Event{Type: typ, Message: err.Error()}
}

// Conn wraps a single player's outbound message channel. The websocket layer
// owns the channel's consumer; the room only ever writes.
type Conn struct {
	PlayerID uuid.UUID
	OutChan  chan Event
}

// Write pushes an event to the player's message channel.
func (c *Conn) Write(ev Event) {
	c.OutChan <- ev
}
