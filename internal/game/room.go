// internal/game/room.go
package game

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wildcard-games/uno-service/internal/cache"
)

// State is the room lifecycle phase.
type State string

const (
	// StateLobby accepts joins. Every room begins here.
	StateLobby State = "lobby"
	// StateActive means the game has been started. No transition back.
	StateActive State = "active"
)

// MinPlayers is the fewest seats required before the host may start.
const MinPlayers = 2

// Room holds the entire state for one game session in memory. All mutation
// happens under Mu; rooms never share mutable state with each other.
type Room struct {
	ID    string
	State State
	Rules Rules

	// Players in join order; join order is seating order. The first joiner
	// is the host for the life of the room.
	Players []*Player

	Deck             *Deck
	DiscardPile      []Card // last element is the top
	CurrentTurnIndex int

	// Connections maps seated players to their outbound message channels.
	// The websocket layer registers and removes entries via Join/Detach.
	Connections map[uuid.UUID]*Conn

	Mu  sync.Mutex
	rng *rand.Rand
}

// NewRoom builds an empty lobby-state room. A nil rng gets a time-seeded
// source; tests pass a fixed seed.
func NewRoom(id string, rules Rules, rng *rand.Rand) *Room {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Room{
		ID:          id,
		State:       StateLobby,
		Rules:       rules,
		Connections: make(map[uuid.UUID]*Conn),
		rng:         rng,
	}
}

// Join seats a player in the room and registers their connection with the
// broadcast group. On success the updated public player list is sent to
// every member, the joiner included. conn may be nil for headless callers.
func (r *Room) Join(playerID uuid.UUID, name string, conn *Conn) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.State == StateActive {
		return ErrAlreadyStarted
	}
	for _, p := range r.Players {
		if p.ID == playerID {
			return ErrAlreadyJoined
		}
	}
	if len(r.Players) >= r.Rules.MaxPlayers {
		return ErrRoomFull
	}

	r.Players = append(r.Players, &Player{
		ID:     playerID,
		Name:   name,
		IsHost: len(r.Players) == 0,
		Hand:   []Card{},
	})
	if conn != nil {
		r.Connections[playerID] = conn
	}

	r.broadcastUnsafe(Event{Type: EventPlayerList, Players: r.playerSummariesUnsafe()})
	r.logActionUnsafe(playerID, "room_join")
	return nil
}

// Detach removes a player's connection from the broadcast group without
// unseating them. Called by the gateway when the socket closes.
func (r *Room) Detach(playerID uuid.UUID) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	delete(r.Connections, playerID)
}

// Start transitions the room from lobby to active: builds a fresh shuffled
// deck, deals each player their hand, seeds the discard pile with a colored
// numeric card and picks the first turn. Only the host may start, and only
// with at least MinPlayers seated.
//
// Deck work happens on staging state; any resource error leaves the room in
// the lobby untouched. The caller delivers the returned error privately.
func (r *Room) Start(callerID uuid.UUID) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.State == StateActive {
		return ErrAlreadyStarted
	}
	if len(r.Players) < MinPlayers {
		return ErrNotEnoughPlayers
	}

	var host *Player
	for _, p := range r.Players {
		if p.IsHost {
			host = p
			break
		}
	}
	if host == nil || host.ID != callerID {
		return ErrNotHost
	}

	deck := NewDeck(r.rng)

	hands := make([][]Card, len(r.Players))
	for i := range r.Players {
		hands[i] = make([]Card, 0, r.Rules.HandSize)
		for n := 0; n < r.Rules.HandSize; n++ {
			card, ok := deck.Draw()
			if !ok {
				return ErrDeckExhausted
			}
			hands[i] = append(hands[i], card)
		}
	}

	// Search for a colored numeric starting card. Wild and action cards
	// popped along the way are removed from play for good, not returned to
	// the deck; the effective deck size shrinks by a random amount.
	var topCard Card
	for {
		card, ok := deck.Draw()
		if !ok {
			return ErrEmptyDeck
		}
		if card.IsNumeric() {
			topCard = card
			break
		}
	}

	// Commit.
	r.State = StateActive
	r.Deck = deck
	for i, p := range r.Players {
		p.Hand = hands[i]
	}
	r.DiscardPile = []Card{topCard}
	r.CurrentTurnIndex = pickStartIndex(r.rng, len(r.Players), r.Rules.TurnStart)

	log.Printf("Room %s started with %d players, %d cards left in deck", r.ID, len(r.Players), deck.Len())

	// Private hands first, then the room-wide start sequence.
	for _, p := range r.Players {
		hand := make([]Card, len(p.Hand))
		copy(hand, p.Hand)
		r.sendToUnsafe(p.ID, Event{Type: EventYourHand, Hand: hand})
	}
	r.broadcastUnsafe(Event{Type: EventFirstCard, Card: &topCard})
	r.broadcastUnsafe(Event{Type: EventGameStarted})
	r.broadcastUnsafe(Event{
		Type:            EventTurnUpdate,
		CurrentPlayerID: r.Players[r.CurrentTurnIndex].ID.String(),
	})
	r.broadcastUnsafe(Event{Type: EventGameState, State: r.publicViewUnsafe()})

	r.logActionUnsafe(callerID, "game_start")
	return nil
}

// broadcastUnsafe sends an event to every registered connection. Assumes the
// room lock is held.
func (r *Room) broadcastUnsafe(ev Event) {
	for _, conn := range r.Connections {
		conn.Write(ev)
	}
}

// sendToUnsafe sends an event to a single player's connection, if registered.
// Assumes the room lock is held.
func (r *Room) sendToUnsafe(playerID uuid.UUID, ev Event) {
	if conn, ok := r.Connections[playerID]; ok {
		conn.Write(ev)
	}
}

// logActionUnsafe queues a room action record for the stats consumer.
// Fire-and-forget; a disabled or unreachable queue never affects the room.
func (r *Room) logActionUnsafe(actorID uuid.UUID, actionType string) {
	record := cache.RoomActionRecord{
		RoomID:      r.ID,
		ActorID:     actorID,
		ActionType:  actionType,
		PlayerCount: len(r.Players),
		Timestamp:   time.Now().Unix(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := cache.PublishRoomAction(ctx, record); err != nil {
			log.Printf("WARNING: failed to publish room action %s for room %s: %v", actionType, record.RoomID, err)
		}
	}()
}
