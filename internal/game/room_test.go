// internal/game/room_test.go
package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConn returns a connection whose events can be drained synchronously.
func newTestConn(playerID uuid.UUID) *Conn {
	return &Conn{
		PlayerID: playerID,
		OutChan:  make(chan Event, 64),
	}
}

// drain pops every buffered event off a connection.
func drain(c *Conn) []Event {
	var out []Event
	for {
		select {
		case ev := <-c.OutChan:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// eventOfType returns the first matching event, or nil.
func eventOfType(events []Event, typ EventType) *Event {
	for i := range events {
		if events[i].Type == typ {
			return &events[i]
		}
	}
	return nil
}

// joinN seats n fresh players with connections and drains the join chatter.
func joinN(t *testing.T, r *Room, n int) ([]*Player, []*Conn) {
	t.Helper()
	conns := make([]*Conn, n)
	for i := 0; i < n; i++ {
		id := uuid.New()
		conns[i] = newTestConn(id)
		require.NoError(t, r.Join(id, fmt.Sprintf("player-%d", i), conns[i]))
	}
	for _, c := range conns {
		drain(c)
	}
	return r.Players, conns
}

func TestJoinHostAssignment(t *testing.T) {
	r := NewRoom("R0", DefaultRules(), rand.New(rand.NewSource(1)))
	players, _ := joinN(t, r, 3)

	assert.True(t, players[0].IsHost, "first joiner is the host")
	assert.False(t, players[1].IsHost)
	assert.False(t, players[2].IsHost)
	assert.Equal(t, StateLobby, r.State)
}

func TestJoinBroadcastsPlayerList(t *testing.T) {
	r := NewRoom("R1", DefaultRules(), rand.New(rand.NewSource(1)))

	hostID, joinerID := uuid.New(), uuid.New()
	hostConn, joinerConn := newTestConn(hostID), newTestConn(joinerID)

	require.NoError(t, r.Join(hostID, "A", hostConn))
	require.NoError(t, r.Join(joinerID, "B", joinerConn))

	hostEvents := drain(hostConn)
	joinerEvents := drain(joinerConn)

	// Host saw both list updates, the joiner only the second.
	require.Len(t, hostEvents, 2)
	require.Len(t, joinerEvents, 1)

	list := hostEvents[1]
	assert.Equal(t, EventPlayerList, list.Type)
	require.Len(t, list.Players, 2)
	assert.Equal(t, "A", list.Players[0].Name)
	assert.True(t, list.Players[0].IsHost)
	assert.Equal(t, "B", list.Players[1].Name)
	assert.False(t, list.Players[1].IsHost)
	assert.Equal(t, joinerEvents[0].Players, list.Players)
}

func TestJoinDuplicatePlayer(t *testing.T) {
	r := NewRoom("dup", DefaultRules(), rand.New(rand.NewSource(1)))
	id := uuid.New()
	require.NoError(t, r.Join(id, "A", newTestConn(id)))

	err := r.Join(id, "A again", newTestConn(id))
	assert.ErrorIs(t, err, ErrAlreadyJoined)
	assert.Len(t, r.Players, 1)
}

func TestJoinRoomFull(t *testing.T) {
	r := NewRoom("R2", DefaultRules(), rand.New(rand.NewSource(1)))
	joinN(t, r, 6)

	lateID := uuid.New()
	lateConn := newTestConn(lateID)
	err := r.Join(lateID, "late", lateConn)

	assert.ErrorIs(t, err, ErrRoomFull)
	assert.Len(t, r.Players, 6, "failed join must not alter the seat list")
	assert.Empty(t, drain(lateConn), "the room emits nothing on a rejected join")
}

func TestStartNotEnoughPlayers(t *testing.T) {
	r := NewRoom("R3", DefaultRules(), rand.New(rand.NewSource(1)))
	players, conns := joinN(t, r, 1)

	err := r.Start(players[0].ID)
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
	assert.Equal(t, StateLobby, r.State)
	assert.Empty(t, drain(conns[0]), "failure is reported by the caller, not broadcast")
}

func TestStartByNonHost(t *testing.T) {
	r := NewRoom("R4", DefaultRules(), rand.New(rand.NewSource(1)))
	players, conns := joinN(t, r, 2)

	err := r.Start(players[1].ID)
	assert.ErrorIs(t, err, ErrNotHost)
	assert.Equal(t, StateLobby, r.State)
	assert.Nil(t, r.Deck)
	for _, c := range conns {
		assert.Empty(t, drain(c), "a rejected start must not message the room")
	}
}

func TestStartByUnknownCaller(t *testing.T) {
	r := NewRoom("R4b", DefaultRules(), rand.New(rand.NewSource(1)))
	joinN(t, r, 2)

	assert.ErrorIs(t, r.Start(uuid.New()), ErrNotHost)
	assert.Equal(t, StateLobby, r.State)
}

func TestStartSuccess(t *testing.T) {
	r := NewRoom("R5", DefaultRules(), rand.New(rand.NewSource(5)))
	players, conns := joinN(t, r, 2)

	require.NoError(t, r.Start(players[0].ID))
	assert.Equal(t, StateActive, r.State)

	// Card conservation: deck + hands + discard never exceeds the original
	// multiset (starting-card search removes skipped cards for good).
	dealt := 0
	for _, p := range r.Players {
		require.Len(t, p.Hand, 7)
		dealt += len(p.Hand)
	}
	require.Len(t, r.DiscardPile, 1)
	assert.True(t, r.DiscardPile[0].IsNumeric(), "starting card must be colored and numeric")
	assert.LessOrEqual(t, r.Deck.Len(), DeckSize-dealt-1)

	remaining := r.Deck.Cards()
	for _, p := range r.Players {
		remaining = append(remaining, p.Hand...)
	}
	remaining = append(remaining, r.DiscardPile...)
	full := countCards(NewDeck(rand.New(rand.NewSource(0))).Cards())
	for card, n := range countCards(remaining) {
		assert.LessOrEqual(t, n, full[card], "more copies of %v in play than the deck holds", card)
	}

	startedIDs := map[string]bool{
		players[0].ID.String(): true,
		players[1].ID.String(): true,
	}

	for i, c := range conns {
		events := drain(c)
		require.Len(t, events, 5)
		assert.Equal(t, EventYourHand, events[0].Type)
		assert.Equal(t, r.Players[i].Hand, events[0].Hand)
		assert.Equal(t, EventFirstCard, events[1].Type)
		assert.Equal(t, r.DiscardPile[0], *events[1].Card)
		assert.Equal(t, EventGameStarted, events[2].Type)
		assert.Equal(t, EventTurnUpdate, events[3].Type)
		assert.True(t, startedIDs[events[3].CurrentPlayerID])

		state := events[4]
		require.Equal(t, EventGameState, state.Type)
		require.NotNil(t, state.State)
		assert.True(t, state.State.Started)
		assert.Equal(t, state.State.CurrentPlayerID, events[3].CurrentPlayerID)
		require.Len(t, state.State.Players, 2)
		for j, summary := range state.State.Players {
			assert.Equal(t, 7, summary.HandCount)
			assert.Equal(t, r.Players[j].IsHost, summary.IsHost)
		}
		assert.Empty(t, state.Hand, "room-wide events never carry hand contents")
	}
}

func TestJoinAfterStart(t *testing.T) {
	r := NewRoom("R6", DefaultRules(), rand.New(rand.NewSource(5)))
	players, _ := joinN(t, r, 2)
	require.NoError(t, r.Start(players[0].ID))

	lateID := uuid.New()
	err := r.Join(lateID, "late", newTestConn(lateID))
	assert.ErrorIs(t, err, ErrAlreadyStarted)
	assert.Len(t, r.Players, 2)
}

func TestStartTwice(t *testing.T) {
	r := NewRoom("R7", DefaultRules(), rand.New(rand.NewSource(5)))
	players, _ := joinN(t, r, 2)
	require.NoError(t, r.Start(players[0].ID))
	assert.ErrorIs(t, r.Start(players[0].ID), ErrAlreadyStarted)
}

func TestStartDeckExhausted(t *testing.T) {
	rules := DefaultRules()
	rules.HandSize = 20 // 6 x 20 > 108
	r := NewRoom("exhausted", rules, rand.New(rand.NewSource(5)))
	players, conns := joinN(t, r, 6)

	err := r.Start(players[0].ID)
	assert.ErrorIs(t, err, ErrDeckExhausted)
	assert.Equal(t, StateLobby, r.State)
	assert.Nil(t, r.Deck)
	assert.Empty(t, r.DiscardPile)
	for _, p := range r.Players {
		assert.Empty(t, p.Hand, "a failed start must not leave partial hands")
	}
	for _, c := range conns {
		assert.Empty(t, drain(c))
	}
}

func TestStartEmptyDeckDuringCardSearch(t *testing.T) {
	rules := DefaultRules()
	rules.HandSize = 54 // 2 x 54 consumes the whole deck; nothing left to seed the discard
	r := NewRoom("drained", rules, rand.New(rand.NewSource(5)))
	players, _ := joinN(t, r, 2)

	err := r.Start(players[0].ID)
	assert.ErrorIs(t, err, ErrEmptyDeck)
	assert.Equal(t, StateLobby, r.State)
	for _, p := range r.Players {
		assert.Empty(t, p.Hand)
	}
}

func TestStartingCardSearchAcrossSeeds(t *testing.T) {
	// The search must always land on a colored numeric card and shrink the
	// deck by at least deal+1, regardless of shuffle.
	for seed := int64(0); seed < 50; seed++ {
		r := NewRoom("search", DefaultRules(), rand.New(rand.NewSource(seed)))
		players, _ := joinN(t, r, 4)
		require.NoError(t, r.Start(players[0].ID))

		require.Len(t, r.DiscardPile, 1, "seed %d", seed)
		assert.True(t, r.DiscardPile[0].IsNumeric(), "seed %d", seed)
		assert.Less(t, r.Deck.Len(), DeckSize-4*7, "seed %d", seed)
	}
}

func TestFixedTurnStartPolicy(t *testing.T) {
	rules := DefaultRules()
	rules.TurnStart = TurnStartFirstSeat
	r := NewRoom("fixed", rules, rand.New(rand.NewSource(11)))
	players, _ := joinN(t, r, 4)

	require.NoError(t, r.Start(players[0].ID))
	assert.Equal(t, 0, r.CurrentTurnIndex)
}

func TestPickStartIndexRandomCoversAllSeats(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		idx := pickStartIndex(rng, 6, TurnStartRandom)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 6)
		seen[idx] = true
	}
	assert.Len(t, seen, 6, "every seat should be selectable")
}

func TestExcludeTopCardFromState(t *testing.T) {
	rules := DefaultRules()
	rules.IncludeTopCard = false
	r := NewRoom("notop", rules, rand.New(rand.NewSource(17)))
	players, conns := joinN(t, r, 2)
	require.NoError(t, r.Start(players[0].ID))

	events := drain(conns[0])
	first := eventOfType(events, EventFirstCard)
	require.NotNil(t, first, "first_card is still announced separately")
	state := eventOfType(events, EventGameState)
	require.NotNil(t, state)
	assert.Nil(t, state.State.TopCard)
}

func TestPrivateViewReturnsOwnHandOnly(t *testing.T) {
	r := NewRoom("views", DefaultRules(), rand.New(rand.NewSource(19)))
	players, _ := joinN(t, r, 2)
	require.NoError(t, r.Start(players[0].ID))

	view := r.PrivateView(players[0].ID.String())
	require.NotNil(t, view)
	assert.Equal(t, r.Players[0].Hand, view.Hand)

	assert.Nil(t, r.PrivateView(uuid.New().String()), "strangers have no private view")
}

func TestDetachStopsDelivery(t *testing.T) {
	r := NewRoom("detach", DefaultRules(), rand.New(rand.NewSource(23)))
	players, conns := joinN(t, r, 3)

	r.Detach(players[2].ID)
	require.NoError(t, r.Start(players[0].ID))

	assert.NotEmpty(t, drain(conns[0]))
	assert.Empty(t, drain(conns[2]), "detached connections receive nothing")
	assert.Len(t, r.Players, 3, "detach does not unseat the player")
}
