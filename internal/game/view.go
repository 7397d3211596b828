// internal/game/view.go
package game

// PlayerSummary is the public projection of one player: hand contents are
// reduced to a count.
type PlayerSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	HandCount int    `json:"handCount"`
	IsHost    bool   `json:"isHost"`
}

// PublicView is the room state that is safe to send to every member. It must
// never carry another player's card identities.
type PublicView struct {
	RoomID          string          `json:"roomId"`
	Started         bool            `json:"started"`
	Players         []PlayerSummary `json:"players"`
	CurrentPlayerID string          `json:"currentPlayerId,omitempty"`
	TopCard         *Card           `json:"topCard,omitempty"`
	DeckSize        int             `json:"deckSize"`
}

// PrivateView is a single player's own hand, delivered only to that player.
type PrivateView struct {
	Hand []Card `json:"hand"`
}

// playerSummariesUnsafe projects the seat list. Assumes the room lock is held.
func (r *Room) playerSummariesUnsafe() []PlayerSummary {
	out := make([]PlayerSummary, len(r.Players))
	for i, p := range r.Players {
		out[i] = PlayerSummary{
			ID:        p.ID.String(),
			Name:      p.Name,
			HandCount: len(p.Hand),
			IsHost:    p.IsHost,
		}
	}
	return out
}

// publicViewUnsafe builds the shareable snapshot. Assumes the room lock is held.
func (r *Room) publicViewUnsafe() *PublicView {
	view := &PublicView{
		RoomID:  r.ID,
		Started: r.State == StateActive,
		Players: r.playerSummariesUnsafe(),
	}
	if r.Deck != nil {
		view.DeckSize = r.Deck.Len()
	}
	if r.State == StateActive && len(r.Players) > 0 {
		view.CurrentPlayerID = r.Players[r.CurrentTurnIndex].ID.String()
	}
	if r.Rules.IncludeTopCard && len(r.DiscardPile) > 0 {
		top := r.DiscardPile[len(r.DiscardPile)-1]
		view.TopCard = &top
	}
	return view
}

// PublicView returns the current shareable snapshot of the room.
func (r *Room) PublicView() *PublicView {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	return r.publicViewUnsafe()
}

// PrivateView returns a copy of one player's hand, or nil if the player is
// not seated in this room.
func (r *Room) PrivateView(playerID string) *PrivateView {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	for _, p := range r.Players {
		if p.ID.String() == playerID {
			hand := make([]Card, len(p.Hand))
			copy(hand, p.Hand)
			return &PrivateView{Hand: hand}
		}
	}
	return nil
}
