// internal/game/deck.go
package game

import "math/rand"

// DeckSize is the canonical card count: 4 colors x (one "0" + two copies of
// the 12 other faces) = 100, plus 4 wild and 4 wild4.
const DeckSize = 108

// Deck is the draw pile. Draws pop from the end of the slice, mirroring a
// stack with the last element on top.
type Deck struct {
	cards []Card
}

// NewDeck builds the canonical 108-card multiset and shuffles it with the
// provided source. Callers seed the source themselves; tests pass a fixed
// seed for reproducible orderings.
func NewDeck(rng *rand.Rand) *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, color := range playColors {
		for _, value := range coloredValues {
			cards = append(cards, Card{Color: color, Value: value})
			if value != "0" {
				cards = append(cards, Card{Color: color, Value: value})
			}
		}
	}
	for i := 0; i < 4; i++ {
		cards = append(cards, Card{Color: ColorWild, Value: ValueWild})
		cards = append(cards, Card{Color: ColorWild, Value: ValueWild4})
	}

	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

// Draw removes and returns the top card. ok is false once the deck is empty.
func (d *Deck) Draw() (card Card, ok bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card = d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, bottom first. Only used by
// tests and diagnostics; the live slice is never shared.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
