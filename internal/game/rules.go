// internal/game/rules.go
package game

import "fmt"

// TurnStartPolicy selects how the first active player is chosen when a game
// starts. The old server shipped both behaviors in divergent copies; here it
// is a single configuration knob.
type TurnStartPolicy string

const (
	// TurnStartRandom picks a uniform-random seat. Canonical policy.
	TurnStartRandom TurnStartPolicy = "random"
	// TurnStartFirstSeat always starts with the first joiner.
	TurnStartFirstSeat TurnStartPolicy = "first_seat"
)

// Rules defines per-room configuration knobs.
type Rules struct {
	MaxPlayers int             `json:"maxPlayers"` // join limit; default 6
	HandSize   int             `json:"handSize"`   // cards dealt per player; default 7
	TurnStart  TurnStartPolicy `json:"turnStart"`  // first-turn selection policy

	// IncludeTopCard controls whether the broadcast game state carries the
	// top discard alongside the dedicated first_card event.
	IncludeTopCard bool `json:"includeTopCard"`
}

// DefaultRules returns the stock configuration: up to 6 players, 7-card
// hands, random first turn, top card included in the public state.
func DefaultRules() Rules {
	return Rules{
		MaxPlayers:     6,
		HandSize:       7,
		TurnStart:      TurnStartRandom,
		IncludeTopCard: true,
	}
}

// Update applies the provided rule overrides. Keys that are absent or nil are
// ignored and the old value persists.
func (rules *Rules) Update(newRules map[string]interface{}) error {
	assignInt := func(field *int, key string, minVal int) error {
		if val, exists := newRules[key]; exists && val != nil {
			// JSON numbers arrive as float64
			floatVal, ok := val.(float64)
			if !ok {
				intVal, ok := val.(int)
				if !ok {
					return fmt.Errorf("invalid type for %s", key)
				}
				*field = intVal
			} else {
				*field = int(floatVal)
			}
			if *field < minVal {
				return fmt.Errorf("%s must be at least %d", key, minVal)
			}
		}
		return nil
	}

	if err := assignInt(&rules.MaxPlayers, "maxPlayers", 2); err != nil {
		return err
	}
	if err := assignInt(&rules.HandSize, "handSize", 1); err != nil {
		return err
	}
	if val, exists := newRules["turnStart"]; exists && val != nil {
		s, ok := val.(string)
		if !ok {
			return fmt.Errorf("invalid type for turnStart")
		}
		switch TurnStartPolicy(s) {
		case TurnStartRandom, TurnStartFirstSeat:
			rules.TurnStart = TurnStartPolicy(s)
		default:
			return fmt.Errorf("unknown turnStart policy %q", s)
		}
	}
	if val, exists := newRules["includeTopCard"]; exists && val != nil {
		b, ok := val.(bool)
		if !ok {
			return fmt.Errorf("invalid type for includeTopCard")
		}
		rules.IncludeTopCard = b
	}

	return nil
}
