// internal/game/card.go
package game

// Color identifies a card's color. Wild cards use ColorWild.
type Color string

const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorWild   Color = "wild"
)

// Value identifies a card's face. Colored cards carry "0".."9", "skip",
// "reverse" or "draw2"; wild cards carry "wild" or "wild4".
type Value string

const (
	ValueSkip    Value = "skip"
	ValueReverse Value = "reverse"
	ValueDraw2   Value = "draw2"
	ValueWild    Value = "wild"
	ValueWild4   Value = "wild4"
)

// Card is an immutable value object. Two cards with equal fields are
// interchangeable; nothing in the engine relies on card identity beyond that.
type Card struct {
	Color Color `json:"color"`
	Value Value `json:"value"`
}

// IsWild reports whether the card is a wild or wild-draw-four.
func (c Card) IsWild() bool {
	return c.Color == ColorWild
}

// IsAction reports whether the card is a colored action card (skip, reverse
// or draw-two).
func (c Card) IsAction() bool {
	switch c.Value {
	case ValueSkip, ValueReverse, ValueDraw2:
		return true
	}
	return false
}

// IsNumeric reports whether the card is a colored numeric card, the only kind
// eligible to seed the discard pile.
func (c Card) IsNumeric() bool {
	return !c.IsWild() && !c.IsAction()
}

// playColors are the four non-wild colors, in canonical deck-build order.
var playColors = []Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}

// coloredValues are the thirteen faces each color carries. Every face except
// "0" appears twice per color.
var coloredValues = []Value{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	ValueSkip, ValueReverse, ValueDraw2,
}
