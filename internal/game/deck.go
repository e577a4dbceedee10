package game

import (
	"errors"
	"fmt"

	"github.com/vivabureaucracia/simulator-go/internal/game/dice"
)

// ErrEmptyDeck is returned when both the draw pile and the discard pile are
// exhausted. It should not occur when discard discipline is followed; callers
// treat it as a data error and skip the draw.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck owns a draw pile and a discard pile for one card category. The union
// of the two piles always equals the full card set: no card is lost or
// duplicated by any sequence of draws and discards.
type Deck struct {
	category Category
	draw     []*Card
	discard  []*Card
	roller   *dice.Roller
}

// NewDeck creates a shuffled deck over the given cards.
func NewDeck(category Category, cards []*Card, roller *dice.Roller) *Deck {
	d := &Deck{
		category: category,
		draw:     make([]*Card, len(cards)),
		discard:  make([]*Card, 0, len(cards)),
		roller:   roller,
	}
	copy(d.draw, cards)
	d.shuffle()
	return d
}

// Category returns the deck's card category.
func (d *Deck) Category() Category {
	return d.category
}

// Draw removes and returns the top card. An empty draw pile automatically
// reshuffles the discard pile back in first; if both piles are empty, Draw
// fails with ErrEmptyDeck.
func (d *Deck) Draw() (*Card, error) {
	if len(d.draw) == 0 {
		if len(d.discard) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyDeck, d.category)
		}
		d.draw = d.discard
		d.discard = make([]*Card, 0, len(d.draw))
		d.shuffle()
	}
	card := d.draw[0]
	d.draw = d.draw[1:]
	return card, nil
}

// Discard returns a drawn card to the discard pile.
func (d *Deck) Discard(card *Card) {
	if card == nil {
		return
	}
	d.discard = append(d.discard, card)
}

// Counts returns the sizes of the draw and discard piles.
func (d *Deck) Counts() (drawPile, discardPile int) {
	return len(d.draw), len(d.discard)
}

// Size returns the total number of cards across both piles.
func (d *Deck) Size() int {
	return len(d.draw) + len(d.discard)
}

func (d *Deck) shuffle() {
	d.roller.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
}
