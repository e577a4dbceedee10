package game

import (
	"errors"
	"testing"

	"github.com/vivabureaucracia/simulator-go/internal/game/dice"
)

func deckCards(n int) []*Card {
	cards := make([]*Card, n)
	for i := range cards {
		cards[i] = &Card{ID: string(rune('a' + i)), Category: CategoryWhite}
	}
	return cards
}

func TestDrawReshufflesDiscard(t *testing.T) {
	deck := NewDeck(CategoryWhite, deckCards(3), dice.NewRoller(1))

	for round := 0; round < 3; round++ {
		for i := 0; i < 3; i++ {
			card, err := deck.Draw()
			if err != nil {
				t.Fatalf("round %d draw %d: %v", round, i, err)
			}
			deck.Discard(card)
		}
	}
	if deck.Size() != 3 {
		t.Errorf("size = %d, want 3", deck.Size())
	}
}

func TestDrawEmptyDeck(t *testing.T) {
	deck := NewDeck(CategoryWhite, nil, dice.NewRoller(1))
	if _, err := deck.Draw(); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("err = %v, want ErrEmptyDeck", err)
	}
}

func TestDeckConservation(t *testing.T) {
	deck := NewDeck(CategoryWhite, deckCards(5), dice.NewRoller(1))
	seen := map[string]int{}

	// Draw everything without discarding, then cycle with discards. The
	// union of the piles never loses or duplicates a card.
	var held []*Card
	for i := 0; i < 5; i++ {
		card, err := deck.Draw()
		if err != nil {
			t.Fatal(err)
		}
		seen[card.ID]++
		held = append(held, card)
	}
	if draw, discard := deck.Counts(); draw+discard != 0 {
		t.Fatalf("piles hold %d cards while all 5 are drawn", draw+discard)
	}
	for _, card := range held {
		deck.Discard(card)
	}
	if deck.Size() != 5 {
		t.Fatalf("size = %d after discards, want 5", deck.Size())
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("card %s drawn %d times in one pass", id, count)
		}
	}
}
