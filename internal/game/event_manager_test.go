package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vivabureaucracia/simulator-go/internal/game/dice"
	"github.com/vivabureaucracia/simulator-go/internal/game/effects"
)

func newEventFixture(effect *effects.Spec) (*EventManager, map[Category]*Deck) {
	roller := dice.NewRoller(1)
	decks := map[Category]*Deck{}
	for _, category := range []Category{CategoryGreen, CategoryRed, CategoryWhite} {
		decks[category] = NewDeck(category, []*Card{
			{ID: category.String() + "-1", Category: category, Effect: effect},
			{ID: category.String() + "-2", Category: category, Effect: effect},
		}, roller)
	}
	applier := effects.NewApplier(nil, zap.NewNop())
	return NewEventManager(decks, applier, zap.NewNop()), decks
}

func TestTriggerDrawsFromZoneDeck(t *testing.T) {
	for zone, category := range zoneDecks {
		m, decks := newEventFixture(effects.Delta(effects.ResourceNerves, -1))
		anna := newTestPlayer("anna")

		log := m.Trigger(anna, Cell{Index: 0, Zone: zone}, nil)

		require.NotNil(t, log, "zone %s", zone)
		assert.Equal(t, 7, anna.MustResource(effects.ResourceNerves))

		// The drawn card went to the zone deck's discard pile, nowhere else.
		for cat, deck := range decks {
			draw, discard := deck.Counts()
			if cat == category {
				assert.Equal(t, 1, discard)
			} else {
				assert.Equal(t, 0, discard)
			}
			assert.Equal(t, deck.Size(), draw+discard)
		}
	}
}

func TestTriggerDiscardsCardOnEffectFailure(t *testing.T) {
	// A challenge card with no resolver wired fails to apply; the card must
	// still land in the discard pile.
	m, decks := newEventFixture(&effects.Spec{
		Op:        effects.OpChallenge,
		Stat:      effects.ResourceLanguageLevel,
		OnSuccess: effects.Delta(effects.ResourceMoney, 5),
	})
	anna := newTestPlayer("anna")
	before := anna.ResourceSnapshot()

	m.Trigger(anna, Cell{Index: 3, Zone: ZoneDocument}, nil)

	assert.Equal(t, before, anna.ResourceSnapshot())
	draw, discard := decks[CategoryGreen].Counts()
	assert.Equal(t, 1, discard)
	assert.Equal(t, decks[CategoryGreen].Size(), draw+discard)
}

func TestTriggerExhaustedDeckSkipsEvent(t *testing.T) {
	roller := dice.NewRoller(1)
	decks := map[Category]*Deck{
		CategoryGreen: NewDeck(CategoryGreen, nil, roller),
	}
	m := NewEventManager(decks, effects.NewApplier(nil, zap.NewNop()), zap.NewNop())
	anna := newTestPlayer("anna")
	before := anna.ResourceSnapshot()

	log := m.Trigger(anna, Cell{Index: 0, Zone: ZoneDocument}, nil)

	assert.Nil(t, log)
	assert.Equal(t, before, anna.ResourceSnapshot())
}
