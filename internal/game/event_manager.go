package game

import (
	"go.uber.org/zap"

	"github.com/vivabureaucracia/simulator-go/internal/game/effects"
)

// zoneDecks maps a board zone to the deck its landings draw from.
var zoneDecks = map[ZoneType]Category{
	ZoneDocument:      CategoryGreen,
	ZoneHealthHousing: CategoryRed,
	ZoneRandom:        CategoryWhite,
}

// EventManager dispatches cell landings: draw one card from the zone's deck,
// apply it to the landing player with all other active players visible, and
// discard the card back. Data errors (empty deck, bad effect spec) are logged
// and the card is skipped; the game continues.
type EventManager struct {
	decks   map[Category]*Deck
	applier *effects.Applier
	logger  *zap.Logger
}

// NewEventManager creates an event manager over the game's decks.
func NewEventManager(decks map[Category]*Deck, applier *effects.Applier, logger *zap.Logger) *EventManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventManager{decks: decks, applier: applier, logger: logger}
}

// Trigger handles a landing on cell by player. others carries the remaining
// active players. The drawn card is always discarded back to its deck, even
// when its effect fails to apply, preserving the deck conservation invariant.
func (m *EventManager) Trigger(player *Player, cell Cell, others []*Player) *effects.Log {
	category, ok := zoneDecks[cell.Zone]
	if !ok {
		m.logger.Warn("cell zone has no deck", zap.Stringer("zone", cell.Zone))
		return nil
	}
	deck := m.decks[category]
	if deck == nil {
		m.logger.Warn("no deck for category", zap.Stringer("category", category))
		return nil
	}

	card, err := deck.Draw()
	if err != nil {
		m.logger.Warn("deck exhausted, skipping cell event",
			zap.Stringer("category", category),
			zap.Error(err),
		)
		return nil
	}
	defer deck.Discard(card)

	targets := make([]effects.Target, 0, len(others))
	for _, other := range others {
		targets = append(targets, other)
	}

	log, err := m.applier.Apply(card.Effect, player, targets)
	if err != nil {
		m.logger.Warn("card effect failed, skipping card",
			zap.String("card", card.ID),
			zap.String("player", player.ID()),
			zap.Error(err),
		)
		return log
	}

	m.logger.Debug("cell event applied",
		zap.String("card", card.ID),
		zap.String("player", player.ID()),
		zap.Stringer("zone", cell.Zone),
	)
	return log
}
