package game

import (
	"go.uber.org/zap"

	"github.com/vivabureaucracia/simulator-go/internal/game/effects"
)

// EliminationRules configures the elimination predicates.
type EliminationRules struct {
	// NerveFloor eliminates a player whose nerves sit at or below it.
	NerveFloor int
	// NerveGraceTurns gives a player that many turns at or below the floor
	// to recover before elimination. Zero means immediate.
	NerveGraceTurns int
	// DebtFloor eliminates a player whose money drops below it. No grace.
	DebtFloor int
	// EmergencySale lets an insolvent player force-sell document cards and
	// items before the debt check, the table's last-chance settlement rule.
	EmergencySale bool
}

// EliminationManager evaluates elimination conditions after every mutating
// action. It is invoked as an explicit post-mutation hook, not once per turn:
// a trade or interference mid-turn can eliminate a player whose later actions
// must then be skipped.
type EliminationManager struct {
	rules  EliminationRules
	logger *zap.Logger

	// nerveBreachTurn tracks when a player first hit the nerve floor, for
	// the grace window. Cleared on recovery.
	nerveBreachTurn map[string]int
}

// NewEliminationManager creates a manager with the given rules.
func NewEliminationManager(rules EliminationRules, logger *zap.Logger) *EliminationManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EliminationManager{
		rules:           rules,
		logger:          logger,
		nerveBreachTurn: make(map[string]int),
	}
}

// CheckAndUpdate scans all players and eliminates those whose predicates
// hold, returning the IDs of the newly eliminated. Elimination is monotonic;
// already-eliminated players are never revisited.
func (m *EliminationManager) CheckAndUpdate(players []*Player, turn int) []string {
	var eliminated []string
	for _, p := range players {
		if p.Status() != StatusActive {
			continue
		}
		if reason := m.check(p, players, turn); reason != "" {
			p.MarkEliminated(turn)
			eliminated = append(eliminated, p.ID())
			m.logger.Info("player eliminated",
				zap.String("player", p.ID()),
				zap.String("reason", reason),
				zap.Int("turn", turn),
				zap.Int("money", p.MustResource(effects.ResourceMoney)),
				zap.Int("nerves", p.MustResource(effects.ResourceNerves)),
			)
		}
	}
	return eliminated
}

func (m *EliminationManager) check(p *Player, players []*Player, turn int) string {
	if reason := m.checkNerves(p, turn); reason != "" {
		return reason
	}
	return m.checkDebt(p, players)
}

func (m *EliminationManager) checkNerves(p *Player, turn int) string {
	nerves := p.MustResource(effects.ResourceNerves)
	if nerves > m.rules.NerveFloor {
		delete(m.nerveBreachTurn, p.ID())
		return ""
	}
	first, breached := m.nerveBreachTurn[p.ID()]
	if !breached {
		m.nerveBreachTurn[p.ID()] = turn
		first = turn
	}
	if turn-first >= m.rules.NerveGraceTurns {
		return "nerves at floor"
	}
	return ""
}

func (m *EliminationManager) checkDebt(p *Player, players []*Player) string {
	if p.MustResource(effects.ResourceMoney) >= m.rules.DebtFloor {
		return ""
	}
	if m.rules.EmergencySale {
		m.emergencySell(p, players)
		if p.MustResource(effects.ResourceMoney) >= m.rules.DebtFloor {
			return ""
		}
	}
	return "debt"
}

// emergencySell liquidates document cards at two money each to solvent active
// players, then items at one money each, until the debt is covered or nothing
// is left to sell.
func (m *EliminationManager) emergencySell(p *Player, players []*Player) {
	for _, buyer := range players {
		if buyer == p || buyer.Status() != StatusActive {
			continue
		}
		for p.MustResource(effects.ResourceMoney) < m.rules.DebtFloor &&
			p.MustResource(effects.ResourceDocumentCards) > 0 &&
			buyer.MustResource(effects.ResourceMoney) >= 2 {
			p.AdjustClamped(effects.ResourceDocumentCards, -1)
			buyer.AdjustClamped(effects.ResourceDocumentCards, 1)
			buyer.AdjustUnclamped(effects.ResourceMoney, -2)
			p.AdjustUnclamped(effects.ResourceMoney, 2)
			m.logger.Debug("emergency sale of document card",
				zap.String("seller", p.ID()),
				zap.String("buyer", buyer.ID()),
			)
		}
	}
	for p.MustResource(effects.ResourceMoney) < m.rules.DebtFloor &&
		p.MustResource(effects.ResourceItems) > 0 {
		p.RemoveItems("", 1)
		p.AdjustUnclamped(effects.ResourceMoney, 1)
		m.logger.Debug("emergency sale of item", zap.String("seller", p.ID()))
	}
}
