package game

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vivabureaucracia/simulator-go/internal/game/effects"
)

// TradeRejectReason explains why a trade did not execute.
type TradeRejectReason int

const (
	TradeRejectNone TradeRejectReason = iota
	TradeRejectPartyInactive
	TradeRejectUntradableResource
	TradeRejectProposerShort
	TradeRejectCounterpartyShort
	TradeRejectDeclined
)

var tradeRejectNames = map[TradeRejectReason]string{
	TradeRejectNone:               "NONE",
	TradeRejectPartyInactive:      "PARTY_INACTIVE",
	TradeRejectUntradableResource: "UNTRADABLE_RESOURCE",
	TradeRejectProposerShort:      "PROPOSER_SHORT",
	TradeRejectCounterpartyShort:  "COUNTERPARTY_SHORT",
	TradeRejectDeclined:           "DECLINED",
}

func (r TradeRejectReason) String() string {
	if name, ok := tradeRejectNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// TradeResult reports one proposal. A rejected trade leaves both players
// exactly as they were.
type TradeResult struct {
	ID       string
	Executed bool
	Reason   TradeRejectReason
}

// AcceptFunc decides whether the counterparty takes the trade. For AI seats
// this is the policy's EvaluateTrade; human-equivalent counterparties inject
// their own decision here.
type AcceptFunc func(counterparty *Player, offer, request ResourceBundle) bool

// TradeManager validates and executes resource trades between two players.
// Trades are atomic: both transfers apply, or neither does.
type TradeManager struct {
	logger *zap.Logger
}

// NewTradeManager creates a trade manager.
func NewTradeManager(logger *zap.Logger) *TradeManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TradeManager{logger: logger}
}

// ProposeTrade validates that both sides hold what they put up, asks the
// counterparty via accept, and executes. Validation precedes every mutation,
// so rejection has no side effects.
func (m *TradeManager) ProposeTrade(proposer, counterparty *Player, offer, request ResourceBundle, accept AcceptFunc) TradeResult {
	result := TradeResult{ID: uuid.NewString()}

	switch {
	case proposer.Status() != StatusActive || counterparty.Status() != StatusActive:
		result.Reason = TradeRejectPartyInactive
	case !tradable(offer) || !tradable(request):
		result.Reason = TradeRejectUntradableResource
	case !holds(proposer, offer):
		result.Reason = TradeRejectProposerShort
	case !holds(counterparty, request):
		result.Reason = TradeRejectCounterpartyShort
	case accept == nil || !accept(counterparty, offer, request):
		result.Reason = TradeRejectDeclined
	}
	if result.Reason != TradeRejectNone {
		m.logger.Debug("trade rejected",
			zap.String("proposer", proposer.ID()),
			zap.String("counterparty", counterparty.ID()),
			zap.Stringer("reason", result.Reason),
		)
		return result
	}

	m.transfer(proposer, counterparty, offer)
	m.transfer(counterparty, proposer, request)
	result.Executed = true

	m.logger.Debug("trade executed",
		zap.String("trade", result.ID),
		zap.String("proposer", proposer.ID()),
		zap.String("counterparty", counterparty.ID()),
	)
	return result
}

// transfer moves a bundle from one player to the other. The giver was
// validated to hold the amounts; the receiver's gains clamp to its ceilings,
// the same rule every resource mutation follows.
func (m *TradeManager) transfer(from, to *Player, bundle ResourceBundle) {
	for resource, amount := range bundle {
		if amount <= 0 {
			continue
		}
		if resource == effects.ResourceItems {
			held := to.MustResource(effects.ResourceItems)
			receivable := to.Clamp(effects.ResourceItems, held+amount) - held
			removed := from.RemoveItems("", receivable)
			to.AddItem("traded", removed)
			continue
		}
		from.AdjustClamped(resource, -amount)
		to.AdjustClamped(resource, amount)
	}
}

func tradable(bundle ResourceBundle) bool {
	for resource, amount := range bundle {
		if amount < 0 || !tradableResources[resource] {
			return false
		}
	}
	return true
}

func holds(p *Player, bundle ResourceBundle) bool {
	for resource, amount := range bundle {
		if p.MustResource(resource) < amount {
			return false
		}
	}
	return true
}
