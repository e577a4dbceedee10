package game

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vivabureaucracia/simulator-go/internal/game/effects"
)

// RejectReason explains why an interference attempt did not happen.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectNotActorsTurn
	RejectActorInactive
	RejectTargetInactive
	RejectSelfTarget
	RejectActorSpent
	RejectTargetShielded
	RejectCannotPayCost
	RejectNoCardAvailable
)

var rejectNames = map[RejectReason]string{
	RejectNone:            "NONE",
	RejectNotActorsTurn:   "NOT_ACTORS_TURN",
	RejectActorInactive:   "ACTOR_INACTIVE",
	RejectTargetInactive:  "TARGET_INACTIVE",
	RejectSelfTarget:      "SELF_TARGET",
	RejectActorSpent:      "ACTOR_SPENT",
	RejectTargetShielded:  "TARGET_SHIELDED",
	RejectCannotPayCost:   "CANNOT_PAY_COST",
	RejectNoCardAvailable: "NO_CARD_AVAILABLE",
}

func (r RejectReason) String() string {
	if name, ok := rejectNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// InterferenceResult reports one attempt. On rejection no state was touched.
type InterferenceResult struct {
	ID      string
	Applied bool
	Reason  RejectReason
	CardID  string
	Log     *effects.Log
}

// InteractionManager resolves inter-player interference. An interference
// draws a card from the action deck and applies its effect against the
// target. Validation happens before any mutation: a rejected attempt has no
// side effects. Cooldowns allow one interference per actor per turn and one
// against each target per turn.
type InteractionManager struct {
	actionDeck *Deck
	applier    *effects.Applier
	cost       ResourceBundle
	logger     *zap.Logger

	currentActor string
	actorSpent   bool
	targetedTurn map[string]bool
}

// NewInteractionManager creates a manager over the action deck. cost is what
// the actor pays to interfere; it may be empty.
func NewInteractionManager(actionDeck *Deck, applier *effects.Applier, cost ResourceBundle, logger *zap.Logger) *InteractionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InteractionManager{
		actionDeck:   actionDeck,
		applier:      applier,
		cost:         cost,
		logger:       logger,
		targetedTurn: make(map[string]bool),
	}
}

// BeginTurn resets the per-turn cooldowns and records whose turn it is.
func (m *InteractionManager) BeginTurn(actorID string) {
	m.currentActor = actorID
	m.actorSpent = false
	m.targetedTurn = make(map[string]bool)
}

// AttemptInterference validates and, if allowed, applies an interference by
// actor against target.
func (m *InteractionManager) AttemptInterference(actor, target *Player) InterferenceResult {
	result := InterferenceResult{ID: uuid.NewString()}

	switch {
	case actor.ID() != m.currentActor:
		result.Reason = RejectNotActorsTurn
	case actor.Status() != StatusActive:
		result.Reason = RejectActorInactive
	case actor == target:
		result.Reason = RejectSelfTarget
	case target.Status() != StatusActive:
		result.Reason = RejectTargetInactive
	case m.actorSpent:
		result.Reason = RejectActorSpent
	case m.targetedTurn[target.ID()]:
		result.Reason = RejectTargetShielded
	case !m.canPay(actor):
		result.Reason = RejectCannotPayCost
	}
	if result.Reason != RejectNone {
		m.logger.Debug("interference rejected",
			zap.String("actor", actor.ID()),
			zap.String("target", target.ID()),
			zap.Stringer("reason", result.Reason),
		)
		return result
	}

	card, err := m.actionDeck.Draw()
	if err != nil {
		result.Reason = RejectNoCardAvailable
		m.logger.Warn("action deck exhausted, interference skipped", zap.Error(err))
		return result
	}
	defer m.actionDeck.Discard(card)

	// All validation passed; the cost is paid even if the card's effect
	// turns out to be malformed, the same way a wasted play costs the actor.
	m.pay(actor)
	m.actorSpent = true
	m.targetedTurn[target.ID()] = true

	log, err := m.applier.Apply(card.Effect, target, nil)
	result.CardID = card.ID
	result.Log = log
	if err != nil {
		m.logger.Warn("interference card effect failed",
			zap.String("card", card.ID),
			zap.Error(err),
		)
		return result
	}

	result.Applied = true
	m.logger.Debug("interference applied",
		zap.String("actor", actor.ID()),
		zap.String("target", target.ID()),
		zap.String("card", card.ID),
	)
	return result
}

func (m *InteractionManager) canPay(actor *Player) bool {
	for resource, amount := range m.cost {
		if actor.MustResource(resource) < amount {
			return false
		}
	}
	return true
}

func (m *InteractionManager) pay(actor *Player) {
	for resource, amount := range m.cost {
		actor.AdjustClamped(resource, -amount)
	}
}
