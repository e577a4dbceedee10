package game

import (
	"go.uber.org/zap"

	"github.com/vivabureaucracia/simulator-go/internal/game/dice"
	"github.com/vivabureaucracia/simulator-go/internal/game/effects"
)

// ActionType is the closed set of actions a policy can choose.
type ActionType int

const (
	ActionMove ActionType = iota
	ActionProposeTrade
	ActionInterfere
	ActionPass
)

var actionNames = map[ActionType]string{
	ActionMove:         "MOVE",
	ActionProposeTrade: "PROPOSE_TRADE",
	ActionInterfere:    "INTERFERE",
	ActionPass:         "PASS",
}

func (a ActionType) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "UNKNOWN"
}

// ResourceBundle is one side of a trade: amounts per resource.
type ResourceBundle map[effects.Resource]int

// tradableResources are the resources that may change hands in a trade.
// Levels and position are personal progress and cannot be transferred.
var tradableResources = map[effects.Resource]bool{
	effects.ResourceMoney:         true,
	effects.ResourceNerves:        true,
	effects.ResourceDocumentCards: true,
	effects.ResourceItems:         true,
}

// TradeProposal names a counterparty and the two sides of the exchange.
// Offer is what the proposer gives up; Request is what they want back.
type TradeProposal struct {
	CounterpartyID string
	Offer          ResourceBundle
	Request        ResourceBundle
}

// InterferenceRequest targets another player with an interference action.
type InterferenceRequest struct {
	TargetID string
}

// Action is the policy's decision for one turn. Move is implied by trade and
// interference actions; only Pass skips movement.
type Action struct {
	Type         ActionType
	Trade        *TradeProposal
	Interference *InterferenceRequest
}

// nearWinThreshold is the goal progress above which the policy treats an
// opponent as about to win.
const nearWinThreshold = 0.75

// AI is the decision policy for non-human players. It is stateless between
// calls: every choice is a function of the profile, the view, and the shared
// random source for the probabilistic knobs the profile declares.
type AI struct {
	roller *dice.Roller
	logger *zap.Logger
}

// NewAI creates the policy over the game's random source.
func NewAI(roller *dice.Roller, logger *zap.Logger) *AI {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AI{roller: roller, logger: logger}
}

// ChooseAction picks an action for the player. The returned action is always
// legal: trades are only proposed when both sides can afford them, and
// interference only against active opponents and only when the actor can pay
// its cost. Move is the fallback; Pass is returned only when the player
// cannot act at all.
func (ai *AI) ChooseAction(p *Player, view GameStateView) Action {
	if p.Status() != StatusActive {
		return Action{Type: ActionPass}
	}
	knobs := p.Profile().AI

	if canAfford(view.Self, view.InterferenceCost) {
		if target := ai.pickInterferenceTarget(knobs, view); target != "" {
			return Action{
				Type:         ActionInterfere,
				Interference: &InterferenceRequest{TargetID: target},
			}
		}
	}

	if ai.roller.Float64() < knobs.TradeAggression {
		if proposal := ai.buildTradeProposal(p, view); proposal != nil {
			return Action{Type: ActionProposeTrade, Trade: proposal}
		}
	}

	return Action{Type: ActionMove}
}

// pickInterferenceTarget returns an opponent ID to interfere with, or "".
// Near-winning opponents are the priority; otherwise the leader is harassed
// at the profile's base rate when it is ahead of us.
func (ai *AI) pickInterferenceTarget(knobs AIProfile, view GameStateView) string {
	var nearWin, leader *PlayerView
	for i := range view.Opponents {
		opponent := &view.Opponents[i]
		if opponent.Status != StatusActive {
			continue
		}
		if opponent.GoalProgress >= nearWinThreshold {
			if nearWin == nil || opponent.GoalProgress > nearWin.GoalProgress {
				nearWin = opponent
			}
		}
		if leader == nil || opponent.GoalProgress > leader.GoalProgress {
			leader = opponent
		}
	}

	if nearWin != nil && ai.roller.Float64() < knobs.NearWinInterferenceRate {
		return nearWin.ID
	}
	if leader != nil && leader.GoalProgress > view.Self.GoalProgress &&
		ai.roller.Float64() < knobs.InterferenceRate {
		return leader.ID
	}
	return ""
}

// buildTradeProposal derives a proposal from urgent needs and excess
// resources, mirroring how players actually haggle: short on a goal resource,
// offer what you have spare; flush with something, sell it for money.
func (ai *AI) buildTradeProposal(p *Player, view GameStateView) *TradeProposal {
	needs := ai.identifyNeeds(p)
	excess := ai.identifyExcess(p)

	var request, offer ResourceBundle
	switch {
	case len(needs) > 0 && len(excess) > 0:
		request = pickLargest(needs)
		offer = pickLargest(excess)
	case len(excess) > 0:
		offer = pickLargest(excess)
		// Sell the surplus for money at two per unit.
		request = ResourceBundle{effects.ResourceMoney: bundleValue(offer) * 2}
	default:
		return nil
	}

	// A trade of a resource for itself is pointless.
	for resource := range request {
		if offer[resource] != 0 {
			return nil
		}
	}

	counterparty := ai.pickCounterparty(view, request)
	if counterparty == "" {
		return nil
	}
	return &TradeProposal{CounterpartyID: counterparty, Offer: offer, Request: request}
}

// identifyNeeds finds goal resources the player is short on, capped to small
// tradable amounts.
func (ai *AI) identifyNeeds(p *Player) ResourceBundle {
	needs := ResourceBundle{}
	knobs := p.Profile().AI

	if nerves := p.MustResource(effects.ResourceNerves); nerves <= knobs.NerveThreshold {
		needs[effects.ResourceNerves] = minInt(3, knobs.NerveThreshold+2-nerves)
	}
	for resource, required := range p.Goal().Requires {
		if !tradableResources[resource] {
			continue
		}
		short := required - p.MustResource(resource)
		if short > 0 && short <= 5 {
			needs[resource] = minInt(short, 3)
		}
	}
	return needs
}

// identifyExcess finds resources beyond what the goal and survival need.
func (ai *AI) identifyExcess(p *Player) ResourceBundle {
	excess := ResourceBundle{}

	goalMoney := p.Goal().Requires[effects.ResourceMoney]
	spareMoney := p.MustResource(effects.ResourceMoney) - goalMoney - 3
	if spareMoney > 0 {
		excess[effects.ResourceMoney] = minInt(3, spareMoney)
	}

	goalDocs := p.Goal().Requires[effects.ResourceDocumentCards]
	spareDocs := p.MustResource(effects.ResourceDocumentCards) - maxInt(goalDocs, 2)
	if spareDocs > 0 {
		excess[effects.ResourceDocumentCards] = minInt(2, spareDocs)
	}

	if items := p.MustResource(effects.ResourceItems); items >= 4 {
		excess[effects.ResourceItems] = 1
	}
	return excess
}

// pickCounterparty selects the active opponent best able to cover the
// request, breaking ties by seat order.
func (ai *AI) pickCounterparty(view GameStateView, request ResourceBundle) string {
	best := ""
	bestStock := -1
	for _, opponent := range view.Opponents {
		if opponent.Status != StatusActive {
			continue
		}
		stock := 0
		affordable := true
		for resource, amount := range request {
			have := opponent.Resources[resource]
			if have < amount {
				affordable = false
				break
			}
			stock += have
		}
		if affordable && stock > bestStock {
			best = opponent.ID
			bestStock = stock
		}
	}
	return best
}

// EvaluateTrade is the acceptance policy for an AI counterparty: accept when
// the incoming offer is worth at least as much as what is requested, using a
// flat valuation with document cards counted double.
func (ai *AI) EvaluateTrade(counterparty *Player, offer, request ResourceBundle) bool {
	for resource, amount := range request {
		if counterparty.MustResource(resource) < amount {
			return false
		}
	}
	return bundleValue(offer) >= bundleValue(request)
}

func bundleValue(bundle ResourceBundle) int {
	value := 0
	for resource, amount := range bundle {
		switch resource {
		case effects.ResourceDocumentCards:
			value += amount * 2
		default:
			value += amount
		}
	}
	return value
}

func pickLargest(bundle ResourceBundle) ResourceBundle {
	var bestResource effects.Resource
	bestAmount := 0
	for _, resource := range effects.KnownResources {
		if amount := bundle[resource]; amount > bestAmount {
			bestResource = resource
			bestAmount = amount
		}
	}
	if bestAmount == 0 {
		return nil
	}
	return ResourceBundle{bestResource: bestAmount}
}

// canAfford reports whether the player holds every resource the cost names.
func canAfford(self PlayerView, cost ResourceBundle) bool {
	for resource, amount := range cost {
		if self.Resources[resource] < amount {
			return false
		}
	}
	return true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
