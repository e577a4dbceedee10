package game

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vivabureaucracia/simulator-go/internal/game/dice"
	"github.com/vivabureaucracia/simulator-go/internal/game/effects"
)

// GameState tracks the orchestrator's lifecycle.
type GameState int

const (
	StateNotStarted GameState = iota
	StateRunning
	StateFinished
)

var gameStateNames = map[GameState]string{
	StateNotStarted: "NOT_STARTED",
	StateRunning:    "RUNNING",
	StateFinished:   "FINISHED",
}

func (s GameState) String() string {
	if name, ok := gameStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Setup is everything one game needs: the seats in turn order, the board
// recipe, card sets, goal pool, bounds and rules. Validation happens in
// NewGame; a Setup that passes it cannot fail mid-game for configuration
// reasons.
type Setup struct {
	Seed int64

	BoardSize       int
	ZoneFrequencies map[ZoneType]int

	// Profiles are the seats, in turn order. Each seat's profile must be
	// distinct: the profile ID doubles as the player ID.
	Profiles []Profile
	Goals    []Goal
	Cards    map[Category][]*Card

	Bounds      map[effects.Resource]Bounds
	MaxTurns    int
	Elimination EliminationRules

	ChallengeDice DiceConfig
	MovementDice  DiceConfig

	InterferenceCost ResourceBundle
}

func (s Setup) validate() error {
	if len(s.Profiles) < 2 {
		return fmt.Errorf("need at least 2 players, got %d", len(s.Profiles))
	}
	seen := make(map[string]bool, len(s.Profiles))
	for _, profile := range s.Profiles {
		if profile.ID == "" {
			return fmt.Errorf("profile without id")
		}
		if seen[profile.ID] {
			return fmt.Errorf("duplicate profile %q", profile.ID)
		}
		seen[profile.ID] = true
	}
	if s.BoardSize < 2 {
		return fmt.Errorf("board size %d too small", s.BoardSize)
	}
	if s.MaxTurns <= 0 {
		return fmt.Errorf("max turns must be positive, got %d", s.MaxTurns)
	}
	if len(s.Goals) == 0 {
		return fmt.Errorf("no goals configured")
	}
	for _, goal := range s.Goals {
		if err := goal.Validate(); err != nil {
			return err
		}
	}
	for _, category := range Categories {
		if len(s.Cards[category]) == 0 {
			return fmt.Errorf("no cards for category %s", category)
		}
	}
	for category, cards := range s.Cards {
		for _, card := range cards {
			if card.Effect == nil {
				continue
			}
			if err := card.Effect.Validate(); err != nil {
				return fmt.Errorf("card %q in %s deck: %w", card.ID, category, err)
			}
		}
	}
	return nil
}

// Game wires the board, decks, players and managers into one simulation run.
// Everything random flows through a single seeded roller, so two games with
// the same Setup replay identically.
type Game struct {
	id     string
	setup  Setup
	logger *zap.Logger

	roller  *dice.Roller
	board   *Board
	decks   map[Category]*Deck
	players []*Player

	ai           *AI
	applier      *effects.Applier
	challenges   *ChallengeResolver
	events       *EventManager
	eliminations *EliminationManager
	interactions *InteractionManager
	trades       *TradeManager

	turn  int
	state GameState
}

// NewGame validates the setup and assembles a ready-to-run game. All
// configuration problems surface here, never mid-run.
func NewGame(setup Setup, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := setup.validate(); err != nil {
		return nil, fmt.Errorf("invalid game setup: %w", err)
	}

	roller := dice.NewRoller(setup.Seed)
	board, err := GenerateBoard(setup.BoardSize, setup.ZoneFrequencies, roller)
	if err != nil {
		return nil, err
	}

	decks := make(map[Category]*Deck, len(Categories))
	for _, category := range Categories {
		decks[category] = NewDeck(category, setup.Cards[category], roller)
	}

	g := &Game{
		id:     uuid.NewString(),
		setup:  setup,
		logger: logger,
		roller: roller,
		board:  board,
		decks:  decks,
	}

	goals := roller.Perm(len(setup.Goals))
	for i, profile := range setup.Profiles {
		goal := setup.Goals[goals[i%len(goals)]]
		player := NewPlayer(profile, goal, setup.Bounds)
		g.players = append(g.players, player)
	}
	g.dealStartingItems()

	g.challenges = NewChallengeResolver(setup.ChallengeDice, roller, logger)
	g.applier = effects.NewApplier(g.resolveChallenge, logger)
	g.ai = NewAI(roller, logger)
	g.events = NewEventManager(map[Category]*Deck{
		CategoryGreen: decks[CategoryGreen],
		CategoryRed:   decks[CategoryRed],
		CategoryWhite: decks[CategoryWhite],
	}, g.applier, logger)
	g.eliminations = NewEliminationManager(setup.Elimination, logger)
	g.interactions = NewInteractionManager(decks[CategoryAction], g.applier, setup.InterferenceCost, logger)
	g.trades = NewTradeManager(logger)

	return g, nil
}

// ID returns the game's unique identifier.
func (g *Game) ID() string { return g.id }

// State returns the lifecycle state.
func (g *Game) State() GameState { return g.state }

// Players returns the seats in turn order.
func (g *Game) Players() []*Player { return g.players }

// dealStartingItems draws each seat's starting items from the common deck.
// The drawn card names the item; the card itself cycles back through the
// discard pile.
func (g *Game) dealStartingItems() {
	common := g.decks[CategoryCommon]
	for _, p := range g.players {
		for i := 0; i < p.Profile().StartingItems; i++ {
			card, err := common.Draw()
			if err != nil {
				g.logger.Warn("common deck exhausted during setup", zap.Error(err))
				return
			}
			p.AddItem(card.ID, 1)
			common.Discard(card)
		}
	}
}

// resolveChallenge adapts the dice resolver to the effect applier's hook.
func (g *Game) resolveChallenge(target effects.Target, stat effects.Resource, difficulty int) (bool, int, error) {
	p, ok := target.(*Player)
	if !ok {
		return false, 0, fmt.Errorf("challenge target %q is not a player", target.ID())
	}
	outcome, err := g.challenges.Resolve(p, stat, difficulty)
	if err != nil {
		return false, 0, err
	}
	return outcome.Success, outcome.Margin, nil
}

// Run plays the game to its single terminal outcome: a goal winner, the last
// survivor, or the turn limit. A game runs once.
func (g *Game) Run() (*Result, error) {
	if g.state != StateNotStarted {
		return nil, fmt.Errorf("game %s already ran", g.id)
	}
	g.state = StateRunning
	g.logger.Info("game started",
		zap.String("game", g.id),
		zap.Int64("seed", g.setup.Seed),
		zap.Int("players", len(g.players)),
	)

	for g.turn = 1; g.turn <= g.setup.MaxTurns; g.turn++ {
		for _, p := range g.players {
			if p.Status() != StatusActive {
				continue
			}
			if err := g.playTurn(p); err != nil {
				g.state = StateFinished
				return nil, fmt.Errorf("turn %d, player %s: %w", g.turn, p.ID(), err)
			}
			if result := g.checkTerminal(p); result != nil {
				return result, nil
			}
		}
		if err := g.checkInvariants(); err != nil {
			g.state = StateFinished
			return nil, fmt.Errorf("turn %d: %w", g.turn, err)
		}
	}

	return g.finish(OutcomeTimeLimit, nil), nil
}

// playTurn runs one seat's full turn: choose an action, move and resolve the
// landing cell, then dispatch the action's trade or interference component.
// Elimination is checked after every mutating step, so a mid-turn knockout
// cuts the turn short.
func (g *Game) playTurn(p *Player) error {
	g.interactions.BeginTurn(p.ID())
	action := g.ai.ChooseAction(p, g.viewFor(p))
	if action.Type == ActionPass {
		return nil
	}

	if err := g.move(p); err != nil {
		return err
	}
	if p.Status() != StatusActive {
		return nil
	}

	switch action.Type {
	case ActionInterfere:
		g.runInterference(p, action.Interference)
	case ActionProposeTrade:
		g.runTrade(p, action.Trade)
	default:
		return nil
	}
	g.eliminations.CheckAndUpdate(g.players, g.turn)
	return nil
}

func (g *Game) runInterference(p *Player, req *InterferenceRequest) {
	target := g.playerByID(req.TargetID)
	if target == nil {
		g.logger.Warn("interference target missing", zap.String("target", req.TargetID))
		return
	}
	g.interactions.AttemptInterference(p, target)
}

func (g *Game) runTrade(p *Player, proposal *TradeProposal) {
	counterparty := g.playerByID(proposal.CounterpartyID)
	if counterparty == nil {
		g.logger.Warn("trade counterparty missing", zap.String("counterparty", proposal.CounterpartyID))
		return
	}
	g.trades.ProposeTrade(p, counterparty, proposal.Offer, proposal.Request, g.ai.EvaluateTrade)
}

// move rolls movement dice, advances the token, pays upkeep on lap
// completion, and resolves the landing cell's zone event.
func (g *Game) move(p *Player) error {
	cfg := g.setup.MovementDice
	if cfg.Count <= 0 {
		cfg.Count = 1
	}
	if cfg.Sides <= 0 {
		cfg.Sides = 6
	}
	steps := g.roller.RollSum(cfg.Count, cfg.Sides)

	position, wrapped := g.board.Advance(p.Position(), steps)
	p.SetPosition(position)
	g.logger.Debug("player moved",
		zap.String("player", p.ID()),
		zap.Int("steps", steps),
		zap.Int("position", position),
		zap.Bool("lap", wrapped),
	)

	if wrapped {
		g.payUpkeep(p)
		g.eliminations.CheckAndUpdate(g.players, g.turn)
		if p.Status() != StatusActive {
			return nil
		}
	}

	g.events.Trigger(p, g.board.CellAt(position), g.activeOthers(p))
	g.eliminations.CheckAndUpdate(g.players, g.turn)
	return nil
}

// payUpkeep settles a completed lap: salary in, housing cost out, plus one
// document card of round income. Income clamps against its ceiling like any
// other gain; the housing charge does not clamp against the floor, which is
// how a player goes into debt.
func (g *Game) payUpkeep(p *Player) {
	profile := p.Profile()
	salary := profile.Salary
	if profile.SalaryType == SalaryDice {
		salary = profile.SalaryBase + g.roller.Roll(6)
	}
	p.AdjustClamped(effects.ResourceMoney, salary)
	p.AdjustUnclamped(effects.ResourceMoney, -profile.HousingCost)
	p.AdjustClamped(effects.ResourceDocumentCards, 1)
	g.logger.Debug("lap upkeep",
		zap.String("player", p.ID()),
		zap.Int("salary", salary),
		zap.Int("housing", profile.HousingCost),
		zap.Int("money", p.MustResource(effects.ResourceMoney)),
		zap.Int("document_cards", p.MustResource(effects.ResourceDocumentCards)),
	)
}

// checkTerminal ends the game if the acting player just met their goal or if
// the field collapsed to at most one survivor. Goal wins are checked in turn
// order, so the earlier seat takes a same-turn tie.
func (g *Game) checkTerminal(actor *Player) *Result {
	if actor.Status() == StatusActive && actor.GoalSatisfied() {
		if err := actor.MarkWinner(); err == nil {
			return g.finish(OutcomeWinner, actor)
		}
	}

	active := g.activePlayers()
	switch len(active) {
	case 0:
		return g.finish(OutcomeEliminationWin, nil)
	case 1:
		if len(g.players) > 1 {
			survivor := active[0]
			if err := survivor.MarkWinner(); err != nil {
				return g.finish(OutcomeEliminationWin, nil)
			}
			return g.finish(OutcomeEliminationWin, survivor)
		}
	}
	return nil
}

func (g *Game) finish(outcome Outcome, winner *Player) *Result {
	g.state = StateFinished
	result := &Result{
		GameID:  g.id,
		Seed:    g.setup.Seed,
		Turns:   g.turn,
		Outcome: outcome,
	}
	if result.Turns > g.setup.MaxTurns {
		result.Turns = g.setup.MaxTurns
	}
	if winner != nil {
		result.WinnerID = winner.ID()
	}
	for _, p := range g.players {
		result.Players = append(result.Players, PlayerResult{
			PlayerID:       p.ID(),
			ProfileID:      p.Profile().ID,
			GoalKey:        p.Goal().Key,
			Status:         p.Status(),
			EliminatedTurn: p.EliminatedTurn(),
			Resources:      p.ResourceSnapshot(),
		})
	}
	g.logger.Info("game finished",
		zap.String("game", g.id),
		zap.Stringer("outcome", outcome),
		zap.String("winner", result.WinnerID),
		zap.Int("turns", result.Turns),
	)
	return result
}

// checkInvariants verifies structural invariants after every round. A
// violation aborts the run: the result would not be trustworthy.
func (g *Game) checkInvariants() error {
	for _, p := range g.players {
		if err := p.CheckBounds(); err != nil {
			return err
		}
	}
	for category, deck := range g.decks {
		draw, discard := deck.Counts()
		if draw+discard != deck.Size() {
			return fmt.Errorf("%s deck lost cards: %d+%d != %d", category, draw, discard, deck.Size())
		}
	}
	return nil
}

func (g *Game) playerByID(id string) *Player {
	for _, p := range g.players {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

func (g *Game) activePlayers() []*Player {
	var active []*Player
	for _, p := range g.players {
		if p.Status() == StatusActive {
			active = append(active, p)
		}
	}
	return active
}

func (g *Game) activeOthers(p *Player) []*Player {
	var others []*Player
	for _, other := range g.players {
		if other != p && other.Status() == StatusActive {
			others = append(others, other)
		}
	}
	return others
}
