package game

import (
	"go.uber.org/zap"

	"github.com/vivabureaucracia/simulator-go/internal/game/dice"
	"github.com/vivabureaucracia/simulator-go/internal/game/effects"
)

// ChallengeOutcome is the result of one dice challenge. Margin is the total
// minus the difficulty, so a tie has margin 0 and counts as success.
type ChallengeOutcome struct {
	Success bool
	Margin  int
	Roll    int
}

// DiceConfig declares how challenge dice are rolled.
type DiceConfig struct {
	Count int
	Sides int
}

// ChallengeResolver resolves dice-plus-stat checks against a difficulty.
// A single resolution per invocation, no retries: a rerolled die would change
// game outcomes and break simulation fidelity.
type ChallengeResolver struct {
	cfg    DiceConfig
	roller *dice.Roller
	logger *zap.Logger
}

// NewChallengeResolver creates a resolver over the game's random source.
func NewChallengeResolver(cfg DiceConfig, roller *dice.Roller, logger *zap.Logger) *ChallengeResolver {
	if cfg.Count <= 0 {
		cfg.Count = 1
	}
	if cfg.Sides <= 0 {
		cfg.Sides = 6
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChallengeResolver{cfg: cfg, roller: roller, logger: logger}
}

// Resolve rolls the configured dice, adds the player's stat, and compares
// against difficulty. A total exactly equal to the difficulty succeeds.
// Language level skews single-die rolls: level 1 rolls with disadvantage,
// level 3 and above with advantage.
func (r *ChallengeResolver) Resolve(p *Player, stat effects.Resource, difficulty int) (ChallengeOutcome, error) {
	statValue, err := p.Resource(stat)
	if err != nil {
		return ChallengeOutcome{}, err
	}

	roll := r.roll(p)
	total := roll + statValue
	outcome := ChallengeOutcome{
		Success: total >= difficulty,
		Margin:  total - difficulty,
		Roll:    roll,
	}

	r.logger.Debug("challenge resolved",
		zap.String("player", p.ID()),
		zap.String("stat", string(stat)),
		zap.Int("roll", roll),
		zap.Int("stat_value", statValue),
		zap.Int("difficulty", difficulty),
		zap.Bool("success", outcome.Success),
	)
	return outcome, nil
}

func (r *ChallengeResolver) roll(p *Player) int {
	language := p.MustResource(effects.ResourceLanguageLevel)
	if r.cfg.Count == 1 {
		switch {
		case language <= 1:
			return r.roller.RollDisadvantage(r.cfg.Sides)
		case language >= 3:
			return r.roller.RollAdvantage(r.cfg.Sides)
		}
	}
	return r.roller.RollSum(r.cfg.Count, r.cfg.Sides)
}
