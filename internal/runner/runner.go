package runner

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vivabureaucracia/simulator-go/internal/config"
	"github.com/vivabureaucracia/simulator-go/internal/game"
	"github.com/vivabureaucracia/simulator-go/internal/game/effects"
)

var zoneNames = map[string]game.ZoneType{
	"document":       game.ZoneDocument,
	"health_housing": game.ZoneHealthHousing,
	"random":         game.ZoneRandom,
}

// Runner executes a batch of independent games and aggregates their results.
// Run i is seeded with base seed plus i, so a batch is reproducible and any
// single game can be replayed from the summary alone.
type Runner struct {
	cfg    *config.Config
	seats  []game.Profile
	goals  []game.Goal
	cards  map[game.Category][]*game.Card
	logger *zap.Logger
}

// New assembles a runner from loaded configuration and data. Every seat must
// resolve to a profile, and the game setup is built once up front so
// configuration errors fail the batch before it starts.
func New(cfg *config.Config, profiles []game.Profile, goals []game.Goal, cards map[game.Category][]*game.Card, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	byID := make(map[string]game.Profile, len(profiles))
	for _, profile := range profiles {
		byID[profile.ID] = profile
	}
	seats := make([]game.Profile, 0, len(cfg.Game.Seats))
	for _, seat := range cfg.Game.Seats {
		profile, ok := byID[seat]
		if !ok {
			return nil, fmt.Errorf("seat %q has no profile", seat)
		}
		seats = append(seats, profile)
	}

	for zone := range cfg.Game.ZoneFrequencies {
		if _, ok := zoneNames[zone]; !ok {
			return nil, fmt.Errorf("unknown zone %q in zone_frequencies", zone)
		}
	}
	for resource := range cfg.Game.Bounds {
		if !effects.Resource(resource).IsKnown() {
			return nil, fmt.Errorf("unknown resource %q in bounds", resource)
		}
	}
	for resource := range cfg.Game.InterferenceCost {
		if !effects.Resource(resource).IsKnown() {
			return nil, fmt.Errorf("unknown resource %q in interference_cost", resource)
		}
	}

	r := &Runner{cfg: cfg, seats: seats, goals: goals, cards: cards, logger: logger}
	if _, err := game.NewGame(r.setupFor(cfg.Runner.Seed), zap.NewNop()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Runner) setupFor(seed int64) game.Setup {
	gameCfg := r.cfg.Game

	frequencies := make(map[game.ZoneType]int, len(gameCfg.ZoneFrequencies))
	for zone, count := range gameCfg.ZoneFrequencies {
		frequencies[zoneNames[zone]] = count
	}
	bounds := make(map[effects.Resource]game.Bounds, len(gameCfg.Bounds))
	for resource, b := range gameCfg.Bounds {
		bounds[effects.Resource(resource)] = game.Bounds{Floor: b.Floor, Ceiling: b.Ceiling}
	}
	cost := make(game.ResourceBundle, len(gameCfg.InterferenceCost))
	for resource, amount := range gameCfg.InterferenceCost {
		cost[effects.Resource(resource)] = amount
	}

	return game.Setup{
		Seed:            seed,
		BoardSize:       gameCfg.BoardSize,
		ZoneFrequencies: frequencies,
		Profiles:        r.seats,
		Goals:           r.goals,
		Cards:           r.cards,
		Bounds:          bounds,
		MaxTurns:        gameCfg.MaxTurns,
		Elimination: game.EliminationRules{
			NerveFloor:      gameCfg.Elimination.NerveFloor,
			NerveGraceTurns: gameCfg.Elimination.NerveGraceTurns,
			DebtFloor:       gameCfg.Elimination.DebtFloor,
			EmergencySale:   gameCfg.Elimination.EmergencySale,
		},
		ChallengeDice: game.DiceConfig{
			Count: gameCfg.ChallengeDice.Count,
			Sides: gameCfg.ChallengeDice.Sides,
		},
		MovementDice: game.DiceConfig{
			Count: gameCfg.MovementDice.Count,
			Sides: gameCfg.MovementDice.Sides,
		},
		InterferenceCost: cost,
	}
}

// Run plays the configured number of games across a worker pool and returns
// the aggregated summary. A game that aborts mid-run counts as a failed run;
// it does not stop the batch.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	workers := r.cfg.Runner.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	runs := r.cfg.Runner.Runs
	r.logger.Info("starting simulation batch",
		zap.Int("runs", runs),
		zap.Int("workers", workers),
		zap.Int64("base_seed", r.cfg.Runner.Seed),
	)

	stats := NewStats()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < runs; i++ {
		if gctx.Err() != nil {
			break
		}
		seed := r.cfg.Runner.Seed + int64(i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			gm, err := game.NewGame(r.setupFor(seed), r.logger)
			if err != nil {
				return err
			}
			result, err := gm.Run()
			if err != nil {
				r.logger.Warn("game aborted", zap.Int64("seed", seed), zap.Error(err))
				stats.RecordFailure()
				return nil
			}
			stats.Record(result)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	summary := stats.Summary()
	r.logger.Info("simulation batch finished",
		zap.Int("total", summary.TotalSimulations),
		zap.Int("failed", summary.FailedRuns),
		zap.Float64("average_turns", summary.AverageGameDurationTurns),
	)
	return summary, nil
}
