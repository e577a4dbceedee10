package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vivabureaucracia/simulator-go/internal/config"
	"github.com/vivabureaucracia/simulator-go/internal/game"
	"github.com/vivabureaucracia/simulator-go/internal/game/effects"
)

func batchConfig(runs int) *config.Config {
	return &config.Config{
		Runner: config.RunnerConfig{Runs: runs, Workers: 2, Seed: 11},
		Game: config.GameConfig{
			BoardSize: 12,
			ZoneFrequencies: map[string]int{
				"document":       4,
				"health_housing": 4,
				"random":         4,
			},
			MaxTurns:      20,
			Seats:         []string{"student", "worker"},
			ChallengeDice: config.DiceConfig{Count: 1, Sides: 6},
			MovementDice:  config.DiceConfig{Count: 1, Sides: 6},
			Bounds: map[string]config.BoundsConfig{
				"money":  {Floor: 0, Ceiling: 2000},
				"nerves": {Floor: 0, Ceiling: 10},
			},
			Elimination:      config.EliminationConfig{NerveFloor: 0, DebtFloor: -50, EmergencySale: true},
			InterferenceCost: map[string]int{"money": 2},
		},
	}
}

func batchProfiles() []game.Profile {
	return []game.Profile{
		{
			ID: "student", Name: "Student",
			StartingMoney: 80, StartingNerves: 8, StartingLanguage: 1,
			SalaryType: game.SalaryDice, SalaryBase: 5, HousingCost: 10, StartingItems: 1,
			AI: game.AIProfile{NerveThreshold: 3, TradeAggression: 0.3, InterferenceRate: 0.2},
		},
		{
			ID: "worker", Name: "Worker",
			StartingMoney: 120, StartingNerves: 6, StartingLanguage: 2,
			Salary: 20, SalaryType: game.SalaryFixed, HousingCost: 15,
			AI: game.AIProfile{NerveThreshold: 2},
		},
	}
}

func batchGoals() []game.Goal {
	return []game.Goal{
		{Key: "prosperity", Requires: map[effects.Resource]int{effects.ResourceMoney: 400}},
		{Key: "peace", Requires: map[effects.Resource]int{effects.ResourceNerves: 10, effects.ResourceMoney: 150}},
	}
}

func batchCards() map[game.Category][]*game.Card {
	cards := make(map[game.Category][]*game.Card)
	add := func(category game.Category, id string, effect *effects.Spec, count int) {
		for i := 0; i < count; i++ {
			cards[category] = append(cards[category], &game.Card{ID: id, Category: category, Effect: effect})
		}
	}
	add(game.CategoryGreen, "stamp", effects.Delta(effects.ResourceDocumentCards, 1), 4)
	add(game.CategoryGreen, "queue", effects.Delta(effects.ResourceNerves, -1), 4)
	add(game.CategoryRed, "rent-hike", effects.Delta(effects.ResourceMoney, -15), 4)
	add(game.CategoryRed, "quiet-week", effects.Delta(effects.ResourceNerves, 2), 4)
	add(game.CategoryWhite, "windfall", effects.Delta(effects.ResourceMoney, 25), 4)
	add(game.CategoryWhite, "exam", &effects.Spec{
		Op:         effects.OpChallenge,
		Stat:       effects.ResourceLanguageLevel,
		Difficulty: 5,
		OnSuccess:  effects.Delta(effects.ResourceDocumentLevel, 1),
		OnFailure:  effects.Delta(effects.ResourceNerves, -1),
	}, 4)
	add(game.CategoryAction, "denounce", effects.Delta(effects.ResourceNerves, -2), 4)
	add(game.CategoryCommon, "bicycle", nil, 4)
	return cards
}

func TestNewRejectsUnresolvedSeat(t *testing.T) {
	cfg := batchConfig(5)
	cfg.Game.Seats = []string{"student", "ghost"}
	_, err := New(cfg, batchProfiles(), batchGoals(), batchCards(), zap.NewNop())
	assert.Error(t, err)
}

func TestNewRejectsUnknownNames(t *testing.T) {
	cfg := batchConfig(5)
	cfg.Game.ZoneFrequencies["swamp"] = 2
	_, err := New(cfg, batchProfiles(), batchGoals(), batchCards(), zap.NewNop())
	require.Error(t, err)

	cfg = batchConfig(5)
	cfg.Game.Bounds["charisma"] = config.BoundsConfig{Floor: 0, Ceiling: 5}
	_, err = New(cfg, batchProfiles(), batchGoals(), batchCards(), zap.NewNop())
	assert.Error(t, err)
}

func TestRunCompletesBatch(t *testing.T) {
	r, err := New(batchConfig(8), batchProfiles(), batchGoals(), batchCards(), zap.NewNop())
	require.NoError(t, err)

	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, summary.TotalSimulations)
	assert.Zero(t, summary.FailedRuns)
	assert.Greater(t, summary.AverageGameDurationTurns, 0.0)
	assert.Contains(t, summary.WinRateByCharacter, "student")
	assert.Contains(t, summary.WinRateByCharacter, "worker")
}

func TestRunReproducibleAcrossBatches(t *testing.T) {
	run := func() Summary {
		r, err := New(batchConfig(6), batchProfiles(), batchGoals(), batchCards(), zap.NewNop())
		require.NoError(t, err)
		summary, err := r.Run(context.Background())
		require.NoError(t, err)
		return summary
	}
	assert.Equal(t, run(), run())
}

func TestRunHonorsCancellation(t *testing.T) {
	r, err := New(batchConfig(10000), batchProfiles(), batchGoals(), batchCards(), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx)
	assert.Error(t, err)
}
