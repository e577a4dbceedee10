package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/vivabureaucracia/simulator-go/internal/game"
)

// Stats accumulates results from concurrent game runs. All methods are safe
// for concurrent use.
type Stats struct {
	mu sync.Mutex

	completed int
	failed    int
	timeLimit int
	turnsSum  int

	winsByProfile  map[string]int
	playsByProfile map[string]int

	winsByGoal    map[string]int
	assignsByGoal map[string]int

	elimCount   map[string]int
	elimTurnSum map[string]int
}

// NewStats creates an empty collector.
func NewStats() *Stats {
	return &Stats{
		winsByProfile:  make(map[string]int),
		playsByProfile: make(map[string]int),
		winsByGoal:     make(map[string]int),
		assignsByGoal:  make(map[string]int),
		elimCount:      make(map[string]int),
		elimTurnSum:    make(map[string]int),
	}
}

// Record folds one finished game into the totals.
func (s *Stats) Record(result *game.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.completed++
	s.turnsSum += result.Turns
	if result.Outcome == game.OutcomeTimeLimit {
		s.timeLimit++
	}

	for _, pr := range result.Players {
		s.playsByProfile[pr.ProfileID]++
		s.assignsByGoal[pr.GoalKey]++
		if pr.PlayerID == result.WinnerID {
			s.winsByProfile[pr.ProfileID]++
			s.winsByGoal[pr.GoalKey]++
		}
		if pr.Status == game.StatusEliminated {
			s.elimCount[pr.ProfileID]++
			s.elimTurnSum[pr.ProfileID] += pr.EliminatedTurn
		}
	}
}

// RecordFailure counts a game that aborted without a result.
func (s *Stats) RecordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed++
}

// EliminationStat summarizes one character's eliminations.
type EliminationStat struct {
	Count       int     `json:"count"`
	Rate        float64 `json:"rate"`
	AverageTurn float64 `json:"average_turn"`
}

// Summary is the aggregated, serializable outcome of a batch.
type Summary struct {
	TotalSimulations           int                        `json:"total_simulations"`
	FailedRuns                 int                        `json:"failed_runs"`
	AverageGameDurationTurns   float64                    `json:"average_game_duration_turns"`
	NoWinnerDueToTimeLimit     int                        `json:"no_winner_due_to_time_limit"`
	WinRateByCharacter         map[string]float64         `json:"win_rate_by_character"`
	WinRateByGoal              map[string]float64         `json:"win_rate_by_goal"`
	EliminationRateByCharacter map[string]EliminationStat `json:"elimination_rate_by_character"`
}

// Summary freezes the current totals into a serializable summary.
func (s *Stats) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := Summary{
		TotalSimulations:           s.completed + s.failed,
		FailedRuns:                 s.failed,
		NoWinnerDueToTimeLimit:     s.timeLimit,
		WinRateByCharacter:         make(map[string]float64, len(s.playsByProfile)),
		WinRateByGoal:              make(map[string]float64, len(s.assignsByGoal)),
		EliminationRateByCharacter: make(map[string]EliminationStat, len(s.playsByProfile)),
	}
	if s.completed > 0 {
		summary.AverageGameDurationTurns = float64(s.turnsSum) / float64(s.completed)
	}
	for profile, plays := range s.playsByProfile {
		summary.WinRateByCharacter[profile] = float64(s.winsByProfile[profile]) / float64(plays)

		stat := EliminationStat{Count: s.elimCount[profile]}
		stat.Rate = float64(stat.Count) / float64(plays)
		if stat.Count > 0 {
			stat.AverageTurn = float64(s.elimTurnSum[profile]) / float64(stat.Count)
		}
		summary.EliminationRateByCharacter[profile] = stat
	}
	for goal, assigns := range s.assignsByGoal {
		summary.WinRateByGoal[goal] = float64(s.winsByGoal[goal]) / float64(assigns)
	}
	return summary
}

// WriteFile writes the summary as indented JSON.
func (s Summary) WriteFile(path string) error {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing summary %s: %w", path, err)
	}
	return nil
}
