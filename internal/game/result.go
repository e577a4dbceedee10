package game

import "github.com/vivabureaucracia/simulator-go/internal/game/effects"

// Outcome is the single terminal classification of a finished game.
type Outcome int

const (
	OutcomeWinner Outcome = iota
	OutcomeEliminationWin
	OutcomeTimeLimit
)

var outcomeNames = map[Outcome]string{
	OutcomeWinner:         "WINNER",
	OutcomeEliminationWin: "ELIMINATION_WIN",
	OutcomeTimeLimit:      "TIME_LIMIT",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "UNKNOWN"
}

// PlayerResult is one seat's final line in a game result.
type PlayerResult struct {
	PlayerID       string
	ProfileID      string
	GoalKey        string
	Status         Status
	EliminatedTurn int
	Resources      map[effects.Resource]int
}

// Result summarizes one completed game.
type Result struct {
	GameID   string
	Seed     int64
	Turns    int
	Outcome  Outcome
	WinnerID string
	Players  []PlayerResult
}
