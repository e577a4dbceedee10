package game

import (
	"github.com/vivabureaucracia/simulator-go/internal/game/effects"
)

// PlayerView is the visible slice of a player's state handed to the AI
// policy. Views are copies: the policy cannot mutate game state through them.
type PlayerView struct {
	ID           string
	ProfileID    string
	Status       Status
	Position     int
	Resources    map[effects.Resource]int
	GoalKey      string
	GoalProgress float64
}

// GameStateView is what the AI sees when choosing an action: its own state,
// every opponent's visible state, and what an interference play costs.
type GameStateView struct {
	Turn             int
	BoardSize        int
	InterferenceCost ResourceBundle
	Self             PlayerView
	Opponents        []PlayerView
}

func playerView(p *Player) PlayerView {
	return PlayerView{
		ID:           p.ID(),
		ProfileID:    p.Profile().ID,
		Status:       p.Status(),
		Position:     p.Position(),
		Resources:    p.ResourceSnapshot(),
		GoalKey:      p.Goal().Key,
		GoalProgress: p.GoalProgress(),
	}
}

// viewFor assembles the game state view for one player.
func (g *Game) viewFor(p *Player) GameStateView {
	view := GameStateView{
		Turn:             g.turn,
		BoardSize:        g.board.Size(),
		InterferenceCost: g.setup.InterferenceCost,
		Self:             playerView(p),
	}
	for _, other := range g.players {
		if other == p {
			continue
		}
		view.Opponents = append(view.Opponents, playerView(other))
	}
	return view
}
