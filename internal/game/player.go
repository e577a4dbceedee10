package game

import (
	"fmt"

	"github.com/vivabureaucracia/simulator-go/internal/game/effects"
)

// Status represents a player's lifecycle state. Elimination is monotonic: an
// eliminated player never returns to active.
type Status int

const (
	StatusActive Status = iota
	StatusEliminated
	StatusWinner
)

var statusNames = map[Status]string{
	StatusActive:     "ACTIVE",
	StatusEliminated: "ELIMINATED",
	StatusWinner:     "WINNER",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATUS_%d", int(s))
}

// SalaryType selects how lap income is computed for a character.
type SalaryType string

const (
	SalaryFixed SalaryType = "fixed"
	SalaryDice  SalaryType = "dice"
)

// Bounds declares the floor and ceiling for one resource.
type Bounds struct {
	Floor   int
	Ceiling int
}

// AIProfile carries the behavioral knobs of a character archetype. Plain
// configuration into one stateless policy, not AI subtypes.
type AIProfile struct {
	NerveThreshold          int
	TradeAggression         float64
	InterferenceRate        float64
	NearWinInterferenceRate float64
}

// Profile is a character archetype: stat baselines plus AI parameters.
type Profile struct {
	ID               string
	Name             string
	StartingMoney    int
	StartingNerves   int
	StartingLanguage int
	Salary           int
	SalaryType       SalaryType
	SalaryBase       int
	HousingCost      int
	StartingItems    int
	AI               AIProfile
}

// Goal is a per-player win condition: every listed resource must reach its
// threshold. Assigned at game start, immutable thereafter.
type Goal struct {
	Key      string
	Requires map[effects.Resource]int
}

// Validate rejects goals referencing resources the player model lacks.
func (g Goal) Validate() error {
	if g.Key == "" {
		return fmt.Errorf("goal without key")
	}
	if len(g.Requires) == 0 {
		return fmt.Errorf("goal %q requires nothing", g.Key)
	}
	for resource := range g.Requires {
		if !resource.IsKnown() {
			return fmt.Errorf("goal %q references unknown resource %q", g.Key, resource)
		}
	}
	return nil
}

// Player holds one seat's position, resources, profile, goal and status.
// Resources are mutated only through the effect applier, challenge outcomes,
// the trade manager, and lap upkeep; all of them clamp through Clamp.
type Player struct {
	id      string
	profile Profile
	goal    Goal

	position  int
	resources map[effects.Resource]int
	bounds    map[effects.Resource]Bounds
	items     map[string]int

	status         Status
	eliminatedTurn int
}

// NewPlayer creates an active player from a profile and goal assignment.
func NewPlayer(profile Profile, goal Goal, bounds map[effects.Resource]Bounds) *Player {
	p := &Player{
		id:      profile.ID,
		profile: profile,
		goal:    goal,
		resources: map[effects.Resource]int{
			effects.ResourceMoney:         profile.StartingMoney,
			effects.ResourceNerves:        profile.StartingNerves,
			effects.ResourceDocumentLevel: 0,
			effects.ResourceLanguageLevel: profile.StartingLanguage,
			effects.ResourceDocumentCards: 0,
			effects.ResourceItems:         0,
		},
		bounds: bounds,
		items:  make(map[string]int),
		status: StatusActive,
	}
	return p
}

// ID implements effects.Target.
func (p *Player) ID() string { return p.id }

// Profile returns the character archetype.
func (p *Player) Profile() Profile { return p.profile }

// Goal returns the assigned win condition.
func (p *Player) Goal() Goal { return p.goal }

// Position returns the current board position.
func (p *Player) Position() int { return p.position }

// SetPosition moves the player to a board position.
func (p *Player) SetPosition(position int) { p.position = position }

// Status returns the lifecycle state.
func (p *Player) Status() Status { return p.status }

// EliminatedTurn returns the turn the player was eliminated on, or 0.
func (p *Player) EliminatedTurn() int { return p.eliminatedTurn }

// Resource implements effects.Target.
func (p *Player) Resource(name effects.Resource) (int, error) {
	value, ok := p.resources[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", effects.ErrUnknownResource, name)
	}
	return value, nil
}

// MustResource returns a resource value, or 0 for unknown names. For internal
// reads of the closed resource set.
func (p *Player) MustResource(name effects.Resource) int {
	return p.resources[name]
}

// Clamp implements effects.Target, bounding value to the resource's declared
// floor and ceiling.
func (p *Player) Clamp(name effects.Resource, value int) int {
	b, ok := p.bounds[name]
	if !ok {
		return value
	}
	if value < b.Floor {
		return b.Floor
	}
	if value > b.Ceiling {
		return b.Ceiling
	}
	return value
}

// SetResource implements effects.Target.
func (p *Player) SetResource(name effects.Resource, value int) error {
	if _, ok := p.resources[name]; !ok {
		return fmt.Errorf("%w: %s", effects.ErrUnknownResource, name)
	}
	p.resources[name] = value
	return nil
}

// AdjustClamped applies a delta through the declared bounds and returns the
// value actually applied. Used by trades and upkeep, which mutate outside the
// effect applier but follow the same clamping rules.
func (p *Player) AdjustClamped(name effects.Resource, delta int) int {
	before := p.resources[name]
	after := p.Clamp(name, before+delta)
	p.resources[name] = after
	return after - before
}

// AdjustUnclamped applies a delta without clamping. Only lap upkeep uses it:
// rent can legitimately push money below its floor, which is what the debt
// elimination rule looks for.
func (p *Player) AdjustUnclamped(name effects.Resource, delta int) {
	p.resources[name] += delta
}

// AddItem adds count copies of an item to the inventory.
func (p *Player) AddItem(itemID string, count int) {
	if count <= 0 {
		return
	}
	p.items[itemID] += count
	p.resources[effects.ResourceItems] += count
}

// RemoveItems removes count items, preferring the named item and falling back
// to any others. Returns the number actually removed.
func (p *Player) RemoveItems(itemID string, count int) int {
	removed := 0
	take := func(id string) {
		for p.items[id] > 0 && removed < count {
			p.items[id]--
			if p.items[id] == 0 {
				delete(p.items, id)
			}
			removed++
		}
	}
	if itemID != "" {
		take(itemID)
	}
	for id := range p.items {
		if removed >= count {
			break
		}
		take(id)
	}
	p.resources[effects.ResourceItems] -= removed
	return removed
}

// Items returns a copy of the item multiset.
func (p *Player) Items() map[string]int {
	out := make(map[string]int, len(p.items))
	for id, count := range p.items {
		out[id] = count
	}
	return out
}

// MarkEliminated transitions the player to eliminated. The transition is
// monotonic and records the turn; repeated calls keep the first turn.
func (p *Player) MarkEliminated(turn int) {
	if p.status != StatusActive {
		return
	}
	p.status = StatusEliminated
	p.eliminatedTurn = turn
}

// MarkWinner transitions an active player to winner.
func (p *Player) MarkWinner() error {
	if p.status != StatusActive {
		return fmt.Errorf("player %s cannot win from status %s", p.id, p.status)
	}
	p.status = StatusWinner
	return nil
}

// GoalSatisfied reports whether every goal requirement is met.
func (p *Player) GoalSatisfied() bool {
	for resource, required := range p.goal.Requires {
		if p.resources[resource] < required {
			return false
		}
	}
	return len(p.goal.Requires) > 0
}

// GoalProgress returns the mean satisfaction ratio of the goal requirements
// in [0.0, 1.0].
func (p *Player) GoalProgress() float64 {
	if len(p.goal.Requires) == 0 {
		return 0
	}
	progress := 0.0
	for resource, required := range p.goal.Requires {
		if required <= 0 {
			progress += 1.0
			continue
		}
		ratio := float64(p.resources[resource]) / float64(required)
		if ratio > 1.0 {
			ratio = 1.0
		}
		if ratio < 0 {
			ratio = 0
		}
		progress += ratio
	}
	return progress / float64(len(p.goal.Requires))
}

// ResourceSnapshot returns a copy of all resource values.
func (p *Player) ResourceSnapshot() map[effects.Resource]int {
	out := make(map[effects.Resource]int, len(p.resources))
	for name, value := range p.resources {
		out[name] = value
	}
	return out
}

// CheckBounds verifies every resource sits inside its declared bounds, with
// the exception of money which may sit below its floor between upkeep and
// the elimination check. A violation indicates a core bug, not a data error.
func (p *Player) CheckBounds() error {
	for name, value := range p.resources {
		b, ok := p.bounds[name]
		if !ok {
			continue
		}
		if name == effects.ResourceMoney && value < b.Floor {
			continue
		}
		if value < b.Floor || value > b.Ceiling {
			return fmt.Errorf("player %s resource %s=%d outside bounds [%d,%d]",
				p.id, name, value, b.Floor, b.Ceiling)
		}
	}
	return nil
}
