package data

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vivabureaucracia/simulator-go/internal/game"
	"github.com/vivabureaucracia/simulator-go/internal/game/effects"
)

// cardFile is the on-disk card set layout.
type cardFile struct {
	Cards []cardSpec `json:"cards"`
}

type cardSpec struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Category string            `json:"category"`
	Count    int               `json:"count,omitempty"`
	Effect   *effects.Spec     `json:"effect"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type profileFile struct {
	Profiles []profileSpec `json:"profiles"`
}

type profileSpec struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	StartingMoney    int           `json:"starting_money"`
	StartingNerves   int           `json:"starting_nerves"`
	StartingLanguage int           `json:"starting_language"`
	Salary           int           `json:"salary"`
	SalaryType       string        `json:"salary_type"`
	SalaryBase       int           `json:"salary_base"`
	HousingCost      int           `json:"housing_cost"`
	StartingItems    int           `json:"starting_items"`
	AI               aiProfileSpec `json:"ai"`
}

type aiProfileSpec struct {
	NerveThreshold          int     `json:"nerve_threshold"`
	TradeAggression         float64 `json:"trade_aggression"`
	InterferenceRate        float64 `json:"interference_rate"`
	NearWinInterferenceRate float64 `json:"near_win_interference_rate"`
}

type goalFile struct {
	Goals []goalSpec `json:"goals"`
}

type goalSpec struct {
	Key      string         `json:"key"`
	Requires map[string]int `json:"requires"`
}

// LoadCards reads a card set file and returns the cards grouped by category.
// Count expands a spec into that many copies; it defaults to one. Any
// malformed card fails the whole load: bad card data is a configuration
// error, not something to paper over at runtime.
func LoadCards(path string) (map[game.Category][]*game.Card, error) {
	var file cardFile
	if err := readJSON(path, &file); err != nil {
		return nil, err
	}
	if len(file.Cards) == 0 {
		return nil, fmt.Errorf("card file %s holds no cards", path)
	}

	cards := make(map[game.Category][]*game.Card)
	for _, spec := range file.Cards {
		if spec.ID == "" {
			return nil, fmt.Errorf("card without id in %s", path)
		}
		category, err := game.ParseCategory(spec.Category)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", spec.ID, err)
		}
		if spec.Effect != nil {
			if err := spec.Effect.Validate(); err != nil {
				return nil, fmt.Errorf("card %q: %w", spec.ID, err)
			}
		}
		count := spec.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			cards[category] = append(cards[category], &game.Card{
				ID:       spec.ID,
				Name:     spec.Name,
				Category: category,
				Effect:   spec.Effect,
				Metadata: spec.Metadata,
			})
		}
	}
	return cards, nil
}

// LoadProfiles reads the character archetypes.
func LoadProfiles(path string) ([]game.Profile, error) {
	var file profileFile
	if err := readJSON(path, &file); err != nil {
		return nil, err
	}
	if len(file.Profiles) == 0 {
		return nil, fmt.Errorf("profile file %s holds no profiles", path)
	}

	profiles := make([]game.Profile, 0, len(file.Profiles))
	seen := make(map[string]bool, len(file.Profiles))
	for _, spec := range file.Profiles {
		if spec.ID == "" {
			return nil, fmt.Errorf("profile without id in %s", path)
		}
		if seen[spec.ID] {
			return nil, fmt.Errorf("duplicate profile %q in %s", spec.ID, path)
		}
		seen[spec.ID] = true

		salaryType := game.SalaryType(spec.SalaryType)
		switch salaryType {
		case "":
			salaryType = game.SalaryFixed
		case game.SalaryFixed, game.SalaryDice:
		default:
			return nil, fmt.Errorf("profile %q: unknown salary type %q", spec.ID, spec.SalaryType)
		}

		profiles = append(profiles, game.Profile{
			ID:               spec.ID,
			Name:             spec.Name,
			StartingMoney:    spec.StartingMoney,
			StartingNerves:   spec.StartingNerves,
			StartingLanguage: spec.StartingLanguage,
			Salary:           spec.Salary,
			SalaryType:       salaryType,
			SalaryBase:       spec.SalaryBase,
			HousingCost:      spec.HousingCost,
			StartingItems:    spec.StartingItems,
			AI: game.AIProfile{
				NerveThreshold:          spec.AI.NerveThreshold,
				TradeAggression:         spec.AI.TradeAggression,
				InterferenceRate:        spec.AI.InterferenceRate,
				NearWinInterferenceRate: spec.AI.NearWinInterferenceRate,
			},
		})
	}
	return profiles, nil
}

// LoadGoals reads the win condition pool.
func LoadGoals(path string) ([]game.Goal, error) {
	var file goalFile
	if err := readJSON(path, &file); err != nil {
		return nil, err
	}
	if len(file.Goals) == 0 {
		return nil, fmt.Errorf("goal file %s holds no goals", path)
	}

	goals := make([]game.Goal, 0, len(file.Goals))
	for _, spec := range file.Goals {
		goal := game.Goal{
			Key:      spec.Key,
			Requires: make(map[effects.Resource]int, len(spec.Requires)),
		}
		for resource, required := range spec.Requires {
			goal.Requires[effects.Resource(resource)] = required
		}
		if err := goal.Validate(); err != nil {
			return nil, fmt.Errorf("in %s: %w", path, err)
		}
		goals = append(goals, goal)
	}
	return goals, nil
}

func readJSON(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
