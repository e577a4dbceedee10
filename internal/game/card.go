package game

import (
	"fmt"

	"github.com/vivabureaucracia/simulator-go/internal/game/effects"
)

// Category identifies which deck a card belongs to.
type Category int

const (
	CategoryAction Category = iota
	CategoryGreen
	CategoryRed
	CategoryWhite
	CategoryCommon
)

var categoryNames = map[Category]string{
	CategoryAction: "action",
	CategoryGreen:  "green",
	CategoryRed:    "red",
	CategoryWhite:  "white",
	CategoryCommon: "common",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category_%d", int(c))
}

// ParseCategory maps a card-data category name to its Category.
func ParseCategory(name string) (Category, error) {
	for category, categoryName := range categoryNames {
		if categoryName == name {
			return category, nil
		}
	}
	return 0, fmt.Errorf("unknown card category %q", name)
}

// Categories lists every deck category in a stable order.
var Categories = []Category{CategoryAction, CategoryGreen, CategoryRed, CategoryWhite, CategoryCommon}

// Card is immutable once loaded; decks only reorder and consume cards.
type Card struct {
	ID       string
	Name     string
	Category Category
	Effect   *effects.Spec
	Metadata map[string]string
}
