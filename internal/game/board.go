package game

import (
	"fmt"

	"github.com/vivabureaucracia/simulator-go/internal/game/dice"
)

// ZoneType classifies a board cell and selects which deck a landing draws from.
type ZoneType int

const (
	ZoneDocument ZoneType = iota
	ZoneHealthHousing
	ZoneRandom
)

var zoneNames = map[ZoneType]string{
	ZoneDocument:      "DOCUMENT",
	ZoneHealthHousing: "HEALTH_HOUSING",
	ZoneRandom:        "RANDOM",
}

func (z ZoneType) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("ZONE_%d", int(z))
}

// Cell is one position on the board.
type Cell struct {
	Index int
	Zone  ZoneType
}

// Board is an immutable ordered sequence of cells. The topology is circular:
// Advance wraps modulo the board size, and a wrap counts as a completed lap.
type Board struct {
	cells []Cell
}

// NewBoard builds a board from an explicit per-cell layout.
func NewBoard(zones []ZoneType) (*Board, error) {
	if len(zones) == 0 {
		return nil, fmt.Errorf("board layout is empty")
	}
	cells := make([]Cell, len(zones))
	for i, zone := range zones {
		cells[i] = Cell{Index: i, Zone: zone}
	}
	return &Board{cells: cells}, nil
}

// GenerateBoard builds a board of the given size from zone frequencies,
// shuffled with the game's random source. Unspecified cells default to the
// random zone.
func GenerateBoard(size int, frequencies map[ZoneType]int, roller *dice.Roller) (*Board, error) {
	if size <= 0 {
		return nil, fmt.Errorf("board size must be positive, got %d", size)
	}
	// Fill in a fixed zone order so the seeded shuffle is the only source
	// of layout variation.
	zones := make([]ZoneType, 0, size)
	for _, zone := range []ZoneType{ZoneDocument, ZoneHealthHousing, ZoneRandom} {
		for i := 0; i < frequencies[zone] && len(zones) < size; i++ {
			zones = append(zones, zone)
		}
	}
	for len(zones) < size {
		zones = append(zones, ZoneRandom)
	}
	roller.Shuffle(len(zones), func(i, j int) {
		zones[i], zones[j] = zones[j], zones[i]
	})
	return NewBoard(zones[:size])
}

// Size returns the number of cells.
func (b *Board) Size() int {
	return len(b.cells)
}

// ZoneOf returns the zone type of the cell at position.
func (b *Board) ZoneOf(position int) ZoneType {
	return b.cells[b.normalize(position)].Zone
}

// CellAt returns the cell at position.
func (b *Board) CellAt(position int) Cell {
	return b.cells[b.normalize(position)]
}

// Advance moves steps cells forward from position. wrapped reports whether
// the move passed the start cell, which completes a lap.
func (b *Board) Advance(position, steps int) (newPosition int, wrapped bool) {
	newPosition = b.normalize(position + steps)
	wrapped = position+steps >= len(b.cells)
	return newPosition, wrapped
}

func (b *Board) normalize(position int) int {
	size := len(b.cells)
	return ((position % size) + size) % size
}
