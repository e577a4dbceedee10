package game

import (
	"testing"

	"github.com/vivabureaucracia/simulator-go/internal/game/dice"
)

func TestNewBoardRejectsEmptyLayout(t *testing.T) {
	if _, err := NewBoard(nil); err == nil {
		t.Fatal("expected error for empty layout")
	}
}

func TestAdvanceWrapsAroundStart(t *testing.T) {
	board, err := NewBoard([]ZoneType{ZoneDocument, ZoneHealthHousing, ZoneRandom, ZoneDocument})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		position, steps int
		want            int
		wrapped         bool
	}{
		{0, 1, 1, false},
		{0, 3, 3, false},
		{0, 4, 0, true},
		{3, 1, 0, true},
		{3, 6, 1, true},
		{2, 10, 0, true},
	}
	for _, tc := range cases {
		got, wrapped := board.Advance(tc.position, tc.steps)
		if got != tc.want || wrapped != tc.wrapped {
			t.Errorf("Advance(%d, %d) = (%d, %v), want (%d, %v)",
				tc.position, tc.steps, got, wrapped, tc.want, tc.wrapped)
		}
	}
}

func TestGenerateBoardFillsFrequencies(t *testing.T) {
	board, err := GenerateBoard(10, map[ZoneType]int{
		ZoneDocument:      3,
		ZoneHealthHousing: 2,
	}, dice.NewRoller(7))
	if err != nil {
		t.Fatal(err)
	}
	if board.Size() != 10 {
		t.Fatalf("size = %d, want 10", board.Size())
	}

	counts := map[ZoneType]int{}
	for i := 0; i < board.Size(); i++ {
		counts[board.ZoneOf(i)]++
	}
	if counts[ZoneDocument] != 3 || counts[ZoneHealthHousing] != 2 || counts[ZoneRandom] != 5 {
		t.Errorf("zone counts = %v, want 3 document, 2 health, 5 random", counts)
	}
}

func TestGenerateBoardSameSeedSameLayout(t *testing.T) {
	frequencies := map[ZoneType]int{
		ZoneDocument:      14,
		ZoneHealthHousing: 12,
		ZoneRandom:        14,
	}
	for run := 0; run < 20; run++ {
		first, err := GenerateBoard(40, frequencies, dice.NewRoller(99))
		if err != nil {
			t.Fatal(err)
		}
		second, err := GenerateBoard(40, frequencies, dice.NewRoller(99))
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < first.Size(); i++ {
			if first.ZoneOf(i) != second.ZoneOf(i) {
				t.Fatalf("run %d: layouts diverge at cell %d: %v vs %v",
					run, i, first.ZoneOf(i), second.ZoneOf(i))
			}
		}
	}
}

func TestGenerateBoardTruncatesOverflow(t *testing.T) {
	board, err := GenerateBoard(4, map[ZoneType]int{ZoneDocument: 10}, dice.NewRoller(7))
	if err != nil {
		t.Fatal(err)
	}
	if board.Size() != 4 {
		t.Fatalf("size = %d, want 4", board.Size())
	}
}

func TestCellAtNormalizesPosition(t *testing.T) {
	board, err := NewBoard([]ZoneType{ZoneDocument, ZoneHealthHousing, ZoneRandom})
	if err != nil {
		t.Fatal(err)
	}
	if cell := board.CellAt(4); cell.Index != 1 {
		t.Errorf("CellAt(4).Index = %d, want 1", cell.Index)
	}
	if cell := board.CellAt(-1); cell.Index != 2 {
		t.Errorf("CellAt(-1).Index = %d, want 2", cell.Index)
	}
}
