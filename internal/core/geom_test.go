package core

import (
	"errors"
	"testing"
)

func TestNewBoardValidation(t *testing.T) {
	tests := []struct {
		name                string
		width, height, cell int
		wantErr             bool
	}{
		{"classic 600x400", 600, 400, 10, false},
		{"single cell", 10, 10, 10, false},
		{"width not aligned", 605, 400, 10, true},
		{"height not aligned", 600, 401, 10, true},
		{"zero cell", 600, 400, 0, true},
		{"negative width", -10, 400, 10, true},
		{"zero height", 600, 0, 10, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBoard(tc.width, tc.height, tc.cell)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidBoard) {
					t.Errorf("NewBoard(%d, %d, %d) error = %v, expected ErrInvalidBoard", tc.width, tc.height, tc.cell, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBoard(%d, %d, %d) unexpected error: %v", tc.width, tc.height, tc.cell, err)
			}
			if b.Width() != tc.width || b.Height() != tc.height || b.CellSize() != tc.cell {
				t.Errorf("NewBoard() = %v, expected %dx%d/%d", b, tc.width, tc.height, tc.cell)
			}
		})
	}
}

func TestMustBoardPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustBoard should panic on misaligned dimensions")
		}
	}()
	MustBoard(15, 10, 10)
}

func TestBoardContains(t *testing.T) {
	b := MustBoard(600, 400, 10)

	tests := []struct {
		name     string
		cell     Cell
		expected bool
	}{
		{"origin", Cell{0, 0}, true},
		{"last cell", Cell{590, 390}, true},
		{"centre", Cell{300, 200}, true},
		{"one step left of origin", Cell{-10, 0}, false},
		{"one unit left of origin", Cell{-1, 0}, false},
		{"above", Cell{0, -10}, false},
		{"right edge (exclusive)", Cell{600, 0}, false},
		{"bottom edge (exclusive)", Cell{0, 400}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Contains(tc.cell); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.cell, got, tc.expected)
			}
		})
	}
}

func TestBoardGeometry(t *testing.T) {
	b := MustBoard(600, 400, 10)

	if b.Cols() != 60 || b.Rows() != 40 {
		t.Errorf("Cols/Rows = %d/%d, expected 60/40", b.Cols(), b.Rows())
	}
	if c := b.Center(); c != (Cell{300, 200}) {
		t.Errorf("Center() = %v, expected (300,200)", c)
	}
	if b.Snap(37) != 30 {
		t.Errorf("Snap(37) = %d, expected 30", b.Snap(37))
	}

	odd := MustBoard(70, 50, 10)
	if c := odd.Center(); c != (Cell{30, 20}) {
		t.Errorf("Center() of 70x50 = %v, expected (30,20)", c)
	}
}

func TestBoardFit(t *testing.T) {
	b := MustBoard(600, 400, 10)

	small := b.Fit(30, 20)
	if small.Width() != 300 || small.Height() != 200 || small.CellSize() != 10 {
		t.Errorf("Fit(30, 20) = %v, expected 300x200/10", small)
	}

	same := b.Fit(100, 100)
	if same != b {
		t.Errorf("Fit larger than board = %v, expected %v", same, b)
	}

	tiny := b.Fit(0, -3)
	if tiny.Cols() != 1 || tiny.Rows() != 1 {
		t.Errorf("Fit(0, -3) = %v, expected a single cell", tiny)
	}
}

func TestHeadingDelta(t *testing.T) {
	tests := []struct {
		h      Heading
		dx, dy int
	}{
		{HeadingLeft, -1, 0},
		{HeadingRight, 1, 0},
		{HeadingUp, 0, -1},
		{HeadingDown, 0, 1},
	}

	for _, tc := range tests {
		dx, dy := tc.h.Delta()
		if dx != tc.dx || dy != tc.dy {
			t.Errorf("%s.Delta() = (%d, %d), expected (%d, %d)", tc.h, dx, dy, tc.dx, tc.dy)
		}
	}
}

func TestHeadingLetterRoundTrip(t *testing.T) {
	for _, h := range []Heading{HeadingLeft, HeadingRight, HeadingUp, HeadingDown} {
		got, ok := HeadingFromLetter(h.Letter())
		if !ok || got != h {
			t.Errorf("HeadingFromLetter(%q) = %v, %v; expected %v", h.Letter(), got, ok, h)
		}
	}
	if _, ok := HeadingFromLetter('x'); ok {
		t.Error("HeadingFromLetter('x') should fail")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}
