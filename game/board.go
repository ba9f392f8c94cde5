package game

import "fmt"

// Cell is the content of a board square
type Cell int8

const (
	Empty Cell = iota
	Symbol1
	Symbol2
)

// Board is a height x width grid filled by gravity. Row 0 is the top row, so a column
// fills from row height-1 upwards.
type Board struct {
	height int
	width  int
	cells  []Cell // Row-major
}

// NewBoard allocates an empty board.
func NewBoard(height, width int) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, height, width)
	}
	return &Board{
		height: height,
		width:  width,
		cells:  make([]Cell, height*width),
	}, nil
}

func (b *Board) Height() int { return b.height }
func (b *Board) Width() int  { return b.width }

// At returns the cell at (row, col). Indexing outside the board means a broken caller
// and panics.
func (b *Board) At(row, col int) Cell {
	b.mustContain(row, col)
	return b.cells[row*b.width+col]
}

// IsColumnFull reports whether col has no empty cell left. Like At, it panics outside
// the board.
func (b *Board) IsColumnFull(col int) bool {
	b.mustContain(0, col)
	return b.cells[col] != Empty
}

func (b *Board) mustContain(row, col int) {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		panic(fmt.Sprintf("cell (%d, %d) outside %dx%d board", row, col, b.height, b.width))
	}
}

// IsFull reports whether the top row, and therefore the whole board, is occupied.
func (b *Board) IsFull() bool {
	for col := 0; col < b.width; col++ {
		if b.cells[col] == Empty {
			return false
		}
	}
	return true
}

// Drop places symbol in the lowest empty row of col and returns where it landed.
func (b *Board) Drop(col int, symbol Cell) (int, int, error) {
	if col < 0 || col >= b.width {
		return -1, -1, ErrColumnOutOfRange
	}
	for row := b.height - 1; row >= 0; row-- {
		idx := row*b.width + col
		if b.cells[idx] == Empty {
			b.cells[idx] = symbol
			return row, col, nil
		}
	}
	return -1, -1, ErrColumnFull
}

func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
}

// Clone returns a deep copy that shares no storage with b.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		height: b.height,
		width:  b.width,
		cells:  cells,
	}
}
