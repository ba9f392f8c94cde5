package game

// Winner scans rows, columns, principal diagonals and anti-diagonals, in that order, and
// returns the symbol of the first run of k equal symbols it meets, or Empty.
func Winner(b *Board, k int) Cell {
	h, w := b.height, b.width

	// Horizontal
	for row := 0; row < h; row++ {
		if s := scanLine(b, row, 0, 0, 1, k); s != Empty {
			return s
		}
	}
	// Vertical
	for col := 0; col < w; col++ {
		if s := scanLine(b, 0, col, 1, 0, k); s != Empty {
			return s
		}
	}
	// Principal diagonals (down-right), anchored on the left column then the top row
	for row := h - k; row >= 0; row-- {
		if s := scanLine(b, row, 0, 1, 1, k); s != Empty {
			return s
		}
	}
	for col := 1; col <= w-k; col++ {
		if s := scanLine(b, 0, col, 1, 1, k); s != Empty {
			return s
		}
	}
	// Anti-diagonals (down-left), anchored on the top row then the right column
	for col := k - 1; col < w; col++ {
		if s := scanLine(b, 0, col, 1, -1, k); s != Empty {
			return s
		}
	}
	for row := 1; row <= h-k; row++ {
		if s := scanLine(b, row, w-1, 1, -1, k); s != Empty {
			return s
		}
	}
	return Empty
}

// scanLine walks from (row, col) in direction (dr, dc) until it leaves the board.
func scanLine(b *Board, row, col, dr, dc, k int) Cell {
	run := Empty
	count := 0
	for row >= 0 && row < b.height && col >= 0 && col < b.width {
		s := b.At(row, col)
		switch {
		case s == Empty:
			run, count = Empty, 0
		case s == run:
			count++
		default:
			run, count = s, 1
		}
		if run != Empty && count >= k {
			return run
		}
		row += dr
		col += dc
	}
	return Empty
}

// StatusOf resolves the outcome of b for the player drawing symbol.
func StatusOf(b *Board, symbol Cell, k int) Status {
	return statusOf(Winner(b, k), symbol)
}

func statusOf(winner, symbol Cell) Status {
	switch winner {
	case Empty:
		return None
	case symbol:
		return Won
	default:
		return Lost
	}
}

// IsTerminal reports a win for either side or a full board.
func IsTerminal(b *Board, k int) bool {
	return Winner(b, k) != Empty || b.IsFull()
}
