package board

// lines returns, for every row (horizontal) or column (vertical), the cell
// indices ordered from the edge the tiles travel towards.
func (b *Board) lines(horizontal, positive bool) [][]int {
	count, length := b.height, b.width
	if !horizontal {
		count, length = b.width, b.height
	}

	out := make([][]int, count)
	for l := range count {
		line := make([]int, length)
		for i := range length {
			// Position along the line, counted from the leading edge.
			p := i
			if positive {
				p = length - 1 - i
			}

			if horizontal {
				line[i] = b.linear(p, l)
			} else {
				line[i] = b.linear(l, p)
			}
		}
		out[l] = line
	}

	return out
}

// lineCanMove reports whether collapsing the line would change it.
func (b *Board) lineCanMove(line []int) bool {
	var prev uint32
	gap := false

	for _, id := range line {
		v := b.cells[id]
		if v == 0 {
			gap = true
			continue
		}
		if gap || v == prev {
			return true
		}
		prev = v
	}

	return false
}

// collapse slides and merges one line towards its leading edge.
// Returns the score gained from merges.
func (b *Board) collapse(line []int) uint32 {
	values := make([]uint32, 0, len(line))
	for _, id := range line {
		if v := b.cells[id]; v != 0 {
			values = append(values, v)
		}
	}

	merged := make([]uint32, 0, len(values))
	var score uint32
	for i := 0; i < len(values); {
		if i+1 < len(values) && values[i] == values[i+1] {
			v := values[i] * 2
			merged = append(merged, v)
			score += v
			i += 2
			continue
		}
		merged = append(merged, values[i])
		i++
	}

	for i, id := range line {
		if i < len(merged) {
			b.cells[id] = merged[i]
		} else {
			b.cells[id] = 0
		}
	}

	return score
}

func (b *Board) canMove(horizontal, positive bool) bool {
	for _, line := range b.lines(horizontal, positive) {
		if b.lineCanMove(line) {
			return true
		}
	}
	return false
}

func (b *Board) move(horizontal, positive bool) uint32 {
	b.history.push(b.cells)

	var score uint32
	for _, line := range b.lines(horizontal, positive) {
		score += b.collapse(line)
	}

	b.logger.Debug("moved tiles", "horizontal", horizontal, "positive", positive, "score", score)
	return score
}

// CanMoveHorizontally reports whether sliding along x changes the board.
// positive slides towards x = W-1.
func (b *Board) CanMoveHorizontally(positive bool) bool {
	return b.canMove(true, positive)
}

// CanMoveVertically reports whether sliding along y changes the board.
// positive slides towards y = H-1.
func (b *Board) CanMoveVertically(positive bool) bool {
	return b.canMove(false, positive)
}

// CanMove reports whether any of the four slides is legal.
func (b *Board) CanMove() bool {
	return b.CanMoveHorizontally(true) ||
		b.CanMoveHorizontally(false) ||
		b.CanMoveVertically(true) ||
		b.CanMoveVertically(false)
}

// MoveHorizontally slides every row and returns the points earned.
// A snapshot is pushed even when nothing moves, so callers should check
// CanMoveHorizontally first.
func (b *Board) MoveHorizontally(positive bool) uint32 {
	return b.move(true, positive)
}

// MoveVertically slides every column and returns the points earned.
// A snapshot is pushed even when nothing moves, so callers should check
// CanMoveVertically first.
func (b *Board) MoveVertically(positive bool) uint32 {
	return b.move(false, positive)
}
