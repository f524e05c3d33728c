package board

// history is a bounded stack of full board snapshots, oldest first.
type history struct {
	depth     int
	snapshots [][]uint32
}

func newHistory(depth int) *history {
	return &history{
		depth:     depth,
		snapshots: make([][]uint32, 0, min(depth, 64)),
	}
}

// push stores a copy of cells, evicting the oldest snapshot when full.
func (h *history) push(cells []uint32) {
	if h.depth == 0 {
		return
	}
	if len(h.snapshots) >= h.depth {
		h.snapshots = h.snapshots[1:]
	}

	snap := make([]uint32, len(cells))
	copy(snap, cells)
	h.snapshots = append(h.snapshots, snap)
}

// pop removes and returns the latest snapshot.
func (h *history) pop() ([]uint32, bool) {
	if len(h.snapshots) == 0 {
		return nil, false
	}
	last := h.snapshots[len(h.snapshots)-1]
	h.snapshots = h.snapshots[:len(h.snapshots)-1]
	return last, true
}

func (h *history) len() int {
	return len(h.snapshots)
}

func (h *history) clear() {
	h.snapshots = h.snapshots[:0]
}
