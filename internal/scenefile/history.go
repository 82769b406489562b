package scenefile

// DefaultHistoryDepth is the number of undo steps kept.
const DefaultHistoryDepth = 64

// History is a bounded undo/redo stack of Settings snapshots.
type History struct {
	current Settings
	undo    []Settings
	redo    []Settings
	depth   int
}

// NewHistory starts a history at initial.
func NewHistory(initial Settings, depth int) *History {
	if depth < 1 {
		depth = DefaultHistoryDepth
	}
	return &History{current: initial, depth: depth}
}

// Commit records s as the new current state. Committing a value equal to
// the current one is a no-op. Any redo steps are discarded.
func (h *History) Commit(s Settings) bool {
	if s == h.current {
		return false
	}
	h.undo = append(h.undo, h.current)
	if len(h.undo) > h.depth {
		h.undo = h.undo[len(h.undo)-h.depth:]
	}
	h.redo = h.redo[:0]
	h.current = s
	return true
}

// Reset replaces the current state and clears both stacks.
func (h *History) Reset(s Settings) {
	h.current = s
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

// Undo steps back once and returns the restored state.
func (h *History) Undo() (Settings, bool) {
	if len(h.undo) == 0 {
		return h.current, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, h.current)
	h.current = prev
	return prev, true
}

// Redo re-applies the last undone step.
func (h *History) Redo() (Settings, bool) {
	if len(h.redo) == 0 {
		return h.current, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, h.current)
	h.current = next
	return next, true
}

// CanUndo reports whether Undo would change anything.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would change anything.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
