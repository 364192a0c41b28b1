package editor

// MaxUndoDepth is the number of checkpoints the undo stack retains.
const MaxUndoDepth = 20

// History is a bounded, linear undo/redo timeline of EditState snapshots.
// The zero value is an empty history ready for use.
type History struct {
	undo []EditState
	redo []EditState
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Record pushes a checkpoint and discards any redo entries. When the undo
// stack exceeds MaxUndoDepth the oldest checkpoint is evicted.
func (h *History) Record(s EditState) {
	h.undo = append(h.undo, s)
	h.redo = h.redo[:0]
	if len(h.undo) > MaxUndoDepth {
		n := copy(h.undo, h.undo[len(h.undo)-MaxUndoDepth:])
		h.undo = h.undo[:n]
	}
}

// Undo pops the most recent checkpoint and pushes current onto the redo
// stack. It returns false, and leaves both stacks alone, when there is
// nothing to undo.
func (h *History) Undo(current EditState) (EditState, bool) {
	if len(h.undo) == 0 {
		return current, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return prev, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current EditState) (EditState, bool) {
	if len(h.redo) == 0 {
		return current, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return next, true
}

// Reset empties both stacks.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

// CanUndo reports whether Undo would restore a state.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would restore a state.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoDepth returns the number of states Undo can step back through.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the number of states Redo can step forward through.
func (h *History) RedoDepth() int { return len(h.redo) }
