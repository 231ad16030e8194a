// SPDX-License-Identifier: EPL-2.0

// Package history records reversible edits. Every pushed action gets a
// serial number and the serial of the action under the cursor is the
// revision a document is at. A saved document compares revisions to know
// whether it has been modified since.
//
// History is not safe for concurrent use; edits happen on one goroutine.
package history

import "slices"

// Func is one half of an action. Its result is handed back to the caller of
// Add, Undo or Redo.
type Func = func() any

type action struct {
	do     Func
	undo   Func
	serial int
}

type History struct {
	actions []action
	cursor  int // number of applied actions
	counter int
	limit   int
	base    int // serial of the newest dropped action
}

type Option func(*History)

// WithLimit keeps at most n actions; the oldest fall off first.
func WithLimit(n int) Option {
	return func(h *History) {
		h.limit = n
	}
}

func New(opts ...Option) *History {
	h := &History{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Add drops any undone actions, records a new one and runs do.
func (h *History) Add(do, undo Func) any {
	h.counter++
	h.actions = append(h.actions[:h.cursor], action{do: do, undo: undo, serial: h.counter})
	h.cursor++

	if h.limit > 0 && len(h.actions) > h.limit {
		drop := len(h.actions) - h.limit
		h.base = h.actions[drop-1].serial
		h.actions = slices.Delete(h.actions, 0, drop)
		h.cursor -= drop
	}

	return do()
}

// Undo reverts the action under the cursor. ok is false when there is
// nothing to undo.
func (h *History) Undo() (result any, ok bool) {
	if h.cursor == 0 {
		return nil, false
	}
	h.cursor--
	return h.actions[h.cursor].undo(), true
}

// Redo re-applies the next undone action. ok is false when there is
// nothing to redo.
func (h *History) Redo() (result any, ok bool) {
	if h.cursor == len(h.actions) {
		return nil, false
	}
	a := h.actions[h.cursor]
	h.cursor++
	return a.do(), true
}

// Revision is the serial of the last applied action, 0 at the origin.
// Serials depend on position: undo, add, undo lands on an older serial
// again.
func (h *History) Revision() int {
	if h.cursor == 0 {
		return h.base
	}
	return h.actions[h.cursor-1].serial
}

func (h *History) IsEmpty() bool { return len(h.actions) == 0 }
func (h *History) Len() int      { return len(h.actions) }
func (h *History) CanUndo() bool { return h.cursor > 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.actions) }
