package anchor

import "sync"

// FocusTracker holds the most recently interacted-with anchor widget. It is a
// single-slot reference owned by a session-scoped coordinator; keybinding
// actions with no direct argument resolve their target through it.
type FocusTracker struct {
	mu      sync.Mutex
	current *Widget
}

// NewFocusTracker creates an empty tracker
func NewFocusTracker() *FocusTracker {
	return &FocusTracker{}
}

// Set records w as the last-focused anchor
func (t *FocusTracker) Set(w *Widget) {
	t.mu.Lock()
	t.current = w
	t.mu.Unlock()
}

// Current returns the last-focused anchor, or nil when none is tracked
func (t *FocusTracker) Current() *Widget {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Clear empties the slot only while it still points at w, so a disposed
// widget never dangles and never clobbers a newer focus.
func (t *FocusTracker) Clear(w *Widget) {
	t.mu.Lock()
	if t.current == w {
		t.current = nil
	}
	t.mu.Unlock()
}
