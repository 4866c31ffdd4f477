package styling

import "sync"

// VisibleRange tracks the 0-based inclusive window of lines currently on
// screen. -1 means "not yet known". It is written by the view and read by
// the invalidation path, which may run on the tokenizer worker.
type VisibleRange struct {
	mu    sync.RWMutex
	first int
	last  int
}

func NewVisibleRange() *VisibleRange {
	return &VisibleRange{first: -1, last: -1}
}

// Update records a new visible window. Events reporting no valid lines
// are ignored so a transient invalid viewport never collapses the window
// to empty and suppresses a legitimate redraw.
func (v *VisibleRange) Update(first, last int) {
	if first < 0 || last < first {
		return
	}

	v.mu.Lock()
	v.first = first
	v.last = last
	v.mu.Unlock()
}

// Lines returns the current window. Both values are -1 until the first
// valid update.
func (v *VisibleRange) Lines() (int, int) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.first, v.last
}
