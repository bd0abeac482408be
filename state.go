package main

import "sync"

// StateCell is the single current-lookup slot: one writer (the orchestrator),
// any number of readers (the display surface). Readers only ever get copies,
// so nothing outside the cell can mutate the live state.
type StateCell struct {
	mu       sync.RWMutex
	snapshot LookupSnapshot
	watchers map[int]chan LookupSnapshot
	nextID   int
}

func NewStateCell() *StateCell {
	return &StateCell{
		snapshot: LookupSnapshot{Phase: PhaseIdle},
		watchers: make(map[int]chan LookupSnapshot),
	}
}

// Snapshot returns a copy of the current state. The hourly and daily slices
// are cloned so a caller holding a snapshot cannot alias the cell's data.
func (c *StateCell) Snapshot() LookupSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copySnapshot(c.snapshot)
}

// publish replaces the live state wholesale and notifies watchers. Watchers
// that are not keeping up lose intermediate states, never the ordering: the
// channel always ends up holding a state at least as new as any dropped one.
func (c *StateCell) publish(next LookupSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = copySnapshot(next)
	for _, watcher := range c.watchers {
		select {
		case watcher <- copySnapshot(next):
		default:
			select {
			case <-watcher:
			default:
			}
			watcher <- copySnapshot(next)
		}
	}
}

// Watch registers a watcher channel that receives every published state it
// can keep up with. The returned cancel function unregisters it.
func (c *StateCell) Watch() (<-chan LookupSnapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	watcher := make(chan LookupSnapshot, 1)
	c.watchers[id] = watcher
	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.watchers, id)
	}
	return watcher, cancel
}

func copySnapshot(s LookupSnapshot) LookupSnapshot {
	out := s
	if s.Current != nil {
		current := *s.Current
		out.Current = &current
	}
	if s.Hourly != nil {
		out.Hourly = make([]HourlyPoint, len(s.Hourly))
		copy(out.Hourly, s.Hourly)
	}
	if s.Daily != nil {
		out.Daily = make([]DailyPoint, len(s.Daily))
		copy(out.Daily, s.Daily)
	}
	return out
}
