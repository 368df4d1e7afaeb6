package server

import (
	"sync"
	"time"

	"homerelief/internal/collection"
	"homerelief/pkg/types"
)

// viewKey scopes an admin view to one signed-in user and one record kind, so
// selection and notices survive between requests of the same screen.
type viewKey struct {
	userID string
	kind   types.RecordKind
}

type viewEntry struct {
	view     any
	lastUsed time.Time
	// live listeners attached to the view, by listener id
	listeners map[uint64]func()
}

type viewRegistry struct {
	idle time.Duration
	now  func() time.Time

	mu      sync.Mutex
	nextID  uint64
	entries map[viewKey]*viewEntry
}

func newViewRegistry(idle time.Duration) *viewRegistry {
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	return &viewRegistry{
		idle:    idle,
		now:     time.Now,
		entries: make(map[viewKey]*viewEntry),
	}
}

// getView returns the view stored under key, creating it on first use.
func getView[T collection.Record](r *viewRegistry, key viewKey, create func() *collection.View[T]) *collection.View[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[key]; ok {
		if v, ok := e.view.(*collection.View[T]); ok {
			e.lastUsed = r.now()
			return v
		}
	}

	v := create()
	r.entries[key] = &viewEntry{view: v, lastUsed: r.now(), listeners: map[uint64]func(){}}
	return v
}

// attach ties a listener stop func to the view so dropping the view also ends
// its live updates. ok is false when the view is no longer registered.
func (r *viewRegistry) attach(key viewKey, stop func()) (id uint64, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return 0, false
	}
	r.nextID++
	e.listeners[r.nextID] = stop
	e.lastUsed = r.now()
	return r.nextID, true
}

// detach forgets a listener once its connection has closed. The caller stops
// the listener itself.
func (r *viewRegistry) detach(key viewKey, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[key]; ok {
		delete(e.listeners, id)
		e.lastUsed = r.now()
	}
}

// touch marks the view as used so an open live connection keeps it fresh.
func (r *viewRegistry) touch(key viewKey) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[key]; ok {
		e.lastUsed = r.now()
	}
}

// sweep removes views idle for longer than the configured period. Views with
// a connected listener are kept.
func (r *viewRegistry) sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idle)
	n := 0
	for key, e := range r.entries {
		if len(e.listeners) == 0 && e.lastUsed.Before(cutoff) {
			delete(r.entries, key)
			n++
		}
	}
	return n
}

// drop removes every view of a user and stops their listeners.
func (r *viewRegistry) drop(userID string) {
	r.mu.Lock()
	var stops []func()
	for key, e := range r.entries {
		if key.userID != userID {
			continue
		}
		for _, stop := range e.listeners {
			stops = append(stops, stop)
		}
		delete(r.entries, key)
	}
	r.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
}

func (r *viewRegistry) close() {
	r.mu.Lock()
	var stops []func()
	for _, e := range r.entries {
		for _, stop := range e.listeners {
			stops = append(stops, stop)
		}
	}
	r.entries = make(map[viewKey]*viewEntry)
	r.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
}

func (r *viewRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
