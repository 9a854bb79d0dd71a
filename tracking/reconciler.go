package tracking

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrStaleTick is returned for a tick older than the last committed one.
var ErrStaleTick = errors.New("tick is older than the committed snapshot")

// Reconciler owns the committed marker collection.
type Reconciler struct {
	mu        sync.Mutex
	opts      Options
	markers   map[string]Marker
	timestamp int64
	ticks     int
}

// NewReconciler creates a reconciler with an empty marker collection.
func NewReconciler(opts Options) *Reconciler {
	return &Reconciler{opts: opts, markers: map[string]Marker{}}
}

// Reconcile diffs tick against the committed collection and commits the
// result. Use it when the caller applies the operations without failing.
func (r *Reconciler) Reconcile(tick Tick) ([]Operation, error) {
	return r.Apply(tick, nil)
}

// Apply diffs tick against the committed collection, hands the operations to
// applier and commits the new collection once applier succeeds. A nil applier
// always succeeds. Concurrent calls are serialized, so a tick never sees a
// collection that a failed or in-flight application left behind.
func (r *Reconciler) Apply(tick Tick, applier Applier) ([]Operation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tick.Timestamp != 0 && tick.Timestamp < r.timestamp {
		return nil, fmt.Errorf("%w: %d < %d", ErrStaleTick, tick.Timestamp, r.timestamp)
	}

	ops, next := Diff(r.markers, tick.Vehicles, r.opts)
	if applier != nil && len(ops) > 0 {
		if err := applier.ApplyOperations(ops); err != nil {
			return nil, fmt.Errorf("applying %d marker operations: %w", len(ops), err)
		}
	}
	r.markers = next
	if tick.Timestamp != 0 {
		r.timestamp = tick.Timestamp
	}
	r.ticks++
	return ops, nil
}

// Markers returns the committed markers sorted by id.
func (r *Reconciler) Markers() []Marker {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Marker, 0, len(r.markers))
	for _, m := range r.markers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Timestamp returns the feed timestamp of the last committed tick.
func (r *Reconciler) Timestamp() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timestamp
}

// Ticks returns the number of committed ticks.
func (r *Reconciler) Ticks() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks
}
