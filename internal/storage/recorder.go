package storage

import (
	"sync"

	"github.com/mverhelle/folio/internal/steer"
)

// Recorder buffers an interactive trace and saves it on Close.
type Recorder struct {
	mu     sync.Mutex
	store  *Store
	meta   RunMetadata
	rows   []Row
	closed bool
	id     string
}

func NewRecorder(store *Store, meta RunMetadata) *Recorder {
	if meta.Origin == "" {
		meta.Origin = "play"
	}
	return &Recorder{store: store, meta: meta}
}

func (r *Recorder) Record(t float64, s steer.State, in steer.Input) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.rows = append(r.rows, NewRow(t, s, in))
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// Close persists the trace once. Empty traces are dropped.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if len(r.rows) == 0 {
		return nil
	}
	r.meta.Duration = r.rows[len(r.rows)-1].T
	id, err := r.store.Save(r.meta, r.rows)
	if err != nil {
		return err
	}
	r.id = id
	return nil
}

// ID returns the saved run id, empty until Close has written a trace.
func (r *Recorder) ID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.id
}
