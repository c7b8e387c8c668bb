package store

import (
	"sync"
	"time"

	"github.com/osler/analysers/analyser/internal/aggregate"
	"github.com/osler/analysers/analyser/internal/report"
	"github.com/osler/analysers/analyser/internal/threshold"
	"github.com/osler/analysers/pkg/types"
)

// Snapshot is the complete, read-only output of one load cycle.
type Snapshot struct {
	Generation uint64
	LoadedAt   time.Time
	Origin     string

	Result *aggregate.Result
	Report *report.Report
	Totals types.Totals
	Flags  []threshold.Flag
}

// Flag returns the threshold flag for name, if any.
func (s *Snapshot) Flag(name string) (threshold.Flag, bool) {
	for _, f := range s.Flags {
		if f.Name == name {
			return f, true
		}
	}
	return threshold.Flag{}, false
}

// Store is a thread-safe holder for the current Snapshot.
type Store struct {
	mu  sync.RWMutex
	cur *Snapshot
	gen uint64
	now func() time.Time // injectable for deterministic tests
}

// New creates an empty Store.
func New() *Store {
	return &Store{now: time.Now}
}

// Put replaces the current snapshot, assigning the next generation and
// stamping LoadedAt. Callers must not modify snap after calling Put.
func (s *Store) Put(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	snap.Generation = s.gen
	snap.LoadedAt = s.now()
	s.cur = snap
}

// Current returns the latest snapshot and whether one has been stored.
func (s *Store) Current() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur, s.cur != nil
}

// Lookup returns the entry for name from the current snapshot.
func (s *Store) Lookup(name string) (types.Entry, bool) {
	snap, ok := s.Current()
	if !ok {
		return types.Entry{}, false
	}
	return snap.Result.Get(name)
}

// Names returns the names of the current snapshot in first-seen order.
func (s *Store) Names() []string {
	snap, ok := s.Current()
	if !ok {
		return nil
	}
	return append([]string(nil), snap.Result.Order...)
}
