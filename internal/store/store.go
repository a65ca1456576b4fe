// Package store owns the authoritative in-memory task mapping: one
// ordered bucket of tasks per calendar day. All mutations run to
// completion synchronously and rewrite the full snapshot through the
// persistence adapter. Views only ever see copies.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/daygrid/internal/domain"
	"github.com/gosuda/daygrid/internal/persist"
)

// Store is the task store. It is safe for concurrent use; every
// operation is atomic with respect to the others.
type Store struct {
	adapter persist.Adapter
	now     func() time.Time
	newID   func() uuid.UUID

	mu      sync.Mutex
	tasks   domain.Snapshot
	subs    map[int]func(domain.Snapshot)
	nextSub int
}

// New creates a Store seeded from the adapter's current snapshot.
func New(ctx context.Context, adapter persist.Adapter) (*Store, error) {
	snap, err := adapter.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.New: load: %w", err)
	}

	return &Store{
		adapter: adapter,
		now:     time.Now,
		newID:   uuid.New,
		tasks:   snap,
		subs:    make(map[int]func(domain.Snapshot)),
	}, nil
}

// StartSync wires the store to externally-originated snapshot changes.
// Whenever another instance saves, the whole in-memory mapping is
// replaced; unsaved local edits lose (last-writer-wins). Returns the
// unsubscribe func.
func (s *Store) StartSync(ctx context.Context) (func(), error) {
	unsub, err := s.adapter.SubscribeExternal(ctx, s.ApplyExternal)
	if err != nil {
		return nil, fmt.Errorf("store.StartSync: %w", err)
	}
	return unsub, nil
}

// TasksForDay returns a copy of the day's bucket in its stored order,
// or an empty slice when the day has no tasks.
func (s *Store) TasksForDay(day domain.DayKey) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.tasks[day]
	out := make([]domain.Task, len(bucket))
	copy(out, bucket)
	return out
}

// TaskByID scans all buckets for the task. The scan is linear; bucket
// counts are bounded by one user's tasks.
func (s *Store) TaskByID(id uuid.UUID) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, bucket := range s.tasks {
		for _, t := range bucket {
			if t.ID == id {
				return t, true
			}
		}
	}
	return domain.Task{}, false
}

// Snapshot returns a deep copy of the full mapping.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Clone()
}

// Add creates a task from the draft, assigns it a fresh ID and
// creation timestamp, and appends it to the end of its day's bucket.
// The created task is returned even when the persistence write fails;
// the in-memory state keeps the addition (see the package error
// policy on commit).
func (s *Store) Add(ctx context.Context, draft domain.Draft) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := domain.Task{
		ID:          s.newID(),
		Title:       draft.Title,
		Description: draft.Description,
		Date:        draft.Date,
		CreatedAt:   s.now(),
	}
	s.tasks[t.Date] = append(s.tasks[t.Date], t)

	return t, s.commitLocked(ctx)
}

// Update replaces the entry matching t.ID inside the bucket named by
// t.Date. It never searches other buckets and never creates an entry:
// when the bucket or the ID is absent the call is a silent no-op.
// Changing a task's day is Move's job, not Update's.
func (s *Store) Update(ctx context.Context, t domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.tasks[t.Date]
	for i := range bucket {
		if bucket[i].ID == t.ID {
			bucket[i] = t
			return s.commitLocked(ctx)
		}
	}
	return nil
}

// Move relocates the task to the end of newDay's bucket, keeping its
// ID, content and creation time. The source bucket is pruned when it
// empties. Moving within the same day repositions the task at the end
// of its bucket. No-op when the ID is unknown.
func (s *Store) Move(ctx context.Context, id uuid.UUID, newDay domain.DayKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for day, bucket := range s.tasks {
		for i, t := range bucket {
			if t.ID != id {
				continue
			}

			rest := make([]domain.Task, 0, len(bucket)-1)
			rest = append(rest, bucket[:i]...)
			rest = append(rest, bucket[i+1:]...)
			if len(rest) == 0 {
				delete(s.tasks, day)
			} else {
				s.tasks[day] = rest
			}

			t.Date = newDay
			s.tasks[newDay] = append(s.tasks[newDay], t)

			return s.commitLocked(ctx)
		}
	}
	return nil
}

// Delete removes the task from whichever bucket holds it, pruning the
// bucket when it empties. No-op when the ID is unknown.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for day, bucket := range s.tasks {
		for i, t := range bucket {
			if t.ID != id {
				continue
			}

			rest := make([]domain.Task, 0, len(bucket)-1)
			rest = append(rest, bucket[:i]...)
			rest = append(rest, bucket[i+1:]...)
			if len(rest) == 0 {
				delete(s.tasks, day)
			} else {
				s.tasks[day] = rest
			}

			return s.commitLocked(ctx)
		}
	}
	return nil
}

// Reorder removes the bucket element at from and reinserts it at to
// within the already-shortened bucket; to at or beyond the end
// appends. An out-of-range from is a no-op.
func (s *Store) Reorder(ctx context.Context, day domain.DayKey, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.tasks[day]
	if from < 0 || from >= len(bucket) {
		return nil
	}

	moved := bucket[from]
	rest := make([]domain.Task, 0, len(bucket)-1)
	rest = append(rest, bucket[:from]...)
	rest = append(rest, bucket[from+1:]...)

	if to < 0 {
		to = 0
	}
	if to > len(rest) {
		to = len(rest)
	}

	next := make([]domain.Task, 0, len(bucket))
	next = append(next, rest[:to]...)
	next = append(next, moved)
	next = append(next, rest[to:]...)
	s.tasks[day] = next

	return s.commitLocked(ctx)
}

// ApplyExternal replaces the entire in-memory mapping with a snapshot
// persisted by another instance. No merging: whatever local edits were
// not yet saved are discarded.
func (s *Store) ApplyExternal(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Debug().Int("tasks", snap.Len()).Msg("applying external snapshot")
	s.tasks = snap.Clone()
	s.notifyLocked()
}

// Subscribe registers a listener invoked with a snapshot copy after
// every local mutation and every external reconciliation. Listeners
// run synchronously under the store lock and must not call back into
// the Store. Returns the unsubscribe func.
func (s *Store) Subscribe(fn func(domain.Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// commitLocked persists the current mapping and fans it out to local
// subscribers. The in-memory state is already mutated when a save
// fails: memory and persistence stay diverged until the next
// successful write or an external snapshot overwrites it. Subscribers
// are notified either way, since the in-memory state they render did
// change.
func (s *Store) commitLocked(ctx context.Context) error {
	saveErr := s.adapter.Save(ctx, s.tasks.Clone())
	if saveErr != nil {
		saveErr = fmt.Errorf("store: save snapshot: %w", saveErr)
		log.Error().Err(saveErr).Msg("snapshot write failed; in-memory state is ahead of persistence")
	}

	s.notifyLocked()
	return saveErr
}

func (s *Store) notifyLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.tasks.Clone()
	for _, fn := range s.subs {
		fn(snap)
	}
}
