// Package memory provides an in-process persistence slot. Several
// adapters attached to one Slot behave like application instances
// sharing a persistence backend: a save by one is observed by all
// others. It backs single-process deployments and lets the
// cross-instance reconciliation policy be tested without Redis.
package memory

import (
	"context"
	"sync"

	"github.com/gosuda/daygrid/internal/domain"
	"github.com/gosuda/daygrid/internal/persist"
)

// Slot holds one serialized snapshot and the subscribers of every
// attached adapter.
type Slot struct {
	mu     sync.Mutex
	raw    []byte
	subs   map[int]slotSub
	nextID int
}

type slotSub struct {
	owner int
	fn    func(domain.Snapshot)
}

// NewSlot creates an empty shared slot.
func NewSlot() *Slot {
	return &Slot{subs: make(map[int]slotSub)}
}

// Attach creates an adapter bound to the slot. Each adapter has its
// own identity so its saves are not reported back to itself.
func (s *Slot) Attach() *Adapter {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	return &Adapter{slot: s, owner: s.nextID}
}

func (s *Slot) write(owner int, raw []byte) {
	s.mu.Lock()
	s.raw = raw
	notify := make([]func(domain.Snapshot), 0, len(s.subs))
	for _, sub := range s.subs {
		if sub.owner != owner {
			notify = append(notify, sub.fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(persist.Decode(raw))
	}
}

func (s *Slot) read() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

func (s *Slot) subscribe(owner int, fn func(domain.Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs[id] = slotSub{owner: owner, fn: fn}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Adapter is one instance's view of the shared slot.
type Adapter struct {
	slot  *Slot
	owner int
}

var _ persist.Adapter = (*Adapter)(nil)

func (a *Adapter) Save(_ context.Context, snap domain.Snapshot) error {
	raw, err := persist.Encode(snap)
	if err != nil {
		return err
	}
	a.slot.write(a.owner, raw)
	return nil
}

func (a *Adapter) Load(_ context.Context) (domain.Snapshot, error) {
	return persist.Decode(a.slot.read()), nil
}

func (a *Adapter) SubscribeExternal(_ context.Context, fn func(domain.Snapshot)) (func(), error) {
	return a.slot.subscribe(a.owner, fn), nil
}
