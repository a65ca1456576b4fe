// Package persist defines the snapshot persistence contract: one
// serialized task mapping stored under one well-known slot, plus a
// notification channel for changes to that slot made by other
// instances of the application.
package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gosuda/daygrid/internal/domain"
)

// Adapter stores the full snapshot and reports externally-originated
// changes to it. Save replaces the prior value wholesale; there is no
// partial write. An instance's own saves must never be reported back
// through SubscribeExternal.
type Adapter interface {
	Save(ctx context.Context, snap domain.Snapshot) error
	Load(ctx context.Context) (domain.Snapshot, error)
	SubscribeExternal(ctx context.Context, fn func(domain.Snapshot)) (func(), error)
}

// Encode serializes a snapshot to its wire form.
func Encode(snap domain.Snapshot) ([]byte, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("persist.Encode: %w", err)
	}
	return raw, nil
}

// Decode parses a stored snapshot. Missing or corrupt data decodes to
// an empty snapshot: it means "no tasks yet", never a failure. Empty
// buckets are dropped so they are never observable.
func Decode(raw []byte) domain.Snapshot {
	if len(raw) == 0 {
		return domain.Snapshot{}
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil || snap == nil {
		return domain.Snapshot{}
	}

	for day, bucket := range snap {
		if len(bucket) == 0 {
			delete(snap, day)
		}
	}

	return snap
}
