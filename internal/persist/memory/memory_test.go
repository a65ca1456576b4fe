package memory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/daygrid/internal/domain"
	"github.com/gosuda/daygrid/internal/persist/memory"
)

func TestLoadEmptySlot(t *testing.T) {
	t.Parallel()

	a := memory.NewSlot().Attach()

	snap, err := a.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	slot := memory.NewSlot()
	a := slot.Attach()
	b := slot.Attach()

	snap := domain.Snapshot{"2024-04-01": {{ID: uuid.New(), Title: "Pay rent", Date: "2024-04-01"}}}
	require.NoError(t, a.Save(context.Background(), snap))

	// Both attached adapters read the same slot.
	got, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestSaveNotifiesOtherAdaptersOnly(t *testing.T) {
	t.Parallel()

	slot := memory.NewSlot()
	a := slot.Attach()
	b := slot.Attach()

	var fromA, fromB []domain.Snapshot
	unsubA, err := a.SubscribeExternal(context.Background(), func(s domain.Snapshot) { fromA = append(fromA, s) })
	require.NoError(t, err)
	defer unsubA()
	unsubB, err := b.SubscribeExternal(context.Background(), func(s domain.Snapshot) { fromB = append(fromB, s) })
	require.NoError(t, err)
	defer unsubB()

	snap := domain.Snapshot{"2024-04-01": {{ID: uuid.New(), Title: "Pay rent", Date: "2024-04-01"}}}
	require.NoError(t, a.Save(context.Background(), snap))

	assert.Empty(t, fromA, "a save must not re-trigger the saving instance")
	require.Len(t, fromB, 1)
	assert.Equal(t, snap, fromB[0])
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	slot := memory.NewSlot()
	a := slot.Attach()
	b := slot.Attach()

	var seen int
	unsub, err := b.SubscribeExternal(context.Background(), func(domain.Snapshot) { seen++ })
	require.NoError(t, err)

	require.NoError(t, a.Save(context.Background(), domain.Snapshot{}))
	unsub()
	require.NoError(t, a.Save(context.Background(), domain.Snapshot{}))

	assert.Equal(t, 1, seen)
}
