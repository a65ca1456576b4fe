package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/daygrid/internal/domain"
)

func TestDayKeyFor(t *testing.T) {
	t.Parallel()

	t.Run("truncates_time_of_day", func(t *testing.T) {
		t.Parallel()

		late := time.Date(2024, time.April, 1, 23, 59, 59, 0, time.UTC)
		early := time.Date(2024, time.April, 1, 0, 0, 1, 0, time.UTC)

		assert.Equal(t, domain.DayKey("2024-04-01"), domain.DayKeyFor(late))
		assert.Equal(t, domain.DayKeyFor(early), domain.DayKeyFor(late))
	})

	t.Run("uses_own_calendar_date_not_utc", func(t *testing.T) {
		t.Parallel()

		// 23:00 on Apr 1 in UTC-5 is already Apr 2 in UTC. The key
		// must follow the user's calendar date, not slip forward.
		loc := time.FixedZone("UTC-5", -5*60*60)
		late := time.Date(2024, time.April, 1, 23, 0, 0, 0, loc)

		assert.Equal(t, domain.DayKey("2024-04-01"), domain.DayKeyFor(late))
	})
}

func TestParseDayKey(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		k, err := domain.ParseDayKey("2024-04-01")
		require.NoError(t, err)
		assert.Equal(t, domain.DayKey("2024-04-01"), k)
		assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), k.Time())
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"", "April 1 2024", "2024-13-01", "2024-04-01T00:00:00Z"} {
			_, err := domain.ParseDayKey(s)
			assert.Error(t, err, "input %q", s)
		}
	})

	t.Run("malformed_key_time_is_zero", func(t *testing.T) {
		t.Parallel()

		assert.True(t, domain.DayKey("garbage").Time().IsZero())
	})
}

func TestTaskJSON(t *testing.T) {
	t.Parallel()

	task := domain.Task{
		ID:        uuid.New(),
		Title:     "Pay rent",
		Date:      "2024-04-01",
		CreatedAt: time.Date(2024, time.March, 28, 12, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(task)
	require.NoError(t, err)

	// Empty description is omitted from the wire form.
	assert.NotContains(t, string(raw), "description")

	var back domain.Task
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, task, back)
}

func TestSnapshotClone(t *testing.T) {
	t.Parallel()

	a := domain.Task{ID: uuid.New(), Title: "a", Date: "2024-04-01"}
	b := domain.Task{ID: uuid.New(), Title: "b", Date: "2024-04-01"}
	snap := domain.Snapshot{"2024-04-01": {a, b}}

	clone := snap.Clone()
	require.Equal(t, snap, clone)
	assert.Equal(t, 2, clone.Len())

	// Mutating the clone must not leak into the original.
	clone["2024-04-01"][0].Title = "changed"
	clone["2024-04-02"] = []domain.Task{{ID: uuid.New(), Date: "2024-04-02"}}

	assert.Equal(t, "a", snap["2024-04-01"][0].Title)
	assert.NotContains(t, snap, domain.DayKey("2024-04-02"))
}
