package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/gosuda/daygrid/internal/domain"
	"github.com/gosuda/daygrid/internal/holiday"
)

// TaskStore abstracts the task store for handler testing.
// *store.Store satisfies this interface.
type TaskStore interface {
	TasksForDay(day domain.DayKey) []domain.Task
	TaskByID(id uuid.UUID) (domain.Task, bool)
	Snapshot() domain.Snapshot
	Add(ctx context.Context, draft domain.Draft) (domain.Task, error)
	Update(ctx context.Context, t domain.Task) error
	Move(ctx context.Context, id uuid.UUID, newDay domain.DayKey) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, day domain.DayKey, from, to int) error
}

// HolidayLookup abstracts the holiday client for handler testing.
// *holiday.Client satisfies this interface.
type HolidayLookup interface {
	Holidays(ctx context.Context, year int, country string) ([]holiday.Holiday, error)
}
