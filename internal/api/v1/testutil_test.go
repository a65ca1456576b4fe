package v1_test

import (
	"context"

	"github.com/google/uuid"

	v1 "github.com/gosuda/daygrid/internal/api/v1"
	"github.com/gosuda/daygrid/internal/domain"
	"github.com/gosuda/daygrid/internal/holiday"
)

// mockTaskStore implements v1.TaskStore with overridable funcs.
type mockTaskStore struct {
	tasksForDayFunc func(domain.DayKey) []domain.Task
	taskByIDFunc    func(uuid.UUID) (domain.Task, bool)
	snapshotFunc    func() domain.Snapshot
	addFunc         func(context.Context, domain.Draft) (domain.Task, error)
	updateFunc      func(context.Context, domain.Task) error
	moveFunc        func(context.Context, uuid.UUID, domain.DayKey) error
	deleteFunc      func(context.Context, uuid.UUID) error
	reorderFunc     func(context.Context, domain.DayKey, int, int) error
}

var _ v1.TaskStore = (*mockTaskStore)(nil)

func (m *mockTaskStore) TasksForDay(day domain.DayKey) []domain.Task {
	if m.tasksForDayFunc != nil {
		return m.tasksForDayFunc(day)
	}
	return []domain.Task{}
}

func (m *mockTaskStore) TaskByID(id uuid.UUID) (domain.Task, bool) {
	if m.taskByIDFunc != nil {
		return m.taskByIDFunc(id)
	}
	return domain.Task{}, false
}

func (m *mockTaskStore) Snapshot() domain.Snapshot {
	if m.snapshotFunc != nil {
		return m.snapshotFunc()
	}
	return domain.Snapshot{}
}

func (m *mockTaskStore) Add(ctx context.Context, draft domain.Draft) (domain.Task, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, draft)
	}
	return domain.Task{}, nil
}

func (m *mockTaskStore) Update(ctx context.Context, t domain.Task) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, t)
	}
	return nil
}

func (m *mockTaskStore) Move(ctx context.Context, id uuid.UUID, newDay domain.DayKey) error {
	if m.moveFunc != nil {
		return m.moveFunc(ctx, id, newDay)
	}
	return nil
}

func (m *mockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTaskStore) Reorder(ctx context.Context, day domain.DayKey, from, to int) error {
	if m.reorderFunc != nil {
		return m.reorderFunc(ctx, day, from, to)
	}
	return nil
}

// mockHolidayLookup implements v1.HolidayLookup.
type mockHolidayLookup struct {
	holidaysFunc func(context.Context, int, string) ([]holiday.Holiday, error)
}

var _ v1.HolidayLookup = (*mockHolidayLookup)(nil)

func (m *mockHolidayLookup) Holidays(ctx context.Context, year int, country string) ([]holiday.Holiday, error) {
	if m.holidaysFunc != nil {
		return m.holidaysFunc(ctx, year, country)
	}
	return nil, nil
}
