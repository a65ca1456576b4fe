package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/daygrid/internal/domain"
)

type CreateTaskInput struct {
	Body struct {
		Title       string `json:"title" maxLength:"500" doc:"Task title"`
		Description string `json:"description,omitempty" doc:"Task description"`
		Date        string `json:"date" doc:"Calendar day (YYYY-MM-DD)"`
	}
}

type CreateTaskOutput struct {
	Body domain.Task
}

type GetTaskInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

type GetTaskOutput struct {
	Body domain.Task
}

type GetSnapshotOutput struct {
	Body domain.Snapshot
}

type UpdateTaskInput struct {
	ID   uuid.UUID `path:"id" doc:"Task ID"`
	Body struct {
		Title       string `json:"title" maxLength:"500" doc:"Task title"`
		Description string `json:"description,omitempty" doc:"Task description"`
		Date        string `json:"date" doc:"Calendar day the task currently belongs to"`
	}
}

type UpdateTaskOutput struct {
	Body domain.Task
}

type MoveTaskInput struct {
	ID   uuid.UUID `path:"id" doc:"Task ID"`
	Body struct {
		Date string `json:"date" doc:"Destination day (YYYY-MM-DD)"`
	}
}

type DeleteTaskInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

type ListDayTasksInput struct {
	Date string `path:"date" doc:"Calendar day (YYYY-MM-DD)"`
}

type ListDayTasksOutput struct {
	Body []domain.Task
}

type ReorderDayInput struct {
	Date string `path:"date" doc:"Calendar day (YYYY-MM-DD)"`
	Body struct {
		From int `json:"from" doc:"Current index within the day"`
		To   int `json:"to" doc:"Target index within the day"`
	}
}

func RegisterTaskRoutes(api huma.API, store TaskStore) {
	huma.Register(api, huma.Operation{
		OperationID: "create-task",
		Method:      http.MethodPost,
		Path:        "/tasks",
		Summary:     "Create a new task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CreateTaskInput) (*CreateTaskOutput, error) {
		day, err := domain.ParseDayKey(input.Body.Date)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid date: " + input.Body.Date)
		}

		task, err := store.Add(ctx, domain.Draft{
			Title:       input.Body.Title,
			Description: input.Body.Description,
			Date:        day,
		})
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to create task", err)
		}

		return &CreateTaskOutput{Body: task}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-snapshot",
		Method:      http.MethodGet,
		Path:        "/tasks",
		Summary:     "Get the full day-to-tasks mapping",
		Tags:        []string{"Tasks"},
	}, func(_ context.Context, _ *struct{}) (*GetSnapshotOutput, error) {
		return &GetSnapshotOutput{Body: store.Snapshot()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/tasks/{id}",
		Summary:     "Get a task by ID",
		Tags:        []string{"Tasks"},
	}, func(_ context.Context, input *GetTaskInput) (*GetTaskOutput, error) {
		task, ok := store.TaskByID(input.ID)
		if !ok {
			return nil, huma.Error404NotFound("task not found")
		}
		return &GetTaskOutput{Body: task}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-task",
		Method:      http.MethodPut,
		Path:        "/tasks/{id}",
		Summary:     "Edit a task in place",
		Description: "Edits title and description within the task's current day. Moving a task to another day is a separate operation.",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *UpdateTaskInput) (*UpdateTaskOutput, error) {
		day, err := domain.ParseDayKey(input.Body.Date)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid date: " + input.Body.Date)
		}

		existing, ok := store.TaskByID(input.ID)
		if !ok {
			return nil, huma.Error404NotFound("task not found")
		}
		if day != existing.Date {
			return nil, huma.Error409Conflict("task date can only be changed by moving the task")
		}

		existing.Title = input.Body.Title
		existing.Description = input.Body.Description

		if err := store.Update(ctx, existing); err != nil {
			return nil, huma.Error500InternalServerError("failed to update task", err)
		}

		return &UpdateTaskOutput{Body: existing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "move-task",
		Method:      http.MethodPost,
		Path:        "/tasks/{id}/move",
		Summary:     "Move a task to another day",
		Description: "Appends the task to the end of the destination day's list.",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *MoveTaskInput) (*struct{}, error) {
		day, err := domain.ParseDayKey(input.Body.Date)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid date: " + input.Body.Date)
		}

		if _, ok := store.TaskByID(input.ID); !ok {
			return nil, huma.Error404NotFound("task not found")
		}

		if err := store.Move(ctx, input.ID, day); err != nil {
			return nil, huma.Error500InternalServerError("failed to move task", err)
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-task",
		Method:      http.MethodDelete,
		Path:        "/tasks/{id}",
		Summary:     "Delete a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *DeleteTaskInput) (*struct{}, error) {
		if _, ok := store.TaskByID(input.ID); !ok {
			return nil, huma.Error404NotFound("task not found")
		}

		if err := store.Delete(ctx, input.ID); err != nil {
			return nil, huma.Error500InternalServerError("failed to delete task", err)
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-day-tasks",
		Method:      http.MethodGet,
		Path:        "/days/{date}/tasks",
		Summary:     "List a day's tasks in display order",
		Tags:        []string{"Tasks"},
	}, func(_ context.Context, input *ListDayTasksInput) (*ListDayTasksOutput, error) {
		day, err := domain.ParseDayKey(input.Date)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid date: " + input.Date)
		}

		return &ListDayTasksOutput{Body: store.TasksForDay(day)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reorder-day",
		Method:      http.MethodPost,
		Path:        "/days/{date}/reorder",
		Summary:     "Reorder a task within its day",
		Description: "Removes the element at 'from' and reinserts it at 'to'. An out-of-range 'from' leaves the day unchanged.",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *ReorderDayInput) (*struct{}, error) {
		day, err := domain.ParseDayKey(input.Date)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid date: " + input.Date)
		}

		if err := store.Reorder(ctx, day, input.Body.From, input.Body.To); err != nil {
			return nil, huma.Error500InternalServerError("failed to reorder tasks", err)
		}

		return nil, nil
	})
}
