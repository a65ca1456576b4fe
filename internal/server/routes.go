package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/gosuda/daygrid/internal/api/v1"
	"github.com/gosuda/daygrid/internal/api/ws"
	"github.com/gosuda/daygrid/internal/holiday"
	"github.com/gosuda/daygrid/internal/store"
)

func registerAPIRoutes(api huma.API, taskStore *store.Store, holidays *holiday.Client) {
	v1.RegisterTaskRoutes(api, taskStore)
	v1.RegisterHolidayRoutes(api, holidays)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/tasks", hub.ServeTasks)
}
