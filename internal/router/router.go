package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/rental-admin/internal/handler"
)

// RegisterRoutes registers the probes and the Prometheus scrape endpoint.
// None of them are rate limited.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterUsers mounts the user directory API under /api, plus the /users
// pages: the listing and status aliases and the drag-and-drop status board at
// /users/user/.  Both the slashed and unslashed API paths are served since
// the status board posts to the slashed form.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, mw ...echo.MiddlewareFunc) {
	api := e.Group("/api", mw...)
	api.GET("/users/", u.ListUsers)
	api.GET("/users", u.ListUsers)
	api.PATCH("/status/", u.UpdateStatus)
	api.PATCH("/status", u.UpdateStatus)

	ui := e.Group("/users", mw...)
	ui.GET("/", u.ListUsers)
	ui.PATCH("/status/", u.UpdateStatus)
	ui.GET("/user/", u.Board)
}

// RegisterDashboard mounts the rendered films dashboard and its JSON twin.
func RegisterDashboard(e *echo.Echo, d *handler.DashboardHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/films/charts/", d.Charts, mw...)
	e.GET("/films/charts", d.Charts, mw...)
	e.GET("/api/films/charts/", d.ChartsJSON, mw...)
}
