package handler

import (
	"context"
	"embed"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-admin/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates renders the embedded HTML pages.  It implements echo.Renderer.
type Templates struct {
	t *template.Template
}

// NewTemplates parses every page under templates/.
func NewTemplates() (*Templates, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Templates{t: t}, nil
}

func (t *Templates) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return t.t.ExecuteTemplate(w, name, data)
}

// FilmDashboard is implemented by service.AnalyticsService.
type FilmDashboard interface {
	Dashboard(ctx context.Context) (model.Dashboard, error)
}

// DashboardHandler serves the films analytics dashboard.
type DashboardHandler struct {
	Analytics FilmDashboard
}

func NewDashboardHandler(a FilmDashboard) *DashboardHandler {
	if a == nil {
		panic("nil analytics passed to NewDashboardHandler")
	}
	return &DashboardHandler{Analytics: a}
}

// Charts handles GET /films/charts/ and renders the six charts as a page.
// Any failing aggregation fails the whole page.
func (h *DashboardHandler) Charts(c echo.Context) error {
	d, err := h.Analytics.Dashboard(c.Request().Context())
	if err != nil {
		slog.ErrorContext(c.Request().Context(), "dashboard failed", "error", err)
		return c.String(http.StatusInternalServerError, "dashboard unavailable: "+err.Error())
	}
	return c.Render(http.StatusOK, "dashboard.html", d)
}

// ChartsJSON handles GET /api/films/charts/ with the same payloads as JSON.
func (h *DashboardHandler) ChartsJSON(c echo.Context) error {
	d, err := h.Analytics.Dashboard(c.Request().Context())
	if err != nil {
		slog.ErrorContext(c.Request().Context(), "dashboard failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, d)
}
