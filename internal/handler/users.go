package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-admin/internal/model"
	"github.com/iliyamo/rental-admin/internal/repository"
)

// UserDirectory is implemented by service.DirectoryService.
type UserDirectory interface {
	List(ctx context.Context, search string) (model.UserListing, error)
	SetStatus(ctx context.Context, u model.StatusUpdate) error
}

// UserHandler serves the user directory API used by the drag-and-drop
// status board.
type UserHandler struct {
	Directory UserDirectory
}

// NewUserHandler panics on a nil directory so miswiring fails at startup.
func NewUserHandler(dir UserDirectory) *UserHandler {
	if dir == nil {
		panic("nil directory passed to NewUserHandler")
	}
	return &UserHandler{Directory: dir}
}

// ListUsers handles GET /api/users/?search=term and returns customers and
// staff split into active_users and inactive_users.
func (h *UserHandler) ListUsers(c echo.Context) error {
	listing, err := h.Directory.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		slog.ErrorContext(c.Request().Context(), "list users failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, listing)
}

type statusRequest struct {
	ID     json.RawMessage `json:"id"`
	Type   string          `json:"type"`
	Active *bool           `json:"active"`
}

// parseUserID accepts a JSON number or a numeric string.  ok is false for a
// missing, negative or non-integral id, none of which can name a row.
func parseUserID(raw json.RawMessage) (id uint64, ok bool) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if len(raw) == 0 || dec.Decode(&v) != nil {
		return 0, false
	}
	var text string
	switch t := v.(type) {
	case json.Number:
		text = t.String()
	case string:
		text = strings.TrimSpace(t)
	default:
		return 0, false
	}
	if n, err := strconv.ParseUint(text, 10, 64); err == nil {
		return n, true
	}
	// 1.0 and 1e2 still name integral rows
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > 1<<53 {
		return 0, false
	}
	return uint64(f), true
}

// UpdateStatus handles PATCH /api/status/ with {"id", "type", "active"}.
// The type is checked before anything else so an unknown type is always
// reported as such.  An id that cannot name a row is reported as not found.
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	var body statusRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	kind, err := model.ParseUserKind(body.Type)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user type"})
	}
	if body.Active == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "active is required"})
	}
	id, ok := parseUserID(body.ID)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": kind.String() + " not found"})
	}

	err = h.Directory.SetStatus(c.Request().Context(), model.StatusUpdate{ID: id, Kind: kind, Active: *body.Active})
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]string{"message": kind.String() + " status updated successfully"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": kind.String() + " not found"})
	default:
		slog.ErrorContext(c.Request().Context(), "update status failed", "type", kind, "id", id, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// Board handles GET /users/user/, the drag-and-drop status board.
func (h *UserHandler) Board(c echo.Context) error {
	return c.Render(http.StatusOK, "users.html", nil)
}
