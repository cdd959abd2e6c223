package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/rental-admin/internal/handler"
	"github.com/iliyamo/rental-admin/internal/model"
)

type countingDirectory struct {
	lists, sets int
}

func (d *countingDirectory) List(context.Context, string) (model.UserListing, error) {
	d.lists++
	return model.UserListing{ActiveUsers: []model.DirectoryUser{}, InactiveUsers: []model.DirectoryUser{}}, nil
}

func (d *countingDirectory) SetStatus(context.Context, model.StatusUpdate) error {
	d.sets++
	return nil
}

func TestRegisterUsersServesAliases(t *testing.T) {
	tpl, err := handler.NewTemplates()
	require.NoError(t, err)
	dir := &countingDirectory{}
	e := echo.New()
	e.Renderer = tpl
	RegisterUsers(e, handler.NewUserHandler(dir))

	for _, path := range []string{"/api/users/", "/api/users", "/users/"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	assert.Equal(t, 3, dir.lists)

	for _, path := range []string{"/api/status/", "/api/status", "/users/status/"} {
		req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(`{"id":1,"type":"staff","active":true}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	assert.Equal(t, 3, dir.sets)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/user/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User Status Board")
}
