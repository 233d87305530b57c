package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(adminKey string) *fiber.App {
	app := fiber.New()
	SetupRoutes(app, &WebApp{Version: "test"}, adminKey)
	return app
}

func TestDeleteBadgeIconRequiresAdminKey(t *testing.T) {
	app := newTestApp("test-key")

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/badges/icon/first_card", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/badges/icon/first_card", nil)
	req.Header.Set("X-Admin-Key", "wrong-key")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDeleteBadgeIconWithoutStorageConfigured(t *testing.T) {
	app := newTestApp("test-key")

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/badges/icon/first_card", nil)
	req.Header.Set("X-Admin-Key", "test-key")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestAdminRoutesRejectedWhenKeyUnset(t *testing.T) {
	app := newTestApp("")

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/badges/icon/first_card", nil)
	req.Header.Set("X-Admin-Key", "anything")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
