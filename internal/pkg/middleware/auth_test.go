package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolamilosevic/TransferHub/internal/pkg/usercontext"
)

func TestRequireAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/anon", RequireAuth, okHandler)
	app.Get("/in", func(c *fiber.Ctx) error {
		c.Locals(usercontext.KeyFromProtected, true)
		return c.Next()
	}, RequireAuth, okHandler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/anon", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/in", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	app := fiber.New()
	app.Get("/user", func(c *fiber.Ctx) error {
		c.Locals(usercontext.KeyFromProtected, true)
		c.Locals(usercontext.KeyIsAdmin, false)
		return c.Next()
	}, RequireAdmin, okHandler)
	app.Get("/admin", func(c *fiber.Ctx) error {
		c.Locals(usercontext.KeyFromProtected, true)
		c.Locals(usercontext.KeyIsAdmin, true)
		return c.Next()
	}, RequireAdmin, okHandler)
	app.Get("/anon", RequireAdmin, okHandler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/anon", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/user", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireFeatureAnonymousGets401(t *testing.T) {
	app := fiber.New()
	app.Get("/gated", RequireFeature("ai_search"), okHandler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/gated", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireInternalToken(t *testing.T) {
	t.Setenv("INTERNAL_API_TOKEN", "super-secret")

	app := fiber.New()
	app.Post("/internal", RequireInternalToken, okHandler)

	req := httptest.NewRequest(http.MethodPost, "/internal", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/internal", nil)
	req.Header.Set("X-Internal-Token", "wrong")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/internal", nil)
	req.Header.Set("X-Internal-Token", "super-secret")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func okHandler(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}
