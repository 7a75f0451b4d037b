package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolamilosevic/TransferHub/internal/pkg/usercontext"
)

func TestHandleAISearchRequiresLogin(t *testing.T) {
	app := fiber.New()
	app.Post("/ai/search", HandleAISearch)

	req := httptest.NewRequest(http.MethodPost, "/ai/search", strings.NewReader(`{"query":"best igl in europe"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleAISearchRejectsEmptyQuery(t *testing.T) {
	app := fiber.New()
	app.Post("/ai/search", func(c *fiber.Ctx) error {
		c.Locals("USER_CONTEXT", usercontext.UserContext{
			UserID:     7,
			IsLoggedIn: true,
			Plan:       "monthly",
		})
		return HandleAISearch(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/ai/search", strings.NewReader(`{"query":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
