package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var page, perPage int
	app.Get("/list", func(c *fiber.Ctx) error {
		page, perPage = parsePagination(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	cases := []struct {
		name        string
		url         string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "/list", 1, defaultPageSize},
		{"explicit", "/list?page=3&per_page=10", 3, 10},
		{"zero page clamps to one", "/list?page=0", 1, defaultPageSize},
		{"negative per_page falls back", "/list?per_page=-5", 1, defaultPageSize},
		{"per_page capped", "/list?per_page=9999", 1, maxPageSize},
		{"garbage ignored", "/list?page=abc&per_page=xyz", 1, defaultPageSize},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.url, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantPerPage, perPage)
		})
	}
}

func TestParseIDParam(t *testing.T) {
	app := fiber.New()
	var id uint
	app.Get("/players/:id", func(c *fiber.Ctx) error {
		id = parseIDParam(c, "id")
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/players/42", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, uint(42), id)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/players/notanumber", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, uint(0), id)
}

func TestJsonErrorShape(t *testing.T) {
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return jsonError(c, fiber.StatusTeapot, "some_code", "something happened")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}
