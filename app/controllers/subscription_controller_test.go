package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionHandlersRequireLogin(t *testing.T) {
	app := fiber.New()
	app.Post("/checkout", HandleCheckoutStart)
	app.Post("/checkout/complete", HandleCheckoutComplete)
	app.Get("/subscription", HandleGetSubscription)
	app.Post("/subscription/cancel", HandleCancelSubscription)
	app.Post("/subscription/renew", HandleRenewSubscription)

	cases := []struct {
		method string
		url    string
	}{
		{http.MethodPost, "/checkout"},
		{http.MethodPost, "/checkout/complete"},
		{http.MethodGet, "/subscription"},
		{http.MethodPost, "/subscription/cancel"},
		{http.MethodPost, "/subscription/renew"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.url, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.url, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestInternalSubscriptionByEmailRejectsIncompleteBody(t *testing.T) {
	app := fiber.New()
	app.Post("/internal/subscriptions/by-email", HandleInternalSubscriptionByEmail)

	cases := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"missing plan_kind", `{"email":"scout@example.com"}`},
		{"missing email", `{"plan_kind":"monthly"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/internal/subscriptions/by-email", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			body, readErr := io.ReadAll(resp.Body)
			require.NoError(t, readErr)
			assert.Contains(t, string(body), "bad_request")
		})
	}
}
