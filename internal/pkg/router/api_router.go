package router

import (
	apiv1 "github.com/nikolamilosevic/TransferHub/internal/api/v1"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/constants"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group(constants.APIRoute, limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group(constants.APIV1Route)
	apiServer := apiv1.NewAPIServer()
	apiv1.RegisterRoutes(v1, apiServer, middleware.APIKeyAuthMiddleware())
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
