package router

import (
	"github.com/nikolamilosevic/TransferHub/app/controllers"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/constants"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	ac := controllers.GetAdminController()

	adminGroup := app.Group(constants.AdminRoute, middleware.RequireAdmin)
	adminGroup.Get("/", ac.HandleDashboard)
	adminGroup.Get("/users", ac.HandleUsers)
	adminGroup.Put("/users/:id/status", ac.HandleUpdateUserStatus)
	adminGroup.Put("/plans/:kind/active", ac.HandleSetPlanActive)
	adminGroup.Post("/subscriptions/expire-sweep", ac.HandleExpireSweep)
}
