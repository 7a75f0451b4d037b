package router

import (
	"github.com/nikolamilosevic/TransferHub/app/controllers"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/middleware"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Initialize admin controller with repositories
	controllers.InitializeAdminController()

	h.registerPublicRoutes(app)
	h.registerProtectedRoutes(app)
	h.registerAdminRoutes(app)
	h.registerInternalRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
