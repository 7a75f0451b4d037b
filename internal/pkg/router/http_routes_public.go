package router

import (
	"github.com/nikolamilosevic/TransferHub/app/controllers"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/constants"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/entitlements"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get(constants.PublicRoute, controllers.HandleRoot)
	app.Get("/health", controllers.HandleHealth)

	// Auth
	app.Post("/register", controllers.HandleAuthRegister)
	app.Get("/activate", controllers.HandleAuthActivate)
	app.Post("/login", controllers.HandleAuthLogin)
	app.Post("/logout", controllers.HandleAuthLogout)

	// Plan catalog - public so visitors can compare tiers
	app.Get("/plans", controllers.HandleListPlans)

	// Marketplace browse
	app.Get("/players", controllers.HandleListPlayers)
	app.Get("/players/:id", controllers.HandleGetPlayer)
	app.Get("/teams", controllers.HandleListTeams)
	app.Get("/teams/:id", controllers.HandleGetTeam)
}

func (h HttpRouter) registerProtectedRoutes(app *fiber.App) {
	// Account
	app.Get("/user/profile", middleware.RequireAuth, controllers.HandleUserProfile)
	app.Put("/user/profile", middleware.RequireAuth, controllers.HandleUserProfileUpdate)
	app.Get("/user/settings", middleware.RequireAuth, controllers.HandleUserSettings)
	app.Put("/user/settings", middleware.RequireAuth, controllers.HandleUserSettingsUpdate)
	app.Post("/user/api-key", middleware.RequireAuth, controllers.HandleIssueAPIKey)
	app.Delete("/user/api-key", middleware.RequireAuth, controllers.HandleRevokeAPIKey)

	// Subscription lifecycle
	app.Post("/checkout", middleware.RequireAuth, controllers.HandleCheckoutStart)
	app.Post("/checkout/complete", middleware.RequireAuth, controllers.HandleCheckoutComplete)
	app.Get("/subscription", middleware.RequireAuth, controllers.HandleGetSubscription)
	app.Post("/subscription/cancel", middleware.RequireAuth, controllers.HandleCancelSubscription)
	app.Post("/subscription/renew", middleware.RequireAuth, controllers.HandleRenewSubscription)

	// Own listings
	app.Get("/user/players", middleware.RequireAuth, controllers.HandleGetMyPlayers)
	app.Post("/players", middleware.RequireAuth, controllers.HandleCreatePlayer)
	app.Put("/players/:id", middleware.RequireAuth, controllers.HandleUpdatePlayer)
	app.Delete("/players/:id", middleware.RequireAuth, controllers.HandleDeletePlayer)
	app.Post("/teams", middleware.RequireAuth, controllers.HandleCreateTeam)
	app.Put("/teams/:id", middleware.RequireAuth, controllers.HandleUpdateTeam)
	app.Delete("/teams/:id", middleware.RequireAuth, controllers.HandleDeleteTeam)

	// Feature-gated operations
	app.Post("/players/:id/refresh-stats",
		middleware.RequireAuth,
		middleware.RequireFeature(entitlements.FeatureStatistics),
		controllers.HandleRefreshPlayerStats)
	app.Post("/ai/search",
		middleware.RequireAuth,
		middleware.RequireFeature(entitlements.FeatureAISearch),
		controllers.HandleAISearch)
}

func (h HttpRouter) registerInternalRoutes(app *fiber.App) {
	internal := app.Group(constants.InternalRoute, middleware.RequireInternalToken)
	internal.Post("/subscriptions/by-email", controllers.HandleInternalSubscriptionByEmail)
}
