package apiv1

import (
	"github.com/gofiber/fiber/v2"

	// Delegate to existing controllers to keep behavior consistent
	"github.com/nikolamilosevic/TransferHub/app/controllers"
)

// Pong is the ping endpoint response body.
type Pong struct {
	Ping string `json:"ping"`
}

// APIServer holds the public API v1 handlers. All routes except ping sit
// behind the API key middleware attached in the router.
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// RegisterRoutes attaches the v1 handlers to the given group. The keyAuth
// middleware authenticates via API key and enforces the api feature flag.
func RegisterRoutes(v1 fiber.Router, s *APIServer, keyAuth fiber.Handler) {
	v1.Get("/ping", s.GetPing)
	v1.Get("/user/profile", keyAuth, s.GetUserProfile)
	v1.Get("/players", keyAuth, s.GetPlayers)
	v1.Get("/players/:id", keyAuth, s.GetPlayer)
	v1.Get("/teams", keyAuth, s.GetTeams)
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetUserProfile returns account information for the authenticated user (API key).
func (s *APIServer) GetUserProfile(c *fiber.Ctx) error {
	return controllers.HandleGetUserAccount(c)
}

// GetPlayers serves the marketplace listing over the public API. Same
// filters and response shape as the web endpoint.
func (s *APIServer) GetPlayers(c *fiber.Ctx) error {
	return controllers.HandleListPlayers(c)
}

// GetPlayer returns a single player listing by id.
func (s *APIServer) GetPlayer(c *fiber.Ctx) error {
	return controllers.HandleGetPlayer(c)
}

// GetTeams returns the team directory.
func (s *APIServer) GetTeams(c *fiber.Ctx) error {
	return controllers.HandleListTeams(c)
}
