package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nikolamilosevic/TransferHub/internal/pkg/database"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/subscriptions"
)

// HandleListPlans returns the purchasable plan catalog, cheapest first.
// Public - scouts compare tiers before signing up.
func HandleListPlans(c *fiber.Ctx) error {
	svc := subscriptions.NewServiceFromDB(database.GetDB())
	plans, err := svc.ListActivePlans(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load plans")
	}

	return c.JSON(fiber.Map{"plans": plans})
}
