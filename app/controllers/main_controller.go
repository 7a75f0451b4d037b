package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nikolamilosevic/TransferHub/internal/pkg/env"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/statistics"
)

// HandleRoot is the landing endpoint with marketplace-wide counters.
func HandleRoot(c *fiber.Ctx) error {
	statistics.UpdateCacheIfNeeded()
	stats := statistics.GetStatistics()

	return c.JSON(fiber.Map{
		"name":        "TransferHub",
		"description": "Esports player transfer marketplace",
		"environment": env.GetEnv("APP_ENV", "prod"),
		"stats": fiber.Map{
			"players": stats.TotalPlayers,
			"teams":   stats.TotalTeams,
			"users":   stats.TotalUsers,
		},
	})
}

// HandleHealth is the liveness probe used by deploy tooling.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
