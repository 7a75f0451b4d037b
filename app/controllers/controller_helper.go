package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nikolamilosevic/TransferHub/internal/pkg/usercontext"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func isLoggedIn(c *fiber.Ctx) bool {
	return usercontext.IsLoggedIn(c)
}

// parsePagination reads ?page= and ?per_page= with sane defaults and caps.
// Page numbering starts at 1.
func parsePagination(c *fiber.Ctx) (page int, perPage int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	perPage = c.QueryInt("per_page", defaultPageSize)
	if perPage < 1 {
		perPage = defaultPageSize
	}
	if perPage > maxPageSize {
		perPage = maxPageSize
	}

	return page, perPage
}

// parseIDParam reads a numeric path parameter, returning 0 on garbage input.
func parseIDParam(c *fiber.Ctx, name string) uint {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func jsonError(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Authentication required")
}
