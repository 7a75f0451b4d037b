package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nikolamilosevic/TransferHub/internal/pkg/aisearch"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/usercontext"
)

type aiSearchRequest struct {
	Query string `json:"query"`
}

// HandleAISearch answers a free-form scouting query through the AI assistant.
// The route sits behind the ai_search feature gate, so every caller reaching
// this handler already has a paying plan.
func HandleAISearch(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	var req aiSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.Query == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "query is required")
	}

	answer, err := aisearch.NewClientFromEnv().Lookup(c.Context(), req.Query)
	if err != nil {
		return jsonError(c, fiber.StatusBadGateway, "ai_unavailable", "AI lookup did not return an answer")
	}

	return c.JSON(fiber.Map{
		"query":  req.Query,
		"answer": answer,
	})
}
