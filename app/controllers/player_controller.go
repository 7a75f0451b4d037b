package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nikolamilosevic/TransferHub/app/models"
	"github.com/nikolamilosevic/TransferHub/app/repository"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/database"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/statistics"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/statsapi"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/subscriptions"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/usercontext"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/valuation"
)

type playerRequest struct {
	Nickname      string  `json:"nickname"`
	Game          string  `json:"game"`
	Role          string  `json:"role"`
	Country       string  `json:"country"`
	Rating        float64 `json:"rating"`
	KDRatio       float64 `json:"kd_ratio"`
	MatchesPlayed int     `json:"matches_played"`
	IsListed      *bool   `json:"is_listed"`
}

// HandleListPlayers is the public marketplace browse endpoint. Filters are
// optional query parameters; results are ordered most valuable first.
func HandleListPlayers(c *fiber.Ctx) error {
	filter := repository.PlayerFilter{
		Game:       strings.TrimSpace(c.Query("game")),
		Role:       strings.TrimSpace(c.Query("role")),
		Country:    strings.ToUpper(strings.TrimSpace(c.Query("country"))),
		Nickname:   strings.TrimSpace(c.Query("nickname")),
		MinRating:  c.QueryFloat("min_rating", 0),
		ListedOnly: true,
	}

	page, perPage := parsePagination(c)
	playerRepo := repository.GetGlobalFactory().GetPlayerRepository()

	total, err := playerRepo.Count(filter)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load players")
	}

	players, err := playerRepo.List(filter, (page-1)*perPage, perPage)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load players")
	}

	return c.JSON(fiber.Map{
		"players":  players,
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}

// HandleGetPlayer returns a single listing. Unlisted players are only visible
// to their owner.
func HandleGetPlayer(c *fiber.Ctx) error {
	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid player id")
	}

	player, err := repository.GetGlobalFactory().GetPlayerRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Player not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load player")
	}

	if !player.IsListed && usercontext.GetUserID(c) != player.UserID {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Player not found")
	}

	return c.JSON(fiber.Map{"player": player})
}

// HandleGetMyPlayers returns every listing owned by the caller, listed or not.
func HandleGetMyPlayers(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	players, err := repository.GetGlobalFactory().GetPlayerRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load players")
	}

	return c.JSON(fiber.Map{"players": players})
}

// HandleCreatePlayer creates a listing after checking the caller's plan still
// has room. The market value is derived from the submitted performance
// numbers, never taken from the request.
func HandleCreatePlayer(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	var req playerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	playerRepo := repository.GetGlobalFactory().GetPlayerRepository()

	plan, err := subscriptions.NewServiceFromDB(database.GetDB()).CurrentPlan(c.Context(), userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to resolve plan")
	}
	owned, err := playerRepo.CountByUserID(userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to check listing limit")
	}
	if !plan.AllowsListing(owned) {
		return jsonError(c, fiber.StatusForbidden, "listing_limit_reached", "Your plan's player listing limit is reached")
	}

	player := &models.Player{
		UserID:        userCtx.UserID,
		Nickname:      strings.TrimSpace(req.Nickname),
		Game:          strings.ToLower(strings.TrimSpace(req.Game)),
		Role:          strings.ToLower(strings.TrimSpace(req.Role)),
		Country:       strings.ToUpper(strings.TrimSpace(req.Country)),
		Rating:        req.Rating,
		KDRatio:       req.KDRatio,
		MatchesPlayed: req.MatchesPlayed,
		IsListed:      true,
	}
	if req.IsListed != nil {
		player.IsListed = *req.IsListed
	}
	player.MarketValue = valuation.ComputeMarketValue(player.Rating, player.KDRatio, player.MatchesPlayed)

	if err := player.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	if err := playerRepo.Create(player); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create player")
	}

	go statistics.UpdateStatisticsCache()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"player": player})
}

// HandleUpdatePlayer edits an owned listing. Performance changes recompute
// the market value.
func HandleUpdatePlayer(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	player, status, errCode, errMsg := loadOwnedPlayer(c, userCtx.UserID)
	if player == nil {
		return jsonError(c, status, errCode, errMsg)
	}

	var req playerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if req.Nickname != "" {
		player.Nickname = strings.TrimSpace(req.Nickname)
	}
	if req.Game != "" {
		player.Game = strings.ToLower(strings.TrimSpace(req.Game))
	}
	if req.Role != "" {
		player.Role = strings.ToLower(strings.TrimSpace(req.Role))
	}
	if req.Country != "" {
		player.Country = strings.ToUpper(strings.TrimSpace(req.Country))
	}
	if req.Rating > 0 {
		player.Rating = req.Rating
	}
	if req.KDRatio > 0 {
		player.KDRatio = req.KDRatio
	}
	if req.MatchesPlayed > 0 {
		player.MatchesPlayed = req.MatchesPlayed
	}
	if req.IsListed != nil {
		player.IsListed = *req.IsListed
	}
	player.MarketValue = valuation.ComputeMarketValue(player.Rating, player.KDRatio, player.MatchesPlayed)

	if err := player.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	if err := repository.GetGlobalFactory().GetPlayerRepository().Update(player); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update player")
	}

	return c.JSON(fiber.Map{"player": player})
}

// HandleDeletePlayer removes an owned listing (soft delete).
func HandleDeletePlayer(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	player, status, errCode, errMsg := loadOwnedPlayer(c, userCtx.UserID)
	if player == nil {
		return jsonError(c, status, errCode, errMsg)
	}

	if err := repository.GetGlobalFactory().GetPlayerRepository().Delete(player.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete player")
	}

	go statistics.UpdateStatisticsCache()

	return c.JSON(fiber.Map{"message": "Player deleted"})
}

// HandleRefreshPlayerStats pulls fresh numbers from the external stats
// provider and recomputes the market value. Sits behind the detailed
// statistics feature gate.
func HandleRefreshPlayerStats(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	player, status, errCode, errMsg := loadOwnedPlayer(c, userCtx.UserID)
	if player == nil {
		return jsonError(c, status, errCode, errMsg)
	}

	stats, err := statsapi.NewClientFromEnv().FetchPlayerStats(c.Context(), player.Game, player.Nickname)
	if err != nil {
		return jsonError(c, fiber.StatusBadGateway, "stats_unavailable", "Stats provider did not return data")
	}

	now := time.Now()
	player.Rating = stats.Rating
	player.KDRatio = stats.KDRatio
	player.MatchesPlayed = stats.MatchesPlayed
	player.MarketValue = valuation.ComputeMarketValue(player.Rating, player.KDRatio, player.MatchesPlayed)
	player.StatsSyncedAt = &now

	if err := repository.GetGlobalFactory().GetPlayerRepository().Update(player); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save refreshed stats")
	}

	return c.JSON(fiber.Map{"player": player})
}

// loadOwnedPlayer fetches the player from the :id path parameter and verifies
// ownership. On failure player is nil and the remaining values describe the
// JSON error to send.
func loadOwnedPlayer(c *fiber.Ctx, userID uint) (*models.Player, int, string, string) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return nil, fiber.StatusBadRequest, "bad_request", "Invalid player id"
	}

	player, err := repository.GetGlobalFactory().GetPlayerRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.StatusNotFound, "not_found", "Player not found"
		}
		return nil, fiber.StatusInternalServerError, "internal_server_error", "Failed to load player"
	}
	if player.UserID != userID {
		return nil, fiber.StatusForbidden, "forbidden", "You do not own this listing"
	}
	return player, 0, "", ""
}
