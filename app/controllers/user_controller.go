package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nikolamilosevic/TransferHub/app/models"
	"github.com/nikolamilosevic/TransferHub/app/repository"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/database"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/entitlements"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/subscriptions"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/usercontext"
)

type profileUpdateRequest struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

type settingsUpdateRequest struct {
	NotifyOnOffers    *bool  `json:"notify_on_offers"`
	NotifyOnStatsSync *bool  `json:"notify_on_stats_sync"`
	PublicProfile     *bool  `json:"public_profile"`
	PreferredCurrency string `json:"preferred_currency"`
}

// HandleUserProfile returns the caller's account together with the current
// subscription and listing counts.
func HandleUserProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	repos := repository.GetGlobalFactory().GetRepositories()
	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
	}

	playerCount, _ := repos.Player.CountByUserID(userCtx.UserID)
	teams, _ := repos.Team.GetByUserID(userCtx.UserID)

	sub, err := subscriptions.NewServiceFromDB(database.GetDB()).GetActiveSubscription(c.Context(), userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load subscription")
	}

	return c.JSON(fiber.Map{
		"user":         user,
		"subscription": sub,
		"stats": fiber.Map{
			"player_listings": playerCount,
			"teams":           len(teams),
		},
	})
}

// HandleUserProfileUpdate edits display fields of the account. Email and
// password changes are deliberately not part of this endpoint.
func HandleUserProfileUpdate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	var req profileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByID(userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
	}

	if req.Username != "" {
		user.Name = strings.TrimSpace(req.Username)
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.AvatarURL != "" {
		user.AvatarURL = strings.TrimSpace(req.AvatarURL)
	}

	if err := user.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	if err := userRepo.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update profile")
	}

	return c.JSON(fiber.Map{"user": user})
}

// HandleUserSettings returns notification and display preferences.
func HandleUserSettings(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	settings, err := models.GetOrCreateUserSettings(database.GetDB(), userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load settings")
	}

	return c.JSON(fiber.Map{"settings": settings})
}

func HandleUserSettingsUpdate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	var req settingsUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	db := database.GetDB()
	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load settings")
	}

	if req.NotifyOnOffers != nil {
		settings.NotifyOnOffers = *req.NotifyOnOffers
	}
	if req.NotifyOnStatsSync != nil {
		settings.NotifyOnStatsSync = *req.NotifyOnStatsSync
	}
	if req.PublicProfile != nil {
		settings.PublicProfile = *req.PublicProfile
	}
	if req.PreferredCurrency != "" {
		currency := strings.ToUpper(strings.TrimSpace(req.PreferredCurrency))
		if len(currency) != 3 {
			return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "preferred_currency must be a 3-letter code")
		}
		settings.PreferredCurrency = currency
	}

	if err := db.Save(settings).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save settings")
	}

	return c.JSON(fiber.Map{"settings": settings})
}

// HandleIssueAPIKey creates (or rotates) the caller's API key. The raw secret
// is only ever shown in this response; we store the hash.
func HandleIssueAPIKey(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	// The key only works together with the api feature flag, but issuing one
	// on a plan without it would just confuse users.
	allowed, err := subscriptions.NewServiceFromDB(database.GetDB()).HasAccess(c.Context(), userCtx.UserID, entitlements.FeatureAPI)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to check plan")
	}
	if !allowed {
		return jsonError(c, fiber.StatusForbidden, "plan_required", "Your plan does not include API access")
	}

	db := database.GetDB()
	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load settings")
	}

	rawKey, err := settings.IssueAPIKey()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to generate API key")
	}
	if err := db.Save(settings).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save API key")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"api_key":        rawKey,
		"api_key_prefix": settings.APIKeyPrefix,
		"message":        "Store this key now - it is not shown again.",
	})
}

func HandleRevokeAPIKey(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	db := database.GetDB()
	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load settings")
	}

	settings.RevokeAPIKey()
	if err := db.Save(settings).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to revoke API key")
	}

	return c.JSON(fiber.Map{"message": "API key revoked"})
}
