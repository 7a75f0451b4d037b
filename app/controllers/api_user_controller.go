package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nikolamilosevic/TransferHub/app/models"
	"github.com/nikolamilosevic/TransferHub/app/repository"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/database"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/subscriptions"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/usercontext"
)

// HandleGetUserAccount returns account information for the authenticated user (API key or session).
func HandleGetUserAccount(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	repos := repository.GetGlobalFactory().GetRepositories()
	account, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load user"})
	}

	playerCount, err := repos.Player.CountByUserID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load statistics"})
	}

	db := database.GetDB()
	if db == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Database unavailable"})
	}
	settings, err := models.GetOrCreateUserSettings(db, userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load user settings"})
	}

	svc := subscriptions.NewServiceFromDB(db)
	sub, err := svc.GetActiveSubscription(c.Context(), userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load subscription"})
	}
	plan, err := svc.CurrentPlan(c.Context(), userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to resolve plan"})
	}

	var listingLimit interface{}
	var listingsRemaining interface{}
	if !plan.HasUnlimitedListings() {
		listingLimit = plan.PlayerListingLimit
		remaining := int64(plan.PlayerListingLimit) - playerCount
		if remaining < 0 {
			remaining = 0
		}
		listingsRemaining = remaining
	}

	var subscriptionEndsAt interface{}
	if sub != nil {
		subscriptionEndsAt = sub.EndsAt.UTC().Format(time.RFC3339)
	}

	response := fiber.Map{
		"id":                   account.ID,
		"username":             account.Name,
		"email":                account.Email,
		"account_type":         account.AccountType,
		"status":               account.Status,
		"plan":                 plan.Kind,
		"is_admin":             account.Role == models.ROLE_ADMIN,
		"created_at":           account.CreatedAt.UTC().Format(time.RFC3339),
		"last_login_at":        formatTimePtr(account.LastLoginAt),
		"api_key_last_used_at": formatTimePtr(settings.APIKeyLastUsedAt),
		"subscription_ends_at": subscriptionEndsAt,
		"stats": fiber.Map{
			"player_listings": playerCount,
		},
		"limits": fiber.Map{
			"player_listing_limit":      listingLimit,
			"player_listings_remaining": listingsRemaining,
			"detailed_statistics":       plan.DetailedStatistics,
			"ai_search":                 plan.AISearch,
			"api_access":                plan.APIAccess,
			"priority_support":          plan.PrioritySupport,
		},
		"preferences": fiber.Map{
			"notify_on_offers":     settings.NotifyOnOffers,
			"notify_on_stats_sync": settings.NotifyOnStatsSync,
			"public_profile":       settings.PublicProfile,
			"preferred_currency":   settings.PreferredCurrency,
		},
	}

	return c.JSON(response)
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
