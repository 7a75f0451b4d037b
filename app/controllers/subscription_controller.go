package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nikolamilosevic/TransferHub/internal/pkg/database"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/env"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/security"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/session"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/subscriptions"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/usercontext"
)

// checkoutTokenTTL bounds how long a started checkout stays completable.
const checkoutTokenTTL = 15 * time.Minute

type checkoutRequest struct {
	PlanKind string `json:"plan_kind"`
}

type checkoutCompleteRequest struct {
	Token string `json:"token"`
}

type internalSubscriptionRequest struct {
	Email    string `json:"email"`
	PlanKind string `json:"plan_kind"`
}

func subscriptionService() *subscriptions.Service {
	return subscriptions.NewServiceFromDB(database.GetDB())
}

// HandleCheckoutStart opens a mock checkout session for the requested plan.
// No payment gateway is attached; the signed token stands in for the
// provider's session id and is swapped for the subscription on completion.
func HandleCheckoutStart(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	kind := strings.ToLower(strings.TrimSpace(req.PlanKind))
	if kind == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "plan_kind is required")
	}

	// Reject unknown kinds before handing out a token, so a typo fails at
	// checkout start instead of at completion.
	svc := subscriptionService()
	plans, err := svc.ListActivePlans(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load plans")
	}
	found := false
	for _, p := range plans {
		if p.Kind == kind {
			found = true
			break
		}
	}
	if !found {
		return jsonError(c, fiber.StatusNotFound, "plan_not_found", "No active plan with this kind")
	}

	secret := env.GetEnv("CHECKOUT_TOKEN_SECRET", "")
	token, err := security.GenerateCheckoutToken(userCtx.UserID, kind, checkoutTokenTTL, secret)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to start checkout")
	}

	return c.JSON(fiber.Map{
		"checkout_token": token,
		"expires_in":     int(checkoutTokenTTL.Seconds()),
		"complete_url":   "/checkout/complete",
	})
}

// HandleCheckoutComplete verifies the checkout token and activates the
// subscription, replacing whatever was active before.
func HandleCheckoutComplete(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	var req checkoutCompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	secret := env.GetEnv("CHECKOUT_TOKEN_SECRET", "")
	claims, err := security.VerifyCheckoutToken(req.Token, secret)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "invalid_token", "Checkout token is invalid or expired")
	}
	if claims.UserID != userCtx.UserID {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "Checkout token belongs to another account")
	}

	sub, err := subscriptionService().CreateSubscription(c.Context(), claims.UserID, claims.PlanKind)
	if err != nil {
		if errors.Is(err, subscriptions.ErrPlanNotFound) {
			return jsonError(c, fiber.StatusNotFound, "plan_not_found", "No active plan with this kind")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create subscription")
	}

	// The session caches the plan kind for display; refresh it so the UI does
	// not show the old tier until re-login.
	_ = session.SetSessionValue(c, USER_PLAN, sub.PlanKind)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"subscription": sub})
}

// HandleGetSubscription returns the caller's current subscription, or null
// when the free fallback applies.
func HandleGetSubscription(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	sub, err := subscriptionService().GetActiveSubscription(c.Context(), userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load subscription")
	}

	return c.JSON(fiber.Map{"subscription": sub})
}

// HandleCancelSubscription cancels the caller's active subscription. Calling
// it without one is a no-op, matching the idempotent service semantics.
func HandleCancelSubscription(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	svc := subscriptionService()
	sub, err := svc.GetActiveSubscription(c.Context(), userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load subscription")
	}
	if sub != nil {
		if err := svc.CancelSubscription(c.Context(), sub.ID); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to cancel subscription")
		}
	}

	_ = session.SetSessionValue(c, USER_PLAN, "")

	return c.JSON(fiber.Map{"message": "Subscription cancelled"})
}

// HandleRenewSubscription extends the caller's most recent subscription by one
// billing period. Works on lapsed subscriptions too - renewal is how an
// expired account comes back without losing its history row.
func HandleRenewSubscription(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	svc := subscriptionService()
	sub, err := svc.GetLatestSubscription(c.Context(), userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load subscription")
	}
	if sub == nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "No subscription to renew")
	}

	if err := svc.RenewSubscription(c.Context(), sub.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to renew subscription")
	}

	_ = session.SetSessionValue(c, USER_PLAN, sub.PlanKind)

	renewed, err := svc.GetActiveSubscription(c.Context(), userCtx.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load subscription")
	}

	return c.JSON(fiber.Map{"subscription": renewed})
}

// HandleInternalSubscriptionByEmail is the out-of-band write path used by
// checkout webhooks and admin tooling. It carries no session; the route sits
// behind the X-Internal-Token middleware.
func HandleInternalSubscriptionByEmail(c *fiber.Ctx) error {
	var req internalSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.PlanKind) == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "email and plan_kind are required")
	}

	sub, err := subscriptionService().CreateOrReplaceSubscriptionByEmail(c.Context(), req.Email, req.PlanKind)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrUserNotFound):
			return jsonError(c, fiber.StatusNotFound, "user_not_found", "No user with this email")
		case errors.Is(err, subscriptions.ErrPlanNotFound):
			return jsonError(c, fiber.StatusNotFound, "plan_not_found", "No active plan with this kind")
		default:
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update subscription")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"subscription": sub})
}
