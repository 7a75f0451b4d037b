package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nikolamilosevic/TransferHub/app/models"
	"github.com/nikolamilosevic/TransferHub/app/repository"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/database"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/env"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/mail"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/session"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/statistics"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/subscriptions"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/usercontext"
)

const (
	AUTH_KEY      string = usercontext.AuthKey
	USER_ID       string = usercontext.KeyUserID
	USER_NAME     string = usercontext.KeyUsername
	USER_IS_ADMIN string = usercontext.KeyIsAdmin
	USER_PLAN     string = "user_plan"
)

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccountType string `json:"account_type"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAuthRegister creates a new account, puts it on the free plan and
// sends the activation mail. The account stays inactive until the activation
// link is visited.
func HandleAuthRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	user, err := models.CreateUser(req.Username, req.Email, req.Password, req.AccountType)
	if err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	if err := user.GenerateActivationToken(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to prepare activation")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	if existing, err := userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return jsonError(c, fiber.StatusConflict, "email_taken", "An account with this email already exists")
	}

	if err := userRepo.Create(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create account")
	}

	// Every fresh account starts on the free tier so entitlement checks never
	// have to special-case "no subscription at all" for real users.
	subSvc := subscriptions.NewServiceFromDB(database.GetDB())
	if _, err := subSvc.CreateSubscription(c.Context(), user.ID, models.PlanKindFree); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to set up free plan")
	}

	sendActivationMail(user)

	go statistics.UpdateStatisticsCache()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful. Please check your mail to activate the account.",
		"user": fiber.Map{
			"id":           user.ID,
			"username":     user.Name,
			"email":        user.Email,
			"account_type": user.AccountType,
			"status":       user.Status,
		},
	})
}

// HandleAuthActivate flips the account to active when the mailed token matches.
func HandleAuthActivate(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Missing activation token")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByActivationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Invalid activation token")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to activate account")
	}

	user.Status = models.STATUS_ACTIVE
	user.ActivationToken = ""
	if err := userRepo.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to activate account")
	}

	return c.JSON(fiber.Map{"message": "Account activated. You can log in now."})
}

// HandleAuthLogin verifies credentials and opens a session. Login failures
// deliberately return the same message for unknown mail and wrong password.
func HandleAuthLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		return jsonError(c, fiber.StatusUnauthorized, "invalid_credentials", "Email or password is wrong")
	}
	if !user.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "invalid_credentials", "Email or password is wrong")
	}

	if user.Status == models.STATUS_DISABLED {
		return jsonError(c, fiber.StatusForbidden, "account_disabled", "This account has been disabled")
	}
	if !user.IsActive() {
		return jsonError(c, fiber.StatusForbidden, "account_inactive", "Please activate your account first")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", fmt.Sprintf("session error: %s", err))
	}

	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(USER_NAME, user.Name)
	sess.Set(USER_IS_ADMIN, user.Role == models.ROLE_ADMIN)

	if err := sess.Save(); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", fmt.Sprintf("session error: %s", err))
	}

	now := time.Now()
	user.LastLoginAt = &now
	_ = userRepo.Update(user)

	return c.JSON(fiber.Map{
		"message": "Logged in",
		"user": fiber.Map{
			"id":           user.ID,
			"username":     user.Name,
			"email":        user.Email,
			"account_type": user.AccountType,
			"is_admin":     user.Role == models.ROLE_ADMIN,
		},
	})
}

// HandleAuthLogout destroys the session. Always succeeds from the caller's
// point of view.
func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		_ = sess.Destroy()
	}

	c.Locals(usercontext.KeyFromProtected, false)

	return c.JSON(fiber.Map{"message": "Logged out"})
}

func sendActivationMail(user *models.User) {
	appURL := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:3000")
	link := fmt.Sprintf("%s/activate?token=%s", appURL, user.ActivationToken)
	body := fmt.Sprintf("Hi %s,\n\nwelcome to TransferHub! Activate your account:\n%s\n", user.Name, link)

	// Mail delivery must not block or fail registration.
	go func() {
		if err := mail.SendMail(user.Email, "Activate your TransferHub account", body); err != nil {
			fmt.Printf("activation mail to %s failed: %v\n", user.Email, err)
		}
	}()
}
