package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nikolamilosevic/TransferHub/app/models"
	"github.com/nikolamilosevic/TransferHub/app/repository"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/database"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/subscriptions"
)

// AdminController handles admin-related HTTP requests using repository pattern
type AdminController struct {
	repos *repository.Repositories
}

// NewAdminController creates a new admin controller with repository dependencies
func NewAdminController(repos *repository.Repositories) *AdminController {
	return &AdminController{
		repos: repos,
	}
}

var adminController *AdminController

// InitializeAdminController wires the admin controller to the global repositories.
func InitializeAdminController() {
	adminController = NewAdminController(repository.GetGlobalRepositories())
}

// GetAdminController returns the initialized admin controller.
func GetAdminController() *AdminController {
	if adminController == nil {
		InitializeAdminController()
	}
	return adminController
}

// HandleDashboard returns marketplace totals for the admin overview.
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	totalUsers, err := ac.repos.User.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to get user count")
	}

	totalPlayers, err := ac.repos.Player.Count(repository.PlayerFilter{})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to get player count")
	}

	totalTeams, err := ac.repos.Team.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to get team count")
	}

	recentUsers, err := ac.repos.User.List(0, 5)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to get recent users")
	}

	return c.JSON(fiber.Map{
		"totals": fiber.Map{
			"users":   totalUsers,
			"players": totalPlayers,
			"teams":   totalTeams,
		},
		"recent_users": recentUsers,
	})
}

// HandleUsers lists accounts with optional search and pagination.
func (ac *AdminController) HandleUsers(c *fiber.Ctx) error {
	if query := strings.TrimSpace(c.Query("q")); query != "" {
		users, err := ac.repos.User.Search(query)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to search users")
		}
		return c.JSON(fiber.Map{"users": users, "total": len(users)})
	}

	page, perPage := parsePagination(c)
	total, err := ac.repos.User.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count users")
	}
	users, err := ac.repos.User.List((page-1)*perPage, perPage)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list users")
	}

	return c.JSON(fiber.Map{
		"users":    users,
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}

type adminUserStatusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateUserStatus enables or disables an account.
func (ac *AdminController) HandleUpdateUserStatus(c *fiber.Ctx) error {
	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid user id")
	}

	var req adminUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	switch status {
	case models.STATUS_ACTIVE, models.STATUS_INACTIVE, models.STATUS_DISABLED:
	default:
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "status must be active, inactive or disabled")
	}

	user, err := ac.repos.User.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}

	user.Status = status
	if err := ac.repos.User.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update user")
	}

	return c.JSON(fiber.Map{"user": user})
}

type adminPlanActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

// HandleSetPlanActive soft-activates or deactivates a catalog entry. Plans
// are never deleted - existing subscriptions reference them by kind.
func (ac *AdminController) HandleSetPlanActive(c *fiber.Ctx) error {
	kind := strings.ToLower(strings.TrimSpace(c.Params("kind")))
	if kind == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid plan kind")
	}

	var req adminPlanActiveRequest
	if err := c.BodyParser(&req); err != nil || req.IsActive == nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "is_active is required")
	}

	db := database.GetDB()
	var plan models.Plan
	if err := db.Where("kind = ?", kind).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Plan not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load plan")
	}

	plan.IsActive = *req.IsActive
	if err := db.Save(&plan).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update plan")
	}

	return c.JSON(fiber.Map{"plan": plan})
}

// HandleExpireSweep triggers the lapsed-subscription sweep on demand, outside
// the hourly schedule.
func (ac *AdminController) HandleExpireSweep(c *fiber.Ctx) error {
	n, err := subscriptions.NewServiceFromDB(database.GetDB()).ExpireLapsed(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Sweep failed")
	}

	return c.JSON(fiber.Map{"expired": n})
}
