package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nikolamilosevic/TransferHub/app/models"
	"github.com/nikolamilosevic/TransferHub/app/repository"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/statistics"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/usercontext"
)

type teamRequest struct {
	Name         string `json:"name"`
	Tag          string `json:"tag"`
	Game         string `json:"game"`
	Country      string `json:"country"`
	Description  string `json:"description"`
	LogoURL      string `json:"logo_url"`
	IsRecruiting *bool  `json:"is_recruiting"`
}

// HandleListTeams returns the public team directory, newest first.
func HandleListTeams(c *fiber.Ctx) error {
	page, perPage := parsePagination(c)
	teamRepo := repository.GetGlobalFactory().GetTeamRepository()

	total, err := teamRepo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load teams")
	}

	teams, err := teamRepo.List((page-1)*perPage, perPage)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load teams")
	}

	return c.JSON(fiber.Map{
		"teams":    teams,
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}

func HandleGetTeam(c *fiber.Ctx) error {
	id := parseIDParam(c, "id")
	if id == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid team id")
	}

	team, err := repository.GetGlobalFactory().GetTeamRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Team not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load team")
	}

	return c.JSON(fiber.Map{"team": team})
}

// HandleCreateTeam registers a team profile. Team names are globally unique.
func HandleCreateTeam(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	var req teamRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	teamRepo := repository.GetGlobalFactory().GetTeamRepository()

	name := strings.TrimSpace(req.Name)
	if existing, err := teamRepo.GetByName(name); err == nil && existing != nil {
		return jsonError(c, fiber.StatusConflict, "name_taken", "A team with this name already exists")
	}

	team := &models.Team{
		UserID:       userCtx.UserID,
		Name:         name,
		Tag:          strings.TrimSpace(req.Tag),
		Game:         strings.ToLower(strings.TrimSpace(req.Game)),
		Country:      strings.ToUpper(strings.TrimSpace(req.Country)),
		Description:  req.Description,
		LogoURL:      strings.TrimSpace(req.LogoURL),
		IsRecruiting: true,
	}
	if req.IsRecruiting != nil {
		team.IsRecruiting = *req.IsRecruiting
	}

	if err := team.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	if err := teamRepo.Create(team); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create team")
	}

	go statistics.UpdateStatisticsCache()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"team": team})
}

func HandleUpdateTeam(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	team, status, errCode, errMsg := loadOwnedTeam(c, userCtx.UserID)
	if team == nil {
		return jsonError(c, status, errCode, errMsg)
	}

	var req teamRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if req.Name != "" {
		team.Name = strings.TrimSpace(req.Name)
	}
	if req.Tag != "" {
		team.Tag = strings.TrimSpace(req.Tag)
	}
	if req.Game != "" {
		team.Game = strings.ToLower(strings.TrimSpace(req.Game))
	}
	if req.Country != "" {
		team.Country = strings.ToUpper(strings.TrimSpace(req.Country))
	}
	if req.Description != "" {
		team.Description = req.Description
	}
	if req.LogoURL != "" {
		team.LogoURL = strings.TrimSpace(req.LogoURL)
	}
	if req.IsRecruiting != nil {
		team.IsRecruiting = *req.IsRecruiting
	}

	if err := team.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}
	if err := repository.GetGlobalFactory().GetTeamRepository().Update(team); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update team")
	}

	return c.JSON(fiber.Map{"team": team})
}

func HandleDeleteTeam(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return unauthorized(c)
	}

	team, status, errCode, errMsg := loadOwnedTeam(c, userCtx.UserID)
	if team == nil {
		return jsonError(c, status, errCode, errMsg)
	}

	if err := repository.GetGlobalFactory().GetTeamRepository().Delete(team.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to delete team")
	}

	go statistics.UpdateStatisticsCache()

	return c.JSON(fiber.Map{"message": "Team deleted"})
}

func loadOwnedTeam(c *fiber.Ctx, userID uint) (*models.Team, int, string, string) {
	id := parseIDParam(c, "id")
	if id == 0 {
		return nil, fiber.StatusBadRequest, "bad_request", "Invalid team id"
	}

	team, err := repository.GetGlobalFactory().GetTeamRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.StatusNotFound, "not_found", "Team not found"
		}
		return nil, fiber.StatusInternalServerError, "internal_server_error", "Failed to load team"
	}
	if team.UserID != userID {
		return nil, fiber.StatusForbidden, "forbidden", "You do not own this team"
	}
	return team, 0, "", ""
}
