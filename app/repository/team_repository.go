package repository

import (
	"github.com/nikolamilosevic/TransferHub/app/models"
	"gorm.io/gorm"
)

// teamRepository implements the TeamRepository interface
type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository instance
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// Create creates a new team in the database
func (r *teamRepository) Create(team *models.Team) error {
	return r.db.Create(team).Error
}

// GetByID retrieves a team by its ID
func (r *teamRepository) GetByID(id uint) (*models.Team, error) {
	var team models.Team
	err := r.db.First(&team, id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetByUserID retrieves all teams owned by a user
func (r *teamRepository) GetByUserID(userID uint) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&teams).Error
	return teams, err
}

// GetByName retrieves a team by its unique name
func (r *teamRepository) GetByName(name string) (*models.Team, error) {
	var team models.Team
	err := r.db.Where("name = ?", name).First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// Update updates an existing team
func (r *teamRepository) Update(team *models.Team) error {
	return r.db.Save(team).Error
}

// Delete soft deletes a team by its ID
func (r *teamRepository) Delete(id uint) error {
	return r.db.Delete(&models.Team{}, id).Error
}

// List retrieves a paginated list of teams
func (r *teamRepository) List(offset, limit int) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&teams).Error
	return teams, err
}

// Count returns the total number of teams
func (r *teamRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Team{}).Count(&count).Error
	return count, err
}
