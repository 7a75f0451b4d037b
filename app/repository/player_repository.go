package repository

import (
	"strings"

	"github.com/nikolamilosevic/TransferHub/app/models"
	"gorm.io/gorm"
)

// playerRepository implements the PlayerRepository interface
type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new player repository instance
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

// Create creates a new player listing in the database
func (r *playerRepository) Create(player *models.Player) error {
	return r.db.Create(player).Error
}

// GetByID retrieves a player by its ID
func (r *playerRepository) GetByID(id uint) (*models.Player, error) {
	var player models.Player
	err := r.db.First(&player, id).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// GetByUserID retrieves all player listings owned by a user
func (r *playerRepository) GetByUserID(userID uint) ([]models.Player, error) {
	var players []models.Player
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&players).Error
	return players, err
}

// Update updates an existing player listing
func (r *playerRepository) Update(player *models.Player) error {
	return r.db.Save(player).Error
}

// Delete soft deletes a player listing by its ID
func (r *playerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Player{}, id).Error
}

// List retrieves a filtered, paginated page of player listings ordered by
// market value, most valuable first.
func (r *playerRepository) List(filter PlayerFilter, offset, limit int) ([]models.Player, error) {
	var players []models.Player
	err := r.applyFilter(filter).
		Order("market_value DESC").
		Offset(offset).Limit(limit).
		Find(&players).Error
	return players, err
}

// Count returns the number of player listings matching the filter
func (r *playerRepository) Count(filter PlayerFilter) (int64, error) {
	var count int64
	err := r.applyFilter(filter).Model(&models.Player{}).Count(&count).Error
	return count, err
}

// CountByUserID returns the number of listings owned by a user. The plan
// listing limit is enforced against this count.
func (r *playerRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Player{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *playerRepository) applyFilter(filter PlayerFilter) *gorm.DB {
	query := r.db
	if filter.ListedOnly {
		query = query.Where("is_listed = ?", true)
	}
	if filter.Game != "" {
		query = query.Where("game = ?", filter.Game)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Country != "" {
		query = query.Where("country = ?", strings.ToUpper(filter.Country))
	}
	if filter.Nickname != "" {
		query = query.Where("nickname LIKE ?", "%"+strings.TrimSpace(filter.Nickname)+"%")
	}
	if filter.MinRating > 0 {
		query = query.Where("rating >= ?", filter.MinRating)
	}
	return query
}
