package repository

import (
	"github.com/nikolamilosevic/TransferHub/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, *models.UserSettings, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	Search(query string) ([]models.User, error)
}

// PlayerFilter narrows player listing queries. Zero values mean "no filter".
type PlayerFilter struct {
	Game       string
	Role       string
	Country    string
	Nickname   string
	MinRating  float64
	ListedOnly bool
}

// PlayerRepository defines the interface for player listing operations
type PlayerRepository interface {
	Create(player *models.Player) error
	GetByID(id uint) (*models.Player, error)
	GetByUserID(userID uint) ([]models.Player, error)
	Update(player *models.Player) error
	Delete(id uint) error
	List(filter PlayerFilter, offset, limit int) ([]models.Player, error)
	Count(filter PlayerFilter) (int64, error)
	CountByUserID(userID uint) (int64, error)
}

// TeamRepository defines the interface for team-related database operations
type TeamRepository interface {
	Create(team *models.Team) error
	GetByID(id uint) (*models.Team, error)
	GetByUserID(userID uint) ([]models.Team, error)
	GetByName(name string) (*models.Team, error)
	Update(team *models.Team) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Team, error)
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User   UserRepository
	Player PlayerRepository
	Team   TeamRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:   NewUserRepository(db),
		Player: NewPlayerRepository(db),
		Team:   NewTeamRepository(db),
	}
}
