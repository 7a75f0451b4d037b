package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Team is an organization or squad recruiting on the marketplace.
type Team struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Name         string         `gorm:"type:varchar(150);not null;uniqueIndex" json:"name" validate:"required,min=2,max=150"`
	Tag          string         `gorm:"type:varchar(10);default:''" json:"tag" validate:"max=10"`
	Game         string         `gorm:"type:varchar(50);not null;index" json:"game" validate:"required,max=50"`
	Country      string         `gorm:"type:varchar(2);default:''" json:"country" validate:"omitempty,len=2"`
	Description  string         `gorm:"type:text" json:"description" validate:"max=2000"`
	LogoURL      string         `gorm:"type:varchar(255);default:''" json:"logo_url" validate:"max=255"`
	IsRecruiting bool           `gorm:"default:true" json:"is_recruiting"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Team) Validate() error {
	v := validator.New()

	return v.Struct(t)
}
