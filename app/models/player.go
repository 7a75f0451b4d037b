package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	PlayerRoleEntry   = "entry"
	PlayerRoleSupport = "support"
	PlayerRoleSniper  = "sniper"
	PlayerRoleIGL     = "igl"
	PlayerRoleFlex    = "flex"
)

// Player is a marketplace listing for an esports player. Performance numbers
// come from the external stats provider; MarketValue is derived from them and
// recomputed on every stats refresh.
type Player struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	TeamID        *uint          `gorm:"index;default:null" json:"team_id,omitempty"`
	Nickname      string         `gorm:"type:varchar(100);not null;index" json:"nickname" validate:"required,min=2,max=100"`
	Game          string         `gorm:"type:varchar(50);not null;index" json:"game" validate:"required,max=50"`
	Role          string         `gorm:"type:varchar(30);default:''" json:"role" validate:"max=30"`
	Country       string         `gorm:"type:varchar(2);default:''" json:"country" validate:"omitempty,len=2"`
	Rating        float64        `gorm:"type:decimal(6,3);not null;default:0" json:"rating" validate:"gte=0"`
	KDRatio       float64        `gorm:"type:decimal(6,3);not null;default:0" json:"kd_ratio" validate:"gte=0"`
	MatchesPlayed int            `gorm:"not null;default:0" json:"matches_played" validate:"gte=0"`
	MarketValue   float64        `gorm:"type:decimal(12,2);not null;default:0" json:"market_value"`
	IsListed      bool           `gorm:"default:true;index" json:"is_listed"`
	StatsSyncedAt *time.Time     `gorm:"type:timestamp;default:null" json:"stats_synced_at,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Player) Validate() error {
	v := validator.New()

	return v.Struct(p)
}
