package models

import "time"

const (
	PlanKindFree       = "free"
	PlanKindMonthly    = "monthly"
	PlanKindQuarterly  = "quarterly"
	PlanKindEnterprise = "enterprise"
)

// UnlimitedPlayerListings is the sentinel for plans without a listing cap.
const UnlimitedPlayerListings = -1

// Plan is a catalog entry describing a subscription tier. Plans are seeded at
// first boot and soft-deactivated via IsActive, never deleted - subscriptions
// reference them by kind, so history must survive catalog changes.
type Plan struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Kind               string    `gorm:"type:varchar(20);not null;index:idx_plans_kind_active,priority:1" json:"kind" validate:"oneof=free monthly quarterly enterprise"`
	Name               string    `gorm:"type:varchar(100);not null" json:"name" validate:"required,max=100"`
	Description        string    `gorm:"type:text" json:"description"`
	PriceMonthly       float64   `gorm:"type:decimal(10,2);not null;default:0" json:"price_monthly" validate:"gte=0"`
	PlayerListingLimit int       `gorm:"not null;default:5" json:"player_listing_limit"`
	DetailedStatistics bool      `gorm:"default:false" json:"detailed_statistics"`
	AISearch           bool      `gorm:"default:false" json:"ai_search"`
	APIAccess          bool      `gorm:"default:false" json:"api_access"`
	PrioritySupport    bool      `gorm:"default:false" json:"priority_support"`
	IsActive           bool      `gorm:"default:true;index:idx_plans_kind_active,priority:2" json:"is_active"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// HasUnlimitedListings reports whether the plan carries no listing cap.
func (p *Plan) HasUnlimitedListings() bool {
	return p.PlayerListingLimit == UnlimitedPlayerListings
}

// AllowsListing reports whether a user owning count listings may create one more.
func (p *Plan) AllowsListing(count int64) bool {
	if p.HasUnlimitedListings() {
		return true
	}
	return count < int64(p.PlayerListingLimit)
}
