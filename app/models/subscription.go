package models

import "time"

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
)

// Subscription is a time-bounded grant of one plan to one user. The plan kind
// and monthly price are copied at creation time (price-lock) - a later catalog
// change must not alter what an existing subscriber agreed to. Rows are never
// deleted; cancelled and expired subscriptions stay for audit history.
type Subscription struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;index:idx_subscriptions_user_status,priority:1" json:"user_id"`
	PlanKind       string     `gorm:"type:varchar(20);not null" json:"plan_kind"`
	Status         string     `gorm:"type:varchar(20);not null;default:'active';index:idx_subscriptions_user_status,priority:2" json:"status"`
	StartsAt       time.Time  `gorm:"not null" json:"starts_at"`
	EndsAt         time.Time  `gorm:"not null;index" json:"ends_at"`
	PriceMonthly   float64    `gorm:"type:decimal(10,2);not null;default:0" json:"price_monthly"`
	TransactionRef string     `gorm:"type:varchar(64);default:''" json:"transaction_ref,omitempty"`
	CancelledAt    *time.Time `gorm:"type:timestamp;default:null" json:"cancelled_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsCurrent reports whether the subscription entitles its owner at the given
// instant. The stored status may still read active after the paid window
// lapsed (the sweep is best-effort), so EndsAt is always checked too.
func (s *Subscription) IsCurrent(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.EndsAt.After(now)
}
