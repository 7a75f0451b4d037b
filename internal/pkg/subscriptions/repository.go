package subscriptions

import (
	"time"

	"github.com/nikolamilosevic/TransferHub/app/models"
	"gorm.io/gorm"
)

// Repository provides DB operations used by the subscription service.
type Repository interface {
	FindActivePlanByKind(kind string) (*models.Plan, error)
	ListActivePlans() ([]models.Plan, error)
	FindUserByEmail(email string) (*models.User, error)
	FindActiveSubscription(userID uint, now time.Time) (*models.Subscription, error)
	FindLatestSubscription(userID uint) (*models.Subscription, error)
	GetSubscription(id uint) (*models.Subscription, error)
	SaveSubscription(sub *models.Subscription) error
	ReplaceActiveSubscription(userID uint, sub *models.Subscription, now time.Time) error
	MarkExpiredSubscriptions(now time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a subscription repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindActivePlanByKind(kind string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.Where("kind = ? AND is_active = ?", kind, true).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListActivePlans returns active plans cheapest first. The ordering is part
// of the pricing page contract, not cosmetic.
func (r *gormRepository) ListActivePlans() ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Where("is_active = ?", true).Order("price_monthly ASC").Find(&plans).Error
	return plans, err
}

func (r *gormRepository) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) FindActiveSubscription(userID uint, now time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.
		Where("user_id = ? AND status = ? AND ends_at > ?", userID, models.SubscriptionStatusActive, now).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindLatestSubscription returns the most recent subscription row of the user
// regardless of status. Renewal flows need to reach lapsed subscriptions that
// FindActiveSubscription no longer sees.
func (r *gormRepository) FindLatestSubscription(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) GetSubscription(id uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) SaveSubscription(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

// ReplaceActiveSubscription cancels every currently active subscription of
// the user and inserts the new one in a single transaction. Two concurrent
// checkouts for the same user must not both observe "no active subscription"
// and both insert - this is the one write path where atomicity matters.
func (r *gormRepository) ReplaceActiveSubscription(userID uint, sub *models.Subscription, now time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Subscription{}).
			Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
			Updates(map[string]interface{}{
				"status":       models.SubscriptionStatusCancelled,
				"cancelled_at": now,
			}).Error
		if err != nil {
			return err
		}
		return tx.Create(sub).Error
	})
}

// MarkExpiredSubscriptions rewrites the stored status of lapsed subscriptions
// for reporting. Entitlement reads never rely on this having run.
func (r *gormRepository) MarkExpiredSubscriptions(now time.Time) (int64, error) {
	tx := r.db.Model(&models.Subscription{}).
		Where("status = ? AND ends_at <= ?", models.SubscriptionStatusActive, now).
		Update("status", models.SubscriptionStatusExpired)
	return tx.RowsAffected, tx.Error
}
