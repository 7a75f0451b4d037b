package subscriptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolamilosevic/TransferHub/app/models"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/entitlements"
	"gorm.io/gorm"
)

// Service owns the subscription lifecycle and answers entitlement queries.
// All subscription writes go through here so the one-active-subscription-per-
// user invariant has a single enforcement point.
type Service struct {
	repo Repository
}

// NewService creates a subscription service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a subscription service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// CreateSubscription subscribes the user to the active plan of the given
// kind, cancelling any currently active subscription in the same transaction.
// Every new subscription gets a one-month window regardless of plan kind;
// longer tiers extend their window through renewals.
func (s *Service) CreateSubscription(ctx context.Context, userID uint, planKind string) (*models.Subscription, error) {
	_ = ctx
	if userID == 0 {
		return nil, errors.New("user_id is required")
	}

	kind := strings.ToLower(strings.TrimSpace(planKind))
	plan, err := s.repo.FindActivePlanByKind(kind)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	now := time.Now()
	sub := &models.Subscription{
		UserID:         userID,
		PlanKind:       plan.Kind,
		Status:         models.SubscriptionStatusActive,
		StartsAt:       now,
		EndsAt:         now.AddDate(0, 1, 0),
		PriceMonthly:   plan.PriceMonthly,
		TransactionRef: uuid.NewString(),
	}
	if err := s.repo.ReplaceActiveSubscription(userID, sub, now); err != nil {
		return nil, err
	}
	return sub, nil
}

// CreateOrReplaceSubscriptionByEmail resolves the user by email first. Used
// by out-of-band flows (checkout webhooks, admin tooling) that carry no
// session; the route itself sits behind the internal token middleware.
func (s *Service) CreateOrReplaceSubscriptionByEmail(ctx context.Context, email string, planKind string) (*models.Subscription, error) {
	user, err := s.repo.FindUserByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.CreateSubscription(ctx, user.ID, planKind)
}

// GetActiveSubscription is the canonical entitlement lookup: the stored
// status alone is not trusted, the paid window must also still be open.
// Returns nil without error when the user has no current subscription.
func (s *Service) GetActiveSubscription(ctx context.Context, userID uint) (*models.Subscription, error) {
	_ = ctx
	sub, err := s.repo.FindActiveSubscription(userID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

// GetLatestSubscription returns the user's most recent subscription row
// regardless of status, or nil without error when the user never had one.
// Renewal targets lapsed subscriptions too, so the active-only lookup is not
// enough there.
func (s *Service) GetLatestSubscription(ctx context.Context, userID uint) (*models.Subscription, error) {
	_ = ctx
	sub, err := s.repo.FindLatestSubscription(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

// HasAccess reports whether the user's current subscription grants the named
// feature. The capability flags are resolved against the live catalog entry
// for the subscription's stored plan kind; a deactivated catalog entry denies.
func (s *Service) HasAccess(ctx context.Context, userID uint, featureKey string) (bool, error) {
	sub, err := s.GetActiveSubscription(ctx, userID)
	if err != nil {
		return false, err
	}
	if sub == nil {
		return false, nil
	}

	plan, err := s.repo.FindActivePlanByKind(sub.PlanKind)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return entitlements.PlanAllows(plan, featureKey), nil
}

// CurrentPlan resolves the catalog entry backing the user's current
// subscription, falling back to the free tier when there is none. Returns
// ErrPlanNotFound if even the free tier is missing from the catalog.
func (s *Service) CurrentPlan(ctx context.Context, userID uint) (*models.Plan, error) {
	kind := entitlements.DefaultKind
	sub, err := s.GetActiveSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		kind = sub.PlanKind
	}

	plan, err := s.repo.FindActivePlanByKind(kind)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// CancelSubscription cancels the subscription if it exists and is not already
// cancelled. Missing or repeated targets are silent no-ops, so callers can
// retry without special-casing.
func (s *Service) CancelSubscription(ctx context.Context, subscriptionID uint) error {
	_ = ctx
	sub, err := s.repo.GetSubscription(subscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if sub.Status == models.SubscriptionStatusCancelled {
		return nil
	}

	now := time.Now()
	sub.Status = models.SubscriptionStatusCancelled
	sub.CancelledAt = &now
	return s.repo.SaveSubscription(sub)
}

// RenewSubscription extends the paid window by one billing period from its
// current end - not from now, so remaining paid time is never lost - and
// forces the status back to active in case it had lapsed. Missing targets
// are silent no-ops.
func (s *Service) RenewSubscription(ctx context.Context, subscriptionID uint) error {
	_ = ctx
	sub, err := s.repo.GetSubscription(subscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	sub.EndsAt = sub.EndsAt.AddDate(0, 1, 0)
	sub.Status = models.SubscriptionStatusActive
	sub.CancelledAt = nil
	return s.repo.SaveSubscription(sub)
}

// ListActivePlans returns the purchasable catalog, cheapest plan first.
func (s *Service) ListActivePlans(ctx context.Context) ([]models.Plan, error) {
	_ = ctx
	return s.repo.ListActivePlans()
}

// ExpireLapsed rewrites the stored status of subscriptions whose window has
// closed. Called from the background sweep; purely for reporting.
func (s *Service) ExpireLapsed(ctx context.Context) (int64, error) {
	_ = ctx
	return s.repo.MarkExpiredSubscriptions(time.Now())
}
