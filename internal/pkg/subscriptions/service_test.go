package subscriptions

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/nikolamilosevic/TransferHub/app/models"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/entitlements"
	"gorm.io/gorm"
)

// fakeRepo is an in-memory Repository with the same observable semantics as
// the GORM implementation, including the transactional cancel-then-insert.
type fakeRepo struct {
	plans  []models.Plan
	users  []models.User
	subs   map[uint]*models.Subscription
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{subs: make(map[uint]*models.Subscription)}
}

func (f *fakeRepo) FindActivePlanByKind(kind string) (*models.Plan, error) {
	for i := range f.plans {
		if f.plans[i].Kind == kind && f.plans[i].IsActive {
			p := f.plans[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListActivePlans() ([]models.Plan, error) {
	var out []models.Plan
	for _, p := range f.plans {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PriceMonthly < out[j].PriceMonthly })
	return out, nil
}

func (f *fakeRepo) FindUserByEmail(email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindActiveSubscription(userID uint, now time.Time) (*models.Subscription, error) {
	for _, s := range f.subs {
		if s.UserID == userID && s.Status == models.SubscriptionStatusActive && s.EndsAt.After(now) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindLatestSubscription(userID uint) (*models.Subscription, error) {
	var latest *models.Subscription
	for _, s := range f.subs {
		if s.UserID != userID {
			continue
		}
		if latest == nil || s.ID > latest.ID {
			latest = s
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeRepo) GetSubscription(id uint) (*models.Subscription, error) {
	if s, ok := f.subs[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) SaveSubscription(sub *models.Subscription) error {
	if sub.ID == 0 {
		f.nextID++
		sub.ID = f.nextID
	}
	cp := *sub
	f.subs[sub.ID] = &cp
	return nil
}

func (f *fakeRepo) ReplaceActiveSubscription(userID uint, sub *models.Subscription, now time.Time) error {
	for _, s := range f.subs {
		if s.UserID == userID && s.Status == models.SubscriptionStatusActive {
			t := now
			s.Status = models.SubscriptionStatusCancelled
			s.CancelledAt = &t
		}
	}
	return f.SaveSubscription(sub)
}

func (f *fakeRepo) MarkExpiredSubscriptions(now time.Time) (int64, error) {
	var n int64
	for _, s := range f.subs {
		if s.Status == models.SubscriptionStatusActive && !s.EndsAt.After(now) {
			s.Status = models.SubscriptionStatusExpired
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) activeCount(userID uint) int {
	n := 0
	for _, s := range f.subs {
		if s.UserID == userID && s.Status == models.SubscriptionStatusActive {
			n++
		}
	}
	return n
}

func seedCatalog(f *fakeRepo) {
	f.plans = []models.Plan{
		{ID: 1, Kind: models.PlanKindFree, Name: "Free", PriceMonthly: 0, PlayerListingLimit: 5, IsActive: true},
		{ID: 2, Kind: models.PlanKindMonthly, Name: "Monthly", PriceMonthly: 100, PlayerListingLimit: 50,
			DetailedStatistics: true, AISearch: true, IsActive: true},
		{ID: 3, Kind: models.PlanKindQuarterly, Name: "Quarterly", PriceMonthly: 230, PlayerListingLimit: models.UnlimitedPlayerListings,
			DetailedStatistics: true, AISearch: true, APIAccess: true, PrioritySupport: true, IsActive: true},
		{ID: 4, Kind: models.PlanKindEnterprise, Name: "Enterprise", PriceMonthly: 499.90, PlayerListingLimit: models.UnlimitedPlayerListings,
			DetailedStatistics: true, AISearch: true, APIAccess: true, PrioritySupport: true, IsActive: true},
	}
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	seedCatalog(repo)
	repo.users = []models.User{
		{ID: 7, Name: "scout", Email: "scout@example.com", Status: models.STATUS_ACTIVE},
	}
	return NewService(repo), repo
}

func TestCreateSubscriptionReplacesActive(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	first, err := svc.CreateSubscription(ctx, 7, models.PlanKindMonthly)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := svc.CreateSubscription(ctx, 7, models.PlanKindQuarterly)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}

	if got := repo.activeCount(7); got != 1 {
		t.Fatalf("expected exactly one active subscription, got %d", got)
	}

	active, err := svc.GetActiveSubscription(ctx, 7)
	if err != nil {
		t.Fatalf("GetActiveSubscription failed: %v", err)
	}
	if active == nil || active.ID != second.ID {
		t.Fatalf("expected the quarterly subscription to be the active one")
	}
	if active.PlanKind != models.PlanKindQuarterly {
		t.Fatalf("active plan kind = %q, want quarterly", active.PlanKind)
	}

	replaced, _ := repo.GetSubscription(first.ID)
	if replaced.Status != models.SubscriptionStatusCancelled {
		t.Fatalf("replaced subscription status = %q, want cancelled", replaced.Status)
	}
	if replaced.CancelledAt == nil {
		t.Fatalf("replaced subscription is missing its cancellation timestamp")
	}
}

func TestCreateSubscriptionCapturesPlanPrice(t *testing.T) {
	svc, _ := newTestService()

	sub, err := svc.CreateSubscription(context.Background(), 7, models.PlanKindQuarterly)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if sub.PriceMonthly != 230 {
		t.Fatalf("captured price = %v, want 230", sub.PriceMonthly)
	}
	if sub.TransactionRef == "" {
		t.Fatalf("expected a transaction reference on the new subscription")
	}
	if !sub.EndsAt.After(sub.StartsAt) {
		t.Fatalf("EndsAt %v must be after StartsAt %v", sub.EndsAt, sub.StartsAt)
	}
}

func TestCreateSubscriptionPeriodIsOneMonthForAllKinds(t *testing.T) {
	// Every kind, quarterly included, gets a one-month initial window; the
	// longer window only accrues through renewals.
	svc, _ := newTestService()

	for _, kind := range []string{models.PlanKindFree, models.PlanKindMonthly, models.PlanKindQuarterly, models.PlanKindEnterprise} {
		sub, err := svc.CreateSubscription(context.Background(), 7, kind)
		if err != nil {
			t.Fatalf("create(%s) failed: %v", kind, err)
		}
		want := sub.StartsAt.AddDate(0, 1, 0)
		if !sub.EndsAt.Equal(want) {
			t.Fatalf("create(%s): EndsAt = %v, want StartsAt + 1 month (%v)", kind, sub.EndsAt, want)
		}
	}
}

func TestCreateSubscriptionUnknownPlan(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.CreateSubscription(context.Background(), 7, "platinum")
	if !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
	if len(repo.subs) != 0 {
		t.Fatalf("failed create must not write anything, found %d rows", len(repo.subs))
	}
}

func TestCreateSubscriptionInactivePlan(t *testing.T) {
	svc, repo := newTestService()
	for i := range repo.plans {
		if repo.plans[i].Kind == models.PlanKindMonthly {
			repo.plans[i].IsActive = false
		}
	}

	_, err := svc.CreateSubscription(context.Background(), 7, models.PlanKindMonthly)
	if !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound for deactivated plan, got %v", err)
	}
}

func TestCreateOrReplaceSubscriptionByEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateOrReplaceSubscriptionByEmail(ctx, "ghost@example.com", models.PlanKindMonthly)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	sub, err := svc.CreateOrReplaceSubscriptionByEmail(ctx, "scout@example.com", models.PlanKindMonthly)
	if err != nil {
		t.Fatalf("create by email failed: %v", err)
	}
	if sub.UserID != 7 {
		t.Fatalf("subscription owner = %d, want 7", sub.UserID)
	}
}

func TestHasAccessPerPlan(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateSubscription(ctx, 7, models.PlanKindFree); err != nil {
		t.Fatalf("create free failed: %v", err)
	}
	if ok, _ := svc.HasAccess(ctx, 7, entitlements.FeatureAISearch); ok {
		t.Fatalf("free plan must not grant ai_search")
	}

	if _, err := svc.CreateSubscription(ctx, 7, models.PlanKindMonthly); err != nil {
		t.Fatalf("upgrade to monthly failed: %v", err)
	}
	if ok, _ := svc.HasAccess(ctx, 7, entitlements.FeatureAISearch); !ok {
		t.Fatalf("monthly plan must grant ai_search")
	}
	if ok, _ := svc.HasAccess(ctx, 7, entitlements.FeatureAPI); ok {
		t.Fatalf("monthly plan must not grant api access")
	}
	if ok, _ := svc.HasAccess(ctx, 7, "no_such_feature"); ok {
		t.Fatalf("unknown feature keys must deny")
	}
}

func TestHasAccessWithoutSubscription(t *testing.T) {
	svc, _ := newTestService()

	ok, err := svc.HasAccess(context.Background(), 99, entitlements.FeatureStatistics)
	if err != nil {
		t.Fatalf("HasAccess failed: %v", err)
	}
	if ok {
		t.Fatalf("user without subscription must be denied")
	}
}

func TestHasAccessIgnoresLapsedWindow(t *testing.T) {
	// Stored status still reads active, but the window has closed and the
	// sweep has not run. Entitlement must still deny.
	svc, repo := newTestService()
	ctx := context.Background()

	sub, err := svc.CreateSubscription(ctx, 7, models.PlanKindMonthly)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	stored := repo.subs[sub.ID]
	stored.EndsAt = time.Now().Add(-time.Hour)

	if got, _ := svc.GetActiveSubscription(ctx, 7); got != nil {
		t.Fatalf("lapsed subscription must not be returned as active")
	}
	if ok, _ := svc.HasAccess(ctx, 7, entitlements.FeatureAISearch); ok {
		t.Fatalf("lapsed subscription must not grant access")
	}
}

func TestRenewSubscription(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	sub, err := svc.CreateSubscription(ctx, 7, models.PlanKindMonthly)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	endBefore := sub.EndsAt

	if err := svc.RenewSubscription(ctx, sub.ID); err != nil {
		t.Fatalf("renew failed: %v", err)
	}
	renewed, _ := repo.GetSubscription(sub.ID)
	if want := endBefore.AddDate(0, 1, 0); !renewed.EndsAt.Equal(want) {
		t.Fatalf("renewed EndsAt = %v, want %v", renewed.EndsAt, want)
	}
	if renewed.Status != models.SubscriptionStatusActive {
		t.Fatalf("renewed status = %q, want active", renewed.Status)
	}

	// Renewing an unknown id is a silent no-op.
	if err := svc.RenewSubscription(ctx, 4242); err != nil {
		t.Fatalf("renew of unknown id must be a no-op, got %v", err)
	}
}

func TestRenewReactivatesLapsed(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	sub, err := svc.CreateSubscription(ctx, 7, models.PlanKindMonthly)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	repo.subs[sub.ID].Status = models.SubscriptionStatusExpired

	if err := svc.RenewSubscription(ctx, sub.ID); err != nil {
		t.Fatalf("renew failed: %v", err)
	}
	renewed, _ := repo.GetSubscription(sub.ID)
	if renewed.Status != models.SubscriptionStatusActive {
		t.Fatalf("renew must force status back to active, got %q", renewed.Status)
	}
}

func TestCancelSubscriptionIdempotent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	sub, err := svc.CreateSubscription(ctx, 7, models.PlanKindMonthly)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.CancelSubscription(ctx, sub.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	first, _ := repo.GetSubscription(sub.ID)
	if first.Status != models.SubscriptionStatusCancelled || first.CancelledAt == nil {
		t.Fatalf("cancel did not record status and timestamp")
	}
	cancelledAt := *first.CancelledAt

	if err := svc.CancelSubscription(ctx, sub.ID); err != nil {
		t.Fatalf("second cancel must be a no-op, got %v", err)
	}
	second, _ := repo.GetSubscription(sub.ID)
	if !second.CancelledAt.Equal(cancelledAt) {
		t.Fatalf("second cancel changed the cancellation timestamp")
	}

	if err := svc.CancelSubscription(ctx, 4242); err != nil {
		t.Fatalf("cancel of unknown id must be a no-op, got %v", err)
	}
}

func TestListActivePlansOrderedByPrice(t *testing.T) {
	svc, repo := newTestService()
	repo.plans = append(repo.plans, models.Plan{
		ID: 5, Kind: models.PlanKindMonthly, Name: "Legacy Monthly", PriceMonthly: 80, IsActive: false,
	})

	plans, err := svc.ListActivePlans(context.Background())
	if err != nil {
		t.Fatalf("ListActivePlans failed: %v", err)
	}
	if len(plans) != 4 {
		t.Fatalf("expected 4 active plans, got %d", len(plans))
	}
	for i := 1; i < len(plans); i++ {
		if plans[i-1].PriceMonthly > plans[i].PriceMonthly {
			t.Fatalf("plans not ordered by ascending price: %v before %v", plans[i-1].PriceMonthly, plans[i].PriceMonthly)
		}
	}
}

func TestExpireLapsed(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	sub, err := svc.CreateSubscription(ctx, 7, models.PlanKindMonthly)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	repo.subs[sub.ID].EndsAt = time.Now().Add(-time.Minute)

	n, err := svc.ExpireLapsed(ctx)
	if err != nil {
		t.Fatalf("ExpireLapsed failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 swept subscription, got %d", n)
	}
	swept, _ := repo.GetSubscription(sub.ID)
	if swept.Status != models.SubscriptionStatusExpired {
		t.Fatalf("swept status = %q, want expired", swept.Status)
	}
}

func TestUpgradeScenario(t *testing.T) {
	// Registration auto-creates a free subscription, the user later upgrades
	// to quarterly: one active subscription with the locked quarterly price
	// and the quarterly capability set.
	svc, repo := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateSubscription(ctx, 7, models.PlanKindFree); err != nil {
		t.Fatalf("auto-create free failed: %v", err)
	}
	free, err := svc.GetActiveSubscription(ctx, 7)
	if err != nil || free == nil {
		t.Fatalf("expected an active free subscription, got %v (%v)", free, err)
	}
	if free.PriceMonthly != 0 {
		t.Fatalf("free price = %v, want 0", free.PriceMonthly)
	}

	if _, err := svc.CreateSubscription(ctx, 7, models.PlanKindQuarterly); err != nil {
		t.Fatalf("upgrade failed: %v", err)
	}
	if got := repo.activeCount(7); got != 1 {
		t.Fatalf("expected exactly one active subscription after upgrade, got %d", got)
	}

	active, _ := svc.GetActiveSubscription(ctx, 7)
	if active.PlanKind != models.PlanKindQuarterly || active.PriceMonthly != 230 {
		t.Fatalf("active = %q @ %v, want quarterly @ 230", active.PlanKind, active.PriceMonthly)
	}

	plan, err := repo.FindActivePlanByKind(active.PlanKind)
	if err != nil {
		t.Fatalf("plan lookup failed: %v", err)
	}
	if !plan.HasUnlimitedListings() {
		t.Fatalf("quarterly plan must carry the unlimited listing sentinel")
	}
	for _, key := range []string{entitlements.FeatureStatistics, entitlements.FeatureAISearch, entitlements.FeatureAPI, entitlements.FeaturePrioritySupport} {
		if ok, _ := svc.HasAccess(ctx, 7, key); !ok {
			t.Fatalf("quarterly plan must grant %s", key)
		}
	}
}
