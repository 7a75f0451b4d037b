package entitlements

import (
	"testing"

	"github.com/nikolamilosevic/TransferHub/app/models"
)

func TestNormalizeKind(t *testing.T) {
	tests := []struct {
		in   string
		want PlanKind
	}{
		{in: "free", want: PlanFree},
		{in: "monthly", want: PlanMonthly},
		{in: "quarterly", want: PlanQuarterly},
		{in: "enterprise", want: PlanEnterprise},
		{in: " ENTERPRISE ", want: PlanEnterprise},
		{in: "invalid", want: PlanFree},
		{in: "", want: PlanFree},
	}

	for _, tt := range tests {
		if got := NormalizeKind(tt.in); got != tt.want {
			t.Fatalf("NormalizeKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKindRank(t *testing.T) {
	if KindRank(PlanFree) >= KindRank(PlanMonthly) {
		t.Fatalf("expected monthly to outrank free")
	}
	if KindRank(PlanMonthly) >= KindRank(PlanQuarterly) {
		t.Fatalf("expected quarterly to outrank monthly")
	}
	if KindRank(PlanQuarterly) >= KindRank(PlanEnterprise) {
		t.Fatalf("expected enterprise to outrank quarterly")
	}
}

func TestPlanAllows(t *testing.T) {
	plan := &models.Plan{
		Kind:               models.PlanKindMonthly,
		DetailedStatistics: true,
		AISearch:           true,
		APIAccess:          false,
		PrioritySupport:    false,
	}

	if !PlanAllows(plan, FeatureStatistics) {
		t.Fatalf("expected statistics to be allowed")
	}
	if !PlanAllows(plan, FeatureAISearch) {
		t.Fatalf("expected ai_search to be allowed")
	}
	if PlanAllows(plan, FeatureAPI) {
		t.Fatalf("expected api to be denied")
	}
	if PlanAllows(plan, "does_not_exist") {
		t.Fatalf("expected unknown feature key to be denied")
	}
	if PlanAllows(nil, FeatureStatistics) {
		t.Fatalf("expected nil plan to deny everything")
	}
}
