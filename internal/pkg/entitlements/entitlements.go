package entitlements

import (
	"strings"

	"github.com/nikolamilosevic/TransferHub/app/models"
)

type PlanKind string

const (
	PlanFree       PlanKind = "free"
	PlanMonthly    PlanKind = "monthly"
	PlanQuarterly  PlanKind = "quarterly"
	PlanEnterprise PlanKind = "enterprise"
)

// DefaultKind is what accounts without a subscription fall back to.
const DefaultKind = string(PlanFree)

// Feature keys accepted by access checks. Anything else is denied.
const (
	FeatureStatistics      = "statistics"
	FeatureAISearch        = "ai_search"
	FeatureAPI             = "api"
	FeaturePrioritySupport = "priority_support"
)

// NormalizeKind maps arbitrary input to a known plan kind, defaulting to free.
func NormalizeKind(kind string) PlanKind {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case string(PlanMonthly):
		return PlanMonthly
	case string(PlanQuarterly):
		return PlanQuarterly
	case string(PlanEnterprise):
		return PlanEnterprise
	default:
		return PlanFree
	}
}

// IsKnownKind reports whether the input names a catalog plan kind exactly.
func IsKnownKind(kind string) bool {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case string(PlanFree), string(PlanMonthly), string(PlanQuarterly), string(PlanEnterprise):
		return true
	default:
		return false
	}
}

// KindRank orders plan kinds from cheapest to most capable.
func KindRank(kind PlanKind) int {
	switch kind {
	case PlanEnterprise:
		return 3
	case PlanQuarterly:
		return 2
	case PlanMonthly:
		return 1
	default:
		return 0
	}
}

// PlanAllows resolves a feature key against the plan's stored capability
// flags. Unknown keys deny. Capabilities always come from the live catalog
// record, never from the subscription row - the subscription only locks the
// price, not what the plan grants.
func PlanAllows(plan *models.Plan, featureKey string) bool {
	if plan == nil {
		return false
	}
	switch featureKey {
	case FeatureStatistics:
		return plan.DetailedStatistics
	case FeatureAISearch:
		return plan.AISearch
	case FeatureAPI:
		return plan.APIAccess
	case FeaturePrioritySupport:
		return plan.PrioritySupport
	default:
		return false
	}
}
