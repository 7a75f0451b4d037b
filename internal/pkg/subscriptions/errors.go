package subscriptions

import "errors"

// Typed failures surfaced to callers. Both indicate a caller or catalog
// configuration problem, not a transient condition; persistence errors are
// passed through untouched so the web layer can map them to a 5xx.
var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrUserNotFound = errors.New("user not found")
)
