package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlanAllowsListing(t *testing.T) {
	capped := &Plan{PlayerListingLimit: 5}
	assert.True(t, capped.AllowsListing(0))
	assert.True(t, capped.AllowsListing(4))
	assert.False(t, capped.AllowsListing(5))
	assert.False(t, capped.AllowsListing(6))

	unlimited := &Plan{PlayerListingLimit: UnlimitedPlayerListings}
	assert.True(t, unlimited.HasUnlimitedListings())
	assert.True(t, unlimited.AllowsListing(0))
	assert.True(t, unlimited.AllowsListing(100000))
}

func TestSubscriptionIsCurrent(t *testing.T) {
	now := time.Now()

	active := &Subscription{Status: SubscriptionStatusActive, EndsAt: now.Add(24 * time.Hour)}
	assert.True(t, active.IsCurrent(now))

	// stored status may lag behind the window closing
	lapsed := &Subscription{Status: SubscriptionStatusActive, EndsAt: now.Add(-time.Minute)}
	assert.False(t, lapsed.IsCurrent(now))

	cancelled := &Subscription{Status: SubscriptionStatusCancelled, EndsAt: now.Add(24 * time.Hour)}
	assert.False(t, cancelled.IsCurrent(now))
}
