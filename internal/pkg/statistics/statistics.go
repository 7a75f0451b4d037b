package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/nikolamilosevic/TransferHub/app/models"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/cache"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/database"
)

const (
	CacheKeyPlayersTotal = "statistics:players:total"
	CacheKeyTeamsTotal   = "statistics:teams:total"
	CacheKeyUsersTotal   = "statistics:users:total"
	CacheExpiration      = 30 * time.Minute
)

// StatisticsData holds the marketplace totals shown on the landing page.
type StatisticsData struct {
	TotalPlayers int
	TotalTeams   int
	TotalUsers   int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached totals are stale.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached totals when they are stale.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next check to refresh the cache.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recounts the marketplace totals and stores them in Redis.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalPlayers int64
	if err := db.Model(&models.Player{}).Where("is_listed = ?", true).Count(&totalPlayers).Error; err != nil {
		log.Printf("Error counting listed players: %v", err)
		return err
	}

	var totalTeams int64
	if err := db.Model(&models.Team{}).Count(&totalTeams).Error; err != nil {
		log.Printf("Error counting teams: %v", err)
		return err
	}

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting users: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyPlayersTotal, strconv.FormatInt(totalPlayers, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyTeamsTotal, strconv.FormatInt(totalTeams, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyUsersTotal, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		return err
	}

	return nil
}

// GetStatistics returns the cached marketplace totals, refreshing on miss.
func GetStatistics() StatisticsData {
	return StatisticsData{
		TotalPlayers: getCachedCount(CacheKeyPlayersTotal),
		TotalTeams:   getCachedCount(CacheKeyTeamsTotal),
		TotalUsers:   getCachedCount(CacheKeyUsersTotal),
	}
}

func getCachedCount(key string) int {
	val, err := cache.GetInt(key)
	if err != nil {
		if err := UpdateStatisticsCache(); err != nil {
			return 0
		}
		val, err = cache.GetInt(key)
		if err != nil {
			return 0
		}
	}
	return val
}
