package database

import (
	"fmt"
	"log"
	"time"

	"github.com/nikolamilosevic/TransferHub/app/models"
	"github.com/nikolamilosevic/TransferHub/internal/pkg/env"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

const maxRetries = 5
const retryDelay = 5 * time.Second

func SetupDatabase() {
	var err error
	// "user:pass@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local"
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		env.GetEnv("DB_USER", ""),
		env.GetEnv("DB_PASSWORD", ""),
		env.GetEnv("DB_HOST", "127.0.0.1"),
		env.GetEnv("DB_PORT", "3306"),
		env.GetEnv("DB_NAME", ""),
	)

	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                       dsn,   // data source name
			DefaultStringSize:         256,   // default size for string fields
			DisableDatetimePrecision:  true,  // disable datetime precision, which not supported before MySQL 5.6
			DontSupportRenameIndex:    true,  // drop & create when rename index, rename index not supported before MySQL 5.7, MariaDB
			DontSupportRenameColumn:   true,  // `change` when rename column, rename column not supported before MySQL 8, MariaDB
			SkipInitializeWithVersion: false, // auto configure based on currently MySQL version
		}), &gorm.Config{})
		if err == nil {
			DB.AutoMigrate(
				&models.User{},
				&models.UserSettings{},
				&models.Plan{},
				&models.Subscription{},
				&models.Player{},
				&models.Team{},
			)

			if err := SeedPlanCatalog(DB); err != nil {
				log.Printf("Failed to seed plan catalog: %v", err)
			}

			return
		}

		log.Printf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			log.Printf("Retry number %v...", retryDelay)
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		panic(err)
	}
}

func GetDB() *gorm.DB {
	return DB
}

// SeedPlanCatalog inserts the initial plan catalog on first boot. Existing
// kinds are left alone so administrative price or flag changes survive
// restarts; plans are only ever soft-deactivated afterwards.
func SeedPlanCatalog(db *gorm.DB) error {
	seed := []models.Plan{
		{
			Kind:               models.PlanKindFree,
			Name:               "Free",
			Description:        "Browse the marketplace and list a handful of players.",
			PriceMonthly:       0,
			PlayerListingLimit: 5,
			IsActive:           true,
		},
		{
			Kind:               models.PlanKindMonthly,
			Name:               "Monthly",
			Description:        "Serious scouting: detailed statistics and AI search.",
			PriceMonthly:       100,
			PlayerListingLimit: 50,
			DetailedStatistics: true,
			AISearch:           true,
			IsActive:           true,
		},
		{
			Kind:               models.PlanKindQuarterly,
			Name:               "Quarterly",
			Description:        "Unlimited listings plus API access and priority support.",
			PriceMonthly:       230,
			PlayerListingLimit: models.UnlimitedPlayerListings,
			DetailedStatistics: true,
			AISearch:           true,
			APIAccess:          true,
			PrioritySupport:    true,
			IsActive:           true,
		},
		{
			Kind:               models.PlanKindEnterprise,
			Name:               "Enterprise",
			Description:        "Everything in Quarterly for organizations at scale.",
			PriceMonthly:       499.90,
			PlayerListingLimit: models.UnlimitedPlayerListings,
			DetailedStatistics: true,
			AISearch:           true,
			APIAccess:          true,
			PrioritySupport:    true,
			IsActive:           true,
		},
	}

	for _, plan := range seed {
		var count int64
		if err := db.Model(&models.Plan{}).Where("kind = ?", plan.Kind).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&plan).Error; err != nil {
			return err
		}
	}
	return nil
}
