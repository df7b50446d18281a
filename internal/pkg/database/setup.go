package database

import (
	"fmt"
	"log"
	"time"

	"github.com/ManuelReschke/AdyenBridge/app/models"
	"github.com/ManuelReschke/AdyenBridge/internal/pkg/env"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

// DB is the shared connection opened by SetupDatabase.
var DB *gorm.DB

// GetDB returns the shared connection, nil before SetupDatabase ran.
func GetDB() *gorm.DB {
	return DB
}

// DSN builds the MySQL data source name from the environment.
func DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		env.GetEnv("DB_USER", ""),
		env.GetEnv("DB_PASSWORD", ""),
		env.GetEnv("DB_HOST", "127.0.0.1"),
		env.GetEnv("DB_PORT", "3306"),
		env.GetEnv("DB_NAME", ""),
	)
}

func SetupDatabase() {
	var err error
	dsn := DSN()

	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                       dsn,
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		}), &gorm.Config{})
		if err == nil {
			if merr := DB.AutoMigrate(
				&models.StateData{},
				&models.StoreConfig{},
				&models.BillingAgreement{},
				&models.NotificationEvent{},
			); merr != nil {
				log.Printf("AutoMigrate failed: %v", merr)
			}
			return
		}

		log.Printf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			log.Printf("Retrying in %v...", retryDelay)
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		panic(err)
	}
}
