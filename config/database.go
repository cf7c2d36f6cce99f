package config

import (
	"fmt"

	"github.com/StoreSphere/affiliate-discount/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	// The customer, discount, region and order tables belong to the host
	// platform. They are migrated here as well so the service runs against
	// an empty database in local and test setups.
	err = DB.AutoMigrate(
		&models.Admin{},
		&models.Customer{},
		&models.Region{},
		&models.Discount{},
		&models.Order{},
		&models.OrderItem{},
		&models.LineItemAdjustment{},
		&models.AffiliateDiscount{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}
