package db

import (
	"fmt"
	"log"

	"github.com/sjlee/order-api/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&model.Member{},
		&model.Product{},
		&model.OptionGroup{},
		&model.OptionDetail{},
		&model.Cart{},
		&model.CartItem{},
		&model.OptionItem{},
		&model.CartOptionDetail{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderOptionDetail{},
		&model.Payment{},
		&model.Delivery{},
		&model.DeliveryMemo{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return db, nil
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get DB instance: %v", err)
		return
	}
	sqlDB.Close()
}

// TruncateAllTables removes all data from tables
func TruncateAllTables(db *gorm.DB) error {
	tables := []string{
		"payments",
		"order_option_details",
		"order_items",
		"orders",
		"cart_option_details",
		"option_items",
		"cart_items",
		"carts",
		"option_details",
		"option_groups",
		"products",
		"delivery_memos",
		"deliveries",
		"members",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return err
		}
	}
	return nil
}
