package db

import (
	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
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
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
