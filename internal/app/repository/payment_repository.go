package repository

import (
	"errors"
	"fmt"

	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/pkg/logger"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(payment *model.Payment) error
	GetByID(id uint) (*model.Payment, error)
	FindByOrderID(orderID uint, offset, limit int) ([]model.Payment, int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *model.Payment) error {
	logger.Debug("Creating payment record in database", map[string]interface{}{
		"order_id":       payment.OrderID,
		"payment_id":     payment.PaymentID,
		"payment_status": payment.PaymentStatus,
	})

	if err := r.db.Create(payment).Error; err != nil {
		logger.Error("Failed to create payment record in database", err, map[string]interface{}{
			"order_id":   payment.OrderID,
			"payment_id": payment.PaymentID,
		})
		return err
	}
	return nil
}

func (r *paymentRepository) GetByID(id uint) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Preload("Order").First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w, id: %d", ErrPaymentNotFound, id)
		}
		logger.Error("Failed to find payment by ID in database", err, map[string]interface{}{
			"payment_row_id": id,
		})
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByOrderID(orderID uint, offset, limit int) ([]model.Payment, int64, error) {
	var total int64
	if err := r.db.Model(&model.Payment{}).Where("order_id = ?", orderID).Count(&total).Error; err != nil {
		logger.Error("Failed to count payments by order ID in database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, 0, err
	}

	var payments []model.Payment
	err := r.db.
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&payments).Error
	if err != nil {
		logger.Error("Failed to find payments by order ID in database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, 0, err
	}
	return payments, total, nil
}
