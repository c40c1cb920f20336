package repository

import (
	"errors"
	"fmt"

	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(order *model.Order) error
	Save(order *model.Order) error
	GetByID(id uint) (*model.Order, error)
	GetByIDForUpdate(id uint) (*model.Order, error)
	GetDetailsByID(id uint) (*model.Order, error)
	FindByMemberID(memberID uint, offset, limit int) ([]model.Order, int64, error)

	GetItemsByIDs(ids []uint) ([]model.OrderItem, error)
	SaveItem(item *model.OrderItem) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"member_id":    order.MemberID,
		"total_amount": order.TotalAmount,
		"item_count":   len(order.OrderItems),
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"member_id": order.MemberID,
		})
		return err
	}
	return nil
}

func (r *orderRepository) Save(order *model.Order) error {
	if err := r.db.Save(order).Error; err != nil {
		logger.Error("Failed to save order in database", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}
	return nil
}

func (r *orderRepository) getByID(id uint, lock bool) (*model.Order, error) {
	query := r.db.
		Preload("OrderItems").
		Preload("OrderItems.Product")
	// SQLite는 SELECT ... FOR UPDATE를 지원하지 않는다.
	if lock && r.db.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var order model.Order
	if err := query.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w, orderId: %d", ErrOrderNotFound, id)
		}
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByID(id uint) (*model.Order, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate는 취소/환불 경합을 막기 위해 주문 행을 잠그고 읽습니다.
// 트랜잭션 안에서만 호출해야 합니다.
func (r *orderRepository) GetByIDForUpdate(id uint) (*model.Order, error) {
	return r.getByID(id, true)
}

func (r *orderRepository) GetDetailsByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.
		Preload("OrderItems").
		Preload("OrderItems.Product").
		Preload("OrderItems.OrderOptionDetails").
		Preload("Payments").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w, orderId: %d", ErrOrderNotFound, id)
		}
		logger.Error("Failed to find order details by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByMemberID(memberID uint, offset, limit int) ([]model.Order, int64, error) {
	var total int64
	if err := r.db.Model(&model.Order{}).Where("member_id = ?", memberID).Count(&total).Error; err != nil {
		logger.Error("Failed to count orders by member ID in database", err, map[string]interface{}{
			"member_id": memberID,
		})
		return nil, 0, err
	}

	var orders []model.Order
	err := r.db.
		Preload("OrderItems").
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by member ID in database", err, map[string]interface{}{
			"member_id": memberID,
		})
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) GetItemsByIDs(ids []uint) ([]model.OrderItem, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyIDList
	}

	var items []model.OrderItem
	err := r.db.
		Preload("Product").
		Where("id IN ?", ids).
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find order items by IDs in database", err, map[string]interface{}{
			"order_item_ids": ids,
		})
		return nil, err
	}
	if len(items) != len(ids) {
		return nil, fmt.Errorf("%w, idList: %v", ErrOrderItemsNotFound, ids)
	}
	return items, nil
}

func (r *orderRepository) SaveItem(item *model.OrderItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to save order item in database", err, map[string]interface{}{
			"order_item_id": item.ID,
		})
		return err
	}
	return nil
}
