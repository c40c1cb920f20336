package repository

import (
	"errors"
	"fmt"

	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/pkg/logger"
	"gorm.io/gorm"
)

type DeliveryRepository interface {
	Create(delivery *model.Delivery) error
	Save(delivery *model.Delivery) error
	GetByID(id uint) (*model.Delivery, error)
	GetDefaultByMemberID(memberID uint) (*model.Delivery, error)
	ClearDefault(memberID uint) error
	Delete(id, memberID uint) error
	FindByMemberID(memberID uint, offset, limit int) ([]model.Delivery, int64, error)

	CreateMemo(memo *model.DeliveryMemo) error
	SaveMemo(memo *model.DeliveryMemo) error
	GetMemoByID(id uint) (*model.DeliveryMemo, error)
	GetRecentMemoByMemberID(memberID uint) (*model.DeliveryMemo, error)
	DeleteMemo(id, memberID uint) error
	FindMemosByMemberID(memberID uint, offset, limit int) ([]model.DeliveryMemo, int64, error)
}

type deliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(delivery *model.Delivery) error {
	if err := r.db.Create(delivery).Error; err != nil {
		logger.Error("Failed to create delivery in database", err, map[string]interface{}{
			"member_id": delivery.MemberID,
		})
		return err
	}
	return nil
}

func (r *deliveryRepository) Save(delivery *model.Delivery) error {
	if err := r.db.Save(delivery).Error; err != nil {
		logger.Error("Failed to save delivery in database", err, map[string]interface{}{
			"delivery_id": delivery.ID,
		})
		return err
	}
	return nil
}

func (r *deliveryRepository) GetByID(id uint) (*model.Delivery, error) {
	var delivery model.Delivery
	if err := r.db.First(&delivery, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w, id: %d", ErrDeliveryNotFound, id)
		}
		logger.Error("Failed to find delivery by ID in database", err, map[string]interface{}{
			"delivery_id": id,
		})
		return nil, err
	}
	return &delivery, nil
}

func (r *deliveryRepository) GetDefaultByMemberID(memberID uint) (*model.Delivery, error) {
	var delivery model.Delivery
	err := r.db.Where("member_id = ? AND is_default = ?", memberID, true).First(&delivery).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w, memberId: %d", ErrDefaultDeliveryNotFound, memberID)
		}
		logger.Error("Failed to find default delivery in database", err, map[string]interface{}{
			"member_id": memberID,
		})
		return nil, err
	}
	return &delivery, nil
}

// ClearDefault는 기본 배송지 단일 유지 규칙을 위해 기존 기본 배송지를 해제합니다.
func (r *deliveryRepository) ClearDefault(memberID uint) error {
	err := r.db.Model(&model.Delivery{}).
		Where("member_id = ? AND is_default = ?", memberID, true).
		Update("is_default", false).Error
	if err != nil {
		logger.Error("Failed to clear default delivery in database", err, map[string]interface{}{
			"member_id": memberID,
		})
		return err
	}
	return nil
}

func (r *deliveryRepository) Delete(id, memberID uint) error {
	result := r.db.Where("id = ? AND member_id = ?", id, memberID).Delete(&model.Delivery{})
	if result.Error != nil {
		logger.Error("Failed to delete delivery in database", result.Error, map[string]interface{}{
			"delivery_id": id,
			"member_id":   memberID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w, memberId: %d", ErrNotOwnDelivery, memberID)
	}
	return nil
}

func (r *deliveryRepository) FindByMemberID(memberID uint, offset, limit int) ([]model.Delivery, int64, error) {
	var total int64
	if err := r.db.Model(&model.Delivery{}).Where("member_id = ?", memberID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var deliveries []model.Delivery
	err := r.db.
		Where("member_id = ?", memberID).
		Order("is_default DESC, updated_at DESC").
		Offset(offset).Limit(limit).
		Find(&deliveries).Error
	if err != nil {
		logger.Error("Failed to find deliveries by member ID in database", err, map[string]interface{}{
			"member_id": memberID,
		})
		return nil, 0, err
	}
	return deliveries, total, nil
}

func (r *deliveryRepository) CreateMemo(memo *model.DeliveryMemo) error {
	if err := r.db.Create(memo).Error; err != nil {
		logger.Error("Failed to create delivery memo in database", err, map[string]interface{}{
			"member_id": memo.MemberID,
		})
		return err
	}
	return nil
}

func (r *deliveryRepository) SaveMemo(memo *model.DeliveryMemo) error {
	if err := r.db.Save(memo).Error; err != nil {
		logger.Error("Failed to save delivery memo in database", err, map[string]interface{}{
			"memo_id": memo.ID,
		})
		return err
	}
	return nil
}

func (r *deliveryRepository) GetMemoByID(id uint) (*model.DeliveryMemo, error) {
	var memo model.DeliveryMemo
	if err := r.db.First(&memo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w, id: %d", ErrDeliveryMemoNotFound, id)
		}
		logger.Error("Failed to find delivery memo by ID in database", err, map[string]interface{}{
			"memo_id": id,
		})
		return nil, err
	}
	return &memo, nil
}

func (r *deliveryRepository) GetRecentMemoByMemberID(memberID uint) (*model.DeliveryMemo, error) {
	var memo model.DeliveryMemo
	err := r.db.
		Where("member_id = ?", memberID).
		Order("updated_at DESC").
		First(&memo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w, memberId: %d", ErrRecentMemoNotFound, memberID)
		}
		logger.Error("Failed to find recent delivery memo in database", err, map[string]interface{}{
			"member_id": memberID,
		})
		return nil, err
	}
	return &memo, nil
}

func (r *deliveryRepository) DeleteMemo(id, memberID uint) error {
	result := r.db.Where("id = ? AND member_id = ?", id, memberID).Delete(&model.DeliveryMemo{})
	if result.Error != nil {
		logger.Error("Failed to delete delivery memo in database", result.Error, map[string]interface{}{
			"memo_id":   id,
			"member_id": memberID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w, memberId: %d", ErrNotOwnDeliveryMemo, memberID)
	}
	return nil
}

func (r *deliveryRepository) FindMemosByMemberID(memberID uint, offset, limit int) ([]model.DeliveryMemo, int64, error) {
	var total int64
	if err := r.db.Model(&model.DeliveryMemo{}).Where("member_id = ?", memberID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var memos []model.DeliveryMemo
	err := r.db.
		Where("member_id = ?", memberID).
		Order("updated_at DESC").
		Offset(offset).Limit(limit).
		Find(&memos).Error
	if err != nil {
		logger.Error("Failed to find delivery memos by member ID in database", err, map[string]interface{}{
			"member_id": memberID,
		})
		return nil, 0, err
	}
	return memos, total, nil
}
