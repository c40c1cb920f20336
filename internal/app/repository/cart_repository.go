package repository

import (
	"errors"
	"fmt"

	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	GetByMemberEmail(email string) (*model.Cart, error)
	Create(cart *model.Cart) error
	Save(cart *model.Cart) error

	GetItemByID(id uint) (*model.CartItem, error)
	GetItemsByIDs(ids []uint) ([]model.CartItem, error)
	GetItemsWithDetailByIDs(ids []uint) ([]model.CartItem, error)
	CreateItem(item *model.CartItem) error
	SaveItem(item *model.CartItem) error

	GetOptionItemByID(id uint) (*model.OptionItem, error)
	CreateOptionItem(item *model.OptionItem) error
	SaveOptionItem(item *model.OptionItem) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// GetByMemberEmail은 장바구니가 없으면 (nil, nil)을 돌려줍니다.
// 장바구니는 첫 담기에서 지연 생성되므로 없음이 오류가 아닙니다.
func (r *cartRepository) GetByMemberEmail(email string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.
		Joins("JOIN members ON members.id = carts.member_id").
		Where("members.email = ?", email).
		Preload("Member").
		Preload("CartItems", "is_deleted = ?", false).
		Preload("CartItems.Product").
		Preload("CartItems.OptionItems", "is_deleted = ?", false).
		Preload("CartItems.OptionItems.CartOptionDetails").
		Preload("CartItems.OptionItems.CartOptionDetails.OptionDetail").
		Preload("CartItems.OptionItems.CartOptionDetails.OptionDetail.OptionGroup").
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error("Failed to find cart by member email in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) Create(cart *model.Cart) error {
	if err := r.db.Create(cart).Error; err != nil {
		logger.Error("Failed to create cart in database", err, map[string]interface{}{
			"member_id": cart.MemberID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Save(cart *model.Cart) error {
	if err := r.db.Save(cart).Error; err != nil {
		logger.Error("Failed to save cart in database", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		return err
	}
	return nil
}

// GetItemByID는 상품과 옵션 항목을 함께 로드하고, 상품이 판매 중인지 확인합니다.
func (r *cartRepository) GetItemByID(id uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.
		Preload("Product").
		Preload("OptionItems", "is_deleted = ?", false).
		Where("is_deleted = ?", false).
		First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w, id: %d", ErrCartItemNotFound, id)
		}
		logger.Error("Failed to find cart item by ID in database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return nil, err
	}
	if item.Product.SellingStatus != model.SellingStatusOpen {
		return nil, fmt.Errorf("%w, id: %d, status: %s", ErrProductNotSelling, item.ProductID, item.Product.SellingStatus)
	}
	return &item, nil
}

func (r *cartRepository) GetItemsByIDs(ids []uint) ([]model.CartItem, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyIDList
	}

	var items []model.CartItem
	err := r.db.
		Where("id IN ? AND is_deleted = ?", ids, false).
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items by IDs in database", err, map[string]interface{}{
			"cart_item_ids": ids,
		})
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w, idList: %v", ErrCartItemsNotFound, ids)
	}
	return items, nil
}

// GetItemsWithDetailByIDs는 주문 스냅샷 생성에 필요한 전체 관계를 로드합니다.
func (r *cartRepository) GetItemsWithDetailByIDs(ids []uint) ([]model.CartItem, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyIDList
	}

	var items []model.CartItem
	err := r.db.
		Preload("Product").
		Preload("OptionItems", "is_deleted = ?", false).
		Preload("OptionItems.CartOptionDetails").
		Preload("OptionItems.CartOptionDetails.OptionDetail").
		Preload("OptionItems.CartOptionDetails.OptionDetail.OptionGroup").
		Where("id IN ? AND is_deleted = ?", ids, false).
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items with detail by IDs in database", err, map[string]interface{}{
			"cart_item_ids": ids,
		})
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w, idList: %v", ErrCartItemsNotFound, ids)
	}
	return items, nil
}

func (r *cartRepository) CreateItem(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"cart_id":    item.CartID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"cart_id":    item.CartID,
			"product_id": item.ProductID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) SaveItem(item *model.CartItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to save cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) GetOptionItemByID(id uint) (*model.OptionItem, error) {
	var item model.OptionItem
	err := r.db.
		Preload("CartItem").
		Where("is_deleted = ?", false).
		First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w, id: %d", ErrOptionItemNotFound, id)
		}
		logger.Error("Failed to find option item by ID in database", err, map[string]interface{}{
			"option_item_id": id,
		})
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) CreateOptionItem(item *model.OptionItem) error {
	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create option item in database", err, map[string]interface{}{
			"cart_item_id": item.CartItemID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) SaveOptionItem(item *model.OptionItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to save option item in database", err, map[string]interface{}{
			"option_item_id": item.ID,
		})
		return err
	}
	return nil
}
