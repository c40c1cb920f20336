package repository

import (
	"errors"
	"fmt"

	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	GetByID(id uint) (*model.Product, error)
	GetSellingByID(id uint) (*model.Product, error)
	FindAll() ([]model.Product, error)
	Save(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	GetOptionDetailsByIDs(ids []uint) ([]model.OptionDetail, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("OptionGroups.OptionDetails").First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w, id: %d", ErrProductNotFound, id)
		}
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

// GetSellingByID는 상품 조회에 더해 판매 중 상태까지 확인합니다.
func (r *productRepository) GetSellingByID(id uint) (*model.Product, error) {
	product, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product.SellingStatus != model.SellingStatusOpen {
		return nil, fmt.Errorf("%w, id: %d, status: %s", ErrProductNotSelling, id, product.SellingStatus)
	}
	return product, nil
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	var products []model.Product
	if err := r.db.Find(&products).Error; err != nil {
		logger.Error("Failed to list products in database", err, nil)
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Save(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to save product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	logger.Debug("Bulk creating products in database", map[string]interface{}{
		"count":      len(products),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products in database", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}
	return nil
}

// GetOptionDetailsByIDs는 옵션 상세를 소속 그룹과 그룹의 상품까지 함께 로드합니다.
// 요청한 id가 하나라도 빠지면 실패합니다.
func (r *productRepository) GetOptionDetailsByIDs(ids []uint) ([]model.OptionDetail, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyIDList
	}

	var details []model.OptionDetail
	err := r.db.Preload("OptionGroup").Preload("OptionGroup.Product").
		Where("id IN ?", ids).
		Find(&details).Error
	if err != nil {
		logger.Error("Failed to find option details by IDs in database", err, map[string]interface{}{
			"option_detail_ids": ids,
		})
		return nil, err
	}
	if len(details) != len(ids) {
		return nil, fmt.Errorf("%w, idList: %v", ErrOptionDetailsNotFound, ids)
	}
	return details, nil
}
