package service

import (
	"context"

	"github.com/sjlee/order-api/internal/app/repository"
	"github.com/sjlee/order-api/pkg/catalog"
	"github.com/sjlee/order-api/pkg/logger"
	"gorm.io/gorm"
)

// CatalogService keeps the local product mirror aligned with the catalog.
type CatalogService interface {
	RefreshAll(ctx context.Context) error
}

type catalogService struct {
	db            *gorm.DB
	catalogClient *catalog.Client
}

func NewCatalogService(db *gorm.DB, catalogClient *catalog.Client) CatalogService {
	return &catalogService{db: db, catalogClient: catalogClient}
}

// RefreshAll은 미러된 모든 상품을 카탈로그 현재 상태로 덮어씁니다.
// 개별 상품 실패는 기록하고 건너뛰며, 전체 작업을 중단하지 않습니다.
func (s *catalogService) RefreshAll(ctx context.Context) error {
	productRepo := repository.NewProductRepository(s.db)

	products, err := productRepo.FindAll()
	if err != nil {
		return err
	}

	refreshed, failed := 0, 0
	for i := range products {
		remote, err := s.catalogClient.GetProduct(ctx, products[i].ID)
		if err != nil {
			failed++
			logger.Warn("Catalog refresh skipped product", map[string]interface{}{
				"product_id": products[i].ID,
				"error":      err.Error(),
			})
			continue
		}

		applyCatalogProduct(&products[i], remote)
		if err := productRepo.Save(&products[i]); err != nil {
			failed++
			continue
		}
		refreshed++
	}

	logger.Info("Catalog mirror refresh finished", map[string]interface{}{
		"refreshed": refreshed,
		"failed":    failed,
		"total":     len(products),
	})
	return nil
}
