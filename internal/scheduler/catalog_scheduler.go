package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sjlee/order-api/internal/app/service"
	"github.com/sjlee/order-api/pkg/logger"
)

// CatalogScheduler 카탈로그 미러 야간 갱신 스케줄러
type CatalogScheduler struct {
	cron           *cron.Cron
	catalogService service.CatalogService
	schedule       string
}

// NewCatalogScheduler 카탈로그 갱신 스케줄러 생성
func NewCatalogScheduler(catalogService service.CatalogService, schedule string) *CatalogScheduler {
	return &CatalogScheduler{
		cron:           cron.New(),
		catalogService: catalogService,
		schedule:       schedule,
	}
}

// Start 스케줄러 시작
func (s *CatalogScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		logger.Info("Starting scheduled catalog mirror refresh", nil)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := s.catalogService.RefreshAll(ctx); err != nil {
			logger.Error("Failed to refresh catalog mirror from scheduler", err)
			return
		}

		logger.Info("Successfully refreshed catalog mirror from scheduler", nil)
	})

	if err != nil {
		logger.Error("Failed to add cron job for catalog refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Catalog scheduler started successfully", map[string]interface{}{
		"schedule": s.schedule,
	})

	return nil
}

// Stop 스케줄러 중지
func (s *CatalogScheduler) Stop() {
	logger.Info("Stopping catalog scheduler...", nil)
	s.cron.Stop()
	logger.Info("Catalog scheduler stopped", nil)
}
