package service

import (
	"context"
	"testing"

	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshAll(t *testing.T) {
	gdb := setupDB(t)

	first := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	second := seedProduct(t, gdb, "브랜드B", "텀블러", 20000, 18000, 2500)

	// 첫 상품만 카탈로그가 알고 있고, 가격이 바뀌었고 품절됐다.
	remote := catalogView(first)
	remote.Price = 15000
	remote.SalePrice = 13500
	remote.SellingStatus = catalog.SellingStatusSoldout
	client := newCatalogClient(t, map[uint]catalog.Product{first.ID: remote})

	svc := NewCatalogService(gdb, client)
	require.NoError(t, svc.RefreshAll(context.Background()))

	var refreshed model.Product
	require.NoError(t, gdb.First(&refreshed, first.ID).Error)
	assert.Equal(t, int64(15000), refreshed.Price)
	assert.Equal(t, int64(13500), refreshed.SalePrice)
	assert.Equal(t, model.SellingStatusSoldout, refreshed.SellingStatus)

	// 배송비는 로컬에서 관리하므로 갱신 대상이 아니다.
	assert.Equal(t, int64(3000), refreshed.ShippingFee)

	// 카탈로그에 없는 상품은 건너뛰고 그대로 둔다.
	var untouched model.Product
	require.NoError(t, gdb.First(&untouched, second.ID).Error)
	assert.Equal(t, int64(20000), untouched.Price)
	assert.Equal(t, model.SellingStatusOpen, untouched.SellingStatus)
}
