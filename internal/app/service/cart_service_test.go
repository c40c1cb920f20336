package service

import (
	"testing"

	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCart(t *testing.T) {
	gdb := setupDB(t)
	svc := NewCartService(gdb)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)

	item, err := svc.AddToCart(member.Email, product.ID, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, 2, item.Quantity)

	// 첫 담기에서 장바구니가 지연 생성된다.
	var cart model.Cart
	require.NoError(t, gdb.Where("member_id = ?", member.ID).First(&cart).Error)
	assert.Equal(t, cart.ID, item.CartID)

	// 두 번째 담기는 같은 장바구니를 쓴다.
	second, err := svc.AddToCart(member.Email, product.ID, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, second.CartID)
}

func TestAddToCart_WithOptions(t *testing.T) {
	gdb := setupDB(t)
	svc := NewCartService(gdb)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	detail := seedOptionDetail(t, gdb, product.ID, "색상", "블랙", 500)

	item, err := svc.AddToCart(member.Email, product.ID, 0, []OptionItemInput{
		{OptionQuantity: 3, OptionDetailIDs: []uint{detail.ID}},
	})
	require.NoError(t, err)
	require.Len(t, item.OptionItems, 1)
	assert.Equal(t, 3, item.OptionItems[0].OptionQuantity)
	require.Len(t, item.OptionItems[0].CartOptionDetails, 1)
	assert.Equal(t, detail.ID, item.OptionItems[0].CartOptionDetails[0].OptionDetailID)
}

func TestAddToCart_QuantityMissing(t *testing.T) {
	gdb := setupDB(t)
	svc := NewCartService(gdb)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)

	_, err := svc.AddToCart(member.Email, product.ID, 0, nil)
	assert.ErrorIs(t, err, ErrQuantityMissing)
}

func TestAddToCart_OptionProductMismatch(t *testing.T) {
	gdb := setupDB(t)
	svc := NewCartService(gdb)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	other := seedProduct(t, gdb, "브랜드B", "텀블러", 20000, 18000, 3000)
	otherDetail := seedOptionDetail(t, gdb, other.ID, "색상", "화이트", 0)

	_, err := svc.AddToCart(member.Email, product.ID, 0, []OptionItemInput{
		{OptionQuantity: 1, OptionDetailIDs: []uint{otherDetail.ID}},
	})
	assert.ErrorIs(t, err, ErrOptionProductMismatch)
}

func TestAddToCart_MemberNotVerified(t *testing.T) {
	gdb := setupDB(t)
	svc := NewCartService(gdb)

	member := seedMember(t, gdb, "unverified@example.com", false)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)

	_, err := svc.AddToCart(member.Email, product.ID, 1, nil)
	assert.ErrorIs(t, err, repository.ErrMemberNotVerified)
}

func TestAddToCart_ProductNotSelling(t *testing.T) {
	gdb := setupDB(t)
	svc := NewCartService(gdb)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	require.NoError(t, gdb.Model(product).Update("selling_status", model.SellingStatusStop).Error)

	_, err := svc.AddToCart(member.Email, product.ID, 1, nil)
	assert.ErrorIs(t, err, repository.ErrProductNotSelling)
}

func TestModifyCartItem(t *testing.T) {
	gdb := setupDB(t)
	svc := NewCartService(gdb)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	cart := seedCart(t, gdb, member.ID)
	item := seedCartItem(t, gdb, cart.ID, product.ID, 1)

	t.Run("change quantity", func(t *testing.T) {
		modified, err := svc.ModifyCartItem(member.Email, ModifyCartItemInput{
			CartItemID: item.ID,
			Quantity:   5,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, modified.Quantity)
	})

	t.Run("change option quantity", func(t *testing.T) {
		option := model.OptionItem{CartItemID: item.ID, OptionQuantity: 1}
		require.NoError(t, gdb.Create(&option).Error)

		modified, err := svc.ModifyCartItem(member.Email, ModifyCartItemInput{
			CartItemID:     item.ID,
			OptionItemID:   option.ID,
			OptionQuantity: 4,
		})
		require.NoError(t, err)

		var found bool
		for _, oi := range modified.OptionItems {
			if oi.ID == option.ID {
				found = true
				assert.Equal(t, 4, oi.OptionQuantity)
			}
		}
		assert.True(t, found)
	})

	t.Run("add option items", func(t *testing.T) {
		detail := seedOptionDetail(t, gdb, product.ID, "사이즈", "L", 1000)

		modified, err := svc.ModifyCartItem(member.Email, ModifyCartItemInput{
			CartItemID: item.ID,
			OptionItemInputs: []OptionItemInput{
				{OptionQuantity: 2, OptionDetailIDs: []uint{detail.ID}},
			},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, modified.OptionItems)
	})

	t.Run("option item of another cart item", func(t *testing.T) {
		_, err := svc.ModifyCartItem(member.Email, ModifyCartItemInput{
			CartItemID:     item.ID,
			OptionItemID:   9999,
			OptionQuantity: 2,
		})
		assert.ErrorIs(t, err, repository.ErrOptionItemNotFound)
	})

	t.Run("cart item not found", func(t *testing.T) {
		_, err := svc.ModifyCartItem(member.Email, ModifyCartItemInput{
			CartItemID: 9999,
			Quantity:   1,
		})
		assert.ErrorIs(t, err, repository.ErrCartItemNotFound)
	})
}

func TestDeleteCartItems(t *testing.T) {
	gdb := setupDB(t)
	svc := NewCartService(gdb)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	cart := seedCart(t, gdb, member.ID)
	first := seedCartItem(t, gdb, cart.ID, product.ID, 1)
	second := seedCartItem(t, gdb, cart.ID, product.ID, 2)

	require.NoError(t, svc.DeleteCartItems(member.Email, []uint{first.ID, second.ID}))

	// 소프트 삭제라 행은 남아 있지만 조회에서는 빠진다.
	var count int64
	require.NoError(t, gdb.Model(&model.CartItem{}).Where("is_deleted = ?", true).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	_, err := svc.ModifyCartItem(member.Email, ModifyCartItemInput{CartItemID: first.ID, Quantity: 1})
	assert.ErrorIs(t, err, repository.ErrCartItemNotFound)
}

func TestDeleteCartItems_EmptyIDList(t *testing.T) {
	gdb := setupDB(t)
	svc := NewCartService(gdb)

	member := seedMember(t, gdb, "buyer@example.com", true)

	err := svc.DeleteCartItems(member.Email, nil)
	assert.ErrorIs(t, err, repository.ErrEmptyIDList)
}

func TestGetCartItems(t *testing.T) {
	gdb := setupDB(t)
	svc := NewCartService(gdb)

	member := seedMember(t, gdb, "buyer@example.com", true)
	product := seedProduct(t, gdb, "브랜드A", "머그컵", 12000, 10800, 3000)
	cart := seedCart(t, gdb, member.ID)
	for i := 0; i < 3; i++ {
		seedCartItem(t, gdb, cart.ID, product.ID, i+1)
	}

	items, total, err := svc.GetCartItems(member.Email, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 2)

	items, total, err = svc.GetCartItems(member.Email, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 1)

	// 범위를 벗어난 페이지는 빈 결과
	items, total, err = svc.GetCartItems(member.Email, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, items)
}

func TestGetCartItems_CartNotFound(t *testing.T) {
	gdb := setupDB(t)
	svc := NewCartService(gdb)

	member := seedMember(t, gdb, "buyer@example.com", true)

	_, _, err := svc.GetCartItems(member.Email, 1, 10)
	assert.ErrorIs(t, err, ErrCartNotFound)
}
