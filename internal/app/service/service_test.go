package service

import (
	"testing"

	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(gdb) })
	return gdb
}

func seedMember(t *testing.T, gdb *gorm.DB, email string, verified bool) *model.Member {
	t.Helper()
	member := model.Member{Email: email, IsVerified: verified}
	require.NoError(t, gdb.Create(&member).Error)
	return &member
}

func seedProduct(t *testing.T, gdb *gorm.DB, brand, name string, price, salePrice, shippingFee int64) *model.Product {
	t.Helper()
	product := model.Product{
		BrandName:     brand,
		ProductName:   name,
		ProductCode:   name + "-CODE",
		SellingStatus: model.SellingStatusOpen,
		Price:         price,
		SalePrice:     salePrice,
		ShippingFee:   shippingFee,
	}
	require.NoError(t, gdb.Create(&product).Error)
	return &product
}

// seedOptionDetail은 상품에 옵션 그룹 하나와 상세 하나를 붙입니다.
func seedOptionDetail(t *testing.T, gdb *gorm.DB, productID uint, groupName, value string, optionPrice int64) *model.OptionDetail {
	t.Helper()
	group := model.OptionGroup{
		ProductID:  productID,
		OptionName: groupName,
		OptionType: model.OptionTypeSelect,
	}
	require.NoError(t, gdb.Create(&group).Error)

	detail := model.OptionDetail{
		OptionGroupID: group.ID,
		OptionValue:   value,
		OptionPrice:   optionPrice,
	}
	require.NoError(t, gdb.Create(&detail).Error)
	return &detail
}

func seedCart(t *testing.T, gdb *gorm.DB, memberID uint) *model.Cart {
	t.Helper()
	cart := model.Cart{MemberID: memberID}
	require.NoError(t, gdb.Create(&cart).Error)
	return &cart
}

func seedCartItem(t *testing.T, gdb *gorm.DB, cartID, productID uint, quantity int) *model.CartItem {
	t.Helper()
	item := model.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	require.NoError(t, gdb.Create(&item).Error)
	return &item
}

func seedDelivery(t *testing.T, gdb *gorm.DB, memberID uint, isDefault bool) *model.Delivery {
	t.Helper()
	delivery := model.Delivery{
		MemberID:     memberID,
		CustomerName: "홍길동",
		PhoneNumber:  "010-1234-5678",
		Address:      "서울시 강남구 테헤란로 1",
		IsDefault:    isDefault,
	}
	require.NoError(t, gdb.Create(&delivery).Error)
	return &delivery
}

func seedOrder(t *testing.T, gdb *gorm.DB, memberID uint, status model.OrderStatus, totalAmount, shippingFee int64) *model.Order {
	t.Helper()
	order := model.Order{
		MemberID:    memberID,
		TotalAmount: totalAmount,
		ShippingFee: shippingFee,
		OrderStatus: status,
	}
	require.NoError(t, gdb.Create(&order).Error)
	return &order
}

func seedOrderItem(t *testing.T, gdb *gorm.DB, orderID, productID uint, status model.OrderItemStatus, price int64, quantity int) *model.OrderItem {
	t.Helper()
	item := model.OrderItem{
		OrderID:         orderID,
		ProductID:       productID,
		BrandName:       "브랜드A",
		ProductName:     "상품",
		Price:           price,
		SalePrice:       price,
		Quantity:        quantity,
		OrderItemStatus: status,
	}
	require.NoError(t, gdb.Create(&item).Error)
	return &item
}
