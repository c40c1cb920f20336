package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/internal/app/repository"
	"github.com/sjlee/order-api/pkg/catalog"
	"github.com/sjlee/order-api/pkg/logger"
	"gorm.io/gorm"
)

var (
	// ErrNotSellingProduct는 카탈로그 기준으로 판매 중이 아닌 상품 주문입니다.
	ErrNotSellingProduct = errors.New("Not Selling Product")

	// ErrShippingFeeMismatch는 선언된 배송비와 계산된 배송비가 다른 요청입니다.
	ErrShippingFeeMismatch = errors.New("shippingFee is not correct")

	// ErrOrderNotCompletedDelivery는 배송 완료 전 환불 신청입니다.
	ErrOrderNotCompletedDelivery = errors.New("OrderStatus is not COMPLETED_DELIVERY")

	// ErrOrderItemNotSuccess는 결제 완료 상태가 아닌 항목의 환불 신청입니다.
	ErrOrderItemNotSuccess = errors.New("OrderItemStatus is not SUCCESS")
)

type CartItemsOrderInput struct {
	ShippingFee int64  `json:"shipping_fee"`
	TotalAmount int64  `json:"total_amount" binding:"required"`
	ItemIDs     []uint `json:"item_ids" binding:"required"`
}

type ProductsOrderInput struct {
	TotalAmount      int64             `json:"total_amount" binding:"required"`
	ProductID        uint              `json:"product_id" binding:"required"`
	Quantity         int               `json:"quantity"`
	OptionItemInputs []OptionItemInput `json:"option_item_inputs"`
}

type RefundInput struct {
	OrderID               uint                        `json:"order_id" binding:"required"`
	OrderItemIDs          []uint                      `json:"order_item_ids"`
	ReversalType          model.ReversalType          `json:"reversal_type" binding:"required"`
	RefundShippingFeeType model.RefundShippingFeeType `json:"refund_shipping_fee_type" binding:"required"`
	ReasonForRefund       string                      `json:"reason_for_refund" binding:"required"`
}

type OrderService interface {
	OrderCartItems(ctx context.Context, email string, input CartItemsOrderInput) (*model.Order, error)
	OrderProducts(ctx context.Context, email string, input ProductsOrderInput) (*model.Order, error)
	ApplyRefund(email string, input RefundInput) (*model.Order, error)
	GetOrder(email string, orderID uint) (*model.Order, error)
	GetOrders(email string, page, limit int) ([]model.Order, int64, error)
}

type orderService struct {
	db            *gorm.DB
	catalogClient *catalog.Client
}

func NewOrderService(db *gorm.DB, catalogClient *catalog.Client) OrderService {
	return &orderService{db: db, catalogClient: catalogClient}
}

// refreshProduct는 카탈로그의 현재 상태를 미러 행에 덮어씁니다.
// ShippingFee는 이 서비스가 관리하는 컬럼이므로 보존됩니다.
func applyCatalogProduct(product *model.Product, remote *catalog.Product) {
	product.BrandName = remote.BrandName
	product.ProductName = remote.ProductName
	product.ProductCode = remote.ProductCode
	product.DiscountRate = remote.DiscountRate
	product.SellingStatus = model.SellingStatus(remote.SellingStatus)
	product.Price = remote.Price
	product.SalePrice = remote.SalePrice
}

// fetchSellingProduct는 카탈로그에서 상품을 조회하고 판매 중인지 확인합니다.
func (s *orderService) fetchSellingProduct(ctx context.Context, productID uint) (*catalog.Product, error) {
	remote, err := s.catalogClient.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if remote.SellingStatus != catalog.SellingStatusOpen {
		return nil, fmt.Errorf("%w, productId: %d", ErrNotSellingProduct, productID)
	}
	return remote, nil
}

// buildOrderItems는 장바구니 항목 하나를 주문 항목 스냅샷으로 펼칩니다.
// 옵션 묶음이 있으면 묶음마다 주문 항목 한 줄이 생깁니다.
func buildOrderItems(product *model.Product, cartItem *model.CartItem) []model.OrderItem {
	snapshot := func(totalOptionPrice int64, quantity int, optionDetails []model.OrderOptionDetail) model.OrderItem {
		return model.OrderItem{
			ProductID:          product.ID,
			BrandName:          product.BrandName,
			ProductName:        product.ProductName,
			ProductCode:        product.ProductCode,
			DiscountRate:       product.DiscountRate,
			Price:              (product.Price + totalOptionPrice) * int64(quantity),
			SalePrice:          (product.SalePrice + totalOptionPrice) * int64(quantity),
			Quantity:           quantity,
			OrderOptionDetails: optionDetails,
		}
	}

	if len(cartItem.OptionItems) == 0 {
		return []model.OrderItem{snapshot(0, cartItem.Quantity, nil)}
	}

	var items []model.OrderItem
	for _, optionItem := range cartItem.OptionItems {
		var totalOptionPrice int64
		var optionDetails []model.OrderOptionDetail
		for _, cod := range optionItem.CartOptionDetails {
			totalOptionPrice += cod.OptionDetail.OptionPrice
			optionDetails = append(optionDetails, model.OrderOptionDetail{
				OptionDetailID: cod.OptionDetail.ID,
				OptionName:     cod.OptionDetail.OptionGroup.OptionName,
				OptionValue:    cod.OptionDetail.OptionValue,
				OptionPrice:    cod.OptionDetail.OptionPrice,
				OptionType:     cod.OptionDetail.OptionGroup.OptionType,
			})
		}

		quantity := optionItem.OptionQuantity
		if quantity == 0 {
			quantity = cartItem.Quantity
		}
		items = append(items, snapshot(totalOptionPrice, quantity, optionDetails))
	}
	return items
}

// totalShippingFee는 선택된 항목들에서 브랜드당 배송비 하나씩만 더합니다.
func totalShippingFee(cartItems []model.CartItem) int64 {
	var total int64
	seen := make(map[string]bool)
	for _, item := range cartItems {
		if seen[item.Product.BrandName] {
			continue
		}
		seen[item.Product.BrandName] = true
		total += item.Product.ShippingFee
	}
	return total
}

func (s *orderService) OrderCartItems(ctx context.Context, email string, input CartItemsOrderInput) (*model.Order, error) {
	logger.Info("Ordering cart items", map[string]interface{}{
		"email":        email,
		"item_ids":     input.ItemIDs,
		"total_amount": input.TotalAmount,
	})

	memberRepo := repository.NewMemberRepository(s.db)
	member, err := memberRepo.Validate(email)
	if err != nil {
		return nil, err
	}

	cartItems, err := repository.NewCartRepository(s.db).GetItemsWithDetailByIDs(input.ItemIDs)
	if err != nil {
		return nil, err
	}

	if fee := totalShippingFee(cartItems); fee != input.ShippingFee {
		return nil, fmt.Errorf("%w. expectedShippingFee: %d, realShippingFee: %d", ErrShippingFeeMismatch, input.ShippingFee, fee)
	}

	// 카탈로그 조회는 트랜잭션 밖에서 끝낸다. 외부 호출이 DB 잠금을 쥐고
	// 있지 않게 하기 위함이다.
	remotes := make(map[uint]*catalog.Product)
	for _, item := range cartItems {
		if _, ok := remotes[item.ProductID]; ok {
			continue
		}
		remote, err := s.fetchSellingProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		remotes[item.ProductID] = remote
	}

	var order *model.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		productRepo := repository.NewProductRepository(tx)
		orderRepo := repository.NewOrderRepository(tx)

		row := model.Order{
			MemberID:    member.ID,
			TotalAmount: input.TotalAmount,
			ShippingFee: input.ShippingFee,
		}

		for i := range cartItems {
			item := &cartItems[i]
			applyCatalogProduct(&item.Product, remotes[item.ProductID])
			if err := productRepo.Save(&item.Product); err != nil {
				return err
			}
			row.OrderItems = append(row.OrderItems, buildOrderItems(&item.Product, item)...)
		}

		if err := orderRepo.Create(&row); err != nil {
			return err
		}
		order = &row
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order created from cart items", map[string]interface{}{
		"email":      email,
		"order_id":   order.ID,
		"item_count": len(order.OrderItems),
	})
	return order, nil
}

func (s *orderService) OrderProducts(ctx context.Context, email string, input ProductsOrderInput) (*model.Order, error) {
	memberRepo := repository.NewMemberRepository(s.db)
	member, err := memberRepo.Validate(email)
	if err != nil {
		return nil, err
	}

	if input.Quantity == 0 && len(input.OptionItemInputs) == 0 {
		return nil, ErrQuantityMissing
	}

	remote, err := s.fetchSellingProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	var order *model.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		productRepo := repository.NewProductRepository(tx)
		orderRepo := repository.NewOrderRepository(tx)

		product, err := productRepo.GetByID(input.ProductID)
		if err != nil {
			return err
		}
		applyCatalogProduct(product, remote)
		if err := productRepo.Save(product); err != nil {
			return err
		}

		// 요청의 옵션 선택을 장바구니 항목과 같은 모양으로 맞춰서
		// 동일한 스냅샷 빌더를 태운다.
		pseudo := model.CartItem{ProductID: product.ID, Quantity: input.Quantity}
		for _, optionInput := range input.OptionItemInputs {
			details, err := productRepo.GetOptionDetailsByIDs(optionInput.OptionDetailIDs)
			if err != nil {
				return err
			}
			optionItem := model.OptionItem{OptionQuantity: optionInput.OptionQuantity}
			for _, detail := range details {
				if detail.OptionGroup.ProductID != product.ID {
					return fmt.Errorf("%w, %d != %d", ErrOptionProductMismatch, detail.OptionGroup.ProductID, product.ID)
				}
				optionItem.CartOptionDetails = append(optionItem.CartOptionDetails, model.CartOptionDetail{
					OptionDetailID: detail.ID,
					OptionDetail:   detail,
				})
			}
			pseudo.OptionItems = append(pseudo.OptionItems, optionItem)
		}

		row := model.Order{
			MemberID:    member.ID,
			TotalAmount: input.TotalAmount,
			ShippingFee: product.ShippingFee,
			OrderItems:  buildOrderItems(product, &pseudo),
		}
		if err := orderRepo.Create(&row); err != nil {
			return err
		}
		order = &row
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order created from product", map[string]interface{}{
		"email":      email,
		"order_id":   order.ID,
		"product_id": input.ProductID,
	})
	return order, nil
}

func (s *orderService) ApplyRefund(email string, input RefundInput) (*model.Order, error) {
	var order *model.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repository.NewMemberRepository(tx)
		orderRepo := repository.NewOrderRepository(tx)

		if _, err := memberRepo.Validate(email); err != nil {
			return err
		}

		row, err := orderRepo.GetByIDForUpdate(input.OrderID)
		if err != nil {
			return err
		}

		if row.OrderStatus != model.OrderStatusCompletedDelivery {
			return fmt.Errorf("%w. status: %s", ErrOrderNotCompletedDelivery, row.OrderStatus)
		}

		items := row.OrderItems
		if input.ReversalType == model.ReversalTypeApplyPartialRefund {
			items, err = orderRepo.GetItemsByIDs(input.OrderItemIDs)
			if err != nil {
				return err
			}
		}

		for i := range items {
			if items[i].OrderItemStatus != model.OrderItemStatusSuccess {
				return fmt.Errorf("%w. status: %s", ErrOrderItemNotSuccess, items[i].OrderItemStatus)
			}
			items[i].OrderItemStatus = model.OrderItemStatusApplyRefund
			if err := orderRepo.SaveItem(&items[i]); err != nil {
				return err
			}
		}

		row.OrderStatus = model.OrderStatusInReturn
		row.ReversalType = input.ReversalType
		row.RefundShippingFeeType = input.RefundShippingFeeType
		row.ReasonForReversal = input.ReasonForRefund
		if err := orderRepo.Save(row); err != nil {
			return err
		}

		order = row
		return nil
	})
	if err != nil {
		logger.Warn("Apply refund failed", map[string]interface{}{
			"email":    email,
			"order_id": input.OrderID,
			"error":    err.Error(),
		})
		return nil, err
	}

	logger.Info("Refund applied", map[string]interface{}{
		"email":         email,
		"order_id":      order.ID,
		"reversal_type": order.ReversalType,
	})
	return order, nil
}

func (s *orderService) GetOrder(email string, orderID uint) (*model.Order, error) {
	memberRepo := repository.NewMemberRepository(s.db)
	orderRepo := repository.NewOrderRepository(s.db)

	if _, err := memberRepo.Validate(email); err != nil {
		return nil, err
	}
	return orderRepo.GetDetailsByID(orderID)
}

func (s *orderService) GetOrders(email string, page, limit int) ([]model.Order, int64, error) {
	memberRepo := repository.NewMemberRepository(s.db)
	orderRepo := repository.NewOrderRepository(s.db)

	member, err := memberRepo.Validate(email)
	if err != nil {
		return nil, 0, err
	}

	offset, limit := normalizePage(page, limit)
	return orderRepo.FindByMemberID(member.ID, offset, limit)
}
