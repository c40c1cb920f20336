package service

import (
	"errors"
	"fmt"

	"github.com/sjlee/order-api/internal/app/model"
	"github.com/sjlee/order-api/internal/app/repository"
	"github.com/sjlee/order-api/pkg/logger"
	"gorm.io/gorm"
)

var (
	// ErrQuantityMissing은 수량도 옵션 선택도 없는 담기/주문 요청입니다.
	ErrQuantityMissing = errors.New("quantity is missing.")

	// ErrOptionProductMismatch는 다른 상품의 옵션을 선택한 요청입니다.
	ErrOptionProductMismatch = errors.New("Not same product")

	// ErrCartNotFound는 장바구니가 아직 생성되지 않은 회원의 조회입니다.
	ErrCartNotFound = errors.New("Not found cart")
)

// OptionItemInput은 옵션 묶음 하나의 선택 내용입니다.
type OptionItemInput struct {
	OptionQuantity  int    `json:"option_quantity"`
	OptionDetailIDs []uint `json:"option_detail_ids"`
}

type ModifyCartItemInput struct {
	CartItemID       uint              `json:"cart_item_id" binding:"required"`
	Quantity         int               `json:"quantity"`
	OptionItemID     uint              `json:"option_item_id"`
	OptionQuantity   int               `json:"option_quantity"`
	OptionItemInputs []OptionItemInput `json:"option_item_inputs"`
}

type CartService interface {
	AddToCart(email string, productID uint, quantity int, options []OptionItemInput) (*model.CartItem, error)
	ModifyCartItem(email string, input ModifyCartItemInput) (*model.CartItem, error)
	DeleteCartItems(email string, itemIDs []uint) error
	GetCartItems(email string, page, limit int) ([]model.CartItem, int64, error)
}

type cartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) CartService {
	return &cartService{db: db}
}

// buildOptionItems는 옵션 선택을 검증하고 장바구니 옵션 행으로 변환합니다.
// 선택된 모든 옵션 상세는 대상 상품의 옵션 그룹에 속해야 합니다.
func buildOptionItems(productRepo repository.ProductRepository, productID uint, inputs []OptionItemInput) ([]model.OptionItem, error) {
	var optionItems []model.OptionItem
	for _, input := range inputs {
		details, err := productRepo.GetOptionDetailsByIDs(input.OptionDetailIDs)
		if err != nil {
			return nil, err
		}

		item := model.OptionItem{OptionQuantity: input.OptionQuantity}
		for _, detail := range details {
			if detail.OptionGroup.ProductID != productID {
				return nil, fmt.Errorf("%w, %d != %d", ErrOptionProductMismatch, detail.OptionGroup.ProductID, productID)
			}
			item.CartOptionDetails = append(item.CartOptionDetails, model.CartOptionDetail{
				OptionDetailID: detail.ID,
			})
		}
		optionItems = append(optionItems, item)
	}
	return optionItems, nil
}

func (s *cartService) AddToCart(email string, productID uint, quantity int, options []OptionItemInput) (*model.CartItem, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"email":      email,
		"product_id": productID,
		"quantity":   quantity,
	})

	var created *model.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repository.NewMemberRepository(tx)
		productRepo := repository.NewProductRepository(tx)
		cartRepo := repository.NewCartRepository(tx)

		member, err := memberRepo.Validate(email)
		if err != nil {
			logger.Warn("Add to cart failed: member validation", map[string]interface{}{
				"email": email,
				"error": err.Error(),
			})
			return err
		}

		product, err := productRepo.GetSellingByID(productID)
		if err != nil {
			return err
		}

		if quantity == 0 && len(options) == 0 {
			return ErrQuantityMissing
		}

		optionItems, err := buildOptionItems(productRepo, product.ID, options)
		if err != nil {
			return err
		}

		cart, err := cartRepo.GetByMemberEmail(email)
		if err != nil {
			return err
		}
		if cart == nil {
			cart = &model.Cart{MemberID: member.ID}
			if err := cartRepo.Create(cart); err != nil {
				return err
			}
		}

		item := model.CartItem{
			CartID:      cart.ID,
			ProductID:   product.ID,
			Quantity:    quantity,
			OptionItems: optionItems,
		}
		if err := cartRepo.CreateItem(&item); err != nil {
			return err
		}

		created = &item
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Item added to cart", map[string]interface{}{
		"email":        email,
		"cart_item_id": created.ID,
	})
	return created, nil
}

func (s *cartService) ModifyCartItem(email string, input ModifyCartItemInput) (*model.CartItem, error) {
	var modified *model.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repository.NewMemberRepository(tx)
		productRepo := repository.NewProductRepository(tx)
		cartRepo := repository.NewCartRepository(tx)

		if _, err := memberRepo.Validate(email); err != nil {
			return err
		}

		item, err := cartRepo.GetItemByID(input.CartItemID)
		if err != nil {
			return err
		}

		// 기존 옵션 항목의 수량 변경: 대상 옵션이 이 장바구니 항목에 속해야 한다.
		if input.OptionItemID != 0 {
			var target *model.OptionItem
			for i := range item.OptionItems {
				if item.OptionItems[i].ID == input.OptionItemID {
					target = &item.OptionItems[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("%w, id: %d", repository.ErrOptionItemNotFound, input.OptionItemID)
			}
			target.OptionQuantity = input.OptionQuantity
			if err := cartRepo.SaveOptionItem(target); err != nil {
				return err
			}
		}

		if input.Quantity != 0 {
			item.Quantity = input.Quantity
			if err := cartRepo.SaveItem(item); err != nil {
				return err
			}
		}

		// 새 옵션 항목 추가
		if len(input.OptionItemInputs) > 0 {
			optionItems, err := buildOptionItems(productRepo, item.ProductID, input.OptionItemInputs)
			if err != nil {
				return err
			}
			for i := range optionItems {
				optionItems[i].CartItemID = item.ID
				if err := cartRepo.CreateOptionItem(&optionItems[i]); err != nil {
					return err
				}
			}
		}

		refreshed, err := cartRepo.GetItemByID(item.ID)
		if err != nil {
			return err
		}
		modified = refreshed
		return nil
	})
	if err != nil {
		logger.Warn("Modify cart item failed", map[string]interface{}{
			"email":        email,
			"cart_item_id": input.CartItemID,
			"error":        err.Error(),
		})
		return nil, err
	}
	return modified, nil
}

func (s *cartService) DeleteCartItems(email string, itemIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		memberRepo := repository.NewMemberRepository(tx)
		cartRepo := repository.NewCartRepository(tx)

		if _, err := memberRepo.Validate(email); err != nil {
			return err
		}

		items, err := cartRepo.GetItemsByIDs(itemIDs)
		if err != nil {
			return err
		}

		for i := range items {
			items[i].IsDeleted = true
			if err := cartRepo.SaveItem(&items[i]); err != nil {
				return err
			}
		}

		logger.Info("Cart items soft deleted", map[string]interface{}{
			"email": email,
			"count": len(items),
		})
		return nil
	})
}

func (s *cartService) GetCartItems(email string, page, limit int) ([]model.CartItem, int64, error) {
	memberRepo := repository.NewMemberRepository(s.db)
	cartRepo := repository.NewCartRepository(s.db)

	if _, err := memberRepo.Validate(email); err != nil {
		return nil, 0, err
	}

	cart, err := cartRepo.GetByMemberEmail(email)
	if err != nil {
		return nil, 0, err
	}
	if cart == nil {
		return nil, 0, fmt.Errorf("%w, email: %s", ErrCartNotFound, email)
	}

	total := int64(len(cart.CartItems))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(cart.CartItems) {
		return []model.CartItem{}, total, nil
	}
	end := start + limit
	if end > len(cart.CartItems) {
		end = len(cart.CartItems)
	}
	return cart.CartItems[start:end], total, nil
}
