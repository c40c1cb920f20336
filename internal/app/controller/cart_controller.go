package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjlee/order-api/internal/app/service"
	"github.com/sjlee/order-api/internal/errors"
	"github.com/sjlee/order-api/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type addToCartRequest struct {
	ProductID        uint                      `json:"product_id" binding:"required"`
	Quantity         int                       `json:"quantity"`
	OptionItemInputs []service.OptionItemInput `json:"option_item_inputs"`
}

// AddToCart POST /api/v1/carts/items
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "요청 형식이 올바르지 않습니다")
		return
	}

	item, err := ctrl.cartService.AddToCart(email, req.ProductID, req.Quantity, req.OptionItemInputs)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cart_item": item})
}

// ModifyCartItem PUT /api/v1/carts/items
func (ctrl *CartController) ModifyCartItem(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var input service.ModifyCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "요청 형식이 올바르지 않습니다")
		return
	}

	item, err := ctrl.cartService.ModifyCartItem(email, input)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart_item": item})
}

type deleteCartItemsRequest struct {
	ItemIDs []uint `json:"item_ids" binding:"required"`
}

// DeleteCartItems DELETE /api/v1/carts/items
func (ctrl *CartController) DeleteCartItems(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var req deleteCartItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "요청 형식이 올바르지 않습니다")
		return
	}

	if err := ctrl.cartService.DeleteCartItems(email, req.ItemIDs); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": len(req.ItemIDs)})
}

// GetCartItems GET /api/v1/carts/items
func (ctrl *CartController) GetCartItems(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	page, limit := parsePagination(c)
	items, total, err := ctrl.cartService.GetCartItems(email, page, limit)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_items": items,
		"total":      total,
		"page":       page,
		"limit":      limit,
	})
}

// parsePagination reads page/limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}
