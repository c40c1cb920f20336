package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjlee/order-api/internal/app/service"
	"github.com/sjlee/order-api/internal/errors"
	"github.com/sjlee/order-api/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// OrderCartItems POST /api/v1/orders/cart-items
func (ctrl *OrderController) OrderCartItems(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var input service.CartItemsOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid cart items order request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "요청 형식이 올바르지 않습니다")
		return
	}

	order, err := ctrl.orderService.OrderCartItems(c.Request.Context(), email, input)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// OrderProducts POST /api/v1/orders/products
func (ctrl *OrderController) OrderProducts(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var input service.ProductsOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "요청 형식이 올바르지 않습니다")
		return
	}

	order, err := ctrl.orderService.OrderProducts(c.Request.Context(), email, input)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ApplyRefund POST /api/v1/orders/refund
func (ctrl *OrderController) ApplyRefund(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var input service.RefundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "요청 형식이 올바르지 않습니다")
		return
	}

	order, err := ctrl.orderService.ApplyRefund(email, input)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetOrder GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "잘못된 주문 ID입니다")
		return
	}

	order, err := ctrl.orderService.GetOrder(email, uint(orderID))
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetOrders GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	page, limit := parsePagination(c)
	orders, total, err := ctrl.orderService.GetOrders(email, page, limit)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}
