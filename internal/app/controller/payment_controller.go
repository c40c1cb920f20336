package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjlee/order-api/internal/app/service"
	"github.com/sjlee/order-api/internal/errors"
	"github.com/sjlee/order-api/internal/middleware"
)

type PaymentController struct {
	paymentService service.PaymentService
}

func NewPaymentController(paymentService service.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// Pay POST /api/v1/payments
func (ctrl *PaymentController) Pay(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var input service.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid payment request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "요청 형식이 올바르지 않습니다")
		return
	}

	payment, err := ctrl.paymentService.Pay(c.Request.Context(), email, input)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// CancelPayment POST /api/v1/payments/cancel
func (ctrl *PaymentController) CancelPayment(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var input service.CancelPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "요청 형식이 올바르지 않습니다")
		return
	}

	payment, err := ctrl.paymentService.CancelPayment(c.Request.Context(), email, input)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// GetPayment GET /api/v1/payments/:id
func (ctrl *PaymentController) GetPayment(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "잘못된 결제 ID입니다")
		return
	}

	payment, err := ctrl.paymentService.GetPayment(email, uint(paymentID))
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// GetPayments GET /api/v1/orders/:id/payments
func (ctrl *PaymentController) GetPayments(c *gin.Context) {
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

	page, limit := parsePagination(c)
	payments, total, err := ctrl.paymentService.GetPayments(email, uint(orderID), page, limit)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetEnvironment GET /api/v1/payments/environment
// 프론트엔드 결제 위젯이 사용할 상점 식별자를 내려준다.
func (ctrl *PaymentController) GetEnvironment(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.paymentService.GetEnvironment())
}
