package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjlee/order-api/internal/app/service"
	"github.com/sjlee/order-api/internal/errors"
	"github.com/sjlee/order-api/internal/middleware"
)

type DeliveryController struct {
	deliveryService service.DeliveryService
}

func NewDeliveryController(deliveryService service.DeliveryService) *DeliveryController {
	return &DeliveryController{deliveryService: deliveryService}
}

// AddDelivery POST /api/v1/deliveries
func (ctrl *DeliveryController) AddDelivery(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var input service.DeliveryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid delivery request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "요청 형식이 올바르지 않습니다")
		return
	}

	delivery, err := ctrl.deliveryService.AddDelivery(email, input)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"delivery": delivery})
}

// ModifyDelivery PUT /api/v1/deliveries/:id
func (ctrl *DeliveryController) ModifyDelivery(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	deliveryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "잘못된 배송지 ID입니다")
		return
	}

	var input service.DeliveryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "요청 형식이 올바르지 않습니다")
		return
	}

	delivery, err := ctrl.deliveryService.ModifyDelivery(email, uint(deliveryID), input)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"delivery": delivery})
}

// DeleteDelivery DELETE /api/v1/deliveries/:id
func (ctrl *DeliveryController) DeleteDelivery(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	deliveryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "잘못된 배송지 ID입니다")
		return
	}

	if err := ctrl.deliveryService.DeleteDelivery(email, uint(deliveryID)); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deliveryID})
}

// GetDeliveries GET /api/v1/deliveries
func (ctrl *DeliveryController) GetDeliveries(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	page, limit := parsePagination(c)
	deliveries, total, err := ctrl.deliveryService.GetDeliveries(email, page, limit)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deliveries": deliveries,
		"total":      total,
		"page":       page,
		"limit":      limit,
	})
}

// GetDefaultDelivery GET /api/v1/deliveries/default
func (ctrl *DeliveryController) GetDefaultDelivery(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	delivery, err := ctrl.deliveryService.GetDefaultDelivery(email)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"delivery": delivery})
}

type deliveryMemoRequest struct {
	Memo string `json:"memo" binding:"required"`
}

// SaveDeliveryMemo POST /api/v1/delivery-memos
func (ctrl *DeliveryController) SaveDeliveryMemo(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	var req deliveryMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "요청 형식이 올바르지 않습니다")
		return
	}

	memo, err := ctrl.deliveryService.SaveDeliveryMemo(email, req.Memo)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"delivery_memo": memo})
}

// DeleteDeliveryMemo DELETE /api/v1/delivery-memos/:id
func (ctrl *DeliveryController) DeleteDeliveryMemo(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	memoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "잘못된 배송 메모 ID입니다")
		return
	}

	if err := ctrl.deliveryService.DeleteDeliveryMemo(email, uint(memoID)); err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": memoID})
}

// GetDeliveryMemos GET /api/v1/delivery-memos
func (ctrl *DeliveryController) GetDeliveryMemos(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	page, limit := parsePagination(c)
	memos, total, err := ctrl.deliveryService.GetDeliveryMemos(email, page, limit)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"delivery_memos": memos,
		"total":          total,
		"page":           page,
		"limit":          limit,
	})
}

// GetRecentDeliveryMemo GET /api/v1/delivery-memos/recent
func (ctrl *DeliveryController) GetRecentDeliveryMemo(c *gin.Context) {
	email, ok := middleware.GetMemberEmail(c)
	if !ok {
		errors.Unauthorized(c, "")
		return
	}

	memo, err := ctrl.deliveryService.GetRecentDeliveryMemo(email)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"delivery_memo": memo})
}
