package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sjlee/order-api/config"
	"github.com/sjlee/order-api/internal/app/controller"
	"github.com/sjlee/order-api/internal/middleware"
)

type Router struct {
	cartController     *controller.CartController
	orderController    *controller.OrderController
	paymentController  *controller.PaymentController
	deliveryController *controller.DeliveryController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	cartController *controller.CartController,
	orderController *controller.OrderController,
	paymentController *controller.PaymentController,
	deliveryController *controller.DeliveryController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		cartController:     cartController,
		orderController:    orderController,
		paymentController:  paymentController,
		deliveryController: deliveryController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "ORDER API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		carts := v1.Group("/carts")
		carts.Use(r.authMiddleware.Authenticate())
		{
			carts.GET("/items", r.cartController.GetCartItems)
			carts.POST("/items", r.cartController.AddToCart)
			carts.PUT("/items", r.cartController.ModifyCartItem)
			carts.DELETE("/items", r.cartController.DeleteCartItems)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.GET("/:id/payments", r.paymentController.GetPayments)
			orders.POST("/cart-items", r.orderController.OrderCartItems)
			orders.POST("/products", r.orderController.OrderProducts)
			orders.POST("/refund", r.orderController.ApplyRefund)
		}

		payments := v1.Group("/payments")
		{
			// 결제 위젯 초기화용 식별자는 로그인 전에도 조회할 수 있다.
			payments.GET("/environment", r.paymentController.GetEnvironment)

			payments.POST("", r.authMiddleware.Authenticate(), r.paymentController.Pay)
			payments.POST("/cancel", r.authMiddleware.Authenticate(), r.paymentController.CancelPayment)
			payments.GET("/:id", r.authMiddleware.Authenticate(), r.paymentController.GetPayment)
		}

		deliveries := v1.Group("/deliveries")
		deliveries.Use(r.authMiddleware.Authenticate())
		{
			deliveries.GET("", r.deliveryController.GetDeliveries)
			deliveries.GET("/default", r.deliveryController.GetDefaultDelivery)
			deliveries.POST("", r.deliveryController.AddDelivery)
			deliveries.PUT("/:id", r.deliveryController.ModifyDelivery)
			deliveries.DELETE("/:id", r.deliveryController.DeleteDelivery)
		}

		memos := v1.Group("/delivery-memos")
		memos.Use(r.authMiddleware.Authenticate())
		{
			memos.GET("", r.deliveryController.GetDeliveryMemos)
			memos.GET("/recent", r.deliveryController.GetRecentDeliveryMemo)
			memos.POST("", r.deliveryController.SaveDeliveryMemo)
			memos.DELETE("/:id", r.deliveryController.DeleteDeliveryMemo)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
