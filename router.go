package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/config"
	"github.com/zaylux/zaylux-store-api/controllers"
	"github.com/zaylux/zaylux-store-api/middleware"
	"github.com/zaylux/zaylux-store-api/services"
	"github.com/zaylux/zaylux-store-api/utils"
)

// setupRouter builds the HTTP router and wires every controller to its
// dependencies. This is the composition root: nothing below it touches
// package-level state.
func setupRouter(cfg *config.Config, db *gorm.DB, whatsapp services.WhatsAppSender, s3 services.S3Interface) *gin.Engine {
	sequence := services.NewSequenceService(db, cfg.OrderIDPrefix, cfg.OrderIDStart)
	inventory := services.NewInventoryService(db)
	coupons := services.NewCouponService(db)
	confirmations := services.NewConfirmationService(db, inventory, whatsapp)

	orderCtl := controllers.NewOrderController(db, sequence, inventory, whatsapp)
	productCtl := controllers.NewProductController(db)
	couponCtl := controllers.NewCouponController(coupons)
	notifyCtl := controllers.NewNotifyController(db)
	webhookCtl := controllers.NewWebhookController(confirmations)

	adminAuthCtl := controllers.NewAdminAuthController(db, cfg.JWTSecret)
	adminProductCtl := controllers.NewAdminProductController(db)
	adminOrderCtl := controllers.NewAdminOrderController(db, confirmations)
	adminCustomerCtl := controllers.NewAdminCustomerController(db)
	adminCouponCtl := controllers.NewAdminCouponController(db)
	adminNotifyCtl := controllers.NewAdminNotifyController(db)
	adminDashboardCtl := controllers.NewAdminDashboardController(db)
	uploadCtl := controllers.NewUploadController(s3)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(utils.Logger()))
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)

		api.GET("/products", productCtl.ListProducts)
		api.GET("/products/:id", productCtl.GetProduct)

		api.POST("/orders", orderCtl.CreateOrder)
		api.POST("/orders/track", orderCtl.TrackOrder)

		api.POST("/coupons/validate", couponCtl.ValidateCoupon)

		api.POST("/notify-me", notifyCtl.CreateNotifyRequest)

		api.POST("/webhook/whatsapp", webhookCtl.HandleWhatsAppWebhook)
	}

	admin := router.Group("/admin")
	{
		admin.POST("/login", adminAuthCtl.Login)
		admin.POST("/create-admin", adminAuthCtl.CreateAdmin)

		authed := admin.Group("", middleware.RequireAdmin(cfg.JWTSecret))
		{
			authed.GET("/products", adminProductCtl.ListProducts)
			authed.POST("/products", adminProductCtl.CreateProduct)
			authed.PUT("/products/:id", adminProductCtl.UpdateProduct)
			authed.DELETE("/products/:id", adminProductCtl.DeleteProduct)

			authed.POST("/uploads", uploadCtl.UploadProductImage)

			authed.GET("/orders", adminOrderCtl.ListOrders)
			authed.GET("/orders/:id", adminOrderCtl.GetOrder)
			authed.PUT("/orders/:id/status", adminOrderCtl.UpdateOrderStatus)

			authed.GET("/customers", adminCustomerCtl.ListCustomers)
			authed.POST("/customers/:phone/block", adminCustomerCtl.BlockCustomer)
			authed.DELETE("/customers/:phone/block", adminCustomerCtl.UnblockCustomer)
			authed.GET("/customers/:phone/orders", adminCustomerCtl.GetCustomerOrders)

			authed.GET("/coupons", adminCouponCtl.ListCoupons)
			authed.POST("/coupons", adminCouponCtl.CreateCoupon)
			authed.PUT("/coupons/:id", adminCouponCtl.UpdateCoupon)
			authed.DELETE("/coupons/:id", adminCouponCtl.DeleteCoupon)

			authed.GET("/notify-requests", adminNotifyCtl.ListGrouped)
			authed.GET("/notify-requests/:productId", adminNotifyCtl.ListForProduct)

			authed.GET("/dashboard/stats", adminDashboardCtl.GetStats)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Zaylux Store API is running",
	})
}
