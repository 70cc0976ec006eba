package routes

import (
	orderControllers "github.com/3laa-812/yes-sub000/controllers/order"
	paymentControllers "github.com/3laa-812/yes-sub000/controllers/payment"
	"github.com/3laa-812/yes-sub000/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	// Storefront checkout: guests and logged-in customers both land here.
	checkout := r.Group("/checkout")
	checkout.Use(middleware.OptionalAuth)
	{
		checkout.POST("", orderControllers.CheckoutHandler(db, paymentControllers.DefaultGateway))

		// Re-run the gateway handshake for an unpaid online order.
		checkout.POST("/:orderID/pay", orderControllers.RetryPaymentHandler(db, paymentControllers.DefaultGateway))
	}
}
