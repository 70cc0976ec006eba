package routes

import (
	paymentControllers "github.com/3laa-812/yes-sub000/controllers/payment"
	"github.com/3laa-812/yes-sub000/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB) {
	payment := r.Group("/payment")
	{
		// Gateway server-to-server result: middleware verifies the
		// signature before any state can change.
		payment.GET("/callback",
			middleware.VerifyPaymobHMAC(),
			paymentControllers.PaymobCallbackHandler(db),
		)
	}
}
