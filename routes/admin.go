package routes

import (
	orderControllers "github.com/3laa-812/yes-sub000/controllers/order"
	productcontroller "github.com/3laa-812/yes-sub000/controllers/product"
	userControllers "github.com/3laa-812/yes-sub000/controllers/user"
	"github.com/3laa-812/yes-sub000/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API‐Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Admin & Customer Management ───────────
		adminGroup.GET("/admins", userControllers.GetAllStaff(db))
		adminGroup.POST("/admins", userControllers.CreateStaff(db))
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.PUT("/users/:userID/active", userControllers.SetUserActive(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))

			productAdmin.GET("/:id/variants", productcontroller.ListVariants(db))
			productAdmin.POST("/:id/variants", productcontroller.AddVariant(db))
			productAdmin.PUT("/variants/:variantID", productcontroller.UpdateVariantStock(db))
			productAdmin.DELETE("/variants/:variantID", productcontroller.DeleteVariant(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}

		// websocket endpoint for real-time order updates
		adminGroup.GET("/orders-ws", orderControllers.OrderWebSocketHandler)
	}
}
