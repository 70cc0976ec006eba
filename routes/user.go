package routes

import (
	orderControllers "github.com/3laa-812/yes-sub000/controllers/order"
	productControllers "github.com/3laa-812/yes-sub000/controllers/product"
	userControllers "github.com/3laa-812/yes-sub000/controllers/user"
	"github.com/3laa-812/yes-sub000/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the public storefront endpoints and the
// JWT‐protected “/user/*” endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	// ──────────────── Browse Products & Categories ────────────────
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.GET("/products/:id/variants", productControllers.ListVariants(db))
	r.GET("/categories", productControllers.GetAllCategoriesWithProducts(db))
	r.GET("/categories/:id", productControllers.GetCategoryByID(db))

	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// ──────────────── Order History ────────────────
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db))
	}
}
