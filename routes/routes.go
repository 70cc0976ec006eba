package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry‐point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public storefront + JWT‐protected user routes
	SetupUserRoutes(r, db)

	// Checkout + payment callback
	SetupOrderRoutes(r, db)
	SetupPaymentRoutes(r, db)

	// Admin routes (API‐Key‐protected)
	SetupAdminRoutes(r, db)
}
