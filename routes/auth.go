package routes

import (
	"github.com/3laa-812/yes-sub000/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/guest", auth.CreateGuestSession())
		authGroup.POST("/login", auth.StaffLogin(db))
	}
}
