package productcontroller

import (
	"net/http"

	"github.com/3laa-812/yes-sub000/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	EName         string   `json:"ename" binding:"required"`
	ARName        string   `json:"arname"`
	EDescription  string   `json:"edescription"`
	ARDescription string   `json:"ardescription"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	SalePrice     float64  `json:"sale_price"`
	Stock         int      `json:"stock" binding:"min=0"`
	CategoryID    *uint    `json:"category_id"`
	Images        []string `json:"images"`
	Variants      []struct {
		Size  string `json:"size"`
		Color string `json:"color"`
		Stock int    `json:"stock" binding:"min=0"`
	} `json:"variants"`
}

// CreateProduct creates a product with optional (size, color) variants.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *req.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
				return
			}
		}

		product := models.Product{
			EName:         req.EName,
			ARName:        req.ARName,
			EDescription:  req.EDescription,
			ARDescription: req.ARDescription,
			Price:         req.Price,
			SalePrice:     req.SalePrice,
			Stock:         req.Stock,
			CategoryID:    req.CategoryID,
			Images:        req.Images,
		}
		for _, v := range req.Variants {
			product.Variants = append(product.Variants, models.ProductVariant{
				Size:  v.Size,
				Color: v.Color,
				Stock: v.Stock,
			})
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
