package productcontroller

import (
	"net/http"

	"github.com/3laa-812/yes-sub000/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateProductRequest struct {
	EName         *string   `json:"ename"`
	ARName        *string   `json:"arname"`
	EDescription  *string   `json:"edescription"`
	ARDescription *string   `json:"ardescription"`
	Price         *float64  `json:"price"`
	SalePrice     *float64  `json:"sale_price"`
	Stock         *int      `json:"stock"`
	CategoryID    *uint     `json:"category_id"`
	Images        *[]string `json:"images"`
}

// UpdateProduct applies a partial edit. Changing prices never touches
// existing order items: those hold their own price snapshots.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.EName != nil {
			updates["e_name"] = *req.EName
		}
		if req.ARName != nil {
			updates["ar_name"] = *req.ARName
		}
		if req.EDescription != nil {
			updates["e_description"] = *req.EDescription
		}
		if req.ARDescription != nil {
			updates["ar_description"] = *req.ARDescription
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.SalePrice != nil {
			updates["sale_price"] = *req.SalePrice
		}
		if req.Stock != nil {
			updates["stock"] = *req.Stock
		}
		if req.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *req.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
				return
			}
			updates["category_id"] = *req.CategoryID
		}
		if req.Images != nil {
			updates["images"] = models.ImageList(*req.Images)
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}

		c.JSON(http.StatusOK, product)
	}
}
