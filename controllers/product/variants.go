package productcontroller

import (
	"net/http"

	"github.com/3laa-812/yes-sub000/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VariantRequest struct {
	Size  string `json:"size" binding:"required"`
	Color string `json:"color" binding:"required"`
	Stock int    `json:"stock" binding:"min=0"`
}

// ListVariants returns all (size, color) rows of a product.
func ListVariants(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")
		var variants []models.ProductVariant
		if err := db.Where("product_id = ?", productID).Find(&variants).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch variants"})
			return
		}
		c.JSON(http.StatusOK, variants)
	}
}

// AddVariant creates a (size, color) row. The pair is unique per
// product; a duplicate fails on the database constraint.
func AddVariant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var req VariantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		variant := models.ProductVariant{
			ProductID: product.ID,
			Size:      req.Size,
			Color:     req.Color,
			Stock:     req.Stock,
		}
		if err := db.Create(&variant).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Variant already exists for this size/color"})
			return
		}

		c.JSON(http.StatusCreated, variant)
	}
}

type UpdateVariantStockRequest struct {
	Stock int `json:"stock" binding:"min=0"`
}

// UpdateVariantStock is the admin restock path. Decrements at order
// time never go through here; they run inside the checkout transaction.
func UpdateVariantStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		variantID := c.Param("variantID")

		var variant models.ProductVariant
		if err := db.First(&variant, "id = ?", variantID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
			return
		}

		var req UpdateVariantStockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		delta := req.Stock - variant.Stock
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&variant).Update("stock", req.Stock).Error; err != nil {
				return err
			}
			// The aggregate product counter moves by the same amount.
			return tx.Model(&models.Product{}).Where("id = ?", variant.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", delta)).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update variant stock"})
			return
		}

		c.JSON(http.StatusOK, variant)
	}
}

func DeleteVariant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		variantID := c.Param("variantID")
		if err := db.Delete(&models.ProductVariant{}, "id = ?", variantID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete variant"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Variant deleted successfully"})
	}
}
