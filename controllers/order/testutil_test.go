package orderControllers_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/3laa-812/yes-sub000/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	return openTestDB(t, dsn)
}

// newFileTestDB backs the database with a real file so that separate
// connections contend through database locking, the way concurrent
// requests do in production. Write transactions start immediately and
// queue on the busy timeout instead of deadlocking on a lock upgrade.
func newFileTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "shop.db") + "?_busy_timeout=5000&_txlock=immediate"
	return openTestDB(t, dsn)
}

func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	))
	return db
}

// seedShirt creates the standard test product: list 100, sale 80,
// aggregate stock 10, with an M/Black variant holding 5.
func seedShirt(t *testing.T, db *gorm.DB) models.Product {
	t.Helper()

	product := models.Product{
		EName:     "Linen Shirt",
		ARName:    "قميص كتان",
		Price:     100,
		SalePrice: 80,
		Stock:     10,
		Variants: []models.ProductVariant{
			{Size: "M", Color: "Black", Stock: 5},
			{Size: "L", Color: "White", Stock: 2},
		},
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func variantStock(t *testing.T, db *gorm.DB, productID uint, size, color string) int {
	t.Helper()

	var variant models.ProductVariant
	require.NoError(t, db.Where("product_id = ? AND size = ? AND color = ?",
		productID, size, color).First(&variant).Error)
	return variant.Stock
}

func productStock(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()

	var product models.Product
	require.NoError(t, db.First(&product, productID).Error)
	return product.Stock
}
