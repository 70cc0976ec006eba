package paymentControllers_test

import (
	"fmt"
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

// seedOnlineOrder creates a committed unpaid ONLINE order with its
// customer and address rows, the state checkout leaves behind before
// the gateway handshake runs.
func seedOnlineOrder(t *testing.T, db *gorm.DB, total float64) models.Order {
	t.Helper()

	user := models.User{
		Email:     "nour@example.com",
		Phone:     "01007654321",
		FirstName: "Nour",
		LastName:  "Adel",
		Role:      models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)

	address := models.Address{
		Name:    "Nour Adel",
		Phone:   "01007654321",
		Street:  "5 Corniche Rd",
		City:    "Alexandria",
		Country: "EG",
	}
	require.NoError(t, db.Create(&address).Error)

	order := models.Order{
		UserID:        &user.ID,
		OrderRef:      fmt.Sprintf("ref-%s", strings.ReplaceAll(t.Name(), "/", "_")),
		TotalAmount:   total,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodOnline,
		AddressID:     address.ID,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func reloadOrder(t *testing.T, db *gorm.DB, id uint) models.Order {
	t.Helper()

	var order models.Order
	require.NoError(t, db.Preload("Payments").First(&order, id).Error)
	return order
}
