package paymentControllers

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/3laa-812/yes-sub000/models"
	"gorm.io/gorm"
)

// InitiatePayment routes a freshly created order to its fulfillment
// path. COD orders get a confirmation redirect with no external call.
// Online orders run the gateway handshake and come back with the hosted
// payment page URL; each step's failure names the step for operators.
//
// The order was already committed by checkout: a failure here returns
// an error but never rolls the order back, so the customer can retry.
func InitiatePayment(db *gorm.DB, newGateway GatewayFactory, order *models.Order) (string, error) {
	frontendURL := os.Getenv("FRONTEND_URL")

	if order.PaymentMethod == models.PaymentMethodCOD {
		return fmt.Sprintf("%s/checkout/confirmation?orderId=%d", frontendURL, order.ID), nil
	}

	gw, err := newGateway()
	if err != nil {
		return "", fmt.Errorf("paymob config: %w", err)
	}

	if order.User == nil || order.Address == nil {
		if err := db.Preload("User").Preload("Address").First(order, order.ID).Error; err != nil {
			return "", err
		}
	}
	if order.User == nil || order.Address == nil {
		return "", errors.New("order is missing customer or address data")
	}

	authToken, err := gw.Authenticate()
	if err != nil {
		return "", fmt.Errorf("paymob auth: %w", err)
	}

	amountCents := int64(math.Round(order.TotalAmount * 100))
	gatewayOrderID, err := gw.RegisterOrder(authToken, amountCents, strconv.FormatUint(uint64(order.ID), 10))
	if err != nil {
		return "", fmt.Errorf("paymob order registration: %w", err)
	}

	billing := BillingData{
		FirstName: order.User.FirstName,
		LastName:  order.User.LastName,
		Email:     order.User.Email,
		Phone:     order.Address.Phone,
		Street:    order.Address.Street,
		City:      order.Address.City,
		Country:   order.Address.Country,
	}
	paymentToken, err := gw.RequestPaymentKey(authToken, gatewayOrderID, amountCents, billing)
	if err != nil {
		return "", fmt.Errorf("paymob payment key: %w", err)
	}

	payment := models.Payment{
		OrderID:        order.ID,
		Provider:       "paymob",
		Amount:         order.TotalAmount,
		Status:         models.PaymentStatusPending,
		GatewayOrderID: strconv.FormatInt(gatewayOrderID, 10),
	}
	if err := db.Create(&payment).Error; err != nil {
		return "", err
	}

	return gw.PaymentPageURL(paymentToken), nil
}
