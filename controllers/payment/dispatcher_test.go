package paymentControllers_test

import (
	"errors"
	"fmt"
	"testing"

	paymentControllers "github.com/3laa-812/yes-sub000/controllers/payment"
	"github.com/3laa-812/yes-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway records the handshake arguments and answers from canned
// values, standing in for the hosted-page provider.
type fakeGateway struct {
	authErr error
	orderID int64

	gotAmountCents     int64
	gotMerchantOrderID string
	gotBilling         paymentControllers.BillingData
}

func (f *fakeGateway) Authenticate() (string, error) {
	if f.authErr != nil {
		return "", f.authErr
	}
	return "fake-auth", nil
}

func (f *fakeGateway) RegisterOrder(authToken string, amountCents int64, merchantOrderID string) (int64, error) {
	f.gotAmountCents = amountCents
	f.gotMerchantOrderID = merchantOrderID
	return f.orderID, nil
}

func (f *fakeGateway) RequestPaymentKey(authToken string, gatewayOrderID, amountCents int64, billing paymentControllers.BillingData) (string, error) {
	f.gotBilling = billing
	return "fake-payment-key", nil
}

func (f *fakeGateway) PaymentPageURL(paymentToken string) string {
	return "https://pay.test/iframe?payment_token=" + paymentToken
}

func factoryFor(gw paymentControllers.Gateway) paymentControllers.GatewayFactory {
	return func() (paymentControllers.Gateway, error) { return gw, nil }
}

func TestInitiatePaymentCOD(t *testing.T) {
	t.Setenv("FRONTEND_URL", "http://shop.test")

	db := newTestDB(t)
	order := models.Order{
		OrderRef:      "cod-ref",
		TotalAmount:   120,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodCOD,
	}
	require.NoError(t, db.Create(&order).Error)

	url, err := paymentControllers.InitiatePayment(db, paymentControllers.DefaultGateway, &order)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("http://shop.test/checkout/confirmation?orderId=%d", order.ID), url)

	// No gateway was touched and no payment row exists yet.
	var payments int64
	db.Model(&models.Payment{}).Count(&payments)
	assert.Zero(t, payments)
}

func TestInitiatePaymentOnline(t *testing.T) {
	db := newTestDB(t)
	order := seedOnlineOrder(t, db, 159.99)

	gw := &fakeGateway{orderID: 987654}
	url, err := paymentControllers.InitiatePayment(db, factoryFor(gw), &order)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.test/iframe?payment_token=fake-payment-key", url)

	// 159.99 EGP rounds to 15999 cents, never truncates.
	assert.Equal(t, int64(15999), gw.gotAmountCents)
	assert.Equal(t, fmt.Sprintf("%d", order.ID), gw.gotMerchantOrderID)
	assert.Equal(t, "Nour", gw.gotBilling.FirstName)
	assert.Equal(t, "Alexandria", gw.gotBilling.City)

	reloaded := reloadOrder(t, db, order.ID)
	require.Len(t, reloaded.Payments, 1)
	payment := reloaded.Payments[0]
	assert.Equal(t, "paymob", payment.Provider)
	assert.Equal(t, 159.99, payment.Amount)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Equal(t, "987654", payment.GatewayOrderID)
	assert.Equal(t, models.PaymentStatusPending, reloaded.PaymentStatus)
}

func TestInitiatePaymentGatewayAuthFailure(t *testing.T) {
	db := newTestDB(t)
	order := seedOnlineOrder(t, db, 100)

	gw := &fakeGateway{authErr: errors.New("upstream down")}
	_, err := paymentControllers.InitiatePayment(db, factoryFor(gw), &order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paymob auth")

	// The order is untouched; the handshake can be retried.
	reloaded := reloadOrder(t, db, order.ID)
	assert.Equal(t, models.PaymentStatusPending, reloaded.PaymentStatus)
	assert.Empty(t, reloaded.Payments)
}

func TestInitiatePaymentFactoryFailure(t *testing.T) {
	db := newTestDB(t)
	order := seedOnlineOrder(t, db, 100)

	factory := func() (paymentControllers.Gateway, error) {
		return nil, errors.New("paymob configuration missing")
	}
	_, err := paymentControllers.InitiatePayment(db, factory, &order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paymob config")
}

func TestInitiatePaymentLoadsAssociations(t *testing.T) {
	db := newTestDB(t)
	order := seedOnlineOrder(t, db, 50)

	// Pass a bare order with only the id, as the retry handler does.
	bare := models.Order{ID: order.ID}
	require.NoError(t, db.First(&bare, order.ID).Error)

	gw := &fakeGateway{orderID: 1}
	_, err := paymentControllers.InitiatePayment(db, factoryFor(gw), &bare)
	require.NoError(t, err)
	assert.Equal(t, "nour@example.com", gw.gotBilling.Email)
}
