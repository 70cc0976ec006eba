package paymentControllers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	paymentControllers "github.com/3laa-812/yes-sub000/controllers/payment"
	"github.com/3laa-812/yes-sub000/middleware"
	"github.com/3laa-812/yes-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const callbackSecret = "callback-test-secret"

func newCallbackRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/payment/callback", middleware.VerifyPaymobHMAC(), paymentControllers.PaymobCallbackHandler(db))
	return r
}

// signedCallback builds a transaction callback query signed with the
// test secret, mirroring what the gateway sends after a payment.
func signedCallback(order models.Order, success bool) url.Values {
	params := url.Values{}
	params.Set("amount_cents", fmt.Sprintf("%d", int64(order.TotalAmount*100)))
	params.Set("created_at", "2025-03-14T12:30:45.123456")
	params.Set("currency", "EGP")
	params.Set("error_occured", "false")
	params.Set("has_parent_transaction", "false")
	params.Set("id", "187654321")
	params.Set("integration_id", "4411223")
	params.Set("is_3d_secure", "true")
	params.Set("is_auth", "false")
	params.Set("is_capture", "false")
	params.Set("is_refunded", "false")
	params.Set("is_standalone_payment", "true")
	params.Set("is_voided", "false")
	params.Set("order", "165478933")
	params.Set("owner", "310564")
	params.Set("pending", "false")
	params.Set("source_data.pan", "2346")
	params.Set("source_data.sub_type", "MasterCard")
	params.Set("source_data.type", "card")
	params.Set("success", fmt.Sprintf("%t", success))
	params.Set("merchant_order_id", fmt.Sprintf("%d", order.ID))
	params.Set("hmac", middleware.ComputePaymobSignature(callbackSecret, params))
	return params
}

func deliverCallback(r *gin.Engine, params url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payment/callback?"+params.Encode(), nil)
	r.ServeHTTP(w, req)
	return w
}

func seedPendingAttempt(t *testing.T, db *gorm.DB, order models.Order) models.Payment {
	t.Helper()

	payment := models.Payment{
		OrderID:        order.ID,
		Provider:       "paymob",
		Amount:         order.TotalAmount,
		Status:         models.PaymentStatusPending,
		GatewayOrderID: "165478933",
	}
	require.NoError(t, db.Create(&payment).Error)
	return payment
}

func TestCallbackSuccessConfirmsOrder(t *testing.T) {
	t.Setenv("PAYMOB_HMAC_SECRET", callbackSecret)
	t.Setenv("FRONTEND_URL", "http://shop.test")

	db := newTestDB(t)
	order := seedOnlineOrder(t, db, 160)
	seedPendingAttempt(t, db, order)
	r := newCallbackRouter(db)

	w := deliverCallback(r, signedCallback(order, true))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("http://shop.test/checkout/success?orderId=%d", order.ID), w.Header().Get("Location"))

	reloaded := reloadOrder(t, db, order.ID)
	assert.Equal(t, models.OrderStatusConfirmed, reloaded.Status)
	assert.Equal(t, models.PaymentStatusPaid, reloaded.PaymentStatus)
	require.Len(t, reloaded.Payments, 1)
	assert.Equal(t, models.PaymentStatusPaid, reloaded.Payments[0].Status)
	assert.Equal(t, "187654321", reloaded.Payments[0].TransactionID)
}

func TestCallbackRedeliveryIsNoOp(t *testing.T) {
	t.Setenv("PAYMOB_HMAC_SECRET", callbackSecret)
	t.Setenv("FRONTEND_URL", "http://shop.test")

	db := newTestDB(t)
	order := seedOnlineOrder(t, db, 160)
	seedPendingAttempt(t, db, order)
	r := newCallbackRouter(db)

	params := signedCallback(order, true)
	deliverCallback(r, params)
	w := deliverCallback(r, params)
	require.Equal(t, http.StatusFound, w.Code)

	// Still exactly one payment row, still the same state.
	reloaded := reloadOrder(t, db, order.ID)
	assert.Equal(t, models.OrderStatusConfirmed, reloaded.Status)
	assert.Equal(t, models.PaymentStatusPaid, reloaded.PaymentStatus)
	assert.Len(t, reloaded.Payments, 1)
}

func TestCallbackTamperedAmountRejected(t *testing.T) {
	t.Setenv("PAYMOB_HMAC_SECRET", callbackSecret)

	db := newTestDB(t)
	order := seedOnlineOrder(t, db, 160)
	r := newCallbackRouter(db)

	params := signedCallback(order, true)
	params.Set("amount_cents", "1")

	w := deliverCallback(r, params)
	require.Equal(t, http.StatusForbidden, w.Code)

	reloaded := reloadOrder(t, db, order.ID)
	assert.Equal(t, models.OrderStatusPending, reloaded.Status)
	assert.Equal(t, models.PaymentStatusPending, reloaded.PaymentStatus)
}

func TestCallbackMissingSignatureRejected(t *testing.T) {
	t.Setenv("PAYMOB_HMAC_SECRET", callbackSecret)

	db := newTestDB(t)
	order := seedOnlineOrder(t, db, 160)
	r := newCallbackRouter(db)

	params := signedCallback(order, true)
	params.Del("hmac")

	w := deliverCallback(r, params)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCallbackUnavailableWithoutSecret(t *testing.T) {
	t.Setenv("PAYMOB_HMAC_SECRET", "")

	db := newTestDB(t)
	order := seedOnlineOrder(t, db, 160)
	r := newCallbackRouter(db)

	w := deliverCallback(r, signedCallback(order, true))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCallbackFailureMarksPaymentFailed(t *testing.T) {
	t.Setenv("PAYMOB_HMAC_SECRET", callbackSecret)
	t.Setenv("FRONTEND_URL", "http://shop.test")

	db := newTestDB(t)
	order := seedOnlineOrder(t, db, 160)
	seedPendingAttempt(t, db, order)
	r := newCallbackRouter(db)

	w := deliverCallback(r, signedCallback(order, false))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("http://shop.test/checkout/failed?orderId=%d", order.ID), w.Header().Get("Location"))

	reloaded := reloadOrder(t, db, order.ID)
	// Payment status moves; order status stays pending for staff.
	assert.Equal(t, models.OrderStatusPending, reloaded.Status)
	assert.Equal(t, models.PaymentStatusFailed, reloaded.PaymentStatus)
	require.Len(t, reloaded.Payments, 1)
	assert.Equal(t, models.PaymentStatusFailed, reloaded.Payments[0].Status)
}

func TestCallbackSuccessWithoutPendingAttempt(t *testing.T) {
	t.Setenv("PAYMOB_HMAC_SECRET", callbackSecret)
	t.Setenv("FRONTEND_URL", "http://shop.test")

	db := newTestDB(t)
	order := seedOnlineOrder(t, db, 160)
	r := newCallbackRouter(db)

	w := deliverCallback(r, signedCallback(order, true))
	require.Equal(t, http.StatusFound, w.Code)

	// A paid order always ends up with a payment row.
	reloaded := reloadOrder(t, db, order.ID)
	assert.Equal(t, models.PaymentStatusPaid, reloaded.PaymentStatus)
	require.Len(t, reloaded.Payments, 1)
	assert.Equal(t, "187654321", reloaded.Payments[0].TransactionID)
}

func TestCallbackUnknownOrder(t *testing.T) {
	t.Setenv("PAYMOB_HMAC_SECRET", callbackSecret)

	db := newTestDB(t)
	r := newCallbackRouter(db)

	params := signedCallback(models.Order{ID: 99999, TotalAmount: 10}, true)
	w := deliverCallback(r, params)
	require.Equal(t, http.StatusNotFound, w.Code)
}
