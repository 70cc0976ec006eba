package paymentControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/3laa-812/yes-sub000/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaymobCallbackHandler applies the terminal payment result the gateway
// pushes after the customer leaves the hosted page. The signature has
// already been verified by the middleware in front of this handler.
//
// Gateways deliver callbacks at least once, so the success transition
// is guarded: only a pending order moves to paid, and a redelivery for
// an already-paid order is a no-op redirect.
func PaymobCallbackHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		frontendURL := os.Getenv("FRONTEND_URL")
		merchantOrderID := c.Query("merchant_order_id")
		transactionID := c.Query("id")
		succeeded := c.Query("success") == "true"

		if merchantOrderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing merchant_order_id"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", merchantOrderID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		if !succeeded {
			if order.PaymentStatus == models.PaymentStatusPending {
				if err := markPaymentFailed(db, &order, transactionID); err != nil {
					log.Printf("❌ Failed to record failed payment for order %d: %v", order.ID, err)
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
					return
				}
			}
			c.Redirect(http.StatusFound, fmt.Sprintf("%s/checkout/failed?orderId=%d", frontendURL, order.ID))
			return
		}

		if order.PaymentStatus != models.PaymentStatusPaid {
			if err := markPaymentPaid(db, &order, transactionID); err != nil {
				log.Printf("❌ Failed to confirm payment for order %d: %v", order.ID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
				return
			}
		}
		c.Redirect(http.StatusFound, fmt.Sprintf("%s/checkout/success?orderId=%d", frontendURL, order.ID))
	}
}

// markPaymentPaid transitions order and payment rows to paid in one
// transaction. The most recent pending payment attempt takes the
// transaction id; if none exists a record is still created so the paid
// order always has a payment row.
func markPaymentPaid(db *gorm.DB, order *models.Order, transactionID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Updates(map[string]interface{}{
			"status":         models.OrderStatusConfirmed,
			"payment_status": models.PaymentStatusPaid,
		}).Error; err != nil {
			return err
		}

		var payment models.Payment
		err := tx.Where("order_id = ? AND status = ?", order.ID, models.PaymentStatusPending).
			Order("created_at DESC").First(&payment).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			payment = models.Payment{
				OrderID:       order.ID,
				Provider:      "paymob",
				Amount:        0,
				Status:        models.PaymentStatusPaid,
				TransactionID: transactionID,
			}
			return tx.Create(&payment).Error
		}

		return tx.Model(&payment).Updates(map[string]interface{}{
			"status":         models.PaymentStatusPaid,
			"transaction_id": transactionID,
		}).Error
	})
}

// markPaymentFailed records a declined attempt. Only the payment status
// moves; the order status is left for staff handling.
func markPaymentFailed(db *gorm.DB, order *models.Order, transactionID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Update("payment_status", models.PaymentStatusFailed).Error; err != nil {
			return err
		}

		var payment models.Payment
		err := tx.Where("order_id = ? AND status = ?", order.ID, models.PaymentStatusPending).
			Order("created_at DESC").First(&payment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		return tx.Model(&payment).Updates(map[string]interface{}{
			"status":         models.PaymentStatusFailed,
			"transaction_id": transactionID,
		}).Error
	})
}
