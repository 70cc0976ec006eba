package orderControllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	paymentControllers "github.com/3laa-812/yes-sub000/controllers/payment"
	"github.com/3laa-812/yes-sub000/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type CheckoutItem struct {
	ProductID uint   `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type CheckoutRequest struct {
	FirstName     string         `json:"firstName" binding:"required"`
	LastName      string         `json:"lastName" binding:"required"`
	Email         string         `json:"email" binding:"required,email"`
	Phone         string         `json:"phone" binding:"required,min=10"`
	Address       string         `json:"address" binding:"required"`
	City          string         `json:"city" binding:"required"`
	Country       string         `json:"country"`
	PaymentMethod string         `json:"paymentMethod" binding:"required"`
	Items         []CheckoutItem `json:"items" binding:"required,min=1,dive"`
}

// -------- Helpers --------

func mapPaymentMethod(method string) (models.PaymentMethod, error) {
	switch method {
	case "COD", "cod":
		return models.PaymentMethodCOD, nil
	case "ONLINE", "online":
		return models.PaymentMethodOnline, nil
	default:
		return "", errors.New("invalid payment method")
	}
}

// Generate unique order reference
func generateOrderRef() string {
	// Example: 20250908130500-<uuid4>
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// resolveCustomer finds or creates the customer an order belongs to.
// An authenticated session wins; otherwise the supplied email is looked
// up and reused (backfilling a missing phone), and a guest customer is
// created when no account exists.
func resolveCustomer(tx *gorm.DB, sessionUserID uint, req CheckoutRequest) (*models.User, error) {
	if sessionUserID != 0 {
		var user models.User
		if err := tx.First(&user, sessionUserID).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}

	var user models.User
	err := tx.Where("email = ?", req.Email).First(&user).Error
	if err == nil {
		if user.Phone == "" && req.Phone != "" {
			if err := tx.Model(&user).Update("phone", req.Phone).Error; err != nil {
				return nil, err
			}
			user.Phone = req.Phone
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		Email:     req.Email,
		Phone:     req.Phone,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleUser,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// -------- Core Logic --------

// CreateOrder turns a validated checkout request into one persisted
// order. Customer resolution, the address snapshot, every stock
// decrement and the order itself commit in a single transaction; any
// failing line item rolls the whole checkout back.
func CreateOrder(db *gorm.DB, sessionUserID uint, req CheckoutRequest) (*models.Order, error) {
	method, err := mapPaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var order models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		user, err := resolveCustomer(tx, sessionUserID, req)
		if err != nil {
			return err
		}

		address := models.Address{
			Name:    req.FirstName + " " + req.LastName,
			Phone:   req.Phone,
			Street:  req.Address,
			City:    req.City,
			Country: req.Country,
		}
		if err := tx.Create(&address).Error; err != nil {
			return err
		}

		var items []models.OrderItem
		var total float64
		for _, item := range req.Items {
			resolved, err := ResolveLineItem(tx, item)
			if err != nil {
				return err
			}
			total += resolved.UnitPrice * float64(resolved.Quantity)
			items = append(items, resolved)
		}

		order = models.Order{
			UserID:        &user.ID,
			User:          user,
			OrderRef:      generateOrderRef(),
			Items:         items,
			TotalAmount:   total,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusPending,
			PaymentMethod: method,
			AddressID:     address.ID,
			Address:       &address,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	broadcastNewOrder(order)
	return &order, nil
}

// -------- Handlers --------

// CheckoutHandler is the storefront's order submission endpoint. The
// order commits first; a payment-dispatch failure afterwards leaves the
// order in place so the customer can retry paying for it.
func CheckoutHandler(db *gorm.DB, newGateway paymentControllers.GatewayFactory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		var sessionUserID uint
		if v, ok := c.Get("user_id"); ok {
			if id, ok := v.(uint); ok {
				sessionUserID = id
			}
		}

		order, err := CreateOrder(db, sessionUserID, req)
		if err != nil {
			if IsInventoryError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
				return
			}
			log.Println("❌ Failed to place order:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to place order"})
			return
		}

		redirectURL, err := paymentControllers.InitiatePayment(db, newGateway, order)
		if err != nil {
			// The order stays committed; only the payment handshake failed.
			log.Printf("❌ Payment initiation failed for order %d: %v", order.ID, err)
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Payment initialization failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"orderId":     order.ID,
			"redirectUrl": redirectURL,
		})
	}
}

// RetryPaymentHandler re-runs the payment handshake for an order whose
// earlier attempt failed. Only unpaid online orders qualify.
func RetryPaymentHandler(db *gorm.DB, newGateway paymentControllers.GatewayFactory) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "order not found"})
			return
		}
		if order.PaymentMethod != models.PaymentMethodOnline || order.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "order is not awaiting online payment"})
			return
		}

		redirectURL, err := paymentControllers.InitiatePayment(db, newGateway, &order)
		if err != nil {
			log.Printf("❌ Payment retry failed for order %d: %v", order.ID, err)
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Payment initialization failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"orderId":     order.ID,
			"redirectUrl": redirectURL,
		})
	}
}
