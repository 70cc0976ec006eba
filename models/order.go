package models

import "time"

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	// Order statuses
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Payment confirmed or accepted by staff
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the items
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before shipping

	// Payment statuses
	PaymentStatusPending PaymentStatus = "pending" // Payment not completed yet
	PaymentStatusPaid    PaymentStatus = "paid"    // Payment completed successfully
	PaymentStatusFailed  PaymentStatus = "failed"  // Payment attempt failed

	// Payment methods
	PaymentMethodCOD    PaymentMethod = "COD"    // Cash on delivery
	PaymentMethodOnline PaymentMethod = "ONLINE" // Hosted payment page
)

// Address is an immutable shipping snapshot owned by one order. It is
// never deduplicated or reused across orders.
type Address struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        *uint         `json:"user_id"`
	User          *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderRef      string        `gorm:"uniqueIndex" json:"order_ref"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount   float64       `json:"total_amount"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod PaymentMethod `gorm:"type:VARCHAR(20)" json:"payment_method"`
	AddressID     uint          `json:"address_id"`
	Address       *Address      `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Payments      []Payment     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// OrderItem is a point-in-time snapshot: the unit price and names are
// copied from the product at order time and never mutated afterwards.
type OrderItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	OrderID       uint    `gorm:"index" json:"order_id"`
	ProductID     uint    `json:"product_id"`
	ProductEName  string  `json:"product_ename"`
	ProductARName string  `json:"product_arname"`
	UnitPrice     float64 `json:"unit_price"`
	Quantity      int     `json:"quantity"`
	Size          string  `json:"size,omitempty"`
	Color         string  `json:"color,omitempty"`
}
