package models

import "time"

// Payment records one attempt against an order. An order may
// accumulate several attempts, but only one should end up paid.
type Payment struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	OrderID        uint          `gorm:"index" json:"order_id"`
	Provider       string        `json:"provider"`
	Amount         float64       `json:"amount"`
	Status         PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	GatewayOrderID string        `json:"gateway_order_id"`
	TransactionID  string        `json:"transaction_id"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
