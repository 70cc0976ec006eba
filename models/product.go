package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ImageList is stored as a JSON array of URL strings.
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for ImageList")
	}
}

type Product struct {
	ID            uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	EName         string           `gorm:"not null" json:"ename"` // English Name
	ARName        string           `json:"arname"`                // Arabic Name
	EDescription  string           `json:"edescription"`
	ARDescription string           `json:"ardescription"`
	Price         float64          `gorm:"not null" json:"price"` // list price
	SalePrice     float64          `json:"sale_price"`            // active only when below the list price
	Stock         int              `json:"stock"`
	CategoryID    *uint            `json:"category_id"`
	Category      *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images        ImageList        `gorm:"type:text" json:"images"`
	Variants      []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

// UnitPrice returns the price an order item is charged at: the sale
// price when it is set and strictly below the list price, else the
// list price.
func (p *Product) UnitPrice() float64 {
	if p.SalePrice > 0 && p.SalePrice < p.Price {
		return p.SalePrice
	}
	return p.Price
}

// ProductVariant tracks stock for one (size, color) combination of a
// product. Variant stock moves together with the parent product's
// aggregate stock; both are decremented through the same transaction.
type ProductVariant struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"uniqueIndex:idx_product_size_color" json:"product_id"`
	Size      string    `gorm:"uniqueIndex:idx_product_size_color" json:"size"`
	Color     string    `gorm:"uniqueIndex:idx_product_size_color" json:"color"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
