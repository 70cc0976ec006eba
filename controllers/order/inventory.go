package orderControllers

import (
	"errors"
	"fmt"

	"github.com/3laa-812/yes-sub000/models"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrVariantNotFound   = errors.New("variant not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ResolveLineItem reserves stock for one requested item and returns the
// snapshot row to attach to the order. It must run inside the checkout
// transaction so that a later item failing rolls back every decrement.
//
// When a size or color is supplied the matching variant row must exist;
// its stock and the parent product's aggregate stock are decremented
// together. Products without variants decrement the aggregate only.
func ResolveLineItem(tx *gorm.DB, item CheckoutItem) (models.OrderItem, error) {
	var product models.Product
	if err := tx.First(&product, item.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.OrderItem{}, fmt.Errorf("%w: product %d", ErrProductNotFound, item.ProductID)
		}
		return models.OrderItem{}, err
	}

	if item.Size != "" || item.Color != "" {
		var variant models.ProductVariant
		err := tx.Where("product_id = ? AND size = ? AND color = ?",
			product.ID, item.Size, item.Color).First(&variant).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.OrderItem{}, fmt.Errorf("%w: %s (%s/%s)",
					ErrVariantNotFound, product.EName, item.Size, item.Color)
			}
			return models.OrderItem{}, err
		}

		if err := decrementStock(tx, &models.ProductVariant{}, variant.ID, item.Quantity); err != nil {
			return models.OrderItem{}, fmt.Errorf("%w: %s (%s/%s)",
				err, product.EName, item.Size, item.Color)
		}
		// Keep the aggregate counter in sync with the variant counter.
		if err := decrementStock(tx, &models.Product{}, product.ID, item.Quantity); err != nil {
			return models.OrderItem{}, fmt.Errorf("%w: %s", err, product.EName)
		}
	} else {
		if err := decrementStock(tx, &models.Product{}, product.ID, item.Quantity); err != nil {
			return models.OrderItem{}, fmt.Errorf("%w: %s", err, product.EName)
		}
	}

	return models.OrderItem{
		ProductID:     product.ID,
		ProductEName:  product.EName,
		ProductARName: product.ARName,
		UnitPrice:     product.UnitPrice(),
		Quantity:      item.Quantity,
		Size:          item.Size,
		Color:         item.Color,
	}, nil
}

// decrementStock performs a conditional decrement: the row is only
// touched when it still holds enough stock, and the database serializes
// conflicting updates, so two concurrent checkouts cannot both take the
// last unit.
func decrementStock(tx *gorm.DB, model interface{}, id uint, qty int) error {
	res := tx.Model(model).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// IsInventoryError reports whether err is one of the typed inventory
// failures that should surface to the customer as-is.
func IsInventoryError(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrVariantNotFound) ||
		errors.Is(err, ErrInsufficientStock)
}
