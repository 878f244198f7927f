package models

import (
	"time"

	"github.com/google/uuid"
)

// LineItem is one purchasable unit in a cart. The (ProductID, VariantLabel)
// pair is the merge key: a cart never holds two line items sharing both.
type LineItem struct {
	ProductID           string `json:"product_id"`
	VariantLabel        string `json:"variant_label"`
	Name                string `json:"name"`
	UnitPriceMinorUnits int64  `json:"unit_price_minor_units"`
	Quantity            int    `json:"quantity"`
	ImageRef            string `json:"image_ref"`
}

// Subtotal is the line's contribution to the cart total, in minor units.
func (li LineItem) Subtotal() int64 {
	return li.UnitPriceMinorUnits * int64(li.Quantity)
}

// CartEntry is the persisted form of a cart line: just the merge key and
// quantity. Display data (name, price, image) is resolved from the catalog
// at read time, never stored.
type CartEntry struct {
	UserID    uuid.UUID
	ProductID string
	Variant   string
	Quantity  int
	UpdatedAt time.Time
}
