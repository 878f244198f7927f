package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// OrderItem is a snapshot of a cart line at assembly time. It is copied by
// value from the cart and never references live cart state.
type OrderItem struct {
	ID                  int64     `json:"id"`
	OrderID             uuid.UUID `json:"order_id"`
	ProductID           string    `json:"product_id"`
	Name                string    `json:"name"`
	VariantLabel        string    `json:"variant_label"`
	UnitPriceMinorUnits int64     `json:"unit_price_minor_units"`
	Quantity            int       `json:"quantity"`
}

// Order is immutable after creation except for Status and PaymentStatus.
// TotalMinorUnits is fixed from the snapshot lines at assembly time and is
// never recomputed from a live cart.
type Order struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Items            []OrderItem
	TotalMinorUnits  int64
	Status           OrderStatus
	PaymentStatus    PaymentStatus
	Shipping         ShippingAddress
	PaymentMethodRef string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
