package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"canvas-art-backend/internal/models"
)

// ErrInvalidTransition marks a status write that is not an allowed edge of
// the order state machine.
var ErrInvalidTransition = errors.New("invalid status transition")

// Assemble snapshots a finalized cart into an immutable order. Lines are
// copied by value and the total is computed from the copies, so later cart
// mutations cannot touch the order. Status and payment status both start
// at pending: payment is flipped to paid by the caller only after the
// gateway confirms, so a crash between authorization and the order write
// cannot silently mark an unpaid order as paid.
func Assemble(userID uuid.UUID, snapshot []models.LineItem, shipping models.ShippingAddress, paymentMethodRef string) (*models.Order, error) {
	if len(snapshot) == 0 {
		return nil, fmt.Errorf("%w: cart snapshot is empty", models.ErrValidation)
	}
	if paymentMethodRef == "" {
		return nil, fmt.Errorf("%w: payment method reference is required", models.ErrValidation)
	}
	if err := validateShipping(shipping); err != nil {
		return nil, err
	}

	orderID := uuid.New()
	items := make([]models.OrderItem, 0, len(snapshot))
	var total int64
	for _, line := range snapshot {
		if line.Quantity <= 0 {
			continue
		}
		if line.UnitPriceMinorUnits < 0 {
			return nil, fmt.Errorf("%w: negative unit price for product %s", models.ErrValidation, line.ProductID)
		}
		item := models.OrderItem{
			OrderID:             orderID,
			ProductID:           line.ProductID,
			Name:                line.Name,
			VariantLabel:        line.VariantLabel,
			UnitPriceMinorUnits: line.UnitPriceMinorUnits,
			Quantity:            line.Quantity,
		}
		items = append(items, item)
		total += line.Subtotal()
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart snapshot has no purchasable lines", models.ErrValidation)
	}

	now := time.Now().UTC()
	return &models.Order{
		ID:               orderID,
		UserID:           userID,
		Items:            items,
		TotalMinorUnits:  total,
		Status:           models.OrderStatusPending,
		PaymentStatus:    models.PaymentStatusPending,
		Shipping:         shipping,
		PaymentMethodRef: paymentMethodRef,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func validateShipping(addr models.ShippingAddress) error {
	fields := []struct {
		name  string
		value string
	}{
		{"street", addr.Street},
		{"city", addr.City},
		{"state", addr.State},
		{"zip", addr.Zip},
		{"country", addr.Country},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: missing shipping field %q", models.ErrValidation, f.name)
		}
	}
	return nil
}

// statusEdges are the only allowed order status transitions. Delivered and
// cancelled are terminal.
var statusEdges = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

// paymentEdges mirror the same pattern for payment status. Failed and
// refunded are terminal.
var paymentEdges = map[models.PaymentStatus][]models.PaymentStatus{
	models.PaymentStatusPending: {models.PaymentStatusPaid, models.PaymentStatusFailed},
	models.PaymentStatusPaid:    {models.PaymentStatusRefunded},
}

// CanTransition reports whether from → to is an allowed status edge.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range statusEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionStatus advances the order's status along an allowed edge or
// rejects the write with ErrInvalidTransition. No edge returns to an
// earlier state.
func TransitionStatus(order *models.Order, to models.OrderStatus) error {
	if !CanTransition(order.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, to)
	}
	order.Status = to
	order.UpdatedAt = time.Now().UTC()
	return nil
}

// CanTransitionPayment reports whether from → to is an allowed payment edge.
func CanTransitionPayment(from, to models.PaymentStatus) bool {
	for _, next := range paymentEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionPayment advances the payment status or rejects the write with
// ErrInvalidTransition.
func TransitionPayment(order *models.Order, to models.PaymentStatus) error {
	if !CanTransitionPayment(order.PaymentStatus, to) {
		return fmt.Errorf("%w: payment %s -> %s", ErrInvalidTransition, order.PaymentStatus, to)
	}
	order.PaymentStatus = to
	order.UpdatedAt = time.Now().UTC()
	return nil
}
