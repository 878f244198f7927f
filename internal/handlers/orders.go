package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"canvas-art-backend/internal/database"
	"canvas-art-backend/internal/models"
	"canvas-art-backend/internal/orders"
)

type OrdersHandler struct {
	db *database.Client
}

func NewOrdersHandler(db *database.Client) *OrdersHandler {
	return &OrdersHandler{db: db}
}

// CreateOrder godoc
// @Summary     Place an order
// @Description Snapshots the submitted cart lines into an immutable order. Payment authorization happens upstream; the order is written with payment_status=pending and flipped to paid by a follow-up PATCH once the gateway confirms, so a crash between the two cannot mark an unpaid order as paid.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateOrderRequest true "Cart snapshot, shipping address and payment method reference"
// @Success     201 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	snapshot := make([]models.LineItem, len(req.Items))
	for i, line := range req.Items {
		snapshot[i] = models.LineItem{
			ProductID:           line.ProductID,
			VariantLabel:        line.VariantLabel,
			Name:                line.Name,
			UnitPriceMinorUnits: line.UnitPriceMinorUnits,
			Quantity:            line.Quantity,
			ImageRef:            line.ImageRef,
		}
	}

	order, err := orders.Assemble(userID, snapshot, req.Shipping, req.PaymentMethodRef)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	// Payment was already authorized upstream; losing the order here would
	// orphan that payment. The caller must not treat this as success.
	if err := h.db.CreateOrder(order); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to persist order",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, orderResponse(order))
}

// ListOrders godoc
// @Summary     List the caller's orders
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.OrderListResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.db.ListOrders(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list orders",
			Message: err.Error(),
		})
		return
	}

	summaries := make([]models.OrderSummary, len(list))
	for i, o := range list {
		summaries[i] = models.OrderSummary{
			ID:              o.ID.String(),
			TotalMinorUnits: o.TotalMinorUnits,
			Status:          o.Status,
			PaymentStatus:   o.PaymentStatus,
			CreatedAt:       o.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, models.OrderListResponse{Orders: summaries})
}

// GetOrder godoc
// @Summary     Get one order
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{order_id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	order, err := h.db.GetOrder(orderID, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderResponse(order))
}

// UpdateStatus godoc
// @Summary     Advance an order's status
// @Description Back-office fulfillment updates. Only forward edges are accepted: pending→processing→shipped→delivered, with cancelled reachable from pending or processing. Anything else is rejected with 409.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       request body models.UpdateOrderStatusRequest true "Target status"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /orders/{order_id}/status [patch]
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	order, err := h.db.GetOrderByID(orderID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if err := orders.TransitionStatus(order, req.Status); err != nil {
		writeDomainError(c, err)
		return
	}

	if err := h.db.UpdateOrderStatus(order.ID, order.Status); err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderResponse(order))
}

// UpdatePayment godoc
// @Summary     Advance an order's payment status
// @Description Allowed edges: pending→paid, pending→failed, paid→refunded. The pending→paid edge is the second half of checkout, run after the gateway confirms.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       request body models.UpdatePaymentStatusRequest true "Target payment status"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /orders/{order_id}/payment [patch]
func (h *OrdersHandler) UpdatePayment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	var req models.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	order, err := h.db.GetOrder(orderID, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if err := orders.TransitionPayment(order, req.PaymentStatus); err != nil {
		writeDomainError(c, err)
		return
	}

	if err := h.db.UpdateOrderPaymentStatus(order.ID, order.PaymentStatus); err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, orderResponse(order))
}

func orderResponse(order *models.Order) models.OrderResponse {
	return models.OrderResponse{
		ID:               order.ID.String(),
		Items:            order.Items,
		TotalMinorUnits:  order.TotalMinorUnits,
		Status:           order.Status,
		PaymentStatus:    order.PaymentStatus,
		Shipping:         order.Shipping,
		PaymentMethodRef: order.PaymentMethodRef,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}
