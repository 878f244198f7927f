package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"canvas-art-backend/internal/cart"
	"canvas-art-backend/internal/catalog"
	"canvas-art-backend/internal/database"
	"canvas-art-backend/internal/models"
)

type CartHandler struct {
	db      *database.Client
	catalog *catalog.Client
}

func NewCartHandler(db *database.Client, catalogClient *catalog.Client) *CartHandler {
	return &CartHandler{
		db:      db,
		catalog: catalogClient,
	}
}

// GetCart godoc
// @Summary     Get the caller's cart
// @Description Returns the persisted cart with display data resolved from the catalog. This is the refresh a client runs after login.
// @Tags        cart
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.CartResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	store := cart.NewStore()
	sync := cart.NewSync(store, h.db, h.catalog)

	// The catalog is the flaky half of the refresh. A failed refresh never
	// touches the store, so the whole operation is safe to retry.
	err := h.catalog.RetryWithBackoff(func() error {
		return sync.OnAuthenticated(userID)
	}, 3)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "failed to load cart",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.CartResponse{
		Items:           store.Items(),
		TotalMinorUnits: store.Total(),
	})
}

// UpsertItem godoc
// @Summary     Set a cart line
// @Description Upserts the quantity for a (product, variant) pair. The carts table keys on that pair, so two lines can never share it.
// @Tags        cart
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UpsertCartItemRequest true "Cart line"
// @Success     204
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /cart/items [put]
func (h *CartHandler) UpsertItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.UpsertCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.db.UpsertCartEntry(userID, req.ProductID, req.Variant, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save cart entry",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteItem godoc
// @Summary     Remove a cart line
// @Tags        cart
// @Produce     json
// @Security    Bearer
// @Param       product_id path string true "Product ID"
// @Param       variant path string true "Variant label"
// @Success     204
// @Failure     401 {object} models.ErrorResponse
// @Router      /cart/items/{product_id}/{variant} [delete]
func (h *CartHandler) DeleteItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	productID := c.Param("product_id")
	variant := c.Param("variant")

	// Removing an absent line is a no-op, matching the cart's permissive
	// policy: a stale delete never surfaces as a failure.
	if err := h.db.DeleteCartEntry(userID, productID, variant); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete cart entry",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearCart godoc
// @Summary     Clear the caller's cart
// @Description Deletes every persisted line. Run on logout and after a successful order.
// @Tags        cart
// @Produce     json
// @Security    Bearer
// @Success     204
// @Failure     401 {object} models.ErrorResponse
// @Router      /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.db.ClearCart(userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to clear cart",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
