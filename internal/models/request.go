package models

type UpsertCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Variant   string `json:"variant" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type OrderLineRequest struct {
	ProductID           string `json:"product_id" binding:"required"`
	VariantLabel        string `json:"variant_label" binding:"required"`
	Name                string `json:"name"`
	UnitPriceMinorUnits int64  `json:"unit_price_minor_units" binding:"min=0"`
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	ImageRef            string `json:"image_ref"`
}

type CreateOrderRequest struct {
	Items            []OrderLineRequest `json:"items" binding:"required,dive"`
	Shipping         ShippingAddress    `json:"shipping"`
	PaymentMethodRef string             `json:"payment_method_ref" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus PaymentStatus `json:"payment_status" binding:"required"`
}

type CreateNoteRequest struct {
	Content   string    `json:"content" binding:"required"`
	Page      string    `json:"page" binding:"required"`
	PositionX float64   `json:"position_x"`
	PositionY float64   `json:"position_y"`
	Color     NoteColor `json:"color" binding:"required"`
}

type ResolveNoteRequest struct {
	Resolved *bool `json:"resolved" binding:"required"`
}

type ReviewUploadRequest struct {
	Status     UploadStatus `json:"status" binding:"required"`
	ReviewNote string       `json:"review_note"`
}
