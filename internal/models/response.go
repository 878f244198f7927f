package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type CartResponse struct {
	Items           []LineItem `json:"items"`
	TotalMinorUnits int64      `json:"total_minor_units"`
}

type OrderResponse struct {
	ID               string          `json:"order_id"`
	Items            []OrderItem     `json:"items"`
	TotalMinorUnits  int64           `json:"total_minor_units"`
	Status           OrderStatus     `json:"status"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
	Shipping         ShippingAddress `json:"shipping"`
	PaymentMethodRef string          `json:"payment_method_ref"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type OrderSummary struct {
	ID              string        `json:"order_id"`
	TotalMinorUnits int64         `json:"total_minor_units"`
	Status          OrderStatus   `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
}

type OrderListResponse struct {
	Orders []OrderSummary `json:"orders"`
}

type NoteResponse struct {
	ID         string     `json:"id"`
	Content    string     `json:"content"`
	AuthorRole string     `json:"author_role"`
	Page       string     `json:"page"`
	PositionX  float64    `json:"position_x"`
	PositionY  float64    `json:"position_y"`
	Color      NoteColor  `json:"color"`
	Resolved   bool       `json:"resolved"`
	ResolvedBy string     `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewNoteResponse flattens the nullable resolution columns for JSON.
func NewNoteResponse(n *Note) NoteResponse {
	resp := NoteResponse{
		ID:         n.ID.String(),
		Content:    n.Content,
		AuthorRole: string(n.AuthorRole),
		Page:       n.Page,
		PositionX:  n.PositionX,
		PositionY:  n.PositionY,
		Color:      n.Color,
		Resolved:   n.Resolved,
		CreatedAt:  n.CreatedAt,
	}
	if n.ResolvedBy.Valid {
		resp.ResolvedBy = n.ResolvedBy.String
	}
	if n.ResolvedAt.Valid {
		t := n.ResolvedAt.Time
		resp.ResolvedAt = &t
	}
	return resp
}

type NoteListResponse struct {
	Notes []NoteResponse `json:"notes"`
}

type UploadResponse struct {
	ID               string       `json:"id"`
	ProductID        string       `json:"product_id"`
	OriginalFilename string       `json:"original_filename"`
	StoredFilename   string       `json:"stored_filename"`
	ImagePath        string       `json:"image_path"`
	MimeType         string       `json:"mime_type"`
	FileSize         int64        `json:"file_size"`
	SubmittedBy      string       `json:"submitted_by"`
	Status           UploadStatus `json:"status"`
	ReviewedBy       string       `json:"reviewed_by,omitempty"`
	ReviewNote       string       `json:"review_note,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

func NewUploadResponse(u *Upload) UploadResponse {
	resp := UploadResponse{
		ID:               u.ID.String(),
		ProductID:        u.ProductID,
		OriginalFilename: u.OriginalFilename,
		StoredFilename:   u.StoredFilename,
		ImagePath:        u.ImagePath,
		MimeType:         u.MimeType,
		FileSize:         u.FileSize,
		SubmittedBy:      u.SubmittedBy.String(),
		Status:           u.Status,
		CreatedAt:        u.CreatedAt,
	}
	if u.ReviewedBy.Valid {
		resp.ReviewedBy = u.ReviewedBy.String
	}
	if u.ReviewNote.Valid {
		resp.ReviewNote = u.ReviewNote.String
	}
	return resp
}

type UploadListResponse struct {
	Uploads []UploadResponse `json:"uploads"`
}
