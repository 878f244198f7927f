package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"canvas-art-backend/internal/models"
	"canvas-art-backend/internal/moderation"
)

// Client is the direct Postgres access layer for carts, orders, notes and
// uploads. Each record is mutated independently; no invariant spans two
// distinct rows, so there is no cross-record locking.
type Client struct {
	db *sql.DB
}

func NewClient(connectionString string) (*Client, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

// --- carts ---

// UpsertCartEntry sets the quantity for a (user, product, variant) row.
// The primary key on that triple is what makes the merge key a database
// guarantee, not just a reducer convention.
func (c *Client) UpsertCartEntry(userID uuid.UUID, productID, variant string, quantity int) error {
	_, err := c.db.Exec(`
		INSERT INTO carts (user_id, product_id, variant, quantity, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, product_id, variant)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
	`, userID, productID, variant, quantity)
	if err != nil {
		return fmt.Errorf("failed to upsert cart entry: %w", err)
	}
	return nil
}

func (c *Client) DeleteCartEntry(userID uuid.UUID, productID, variant string) error {
	_, err := c.db.Exec(`
		DELETE FROM carts
		WHERE user_id = $1 AND product_id = $2 AND variant = $3
	`, userID, productID, variant)
	if err != nil {
		return fmt.Errorf("failed to delete cart entry: %w", err)
	}
	return nil
}

func (c *Client) ClearCart(userID uuid.UUID) error {
	_, err := c.db.Exec(`DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (c *Client) EntriesForUser(userID uuid.UUID) ([]models.CartEntry, error) {
	rows, err := c.db.Query(`
		SELECT user_id, product_id, variant, quantity, updated_at
		FROM carts
		WHERE user_id = $1
		ORDER BY updated_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart entries: %w", err)
	}
	defer rows.Close()

	var entries []models.CartEntry
	for rows.Next() {
		var entry models.CartEntry
		if err := rows.Scan(&entry.UserID, &entry.ProductID, &entry.Variant, &entry.Quantity, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cart entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// --- orders ---

// CreateOrder writes the order and its snapshot lines in one transaction.
func (c *Client) CreateOrder(order *models.Order) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO orders (id, user_id, total_minor_units, status, payment_status,
			shipping_street, shipping_city, shipping_state, shipping_zip, shipping_country,
			payment_method_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, order.ID, order.UserID, order.TotalMinorUnits, order.Status, order.PaymentStatus,
		order.Shipping.Street, order.Shipping.City, order.Shipping.State,
		order.Shipping.Zip, order.Shipping.Country,
		order.PaymentMethodRef, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.Exec(`
			INSERT INTO order_items (order_id, product_id, name, variant_label, unit_price_minor_units, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, item.OrderID, item.ProductID, item.Name, item.VariantLabel, item.UnitPriceMinorUnits, item.Quantity)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

func (c *Client) GetOrder(orderID, userID uuid.UUID) (*models.Order, error) {
	order, err := c.scanOrder(c.db.QueryRow(`
		SELECT id, user_id, total_minor_units, status, payment_status,
			shipping_street, shipping_city, shipping_state, shipping_zip, shipping_country,
			payment_method_ref, created_at, updated_at
		FROM orders
		WHERE id = $1 AND user_id = $2
	`, orderID, userID))
	if err != nil {
		return nil, err
	}
	if err := c.loadOrderItems(order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrderByID fetches an order without an ownership check. Back-office
// status updates go through this path; the route is admin-gated.
func (c *Client) GetOrderByID(orderID uuid.UUID) (*models.Order, error) {
	order, err := c.scanOrder(c.db.QueryRow(`
		SELECT id, user_id, total_minor_units, status, payment_status,
			shipping_street, shipping_city, shipping_state, shipping_zip, shipping_country,
			payment_method_ref, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID))
	if err != nil {
		return nil, err
	}
	if err := c.loadOrderItems(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (c *Client) scanOrder(row *sql.Row) (*models.Order, error) {
	var order models.Order
	err := row.Scan(
		&order.ID, &order.UserID, &order.TotalMinorUnits, &order.Status, &order.PaymentStatus,
		&order.Shipping.Street, &order.Shipping.City, &order.Shipping.State,
		&order.Shipping.Zip, &order.Shipping.Country,
		&order.PaymentMethodRef, &order.CreatedAt, &order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (c *Client) loadOrderItems(order *models.Order) error {
	rows, err := c.db.Query(`
		SELECT id, order_id, product_id, name, variant_label, unit_price_minor_units, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, order.ID)
	if err != nil {
		return fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.VariantLabel, &item.UnitPriceMinorUnits, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func (c *Client) ListOrders(userID uuid.UUID) ([]models.Order, error) {
	rows, err := c.db.Query(`
		SELECT id, user_id, total_minor_units, status, payment_status,
			shipping_street, shipping_city, shipping_state, shipping_zip, shipping_country,
			payment_method_ref, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID, &order.UserID, &order.TotalMinorUnits, &order.Status, &order.PaymentStatus,
			&order.Shipping.Street, &order.Shipping.City, &order.Shipping.State,
			&order.Shipping.Zip, &order.Shipping.Country,
			&order.PaymentMethodRef, &order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// UpdateOrderStatus writes a status already vetted by the order state
// machine. Line items and totals are never touched here.
func (c *Client) UpdateOrderStatus(orderID uuid.UUID, status models.OrderStatus) error {
	result, err := c.db.Exec(`
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return rowsAffectedOrNotFound(result, "order")
}

func (c *Client) UpdateOrderPaymentStatus(orderID uuid.UUID, status models.PaymentStatus) error {
	result, err := c.db.Exec(`
		UPDATE orders
		SET payment_status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, orderID)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return rowsAffectedOrNotFound(result, "order")
}

// --- notes ---

func (c *Client) InsertNote(note *models.Note) error {
	_, err := c.db.Exec(`
		INSERT INTO notes (id, content, author_id, author_role, page, position_x, position_y, color, resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, note.ID, note.Content, note.AuthorID, note.AuthorRole, note.Page,
		note.PositionX, note.PositionY, note.Color, note.Resolved, note.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

func (c *Client) GetNote(noteID uuid.UUID) (*models.Note, error) {
	var note models.Note
	err := c.db.QueryRow(`
		SELECT id, content, author_id, author_role, page, position_x, position_y,
			color, resolved, resolved_by, resolved_at, created_at
		FROM notes
		WHERE id = $1
	`, noteID).Scan(
		&note.ID, &note.Content, &note.AuthorID, &note.AuthorRole, &note.Page,
		&note.PositionX, &note.PositionY, &note.Color, &note.Resolved,
		&note.ResolvedBy, &note.ResolvedAt, &note.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("note: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &note, nil
}

func (c *Client) ListNotes(filter moderation.NoteFilter) ([]models.Note, error) {
	query := `
		SELECT id, content, author_id, author_role, page, position_x, position_y,
			color, resolved, resolved_by, resolved_at, created_at
		FROM notes
		WHERE 1=1
	`
	args := []interface{}{}
	if filter.Page != "" {
		args = append(args, filter.Page)
		query += fmt.Sprintf(" AND page = $%d", len(args))
	}
	if filter.Resolved != nil {
		args = append(args, *filter.Resolved)
		query += fmt.Sprintf(" AND resolved = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var note models.Note
		err := rows.Scan(
			&note.ID, &note.Content, &note.AuthorID, &note.AuthorRole, &note.Page,
			&note.PositionX, &note.PositionY, &note.Color, &note.Resolved,
			&note.ResolvedBy, &note.ResolvedAt, &note.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// UpdateNoteResolution writes resolved, resolved_by and resolved_at in a
// single statement so they can never drift apart.
func (c *Client) UpdateNoteResolution(note *models.Note) error {
	result, err := c.db.Exec(`
		UPDATE notes
		SET resolved = $1, resolved_by = $2, resolved_at = $3
		WHERE id = $4
	`, note.Resolved, note.ResolvedBy, note.ResolvedAt, note.ID)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return rowsAffectedOrNotFound(result, "note")
}

func (c *Client) DeleteNote(noteID uuid.UUID) error {
	result, err := c.db.Exec(`DELETE FROM notes WHERE id = $1`, noteID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return rowsAffectedOrNotFound(result, "note")
}

// --- uploads ---

func (c *Client) InsertUpload(upload *models.Upload) error {
	_, err := c.db.Exec(`
		INSERT INTO uploads (id, product_id, original_filename, stored_filename, image_path,
			mime_type, file_size, submitted_by, status, reviewed_by, review_note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, upload.ID, upload.ProductID, upload.OriginalFilename, upload.StoredFilename, upload.ImagePath,
		upload.MimeType, upload.FileSize, upload.SubmittedBy, upload.Status,
		upload.ReviewedBy, upload.ReviewNote, upload.CreatedAt, upload.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert upload: %w", err)
	}
	return nil
}

func (c *Client) GetUpload(uploadID uuid.UUID) (*models.Upload, error) {
	var upload models.Upload
	err := c.db.QueryRow(`
		SELECT id, product_id, original_filename, stored_filename, image_path,
			mime_type, file_size, submitted_by, status, reviewed_by, review_note, created_at, updated_at
		FROM uploads
		WHERE id = $1
	`, uploadID).Scan(
		&upload.ID, &upload.ProductID, &upload.OriginalFilename, &upload.StoredFilename, &upload.ImagePath,
		&upload.MimeType, &upload.FileSize, &upload.SubmittedBy, &upload.Status,
		&upload.ReviewedBy, &upload.ReviewNote, &upload.CreatedAt, &upload.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("upload: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	return &upload, nil
}

// ListUploads applies the role scoping carried in the filter inside the
// query itself: when SubmittedBy is set, other users' rows never leave the
// database.
func (c *Client) ListUploads(filter moderation.UploadFilter) ([]models.Upload, error) {
	query := `
		SELECT id, product_id, original_filename, stored_filename, image_path,
			mime_type, file_size, submitted_by, status, reviewed_by, review_note, created_at, updated_at
		FROM uploads
		WHERE 1=1
	`
	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.SubmittedBy != nil {
		args = append(args, *filter.SubmittedBy)
		query += fmt.Sprintf(" AND submitted_by = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer rows.Close()

	var uploads []models.Upload
	for rows.Next() {
		var upload models.Upload
		err := rows.Scan(
			&upload.ID, &upload.ProductID, &upload.OriginalFilename, &upload.StoredFilename, &upload.ImagePath,
			&upload.MimeType, &upload.FileSize, &upload.SubmittedBy, &upload.Status,
			&upload.ReviewedBy, &upload.ReviewNote, &upload.CreatedAt, &upload.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		uploads = append(uploads, upload)
	}

	return uploads, rows.Err()
}

func (c *Client) UpdateUploadReview(upload *models.Upload) error {
	result, err := c.db.Exec(`
		UPDATE uploads
		SET status = $1, reviewed_by = $2, review_note = $3, updated_at = $4
		WHERE id = $5
	`, upload.Status, upload.ReviewedBy, upload.ReviewNote, upload.UpdatedAt, upload.ID)
	if err != nil {
		return fmt.Errorf("failed to update upload: %w", err)
	}
	return rowsAffectedOrNotFound(result, "upload")
}

func rowsAffectedOrNotFound(result sql.Result, kind string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", kind, models.ErrNotFound)
	}
	return nil
}
