package cart

import "canvas-art-backend/internal/models"

// Store is the reducer-style cart state machine: a list of line items, a
// derived total, and a UI-only open flag. Every transition that touches
// items recomputes the total from scratch in the same step, so the total
// can never go stale. Transitions never fail; malformed input is a no-op
// so a stale removal request cannot wedge the cart.
//
// A Store has a single logical writer (one session's cart); it is not
// safe for concurrent use.
type Store struct {
	items  []models.LineItem
	total  int64
	isOpen bool
}

func NewStore() *Store {
	return &Store{}
}

// Items returns a copy of the current line items.
func (s *Store) Items() []models.LineItem {
	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Total() int64 {
	return s.total
}

func (s *Store) IsOpen() bool {
	return s.isOpen
}

// AddItem merges on (ProductID, VariantLabel): an existing line gets the
// summed quantity and the new item's display fields, so re-adding refreshes
// stale name/price/image data. No quantity ceiling is enforced here;
// inventory limits live with the catalog.
func (s *Store) AddItem(item models.LineItem) {
	if item.ProductID == "" || item.Quantity <= 0 {
		return
	}
	merged := false
	for i, existing := range s.items {
		if existing.ProductID == item.ProductID && existing.VariantLabel == item.VariantLabel {
			item.Quantity += existing.Quantity
			s.items[i] = item
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item)
	}
	s.recompute()
}

// RemoveItem deletes the matching line. No match is a no-op.
func (s *Store) RemoveItem(productID, variantLabel string) {
	for i, existing := range s.items {
		if existing.ProductID == productID && existing.VariantLabel == variantLabel {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.recompute()
}

// UpdateQuantity sets the matching line's quantity, floored at zero. A
// zero-quantity line stays in the list so the UI can still show it; it
// contributes nothing to the total.
func (s *Store) UpdateQuantity(productID, variantLabel string, quantity int) {
	if quantity < 0 {
		quantity = 0
	}
	for i, existing := range s.items {
		if existing.ProductID == productID && existing.VariantLabel == variantLabel {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.recompute()
}

// ToggleOpen flips the drawer flag; items and total are untouched.
func (s *Store) ToggleOpen() {
	s.isOpen = !s.isOpen
}

func (s *Store) Clear() {
	s.items = nil
	s.total = 0
}

// ReplaceAll overwrites the item list verbatim and recomputes the total.
// Used by the server sync; the open flag is left alone.
func (s *Store) ReplaceAll(items []models.LineItem) {
	s.items = make([]models.LineItem, len(items))
	copy(s.items, items)
	s.recompute()
}

func (s *Store) recompute() {
	var total int64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	s.total = total
}
