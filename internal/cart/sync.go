package cart

import (
	"fmt"

	"github.com/google/uuid"

	"canvas-art-backend/internal/catalog"
	"canvas-art-backend/internal/models"
)

// EntryRepository reads a user's persisted cart rows.
type EntryRepository interface {
	EntriesForUser(userID uuid.UUID) ([]models.CartEntry, error)
}

// ProductLookup resolves current display data for a product.
type ProductLookup interface {
	GetProduct(productID string) (*catalog.Product, error)
}

// Sync reconciles a Store with the server-side cart around authentication
// transitions. The refresh is one-directional (server wins via ReplaceAll);
// there is no merge with local state and no version field to detect
// concurrent edits from a second session. Last writer wins.
type Sync struct {
	store   *Store
	entries EntryRepository
	lookup  ProductLookup
}

func NewSync(store *Store, entries EntryRepository, lookup ProductLookup) *Sync {
	return &Sync{
		store:   store,
		entries: entries,
		lookup:  lookup,
	}
}

// OnAuthenticated refreshes the store from the caller's persisted cart,
// resolving display data per product from the catalog. On any failure the
// store is left exactly as it was — the refresh fails open to whatever the
// session already had, and the error is only for logging.
func (s *Sync) OnAuthenticated(userID uuid.UUID) error {
	entries, err := s.entries.EntriesForUser(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch persisted cart: %w", err)
	}

	items := make([]models.LineItem, 0, len(entries))
	for _, entry := range entries {
		product, err := s.lookup.GetProduct(entry.ProductID)
		if err != nil {
			return fmt.Errorf("failed to resolve product %s: %w", entry.ProductID, err)
		}
		items = append(items, models.LineItem{
			ProductID:           entry.ProductID,
			VariantLabel:        entry.Variant,
			Name:                product.Name,
			UnitPriceMinorUnits: product.UnitPriceMinorUnits,
			Quantity:            entry.Quantity,
			ImageRef:            product.ImageRef,
		})
	}

	s.store.ReplaceAll(items)
	return nil
}

// OnLoggedOut clears the store. An anonymous cart has no persistence
// target, so local state is not preserved across logout.
func (s *Sync) OnLoggedOut() {
	s.store.Clear()
}
