package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"canvas-art-backend/internal/cart"
	"canvas-art-backend/internal/models"
)

func lineItem(productID, variant string, price int64, qty int) models.LineItem {
	return models.LineItem{
		ProductID:           productID,
		VariantLabel:        variant,
		Name:                "Sunset Over Harbor",
		UnitPriceMinorUnits: price,
		Quantity:            qty,
		ImageRef:            "images/sunset.jpg",
	}
}

// recomputedTotal is the invariant every reachable state must satisfy.
func recomputedTotal(s *cart.Store) int64 {
	var total int64
	for _, item := range s.Items() {
		total += item.UnitPriceMinorUnits * int64(item.Quantity)
	}
	return total
}

func TestAddItem_MergesOnProductAndVariant(t *testing.T) {
	s := cart.NewStore()

	s.AddItem(lineItem("7", "16x20", 26000, 1))
	s.AddItem(lineItem("7", "16x20", 26000, 2))

	items := s.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, int64(78000), s.Total())
}

func TestAddItem_DistinctVariantsDoNotMerge(t *testing.T) {
	s := cart.NewStore()

	s.AddItem(lineItem("7", "16x20", 26000, 1))
	s.AddItem(lineItem("7", "24x36", 29000, 1))

	assert.Len(t, s.Items(), 2)
	assert.Equal(t, int64(55000), s.Total())
}

func TestAddItem_MergeRefreshesDisplayData(t *testing.T) {
	s := cart.NewStore()

	stale := lineItem("7", "16x20", 26000, 1)
	stale.Name = "Old Title"
	s.AddItem(stale)

	fresh := lineItem("7", "16x20", 27500, 1)
	fresh.Name = "New Title"
	s.AddItem(fresh)

	items := s.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "New Title", items[0].Name)
	assert.Equal(t, int64(27500), items[0].UnitPriceMinorUnits)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(55000), s.Total())
}

func TestAddItem_NoDuplicateKeysUnderAnySequence(t *testing.T) {
	s := cart.NewStore()

	adds := []models.LineItem{
		lineItem("7", "16x20", 26000, 1),
		lineItem("9", "16x20", 18000, 2),
		lineItem("7", "24x36", 29000, 1),
		lineItem("7", "16x20", 26000, 4),
		lineItem("9", "16x20", 18000, 1),
	}
	for _, item := range adds {
		s.AddItem(item)
	}

	seen := map[[2]string]int{}
	for _, item := range s.Items() {
		seen[[2]string{item.ProductID, item.VariantLabel}]++
	}
	for key, count := range seen {
		assert.Equal(t, 1, count, "duplicate line for %v", key)
	}

	// Quantities sum per key
	byKey := map[[2]string]int{}
	for _, item := range s.Items() {
		byKey[[2]string{item.ProductID, item.VariantLabel}] = item.Quantity
	}
	assert.Equal(t, 5, byKey[[2]string{"7", "16x20"}])
	assert.Equal(t, 3, byKey[[2]string{"9", "16x20"}])
	assert.Equal(t, 1, byKey[[2]string{"7", "24x36"}])

	assert.Equal(t, recomputedTotal(s), s.Total())
}

func TestRemoveItem(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(lineItem("7", "16x20", 26000, 1))
	s.AddItem(lineItem("7", "24x36", 29000, 1))

	s.RemoveItem("7", "16x20")

	assert.Len(t, s.Items(), 1)
	assert.Equal(t, int64(29000), s.Total())
}

func TestRemoveItem_MissingIsNoOp(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(lineItem("7", "16x20", 26000, 2))

	s.RemoveItem("7", "8x10")
	s.RemoveItem("999", "16x20")

	assert.Len(t, s.Items(), 1)
	assert.Equal(t, int64(52000), s.Total())
}

func TestUpdateQuantity(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(lineItem("7", "16x20", 26000, 1))

	s.UpdateQuantity("7", "16x20", 5)

	assert.Equal(t, 5, s.Items()[0].Quantity)
	assert.Equal(t, int64(130000), s.Total())
}

func TestUpdateQuantity_ZeroKeepsLineButContributesNothing(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(lineItem("7", "16x20", 26000, 2))
	s.AddItem(lineItem("7", "24x36", 29000, 1))

	s.UpdateQuantity("7", "16x20", 0)

	// The zero-quantity line stays visible to the UI, distinct from absent.
	assert.Len(t, s.Items(), 2)
	assert.Equal(t, int64(29000), s.Total())
}

func TestUpdateQuantity_NegativeFlooredAtZero(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(lineItem("7", "16x20", 26000, 2))

	s.UpdateQuantity("7", "16x20", -3)

	assert.Equal(t, 0, s.Items()[0].Quantity)
	assert.Equal(t, int64(0), s.Total())
}

func TestToggleOpen_DoesNotTouchItems(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(lineItem("7", "16x20", 26000, 1))

	assert.False(t, s.IsOpen())
	s.ToggleOpen()
	assert.True(t, s.IsOpen())
	s.ToggleOpen()
	assert.False(t, s.IsOpen())

	assert.Len(t, s.Items(), 1)
	assert.Equal(t, int64(26000), s.Total())
}

func TestClear(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(lineItem("7", "16x20", 26000, 1))
	s.ToggleOpen()

	s.Clear()

	assert.Empty(t, s.Items())
	assert.Equal(t, int64(0), s.Total())
	// The drawer flag is UI state, untouched by Clear.
	assert.True(t, s.IsOpen())
}

func TestReplaceAll(t *testing.T) {
	s := cart.NewStore()
	s.AddItem(lineItem("1", "8x10", 12000, 3))

	s.ReplaceAll([]models.LineItem{
		lineItem("7", "16x20", 26000, 1),
		lineItem("7", "24x36", 29000, 1),
	})

	assert.Len(t, s.Items(), 2)
	assert.Equal(t, int64(55000), s.Total())
}

func TestAddItem_InvalidInputIsNoOp(t *testing.T) {
	s := cart.NewStore()

	s.AddItem(models.LineItem{ProductID: "", Quantity: 1})
	s.AddItem(lineItem("7", "16x20", 26000, 0))
	s.AddItem(lineItem("7", "16x20", 26000, -2))

	assert.Empty(t, s.Items())
	assert.Equal(t, int64(0), s.Total())
}

func TestTotalInvariant_AcrossTransitionSequence(t *testing.T) {
	s := cart.NewStore()

	s.AddItem(lineItem("7", "16x20", 26000, 1))
	assert.Equal(t, recomputedTotal(s), s.Total())

	s.AddItem(lineItem("9", "12x12", 15000, 4))
	assert.Equal(t, recomputedTotal(s), s.Total())

	s.UpdateQuantity("9", "12x12", 2)
	assert.Equal(t, recomputedTotal(s), s.Total())

	s.RemoveItem("7", "16x20")
	assert.Equal(t, recomputedTotal(s), s.Total())

	s.ReplaceAll([]models.LineItem{lineItem("3", "20x30", 31000, 2)})
	assert.Equal(t, recomputedTotal(s), s.Total())

	s.Clear()
	assert.Equal(t, int64(0), s.Total())
}
