package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectHeaders(t *testing.T) {
	t.Run("canonical headers", func(t *testing.T) {
		mapping := DetectHeaders([]string{"Name", "Quantity", "Unit", "Category", "Expiration Date", "Notes"})
		assert.Equal(t, HeaderMapping{
			"name": 0, "quantity": 1, "unit": 2, "category": 3, "expirationdate": 4, "notes": 5,
		}, mapping)
	})

	t.Run("alias headers", func(t *testing.T) {
		mapping := DetectHeaders([]string{"Product", "Qty", "UOM", "Type", "Best Before", "Remarks"})
		assert.Equal(t, HeaderMapping{
			"name": 0, "quantity": 1, "unit": 2, "category": 3, "expirationdate": 4, "notes": 5,
		}, mapping)
	})

	t.Run("substring match", func(t *testing.T) {
		mapping := DetectHeaders([]string{"Item Name", "Amount in stock"})
		assert.Equal(t, 0, mapping["name"])
		assert.Equal(t, 1, mapping["quantity"])
	})

	t.Run("first header wins per field", func(t *testing.T) {
		mapping := DetectHeaders([]string{"Qty", "Quantity"})
		assert.Equal(t, 0, mapping["quantity"])
	})

	t.Run("no name header falls back to first column", func(t *testing.T) {
		mapping := DetectHeaders([]string{"Thing", "Qty"})
		assert.Equal(t, 0, mapping["name"])
		assert.Equal(t, 1, mapping["quantity"])
	})

	t.Run("idempotent", func(t *testing.T) {
		headers := []string{"Product", "Qty", "Units", "Category"}
		assert.Equal(t, DetectHeaders(headers), DetectHeaders(headers))
	})
}

func TestMapRow(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	mapping := DetectHeaders([]string{"Name", "Qty", "Unit", "Category", "Expiry Date", "Notes"})

	t.Run("full row", func(t *testing.T) {
		draft := MapRow(mapping, []string{"Rice", "2.5", "kg", "Grains", "2025-06-01", "long grain"}, now)
		assert.Equal(t, "Rice", draft.Name)
		assert.Equal(t, 2.5, draft.Quantity)
		assert.Equal(t, "kg", draft.Unit)
		assert.Equal(t, "Grains", draft.Category)
		assert.Equal(t, "2025-06-01", draft.ExpirationDate)
		assert.Equal(t, "long grain", draft.Notes)
		assert.Equal(t, now, draft.AddedDate)
	})

	t.Run("defaults for missing cells", func(t *testing.T) {
		draft := MapRow(mapping, []string{""}, now)
		assert.Equal(t, "Unnamed", draft.Name)
		assert.Equal(t, 1.0, draft.Quantity)
		assert.Equal(t, "pieces", draft.Unit)
		assert.Equal(t, "Other", draft.Category)
		assert.Empty(t, draft.ExpirationDate)
	})

	t.Run("unparseable quantity defaults to one", func(t *testing.T) {
		draft := MapRow(mapping, []string{"Rice", "a few"}, now)
		assert.Equal(t, 1.0, draft.Quantity)
	})

	t.Run("unit matched case-insensitively", func(t *testing.T) {
		draft := MapRow(mapping, []string{"Milk", "1", "ML"}, now)
		assert.Equal(t, "mL", draft.Unit)
	})

	t.Run("unknown unit falls back to pieces", func(t *testing.T) {
		draft := MapRow(mapping, []string{"Eggs", "12", "boxes"}, now)
		assert.Equal(t, "pieces", draft.Unit)
	})

	t.Run("unknown category falls back to Other", func(t *testing.T) {
		draft := MapRow(mapping, []string{"Eggs", "12", "pieces", "Protein"}, now)
		assert.Equal(t, "Other", draft.Category)
	})

	t.Run("slash date normalized", func(t *testing.T) {
		draft := MapRow(mapping, []string{"Eggs", "12", "pieces", "Dairy", "06/01/2025"}, now)
		assert.Equal(t, "2025-06-01", draft.ExpirationDate)
	})

	t.Run("unparseable date dropped", func(t *testing.T) {
		draft := MapRow(mapping, []string{"Eggs", "12", "pieces", "Dairy", "next month"}, now)
		assert.Empty(t, draft.ExpirationDate)
	})
}

func TestNormalizeHeader(t *testing.T) {
	require.Equal(t, "expirydate", normalizeHeader("Expiry Date"))
	require.Equal(t, "expirydate", normalizeHeader("expiry_date"))
	require.Equal(t, "expirydate", normalizeHeader("Expiry-Date"))
}
