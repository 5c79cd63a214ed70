package importer

import (
	"strconv"
	"strings"
	"time"

	"pantry-tracker/domain"
)

// Canonical field names, in mapping priority order. When two headers both
// match the same field the first header wins.
var fieldOrder = []string{"name", "quantity", "unit", "category", "expirationdate", "notes"}

// Header aliases per field. A header matches when its normalized form equals
// an alias or contains it as a substring, and the first alias list that
// matches claims the header.
var fieldAliases = map[string][]string{
	"name":           {"name", "item", "product", "ingredient"},
	"quantity":       {"quantity", "qty", "amount"},
	"unit":           {"unit", "units", "uom"},
	"category":       {"category", "type", "cat"},
	"expirationdate": {"expirationdate", "expiry", "expiration", "expirydate", "expdate", "bestbefore"},
	"notes":          {"notes", "note", "comments", "remarks"},
}

// HeaderMapping maps canonical field names to column indexes in the sheet.
type HeaderMapping map[string]int

// normalizeHeader lowercases and strips all whitespace so "Expiry Date",
// "expiry_date" and "ExpiryDate" all normalize comparably.
func normalizeHeader(header string) string {
	lower := strings.ToLower(header)
	lower = strings.ReplaceAll(lower, " ", "")
	lower = strings.ReplaceAll(lower, "\t", "")
	lower = strings.ReplaceAll(lower, "_", "")
	lower = strings.ReplaceAll(lower, "-", "")
	return lower
}

// DetectHeaders resolves each header cell to at most one canonical field.
// Fields already claimed by an earlier column keep their first match. When
// no header maps to the name field, the first column is used for names.
func DetectHeaders(headers []string) HeaderMapping {
	mapping := HeaderMapping{}

	for col, header := range headers {
		normalized := normalizeHeader(header)
		if normalized == "" {
			continue
		}
		for _, field := range fieldOrder {
			if _, claimed := mapping[field]; claimed {
				continue
			}
			if matchesField(normalized, fieldAliases[field]) {
				mapping[field] = col
				break
			}
		}
	}

	if _, ok := mapping["name"]; !ok && len(headers) > 0 {
		mapping["name"] = 0
	}
	return mapping
}

func matchesField(normalized string, aliases []string) bool {
	for _, alias := range aliases {
		if normalized == alias || strings.Contains(normalized, alias) {
			return true
		}
	}
	return false
}

// MapRow converts one data row into a draft item using the detected header
// mapping. Every field degrades to a usable default instead of failing:
// missing name becomes "Unnamed", unparseable quantity becomes 1, unknown
// units and categories fall back to "pieces" and "Other".
func MapRow(mapping HeaderMapping, row []string, now time.Time) domain.PantryItemDraft {
	draft := domain.PantryItemDraft{
		Name:      "Unnamed",
		Quantity:  1,
		Unit:      "pieces",
		Category:  "Other",
		AddedDate: now,
	}

	if name := strings.TrimSpace(cellAt(row, mapping, "name")); name != "" {
		draft.Name = name
	}
	if raw := strings.TrimSpace(cellAt(row, mapping, "quantity")); raw != "" {
		if qty, err := strconv.ParseFloat(raw, 64); err == nil && qty > 0 {
			draft.Quantity = qty
		}
	}
	if unit := normalizeUnit(cellAt(row, mapping, "unit")); unit != "" {
		draft.Unit = unit
	}
	if category := normalizeCategory(cellAt(row, mapping, "category")); category != "" {
		draft.Category = category
	}
	if raw := strings.TrimSpace(cellAt(row, mapping, "expirationdate")); raw != "" {
		if date, ok := parseSheetDate(raw); ok {
			draft.ExpirationDate = date
		}
	}
	draft.Notes = strings.TrimSpace(cellAt(row, mapping, "notes"))

	return draft
}

func cellAt(row []string, mapping HeaderMapping, field string) string {
	col, ok := mapping[field]
	if !ok || col >= len(row) {
		return ""
	}
	return row[col]
}

// normalizeUnit matches the fixed unit list case-insensitively and returns
// the canonical spelling, or "" when the cell is empty or unrecognized.
func normalizeUnit(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, unit := range domain.PantryUnits {
		if strings.EqualFold(trimmed, unit) {
			return unit
		}
	}
	return ""
}

func normalizeCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, category := range domain.PantryCategories {
		if strings.EqualFold(trimmed, category) {
			return category
		}
	}
	return ""
}

var sheetDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// parseSheetDate accepts the date spellings spreadsheets commonly emit and
// normalizes them to YYYY-MM-DD. Unparseable dates are dropped, leaving the
// item without an expiry rather than failing the row.
func parseSheetDate(raw string) (string, bool) {
	for _, layout := range sheetDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
