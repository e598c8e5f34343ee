package services

import (
	"fmt"

	"github.com/mburu1/ReceiptReprintApplication/app/logging"
	"github.com/mburu1/ReceiptReprintApplication/app/models"
)

// DuplicateMarker annotates repeated line items. Items are grouped by item
// lookup code; the first occurrence of each code stays unmarked, every
// later occurrence is flagged.
type DuplicateMarker struct {
	log logging.Logger
}

// NewDuplicateMarker creates a marker with the given logger.
func NewDuplicateMarker(log logging.Logger) *DuplicateMarker {
	return &DuplicateMarker{log: log}
}

// Mark returns a new annotated slice; the input is left untouched. The
// transform is idempotent: marking an already marked sequence changes
// nothing, because flags depend only on position and code.
func (m *DuplicateMarker) Mark(items []models.LineItem) []models.LineItem {
	if len(items) == 0 {
		return items
	}

	out := make([]models.LineItem, len(items))
	copy(out, items)

	seen := make(map[string]bool, len(out))
	for i := range out {
		code := out[i].ItemLookupCode
		if seen[code] {
			out[i].Duplicate = true
			m.log.Debug("Marked duplicate item", code)
		} else {
			seen[code] = true
			out[i].Duplicate = false
		}
	}

	m.log.Debug(fmt.Sprintf("Duplicate detection completed over %d items", len(out)))
	return out
}
