package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mburu1/ReceiptReprintApplication/app/logging"
	"github.com/mburu1/ReceiptReprintApplication/app/models"
)

func item(code string) models.LineItem {
	it, err := models.NewLineItem(code, "desc "+code, decimal.NewFromInt(1), decimal.NewFromInt(10), decimal.Zero)
	if err != nil {
		panic(err)
	}
	return it
}

func flags(items []models.LineItem) []bool {
	out := make([]bool, len(items))
	for i, it := range items {
		out[i] = it.Duplicate
	}
	return out
}

func TestMark_FirstOccurrenceUnflagged(t *testing.T) {
	marker := NewDuplicateMarker(logging.Nop{})
	items := []models.LineItem{item("A"), item("B"), item("A"), item("A"), item("B")}

	marked := marker.Mark(items)

	want := []bool{false, false, true, true, true}
	got := flags(marked)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("flags = %v, want %v", got, want)
		}
	}
}

func TestMark_PreservesOrderAndInput(t *testing.T) {
	marker := NewDuplicateMarker(logging.Nop{})
	items := []models.LineItem{item("A"), item("B"), item("A")}

	marked := marker.Mark(items)

	for i, it := range marked {
		if it.ItemLookupCode != items[i].ItemLookupCode {
			t.Fatalf("order changed at %d: %s", i, it.ItemLookupCode)
		}
	}
	for i, it := range items {
		if it.Duplicate {
			t.Fatalf("input slice mutated at %d", i)
		}
	}
}

func TestMark_Idempotent(t *testing.T) {
	marker := NewDuplicateMarker(logging.Nop{})
	items := []models.LineItem{item("A"), item("A"), item("B")}

	once := marker.Mark(items)
	twice := marker.Mark(once)

	first, second := flags(once), flags(twice)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("marking is not idempotent: %v vs %v", first, second)
		}
	}
}

func TestMark_Empty(t *testing.T) {
	marker := NewDuplicateMarker(logging.Nop{})
	if got := marker.Mark(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestMark_DuplicateShowsInDescription(t *testing.T) {
	marker := NewDuplicateMarker(logging.Nop{})
	marked := marker.Mark([]models.LineItem{item("A"), item("A")})

	if marked[0].DisplayDescription() != "desc A" {
		t.Fatalf("first occurrence description = %q", marked[0].DisplayDescription())
	}
	if marked[1].DisplayDescription() != "desc A (Duplicate)" {
		t.Fatalf("duplicate description = %q", marked[1].DisplayDescription())
	}
}
