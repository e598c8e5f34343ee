package models

import (
	"testing"
	"time"
)

func TestRowAccessors_Defaults(t *testing.T) {
	row := Row{"Null": nil}

	if row.Has("Null") || row.Has("Missing") {
		t.Fatal("null and missing columns must read as absent")
	}
	if row.String("Missing") != "" {
		t.Fatal("missing string should be empty")
	}
	if row.Int("Missing") != 0 {
		t.Fatal("missing int should be zero")
	}
	if !row.Decimal("Missing").IsZero() {
		t.Fatal("missing decimal should be zero")
	}
	if !row.Time("Missing").IsZero() {
		t.Fatal("missing time should be zero")
	}
}

func TestRowAccessors_DriverTypes(t *testing.T) {
	when := time.Date(2023, 5, 12, 14, 30, 0, 0, time.UTC)
	row := Row{
		"Name":  []byte("Alice"),
		"Store": int64(7),
		"Qty":   2.0,
		"Price": []byte("10.50"),
		"Time":  when,
	}

	if row.String("Name") != "Alice" {
		t.Fatalf("name = %q", row.String("Name"))
	}
	if row.Int("Store") != 7 {
		t.Fatalf("store = %d", row.Int("Store"))
	}
	if row.Decimal("Qty").StringFixed(0) != "2" {
		t.Fatalf("qty = %s", row.Decimal("Qty"))
	}
	if row.Decimal("Price").StringFixed(2) != "10.50" {
		t.Fatalf("price = %s", row.Decimal("Price"))
	}
	if !row.Time("Time").Equal(when) {
		t.Fatalf("time = %v", row.Time("Time"))
	}
}

func TestResultSetEmptyAndFirst(t *testing.T) {
	var nilSet *ResultSet
	if !nilSet.Empty() {
		t.Fatal("nil set is empty")
	}

	empties := &ResultSet{Batches: [][]Row{{}, {}}}
	if !empties.Empty() {
		t.Fatal("batches of no rows are empty")
	}
	if _, ok := empties.First(); ok {
		t.Fatal("First on empty set")
	}

	rs := &ResultSet{Batches: [][]Row{{}, {Row{"A": 1}}}}
	if rs.Empty() {
		t.Fatal("set with a row is not empty")
	}
	first, ok := rs.First()
	if !ok || !first.Has("A") {
		t.Fatalf("First skipped the empty batch incorrectly: %v %v", first, ok)
	}
}
