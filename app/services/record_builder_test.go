package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mburu1/ReceiptReprintApplication/app/logging"
	"github.com/mburu1/ReceiptReprintApplication/app/models"
)

type fakeTransactionSource struct {
	rows       *models.ResultSet
	rowsErr    error
	storeID    int
	storeErr   error
	storeCalls int
}

func (f *fakeTransactionSource) TransactionRows(ctx context.Context, transactionNumber int) (*models.ResultSet, error) {
	return f.rows, f.rowsErr
}

func (f *fakeTransactionSource) TransactionStoreID(ctx context.Context, transactionNumber int) (int, error) {
	f.storeCalls++
	return f.storeID, f.storeErr
}

func itemRow(code, desc string, qty, price, tax float64) models.Row {
	return models.Row{
		"Time":           time.Date(2023, 5, 12, 14, 30, 0, 0, time.UTC),
		"Name":           "Alice",
		"Register":       "01",
		"GrandTotal":     42.50,
		"StoreID":        int64(7),
		"ItemLookupCode": code,
		"Description":    desc,
		"quantity":       qty,
		"Price":          price,
		"SalesTax":       tax,
	}
}

func TestBuild_ItemsFirstShape(t *testing.T) {
	rs := &models.ResultSet{Batches: [][]models.Row{{
		itemRow("SKU1", "Face cream", 2, 10, 1),
		itemRow("SKU2", "Lip balm", 1, 20.50, 0.50),
	}}}

	builder := NewRecordBuilder(logging.Nop{})
	record, err := builder.Build(context.Background(), 1001, rs, &fakeTransactionSource{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil {
		t.Fatal("expected a record")
	}
	if record.TransactionNumber != 1001 || record.CashierName != "Alice" || record.RegisterNumber != "01" {
		t.Fatalf("header misread: %+v", record)
	}
	if record.StoreID != 7 {
		t.Fatalf("store id = %d, want 7", record.StoreID)
	}
	if len(record.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(record.Items))
	}
	if record.Items[0].ItemLookupCode != "SKU1" || record.Items[1].ItemLookupCode != "SKU2" {
		t.Fatalf("item order lost: %+v", record.Items)
	}
	if !record.GrandTotal.Equal(decimal.NewFromFloat(42.50)) {
		t.Fatalf("grand total = %s, want 42.50", record.GrandTotal)
	}
}

func TestBuild_HeaderFirstShape(t *testing.T) {
	header := models.Row{
		"Time":       time.Date(2023, 5, 12, 14, 30, 0, 0, time.UTC),
		"Name":       "Bob",
		"Register":   "02",
		"GrandTotal": 10.0,
		"StoreID":    int64(3),
	}
	rs := &models.ResultSet{Batches: [][]models.Row{
		{header},
		{itemRow("SKU9", "Soap", 1, 10, 0)},
	}}

	builder := NewRecordBuilder(logging.Nop{})
	record, err := builder.Build(context.Background(), 55, rs, &fakeTransactionSource{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.CashierName != "Bob" || record.StoreID != 3 {
		t.Fatalf("header misread: %+v", record)
	}
	if len(record.Items) != 1 || record.Items[0].ItemLookupCode != "SKU9" {
		t.Fatalf("items misread: %+v", record.Items)
	}
}

func TestBuild_HeaderFirstWithoutItemBatch(t *testing.T) {
	rs := &models.ResultSet{Batches: [][]models.Row{{
		models.Row{"Name": "Carol", "Register": "03", "GrandTotal": 5.0},
	}}}

	builder := NewRecordBuilder(logging.Nop{})
	record, err := builder.Build(context.Background(), 56, rs, &fakeTransactionSource{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil || len(record.Items) != 0 {
		t.Fatalf("expected a record with no items, got %+v", record)
	}
}

func TestBuild_EmptyResultYieldsNil(t *testing.T) {
	builder := NewRecordBuilder(logging.Nop{})

	for _, rs := range []*models.ResultSet{
		{},
		{Batches: [][]models.Row{{}}},
	} {
		record, err := builder.Build(context.Background(), 1, rs, &fakeTransactionSource{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record != nil {
			t.Fatalf("expected nil record for empty result, got %+v", record)
		}
	}
}

func TestBuild_MissingColumnsDefaultToZero(t *testing.T) {
	rs := &models.ResultSet{Batches: [][]models.Row{{
		models.Row{"ItemLookupCode": "SKU1", "Description": "Thing", "quantity": 1.0, "Price": 2.0, "SalesTax": 0.0},
	}}}

	builder := NewRecordBuilder(logging.Nop{})
	record, err := builder.Build(context.Background(), 9, rs, &fakeTransactionSource{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.CashierName != "" || record.RegisterNumber != "" {
		t.Fatalf("missing columns should read empty, got %+v", record)
	}
	if !record.TransactionTime.IsZero() {
		t.Fatalf("missing time should be zero, got %v", record.TransactionTime)
	}
	if !record.GrandTotal.IsZero() {
		t.Fatalf("missing total should be zero, got %s", record.GrandTotal)
	}
	if len(record.Items) != 1 {
		t.Fatalf("item row should still produce an item")
	}
}

func TestBuild_InvalidItemRowSkipped(t *testing.T) {
	bad := itemRow("SKU2", "Negative", 1, -5, 0)
	rs := &models.ResultSet{Batches: [][]models.Row{{
		itemRow("SKU1", "Good", 1, 5, 0),
		bad,
		itemRow("SKU3", "Also good", 2, 3, 0.30),
	}}}

	builder := NewRecordBuilder(logging.Nop{})
	record, err := builder.Build(context.Background(), 10, rs, &fakeTransactionSource{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(record.Items) != 2 {
		t.Fatalf("items = %d, want 2 (bad row skipped)", len(record.Items))
	}
	if record.Items[0].ItemLookupCode != "SKU1" || record.Items[1].ItemLookupCode != "SKU3" {
		t.Fatalf("wrong items survived: %+v", record.Items)
	}
}

func TestBuild_NullItemColumnRowSkipped(t *testing.T) {
	row := itemRow("SKU1", "Good", 1, 5, 0)
	nullRow := models.Row{}
	for k, v := range row {
		nullRow[k] = v
	}
	nullRow["ItemLookupCode"] = nil

	rs := &models.ResultSet{Batches: [][]models.Row{{row, nullRow}}}

	builder := NewRecordBuilder(logging.Nop{})
	record, err := builder.Build(context.Background(), 11, rs, &fakeTransactionSource{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The null row still classifies the batch as item-shaped but adds no item.
	if len(record.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(record.Items))
	}
}

func TestBuild_StoreFallbackLookup(t *testing.T) {
	row := itemRow("SKU1", "Good", 1, 5, 0)
	row["StoreID"] = int64(0)
	rs := &models.ResultSet{Batches: [][]models.Row{{row}}}

	source := &fakeTransactionSource{storeID: 12}
	builder := NewRecordBuilder(logging.Nop{})
	record, err := builder.Build(context.Background(), 12, rs, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.StoreID != 12 {
		t.Fatalf("store id = %d, want fallback 12", record.StoreID)
	}
	if source.storeCalls != 1 {
		t.Fatalf("fallback lookups = %d, want 1", source.storeCalls)
	}
}

func TestBuild_StoreFallbackFailureKeepsZero(t *testing.T) {
	row := itemRow("SKU1", "Good", 1, 5, 0)
	row["StoreID"] = int64(0)
	rs := &models.ResultSet{Batches: [][]models.Row{{row}}}

	source := &fakeTransactionSource{storeErr: errors.New("db down")}
	builder := NewRecordBuilder(logging.Nop{})
	record, err := builder.Build(context.Background(), 13, rs, source)
	if err != nil {
		t.Fatalf("fallback failure must not fail the build: %v", err)
	}
	if record.StoreID != 0 {
		t.Fatalf("store id = %d, want 0", record.StoreID)
	}
}

func TestBuild_NoFallbackWhenStorePresent(t *testing.T) {
	rs := &models.ResultSet{Batches: [][]models.Row{{itemRow("SKU1", "Good", 1, 5, 0)}}}

	source := &fakeTransactionSource{storeID: 99}
	builder := NewRecordBuilder(logging.Nop{})
	record, err := builder.Build(context.Background(), 14, rs, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.StoreID != 7 {
		t.Fatalf("store id = %d, want row value 7", record.StoreID)
	}
	if source.storeCalls != 0 {
		t.Fatalf("no fallback lookup expected, got %d", source.storeCalls)
	}
}
