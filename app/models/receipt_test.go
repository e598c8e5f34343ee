package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func mustItem(t *testing.T, code, desc string, qty, price, tax string) LineItem {
	t.Helper()
	item, err := NewLineItem(code, desc,
		decimal.RequireFromString(qty),
		decimal.RequireFromString(price),
		decimal.RequireFromString(tax))
	if err != nil {
		t.Fatalf("NewLineItem: %v", err)
	}
	return item
}

func TestNewLineItem_Validation(t *testing.T) {
	one := decimal.NewFromInt(1)
	cases := []struct {
		name            string
		code, desc      string
		qty, price, tax decimal.Decimal
		wantErr         bool
	}{
		{"valid", "SKU1", "Soap", one, one, decimal.Zero, false},
		{"empty code", "", "Soap", one, one, decimal.Zero, true},
		{"empty description", "SKU1", "", one, one, decimal.Zero, true},
		{"zero quantity", "SKU1", "Soap", decimal.Zero, one, decimal.Zero, true},
		{"negative price", "SKU1", "Soap", one, one.Neg(), decimal.Zero, true},
		{"negative tax", "SKU1", "Soap", one, one, one.Neg(), true},
		{"free item", "SKU1", "Soap", one, decimal.Zero, decimal.Zero, false},
	}
	for _, tc := range cases {
		_, err := NewLineItem(tc.code, tc.desc, tc.qty, tc.price, tc.tax)
		if (err != nil) != tc.wantErr {
			t.Fatalf("%s: err = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestLineItemArithmetic(t *testing.T) {
	item := mustItem(t, "SKU1", "Soap", "3", "2.50", "0.75")

	if got := item.Subtotal().StringFixed(2); got != "7.50" {
		t.Fatalf("subtotal = %s", got)
	}
	if got := item.Total().StringFixed(2); got != "8.25" {
		t.Fatalf("total = %s", got)
	}
}

func TestReceiptTotals(t *testing.T) {
	r := &ReceiptRecord{Items: []LineItem{
		mustItem(t, "A", "a", "2", "10.00", "1.00"),
		mustItem(t, "B", "b", "1", "20.50", "0.50"),
	}}

	if got := r.Subtotal().StringFixed(2); got != "40.50" {
		t.Fatalf("subtotal = %s", got)
	}
	if got := r.SalesTax().StringFixed(2); got != "1.50" {
		t.Fatalf("sales tax = %s", got)
	}
}

func TestReceiptStrictValidation(t *testing.T) {
	header := DefaultCompanyHeader()
	valid := func() *ReceiptRecord {
		return &ReceiptRecord{
			TransactionNumber: 1,
			CashierName:       "A",
			RegisterNumber:    "01",
			GrandTotal:        decimal.NewFromInt(10),
			Items:             []LineItem{mustItem(t, "A", "a", "1", "10.00", "0")},
			CompanyInfo:       &header,
		}
	}

	if !valid().IsValid(true) {
		t.Fatal("baseline record should be valid")
	}

	mutations := map[string]func(*ReceiptRecord){
		"zero transaction": func(r *ReceiptRecord) { r.TransactionNumber = 0 },
		"no cashier":       func(r *ReceiptRecord) { r.CashierName = "" },
		"no register":      func(r *ReceiptRecord) { r.RegisterNumber = "" },
		"no items":         func(r *ReceiptRecord) { r.Items = nil },
		"zero total":       func(r *ReceiptRecord) { r.GrandTotal = decimal.Zero },
		"no header":        func(r *ReceiptRecord) { r.CompanyInfo = nil },
	}
	for name, mutate := range mutations {
		r := valid()
		mutate(r)
		if r.IsValid(true) {
			t.Fatalf("%s: record should fail strict validation", name)
		}
		if name != "zero transaction" && !r.IsValid(false) {
			t.Fatalf("%s: record should pass non-strict validation", name)
		}
	}

	var nilRecord *ReceiptRecord
	if nilRecord.IsValid(true) || nilRecord.IsValid(false) {
		t.Fatal("nil record is never valid")
	}
}

func TestEffectiveStoreID(t *testing.T) {
	r := &ReceiptRecord{StoreID: 7}
	if r.EffectiveStoreID(nil) != 7 {
		t.Fatal("nil override must use the record's store")
	}
	zero := 0
	if r.EffectiveStoreID(&zero) != 0 {
		t.Fatal("explicit zero override must win")
	}
	five := 5
	if r.EffectiveStoreID(&five) != 5 {
		t.Fatal("override must win")
	}
}

func TestDefaultCompanyHeader(t *testing.T) {
	h := DefaultCompanyHeader()
	if !h.IsValid() {
		t.Fatal("default header must be valid")
	}
	if (CompanyHeader{CompanyName: "x"}).IsValid() {
		t.Fatal("partial header must be invalid")
	}
}
