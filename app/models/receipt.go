package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem represents a single item entry in a transaction.
// Immutable apart from the duplicate flag, which only ever moves false->true.
type LineItem struct {
	ItemLookupCode string          `json:"item_lookup_code"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	SalesTax       decimal.Decimal `json:"sales_tax"`
	Duplicate      bool            `json:"duplicate"`
}

// NewLineItem validates and constructs a line item. Domain validation
// failures here reject only this item, never the whole receipt.
func NewLineItem(code, description string, quantity, price, salesTax decimal.Decimal) (LineItem, error) {
	if code == "" {
		return LineItem{}, fmt.Errorf("item lookup code is required")
	}
	if description == "" {
		return LineItem{}, fmt.Errorf("description is required")
	}
	if quantity.Sign() <= 0 {
		return LineItem{}, fmt.Errorf("quantity must be greater than zero")
	}
	if price.Sign() < 0 {
		return LineItem{}, fmt.Errorf("price cannot be negative")
	}
	if salesTax.Sign() < 0 {
		return LineItem{}, fmt.Errorf("sales tax cannot be negative")
	}
	return LineItem{
		ItemLookupCode: code,
		Description:    description,
		Quantity:       quantity,
		Price:          price,
		SalesTax:       salesTax,
	}, nil
}

// Subtotal is quantity * price.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.Price)
}

// Total is subtotal + sales tax.
func (i LineItem) Total() decimal.Decimal {
	return i.Subtotal().Add(i.SalesTax)
}

// DisplayDescription appends the duplicate marker when the item is flagged.
func (i LineItem) DisplayDescription() string {
	if i.Duplicate {
		return i.Description + " (Duplicate)"
	}
	return i.Description
}

// IsValid reports whether the item passes domain validation.
func (i LineItem) IsValid() bool {
	return i.ItemLookupCode != "" &&
		i.Description != "" &&
		i.Quantity.Sign() > 0 &&
		i.Price.Sign() >= 0 &&
		i.SalesTax.Sign() >= 0
}

// CompanyHeader is the company identification block printed at the top of a
// receipt. Valid only when all five fields are populated.
type CompanyHeader struct {
	CompanyName string `json:"company_name"`
	Address1    string `json:"address1"`
	PinNumber   string `json:"pin_number"`
	PhoneNumber string `json:"phone_number"`
	Country     string `json:"country"`
}

// DefaultCompanyHeader returns the hardcoded fallback header used whenever
// template resolution fails.
func DefaultCompanyHeader() CompanyHeader {
	return CompanyHeader{
		CompanyName: "Sleaklady cosmetics ltd",
		Address1:    "Bestlady",
		PinNumber:   "Pin No: P051681112N",
		PhoneNumber: "0740470002-HQ",
		Country:     "Kenya",
	}
}

// IsValid reports whether all five required fields are non-empty.
func (h CompanyHeader) IsValid() bool {
	return h.CompanyName != "" &&
		h.Address1 != "" &&
		h.PinNumber != "" &&
		h.PhoneNumber != "" &&
		h.Country != ""
}

// ReceiptRecord aggregates the reconstructed transaction: header fields,
// ordered line items and the resolved company header. Item order is
// retrieval order and is significant for duplicate grouping and display.
type ReceiptRecord struct {
	TransactionNumber int             `json:"transaction_number"`
	TransactionTime   time.Time       `json:"transaction_time"`
	CashierName       string          `json:"cashier_name"`
	RegisterNumber    string          `json:"register_number"`
	StoreID           int             `json:"store_id"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
	Items             []LineItem      `json:"items"`
	CompanyInfo       *CompanyHeader  `json:"company_info,omitempty"`
}

// Subtotal sums quantity*price over all items.
func (r *ReceiptRecord) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range r.Items {
		sum = sum.Add(item.Subtotal())
	}
	return sum
}

// SalesTax sums the tax amounts over all items.
func (r *ReceiptRecord) SalesTax() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range r.Items {
		sum = sum.Add(item.SalesTax)
	}
	return sum
}

// EffectiveStoreID picks the store used for template lookup: an explicit
// override wins, then the transaction's own store, then the universal 0.
func (r *ReceiptRecord) EffectiveStoreID(override *int) int {
	if override != nil {
		return *override
	}
	return r.StoreID
}

// IsValid applies the printing rule set. Strict validation requires at
// least one item, a positive grand total, identifying fields and a
// resolved header; non-strict admits empty test receipts.
func (r *ReceiptRecord) IsValid(strict bool) bool {
	if r == nil {
		return false
	}
	if !strict {
		return r.TransactionNumber >= 0
	}
	return r.TransactionNumber > 0 &&
		r.CashierName != "" &&
		r.RegisterNumber != "" &&
		len(r.Items) > 0 &&
		r.GrandTotal.Sign() > 0 &&
		r.CompanyInfo != nil
}
