package services

import (
	"context"
	"fmt"

	"github.com/mburu1/ReceiptReprintApplication/app/logging"
	"github.com/mburu1/ReceiptReprintApplication/app/models"
)

// TransactionSource supplies raw transaction rows and the scalar store-id
// fallback. The database repository satisfies it.
type TransactionSource interface {
	TransactionRows(ctx context.Context, transactionNumber int) (*models.ResultSet, error)
	TransactionStoreID(ctx context.Context, transactionNumber int) (int, error)
}

// Column names looked up in the loosely typed reprint rows.
const (
	colTime        = "Time"
	colName        = "Name"
	colRegister    = "Register"
	colGrandTotal  = "GrandTotal"
	colStoreID     = "StoreID"
	colItemLookup  = "ItemLookupCode"
	colDescription = "Description"
	colQuantity    = "quantity"
	colPrice       = "Price"
	colSalesTax    = "SalesTax"
)

// rowShape classifies the first result batch. The classification happens
// exactly once, up front, and everything after dispatches on it.
type rowShape int

const (
	// shapeItemsFirst: the first batch carries item columns, one row per
	// item, with header columns repeated on each row.
	shapeItemsFirst rowShape = iota
	// shapeHeaderFirst: the first batch is a lone header row; items arrive
	// in a second batch.
	shapeHeaderFirst
)

// classifyShape checks the first row for the item-identifying column. The
// column's presence (even with a null value) marks an items-first result.
func classifyShape(first models.Row) rowShape {
	if _, ok := first[colItemLookup]; ok {
		return shapeItemsFirst
	}
	return shapeHeaderFirst
}

// RecordBuilder interprets ambiguous tabular reprint rows into a validated
// receipt record.
type RecordBuilder struct {
	log logging.Logger
}

// NewRecordBuilder creates a builder with the given logger.
func NewRecordBuilder(log logging.Logger) *RecordBuilder {
	return &RecordBuilder{log: log}
}

// Build turns a result set into a receipt record. A result with no rows
// yields a nil record and no error. Header and item fields are read as
// independent columns of whichever row shape was chosen; a row may
// legitimately carry both.
func (b *RecordBuilder) Build(ctx context.Context, transactionNumber int, rs *models.ResultSet, source TransactionSource) (*models.ReceiptRecord, error) {
	if rs.Empty() {
		b.log.Info("Reprint query returned no rows", fmt.Sprintf("transaction=%d", transactionNumber))
		return nil, nil
	}
	first, _ := rs.First()

	record := &models.ReceiptRecord{
		TransactionNumber: transactionNumber,
		TransactionTime:   first.Time(colTime),
		CashierName:       first.String(colName),
		RegisterNumber:    first.String(colRegister),
		GrandTotal:        first.Decimal(colGrandTotal),
		StoreID:           first.Int(colStoreID),
	}

	switch classifyShape(first) {
	case shapeItemsFirst:
		// Every row of the first batch is an item row; a further batch of
		// item rows may follow and is appended.
		for _, batch := range rs.Batches {
			b.appendItems(record, batch)
		}
	case shapeHeaderFirst:
		if len(rs.Batches) > 1 {
			b.appendItems(record, rs.Batches[1])
		} else {
			b.log.Warning("Expected items in second result batch but none found",
				fmt.Sprintf("transaction=%d", transactionNumber))
		}
	}

	if record.StoreID == 0 {
		b.resolveStoreID(ctx, record, source)
	}

	return record, nil
}

// appendItems constructs line items from item-shaped rows. A row whose
// item column is null, or whose values fail domain validation, is skipped;
// the rest of the batch continues.
func (b *RecordBuilder) appendItems(record *models.ReceiptRecord, batch []models.Row) {
	for _, row := range batch {
		if !row.Has(colItemLookup) {
			continue
		}
		item, err := models.NewLineItem(
			row.String(colItemLookup),
			row.String(colDescription),
			row.Decimal(colQuantity),
			row.Decimal(colPrice),
			row.Decimal(colSalesTax),
		)
		if err != nil {
			b.log.Warning("Skipping invalid item row", err.Error())
			continue
		}
		record.Items = append(record.Items, item)
	}
}

// resolveStoreID performs the single fallback lookup by transaction number.
// A failed or empty lookup leaves the store id at zero.
func (b *RecordBuilder) resolveStoreID(ctx context.Context, record *models.ReceiptRecord, source TransactionSource) {
	storeID, err := source.TransactionStoreID(ctx, record.TransactionNumber)
	if err != nil {
		b.log.Warning("Store lookup failed; keeping store id 0", err.Error())
		return
	}
	record.StoreID = storeID
}
