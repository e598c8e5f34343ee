package services

import (
	"context"
	"fmt"

	"github.com/mburu1/ReceiptReprintApplication/app/logging"
	"github.com/mburu1/ReceiptReprintApplication/app/models"
)

// StoreSource lists all stores, ordered by name.
type StoreSource interface {
	Stores(ctx context.Context) ([]models.StoreInfo, error)
}

// DataSource is the full data-access contract the receipt service needs.
type DataSource interface {
	TransactionSource
	TemplateSource
	StoreSource
}

// ReceiptService coordinates record building, duplicate marking, template
// resolution and validation for one reprint request. All steps are
// synchronous; the only suspension points are the collaborator fetches.
type ReceiptService struct {
	source   DataSource
	builder  *RecordBuilder
	marker   *DuplicateMarker
	resolver *TemplateResolver
	log      logging.Logger
}

// NewReceiptService wires the pipeline over a data source.
func NewReceiptService(source DataSource, log logging.Logger) *ReceiptService {
	return &ReceiptService{
		source:   source,
		builder:  NewRecordBuilder(log),
		marker:   NewDuplicateMarker(log),
		resolver: NewTemplateResolver(source, log),
		log:      log,
	}
}

// GetReceipt reconstructs the receipt for a transaction. storeOverride
// forces the template lookup to a specific store; nil uses the
// transaction's own store. A transaction that cannot be found, or whose
// record fails strict validation, yields a nil record without an error;
// collaborator failures are returned as errors.
func (s *ReceiptService) GetReceipt(ctx context.Context, transactionNumber int, storeOverride *int) (*models.ReceiptRecord, error) {
	s.log.Info("Building receipt", fmt.Sprintf("transaction=%d", transactionNumber))

	if transactionNumber <= 0 {
		s.log.Warning("Invalid transaction number", fmt.Sprintf("transaction=%d", transactionNumber))
		return nil, nil
	}

	rows, err := s.source.TransactionRows(ctx, transactionNumber)
	if err != nil {
		s.log.Error("Transaction fetch failed", err, fmt.Sprintf("transaction=%d", transactionNumber))
		return nil, err
	}

	record, err := s.builder.Build(ctx, transactionNumber, rows, s.source)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	record.Items = s.marker.Mark(record.Items)

	header, err := s.resolver.ResolveHeader(ctx, record.EffectiveStoreID(storeOverride))
	if err != nil {
		s.log.Error("Template fetch failed", err)
		return nil, err
	}
	record.CompanyInfo = &header

	if !record.IsValid(true) {
		s.log.Warning("Receipt failed strict validation; not printable",
			fmt.Sprintf("transaction=%d items=%d", transactionNumber, len(record.Items)))
		return nil, nil
	}

	s.log.Info("Receipt built", fmt.Sprintf("transaction=%d items=%d", transactionNumber, len(record.Items)))
	return record, nil
}

// Stores returns all stores for selection.
func (s *ReceiptService) Stores(ctx context.Context) ([]models.StoreInfo, error) {
	return s.source.Stores(ctx)
}
