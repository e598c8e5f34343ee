package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mburu1/ReceiptReprintApplication/app/logging"
	"github.com/mburu1/ReceiptReprintApplication/app/models"
)

// ReceiptRepository fetches transaction rows, templates and stores. It is
// the single data-access collaborator consumed by the receipt service.
type ReceiptRepository struct {
	db  *gorm.DB
	log logging.Logger
}

// NewReceiptRepository creates a repository over an open connection.
func NewReceiptRepository(db *gorm.DB, log logging.Logger) *ReceiptRepository {
	return &ReceiptRepository{db: db, log: log}
}

// transactionQuery reconstructs the legacy reprint result: header columns
// joined with item columns, one row per item. The column aliases are part
// of the contract the record builder reads.
const transactionQuery = `
SELECT t.transaction_time  AS "Time",
       t.cashier_name      AS "Name",
       t.register_number   AS "Register",
       t.grand_total       AS "GrandTotal",
       t.store_id          AS "StoreID",
       e.item_lookup_code  AS "ItemLookupCode",
       e.description       AS "Description",
       e.quantity          AS quantity,
       e.price             AS "Price",
       e.sales_tax         AS "SalesTax"
FROM transactions t
LEFT JOIN transaction_entries e ON e.transaction_number = t.transaction_number
WHERE t.transaction_number = ?
ORDER BY e.id`

// supplementalItemsQuery returns item rows recorded outside the main detail
// table. Usually empty; when present they form a further item batch.
const supplementalItemsQuery = `
SELECT a.item_lookup_code AS "ItemLookupCode",
       a.description      AS "Description",
       a.quantity         AS quantity,
       a.price            AS "Price",
       a.sales_tax        AS "SalesTax"
FROM transaction_adjustments a
WHERE a.transaction_number = ?
ORDER BY a.id`

// TransactionRows returns the raw row batches for one transaction. The
// shape of the first batch is not statically known; interpretation is the
// record builder's job.
func (r *ReceiptRepository) TransactionRows(ctx context.Context, transactionNumber int) (*models.ResultSet, error) {
	r.log.Debug("Fetching transaction rows", fmt.Sprintf("transaction=%d", transactionNumber))

	first, err := r.queryRows(ctx, transactionQuery, transactionNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction %d: %w", transactionNumber, err)
	}

	rs := &models.ResultSet{}
	if len(first) > 0 {
		rs.Batches = append(rs.Batches, first)
	}

	extra, err := r.queryRows(ctx, supplementalItemsQuery, transactionNumber)
	if err != nil {
		// The supplemental table is optional; its absence is not an error
		// for the reprint as a whole.
		r.log.Warning("Supplemental item lookup failed", err.Error())
	} else if len(extra) > 0 {
		rs.Batches = append(rs.Batches, extra)
	}

	return rs, nil
}

// TransactionStoreID looks up the owning store for a transaction. Used as a
// fallback when the reprint rows carry no store id. A missing row yields 0.
func (r *ReceiptRepository) TransactionStoreID(ctx context.Context, transactionNumber int) (int, error) {
	var storeID sql.NullInt64
	row := r.db.WithContext(ctx).
		Raw(`SELECT store_id FROM transactions WHERE transaction_number = ?`, transactionNumber).
		Row()
	if err := row.Scan(&storeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to look up store for transaction %d: %w", transactionNumber, err)
	}
	return int(storeID.Int64), nil
}

// TemplateForStore returns at most one template, preferring an exact store
// match over the universal default (store 0). Nil when neither exists.
func (r *ReceiptRepository) TemplateForStore(ctx context.Context, storeID int) (*models.ReceiptTemplate, error) {
	r.log.Debug("Fetching receipt template", fmt.Sprintf("store=%d", storeID))

	row := r.db.WithContext(ctx).Raw(`
SELECT id, title, template_sale, store_id
FROM receipt_templates
WHERE store_id = ? OR store_id = 0
ORDER BY CASE WHEN store_id = ? THEN 0 ELSE 1 END
LIMIT 1`, storeID, storeID).Row()

	var (
		tpl         models.ReceiptTemplate
		title, sale sql.NullString
	)
	if err := row.Scan(&tpl.ID, &title, &sale, &tpl.StoreID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warning("No template found", fmt.Sprintf("store=%d", storeID))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve receipt template: %w", err)
	}
	tpl.Title = title.String
	tpl.TemplateSale = sale.String
	return &tpl, nil
}

// Stores returns all stores ordered by name.
func (r *ReceiptRepository) Stores(ctx context.Context) ([]models.StoreInfo, error) {
	rows, err := r.db.WithContext(ctx).
		Raw(`SELECT id, name FROM stores ORDER BY name`).
		Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve stores: %w", err)
	}
	defer rows.Close()

	var stores []models.StoreInfo
	for rows.Next() {
		var s models.StoreInfo
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan store row: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.log.Info(fmt.Sprintf("Retrieved %d stores", len(stores)))
	return stores, nil
}

// queryRows runs a raw query and converts every row into a loosely typed
// column map, keeping the repository's output shape-agnostic.
func (r *ReceiptRepository) queryRows(ctx context.Context, query string, args ...interface{}) ([]models.Row, error) {
	rows, err := r.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []models.Row
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		row := make(models.Row, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
