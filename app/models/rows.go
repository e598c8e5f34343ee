package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one loosely typed result row: column name -> driver value. The
// reprint query's shape is not statically known, so every read goes through
// the defensive accessors below and a missing or null column yields a zero
// value instead of failing.
type Row map[string]interface{}

// ResultSet is the ordered sequence of row batches returned for one
// transaction. Depending on the source, the first batch may already carry
// item rows or may be a single header row followed by an item batch.
type ResultSet struct {
	Batches [][]Row
}

// Empty reports whether the result carries no rows at all.
func (rs *ResultSet) Empty() bool {
	if rs == nil {
		return true
	}
	for _, batch := range rs.Batches {
		if len(batch) > 0 {
			return false
		}
	}
	return true
}

// First returns the first row of the first non-empty batch.
func (rs *ResultSet) First() (Row, bool) {
	if rs == nil {
		return nil, false
	}
	for _, batch := range rs.Batches {
		if len(batch) > 0 {
			return batch[0], true
		}
	}
	return nil, false
}

// Has reports whether the column exists and is non-null.
func (r Row) Has(column string) bool {
	v, ok := r[column]
	return ok && v != nil
}

// String reads a text column, defaulting to "".
func (r Row) String(column string) string {
	v, ok := r[column]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}

// Int reads an integral column, defaulting to 0.
func (r Row) Int(column string) int {
	v, ok := r[column]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case []byte:
		if parsed, err := strconv.Atoi(string(n)); err == nil {
			return parsed
		}
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	}
	return 0
}

// Decimal reads a numeric column, defaulting to zero. Drivers hand numerics
// back as float64, int64, string or []byte depending on the backend.
func (r Row) Decimal(column string) decimal.Decimal {
	v, ok := r[column]
	if !ok || v == nil {
		return decimal.Zero
	}
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case float64:
		return decimal.NewFromFloat(n)
	case float32:
		return decimal.NewFromFloat32(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case string:
		if parsed, err := decimal.NewFromString(n); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := decimal.NewFromString(string(n)); err == nil {
			return parsed
		}
	}
	return decimal.Zero
}

// Time reads a timestamp column, defaulting to the zero time.
func (r Row) Time(column string) time.Time {
	v, ok := r[column]
	if !ok || v == nil {
		return time.Time{}
	}
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse("2006-01-02 15:04:05", string(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
