package models

import "fmt"

// ReceiptTemplate is a store-owned header template. The TemplateSale string
// carries {FieldName:value} tokens consumed by the template resolver.
type ReceiptTemplate struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	TemplateSale string `json:"template_sale"`
	StoreID      int    `json:"store_id"`
}

// IsValid reports whether the template carries usable content.
func (t ReceiptTemplate) IsValid() bool {
	return t.ID > 0 && t.Title != "" && t.TemplateSale != ""
}

// StoreInfo identifies a store for selection. The core never mutates it.
type StoreInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (s StoreInfo) String() string {
	return fmt.Sprintf("%s (%d)", s.Name, s.ID)
}
