package store

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Item is a catalog entry. Items are created at catalog load and are
// immutable afterwards; remaining stock is always derived from bill items,
// never persisted.
type Item struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ID               int64           `bun:"id,pk,autoincrement" json:"id"`
	Name             string          `bun:"name,notnull" json:"name"`
	ItemCode         string          `bun:"item_code,notnull,unique" json:"item_code"`
	Price            decimal.Decimal `bun:"price,notnull,type:decimal(20,4)" json:"price"`
	Category         string          `bun:"category,notnull" json:"category"`
	StartingQuantity int             `bun:"starting_quantity,notnull" json:"starting_quantity"`
}

// Transaction is a single sale event. It owns its bill items and is never
// mutated or deleted once recorded.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID                   int64     `bun:"id,pk,autoincrement" json:"id"`
	BusinessDayDate      time.Time `bun:"business_day_date,notnull" json:"business_day_date"`
	TransactionTimestamp time.Time `bun:"transaction_timestamp,notnull" json:"transaction_timestamp"`

	BillItems []*BillItem `bun:"rel:has-many,join:id=transaction_id" json:"bill_items,omitempty"`
}

// BillItem is one line of a transaction. UnitPrice is a snapshot of the item
// price at sale time and is not recomputed if the catalog price changes.
type BillItem struct {
	bun.BaseModel `bun:"table:bill_items,alias:bi"`

	ID            int64           `bun:"id,pk,autoincrement" json:"id"`
	TransactionID int64           `bun:"transaction_id,notnull" json:"transaction_id"`
	ItemID        int64           `bun:"item_id,notnull" json:"item_id"`
	UnitPrice     decimal.Decimal `bun:"unit_price,notnull,type:decimal(20,4)" json:"unit_price"`
	Quantity      int             `bun:"quantity,notnull" json:"quantity"`

	Transaction *Transaction `bun:"rel:belongs-to,join:transaction_id=id" json:"-"`
	Item        *Item        `bun:"rel:belongs-to,join:item_id=id" json:"-"`
}

// TotalPrice is the line total, derived from the stored snapshot price.
func (b *BillItem) TotalPrice() decimal.Decimal {
	return b.UnitPrice.Mul(decimal.NewFromInt(int64(b.Quantity)))
}

// ItemView is the serializable projection of an Item returned by item
// listings. It is built deliberately instead of exposing the bun model so the
// derived remaining quantity travels with the record.
type ItemView struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	ItemCode          string          `json:"item_code"`
	Price             decimal.Decimal `json:"price"`
	Category          string          `json:"category"`
	StartingQuantity  int             `json:"starting_quantity"`
	RemainingQuantity int             `json:"remaining_quantity"`
}

// SaleLine is one requested line of a sale: which item, how many.
type SaleLine struct {
	ItemCode string `json:"item_code"`
	Quantity int    `json:"quantity"`
}

// BusinessDay truncates t to midnight UTC, the normalization used for the
// business_day_date column and for every date filter against it.
func BusinessDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
