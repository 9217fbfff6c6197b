package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// TransactionRepository provides sale recording and the date filters the
// reporting layer aggregates over. Listings always preload bill items and
// their catalog items so aggregation never goes back to the database.
type TransactionRepository struct {
	db *bun.DB
}

// NewTransactionRepository creates a TransactionRepository backed by the given database.
func NewTransactionRepository(db *bun.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// RecordSale persists one transaction with one bill item per sale line, all
// inside a single database transaction. Every line's item code is resolved
// first; an unknown code returns ErrItemNotFound and rolls the whole sale
// back, including the transaction row itself. The unit price is snapshotted
// from the catalog at this moment.
func (r *TransactionRepository) RecordSale(ctx context.Context, lines []SaleLine) (*Transaction, error) {
	now := time.Now()
	txn := &Transaction{
		BusinessDayDate:      BusinessDay(now),
		TransactionTimestamp: now,
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(txn).Exec(ctx); err != nil {
			return err
		}
		for _, line := range lines {
			item := new(Item)
			err := tx.NewSelect().Model(item).Where("item_code = ?", line.ItemCode).Scan(ctx)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("%w: %s", ErrItemNotFound, line.ItemCode)
				}
				return err
			}
			bill := &BillItem{
				TransactionID: txn.ID,
				ItemID:        item.ID,
				UnitPrice:     item.Price,
				Quantity:      line.Quantity,
			}
			if _, err := tx.NewInsert().Model(bill).Exec(ctx); err != nil {
				return err
			}
			txn.BillItems = append(txn.BillItems, bill)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// ListByBusinessDay returns the transactions attributed to one business day,
// bill items and items preloaded, in insertion order.
func (r *TransactionRepository) ListByBusinessDay(ctx context.Context, day time.Time) ([]*Transaction, error) {
	var txns []*Transaction
	err := r.db.NewSelect().
		Model(&txns).
		Relation("BillItems").
		Relation("BillItems.Item").
		Where("t.business_day_date = ?", BusinessDay(day)).
		OrderExpr("t.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// ListByRange returns the transactions whose business day falls inside the
// inclusive [start, end] range, bill items and items preloaded, in insertion
// order.
func (r *TransactionRepository) ListByRange(ctx context.Context, start, end time.Time) ([]*Transaction, error) {
	var txns []*Transaction
	err := r.db.NewSelect().
		Model(&txns).
		Relation("BillItems").
		Relation("BillItems.Item").
		Where("t.business_day_date BETWEEN ? AND ?", BusinessDay(start), BusinessDay(end)).
		OrderExpr("t.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return txns, nil
}
