package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ItemRepository provides catalog access: creation, natural-key lookup and
// listing with derived remaining quantities.
type ItemRepository struct {
	db *bun.DB
}

// NewItemRepository creates an ItemRepository backed by the given database.
func NewItemRepository(db *bun.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts a single catalog item.
func (r *ItemRepository) Create(ctx context.Context, item *Item) error {
	_, err := r.db.NewInsert().Model(item).Exec(ctx)
	return err
}

// CreateMany inserts a batch of catalog items in one statement.
func (r *ItemRepository) CreateMany(ctx context.Context, items []*Item) error {
	if len(items) == 0 {
		return nil
	}
	_, err := r.db.NewInsert().Model(&items).Exec(ctx)
	return err
}

// GetByCode looks an item up by its item_code natural key.
// Returns ErrItemNotFound when no item carries the code.
func (r *ItemRepository) GetByCode(ctx context.Context, code string) (*Item, error) {
	item := new(Item)
	err := r.db.NewSelect().Model(item).Where("item_code = ?", code).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, code)
		}
		return nil, err
	}
	return item, nil
}

// List returns every catalog item as an ItemView with its remaining quantity
// derived from the recorded bill items. Quantities are computed here rather
// than persisted so they can never drift from the sales ledger.
func (r *ItemRepository) List(ctx context.Context) ([]ItemView, error) {
	var items []*Item
	if err := r.db.NewSelect().Model(&items).OrderExpr("i.id ASC").Scan(ctx); err != nil {
		return nil, err
	}

	type soldRow struct {
		ItemID int64 `bun:"item_id"`
		Sold   int   `bun:"sold"`
	}
	var sold []soldRow
	err := r.db.NewSelect().
		Model((*BillItem)(nil)).
		ColumnExpr("bi.item_id AS item_id").
		ColumnExpr("SUM(bi.quantity) AS sold").
		GroupExpr("bi.item_id").
		Scan(ctx, &sold)
	if err != nil {
		return nil, err
	}

	soldByItem := make(map[int64]int, len(sold))
	for _, row := range sold {
		soldByItem[row.ItemID] = row.Sold
	}

	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ItemView{
			ID:                item.ID,
			Name:              item.Name,
			ItemCode:          item.ItemCode,
			Price:             item.Price,
			Category:          item.Category,
			StartingQuantity:  item.StartingQuantity,
			RemainingQuantity: item.StartingQuantity - soldByItem[item.ID],
		})
	}
	return views, nil
}
