package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

func openTestDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCatalog(t *testing.T, db *bun.DB) (*ItemRepository, []*Item) {
	t.Helper()
	items := []*Item{
		{Name: "Burger", ItemCode: "B001", Price: decimal.RequireFromString("5.00"), Category: "Burger", StartingQuantity: 100},
		{Name: "Cola", ItemCode: "D001", Price: decimal.RequireFromString("2.50"), Category: "Drink", StartingQuantity: 200},
	}
	repo := NewItemRepository(db)
	if err := repo.CreateMany(context.Background(), items); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return repo, items
}

func TestItemRepository_GetByCode(t *testing.T) {
	db := openTestDB(t)
	repo, _ := seedCatalog(t, db)
	ctx := context.Background()

	item, err := repo.GetByCode(ctx, "B001")
	if err != nil {
		t.Fatalf("GetByCode failed: %v", err)
	}
	if item.Name != "Burger" {
		t.Errorf("expected Burger, got %s", item.Name)
	}

	if _, err := repo.GetByCode(ctx, "NOPE"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItemRepository_List_DerivesRemainingQuantity(t *testing.T) {
	db := openTestDB(t)
	items, _ := seedCatalog(t, db)
	sales := NewTransactionRepository(db)
	ctx := context.Background()

	if _, err := sales.RecordSale(ctx, []SaleLine{{ItemCode: "B001", Quantity: 3}}); err != nil {
		t.Fatalf("RecordSale failed: %v", err)
	}

	views, err := items.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 items, got %d", len(views))
	}
	if views[0].RemainingQuantity != 97 {
		t.Errorf("expected remaining 97, got %d", views[0].RemainingQuantity)
	}
	if views[1].RemainingQuantity != 200 {
		t.Errorf("expected untouched remaining 200, got %d", views[1].RemainingQuantity)
	}
}

func TestRecordSale_SnapshotsUnitPrice(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	sales := NewTransactionRepository(db)
	ctx := context.Background()

	txn, err := sales.RecordSale(ctx, []SaleLine{
		{ItemCode: "B001", Quantity: 2},
		{ItemCode: "D001", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("RecordSale failed: %v", err)
	}
	if len(txn.BillItems) != 2 {
		t.Fatalf("expected 2 bill items, got %d", len(txn.BillItems))
	}
	if !txn.BillItems[0].UnitPrice.Equal(decimal.RequireFromString("5.00")) {
		t.Errorf("expected snapshot price 5.00, got %s", txn.BillItems[0].UnitPrice)
	}
	if !txn.BillItems[0].TotalPrice().Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("expected line total 10.00, got %s", txn.BillItems[0].TotalPrice())
	}
}

func TestRecordSale_AtomicOnUnknownItem(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	sales := NewTransactionRepository(db)
	ctx := context.Background()

	_, err := sales.RecordSale(ctx, []SaleLine{
		{ItemCode: "B001", Quantity: 2},
		{ItemCode: "MISSING", Quantity: 1},
	})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	billCount, err := db.NewSelect().Model((*BillItem)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count bill items: %v", err)
	}
	if billCount != 0 {
		t.Errorf("expected no bill items persisted, got %d", billCount)
	}

	txnCount, err := db.NewSelect().Model((*Transaction)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	if txnCount != 0 {
		t.Errorf("expected no transaction persisted, got %d", txnCount)
	}
}

func TestListByBusinessDay(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	sales := NewTransactionRepository(db)
	ctx := context.Background()

	if _, err := sales.RecordSale(ctx, []SaleLine{{ItemCode: "B001", Quantity: 1}}); err != nil {
		t.Fatalf("RecordSale failed: %v", err)
	}

	today := time.Now()
	txns, err := sales.ListByBusinessDay(ctx, today)
	if err != nil {
		t.Fatalf("ListByBusinessDay failed: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if len(txns[0].BillItems) != 1 {
		t.Fatalf("expected preloaded bill items, got %d", len(txns[0].BillItems))
	}
	if txns[0].BillItems[0].Item == nil || txns[0].BillItems[0].Item.Name != "Burger" {
		t.Error("expected bill item's catalog item to be preloaded")
	}

	yesterday := today.AddDate(0, 0, -1)
	empty, err := sales.ListByBusinessDay(ctx, yesterday)
	if err != nil {
		t.Fatalf("ListByBusinessDay failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no transactions yesterday, got %d", len(empty))
	}
}

func TestListByRange_InclusiveBounds(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	sales := NewTransactionRepository(db)
	ctx := context.Background()

	if _, err := sales.RecordSale(ctx, []SaleLine{{ItemCode: "D001", Quantity: 2}}); err != nil {
		t.Fatalf("RecordSale failed: %v", err)
	}

	today := time.Now()
	txns, err := sales.ListByRange(ctx, today, today)
	if err != nil {
		t.Fatalf("ListByRange failed: %v", err)
	}
	if len(txns) != 1 {
		t.Errorf("expected 1 transaction in single-day range, got %d", len(txns))
	}

	txns, err = sales.ListByRange(ctx, today.AddDate(0, 0, 1), today.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("ListByRange failed: %v", err)
	}
	if len(txns) != 0 {
		t.Errorf("expected empty range, got %d transactions", len(txns))
	}
}

func TestBusinessDay(t *testing.T) {
	stamp := time.Date(2024, 7, 31, 18, 45, 3, 0, time.UTC)
	got := BusinessDay(stamp)
	want := time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
