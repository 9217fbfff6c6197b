package seed

import (
	"context"
	"testing"

	"github.com/quickserve/go-sales-cache/store"
)

func TestSeed(t *testing.T) {
	db, err := store.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	ctx := context.Background()
	if err := store.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := New(db).Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	itemCount, err := db.NewSelect().Model((*store.Item)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count items: %v", err)
	}
	if itemCount != len(names) {
		t.Errorf("expected %d items, got %d", len(names), itemCount)
	}

	txnCount, err := db.NewSelect().Model((*store.Transaction)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	if txnCount != 50 {
		t.Errorf("expected 50 transactions, got %d", txnCount)
	}

	// Every bill item must reference an existing item and carry a positive
	// quantity.
	var bills []*store.BillItem
	if err := db.NewSelect().Model(&bills).Relation("Item").Scan(ctx); err != nil {
		t.Fatalf("load bill items: %v", err)
	}
	if len(bills) == 0 {
		t.Fatal("expected seeded bill items")
	}
	for _, bill := range bills {
		if bill.Item == nil {
			t.Fatalf("bill item %d has no catalog item", bill.ID)
		}
		if bill.Quantity < 1 || bill.Quantity > 5 {
			t.Errorf("bill item %d has quantity %d outside 1-5", bill.ID, bill.Quantity)
		}
	}
}

func TestSeed_RepeatableWithoutCollisions(t *testing.T) {
	db, err := store.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	ctx := context.Background()
	if err := store.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	seeder := New(db)
	if err := seeder.Seed(ctx); err != nil {
		t.Fatalf("first Seed failed: %v", err)
	}
	if err := seeder.Seed(ctx); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}

	itemCount, err := db.NewSelect().Model((*store.Item)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count items: %v", err)
	}
	if itemCount != 2*len(names) {
		t.Errorf("expected %d items after two seeds, got %d", 2*len(names), itemCount)
	}
}
