// Package seed populates the store with demo catalog and sales data for
// local runs and smoke testing.
package seed

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/quickserve/go-sales-cache/store"
)

var categories = []string{"Burger", "Pizza", "Drink", "Side"}

var names = []string{
	"Classic Burger", "Cheese Burger", "Veggie Burger", "Margherita",
	"Pepperoni", "Hawaiian", "Cola", "Lemonade", "Iced Tea", "Coffee",
	"Fries", "Onion Rings", "Salad", "Garlic Bread", "Nuggets",
	"Milkshake", "Brownie", "Wrap", "Hot Dog", "Nachos",
}

// Seeder writes demo data straight to the database.
type Seeder struct {
	db *bun.DB
}

// New creates a Seeder over the given database.
func New(db *bun.DB) *Seeder {
	return &Seeder{db: db}
}

// Seed inserts 20 catalog items and 50 transactions with 1-5 lines each.
// Item codes are uuid-derived so repeated seeding never collides with the
// existing catalog.
func (s *Seeder) Seed(ctx context.Context) error {
	items := make([]*store.Item, 0, len(names))
	for _, name := range names {
		price := decimal.NewFromFloat(5 + rand.Float64()*15).Round(2)
		items = append(items, &store.Item{
			Name:             name,
			ItemCode:         itemCode(),
			Price:            price,
			Category:         categories[rand.IntN(len(categories))],
			StartingQuantity: 100 + rand.IntN(401),
		})
	}
	if _, err := s.db.NewInsert().Model(&items).Exec(ctx); err != nil {
		return err
	}

	now := time.Now()
	for i := 0; i < 50; i++ {
		day := now.AddDate(0, 0, -rand.IntN(7))
		txn := &store.Transaction{
			BusinessDayDate:      store.BusinessDay(day),
			TransactionTimestamp: day,
		}
		if _, err := s.db.NewInsert().Model(txn).Exec(ctx); err != nil {
			return err
		}
		for n := 1 + rand.IntN(5); n > 0; n-- {
			item := items[rand.IntN(len(items))]
			bill := &store.BillItem{
				TransactionID: txn.ID,
				ItemID:        item.ID,
				UnitPrice:     item.Price,
				Quantity:      1 + rand.IntN(5),
			}
			if _, err := s.db.NewInsert().Model(bill).Exec(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func itemCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
