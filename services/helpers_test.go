package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/kendall-kelly/laundry-pos-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedNow is 14/07/2025 10:30:00 UTC
var fixedNow = time.Date(2025, time.July, 14, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fakePricing records requests and answers with a canned result
type fakePricing struct {
	mu      sync.Mutex
	result  *models.PricingResult
	err     error
	calls   int
	clients []string
	// when set, Optimize signals started and waits for release
	started chan struct{}
	release chan struct{}
}

func (f *fakePricing) Optimize(ctx context.Context, selection models.QuantitySelection, clientName string) (*models.PricingResult, error) {
	f.mu.Lock()
	f.calls++
	f.clients = append(f.clients, clientName)
	started, release := f.started, f.release
	result, err := f.result, f.err
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
		<-release
	}
	if err != nil {
		return nil, err
	}
	copied := *result
	return &copied, nil
}

// mixedPackResult prices 20 assorted pieces as one mixed pack
func mixedPackResult() *models.PricingResult {
	return &models.PricingResult{
		TotalCost:  decimal.RequireFromString("16.00"),
		ReceiptURL: "https://pricing.test/receipts/1.pdf",
		Details: models.PricingDetails{
			Costs: models.CostBreakdown{
				MixedPacks: decimal.RequireFromString("16.00"),
				ShirtPacks: decimal.Zero,
				LooseItems: decimal.Zero,
				FixedItems: decimal.Zero,
			},
			MixedPacks: map[string]int{"20": 1},
			ShirtPacks: map[string]int{},
			LooseItems: map[string]int{},
			FixedItems: map[string]int{},
		},
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "laundry.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StoreEntry{}))
	return db
}

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	return NewGormStore(setupTestDB(t)).WithClock(fixedClock, time.UTC)
}

func newTestApp(t *testing.T, pricing PricingService) (*App, *GormStore) {
	t.Helper()

	store := newTestStore(t)
	app, err := NewApp(store, pricing, WithClock(fixedClock, time.UTC))
	require.NoError(t, err)
	return app, store
}

// seedOrders stores orders before the app is created
func seedOrders(t *testing.T, store *GormStore, orders []models.Order) {
	t.Helper()

	state, err := store.Load()
	require.NoError(t, err)
	state.Orders = orders
	require.NoError(t, store.Save(state))
}

func orderAt(id int64, at time.Time, status models.OrderStatus) models.Order {
	return models.Order{
		ID:         id,
		Timestamp:  at.UnixMilli(),
		Date:       at.Format("02/01/2006, 15:04:05"),
		Client:     models.GeneralClientName,
		Quantities: models.QuantitySelection{"camisa": 2},
		Total:      decimal.RequireFromString("3.60"),
		Status:     status,
	}
}

// failingStore wraps a real store and fails every Save while failing is set
type failingStore struct {
	*GormStore
	mu      sync.Mutex
	failing bool
}

func (f *failingStore) setFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = failing
}

func (f *failingStore) Save(state *State) error {
	f.mu.Lock()
	failing := f.failing
	f.mu.Unlock()
	if failing {
		return errors.New("disk full")
	}
	return f.GormStore.Save(state)
}

func newFailingApp(t *testing.T, pricing PricingService) (*App, *failingStore) {
	t.Helper()

	store := &failingStore{GormStore: newTestStore(t)}
	app, err := NewApp(store, pricing, WithClock(fixedClock, time.UTC))
	require.NoError(t, err)
	return app, store
}

// stateOf copies the app's in-memory state
func stateOf(app *App) *State {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.state.Clone()
}
