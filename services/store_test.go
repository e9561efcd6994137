package services

import (
	"testing"
	"time"

	"github.com/kendall-kelly/laundry-pos-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyStoreUsesDefaults(t *testing.T) {
	store := newTestStore(t)

	state, err := store.Load()
	require.NoError(t, err)

	assert.Len(t, state.Items, len(models.DefaultItems()))
	assert.Empty(t, state.Clients)
	assert.NotNil(t, state.Clients)
	assert.Empty(t, state.Orders)
	assert.Equal(t, "", state.SelectedClient)

	// every item starts at zero
	for _, item := range state.Items {
		qty, ok := state.Quantities[item.ID]
		assert.True(t, ok, "missing quantity for %s", item.ID)
		assert.Equal(t, 0, qty)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	state, err := store.Load()
	require.NoError(t, err)

	state.Items = append(state.Items, models.Item{ID: "item_edredao", Name: "Edredão", Price: decimal.RequireFromString("9.50")})
	state.Clients = []models.Client{{ID: "cl_1", Name: "Maria Silva", Phone: "912345678"}}
	state.Quantities["camisa"] = 7
	state.SelectedClient = "Maria Silva"
	state.Orders = []models.Order{orderAt(1752489000000, fixedNow, models.OrderStatusConfirmed)}
	require.NoError(t, store.Save(state))

	// saving twice overwrites rather than duplicating rows
	require.NoError(t, store.Save(state))

	var count int64
	require.NoError(t, store.db.Model(&models.StoreEntry{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)

	loaded, err := store.Load()
	require.NoError(t, err)

	require.Len(t, loaded.Items, len(models.DefaultItems())+1)
	last := loaded.Items[len(loaded.Items)-1]
	assert.Equal(t, "Edredão", last.Name)
	assert.True(t, last.Price.Equal(decimal.RequireFromString("9.50")))
	assert.Equal(t, 0, loaded.Quantities["item_edredao"])
	assert.Equal(t, 7, loaded.Quantities["camisa"])
	assert.Equal(t, "Maria Silva", loaded.SelectedClient)
	require.Len(t, loaded.Clients, 1)
	assert.Equal(t, "912345678", loaded.Clients[0].Phone)
	require.Len(t, loaded.Orders, 1)
	assert.Equal(t, int64(1752489000000), loaded.Orders[0].ID)
	assert.True(t, loaded.Orders[0].Total.Equal(decimal.RequireFromString("3.60")))
}

func TestLoadBackfillsLegacyTimestamps(t *testing.T) {
	store := newTestStore(t)

	legacy := `[
		{"id": 1700000000000, "date": "14/11/2023, 22:13:20", "client": "A", "quantities": {}, "total": 1, "status": "confirmed"},
		{"id": 0, "date": "01/02/2024, 09:15:00", "client": "B", "quantities": {}, "total": 2, "status": "pending"},
		{"id": 0, "date": "not a date", "client": "C", "quantities": {}, "total": 3, "status": "pending"}
	]`
	require.NoError(t, store.db.Create(&models.StoreEntry{Key: KeyOrders, Value: legacy}).Error)

	state, err := store.Load()
	require.NoError(t, err)
	require.Len(t, state.Orders, 3)

	assert.Equal(t, int64(1700000000000), state.Orders[0].Timestamp)
	assert.Equal(t, time.Date(2024, time.February, 1, 9, 15, 0, 0, time.UTC).UnixMilli(), state.Orders[1].Timestamp)
	assert.Equal(t, fixedNow.UnixMilli(), state.Orders[2].Timestamp)
}

func TestLoadNullRecordsBecomeEmpty(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.db.Create(&models.StoreEntry{Key: KeyClients, Value: "null"}).Error)
	require.NoError(t, store.db.Create(&models.StoreEntry{Key: KeyOrders, Value: "null"}).Error)

	state, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, state.Clients)
	assert.NotNil(t, state.Orders)
	assert.Empty(t, state.Orders)
}

func TestLoadCorruptRecordFails(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.db.Create(&models.StoreEntry{Key: KeyItems, Value: "{broken"}).Error)

	_, err := store.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyItems)
}

func TestBackfillTimestampsLeavesExistingAlone(t *testing.T) {
	orders := []models.Order{{ID: 5, Timestamp: 42}}

	changed := backfillTimestamps(orders, fixedNow, time.UTC)

	assert.Equal(t, 0, changed)
	assert.Equal(t, int64(42), orders[0].Timestamp)
}
