package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kendall-kelly/laundry-pos-api/models"
	"github.com/kendall-kelly/laundry-pos-api/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Storage keys of the five persisted records
const (
	KeyItems          = "laundryItems"
	KeyClients        = "laundryClients"
	KeyQuantities     = "currentQuantities"
	KeyOrders         = "orderHistory"
	KeySelectedClient = "currentClient"
)

// State is everything the POS keeps between requests
type State struct {
	Items          []models.Item
	Clients        []models.Client
	Quantities     models.QuantitySelection
	Orders         []models.Order // most recent first
	SelectedClient string
}

// Clone copies the state deeply enough that edits to the copy never reach s.
// Orders are copied by value; their quantity maps are never edited in place.
func (s *State) Clone() *State {
	return &State{
		Items:          append([]models.Item{}, s.Items...),
		Clients:        append([]models.Client{}, s.Clients...),
		Quantities:     s.Quantities.Clone(),
		Orders:         append([]models.Order{}, s.Orders...),
		SelectedClient: s.SelectedClient,
	}
}

// Store loads and saves the application state
type Store interface {
	Load() (*State, error)
	Save(state *State) error
}

// GormStore keeps each record of the state as a JSON blob in store_entries
type GormStore struct {
	db       *gorm.DB
	location *time.Location
	now      func() time.Time
	logger   zerolog.Logger
}

// NewGormStore creates a store on db. Migrations are run by the caller.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:       db,
		location: time.Local,
		now:      time.Now,
		logger:   log.With().Str("component", "store").Logger(),
	}
}

// WithClock sets the clock and time zone used to backfill legacy timestamps
func (s *GormStore) WithClock(now func() time.Time, loc *time.Location) *GormStore {
	s.now = now
	s.location = loc
	return s
}

// Load reads the five records, substituting defaults for absent ones
func (s *GormStore) Load() (*State, error) {
	var entries []models.StoreEntry
	if err := s.db.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	values := make(map[string]string, len(entries))
	for _, entry := range entries {
		values[entry.Key] = entry.Value
	}

	state := &State{
		Items:      models.DefaultItems(),
		Clients:    []models.Client{},
		Quantities: models.QuantitySelection{},
		Orders:     []models.Order{},
	}

	if err := decodeEntry(values, KeyItems, &state.Items); err != nil {
		return nil, err
	}
	if err := decodeEntry(values, KeyClients, &state.Clients); err != nil {
		return nil, err
	}
	if err := decodeEntry(values, KeyQuantities, &state.Quantities); err != nil {
		return nil, err
	}
	if err := decodeEntry(values, KeyOrders, &state.Orders); err != nil {
		return nil, err
	}
	state.SelectedClient = values[KeySelectedClient]

	// "null" blobs decode to nil slices and maps
	if state.Items == nil {
		state.Items = []models.Item{}
	}
	if state.Clients == nil {
		state.Clients = []models.Client{}
	}
	if state.Orders == nil {
		state.Orders = []models.Order{}
	}
	if state.Quantities == nil {
		state.Quantities = models.QuantitySelection{}
	}

	for _, item := range state.Items {
		if _, ok := state.Quantities[item.ID]; !ok {
			state.Quantities[item.ID] = 0
		}
	}

	if n := backfillTimestamps(state.Orders, s.now(), s.location); n > 0 {
		s.logger.Info().Int("orders", n).Msg("Backfilled missing order timestamps")
	}

	return state, nil
}

// Save overwrites all five records in one transaction
func (s *GormStore) Save(state *State) error {
	entries := make([]models.StoreEntry, 0, 5)
	for _, record := range []struct {
		key   string
		value interface{}
	}{
		{KeyItems, nonNilItems(state.Items)},
		{KeyClients, nonNilClients(state.Clients)},
		{KeyQuantities, nonNilQuantities(state.Quantities)},
		{KeyOrders, nonNilOrders(state.Orders)},
	} {
		data, err := json.Marshal(record.value)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", record.key, err)
		}
		entries = append(entries, models.StoreEntry{Key: record.key, Value: string(data)})
	}
	entries = append(entries, models.StoreEntry{Key: KeySelectedClient, Value: state.SelectedClient})

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range entries {
			entries[i].UpdatedAt = s.now()
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&entries[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save store: %w", err)
	}

	s.logger.Debug().Int("orders", len(state.Orders)).Int("items", len(state.Items)).Msg("State saved")
	return nil
}

func decodeEntry(values map[string]string, key string, target interface{}) error {
	raw, ok := values[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// backfillTimestamps derives a timestamp for legacy orders that lack one:
// the numeric id, else the parsed display date, else now. It returns how
// many orders were changed.
func backfillTimestamps(orders []models.Order, now time.Time, loc *time.Location) int {
	changed := 0
	for i := range orders {
		if orders[i].Timestamp != 0 {
			continue
		}
		changed++
		switch {
		case orders[i].ID != 0:
			orders[i].Timestamp = orders[i].ID
		case orders[i].Date != "":
			if t, err := utils.ParseDisplayDate(orders[i].Date, loc); err == nil {
				orders[i].Timestamp = t.UnixMilli()
			} else {
				orders[i].Timestamp = now.UnixMilli()
			}
		default:
			orders[i].Timestamp = now.UnixMilli()
		}
	}
	return changed
}

func nonNilItems(v []models.Item) []models.Item {
	if v == nil {
		return []models.Item{}
	}
	return v
}

func nonNilClients(v []models.Client) []models.Client {
	if v == nil {
		return []models.Client{}
	}
	return v
}

func nonNilOrders(v []models.Order) []models.Order {
	if v == nil {
		return []models.Order{}
	}
	return v
}

func nonNilQuantities(v models.QuantitySelection) models.QuantitySelection {
	if v == nil {
		return models.QuantitySelection{}
	}
	return v
}
