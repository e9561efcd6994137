package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/kendall-kelly/laundry-pos-api/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BuilderState is the step of the order being built
type BuilderState string

const (
	BuilderIdle      BuilderState = "idle"
	BuilderDrafting  BuilderState = "drafting"
	BuilderSubmitted BuilderState = "submitted"
)

// App owns the POS state. Every operation goes through it; the mutex
// serialises mutations coming from concurrent requests.
type App struct {
	mu       sync.Mutex
	store    Store
	pricing  PricingService
	state    *State
	builder  BuilderState
	quote    *Quote
	inFlight bool
	draftGen uint64 // bumped whenever the selection a quote was priced from changes
	now      func() time.Time
	location *time.Location
	logger   zerolog.Logger
}

// Option configures an App
type Option func(*App)

// WithClock replaces the wall clock and the time zone used for calendar filters
func WithClock(now func() time.Time, loc *time.Location) Option {
	return func(a *App) {
		a.now = now
		a.location = loc
	}
}

// NewApp loads the persisted state and returns a ready App
func NewApp(store Store, pricing PricingService, opts ...Option) (*App, error) {
	a := &App{
		store:    store,
		pricing:  pricing,
		builder:  BuilderIdle,
		now:      time.Now,
		location: time.Local,
		logger:   log.With().Str("component", "app").Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}

	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	a.state = state

	a.logger.Info().
		Int("items", len(state.Items)).
		Int("clients", len(state.Clients)).
		Int("orders", len(state.Orders)).
		Msg("State loaded")
	return a, nil
}

// mutateLocked applies fn to a copy of the state and keeps the copy only once
// it has been saved, so a failed save leaves memory and database unchanged.
// Callers hold a.mu.
func (a *App) mutateLocked(fn func(s *State) error) error {
	next := a.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := a.store.Save(next); err != nil {
		a.logger.Error().Err(err).Msg("Failed to persist state")
		return err
	}
	a.state = next
	return nil
}

// Snapshot is a read-only copy of the builder side of the state
type Snapshot struct {
	Quantities     models.QuantitySelection `json:"quantities"`
	SelectedClient string                   `json:"selected_client"`
	ClientKnown    bool                     `json:"client_known"`
	State          BuilderState             `json:"state"`
	Pieces         int                      `json:"pieces"`
}

// Selection returns the quantities being edited and the builder state
func (a *App) Selection() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	name, known := a.selectedClientLocked()
	return Snapshot{
		Quantities:     a.state.Quantities.Clone(),
		SelectedClient: name,
		ClientKnown:    known,
		State:          a.builder,
		Pieces:         a.state.Quantities.Total(),
	}
}

// BuilderState returns the current step of the order being built
func (a *App) BuilderState() BuilderState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.builder
}
