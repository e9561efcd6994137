package services

import (
	"context"

	"github.com/kendall-kelly/laundry-pos-api/models"
	"github.com/kendall-kelly/laundry-pos-api/utils"
	"github.com/shopspring/decimal"
)

// Quote is a priced draft order together with what it saves over loose prices
type Quote struct {
	Order          models.Order         `json:"order"`
	BaselineCost   decimal.Decimal      `json:"baseline_cost"`
	Savings        decimal.Decimal      `json:"savings"`
	SavingsPercent decimal.Decimal      `json:"savings_percent"`
	Lines          []models.ReceiptLine `json:"lines"`
}

// SetQuantity stores a typed quantity for an item. Non-numeric input counts
// as 0 and negatives are clamped.
func (a *App) SetQuantity(itemID, raw string) (int, error) {
	return a.updateQuantity(itemID, func(int) int {
		return utils.ParseQuantity(raw)
	})
}

// AdjustQuantity adds delta to an item's quantity, never going below 0
func (a *App) AdjustQuantity(itemID string, delta int) (int, error) {
	return a.updateQuantity(itemID, func(current int) int {
		return utils.ClampQuantity(current + delta)
	})
}

func (a *App) updateQuantity(itemID string, next func(int) int) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var value int
	err := a.mutateLocked(func(s *State) error {
		current, ok := s.Quantities[itemID]
		if !ok {
			return ErrItemNotFound
		}
		value = next(current)
		s.Quantities[itemID] = value
		return nil
	})
	if err != nil {
		return 0, err
	}
	a.startDraftingLocked()
	return value, nil
}

// ResetQuantities sets every quantity to zero
func (a *App) ResetQuantities() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.mutateLocked(func(s *State) error {
		s.Quantities.Reset()
		return nil
	})
	if err != nil {
		return err
	}
	a.startDraftingLocked()
	return nil
}

// startDraftingLocked moves the builder to drafting; a quote for the old
// quantities no longer applies, nor does any price still being fetched.
func (a *App) startDraftingLocked() {
	a.draftGen++
	if a.quote != nil {
		a.logger.Debug().Int64("order_id", a.quote.Order.ID).Msg("Quantities changed, discarding quote")
	}
	a.quote = nil
	a.builder = BuilderDrafting
}

// BaselineCost prices a selection at loose catalog prices. Ids missing from
// the catalog are skipped.
func BaselineCost(items []models.Item, selection models.QuantitySelection) decimal.Decimal {
	total := decimal.Zero
	for id, qty := range selection {
		if item, ok := models.FindItem(items, id); ok {
			total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(qty))))
		}
	}
	return total
}

// Savings returns how much cheaper total is than baseline, and the percentage
// of the baseline rounded to one decimal place
func Savings(baseline, total decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	savings := baseline.Sub(total)
	if !baseline.IsPositive() {
		return savings, decimal.Zero
	}
	percent := savings.Div(baseline).Mul(decimal.NewFromInt(100)).Round(1)
	return savings, percent
}

// Submit prices the current selection. Only one request may be outstanding;
// on failure the builder stays in drafting so staff can retry. A price that
// comes back after the selection was edited is dropped with ErrSelectionChanged.
func (a *App) Submit(ctx context.Context) (*Quote, error) {
	a.mu.Lock()
	if a.inFlight {
		a.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	a.inFlight = true
	a.quote = nil
	a.builder = BuilderDrafting

	selection := a.state.Quantities.Clone()
	clientName := a.state.SelectedClient
	if clientName == "" {
		clientName = models.GeneralClientName
	}
	baseline := BaselineCost(a.state.Items, selection)
	gen := a.draftGen
	a.mu.Unlock()

	result, err := a.pricing.Optimize(ctx, selection, clientName)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.inFlight = false

	if err != nil {
		a.logger.Warn().Err(err).Msg("Pricing failed, draft kept")
		return nil, err
	}
	if a.draftGen != gen {
		a.logger.Warn().Msg("Selection edited while pricing, result dropped")
		return nil, ErrSelectionChanged
	}

	now := a.now()
	order := models.Order{
		ID:         now.UnixMilli(),
		Timestamp:  now.UnixMilli(),
		Date:       utils.FormatDisplayDate(now.In(a.location)),
		Client:     clientName,
		Quantities: selection,
		Total:      result.TotalCost,
		Status:     models.OrderStatusPending,
		Details:    result.Details,
		ReceiptURL: result.ReceiptURL,
	}

	savings, percent := Savings(baseline, result.TotalCost)
	a.quote = &Quote{
		Order:          order,
		BaselineCost:   baseline,
		Savings:        savings,
		SavingsPercent: percent,
		Lines:          BuildReceiptLines(order.Details, a.state.Items),
	}
	a.builder = BuilderSubmitted

	a.logger.Info().
		Int64("order_id", order.ID).
		Str("total", order.Total.StringFixed(2)).
		Str("savings", savings.StringFixed(2)).
		Msg("Order priced")

	quote := *a.quote
	return &quote, nil
}

// CurrentQuote returns the quote awaiting confirmation, if any
func (a *App) CurrentQuote() (*Quote, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.quote == nil {
		return nil, false
	}
	quote := *a.quote
	return &quote, true
}

// Confirm records the draft as a confirmed order at the top of the history
// and clears the selection. staffID may be empty.
func (a *App) Confirm(staffID string) (*models.Order, error) {
	return a.closeDraft(models.OrderStatusConfirmed, staffID)
}

// Hold records the draft as a pending order, to be confirmed later from the
// history, and clears the selection
func (a *App) Hold() (*models.Order, error) {
	return a.closeDraft(models.OrderStatusPending, "")
}

func (a *App) closeDraft(status models.OrderStatus, staffID string) (*models.Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.quote == nil {
		return nil, ErrNoDraft
	}

	order := a.quote.Order
	order.Status = status
	if status == models.OrderStatusConfirmed {
		order.ConfirmedBy = staffID
	}
	order.ID = a.uniqueOrderIDLocked(order.ID)

	err := a.mutateLocked(func(s *State) error {
		s.Orders = append([]models.Order{order}, s.Orders...)
		s.Quantities.Reset()
		return nil
	})
	if err != nil {
		return nil, err
	}
	a.quote = nil
	a.builder = BuilderIdle

	a.logger.Info().Int64("order_id", order.ID).Str("status", string(status)).Msg("Order recorded")
	return &order, nil
}

// Cancel drops the draft and keeps the selection
func (a *App) Cancel() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.quote == nil {
		return ErrNoDraft
	}
	a.quote = nil
	a.builder = BuilderIdle
	return nil
}

// uniqueOrderIDLocked bumps id until no order in the history uses it
func (a *App) uniqueOrderIDLocked(id int64) int64 {
	for {
		taken := false
		for _, o := range a.state.Orders {
			if o.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		id++
	}
}
