package services

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/kendall-kelly/laundry-pos-api/models"
	"github.com/kendall-kelly/laundry-pos-api/utils"
)

// HistoryFilter selects which orders ListOrders returns
type HistoryFilter string

const (
	FilterAll       HistoryFilter = "all"
	FilterConfirmed HistoryFilter = "confirmed"
	FilterPending   HistoryFilter = "pending"
	FilterToday     HistoryFilter = "today"
	FilterWeek      HistoryFilter = "week"
)

// ParseHistoryFilter accepts the filter names used by the front end; "" means all
func ParseHistoryFilter(value string) (HistoryFilter, error) {
	switch value {
	case "", string(FilterAll):
		return FilterAll, nil
	case string(FilterConfirmed), string(FilterPending), string(FilterToday), string(FilterWeek):
		return HistoryFilter(value), nil
	case "thisWeek":
		return FilterWeek, nil
	}
	return "", newValidationError("filter", "unknown filter "+value)
}

// OrderDetails is an order with its itemised receipt lines
type OrderDetails struct {
	Order models.Order         `json:"order"`
	Lines []models.ReceiptLine `json:"lines"`
}

// ImportResult counts what an import did
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// ListOrders returns the orders matching filter, most recent first.
// "today" compares calendar dates; "week" is a rolling seven days.
func (a *App) ListOrders(filter HistoryFilter) ([]models.Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var keep func(models.Order) bool
	now := a.now()

	switch filter {
	case FilterAll, "":
		keep = func(models.Order) bool { return true }
	case FilterConfirmed:
		keep = func(o models.Order) bool { return o.Status == models.OrderStatusConfirmed }
	case FilterPending:
		keep = func(o models.Order) bool { return o.Status == models.OrderStatusPending }
	case FilterToday:
		keep = func(o models.Order) bool { return utils.SameDay(o.Time(), now, a.location) }
	case FilterWeek:
		weekAgo := now.AddDate(0, 0, -7)
		keep = func(o models.Order) bool { return !o.Time().Before(weekAgo) }
	default:
		return nil, newValidationError("filter", "unknown filter "+string(filter))
	}

	orders := []models.Order{}
	for _, o := range a.state.Orders {
		if keep(o) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// OrderDetails looks an order up by id. A miss is reported with false.
func (a *App) OrderDetails(id int64) (*OrderDetails, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx := a.orderIndexLocked(id)
	if idx < 0 {
		return nil, false
	}
	order := a.state.Orders[idx]
	return &OrderDetails{
		Order: order,
		Lines: BuildReceiptLines(order.Details, a.state.Items),
	}, true
}

// DeleteOrder removes an order from the history
func (a *App) DeleteOrder(id int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx := a.orderIndexLocked(id)
	if idx < 0 {
		return ErrOrderNotFound
	}
	err := a.mutateLocked(func(s *State) error {
		s.Orders = append(s.Orders[:idx], s.Orders[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	a.logger.Info().Int64("order_id", id).Msg("Order deleted")
	return nil
}

// ConfirmOrder moves a pending order in the history to confirmed.
// Confirmed orders are returned unchanged.
func (a *App) ConfirmOrder(id int64, staffID string) (*models.Order, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx := a.orderIndexLocked(id)
	if idx < 0 {
		return nil, ErrOrderNotFound
	}

	confirmed := a.state.Orders[idx]
	if confirmed.Status == models.OrderStatusConfirmed {
		return &confirmed, nil
	}

	confirmed.Status = models.OrderStatusConfirmed
	confirmed.ConfirmedBy = staffID
	err := a.mutateLocked(func(s *State) error {
		s.Orders[idx] = confirmed
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info().Int64("order_id", id).Msg("Pending order confirmed")
	return &confirmed, nil
}

// RecreateOrder loads an old order's quantities into a fresh selection and
// selects its client. Items no longer in the catalog are dropped. No order is created.
func (a *App) RecreateOrder(id int64) (models.QuantitySelection, string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx := a.orderIndexLocked(id)
	if idx < 0 {
		return nil, "", ErrOrderNotFound
	}
	order := a.state.Orders[idx]

	selection := make(models.QuantitySelection, len(a.state.Items))
	for _, item := range a.state.Items {
		selection[item.ID] = 0
	}
	for itemID, qty := range order.Quantities {
		if _, ok := selection[itemID]; ok {
			selection[itemID] = utils.ClampQuantity(qty)
		}
	}

	err := a.mutateLocked(func(s *State) error {
		s.Quantities = selection.Clone()
		if order.Client == models.GeneralClientName {
			s.SelectedClient = ""
		} else {
			s.SelectedClient = order.Client
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	a.startDraftingLocked()

	a.logger.Info().Int64("order_id", id).Msg("Order recreated into selection")
	return selection.Clone(), order.Client, nil
}

// ExportOrders returns the whole history as an indented JSON array
func (a *App) ExportOrders() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	orders := a.state.Orders
	if orders == nil {
		orders = []models.Order{}
	}
	return json.MarshalIndent(orders, "", "  ")
}

// ImportOrders merges a JSON array of orders into the history. Orders whose id
// is already present are skipped. Anything but an array of order objects is
// rejected without touching the history.
func (a *App) ImportOrders(data []byte) (ImportResult, error) {
	trimmedData := bytes.TrimSpace(data)
	if len(trimmedData) == 0 || trimmedData[0] != '[' {
		return ImportResult{}, newImportFormatError("import file must be a JSON array of orders", nil)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(trimmedData, &records); err != nil {
		return ImportResult{}, newImportFormatError("import file must be a JSON array of orders", err)
	}

	incoming := make([]models.Order, 0, len(records))
	for _, raw := range records {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return ImportResult{}, newImportFormatError("import file contains a record that is not an order", nil)
		}
		var order models.Order
		if err := json.Unmarshal(trimmed, &order); err != nil {
			return ImportResult{}, newImportFormatError("import file contains a malformed order", err)
		}
		if order.ID == 0 {
			return ImportResult{}, newImportFormatError("import file contains an order without id", nil)
		}
		if !order.Status.Valid() {
			return ImportResult{}, newImportFormatError("import file contains an order with unknown status "+string(order.Status), nil)
		}
		if order.Quantities == nil {
			order.Quantities = models.QuantitySelection{}
		}
		incoming = append(incoming, order)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	backfillTimestamps(incoming, a.now(), a.location)

	seen := make(map[int64]bool, len(a.state.Orders)+len(incoming))
	for _, o := range a.state.Orders {
		seen[o.ID] = true
	}

	merged := append([]models.Order(nil), a.state.Orders...)
	result := ImportResult{}
	for _, o := range incoming {
		if seen[o.ID] {
			result.Skipped++
			continue
		}
		seen[o.ID] = true
		merged = append(merged, o)
		result.Imported++
	}

	if result.Imported > 0 {
		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].SortKey() > merged[j].SortKey()
		})
		err := a.mutateLocked(func(s *State) error {
			s.Orders = merged
			return nil
		})
		if err != nil {
			return ImportResult{}, err
		}
	}

	result.Total = len(a.state.Orders)
	a.logger.Info().Int("imported", result.Imported).Int("skipped", result.Skipped).Msg("Orders imported")
	return result, nil
}

func (a *App) orderIndexLocked(id int64) int {
	for i, o := range a.state.Orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}
