package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// Order is a priced order. Quantities, client and total are snapshots taken when
// the order was priced; only Status (and ConfirmedBy) change afterwards.
type Order struct {
	ID          int64             `json:"id"`                     // creation time in milliseconds, unique in the history
	Timestamp   int64             `json:"timestamp,omitempty"`    // milliseconds since epoch
	Date        string            `json:"date"`                   // display date, DD/MM/YYYY, HH:MM:SS
	Client      string            `json:"client"`                 // client name at pricing time
	Quantities  QuantitySelection `json:"quantities"`
	Total       decimal.Decimal   `json:"total"`
	Status      OrderStatus       `json:"status"`
	Details     PricingDetails    `json:"details"`
	ReceiptURL  string            `json:"pdf_url,omitempty"`
	ConfirmedBy string            `json:"confirmed_by,omitempty"` // staff subject, when authenticated
}

// SortKey is the timestamp, falling back to the id for records without one
func (o Order) SortKey() int64 {
	if o.Timestamp != 0 {
		return o.Timestamp
	}
	return o.ID
}

// Time returns the order's creation time
func (o Order) Time() time.Time {
	return time.UnixMilli(o.SortKey())
}

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

// IsPending reports whether the order still awaits confirmation
func (o Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// CostBreakdown splits the total by pricing category
type CostBreakdown struct {
	MixedPacks decimal.Decimal `json:"packs_mistos"`
	ShirtPacks decimal.Decimal `json:"packs_camisas"`
	LooseItems decimal.Decimal `json:"itens_avulsos"`
	FixedItems decimal.Decimal `json:"custos_fixos"`
}

// PricingDetails is the breakdown returned by the pricing service and kept on the order.
// Field names follow the pricing service's wire format.
type PricingDetails struct {
	Costs              CostBreakdown  `json:"detalhe_custos"`
	MixedPacks         map[string]int `json:"packs_mistos"`  // pack type -> count
	ShirtPacks         map[string]int `json:"packs_camisas"` // pack type -> count
	LooseItems         map[string]int `json:"itens_avulsos"` // item id -> count
	FixedItems         map[string]int `json:"itens_fixos"`   // item id -> count
	ShirtsInMixedPacks map[string]int `json:"camisas_em_packs_mistos,omitempty"`
}

// PricingResult is a successful answer from the pricing service
type PricingResult struct {
	TotalCost  decimal.Decimal
	ReceiptURL string
	Details    PricingDetails
}
