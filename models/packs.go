package models

import "github.com/shopspring/decimal"

// PackPrice is the price of one bundle type offered by the pricing service
type PackPrice struct {
	Type  string
	Price decimal.Decimal
}

// MixedPacks are bundles of assorted pieces, keyed by capacity
var MixedPacks = []PackPrice{
	{Type: "20", Price: decimal.RequireFromString("16.00")},
	{Type: "40", Price: decimal.RequireFromString("28.00")},
	{Type: "60", Price: decimal.RequireFromString("39.00")},
}

// ShirtPacks are shirt-only bundles, keyed by capacity
var ShirtPacks = []PackPrice{
	{Type: "5", Price: decimal.RequireFromString("6.50")},
	{Type: "10", Price: decimal.RequireFromString("12.00")},
}

// FindPack returns the price of a pack type, zero when unknown
func FindPack(packs []PackPrice, packType string) (decimal.Decimal, bool) {
	for _, p := range packs {
		if p.Type == packType {
			return p.Price, true
		}
	}
	return decimal.Zero, false
}

// ReceiptLine is one itemised row of a priced order
type ReceiptLine struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
