package services

import (
	"fmt"
	"sort"

	"github.com/kendall-kelly/laundry-pos-api/models"
	"github.com/shopspring/decimal"
)

// BuildReceiptLines itemises a pricing breakdown: mixed packs, shirt packs,
// loose items, then fixed-price items. Items no longer in the catalog are shown
// by id at price 0.
func BuildReceiptLines(details models.PricingDetails, items []models.Item) []models.ReceiptLine {
	lines := []models.ReceiptLine{}

	for _, packType := range sortedKeys(details.MixedPacks) {
		qty := details.MixedPacks[packType]
		if qty <= 0 {
			continue
		}
		price, _ := models.FindPack(models.MixedPacks, packType)
		lines = append(lines, newLine(fmt.Sprintf("Mixed pack %s pieces", packType), qty, price))
	}

	for _, packType := range sortedKeys(details.ShirtPacks) {
		qty := details.ShirtPacks[packType]
		if qty <= 0 {
			continue
		}
		price, _ := models.FindPack(models.ShirtPacks, packType)
		lines = append(lines, newLine(fmt.Sprintf("Shirt pack %s", packType), qty, price))
	}

	for _, group := range []map[string]int{details.LooseItems, details.FixedItems} {
		for _, id := range sortedKeys(group) {
			qty := group[id]
			if qty <= 0 {
				continue
			}
			name, price := id, decimal.Zero
			if item, ok := models.FindItem(items, id); ok {
				name, price = item.Name, item.Price
			}
			lines = append(lines, newLine(name, qty, price))
		}
	}

	return lines
}

func newLine(description string, qty int, unit decimal.Decimal) models.ReceiptLine {
	return models.ReceiptLine{
		Description: description,
		Quantity:    qty,
		UnitPrice:   unit,
		Subtotal:    unit.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
