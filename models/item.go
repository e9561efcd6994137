package models

import "github.com/shopspring/decimal"

func init() {
	// Prices and totals travel as JSON numbers, matching the stored history format.
	decimal.MarshalJSONWithoutQuotes = true
}

// Item is a catalog entry priced per piece
type Item struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// DefaultItems returns the built-in catalog used when none has been stored yet
func DefaultItems() []Item {
	return []Item{
		{ID: "peca_variada", Name: "Peça Variada", Price: decimal.RequireFromString("0.90")},
		{ID: "camisa", Name: "Camisa", Price: decimal.RequireFromString("1.80")},
		{ID: "toalha_ou_lencol", Name: "Toalha ou Lençol", Price: decimal.RequireFromString("1.50")},
		{ID: "capa_de_edredon", Name: "Capa de Edredom", Price: decimal.RequireFromString("3.50")},
		{ID: "vestido_simples", Name: "Vestido Simples", Price: decimal.RequireFromString("3.50")},
		{ID: "calca_com_vinco", Name: "Calça com Vinco", Price: decimal.RequireFromString("3.50")},
		{ID: "blazer", Name: "Blazer", Price: decimal.RequireFromString("4.50")},
		{ID: "calca_com_blazer", Name: "Calça com Blazer", Price: decimal.RequireFromString("12.50")},
		{ID: "vestido_cerimonia", Name: "Vestido de Cerimônia", Price: decimal.RequireFromString("12.50")},
		{ID: "blusao_almofadado", Name: "Blusão Almofadado", Price: decimal.RequireFromString("13.00")},
		{ID: "casaco_sobretudo", Name: "Casaco Sobretudo", Price: decimal.RequireFromString("16.90")},
		{ID: "blusao_penas", Name: "Blusão de Penas", Price: decimal.RequireFromString("20.00")},
		{ID: "vestido_noiva", Name: "Vestido de Noiva", Price: decimal.RequireFromString("100.00")},
	}
}

// FindItem returns the item with the given id
func FindItem(items []Item, id string) (Item, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}
