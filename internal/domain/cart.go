package domain

import "github.com/shopspring/decimal"

// CartItem is one product+size line within a user's cart.
//
// The merge identity of a line is (ProductID, Size): a cart never holds
// two lines with the same pair. ID is assigned once at creation and is
// the address used for removal and quantity updates.
type CartItem struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductPrice decimal.Decimal `json:"productPrice"`
	ProductImage string          `json:"productImage"`
	Quantity     int             `json:"quantity"`
	Size         string          `json:"size"`
}

// CloneCart returns an independent copy of a cart slice so snapshots
// handed to callers (or into orders) cannot alias live state.
func CloneCart(items []CartItem) []CartItem {
	if items == nil {
		return []CartItem{}
	}
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
