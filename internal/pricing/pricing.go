package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stylora-be/internal/domain"
)

// Default flat-rate policy: fixed shipping fee, single tax rate applied
// to subtotal plus shipping.
const (
	DefaultShippingFee = "5.50"
	DefaultTaxRate     = "0.132"
)

// Breakdown is derived from a cart snapshot on demand and never stored.
type Breakdown struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

type Calculator struct {
	shippingFee decimal.Decimal
	taxRate     decimal.Decimal
}

func NewCalculator(shippingFee, taxRate decimal.Decimal) Calculator {
	return Calculator{shippingFee: shippingFee, taxRate: taxRate}
}

// FromStrings parses decimal strings, e.g. from config.
func FromStrings(shippingFee, taxRate string) (Calculator, error) {
	fee, err := decimal.NewFromString(shippingFee)
	if err != nil {
		return Calculator{}, fmt.Errorf("parse shipping fee %q: %w", shippingFee, err)
	}
	rate, err := decimal.NewFromString(taxRate)
	if err != nil {
		return Calculator{}, fmt.Errorf("parse tax rate %q: %w", taxRate, err)
	}
	return Calculator{shippingFee: fee, taxRate: rate}, nil
}

func Default() Calculator {
	c, err := FromStrings(DefaultShippingFee, DefaultTaxRate)
	if err != nil {
		panic(err)
	}
	return c
}

// Compute derives the full breakdown from a cart snapshot. Pure: an
// empty cart yields subtotal 0 and total = shipping + tax on shipping.
// Values are exact; rounding is left to presentation.
func (c Calculator) Compute(items []domain.CartItem) Breakdown {
	subtotal := decimal.Zero
	for _, item := range items {
		line := item.ProductPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	beforeTax := subtotal.Add(c.shippingFee)
	tax := beforeTax.Mul(c.taxRate)

	return Breakdown{
		Subtotal: subtotal,
		Shipping: c.shippingFee,
		Tax:      tax,
		Total:    beforeTax.Add(tax),
	}
}
