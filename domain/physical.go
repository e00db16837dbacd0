package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Shipping pricing for physical products: a flat base rate plus a per-pound
// charge above zero weight
var (
	shippingBaseRate = decimal.NewFromFloat(5.99)
	shippingPerPound = decimal.NewFromFloat(0.75)
)

// Physical is a warehouse-stocked product that ships by weight
type Physical struct {
	ProductBase
	WeightLbs float64
	Supplier  string
}

// compile-time assertion that Physical implements Product
var _ Product = (*Physical)(nil)

// NewPhysical constructs a physical product. Negative price, quantity and
// weight are clamped to zero; so is a non-finite weight.
func NewPhysical(sku, name string, price decimal.Decimal, quantity int, category string, weightLbs float64, supplier string) *Physical {
	if !finite(weightLbs) || weightLbs < 0 {
		weightLbs = 0
	}
	return &Physical{
		ProductBase: newProductBase(sku, name, price, quantity, category),
		WeightLbs:   weightLbs,
		Supplier:    supplier,
	}
}

// Type returns the physical type tag
func (p *Physical) Type() string {
	return TypePhysical
}

// SetWeight replaces the shipping weight, rejecting negative and non-finite
// values
func (p *Physical) SetWeight(weightLbs float64) error {
	if !finite(weightLbs) {
		return NewValidationError("weight", "must be finite", weightLbs)
	}
	if weightLbs < 0 {
		return NewValidationError("weight", "must be non-negative", weightLbs)
	}
	p.WeightLbs = weightLbs
	return nil
}

// ShippingCost estimates shipping as the base rate plus the per-pound charge.
// Weights at or below zero pay the base rate only.
func (p *Physical) ShippingCost() decimal.Decimal {
	if p.WeightLbs <= 0 {
		return shippingBaseRate
	}
	return shippingBaseRate.Add(decimal.NewFromFloat(p.WeightLbs).Mul(shippingPerPound))
}

// Display renders the listing row followed by a physical detail line
func (p *Physical) Display() string {
	detail := fmt.Sprintf("    -> Weight: %s lbs | Supplier: %s", formatFloat(p.WeightLbs), p.Supplier)
	return p.row(TypePhysical) + "\n" + detail
}

// MarshalCSV serializes the product as one comma-separated line:
// Physical,sku,name,price,quantity,category,weight,supplier
func (p *Physical) MarshalCSV() string {
	fields := append([]string{TypePhysical}, p.csvFields()...)
	fields = append(fields, formatFloat(p.WeightLbs), p.Supplier)
	return strings.Join(fields, ",")
}
