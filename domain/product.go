// Package domain defines core business types and interfaces.
package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Type tags discriminate product variants in serialized lines, listings and
// type search
const (
	TypePhysical = "Physical"
	TypeDigital  = "Digital"
)

// Display column sizing shared by every variant
const (
	tableWidth       = 100
	maxNameChars     = 22
	maxCategoryChars = 12
	maxLinkChars     = 30
)

// Product is the behavior shared by every inventory record variant
type Product interface {
	Base() *ProductBase
	Type() string
	TotalValue() decimal.Decimal
	ApplyDiscount(percent float64) decimal.Decimal
	Display() string
	MarshalCSV() string
}

// ProductBase holds the fields common to all product variants. Variants embed
// it and expose it through Base, so a product held as an interface value can
// be read and updated in place.
type ProductBase struct {
	SKU      string
	Name     string
	Price    decimal.Decimal
	Quantity int
	Category string
}

// ProductUpdate carries optional replacement values for an update. A nil
// field leaves the current value untouched.
type ProductUpdate struct {
	Name     *string
	Price    *decimal.Decimal
	Quantity *int
}

// newProductBase builds the shared field set, clamping negative price and
// quantity to zero.
func newProductBase(sku, name string, price decimal.Decimal, quantity int, category string) ProductBase {
	if price.IsNegative() {
		price = decimal.Zero
	}
	if quantity < 0 {
		quantity = 0
	}
	return ProductBase{
		SKU:      sku,
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Category: category,
	}
}

// Base returns the shared field set of the product
func (b *ProductBase) Base() *ProductBase {
	return b
}

// SetPrice replaces the unit price, rejecting negative values
func (b *ProductBase) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return NewValidationError("price", "must be non-negative", price.String())
	}
	b.Price = price
	return nil
}

// SetQuantity replaces the stock quantity, rejecting negative values
func (b *ProductBase) SetQuantity(quantity int) error {
	if quantity < 0 {
		return NewValidationError("quantity", "must be non-negative", quantity)
	}
	b.Quantity = quantity
	return nil
}

// TotalValue returns price multiplied by quantity on hand
func (b *ProductBase) TotalValue() decimal.Decimal {
	return b.Price.Mul(decimal.NewFromInt(int64(b.Quantity)))
}

// ApplyDiscount returns the price reduced by percent. Percentages outside
// [0, 100] and non-finite percentages leave the price unchanged. The stored
// price is never modified.
func (b *ProductBase) ApplyDiscount(percent float64) decimal.Decimal {
	if !finite(percent) || percent < 0 || percent > 100 {
		return b.Price
	}
	return discounted(b.Price, percent)
}

// discounted computes price reduced by percent of itself
func discounted(price decimal.Decimal, percent float64) decimal.Decimal {
	fraction := decimal.NewFromFloat(percent).Div(decimal.NewFromInt(100))
	return price.Mul(decimal.NewFromInt(1).Sub(fraction))
}

// row renders the fixed-width listing row shared by all variants
func (b *ProductBase) row(typ string) string {
	return fmt.Sprintf("%-12s%-25s$%-11s%-10d%-15s%-12s$%-14s",
		b.SKU,
		truncate(b.Name, maxNameChars),
		b.Price.StringFixed(2),
		b.Quantity,
		truncate(b.Category, maxCategoryChars),
		typ,
		b.TotalValue().StringFixed(2))
}

// csvFields returns the shared fields in serialization order
func (b *ProductBase) csvFields() []string {
	return []string{b.SKU, b.Name, b.Price.String(), strconv.Itoa(b.Quantity), b.Category}
}

// TableHeader returns the column headings printed above product listings
func TableHeader() string {
	return fmt.Sprintf("%-12s%-25s%-12s%-10s%-15s%-12s%-15s",
		"SKU", "Name", "Price", "Qty", "Category", "Type", "Total Value") + "\n" + TableRule()
}

// TableRule returns the horizontal rule matching the listing width
func TableRule() string {
	return strings.Repeat("-", tableWidth)
}

// truncate shortens s to at most max characters, marking the cut with an
// ellipsis. Only rendered output is truncated, never stored values.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// formatFloat renders a float in its shortest round-trippable form
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// finite reports whether v is neither NaN nor an infinity
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
