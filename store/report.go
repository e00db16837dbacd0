package store

import (
	"github.com/shopspring/decimal"

	"smallbiz_inventory/domain"
)

// Summary aggregates counts and values across the inventory, split by
// product type
type Summary struct {
	TotalCount    int
	PhysicalCount int
	DigitalCount  int
	PhysicalValue decimal.Decimal
	DigitalValue  decimal.Decimal
	TotalValue    decimal.Decimal
}

// Summary computes the inventory summary report
func (inv *Inventory) Summary() Summary {
	s := Summary{
		PhysicalValue: decimal.Zero,
		DigitalValue:  decimal.Zero,
		TotalValue:    decimal.Zero,
	}
	for _, p := range inv.products {
		v := p.TotalValue()
		s.TotalCount++
		s.TotalValue = s.TotalValue.Add(v)
		if p.Type() == domain.TypePhysical {
			s.PhysicalCount++
			s.PhysicalValue = s.PhysicalValue.Add(v)
		} else {
			s.DigitalCount++
			s.DigitalValue = s.DigitalValue.Add(v)
		}
	}
	return s
}

// LowStock returns products whose quantity is strictly below threshold, in
// sequence order
func (inv *Inventory) LowStock(threshold int) []domain.Product {
	out := make([]domain.Product, 0, len(inv.products))
	for _, p := range inv.products {
		if p.Base().Quantity < threshold {
			out = append(out, p)
		}
	}
	return out
}
