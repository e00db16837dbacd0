// Package store provides the in-memory inventory and its file persistence.
package store

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"smallbiz_inventory/domain"
)

// Inventory pairs an insertion-ordered product sequence with a unique-SKU
// index. Both structures hold the same record handles, so reordering the
// sequence never invalidates the index. Inventory is not safe for concurrent
// use; callers that share one across goroutines add their own locking.
type Inventory struct {
	products     []domain.Product
	index        map[string]domain.Product
	dataFilePath string
	logger       *zap.Logger
}

// NewInventory constructs an empty inventory that persists to dataFilePath.
// A nil logger disables logging.
func NewInventory(dataFilePath string, logger *zap.Logger) *Inventory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inventory{
		index:        make(map[string]domain.Product),
		dataFilePath: dataFilePath,
		logger:       logger,
	}
}

// AddProduct appends p to the sequence and indexes it by SKU. The inventory
// owns the record after a successful add.
func (inv *Inventory) AddProduct(p domain.Product) error {
	if p == nil {
		return domain.NewValidationError("product", "cannot be nil", nil)
	}
	sku := p.Base().SKU
	if _, exists := inv.index[sku]; exists {
		return domain.NewDuplicateSKUError(sku)
	}
	inv.products = append(inv.products, p)
	inv.index[sku] = p
	inv.logger.Debug("product added", zap.String("sku", sku), zap.String("type", p.Type()))
	return nil
}

// GetProduct looks up a product by SKU. An absent SKU is a normal outcome,
// reported by the second return value.
func (inv *Inventory) GetProduct(sku string) (domain.Product, bool) {
	p, ok := inv.index[sku]
	return p, ok
}

// UpdateProduct applies the provided fields to the product with the given
// SKU. Every provided value is validated before any is applied, so a
// rejected update leaves the record untouched.
func (inv *Inventory) UpdateProduct(sku string, upd domain.ProductUpdate) error {
	p, ok := inv.index[sku]
	if !ok {
		return domain.NewNotFoundError(sku)
	}
	if upd.Price != nil && upd.Price.IsNegative() {
		return domain.NewValidationError("price", "must be non-negative", upd.Price.String())
	}
	if upd.Quantity != nil && *upd.Quantity < 0 {
		return domain.NewValidationError("quantity", "must be non-negative", *upd.Quantity)
	}

	b := p.Base()
	if upd.Name != nil {
		b.Name = *upd.Name
	}
	if upd.Price != nil {
		b.Price = *upd.Price
	}
	if upd.Quantity != nil {
		b.Quantity = *upd.Quantity
	}
	inv.logger.Debug("product updated", zap.String("sku", sku))
	return nil
}

// RemoveProduct deletes the product with the given SKU from the sequence and
// the index
func (inv *Inventory) RemoveProduct(sku string) error {
	if _, ok := inv.index[sku]; !ok {
		return domain.NewNotFoundError(sku)
	}
	for i, p := range inv.products {
		if p.Base().SKU == sku {
			inv.products = append(inv.products[:i], inv.products[i+1:]...)
			break
		}
	}
	delete(inv.index, sku)
	inv.logger.Debug("product removed", zap.String("sku", sku))
	return nil
}

// SearchByName returns products whose name contains term, case-insensitively,
// in sequence order
func (inv *Inventory) SearchByName(term string) []domain.Product {
	needle := strings.ToLower(term)
	out := make([]domain.Product, 0, len(inv.products))
	for _, p := range inv.products {
		if strings.Contains(strings.ToLower(p.Base().Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// SearchByCategory returns products whose category contains term,
// case-insensitively, in sequence order
func (inv *Inventory) SearchByCategory(term string) []domain.Product {
	needle := strings.ToLower(term)
	out := make([]domain.Product, 0, len(inv.products))
	for _, p := range inv.products {
		if strings.Contains(strings.ToLower(p.Base().Category), needle) {
			out = append(out, p)
		}
	}
	return out
}

// SearchByType returns products whose type tag equals typ,
// case-insensitively, in sequence order
func (inv *Inventory) SearchByType(typ string) []domain.Product {
	out := make([]domain.Product, 0, len(inv.products))
	for _, p := range inv.products {
		if strings.EqualFold(p.Type(), typ) {
			out = append(out, p)
		}
	}
	return out
}

// SortBySKU orders the sequence by SKU, ascending
func (inv *Inventory) SortBySKU() {
	sort.Slice(inv.products, func(i, j int) bool {
		return inv.products[i].Base().SKU < inv.products[j].Base().SKU
	})
}

// SortByName orders the sequence by name, ascending
func (inv *Inventory) SortByName() {
	sort.Slice(inv.products, func(i, j int) bool {
		return inv.products[i].Base().Name < inv.products[j].Base().Name
	})
}

// SortByPrice orders the sequence by unit price, ascending
func (inv *Inventory) SortByPrice() {
	sort.Slice(inv.products, func(i, j int) bool {
		return inv.products[i].Base().Price.LessThan(inv.products[j].Base().Price)
	})
}

// SortByQuantity orders the sequence by stock quantity, ascending
func (inv *Inventory) SortByQuantity() {
	sort.Slice(inv.products, func(i, j int) bool {
		return inv.products[i].Base().Quantity < inv.products[j].Base().Quantity
	})
}

// SortByValue orders the sequence by total value, highest first
func (inv *Inventory) SortByValue() {
	sort.Slice(inv.products, func(i, j int) bool {
		return inv.products[i].TotalValue().GreaterThan(inv.products[j].TotalValue())
	})
}

// TotalValue sums price times quantity across the whole sequence
func (inv *Inventory) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, p := range inv.products {
		total = total.Add(p.TotalValue())
	}
	return total
}

// Count returns the number of products held
func (inv *Inventory) Count() int {
	return len(inv.products)
}

// IsEmpty reports whether the inventory holds no products
func (inv *Inventory) IsEmpty() bool {
	return len(inv.products) == 0
}

// SKUExists reports whether a product with the given SKU is indexed
func (inv *Inventory) SKUExists(sku string) bool {
	_, ok := inv.index[sku]
	return ok
}

// Products returns the sequence in its current order. The slice is a copy;
// the records are shared.
func (inv *Inventory) Products() []domain.Product {
	out := make([]domain.Product, len(inv.products))
	copy(out, inv.products)
	return out
}

// ClearAll drops every product from the sequence and the index
func (inv *Inventory) ClearAll() {
	inv.products = nil
	inv.index = make(map[string]domain.Product)
}

// SetDataFilePath changes the path used by SaveToFile and LoadFromFile
func (inv *Inventory) SetDataFilePath(path string) {
	inv.dataFilePath = path
}

// DataFilePath returns the configured persistence path
func (inv *Inventory) DataFilePath() string {
	return inv.dataFilePath
}
