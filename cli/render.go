package cli

import (
	"fmt"
	"io"

	"smallbiz_inventory/domain"
	"smallbiz_inventory/store"
)

// renderProducts writes the fixed-width product table for the given records
func renderProducts(w io.Writer, products []domain.Product) {
	fmt.Fprintln(w, domain.TableHeader())
	for _, p := range products {
		fmt.Fprintln(w, p.Display())
	}
}

// renderInventory writes the full listing followed by the totals line
func renderInventory(w io.Writer, inv *store.Inventory) {
	if inv.IsEmpty() {
		fmt.Fprintln(w, "Inventory is empty.")
		return
	}
	renderProducts(w, inv.Products())
	fmt.Fprintln(w, domain.TableRule())
	fmt.Fprintf(w, "Total Products: %d | Total Value: $%s\n",
		inv.Count(), inv.TotalValue().StringFixed(2))
}

// renderSummary writes the per-type count and value breakdown
func renderSummary(w io.Writer, s store.Summary) {
	fmt.Fprintln(w, "========== INVENTORY SUMMARY ==========")
	fmt.Fprintf(w, "Total Products: %d\n", s.TotalCount)
	fmt.Fprintf(w, "  - Physical: %d ($%s)\n", s.PhysicalCount, s.PhysicalValue.StringFixed(2))
	fmt.Fprintf(w, "  - Digital:  %d ($%s)\n", s.DigitalCount, s.DigitalValue.StringFixed(2))
	fmt.Fprintf(w, "Total Inventory Value: $%s\n", s.TotalValue.StringFixed(2))
	fmt.Fprintln(w, "========================================")
}
