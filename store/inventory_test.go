package store

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"

	"smallbiz_inventory/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func physical(sku, name, price string, quantity int) *domain.Physical {
	return domain.NewPhysical(sku, name, dec(price), quantity, "Tools", 1, "Acme")
}

func digital(sku, name, price string, quantity int) *domain.Digital {
	return domain.NewDigital(sku, name, dec(price), quantity, "Media", "https://example.com/dl", 1, "Single")
}

func TestAddProduct(t *testing.T) {
	t.Run("nil product", func(t *testing.T) {
		inv := NewInventory("", nil)
		if err := inv.AddProduct(nil); !domain.IsValidationError(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("duplicate sku rejected", func(t *testing.T) {
		inv := NewInventory("", nil)
		if err := inv.AddProduct(physical("W1", "Widget", "10", 5)); err != nil {
			t.Fatalf("setup add failed: %v", err)
		}
		err := inv.AddProduct(digital("W1", "Impostor", "99", 1))
		if !domain.IsDuplicateSKUError(err) {
			t.Fatalf("expected DuplicateSKUError, got %v", err)
		}
		if inv.Count() != 1 {
			t.Fatalf("expected count 1 after rejected add, got %d", inv.Count())
		}
		p, _ := inv.GetProduct("W1")
		if p.Base().Name != "Widget" {
			t.Fatalf("rejected add replaced stored record: %s", p.Base().Name)
		}
	})

	t.Run("appends in insertion order", func(t *testing.T) {
		inv := NewInventory("", nil)
		_ = inv.AddProduct(physical("W2", "B", "1", 1))
		_ = inv.AddProduct(digital("D1", "A", "1", 1))
		_ = inv.AddProduct(physical("W1", "C", "1", 1))

		got := inv.Products()
		want := []string{"W2", "D1", "W1"}
		for i, sku := range want {
			if got[i].Base().SKU != sku {
				t.Fatalf("expected order %v, got %s at %d", want, got[i].Base().SKU, i)
			}
		}
	})
}

func TestGetProduct(t *testing.T) {
	inv := NewInventory("", nil)
	added := physical("W1", "Widget", "10", 5)
	_ = inv.AddProduct(added)

	p, ok := inv.GetProduct("W1")
	if !ok {
		t.Fatalf("expected product to be found")
	}
	if p != domain.Product(added) {
		t.Fatalf("lookup returned a different record handle")
	}

	if _, ok := inv.GetProduct("no-such"); ok {
		t.Fatalf("expected missing sku to report not found")
	}
}

func TestUpdateProduct(t *testing.T) {
	newName := func(s string) *string { return &s }
	newQty := func(q int) *int { return &q }
	newPrice := func(s string) *decimal.Decimal {
		d := dec(s)
		return &d
	}

	t.Run("not found", func(t *testing.T) {
		inv := NewInventory("", nil)
		err := inv.UpdateProduct("no-such", domain.ProductUpdate{Name: newName("X")})
		if !domain.IsNotFoundError(err) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("applies only provided fields", func(t *testing.T) {
		inv := NewInventory("", nil)
		_ = inv.AddProduct(physical("W1", "Widget", "10", 5))

		if err := inv.UpdateProduct("W1", domain.ProductUpdate{Price: newPrice("12.5")}); err != nil {
			t.Fatalf("update failed: %v", err)
		}
		p, _ := inv.GetProduct("W1")
		if !p.Base().Price.Equal(dec("12.5")) {
			t.Fatalf("price not updated: %s", p.Base().Price)
		}
		if p.Base().Name != "Widget" || p.Base().Quantity != 5 {
			t.Fatalf("unprovided fields changed: %+v", p.Base())
		}
	})

	t.Run("updates all provided fields", func(t *testing.T) {
		inv := NewInventory("", nil)
		_ = inv.AddProduct(digital("D1", "Ebook", "20", 2))

		upd := domain.ProductUpdate{Name: newName("Ebook 2e"), Price: newPrice("25"), Quantity: newQty(7)}
		if err := inv.UpdateProduct("D1", upd); err != nil {
			t.Fatalf("update failed: %v", err)
		}
		p, _ := inv.GetProduct("D1")
		if p.Base().Name != "Ebook 2e" || !p.Base().Price.Equal(dec("25")) || p.Base().Quantity != 7 {
			t.Fatalf("update not applied: %+v", p.Base())
		}
	})

	t.Run("negative price rejected", func(t *testing.T) {
		inv := NewInventory("", nil)
		_ = inv.AddProduct(physical("W1", "Widget", "10", 5))

		err := inv.UpdateProduct("W1", domain.ProductUpdate{Price: newPrice("-1")})
		if !domain.IsValidationError(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("rejected update applies nothing", func(t *testing.T) {
		inv := NewInventory("", nil)
		_ = inv.AddProduct(physical("W1", "Widget", "10", 5))

		err := inv.UpdateProduct("W1", domain.ProductUpdate{Name: newName("Renamed"), Quantity: newQty(-3)})
		if !domain.IsValidationError(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		p, _ := inv.GetProduct("W1")
		if p.Base().Name != "Widget" {
			t.Fatalf("rejected update applied the name change: %s", p.Base().Name)
		}
	})
}

func TestRemoveProduct(t *testing.T) {
	inv := NewInventory("", nil)
	_ = inv.AddProduct(physical("W1", "Widget", "10", 5))
	_ = inv.AddProduct(digital("D1", "Ebook", "20", 2))
	_ = inv.AddProduct(physical("W2", "Anvil", "30", 1))

	if err := inv.RemoveProduct("D1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ok := inv.GetProduct("D1"); ok {
		t.Fatalf("removed product still indexed")
	}
	if inv.Count() != 2 {
		t.Fatalf("expected count 2, got %d", inv.Count())
	}

	got := inv.Products()
	if got[0].Base().SKU != "W1" || got[1].Base().SKU != "W2" {
		t.Fatalf("remaining order wrong: %s, %s", got[0].Base().SKU, got[1].Base().SKU)
	}

	if err := inv.RemoveProduct("D1"); !domain.IsNotFoundError(err) {
		t.Fatalf("expected NotFoundError on second remove, got %v", err)
	}
}

func TestSearches(t *testing.T) {
	inv := NewInventory("", nil)
	_ = inv.AddProduct(domain.NewPhysical("W1", "Claw Hammer", dec("10"), 5, "Hand Tools", 1.5, "Acme"))
	_ = inv.AddProduct(domain.NewPhysical("W2", "Sledge Hammer", dec("25"), 2, "Hand Tools", 9, "Acme"))
	_ = inv.AddProduct(domain.NewDigital("D1", "Video Course", dec("40"), 10, "Training", "https://example.com/c", 900, "Single"))

	t.Run("name substring case-insensitive", func(t *testing.T) {
		out := inv.SearchByName("hammer")
		if len(out) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(out))
		}
		if out[0].Base().SKU != "W1" || out[1].Base().SKU != "W2" {
			t.Fatalf("matches out of sequence order")
		}
	})

	t.Run("category substring", func(t *testing.T) {
		out := inv.SearchByCategory("TOOLS")
		if len(out) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(out))
		}
	})

	t.Run("type exact case-insensitive", func(t *testing.T) {
		out := inv.SearchByType("digital")
		if len(out) != 1 || out[0].Base().SKU != "D1" {
			t.Fatalf("unexpected type search result: %v", out)
		}
		if got := inv.SearchByType("digi"); len(got) != 0 {
			t.Fatalf("type search must match whole tag, got %d results", len(got))
		}
	})

	t.Run("no matches yields empty result", func(t *testing.T) {
		if out := inv.SearchByName("zzz"); len(out) != 0 {
			t.Fatalf("expected no matches, got %d", len(out))
		}
	})
}

func TestSorts(t *testing.T) {
	seed := func() *Inventory {
		inv := NewInventory("", nil)
		// total values: W3=45, W1=30, D2=100
		_ = inv.AddProduct(physical("W3", "Cobbler", "5", 9))
		_ = inv.AddProduct(physical("W1", "Anvil", "30", 1))
		_ = inv.AddProduct(digital("D2", "Beats", "2.5", 40))
		return inv
	}

	skus := func(inv *Inventory) []string {
		out := make([]string, 0, inv.Count())
		for _, p := range inv.Products() {
			out = append(out, p.Base().SKU)
		}
		return out
	}

	equal := func(a, b []string) bool {
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	}

	cases := []struct {
		name string
		sort func(*Inventory)
		want []string
	}{
		{"by sku", (*Inventory).SortBySKU, []string{"D2", "W1", "W3"}},
		{"by name", (*Inventory).SortByName, []string{"W1", "D2", "W3"}},
		{"by price", (*Inventory).SortByPrice, []string{"D2", "W3", "W1"}},
		{"by quantity", (*Inventory).SortByQuantity, []string{"W1", "W3", "D2"}},
		{"by value descending", (*Inventory).SortByValue, []string{"D2", "W3", "W1"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			inv := seed()
			tc.sort(inv)
			if got := skus(inv); !equal(got, tc.want) {
				t.Fatalf("expected order %v, got %v", tc.want, got)
			}

			// the index must keep resolving to the records in the sequence
			for _, p := range inv.Products() {
				byKey, ok := inv.GetProduct(p.Base().SKU)
				if !ok || byKey != p {
					t.Fatalf("index out of step with sequence after sort for %s", p.Base().SKU)
				}
			}
		})
	}
}

func TestTotalValueScenario(t *testing.T) {
	inv := NewInventory("", nil)
	_ = inv.AddProduct(physical("W1", "Widget", "10", 5))
	_ = inv.AddProduct(digital("D1", "Ebook", "20", 2))

	if got := inv.TotalValue(); !got.Equal(dec("90")) {
		t.Fatalf("expected total 90, got %s", got)
	}

	inv.SortByValue()
	got := inv.Products()
	if got[0].Base().SKU != "W1" || got[1].Base().SKU != "D1" {
		t.Fatalf("expected W1 before D1 by value, got %s first", got[0].Base().SKU)
	}

	// shrinking W1's stock reorders the next value sort
	q := 1
	if err := inv.UpdateProduct("W1", domain.ProductUpdate{Quantity: &q}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	inv.SortByValue()
	got = inv.Products()
	if got[0].Base().SKU != "D1" {
		t.Fatalf("expected D1 first after update, got %s", got[0].Base().SKU)
	}
	if !inv.TotalValue().Equal(dec("50")) {
		t.Fatalf("expected total 50 after update, got %s", inv.TotalValue())
	}
}

func TestClearAllAndCounters(t *testing.T) {
	inv := NewInventory("", nil)
	if !inv.IsEmpty() || inv.Count() != 0 {
		t.Fatalf("new inventory should be empty")
	}

	_ = inv.AddProduct(physical("W1", "Widget", "10", 5))
	if inv.IsEmpty() || inv.Count() != 1 || !inv.SKUExists("W1") {
		t.Fatalf("counters wrong after add")
	}

	inv.ClearAll()
	if !inv.IsEmpty() || inv.Count() != 0 || inv.SKUExists("W1") {
		t.Fatalf("counters wrong after clear")
	}
	if !inv.TotalValue().Equal(decimal.Zero) {
		t.Fatalf("expected zero total after clear, got %s", inv.TotalValue())
	}

	// the container must stay usable after a clear
	if err := inv.AddProduct(physical("W1", "Widget", "10", 5)); err != nil {
		t.Fatalf("add after clear failed: %v", err)
	}
}

func TestProductsSliceIsACopy(t *testing.T) {
	inv := NewInventory("", nil)
	_ = inv.AddProduct(physical("W1", "Widget", "10", 5))
	_ = inv.AddProduct(physical("W2", "Anvil", "30", 1))

	out := inv.Products()
	out[0], out[1] = out[1], out[0]

	if inv.Products()[0].Base().SKU != "W1" {
		t.Fatalf("mutating the returned slice reordered the inventory")
	}

	// records themselves are shared handles
	if err := inv.Products()[0].Base().SetQuantity(9); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	p, _ := inv.GetProduct("W1")
	if p.Base().Quantity != 9 {
		t.Fatalf("expected shared record mutation to be visible")
	}
}

func BenchmarkAddProduct(b *testing.B) {
	for i := 0; i < b.N; i++ {
		inv := NewInventory("", nil)
		_ = inv.AddProduct(physical("B-"+strconv.Itoa(i), "Bench", "1", 1))
	}
}

func BenchmarkGetProduct(b *testing.B) {
	inv := NewInventory("", nil)
	for i := 0; i < 1000; i++ {
		_ = inv.AddProduct(physical("B-"+strconv.Itoa(i), "Bench", "1", 1))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = inv.GetProduct("B-" + strconv.Itoa(i%1000))
	}
}
