package util

import (
	"regexp"
	"testing"
)

func TestGenerateSKU_Format(t *testing.T) {
	s := GenerateSKU()
	// SKU- prefix followed by eight uppercase hex digits
	r := regexp.MustCompile(`^SKU-[0-9A-F]{8}$`)
	if !r.MatchString(s) {
		t.Fatalf("SKU %s does not match expected format", s)
	}
}

func TestGenerateSKU_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := GenerateSKU()
		if seen[s] {
			t.Fatalf("duplicate SKU generated: %s", s)
		}
		seen[s] = true
	}
}
