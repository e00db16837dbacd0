// Package util provides utility functions for the inventory system.
package util

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateSKU returns a SKU of the form SKU-XXXXXXXX, where the suffix is
// the first eight hex digits of a random UUID, uppercased.
func GenerateSKU() string {
	id := uuid.NewString()
	return "SKU-" + strings.ToUpper(id[:8])
}
