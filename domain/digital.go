package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Digital discounts get an extra bonus percentage, capped at a maximum
// effective discount
const (
	digitalBonusPercent = 5.0
	digitalMaxPercent   = 50.0
)

// Digital is a downloadable product delivered by link
type Digital struct {
	ProductBase
	DownloadLink string
	FileSizeMB   float64
	LicenseType  string
}

// compile-time assertion that Digital implements Product
var _ Product = (*Digital)(nil)

// NewDigital constructs a digital product. Negative price, quantity and file
// size are clamped to zero; so is a non-finite file size.
func NewDigital(sku, name string, price decimal.Decimal, quantity int, category string, downloadLink string, fileSizeMB float64, licenseType string) *Digital {
	if !finite(fileSizeMB) || fileSizeMB < 0 {
		fileSizeMB = 0
	}
	return &Digital{
		ProductBase:  newProductBase(sku, name, price, quantity, category),
		DownloadLink: downloadLink,
		FileSizeMB:   fileSizeMB,
		LicenseType:  licenseType,
	}
}

// Type returns the digital type tag
func (d *Digital) Type() string {
	return TypeDigital
}

// SetFileSize replaces the download size, rejecting negative and non-finite
// values
func (d *Digital) SetFileSize(fileSizeMB float64) error {
	if !finite(fileSizeMB) {
		return NewValidationError("fileSize", "must be finite", fileSizeMB)
	}
	if fileSizeMB < 0 {
		return NewValidationError("fileSize", "must be non-negative", fileSizeMB)
	}
	d.FileSizeMB = fileSizeMB
	return nil
}

// ApplyDiscount widens the requested percentage by the digital bonus, capped
// at the digital maximum. Percentages outside [0, 100] and non-finite
// percentages leave the price unchanged, before any bonus is considered.
func (d *Digital) ApplyDiscount(percent float64) decimal.Decimal {
	if !finite(percent) || percent < 0 || percent > 100 {
		return d.Price
	}
	effective := math.Min(percent+digitalBonusPercent, digitalMaxPercent)
	return discounted(d.Price, effective)
}

// Display renders the listing row followed by a digital detail line
func (d *Digital) Display() string {
	detail := fmt.Sprintf("    -> Size: %s MB | License: %s | Link: %s",
		formatFloat(d.FileSizeMB), d.LicenseType, truncate(d.DownloadLink, maxLinkChars))
	return d.row(TypeDigital) + "\n" + detail
}

// MarshalCSV serializes the product as one comma-separated line:
// Digital,sku,name,price,quantity,category,downloadLink,fileSizeMB,licenseType
func (d *Digital) MarshalCSV() string {
	fields := append([]string{TypeDigital}, d.csvFields()...)
	fields = append(fields, d.DownloadLink, formatFloat(d.FileSizeMB), d.LicenseType)
	return strings.Join(fields, ",")
}
