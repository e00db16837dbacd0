package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Serialized field counts per variant, type tag included
const (
	physicalFieldCount = 8
	digitalFieldCount  = 9
)

// UnmarshalCSV parses one serialized product line, dispatching on the leading
// type tag. An unrecognized tag yields an UnknownTypeError; a wrong field
// count yields a ValidationError, as does a numeric field that fails to parse
// as a finite value. Values are not unescaped, so fields containing commas do
// not survive a round trip.
func UnmarshalCSV(line string) (Product, error) {
	fields := strings.Split(line, ",")
	switch fields[0] {
	case TypePhysical:
		return parsePhysical(fields)
	case TypeDigital:
		return parseDigital(fields)
	default:
		return nil, NewUnknownTypeError(fields[0])
	}
}

func parsePhysical(fields []string) (Product, error) {
	if len(fields) != physicalFieldCount {
		return nil, NewValidationError("line", "wrong field count", len(fields))
	}
	price, quantity, err := parseBaseNumbers(fields[3], fields[4])
	if err != nil {
		return nil, err
	}
	weight, err := strconv.ParseFloat(fields[6], 64)
	if err != nil || !finite(weight) {
		return nil, NewValidationError("weight", "not a finite number", fields[6])
	}
	return NewPhysical(fields[1], fields[2], price, quantity, fields[5], weight, fields[7]), nil
}

func parseDigital(fields []string) (Product, error) {
	if len(fields) != digitalFieldCount {
		return nil, NewValidationError("line", "wrong field count", len(fields))
	}
	price, quantity, err := parseBaseNumbers(fields[3], fields[4])
	if err != nil {
		return nil, err
	}
	size, err := strconv.ParseFloat(fields[7], 64)
	if err != nil || !finite(size) {
		return nil, NewValidationError("fileSize", "not a finite number", fields[7])
	}
	return NewDigital(fields[1], fields[2], price, quantity, fields[5], fields[6], size, fields[8]), nil
}

// parseBaseNumbers parses the price and quantity fields shared by every
// variant
func parseBaseNumbers(priceField, quantityField string) (decimal.Decimal, int, error) {
	price, err := decimal.NewFromString(priceField)
	if err != nil {
		return decimal.Decimal{}, 0, NewValidationError("price", "not a number", priceField)
	}
	quantity, err := strconv.Atoi(quantityField)
	if err != nil {
		return decimal.Decimal{}, 0, NewValidationError("quantity", "not a number", quantityField)
	}
	return price, quantity, nil
}
