// Package money converts between display-unit decimal amounts and the
// fixed-point integer milliunits every transaction amount is stored in.
package money

import "github.com/shopspring/decimal"

// MilliunitFactor scales one display unit to stored milliunits.
const MilliunitFactor = 1000

var factor = decimal.NewFromInt(MilliunitFactor)

// ToMilliunits converts a display amount to stored milliunits, rounding
// half away from zero past the third decimal place.
func ToMilliunits(amount decimal.Decimal) int64 {
	return amount.Mul(factor).Round(0).IntPart()
}

// FromMilliunits converts a stored amount back to display units.
func FromMilliunits(m int64) decimal.Decimal {
	return decimal.NewFromInt(m).Div(factor)
}

// ParseDisplay parses a display-unit string like "12.34" into milliunits.
func ParseDisplay(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return ToMilliunits(d), nil
}
