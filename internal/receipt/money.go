package receipt

import "github.com/shopspring/decimal"

// FormatKopecks renders an amount in kopecks as roubles: "5" for 500 and
// "5.50" for 550. The shift is exact, so cent boundaries never round.
func FormatKopecks(kopecks decimal.Decimal) string {
	roubles := kopecks.Shift(-2)
	if roubles.IsInteger() {
		return roubles.Truncate(0).String()
	}
	return roubles.StringFixed(2)
}

func valueOr(v decimal.NullDecimal, fallback int64) decimal.Decimal {
	if v.Valid {
		return v.Decimal
	}
	return decimal.NewFromInt(fallback)
}
