package quote

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// LineTotal returns quantity * price. The product is taken in decimal so
// that values such as 0.1 * 3 do not pick up binary noise.
func LineTotal(quantity, price float64) float64 {
	return decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(price)).InexactFloat64()
}

// SumTotals adds the Total of every item in order.
func SumTotals(items []LineItem) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.Total))
	}
	return sum.InexactFloat64()
}

// FormatMoney renders an amount with thousands separators and two
// decimals. Stored and submitted values are never rounded.
func FormatMoney(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
