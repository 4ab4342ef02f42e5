// Package money does currency arithmetic on two-decimal amounts
package money

import "github.com/shopspring/decimal"

// Round2 rounds half away from zero to two decimals
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// VAT splits a gross amount into the tax withheld and the net paid out
func VAT(amount, percent float64) (tax, net float64) {
	gross := decimal.NewFromFloat(amount).Round(2)
	t := gross.Mul(decimal.NewFromFloat(percent)).Div(decimal.NewFromInt(100)).Round(2)
	tax, _ = t.Float64()
	net, _ = gross.Sub(t).Float64()
	return tax, net
}

// Less reports a < b at cent precision
func Less(a, b float64) bool {
	return decimal.NewFromFloat(a).Round(2).LessThan(decimal.NewFromFloat(b).Round(2))
}
