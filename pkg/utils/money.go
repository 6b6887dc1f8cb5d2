package utils

import "github.com/shopspring/decimal"

// LineTotal returns price x quantity without binary float drift.
func LineTotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

// Amount converts an accumulated total back to a store-friendly float rounded to cents.
func Amount(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
