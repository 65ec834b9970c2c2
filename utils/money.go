package utils

import "github.com/shopspring/decimal"

// RoundMoney membulatkan nilai uang ke 2 digit desimal dengan aturan
// half-away-from-zero (1.785 -> 1.79). decimal.Round memang memakai aturan
// itu; jangan diganti RoundBank, seluruh perhitungan harga mengandalkan
// pembulatan yang satu ini.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
