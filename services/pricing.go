package services

import (
	"github.com/shopspring/decimal"

	"github.com/aryaseta/resto-order-api/models"
	"github.com/aryaseta/resto-order-api/utils"
)

// Tarif pajak default untuk order baru.
var DefaultTaxRate = decimal.RequireFromString("0.07")

// OrderPrices adalah hasil mesin harga. Invarian:
// Total = Subtotal + TaxAmount + Gratuity, persis, karena ketiga komponen
// sudah dibulatkan sendiri dan penjumlahannya tidak dibulatkan lagi.
type OrderPrices struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Gratuity  decimal.Decimal
	Total     decimal.Decimal
}

// ItemTotal = round(unit_price x quantity). Dihitung ulang setiap kali line
// item ditulis supaya selalu konsisten dengan unit_price dan quantity-nya.
func ItemTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return utils.RoundMoney(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// ComputePrices murni terhadap inputnya: line item yang sama selalu
// menghasilkan total yang sama. Persistensi hasilnya urusan pemanggil
// (OrderService menjalankannya di transaksi yang sama dengan insert item).
func ComputePrices(taxRate decimal.Decimal, gratuity decimal.Decimal, items []models.OrderItem) OrderPrices {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.ItemTotal)
	}
	subtotal = utils.RoundMoney(subtotal)

	tax := utils.RoundMoney(subtotal.Mul(taxRate))
	grat := utils.RoundMoney(gratuity)

	return OrderPrices{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Gratuity:  grat,
		Total:     subtotal.Add(tax).Add(grat),
	}
}
