// Package pricing содержит расчет цен перепродажи и стоимости заказов.
// Все суммы в эквити целочисленные; округление всегда вверх при продаже
// и вниз при зачислении.
package pricing

import "math"

// NairaRate считает цену перепродажи за 1000 единиц в найре:
// ceil(rate * (1 + markup/100))
func NairaRate(supplierRate float64, markupPercent int64) int64 {
	return int64(math.Ceil(supplierRate * (1 + float64(markupPercent)/100)))
}

// EquityRate считает цену перепродажи за 1000 единиц в эквити:
// ceil(nairaRate / equityValue)
func EquityRate(nairaRate, equityValue int64) int64 {
	return (nairaRate + equityValue - 1) / equityValue
}

// OrderCost считает стоимость заказа в эквити: ceil(ourRate/1000 * quantity)
func OrderCost(ourRate, quantity int64) int64 {
	return (ourRate*quantity + 999) / 1000
}

// DepositEquities считает зачисляемые эквити: floor(amount / equityValue)
func DepositEquities(amount float64, equityValue int64) int64 {
	return int64(math.Floor(amount / float64(equityValue)))
}

// ReferralBonus считает реферальный бонус: floor(equities * percent / 100)
func ReferralBonus(equities, percent int64) int64 {
	return equities * percent / 100
}
