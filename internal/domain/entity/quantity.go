package entity

import "github.com/shopspring/decimal"

// QuantityPlaces escala máxima de saldos y cantidades movidas (columnas NUMERIC(18,4)).
const QuantityPlaces = 4

// ValidQuantity reporta si q es positiva y no tiene más de QuantityPlaces decimales.
// Una cantidad con más decimales se redondearía al persistir y el saldo no cuadraría con el movimiento.
func ValidQuantity(q decimal.Decimal) bool {
	return q.IsPositive() && q.Equal(q.Round(QuantityPlaces))
}

// WithinScale reporta si q no tiene más de QuantityPlaces decimales.
func WithinScale(q decimal.Decimal) bool {
	return q.Equal(q.Round(QuantityPlaces))
}
