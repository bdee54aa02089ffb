package entity

import "github.com/shopspring/decimal"

// Farm hacienda (dato de referencia, solo lectura para el núcleo).
type Farm struct {
	ID   string
	Name string
}

// Plot talhão de una hacienda; Area en hectáreas.
type Plot struct {
	ID     string
	FarmID string
	Name   string
	Area   decimal.Decimal
}

// Truck camión pulverizador con su capacidad nominal (litros).
type Truck struct {
	ID            string
	Plate         string
	RatedCapacity decimal.Decimal
}

// Mixer unidad SmartCalda que prepara la calda desde el stock técnico.
type Mixer struct {
	ID         string
	Name       string
	LocationID string
}
