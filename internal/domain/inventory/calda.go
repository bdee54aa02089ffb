package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

// QuantityPlaces decimales con los que se redondean las cantidades por insumo de una parcela.
const QuantityPlaces = entity.QuantityPlaces

var hundred = decimal.NewFromInt(100)

// CaldaInput insumo de la orden con el tier en el que vive su registro de stock.
type CaldaInput struct {
	StockRecordID   string
	ItemID          string
	DosePerHa       decimal.Decimal
	RecordTier      entity.Tier
	Unit            string
	PackageCapacity decimal.Decimal
}

// InputAllocation cantidad de un insumo que consume una carga.
type InputAllocation struct {
	StockRecordID   string
	ItemID          string
	Unit            string
	InputTotal      decimal.Decimal // total del insumo para toda la orden
	Quantity        decimal.Decimal // parte de esta carga
	SourceTier      entity.Tier     // tier desde el que se repone
	PackageCapacity decimal.Decimal
}

// Allocation resultado del cálculo de una carga.
type Allocation struct {
	TotalArea         decimal.Decimal
	TotalMixRequired  decimal.Decimal
	ProportionPercent decimal.Decimal
	Inputs            []InputAllocation
}

// PerInputQuantity devuelve stockRecordID -> cantidad de esta carga.
func (a Allocation) PerInputQuantity() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(a.Inputs))
	for _, in := range a.Inputs {
		m[in.StockRecordID] = m[in.StockRecordID].Add(in.Quantity)
	}
	return m
}

// ComputeAllocation calcula qué porcentaje de la orden cubre un camión de truckCapacity litros
// y cuánto de cada insumo retira. Es puro: se recalcula cada vez que cambian camión o capacidad.
//
//	totalMix   = caldaPerHa * sum(areas)
//	proportion = min(truckCapacity / totalMix * 100, 100)   (0 si totalMix == 0)
//	quantity   = sum(areas) * dosePerHa * proportion / 100
func ComputeAllocation(areas []decimal.Decimal, caldaPerHa decimal.Decimal, inputs []CaldaInput, truckCapacity decimal.Decimal) (Allocation, error) {
	if truckCapacity.IsNegative() || caldaPerHa.IsNegative() {
		return Allocation{}, domain.ErrInvalidQuantity
	}
	totalArea := decimal.Zero
	for _, a := range areas {
		if a.IsNegative() {
			return Allocation{}, domain.ErrInvalidQuantity
		}
		totalArea = totalArea.Add(a)
	}
	totalMix := caldaPerHa.Mul(totalArea)

	proportion := decimal.Zero
	if totalMix.IsPositive() {
		proportion = decimal.Min(truckCapacity.Div(totalMix).Mul(hundred), hundred)
	}

	out := Allocation{
		TotalArea:         totalArea,
		TotalMixRequired:  totalMix,
		ProportionPercent: proportion,
		Inputs:            make([]InputAllocation, 0, len(inputs)),
	}
	for _, in := range inputs {
		if in.DosePerHa.IsNegative() {
			return Allocation{}, domain.ErrInvalidQuantity
		}
		inputTotal := totalArea.Mul(in.DosePerHa)
		out.Inputs = append(out.Inputs, InputAllocation{
			StockRecordID:   in.StockRecordID,
			ItemID:          in.ItemID,
			Unit:            in.Unit,
			InputTotal:      inputTotal,
			Quantity:        inputTotal.Mul(proportion).Div(hundred).Round(QuantityPlaces),
			SourceTier:      in.RecordTier.ReplenishmentSource(),
			PackageCapacity: in.PackageCapacity,
		})
	}
	return out, nil
}
