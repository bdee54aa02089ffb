package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

// MaxPackageMovements tope de envases completos de una descomposición.
// Por encima el dato de capacidad de envase es sospechoso (p. ej. 0.0001) y se rechaza.
const MaxPackageMovements = 10000

// PackageMovement movimiento discreto hacia el stock técnico.
type PackageMovement struct {
	Source   entity.Tier
	Dest     entity.Tier
	Quantity decimal.Decimal
	Unit     string
}

// Decompose expresa requiredQty como envases completos de packageCapacity desde primarySource
// más, si sobra, un único movimiento con el resto desde el stock fraccionado.
// Los envases completos van primero y el resto al final. La suma de cantidades es exactamente requiredQty.
//
// Con packageCapacity <= 0 devuelve un solo movimiento por el total desde primarySource.
// Si hacen falta más de MaxPackageMovements envases devuelve ErrInvalidInput.
func Decompose(requiredQty, packageCapacity decimal.Decimal, primarySource entity.Tier, unit string) ([]PackageMovement, error) {
	if requiredQty.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	if !primarySource.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if requiredQty.IsZero() {
		return []PackageMovement{}, nil
	}
	if !packageCapacity.IsPositive() {
		return []PackageMovement{{
			Source:   primarySource,
			Dest:     entity.TierTechnical,
			Quantity: requiredQty,
			Unit:     unit,
		}}, nil
	}

	whole := requiredQty.Div(packageCapacity).Floor()
	remainder := requiredQty.Sub(whole.Mul(packageCapacity))
	if remainder.IsNegative() {
		// la división redondeó hacia arriba en el último dígito
		whole = whole.Sub(decimal.NewFromInt(1))
		remainder = remainder.Add(packageCapacity)
	}

	if whole.GreaterThan(decimal.NewFromInt(MaxPackageMovements)) {
		return nil, fmt.Errorf("%w: %s envases de %s %s", domain.ErrInvalidInput, whole, packageCapacity, unit)
	}
	n := int(whole.IntPart())
	out := make([]PackageMovement, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, PackageMovement{
			Source:   primarySource,
			Dest:     entity.TierTechnical,
			Quantity: packageCapacity,
			Unit:     unit,
		})
	}
	if remainder.IsPositive() {
		out = append(out, PackageMovement{
			Source:   entity.TierFractional,
			Dest:     entity.TierTechnical,
			Quantity: remainder,
			Unit:     unit,
		})
	}
	return out, nil
}

// SumMovements suma las cantidades de una descomposición.
func SumMovements(movements []PackageMovement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.Quantity)
	}
	return total
}
