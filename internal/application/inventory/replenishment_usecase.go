package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	domaininv "github.com/jhoicas/smartcalda-api/internal/domain/inventory"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// ReplenishmentUseCase sugiere los traslados que faltan para que los registros técnico/fraccionado
// de una orden cubran lo que resta de su calda.
type ReplenishmentUseCase struct {
	orders      repository.ServiceOrderRepository
	tierRecords repository.TierStockRepository
	entries     repository.StockEntryRepository
	reference   repository.ReferenceRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	orders repository.ServiceOrderRepository,
	tierRecords repository.TierStockRepository,
	entries repository.StockEntryRepository,
	reference repository.ReferenceRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		orders:      orders,
		tierRecords: tierRecords,
		entries:     entries,
		reference:   reference,
	}
}

// ReplenishmentSuggestion faltante de un registro de la orden y su descomposición en envases.
type ReplenishmentSuggestion struct {
	StockRecordID    string
	ItemID           string
	Unit             string
	RecordTier       entity.Tier
	SourceTier       entity.Tier
	RemainingNeed    decimal.Decimal
	AvailableBalance decimal.Decimal
	Shortfall        decimal.Decimal
	PrimaryEntry     string // primer lote FEFO del ítem; "" si no hay
	Movements        []domaininv.PackageMovement
	Priority         int
}

// SuggestForOrder compara, por registro referenciado en la orden, lo que falta consumir
// (área x dosis x (100 - progreso) / 100) con su saldo disponible. Solo devuelve los registros
// con faltante, ordenados por faltante descendente (Priority 1 = más urgente).
// Una orden finalizada no necesita reposición.
func (uc *ReplenishmentUseCase) SuggestForOrder(ctx context.Context, orderID string) ([]ReplenishmentSuggestion, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.Complete() {
		return nil, fmt.Errorf("%w: la orden no tiene calda, talhões o insumos", domain.ErrMissingRequiredField)
	}
	if o.Status == entity.OrderFinalized {
		return []ReplenishmentSuggestion{}, nil
	}

	area := decimal.Zero
	for _, p := range o.Plots {
		plot, err := uc.reference.GetPlot(ctx, p.PlotID)
		if err != nil {
			return nil, err
		}
		area = area.Add(plot.Area)
	}
	pending := hundred.Sub(o.ProgressPercent).Div(hundred)

	// un mismo registro puede aparecer en más de un insumo
	need := make(map[string]decimal.Decimal, len(o.Inputs))
	ids := make([]string, 0, len(o.Inputs))
	for _, in := range o.Inputs {
		if _, seen := need[in.StockRecordID]; !seen {
			ids = append(ids, in.StockRecordID)
		}
		need[in.StockRecordID] = need[in.StockRecordID].Add(area.Mul(in.DosePerHa).Mul(pending))
	}

	suggestions := make([]ReplenishmentSuggestion, 0, len(ids))
	for _, id := range ids {
		rec, err := uc.tierRecords.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		remaining := need[id].Round(entity.QuantityPlaces)
		shortfall := remaining.Sub(rec.AvailableBalance)
		if !shortfall.IsPositive() {
			continue
		}

		source := rec.Tier.ReplenishmentSource()
		pkgCapacity := decimal.Zero
		primaryRef := ""
		all, err := uc.entries.ListByItem(ctx, rec.ItemID)
		if err != nil {
			return nil, err
		}
		if candidates := domaininv.WithdrawableFEFO(all, rec.ItemID); len(candidates) > 0 {
			pkgCapacity = candidates[0].PackageCapacity
			primaryRef = candidates[0].Key().String()
		}
		movs, err := domaininv.Decompose(shortfall, pkgCapacity, source, rec.Unit)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, ReplenishmentSuggestion{
			StockRecordID:    rec.RecordID,
			ItemID:           rec.ItemID,
			Unit:             rec.Unit,
			RecordTier:       rec.Tier,
			SourceTier:       source,
			RemainingNeed:    remaining,
			AvailableBalance: rec.AvailableBalance,
			Shortfall:        shortfall,
			PrimaryEntry:     primaryRef,
			Movements:        movs,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Shortfall.GreaterThan(suggestions[j].Shortfall)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
