package parcela

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartcalda-api/internal/application/inventory"
	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	domaininv "github.com/jhoicas/smartcalda-api/internal/domain/inventory"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

// LoadSpec camión, mezclador y capacidad de una carga.
// PrimaryEntries elige, por ítem, el lote principal del que salen los envases completos;
// sin elección se usa el primer candidato FEFO. Elegir otro exige OverrideFefoWarning.
type LoadSpec struct {
	MixerID             string
	TruckID             string
	TruckCapacity       decimal.Decimal
	PrimaryEntries      []entity.EntryKey
	OverrideFefoWarning bool
}

// InputPlan cálculo de un insumo con su descomposición en envases.
// PrimaryEntry es la forma textual del lote principal elegido ("" si no hay lotes retirables).
type InputPlan struct {
	domaininv.InputAllocation
	PrimaryEntry string
	Movements    []domaininv.PackageMovement
}

// Plan cálculo completo de una carga para una orden.
type Plan struct {
	Allocation domaininv.Allocation
	Inputs     []InputPlan
}

// MovedInputs aplana los movimientos del plan en el formato persistido en la parcela.
func (p Plan) MovedInputs() []entity.MovedInput {
	var out []entity.MovedInput
	for _, in := range p.Inputs {
		for _, m := range in.Movements {
			mi := entity.MovedInput{
				StockRecordID: in.StockRecordID,
				ItemID:        in.ItemID,
				Quantity:      m.Quantity,
				Unit:          m.Unit,
				SourceTier:    m.Source,
				DestTier:      m.Dest,
			}
			if m.Source == entity.TierPrimary {
				mi.SourceRef = in.PrimaryEntry
			}
			out = append(out, mi)
		}
	}
	return out
}

// validateLoad comprueba campos obligatorios, existencia de camión/mezclador y la capacidad nominal.
func validateLoad(ctx context.Context, ref repository.ReferenceRepository, spec LoadSpec) error {
	switch {
	case spec.MixerID == "":
		return fmt.Errorf("%w: mixer_id", domain.ErrMissingRequiredField)
	case spec.TruckID == "":
		return fmt.Errorf("%w: truck_id", domain.ErrMissingRequiredField)
	case spec.TruckCapacity.IsZero():
		return fmt.Errorf("%w: truck_capacity", domain.ErrMissingRequiredField)
	case spec.TruckCapacity.IsNegative(), !entity.WithinScale(spec.TruckCapacity):
		return domain.ErrInvalidQuantity
	}
	if _, err := ref.GetMixer(ctx, spec.MixerID); err != nil {
		return err
	}
	truck, err := ref.GetTruck(ctx, spec.TruckID)
	if err != nil {
		return err
	}
	if spec.TruckCapacity.GreaterThan(truck.RatedCapacity) {
		return fmt.Errorf("%w: %s > %s", domain.ErrCapacityExceeded, spec.TruckCapacity, truck.RatedCapacity)
	}
	return nil
}

// ensureOrderLoadable: la orden debe estar completa y no finalizada.
func ensureOrderLoadable(o *entity.ServiceOrder) error {
	if o.Status == entity.OrderAwaitingInfo || !o.Complete() {
		return fmt.Errorf("%w: la orden no tiene calda, talhões o insumos", domain.ErrMissingRequiredField)
	}
	if o.Status == entity.OrderFinalized {
		return fmt.Errorf("%w: la orden ya está finalizada", domain.ErrInvalidTransition)
	}
	return nil
}

// buildPlan recalcula desde cero la asignación de la carga (no guarda estado previo).
func buildPlan(ctx context.Context, repos repository.Repositories, o *entity.ServiceOrder, spec LoadSpec) (Plan, error) {
	choices, err := primaryChoices(o, spec.PrimaryEntries)
	if err != nil {
		return Plan{}, err
	}

	areas := make([]decimal.Decimal, 0, len(o.Plots))
	for _, p := range o.Plots {
		plot, err := repos.Reference.GetPlot(ctx, p.PlotID)
		if err != nil {
			return Plan{}, err
		}
		areas = append(areas, plot.Area)
	}

	inputs := make([]domaininv.CaldaInput, 0, len(o.Inputs))
	entries := make(map[string]string, len(o.Inputs))
	for _, in := range o.Inputs {
		rec, err := repos.TierRecords.GetByID(ctx, in.StockRecordID)
		if err != nil {
			return Plan{}, err
		}
		entry, err := primaryEntry(ctx, repos, in.ItemID, choices, spec.OverrideFefoWarning)
		if err != nil {
			return Plan{}, err
		}
		pkgCapacity := decimal.Zero
		if entry != nil {
			pkgCapacity = entry.PackageCapacity
			entries[in.StockRecordID] = entry.Key().String()
		}
		inputs = append(inputs, domaininv.CaldaInput{
			StockRecordID:   in.StockRecordID,
			ItemID:          in.ItemID,
			DosePerHa:       in.DosePerHa,
			RecordTier:      rec.Tier,
			Unit:            rec.Unit,
			PackageCapacity: pkgCapacity,
		})
	}

	alloc, err := domaininv.ComputeAllocation(areas, o.CaldaPerHa, inputs, spec.TruckCapacity)
	if err != nil {
		return Plan{}, err
	}
	plan := Plan{Allocation: alloc, Inputs: make([]InputPlan, 0, len(alloc.Inputs))}
	for _, a := range alloc.Inputs {
		movs, err := domaininv.Decompose(a.Quantity, a.PackageCapacity, a.SourceTier, a.Unit)
		if err != nil {
			return Plan{}, err
		}
		plan.Inputs = append(plan.Inputs, InputPlan{
			InputAllocation: a,
			PrimaryEntry:    entries[a.StockRecordID],
			Movements:       movs,
		})
	}
	return plan, nil
}

// primaryChoices indexa por ítem los lotes elegidos. Cada ítem admite una elección y
// debe ser insumo de la orden.
func primaryChoices(o *entity.ServiceOrder, keys []entity.EntryKey) (map[string]entity.EntryKey, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	items := make(map[string]bool, len(o.Inputs))
	for _, in := range o.Inputs {
		items[in.ItemID] = true
	}
	out := make(map[string]entity.EntryKey, len(keys))
	for _, k := range keys {
		if !items[k.ItemID] {
			return nil, fmt.Errorf("%w: el ítem %s no es insumo de la orden", domain.ErrInvalidInput, k.ItemID)
		}
		if _, dup := out[k.ItemID]; dup {
			return nil, fmt.Errorf("%w: más de un lote para el ítem %s", domain.ErrInvalidInput, k.ItemID)
		}
		out[k.ItemID] = k
	}
	return out, nil
}

// primaryEntry lote principal del que salen los envases completos del ítem: el elegido
// (validado contra FEFO) o el primer candidato FEFO. nil si no hay lotes retirables.
func primaryEntry(ctx context.Context, repos repository.Repositories, itemID string, choices map[string]entity.EntryKey, override bool) (*entity.StockEntry, error) {
	if key, ok := choices[itemID]; ok {
		return inventory.SelectInTx(ctx, repos, key, override)
	}
	all, err := repos.Entries.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	candidates := domaininv.WithdrawableFEFO(all, itemID)
	if len(candidates) == 0 {
		return nil, nil
	}
	return candidates[0], nil
}
