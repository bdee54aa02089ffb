package parcela

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartcalda-api/internal/application/inventory"
	"github.com/jhoicas/smartcalda-api/internal/application/ports"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	domainparcela "github.com/jhoicas/smartcalda-api/internal/domain/parcela"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
	"github.com/jhoicas/smartcalda-api/pkg/logger"
)

// ParcelaUseCase orquesta el ciclo de vida de las cargas de camión de una orden:
// cálculo, alta, edición, despacho al supervisorio, cancelación y transiciones externas.
type ParcelaUseCase struct {
	txRunner ports.TxRunner
	parcelas repository.ParcelaRepository
	notifier ports.SupervisoryNotifier
	metrics  ports.MetricsRecorder
	log      *logger.Logger
	now      func() time.Time
}

// NewParcelaUseCase construye el caso de uso. notifier, metrics y log pueden ser nil.
func NewParcelaUseCase(
	txRunner ports.TxRunner,
	parcelas repository.ParcelaRepository,
	notifier ports.SupervisoryNotifier,
	metrics ports.MetricsRecorder,
	log *logger.Logger,
) *ParcelaUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ParcelaUseCase{
		txRunner: txRunner,
		parcelas: parcelas,
		notifier: notifier,
		metrics:  metrics,
		log:      log.Component("parcela"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ParcelaUseCase) WithClock(now func() time.Time) *ParcelaUseCase {
	uc.now = now
	return uc
}

// CreateInput alta de una parcela. Dispatch=true la envía directamente al supervisorio.
type CreateInput struct {
	OrderID string
	LoadSpec
	Dispatch bool
}

// Preview calcula la carga sin persistir nada.
func (uc *ParcelaUseCase) Preview(ctx context.Context, orderID string, spec LoadSpec) (*Plan, error) {
	var plan Plan
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		o, err := repos.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := ensureOrderLoadable(o); err != nil {
			return err
		}
		if err := validateLoad(ctx, repos.Reference, spec); err != nil {
			return err
		}
		plan, err = buildPlan(ctx, repos, o, spec)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Create guarda la parcela en ON_TRUCK (progressShare = proporción de la mezcla) y pasa la orden
// de PENDING a IN_PREPARATION. Con Dispatch, además la despacha en la misma transacción.
func (uc *ParcelaUseCase) Create(ctx context.Context, in CreateInput) (*entity.Parcela, error) {
	now := uc.now()
	var created *entity.Parcela
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		o, err := repos.Orders.GetForUpdate(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if err := ensureOrderLoadable(o); err != nil {
			return err
		}
		if err := validateLoad(ctx, repos.Reference, in.LoadSpec); err != nil {
			return err
		}
		plan, err := buildPlan(ctx, repos, o, in.LoadSpec)
		if err != nil {
			return err
		}
		p := &entity.Parcela{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			Status:    entity.ParcelaOnTruck,
			CreatedAt: now,
		}
		applyPlan(p, in.LoadSpec, plan)
		if err := repos.Parcelas.Create(ctx, p); err != nil {
			return err
		}
		domainparcela.MarkPrepared(o)
		if in.Dispatch {
			if err := dispatchInTx(ctx, repos, o, p, now); err != nil {
				return err
			}
		}
		o.UpdatedAt = now
		created = p
		return repos.Orders.Update(ctx, o)
	})
	if err != nil {
		uc.metrics.OperationFailed("parcela_create", err)
		return nil, err
	}
	uc.log.Info().Str("parcela_id", created.ID).Str("order_id", created.OrderID).
		Str("proportion", created.MixProportionPercent.String()).Msg("parcela creada")
	if in.Dispatch {
		uc.afterDispatch(ctx, created, entity.ParcelaOnTruck)
	}
	return created, nil
}

// Edit cambia mezclador, camión o capacidad de una parcela en ON_TRUCK y recalcula su carga.
// Los campos vacíos conservan el valor actual. La elección de lotes principales no se conserva:
// sin PrimaryEntries se recalcula con FEFO.
func (uc *ParcelaUseCase) Edit(ctx context.Context, id string, spec LoadSpec) (*entity.Parcela, error) {
	now := uc.now()
	var updated *entity.Parcela
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Parcelas.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := domainparcela.EnsureEditable(p); err != nil {
			return err
		}
		if spec.MixerID == "" {
			spec.MixerID = p.MixerID
		}
		if spec.TruckID == "" {
			spec.TruckID = p.TruckID
		}
		if spec.TruckCapacity.IsZero() {
			spec.TruckCapacity = p.TruckCapacity
		}
		o, err := repos.Orders.GetForUpdate(ctx, p.OrderID)
		if err != nil {
			return err
		}
		if err := validateLoad(ctx, repos.Reference, spec); err != nil {
			return err
		}
		plan, err := buildPlan(ctx, repos, o, spec)
		if err != nil {
			return err
		}
		applyPlan(p, spec, plan)
		if err := repos.Parcelas.Update(ctx, p); err != nil {
			return err
		}
		if err := recomputeOrder(ctx, repos, o, now); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		uc.metrics.OperationFailed("parcela_edit", err)
		return nil, err
	}
	return updated, nil
}

// Dispatch ON_TRUCK -> IN_PRODUCTION. Descuenta los insumos de sus registros técnico/fraccionado
// (falla con ErrInsufficientBalance sin tocar nada) y recalcula el progreso de la orden.
// El supervisorio se notifica después de confirmar la transacción.
func (uc *ParcelaUseCase) Dispatch(ctx context.Context, id string) (*entity.Parcela, error) {
	now := uc.now()
	var dispatched *entity.Parcela
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Parcelas.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		o, err := repos.Orders.GetForUpdate(ctx, p.OrderID)
		if err != nil {
			return err
		}
		if err := dispatchInTx(ctx, repos, o, p, now); err != nil {
			return err
		}
		o.UpdatedAt = now
		dispatched = p
		return repos.Orders.Update(ctx, o)
	})
	if err != nil {
		uc.metrics.OperationFailed("parcela_dispatch", err)
		return nil, err
	}
	uc.afterDispatch(ctx, dispatched, entity.ParcelaOnTruck)
	return dispatched, nil
}

// Cancel ON_TRUCK -> CANCELLED. Desde cualquier otro estado falla con ErrInvalidTransition.
func (uc *ParcelaUseCase) Cancel(ctx context.Context, id string) (*entity.Parcela, error) {
	return uc.transition(ctx, id, entity.ParcelaCancelled, "parcela_cancel")
}

// Pause IN_PRODUCTION -> PAUSED (supervisorio).
func (uc *ParcelaUseCase) Pause(ctx context.Context, id string) (*entity.Parcela, error) {
	return uc.transition(ctx, id, entity.ParcelaPaused, "parcela_pause")
}

// Resume PAUSED|BLOCKED -> IN_PRODUCTION (supervisorio).
func (uc *ParcelaUseCase) Resume(ctx context.Context, id string) (*entity.Parcela, error) {
	return uc.transition(ctx, id, entity.ParcelaInProduction, "parcela_resume")
}

// Block IN_PRODUCTION -> BLOCKED: el mezclador está ocupado.
func (uc *ParcelaUseCase) Block(ctx context.Context, id string) (*entity.Parcela, error) {
	return uc.transition(ctx, id, entity.ParcelaBlocked, "parcela_block")
}

// Complete IN_PRODUCTION -> PROCESSED.
func (uc *ParcelaUseCase) Complete(ctx context.Context, id string) (*entity.Parcela, error) {
	return uc.transition(ctx, id, entity.ParcelaProcessed, "parcela_complete")
}

// Get devuelve una parcela.
func (uc *ParcelaUseCase) Get(ctx context.Context, id string) (*entity.Parcela, error) {
	return uc.parcelas.GetByID(ctx, id)
}

// ListByOrder devuelve las parcelas de la orden por fecha de creación.
func (uc *ParcelaUseCase) ListByOrder(ctx context.Context, orderID string) ([]*entity.Parcela, error) {
	return uc.parcelas.ListByOrder(ctx, orderID)
}

// transition aplica una transición que no mueve inventario y recalcula la orden.
func (uc *ParcelaUseCase) transition(ctx context.Context, id string, to entity.ParcelaStatus, operation string) (*entity.Parcela, error) {
	now := uc.now()
	var (
		updated *entity.Parcela
		from    entity.ParcelaStatus
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Parcelas.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from = p.Status
		if err := domainparcela.Transition(p, to, now); err != nil {
			return err
		}
		if err := repos.Parcelas.Update(ctx, p); err != nil {
			return err
		}
		o, err := repos.Orders.GetForUpdate(ctx, p.OrderID)
		if err != nil {
			return err
		}
		if err := recomputeOrder(ctx, repos, o, now); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		uc.metrics.OperationFailed(operation, err)
		return nil, err
	}
	uc.metrics.ParcelaTransition(from, to)
	uc.log.Info().Str("parcela_id", id).Str("from", string(from)).Str("to", string(to)).Msg("transición de parcela")
	return updated, nil
}

func (uc *ParcelaUseCase) afterDispatch(ctx context.Context, p *entity.Parcela, from entity.ParcelaStatus) {
	uc.metrics.ParcelaTransition(from, p.Status)
	for _, m := range p.MovedInputs {
		uc.metrics.MovementRecorded(entity.MovementTypeConsume, m.SourceTier, m.Quantity.InexactFloat64())
	}
	uc.log.Info().Str("parcela_id", p.ID).Str("order_id", p.OrderID).Msg("parcela despachada")
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.NotifyDispatch(ctx, p); err != nil {
		// El despacho ya está confirmado; el supervisorio puede reconciliar por consulta.
		uc.log.Error().Err(err).Str("parcela_id", p.ID).Msg("no se pudo notificar al supervisorio")
	}
}

// dispatchInTx transiciona la parcela, consume sus insumos y recalcula la orden (sin persistirla).
func dispatchInTx(ctx context.Context, repos repository.Repositories, o *entity.ServiceOrder, p *entity.Parcela, now time.Time) error {
	if err := domainparcela.Transition(p, entity.ParcelaInProduction, now); err != nil {
		return err
	}
	totals := make(map[string]decimal.Decimal)
	for _, m := range p.MovedInputs {
		totals[m.StockRecordID] = totals[m.StockRecordID].Add(m.Quantity)
	}
	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	// orden fijo de bloqueo entre despachos concurrentes
	slices.Sort(ids)
	txID := uuid.New().String()
	for _, id := range ids {
		qty := totals[id]
		if qty.IsZero() {
			continue
		}
		if _, err := inventory.ConsumeInTx(ctx, repos, id, qty, p.ID, txID, now); err != nil {
			return err
		}
	}
	if err := repos.Parcelas.Update(ctx, p); err != nil {
		return err
	}
	all, err := repos.Parcelas.ListByOrder(ctx, o.ID)
	if err != nil {
		return err
	}
	domainparcela.ApplyProgress(o, all, now)
	return nil
}

// recomputeOrder recalcula progreso y estado de la orden desde sus parcelas y la persiste.
func recomputeOrder(ctx context.Context, repos repository.Repositories, o *entity.ServiceOrder, now time.Time) error {
	all, err := repos.Parcelas.ListByOrder(ctx, o.ID)
	if err != nil {
		return err
	}
	domainparcela.ApplyProgress(o, all, now)
	o.UpdatedAt = now
	return repos.Orders.Update(ctx, o)
}

func applyPlan(p *entity.Parcela, spec LoadSpec, plan Plan) {
	p.MixerID = spec.MixerID
	p.TruckID = spec.TruckID
	p.TruckCapacity = spec.TruckCapacity
	p.MixProportionPercent = plan.Allocation.ProportionPercent
	p.ProgressShare = plan.Allocation.ProportionPercent
	p.MovedInputs = plan.MovedInputs()
}
