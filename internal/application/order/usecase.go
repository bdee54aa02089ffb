package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartcalda-api/internal/application/ports"
	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/parcela"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

// OrderUseCase alta, edición y consulta de órdenes de servicio.
type OrderUseCase struct {
	txRunner ports.TxRunner
	orders   repository.ServiceOrderRepository
	parcelas repository.ParcelaRepository
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner ports.TxRunner, orders repository.ServiceOrderRepository, parcelas repository.ParcelaRepository) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orders: orders, parcelas: parcelas, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *OrderUseCase) WithClock(now func() time.Time) *OrderUseCase {
	uc.now = now
	return uc
}

// OrderInput datos de cabecera de una orden.
type OrderInput struct {
	OrderNumber   string
	CostCenterID  string
	OperationID   string
	GeneratedDate time.Time
	ResponsibleID string
	FarmID        string
	Section       string
	Plots         []entity.OrderPlot
	Inputs        []entity.OrderInput
	CaldaPerHa    decimal.Decimal
}

// OrderDetail orden con sus parcelas.
type OrderDetail struct {
	Order    *entity.ServiceOrder
	Parcelas []*entity.Parcela
}

// Create registra la orden en AWAITING_INFO (faltan calda/talhões/insumos) o PENDING.
// Talhões, hacienda y registros de stock referenciados deben existir (ErrNotFound).
func (uc *OrderUseCase) Create(ctx context.Context, in OrderInput) (*entity.ServiceOrder, error) {
	now := uc.now()
	o := &entity.ServiceOrder{
		ID:              uuid.New().String(),
		ProgressPercent: decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if err := applyInput(ctx, repos, o, in); err != nil {
			return err
		}
		if o.GeneratedDate.IsZero() {
			o.GeneratedDate = now
		}
		o.Status = parcela.InitialOrderStatus(o)
		return repos.Orders.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Update reemplaza la cabecera. Solo se permite en AWAITING_INFO o PENDING.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in OrderInput) (*entity.ServiceOrder, error) {
	var updated *entity.ServiceOrder
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		o, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !o.Status.Editable() {
			return fmt.Errorf("%w: orden en %s no se puede editar", domain.ErrInvalidTransition, o.Status)
		}
		if err := applyInput(ctx, repos, o, in); err != nil {
			return err
		}
		o.Status = parcela.InitialOrderStatus(o)
		o.UpdatedAt = uc.now()
		updated = o
		return repos.Orders.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get devuelve la orden con sus parcelas.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*OrderDetail, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ps, err := uc.parcelas.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: o, Parcelas: ps}, nil
}

// List lista órdenes con paginación.
func (uc *OrderUseCase) List(ctx context.Context, limit, offset int) ([]*entity.ServiceOrder, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.orders.List(ctx, limit, offset)
}

func applyInput(ctx context.Context, repos repository.Repositories, o *entity.ServiceOrder, in OrderInput) error {
	number := strings.TrimSpace(in.OrderNumber)
	if number == "" {
		return fmt.Errorf("%w: order_number", domain.ErrMissingRequiredField)
	}
	if in.CaldaPerHa.IsNegative() || !entity.WithinScale(in.CaldaPerHa) {
		return domain.ErrInvalidQuantity
	}
	if in.FarmID != "" {
		if _, err := repos.Reference.GetFarm(ctx, in.FarmID); err != nil {
			return err
		}
	}
	for _, p := range in.Plots {
		plot, err := repos.Reference.GetPlot(ctx, p.PlotID)
		if err != nil {
			return err
		}
		if p.FarmID != "" && plot.FarmID != p.FarmID {
			return fmt.Errorf("%w: talhão %s no pertenece a la hacienda %s", domain.ErrInvalidInput, p.PlotID, p.FarmID)
		}
	}
	inputs := make([]entity.OrderInput, 0, len(in.Inputs))
	for _, input := range in.Inputs {
		if input.DosePerHa.IsNegative() {
			return domain.ErrInvalidQuantity
		}
		rec, err := repos.TierRecords.GetByID(ctx, input.StockRecordID)
		if err != nil {
			return err
		}
		if rec.Tier != entity.TierTechnical && rec.Tier != entity.TierFractional {
			return fmt.Errorf("%w: el insumo debe referenciar stock técnico o fraccionado", domain.ErrInvalidInput)
		}
		if input.ItemID == "" {
			input.ItemID = rec.ItemID
		}
		if input.ItemID != rec.ItemID {
			return fmt.Errorf("%w: el registro %s no corresponde al ítem %s", domain.ErrInvalidInput, rec.RecordID, input.ItemID)
		}
		inputs = append(inputs, input)
	}

	o.OrderNumber = number
	o.CostCenterID = in.CostCenterID
	o.OperationID = in.OperationID
	if !in.GeneratedDate.IsZero() {
		o.GeneratedDate = in.GeneratedDate
	}
	o.ResponsibleID = in.ResponsibleID
	o.FarmID = in.FarmID
	o.Section = in.Section
	o.Plots = append([]entity.OrderPlot(nil), in.Plots...)
	o.Inputs = inputs
	o.CaldaPerHa = in.CaldaPerHa
	return nil
}
