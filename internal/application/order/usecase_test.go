package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartcalda-api/internal/application/order"
	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/infrastructure/memory"
)

var now = time.Date(2026, 10, 18, 6, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newOrderUseCase(t *testing.T) (*order.OrderUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.AddFarm(entity.Farm{ID: "F1", Name: "Boa Vista"})
	store.AddFarm(entity.Farm{ID: "F2", Name: "Cachoeira"})
	store.AddPlot(entity.Plot{ID: "T1", FarmID: "F1", Area: dec("12.5")})
	store.AddPlot(entity.Plot{ID: "T9", FarmID: "F2", Area: dec("3")})
	repos := store.Repositories()
	require.NoError(t, repos.TierRecords.Create(context.Background(), &entity.TierStockRecord{
		RecordID: "TEC-1", Tier: entity.TierTechnical, ItemID: "atrazina",
		MovedQty: dec("50"), AvailableBalance: dec("50"), Unit: "L", CreatedAt: now,
	}))
	uc := order.NewOrderUseCase(memory.NewTxRunner(store), repos.Orders, repos.Parcelas).
		WithClock(func() time.Time { return now })
	return uc, store
}

func completeInput(number string) order.OrderInput {
	return order.OrderInput{
		OrderNumber: number,
		FarmID:      "F1",
		Plots:       []entity.OrderPlot{{FarmID: "F1", PlotID: "T1"}},
		Inputs:      []entity.OrderInput{{StockRecordID: "TEC-1", DosePerHa: dec("1.5")}},
		CaldaPerHa:  dec("120"),
	}
}

func TestCreate_EstadoInicial(t *testing.T) {
	ctx := context.Background()
	uc, _ := newOrderUseCase(t)

	o, err := uc.Create(ctx, completeInput("OS-1"))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, o.Status)
	assert.True(t, o.ProgressPercent.IsZero())
	assert.Equal(t, now, o.GeneratedDate)
	assert.Equal(t, "atrazina", o.Inputs[0].ItemID, "el ítem se toma del registro de stock")

	in := completeInput("OS-2")
	in.CaldaPerHa = decimal.Zero
	o, err = uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderAwaitingInfo, o.Status)
}

func TestCreate_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, _ := newOrderUseCase(t)

	in := completeInput("  ")
	_, err := uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)

	in = completeInput("OS-1")
	in.CaldaPerHa = dec("-1")
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	in = completeInput("OS-1")
	in.Plots = []entity.OrderPlot{{FarmID: "F1", PlotID: "T9"}}
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = completeInput("OS-1")
	in.Plots = []entity.OrderPlot{{FarmID: "F1", PlotID: "T404"}}
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = completeInput("OS-1")
	in.Inputs[0].ItemID = "glifosato"
	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, completeInput("OS-1"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, completeInput("OS-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "número de orden duplicado")
}

func TestUpdate_SoloEnEstadosEditables(t *testing.T) {
	ctx := context.Background()
	uc, store := newOrderUseCase(t)

	in := completeInput("OS-1")
	in.CaldaPerHa = decimal.Zero
	o, err := uc.Create(ctx, in)
	require.NoError(t, err)
	require.Equal(t, entity.OrderAwaitingInfo, o.Status)

	updated, err := uc.Update(ctx, o.ID, completeInput("OS-1"))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, updated.Status)

	stored, err := store.Repositories().Orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	stored.Status = entity.OrderInPreparation
	require.NoError(t, store.Repositories().Orders.Update(ctx, stored))

	_, err = uc.Update(ctx, o.ID, completeInput("OS-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.Update(ctx, "nope", completeInput("OS-1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetYList(t *testing.T) {
	ctx := context.Background()
	uc, _ := newOrderUseCase(t)

	o, err := uc.Create(ctx, completeInput("OS-1"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, completeInput("OS-2"))
	require.NoError(t, err)

	detail, err := uc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "OS-1", detail.Order.OrderNumber)
	assert.Empty(t, detail.Parcelas)

	list, err := uc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = uc.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
