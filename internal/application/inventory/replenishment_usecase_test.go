package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartcalda-api/internal/application/inventory"
	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/infrastructure/memory"
)

// 15 ha; glifosato a 2 L/ha desde TEC-1 (saldo 12) y 2,4-D a 0,5 L/ha desde FRA-1 (saldo 10).
func newReplenishment(t *testing.T, progress string, status entity.OrderStatus) (*inventory.ReplenishmentUseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	store.AddFarm(entity.Farm{ID: "F1", Name: "Santa Rita"})
	store.AddPlot(entity.Plot{ID: "T1", FarmID: "F1", Area: dec("10")})
	store.AddPlot(entity.Plot{ID: "T2", FarmID: "F1", Area: dec("5")})

	repos := store.Repositories()
	require.NoError(t, repos.Entries.Create(ctx, &entity.StockEntry{
		NoteID: "NF-1", ItemID: "glifosato", LotCode: "L1",
		ReceivedQty: dec("100"), CurrentBalance: dec("100"), Unit: "L",
		PackageCapacity: dec("5"), ExpiryDate: now.AddDate(0, 6, 0),
	}))
	for _, r := range []*entity.TierStockRecord{
		{RecordID: "TEC-1", Tier: entity.TierTechnical, ItemID: "glifosato", MovedQty: dec("12"), AvailableBalance: dec("12"), Unit: "L", SourceTier: entity.TierPrimary},
		{RecordID: "FRA-1", Tier: entity.TierFractional, ItemID: "2,4-D", MovedQty: dec("10"), AvailableBalance: dec("10"), Unit: "L", SourceTier: entity.TierPrimary},
	} {
		require.NoError(t, repos.TierRecords.Create(ctx, r))
	}
	require.NoError(t, repos.Orders.Create(ctx, &entity.ServiceOrder{
		ID: "OS-1", OrderNumber: "1001", FarmID: "F1", GeneratedDate: now,
		Plots: []entity.OrderPlot{{FarmID: "F1", PlotID: "T1"}, {FarmID: "F1", PlotID: "T2"}},
		Inputs: []entity.OrderInput{
			{StockRecordID: "TEC-1", ItemID: "glifosato", DosePerHa: dec("2")},
			{StockRecordID: "FRA-1", ItemID: "2,4-D", DosePerHa: dec("0.5")},
		},
		CaldaPerHa:      dec("100"),
		ProgressPercent: dec(progress),
		Status:          status,
	}))
	return inventory.NewReplenishmentUseCase(repos.Orders, repos.TierRecords, repos.Entries, repos.Reference), store
}

// Faltan 30 - 12 = 18 L de glifosato: tres envases de 5 L del principal y 3 L del fraccionado.
// 2,4-D necesita 7,5 L y hay 10: no se sugiere.
func TestSuggestForOrder_FaltanteEnEnvases(t *testing.T) {
	uc, _ := newReplenishment(t, "0", entity.OrderPending)

	got, err := uc.SuggestForOrder(context.Background(), "OS-1")
	require.NoError(t, err)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, 1, s.Priority)
	assert.Equal(t, "TEC-1", s.StockRecordID)
	assert.Equal(t, entity.TierPrimary, s.SourceTier)
	assert.True(t, s.RemainingNeed.Equal(dec("30")))
	assert.True(t, s.Shortfall.Equal(dec("18")))
	assert.Equal(t, "NF-1\x1fglifosato\x1fL1", s.PrimaryEntry)

	require.Len(t, s.Movements, 4)
	for _, m := range s.Movements[:3] {
		assert.Equal(t, entity.TierPrimary, m.Source)
		assert.True(t, m.Quantity.Equal(dec("5")))
	}
	assert.Equal(t, entity.TierFractional, s.Movements[3].Source)
	assert.True(t, s.Movements[3].Quantity.Equal(dec("3")))
}

// Con 60% despachado resta el 40%: 12 L de glifosato (cubiertos) y 3 L de 2,4-D (cubiertos).
func TestSuggestForOrder_DescuentaElProgreso(t *testing.T) {
	uc, store := newReplenishment(t, "60", entity.OrderNotTotaled)

	got, err := uc.SuggestForOrder(context.Background(), "OS-1")
	require.NoError(t, err)
	assert.Empty(t, got)

	// sin saldo en FRA-1 el 2,4-D se repone desde el mismo fraccionado
	ctx := context.Background()
	rec, err := store.Repositories().TierRecords.GetByID(ctx, "FRA-1")
	require.NoError(t, err)
	require.NoError(t, rec.Debit(dec("10"), now))
	require.NoError(t, store.Repositories().TierRecords.UpdateBalance(ctx, rec))

	got, err = uc.SuggestForOrder(ctx, "OS-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "FRA-1", got[0].StockRecordID)
	assert.Equal(t, entity.TierFractional, got[0].SourceTier)
	assert.True(t, got[0].Shortfall.Equal(dec("3")))
	require.Len(t, got[0].Movements, 1)
	assert.Equal(t, entity.TierFractional, got[0].Movements[0].Source)
}

func TestSuggestForOrder_OrdenFinalizadaOIncompleta(t *testing.T) {
	ctx := context.Background()
	uc, _ := newReplenishment(t, "100", entity.OrderFinalized)
	got, err := uc.SuggestForOrder(ctx, "OS-1")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = uc.SuggestForOrder(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	uc, store := newReplenishment(t, "0", entity.OrderAwaitingInfo)
	o, err := store.Repositories().Orders.GetByID(ctx, "OS-1")
	require.NoError(t, err)
	o.Inputs = nil
	require.NoError(t, store.Repositories().Orders.Update(ctx, o))
	_, err = uc.SuggestForOrder(ctx, "OS-1")
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
}
