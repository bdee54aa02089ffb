package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
	"github.com/jhoicas/smartcalda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/smartcalda-api/pkg/config"
)

var errRollback = errors.New("rollback")

// openTestDB conecta con DATABASE_URL y aplica las migraciones; sin la variable se salta el test.
func openTestDB(t *testing.T) *postgres.TxRunner {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	return postgres.NewTxRunner(pool)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Todo corre en una transacción que se revierte al final: la base queda como estaba.
func TestRepositorios_IdaYVuelta(t *testing.T) {
	runner := openTestDB(t)
	ctx := context.Background()
	suffix := uuid.New().String()
	created := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

	entry := &entity.StockEntry{
		NoteID: "NF-" + suffix, ItemID: "glifosato-" + suffix, LotCode: "L1",
		EntryDate: created, ReceivedQty: dec("100"), CurrentBalance: dec("100"), Unit: "L",
		PackageType: "bidón", PackageCount: 20, PackageCapacity: dec("5"),
	}
	moved := []entity.MovedInput{
		{StockRecordID: "TEC-" + suffix, ItemID: entry.ItemID, Quantity: dec("5"), Unit: "L",
			SourceTier: entity.TierPrimary, DestTier: entity.TierTechnical, SourceRef: entry.Key().String()},
		{StockRecordID: "TEC-" + suffix, ItemID: entry.ItemID, Quantity: dec("0.0004"), Unit: "L",
			SourceTier: entity.TierFractional, DestTier: entity.TierTechnical},
	}
	third := dec("500").Div(dec("1500")).Mul(dec("100"))

	err := runner.Run(ctx, func(repos repository.Repositories) error {
		// expiry_date NULL vuelve como fecha cero
		require.NoError(t, repos.Entries.Create(ctx, entry))
		got, err := repos.Entries.GetForUpdate(ctx, entry.Key())
		require.NoError(t, err)
		assert.True(t, got.ExpiryDate.IsZero())
		assert.True(t, got.CurrentBalance.Equal(dec("100")))
		assert.True(t, got.Active)

		require.NoError(t, got.Debit(dec("0.0001")))
		require.NoError(t, repos.Entries.UpdateBalance(ctx, got))
		list, err := repos.Entries.ListByItem(ctx, entry.ItemID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, list[0].CurrentBalance.Equal(dec("99.9999")))

		o := &entity.ServiceOrder{
			ID: "OS-" + suffix, OrderNumber: suffix, GeneratedDate: created,
			Plots:      []entity.OrderPlot{{FarmID: "F1", PlotID: "T1"}},
			Inputs:     []entity.OrderInput{{StockRecordID: "TEC-" + suffix, ItemID: entry.ItemID, DosePerHa: dec("2")}},
			CaldaPerHa: dec("100"), Status: entity.OrderPending,
			CreatedAt: created, UpdatedAt: created,
		}
		require.NoError(t, repos.Orders.Create(ctx, o))
		gotOrder, err := repos.Orders.GetForUpdate(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.Plots, gotOrder.Plots)
		require.Len(t, gotOrder.Inputs, 1)
		assert.True(t, gotOrder.Inputs[0].DosePerHa.Equal(dec("2")))
		assert.Nil(t, gotOrder.StartedAt)

		p := &entity.Parcela{
			ID: "P-" + suffix, OrderID: o.ID, MixerID: "M1", TruckID: "C1",
			TruckCapacity: dec("500"), MixProportionPercent: third, ProgressShare: third,
			MovedInputs: moved, Status: entity.ParcelaOnTruck, CreatedAt: created,
		}
		require.NoError(t, repos.Parcelas.Create(ctx, p))
		gotParcela, err := repos.Parcelas.GetForUpdate(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, gotParcela.MovedInputs, 2)
		for i, m := range gotParcela.MovedInputs {
			assert.Equal(t, moved[i].SourceTier, m.SourceTier)
			assert.Equal(t, moved[i].SourceRef, m.SourceRef)
			assert.True(t, moved[i].Quantity.Equal(m.Quantity))
		}
		assert.True(t, gotParcela.ProgressShare.Equal(third), "NUMERIC(20,16) conserva el cociente")
		assert.Nil(t, gotParcela.StartedAt)

		_, err = repos.Parcelas.GetByID(ctx, "no-"+suffix)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)

	err = runner.Run(ctx, func(repos repository.Repositories) error {
		_, err := repos.Entries.Get(ctx, entry.Key())
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "el rollback no deja el lote")
}
