package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
	"github.com/jhoicas/smartcalda-api/internal/infrastructure/memory"
)

func seedEntry(t *testing.T, store *memory.Store, lot string, balance int64) entity.EntryKey {
	t.Helper()
	e := &entity.StockEntry{
		NoteID: "NF-" + lot, ItemID: "glifosato", LotCode: lot,
		ReceivedQty: decimal.NewFromInt(balance), CurrentBalance: decimal.NewFromInt(balance),
		Unit: "L", ExpiryDate: time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Repositories().Entries.Create(context.Background(), e))
	return e.Key()
}

func TestTxRunner_RollbackAnteError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	key := seedEntry(t, store, "L1", 100)
	runner := memory.NewTxRunner(store)

	boom := errors.New("boom")
	err := runner.Run(ctx, func(repos repository.Repositories) error {
		e, err := repos.Entries.GetForUpdate(ctx, key)
		require.NoError(t, err)
		require.NoError(t, e.Debit(decimal.NewFromInt(60)))
		require.NoError(t, repos.Entries.UpdateBalance(ctx, e))
		return boom
	})
	require.ErrorIs(t, err, boom)

	e, err := store.Repositories().Entries.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, e.CurrentBalance.Equal(decimal.NewFromInt(100)), "el saldo no debe cambiar tras el rollback")
}

func TestTxRunner_Commit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	key := seedEntry(t, store, "L1", 100)

	err := memory.NewTxRunner(store).Run(ctx, func(repos repository.Repositories) error {
		e, err := repos.Entries.GetForUpdate(ctx, key)
		if err != nil {
			return err
		}
		if err := e.Debit(decimal.NewFromInt(100)); err != nil {
			return err
		}
		return repos.Entries.UpdateBalance(ctx, e)
	})
	require.NoError(t, err)

	e, err := store.Repositories().Entries.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, e.CurrentBalance.IsZero())
	assert.False(t, e.Active)
}

// Retiros concurrentes sobre el mismo lote: nunca queda saldo negativo.
func TestTxRunner_RetirosConcurrentes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	key := seedEntry(t, store, "L1", 50)
	runner := memory.NewTxRunner(store)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := runner.Run(ctx, func(repos repository.Repositories) error {
				e, err := repos.Entries.GetForUpdate(ctx, key)
				if err != nil {
					return err
				}
				if err := e.Debit(decimal.NewFromInt(5)); err != nil {
					return err
				}
				return repos.Entries.UpdateBalance(ctx, e)
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	e, err := store.Repositories().Entries.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, e.CurrentBalance.IsZero())
}

func TestStockEntryRepo_DuplicadoYNoEncontrado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	key := seedEntry(t, store, "L1", 10)

	dup := &entity.StockEntry{NoteID: key.NoteID, ItemID: key.ItemID, LotCode: key.LotCode}
	assert.ErrorIs(t, store.Repositories().Entries.Create(ctx, dup), domain.ErrInvalidInput)

	_, err := store.Repositories().Entries.Get(ctx, entity.EntryKey{NoteID: "x", ItemID: "y", LotCode: "z"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Repositories().Reference.GetTruck(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockEntryRepo_OrdenDeInsercion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedEntry(t, store, "B", 10)
	seedEntry(t, store, "A", 10)
	seedEntry(t, store, "C", 10)

	list, err := store.Repositories().Entries.ListByItem(ctx, "glifosato")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"B", "A", "C"}, []string{list[0].LotCode, list[1].LotCode, list[2].LotCode})
	assert.Less(t, list[0].Seq, list[1].Seq)
}

func movement(id string) *entity.InventoryMovement {
	return &entity.InventoryMovement{
		ID: id, TransactionID: "tx-" + id, Type: entity.MovementTypeWithdraw,
		ItemID: "glifosato", Quantity: decimal.NewFromInt(1), Unit: "L",
	}
}

// El historial se comparte entre copias del estado: lo escrito en una transacción fallida
// no aparece y la siguiente escritura ocupa su lugar.
func TestMovimientos_RollbackNoDejaRastro(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	require.NoError(t, repos.Movements.Create(ctx, movement("A")))

	boom := errors.New("boom")
	err := memory.NewTxRunner(store).Run(ctx, func(tx repository.Repositories) error {
		require.NoError(t, tx.Movements.Create(ctx, movement("B")))
		inTx, err := tx.Movements.ListByItem(ctx, "glifosato", 10, 0)
		require.NoError(t, err)
		require.Len(t, inTx, 2, "la transacción ve su propio movimiento")
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repos.Movements.ListByItem(ctx, "glifosato", 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].ID)

	require.NoError(t, repos.Movements.Create(ctx, movement("C")))
	require.NoError(t, memory.NewTxRunner(store).Run(ctx, func(tx repository.Repositories) error {
		return tx.Movements.Create(ctx, movement("D"))
	}))

	got, err = repos.Movements.ListByItem(ctx, "glifosato", 10, 0)
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"D", "C", "A"}, ids)
}
