package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/smartcalda-api/internal/application/ports"
	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	domaininv "github.com/jhoicas/smartcalda-api/internal/domain/inventory"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

// LedgerUseCase expone las consultas y operaciones del ledger de inventario en tres tiers
// (principal, técnico, fraccionado). Toda mutación pasa por TxRunner con bloqueo de fila.
type LedgerUseCase struct {
	txRunner    ports.TxRunner
	entries     repository.StockEntryRepository
	tierRecords repository.TierStockRepository
	movements   repository.InventoryMovementRepository
	metrics     ports.MetricsRecorder
	now         func() time.Time
}

// NewLedgerUseCase construye el caso de uso. metrics puede ser nil.
func NewLedgerUseCase(
	txRunner ports.TxRunner,
	entries repository.StockEntryRepository,
	tierRecords repository.TierStockRepository,
	movements repository.InventoryMovementRepository,
	metrics ports.MetricsRecorder,
) *LedgerUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &LedgerUseCase{
		txRunner:    txRunner,
		entries:     entries,
		tierRecords: tierRecords,
		movements:   movements,
		metrics:     metrics,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *LedgerUseCase) WithClock(now func() time.Time) *LedgerUseCase {
	uc.now = now
	return uc
}

// ListWithdrawableEntries devuelve los lotes activos con saldo del ítem en orden FEFO.
// Es la lista completa (no paginada): los callers necesitan acceso aleatorio.
func (uc *LedgerUseCase) ListWithdrawableEntries(ctx context.Context, itemID string) ([]*entity.StockEntry, error) {
	if itemID == "" {
		return nil, domain.ErrMissingRequiredField
	}
	all, err := uc.entries.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return domaininv.WithdrawableFEFO(all, itemID), nil
}

// SelectForWithdrawal valida que key sea retirable. Si no es el primer candidato FEFO y
// overrideFefoWarning es false devuelve ErrFefoConfirmationRequired.
func (uc *LedgerUseCase) SelectForWithdrawal(ctx context.Context, key entity.EntryKey, overrideFefoWarning bool) (*entity.StockEntry, error) {
	return selectForWithdrawal(ctx, uc.entries, key, overrideFefoWarning)
}

// SelectInTx igual que SelectForWithdrawal pero con los repositorios de una transacción abierta.
func SelectInTx(ctx context.Context, repos repository.Repositories, key entity.EntryKey, overrideFefoWarning bool) (*entity.StockEntry, error) {
	return selectForWithdrawal(ctx, repos.Entries, key, overrideFefoWarning)
}

func selectForWithdrawal(ctx context.Context, entries repository.StockEntryRepository, key entity.EntryKey, override bool) (*entity.StockEntry, error) {
	e, err := entries.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !e.Withdrawable() {
		return nil, domain.ErrInsufficientBalance
	}
	if override {
		return e, nil
	}
	all, err := entries.ListByItem(ctx, key.ItemID)
	if err != nil {
		return nil, err
	}
	if !domaininv.IsFEFOChoice(domaininv.WithdrawableFEFO(all, key.ItemID), key) {
		return nil, domain.ErrFefoConfirmationRequired
	}
	return e, nil
}

// ListTierRecords devuelve los registros con saldo de un tier técnico o fraccionado.
func (uc *LedgerUseCase) ListTierRecords(ctx context.Context, tier entity.Tier, itemID string) ([]*entity.TierStockRecord, error) {
	if tier != entity.TierTechnical && tier != entity.TierFractional {
		return nil, domain.ErrInvalidInput
	}
	return uc.tierRecords.ListAvailable(ctx, tier, itemID)
}

// ListMovements historial de movimientos de un ítem (más recientes primero).
func (uc *LedgerUseCase) ListMovements(ctx context.Context, itemID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movements.ListByItem(ctx, itemID, limit, offset)
}
