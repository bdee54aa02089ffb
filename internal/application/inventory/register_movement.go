package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

// WithdrawInput salida directa de un lote del almacén principal.
type WithdrawInput struct {
	Key                 entity.EntryKey
	Quantity            decimal.Decimal
	OverrideFefoWarning bool
}

// TransferInput traslado desde un lote principal (SourceKey) o un registro técnico/fraccionado
// (SourceRecordID) hacia un nuevo registro en DestTier/DestLocation.
type TransferInput struct {
	SourceTier          entity.Tier
	SourceKey           entity.EntryKey
	SourceRecordID      string
	DestTier            entity.Tier
	DestLocation        string
	Quantity            decimal.Decimal
	OverrideFefoWarning bool
}

// Withdraw descuenta quantity del lote key. Falla con ErrInvalidQuantity si quantity <= 0 o tiene más de
// entity.QuantityPlaces decimales, y con
// ErrInsufficientBalance si supera el saldo; en ambos casos el lote queda intacto.
// No aplica la política FEFO (ver WithdrawSelected).
func (uc *LedgerUseCase) Withdraw(ctx context.Context, key entity.EntryKey, quantity decimal.Decimal) (*entity.StockEntry, error) {
	if !entity.ValidQuantity(quantity) {
		return nil, domain.ErrInvalidQuantity
	}
	var updated *entity.StockEntry
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		e, err := WithdrawInTx(ctx, repos, key, quantity, "", uuid.New().String(), uc.now())
		updated = e
		return err
	})
	if err != nil {
		uc.metrics.OperationFailed("withdraw", err)
		return nil, err
	}
	uc.metrics.MovementRecorded(entity.MovementTypeWithdraw, entity.TierPrimary, quantity.InexactFloat64())
	return updated, nil
}

// WithdrawSelected igual que Withdraw pero exige confirmación explícita cuando el lote elegido
// no es el primer candidato FEFO del ítem.
func (uc *LedgerUseCase) WithdrawSelected(ctx context.Context, in WithdrawInput) (*entity.StockEntry, error) {
	if !entity.ValidQuantity(in.Quantity) {
		return nil, domain.ErrInvalidQuantity
	}
	var updated *entity.StockEntry
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if _, err := selectForWithdrawal(ctx, repos.Entries, in.Key, in.OverrideFefoWarning); err != nil {
			return err
		}
		e, err := WithdrawInTx(ctx, repos, in.Key, in.Quantity, "", uuid.New().String(), uc.now())
		updated = e
		return err
	})
	if err != nil {
		uc.metrics.OperationFailed("withdraw", err)
		return nil, err
	}
	uc.metrics.MovementRecorded(entity.MovementTypeWithdraw, entity.TierPrimary, in.Quantity.InexactFloat64())
	return updated, nil
}

// Transfer descuenta el origen y crea un TierStockRecord en el destino con
// MovedQty = AvailableBalance = quantity, todo en la misma transacción.
func (uc *LedgerUseCase) Transfer(ctx context.Context, in TransferInput) (*entity.TierStockRecord, error) {
	if !entity.ValidQuantity(in.Quantity) {
		return nil, domain.ErrInvalidQuantity
	}
	if in.DestTier != entity.TierTechnical && in.DestTier != entity.TierFractional {
		return nil, domain.ErrInvalidInput
	}
	if in.DestLocation == "" {
		return nil, domain.ErrMissingRequiredField
	}
	if !in.SourceTier.Valid() {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	txID := uuid.New().String()
	var created *entity.TierStockRecord
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		if in.SourceTier == entity.TierPrimary {
			if _, err = selectForWithdrawal(ctx, repos.Entries, in.SourceKey, in.OverrideFefoWarning); err != nil {
				return err
			}
			created, err = transferFromEntry(ctx, repos, in, now, txID)
			return err
		}
		created, err = transferFromRecord(ctx, repos, in, now, txID)
		return err
	})
	if err != nil {
		uc.metrics.OperationFailed("transfer", err)
		return nil, err
	}
	uc.metrics.MovementRecorded(entity.MovementTypeTransfer, in.SourceTier, in.Quantity.InexactFloat64())
	return created, nil
}

// WithdrawInTx ejecuta una salida usando los repositorios de la transacción del caller.
// Bloquea el lote (GetForUpdate), descuenta y registra el movimiento.
func WithdrawInTx(
	ctx context.Context,
	repos repository.Repositories,
	key entity.EntryKey,
	quantity decimal.Decimal,
	parcelaID, transactionID string,
	now time.Time,
) (*entity.StockEntry, error) {
	e, err := repos.Entries.GetForUpdate(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := e.Debit(quantity); err != nil {
		return nil, err
	}
	if err := repos.Entries.UpdateBalance(ctx, e); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		TransactionID: transactionID,
		Type:          entity.MovementTypeWithdraw,
		ItemID:        e.ItemID,
		LotCode:       e.LotCode,
		SourceTier:    entity.TierPrimary,
		SourceRef:     key.String(),
		Quantity:      quantity,
		Unit:          e.Unit,
		ParcelaID:     parcelaID,
		CreatedAt:     now,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return e, nil
}

// ConsumeInTx descuenta quantity de un registro técnico/fraccionado al despachar una parcela.
func ConsumeInTx(
	ctx context.Context,
	repos repository.Repositories,
	recordID string,
	quantity decimal.Decimal,
	parcelaID, transactionID string,
	now time.Time,
) (*entity.TierStockRecord, error) {
	r, err := repos.TierRecords.GetForUpdate(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if err := r.Debit(quantity, now); err != nil {
		return nil, err
	}
	if err := repos.TierRecords.UpdateBalance(ctx, r); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		TransactionID: transactionID,
		Type:          entity.MovementTypeConsume,
		ItemID:        r.ItemID,
		LotCode:       r.LotCode,
		SourceTier:    r.Tier,
		SourceRef:     r.RecordID,
		Quantity:      quantity,
		Unit:          r.Unit,
		ParcelaID:     parcelaID,
		CreatedAt:     now,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return r, nil
}

// transferFromEntry: bloquea el lote principal, descuenta y crea el registro destino.
func transferFromEntry(ctx context.Context, repos repository.Repositories, in TransferInput, now time.Time, txID string) (*entity.TierStockRecord, error) {
	e, err := repos.Entries.GetForUpdate(ctx, in.SourceKey)
	if err != nil {
		return nil, err
	}
	if err := e.Debit(in.Quantity); err != nil {
		return nil, err
	}
	if err := repos.Entries.UpdateBalance(ctx, e); err != nil {
		return nil, err
	}
	dest := newTierRecord(in, e.ItemID, e.LotCode, e.Unit, in.SourceKey.String(), now)
	return dest, createTransfer(ctx, repos, dest, txID, now)
}

// transferFromRecord: igual que transferFromEntry con origen técnico/fraccionado.
func transferFromRecord(ctx context.Context, repos repository.Repositories, in TransferInput, now time.Time, txID string) (*entity.TierStockRecord, error) {
	if in.SourceRecordID == "" {
		return nil, domain.ErrMissingRequiredField
	}
	src, err := repos.TierRecords.GetForUpdate(ctx, in.SourceRecordID)
	if err != nil {
		return nil, err
	}
	if src.Tier != in.SourceTier {
		return nil, domain.ErrInvalidInput
	}
	if err := src.Debit(in.Quantity, now); err != nil {
		return nil, err
	}
	if err := repos.TierRecords.UpdateBalance(ctx, src); err != nil {
		return nil, err
	}
	dest := newTierRecord(in, src.ItemID, src.LotCode, src.Unit, src.RecordID, now)
	return dest, createTransfer(ctx, repos, dest, txID, now)
}

func newTierRecord(in TransferInput, itemID, lotCode, unit, sourceRef string, now time.Time) *entity.TierStockRecord {
	return &entity.TierStockRecord{
		RecordID:         uuid.New().String(),
		Tier:             in.DestTier,
		ItemID:           itemID,
		LotCode:          lotCode,
		LocationID:       in.DestLocation,
		MovedQty:         in.Quantity,
		Unit:             unit,
		AvailableBalance: in.Quantity,
		SourceTier:       in.SourceTier,
		SourceRef:        sourceRef,
		CreatedAt:        now,
	}
}

func createTransfer(ctx context.Context, repos repository.Repositories, dest *entity.TierStockRecord, txID string, now time.Time) error {
	if err := repos.TierRecords.Create(ctx, dest); err != nil {
		return err
	}
	return repos.Movements.Create(ctx, &entity.InventoryMovement{
		TransactionID: txID,
		Type:          entity.MovementTypeTransfer,
		ItemID:        dest.ItemID,
		LotCode:       dest.LotCode,
		SourceTier:    dest.SourceTier,
		SourceRef:     dest.SourceRef,
		DestTier:      dest.Tier,
		DestRef:       dest.RecordID,
		Quantity:      dest.MovedQty,
		Unit:          dest.Unit,
		CreatedAt:     now,
	})
}
