package parcela_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/parcela"
)

var now = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func newParcela(status entity.ParcelaStatus, share int64) *entity.Parcela {
	return &entity.Parcela{ID: "p", OrderID: "o", Status: status, ProgressShare: decimal.NewFromInt(share)}
}

func TestTransition_CaminoFeliz(t *testing.T) {
	p := newParcela(entity.ParcelaOnTruck, 40)

	require.NoError(t, parcela.Transition(p, entity.ParcelaInProduction, now))
	require.NotNil(t, p.StartedAt)
	assert.Equal(t, now, *p.StartedAt)

	require.NoError(t, parcela.Transition(p, entity.ParcelaPaused, now.Add(time.Minute)))
	require.NoError(t, parcela.Transition(p, entity.ParcelaInProduction, now.Add(2*time.Minute)))
	assert.Equal(t, now, *p.StartedAt, "reanudar no cambia startedAt")

	require.NoError(t, parcela.Transition(p, entity.ParcelaProcessed, now.Add(time.Hour)))
	require.NotNil(t, p.FinishedAt)
	assert.True(t, p.Status.Terminal())
}

// Cancelar desde cualquier estado distinto de OnTruck falla y no toca la parcela.
func TestTransition_CancelarSoloDesdeOnTruck(t *testing.T) {
	for _, st := range []entity.ParcelaStatus{
		entity.ParcelaInProduction, entity.ParcelaPaused, entity.ParcelaBlocked,
		entity.ParcelaProcessed, entity.ParcelaCancelled,
	} {
		p := newParcela(st, 30)
		err := parcela.Transition(p, entity.ParcelaCancelled, now)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, st)
		assert.Equal(t, st, p.Status)
	}

	p := newParcela(entity.ParcelaOnTruck, 30)
	require.NoError(t, parcela.Transition(p, entity.ParcelaCancelled, now))
	assert.Equal(t, entity.ParcelaCancelled, p.Status)
}

func TestTransition_BloqueoExterno(t *testing.T) {
	p := newParcela(entity.ParcelaInProduction, 10)
	require.NoError(t, parcela.Transition(p, entity.ParcelaBlocked, now))
	assert.ErrorIs(t, parcela.Transition(p, entity.ParcelaProcessed, now), domain.ErrInvalidTransition)
	require.NoError(t, parcela.Transition(p, entity.ParcelaInProduction, now))

	onTruck := newParcela(entity.ParcelaOnTruck, 10)
	assert.ErrorIs(t, parcela.Transition(onTruck, entity.ParcelaBlocked, now), domain.ErrInvalidTransition)
}

func TestEnsureEditable(t *testing.T) {
	assert.NoError(t, parcela.EnsureEditable(newParcela(entity.ParcelaOnTruck, 1)))
	assert.ErrorIs(t, parcela.EnsureEditable(newParcela(entity.ParcelaInProduction, 1)), domain.ErrInvalidTransition)
}
