package postgres

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/pkg/config"
)

func TestWrapErr_TraduceErroresDePgx(t *testing.T) {
	assert.ErrorIs(t, wrapErr("get", pgx.ErrNoRows), domain.ErrNotFound)
	assert.ErrorIs(t, wrapErr("create", &pgconn.PgError{Code: "23505"}), domain.ErrInvalidInput)

	other := errors.New("conexión cerrada")
	err := wrapErr("list", other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestExpectOne(t *testing.T) {
	assert.ErrorIs(t, expectOne("update", pgconn.NewCommandTag("UPDATE 0"), nil), domain.ErrNotFound)
	assert.NoError(t, expectOne("update", pgconn.NewCommandTag("UPDATE 1"), nil))
}

func TestNullTime(t *testing.T) {
	assert.Nil(t, nullTime(time.Time{}))
	ts := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NotNil(t, nullTime(ts))
	assert.Equal(t, ts, *nullTime(ts))
}

func TestMigrations_Embebidas(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Contains(t, names, "migrations/001_schema.sql")
}

// Un DSN mal formado falla al parsear, sin intentar conectar.
func TestNewPool_DSNInvalido(t *testing.T) {
	pool, err := NewPool(context.Background(), config.DBConfig{DatabaseURL: "host=localhost port=no-es-un-puerto"})
	require.Error(t, err)
	assert.Nil(t, pool)
	assert.Contains(t, err.Error(), "parse DSN")
}
