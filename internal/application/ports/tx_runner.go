package ports

import (
	"context"

	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a ella.
// Commit si fn devuelve nil; Rollback en cualquier otro caso (no quedan retiros parciales).
// Es la unidad de atomicidad de retiros y transiciones de estado.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}
