package memory

import (
	"context"

	"github.com/jhoicas/smartcalda-api/internal/application/ports"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks con aislamiento total: una transacción a la vez sobre una copia del estado.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn y publica la copia solo si fn devuelve nil.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx := r.store.st.clone()
	if err := fn(r.store.bind(scope{store: r.store, tx: tx})); err != nil {
		return err
	}
	r.store.st = tx
	return nil
}
