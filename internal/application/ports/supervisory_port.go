package ports

import (
	"context"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

// SupervisoryNotifier puerto de salida hacia el sistema supervisorio que inicia la mezcla física.
// Se invoca solo después de confirmar la transacción del despacho: la parcela ya existe en
// IN_PRODUCTION con StartedAt definido.
type SupervisoryNotifier interface {
	NotifyDispatch(ctx context.Context, p *entity.Parcela) error
}
