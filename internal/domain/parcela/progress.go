package parcela

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// progressPlaces escala de ProgressPercent (columna NUMERIC(9,4)).
const progressPlaces = 4

// OrderProgress suma ProgressShare de las parcelas despachadas (ni OnTruck ni Cancelled), con tope 100.
// La suma se redondea a progressPlaces antes del tope: tres tercios de 33.333... dan 100.
// El segundo valor indica si hay al menos una parcela despachada.
func OrderProgress(parcelas []*entity.Parcela) (decimal.Decimal, bool) {
	total := decimal.Zero
	dispatched := false
	for _, p := range parcelas {
		if !p.Status.Dispatched() {
			continue
		}
		dispatched = true
		total = total.Add(p.ProgressShare)
	}
	return decimal.Min(total.Round(progressPlaces), hundred), dispatched
}

// ApplyProgress recalcula ProgressPercent y el estado de la orden desde sus parcelas.
// Sin parcelas despachadas, o con total 0, el estado no retrocede: queda como estaba.
// En otro caso pasa a Finalized (>= 100) o NotTotaled.
func ApplyProgress(o *entity.ServiceOrder, parcelas []*entity.Parcela, now time.Time) {
	total, dispatched := OrderProgress(parcelas)
	o.ProgressPercent = total
	if !dispatched || total.IsZero() {
		return
	}
	if o.StartedAt == nil {
		o.StartedAt = &now
	}
	if total.GreaterThanOrEqual(hundred) {
		if o.Status != entity.OrderFinalized {
			o.FinishedAt = &now
		}
		o.Status = entity.OrderFinalized
		return
	}
	o.Status = entity.OrderNotTotaled
	o.FinishedAt = nil
}

// InitialOrderStatus deriva el estado de una orden sin parcelas.
func InitialOrderStatus(o *entity.ServiceOrder) entity.OrderStatus {
	if !o.Complete() {
		return entity.OrderAwaitingInfo
	}
	return entity.OrderPending
}

// MarkPrepared pasa la orden a InPreparation cuando recibe su primera parcela guardada.
func MarkPrepared(o *entity.ServiceOrder) {
	if o.Status == entity.OrderPending {
		o.Status = entity.OrderInPreparation
	}
}
