// Package metrics implementa ports.MetricsRecorder con contadores Prometheus.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/smartcalda-api/internal/application/ports"
	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

var _ ports.MetricsRecorder = (*Recorder)(nil)

// Recorder contadores de movimientos, transiciones y fallos, en un registry propio.
type Recorder struct {
	registry    *prometheus.Registry
	movements   *prometheus.CounterVec
	quantity    *prometheus.CounterVec
	transitions *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

// NewRecorder crea el registry con los colectores de proceso y runtime de Go.
func NewRecorder(namespace string) *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,
		movements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_movements_total",
			Help:      "Movimientos del ledger por tipo y tier de origen.",
		}, []string{"type", "source_tier"}),
		quantity: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_moved_quantity_total",
			Help:      "Cantidad movida por tipo y tier de origen (unidades del ítem).",
		}, []string{"type", "source_tier"}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parcela_transitions_total",
			Help:      "Transiciones de estado de parcelas.",
		}, []string{"from", "to"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Operaciones rechazadas por tipo de error de dominio.",
		}, []string{"operation", "reason"}),
	}
}

func (r *Recorder) MovementRecorded(movementType string, source entity.Tier, quantity float64) {
	r.movements.WithLabelValues(movementType, string(source)).Inc()
	if quantity > 0 {
		r.quantity.WithLabelValues(movementType, string(source)).Add(quantity)
	}
}

func (r *Recorder) ParcelaTransition(from, to entity.ParcelaStatus) {
	r.transitions.WithLabelValues(string(from), string(to)).Inc()
}

func (r *Recorder) OperationFailed(operation string, err error) {
	r.failures.WithLabelValues(operation, Reason(err)).Inc()
}

// Handler expone el registry en formato de texto de Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry devuelve el registry (tests).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Reason etiqueta corta y acotada para un error de dominio.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrMissingRequiredField):
		return "missing_required_field"
	case errors.Is(err, domain.ErrFefoConfirmationRequired):
		return "fefo_confirmation_required"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
