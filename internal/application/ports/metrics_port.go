package ports

import "github.com/jhoicas/smartcalda-api/internal/domain/entity"

// MetricsRecorder registra métricas de negocio del ledger y de las parcelas.
type MetricsRecorder interface {
	MovementRecorded(movementType string, source entity.Tier, quantity float64)
	ParcelaTransition(from, to entity.ParcelaStatus)
	OperationFailed(operation string, err error)
}

// NopMetrics implementación vacía para tests y despliegues sin métricas.
type NopMetrics struct{}

func (NopMetrics) MovementRecorded(string, entity.Tier, float64) {}
func (NopMetrics) ParcelaTransition(entity.ParcelaStatus, entity.ParcelaStatus) {}
func (NopMetrics) OperationFailed(string, error) {}
