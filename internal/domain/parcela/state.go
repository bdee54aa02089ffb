// Package parcela contiene la máquina de estados de las cargas de camión y la derivación
// del progreso/estado de la orden a partir de sus parcelas.
package parcela

import (
	"fmt"
	"time"

	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

// transitions estados destino permitidos desde cada estado.
// Blocked y Paused los fija el supervisorio; Cancelled solo se alcanza desde OnTruck.
var transitions = map[entity.ParcelaStatus][]entity.ParcelaStatus{
	entity.ParcelaOnTruck:      {entity.ParcelaInProduction, entity.ParcelaCancelled},
	entity.ParcelaInProduction: {entity.ParcelaProcessed, entity.ParcelaPaused, entity.ParcelaBlocked},
	entity.ParcelaPaused:       {entity.ParcelaInProduction},
	entity.ParcelaBlocked:      {entity.ParcelaInProduction},
}

// CanTransition indica si from -> to está permitido.
func CanTransition(from, to entity.ParcelaStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition aplica from -> to sobre p y fija las marcas de tiempo.
// Si la transición no está permitida devuelve ErrInvalidTransition y no modifica p.
func Transition(p *entity.Parcela, to entity.ParcelaStatus, now time.Time) error {
	if !CanTransition(p.Status, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, p.Status, to)
	}
	switch to {
	case entity.ParcelaInProduction:
		if p.StartedAt == nil {
			p.StartedAt = &now
		}
	case entity.ParcelaProcessed:
		p.FinishedAt = &now
	}
	p.Status = to
	return nil
}

// EnsureEditable valida que la parcela todavía no fue despachada.
func EnsureEditable(p *entity.Parcela) error {
	if p.Status != entity.ParcelaOnTruck {
		return fmt.Errorf("%w: parcela en %s no se puede editar", domain.ErrInvalidTransition, p.Status)
	}
	return nil
}
