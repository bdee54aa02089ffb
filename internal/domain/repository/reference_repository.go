package repository

import (
	"context"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

// ReferenceRepository consultas de solo lectura a los catálogos (haciendas, talhões, camiones, mezcladores).
// Devuelve domain.ErrNotFound cuando el id no existe.
type ReferenceRepository interface {
	GetFarm(ctx context.Context, id string) (*entity.Farm, error)
	GetPlot(ctx context.Context, id string) (*entity.Plot, error)
	GetTruck(ctx context.Context, id string) (*entity.Truck, error)
	GetMixer(ctx context.Context, id string) (*entity.Mixer, error)
}
