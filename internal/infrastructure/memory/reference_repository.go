package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/smartcalda-api/internal/domain"
	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo catálogos de solo lectura. Se cargan con Store.AddFarm, AddPlot, AddTruck y AddMixer.
type ReferenceRepo struct {
	store *Store
}

func (r *ReferenceRepo) GetFarm(_ context.Context, id string) (*entity.Farm, error) {
	return lookup(r.store, r.store.farms, id, "farm")
}

func (r *ReferenceRepo) GetPlot(_ context.Context, id string) (*entity.Plot, error) {
	return lookup(r.store, r.store.plots, id, "plot")
}

func (r *ReferenceRepo) GetTruck(_ context.Context, id string) (*entity.Truck, error) {
	return lookup(r.store, r.store.trucks, id, "truck")
}

func (r *ReferenceRepo) GetMixer(_ context.Context, id string) (*entity.Mixer, error) {
	return lookup(r.store, r.store.mixers, id, "mixer")
}

func lookup[T any](s *Store, m map[string]T, id, kind string) (*T, error) {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	v, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", kind, id, domain.ErrNotFound)
	}
	return &v, nil
}

// AddFarm registra una hacienda en el catálogo.
func (s *Store) AddFarm(f entity.Farm) {
	s.refMu.Lock()
	defer s.refMu.Unlock()
	s.farms[f.ID] = f
}

// AddPlot registra un talhão en el catálogo.
func (s *Store) AddPlot(p entity.Plot) {
	s.refMu.Lock()
	defer s.refMu.Unlock()
	s.plots[p.ID] = p
}

// AddTruck registra un camión en el catálogo.
func (s *Store) AddTruck(t entity.Truck) {
	s.refMu.Lock()
	defer s.refMu.Unlock()
	s.trucks[t.ID] = t
}

// AddMixer registra un mezclador en el catálogo.
func (s *Store) AddMixer(m entity.Mixer) {
	s.refMu.Lock()
	defer s.refMu.Unlock()
	s.mixers[m.ID] = m
}
