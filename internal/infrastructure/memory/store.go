// Package memory implementa los repositorios sobre mapas en memoria.
// Las transacciones se serializan con un mutex y trabajan sobre una copia del estado que
// reemplaza al original solo en el commit, de modo que un error no deja cambios parciales.
package memory

import (
	"slices"
	"sync"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
	"github.com/jhoicas/smartcalda-api/internal/domain/repository"
)

// Store dueño de todas las colecciones de entidades.
type Store struct {
	mu sync.RWMutex
	st *state

	refMu  sync.RWMutex
	farms  map[string]entity.Farm
	plots  map[string]entity.Plot
	trucks map[string]entity.Truck
	mixers map[string]entity.Mixer
}

type state struct {
	seq     int64
	entries map[entity.EntryKey]entity.StockEntry
	records map[string]entity.TierStockRecord
	// movements es append-only y clone comparte el arreglo subyacente: una transacción solo
	// escribe más allá del len publicado y siempre con mu tomado en escritura.
	movements []entity.InventoryMovement
	orders    map[string]entity.ServiceOrder
	parcelas  map[string]entity.Parcela
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		st: &state{
			entries:  map[entity.EntryKey]entity.StockEntry{},
			records:  map[string]entity.TierStockRecord{},
			orders:   map[string]entity.ServiceOrder{},
			parcelas: map[string]entity.Parcela{},
		},
		farms:  map[string]entity.Farm{},
		plots:  map[string]entity.Plot{},
		trucks: map[string]entity.Truck{},
		mixers: map[string]entity.Mixer{},
	}
}

// Repositories devuelve repositorios fuera de transacción (cada escritura es atómica por sí sola).
func (s *Store) Repositories() repository.Repositories {
	return s.bind(scope{store: s})
}

func (s *Store) bind(sc scope) repository.Repositories {
	return repository.Repositories{
		Entries:     &StockEntryRepo{sc: sc},
		TierRecords: &TierStockRepo{sc: sc},
		Movements:   &InventoryMovementRepo{sc: sc},
		Orders:      &ServiceOrderRepo{sc: sc},
		Parcelas:    &ParcelaRepo{sc: sc},
		Reference:   &ReferenceRepo{store: s},
	}
}

func (st *state) clone() *state {
	next := &state{
		seq:       st.seq,
		entries:   make(map[entity.EntryKey]entity.StockEntry, len(st.entries)),
		records:   make(map[string]entity.TierStockRecord, len(st.records)),
		movements: st.movements,
		orders:    make(map[string]entity.ServiceOrder, len(st.orders)),
		parcelas:  make(map[string]entity.Parcela, len(st.parcelas)),
	}
	for k, v := range st.entries {
		next.entries[k] = v
	}
	for k, v := range st.records {
		next.records[k] = v
	}
	for k, v := range st.orders {
		next.orders[k] = cloneOrder(v)
	}
	for k, v := range st.parcelas {
		next.parcelas[k] = cloneParcela(v)
	}
	return next
}

func cloneOrder(o entity.ServiceOrder) entity.ServiceOrder {
	o.Plots = slices.Clone(o.Plots)
	o.Inputs = slices.Clone(o.Inputs)
	return o
}

func cloneParcela(p entity.Parcela) entity.Parcela {
	p.MovedInputs = slices.Clone(p.MovedInputs)
	return p
}

// scope resuelve sobre qué estado opera un repositorio: el de una transacción abierta
// (tx != nil, el lock ya lo tiene TxRunner) o el del store con su propio lock.
type scope struct {
	store *Store
	tx    *state
}

func (sc scope) read(fn func(st *state) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.store.mu.RLock()
	defer sc.store.mu.RUnlock()
	return fn(sc.store.st)
}

func (sc scope) write(fn func(st *state) error) error {
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.store.mu.Lock()
	defer sc.store.mu.Unlock()
	next := sc.store.st.clone()
	if err := fn(next); err != nil {
		return err
	}
	sc.store.st = next
	return nil
}
