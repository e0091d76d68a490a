package repositories

import (
	"context"
	"sort"
	"sync"

	"colaboradores/src/domain/entities"
)

// InMemoryColaboradorRepository mantém os registros em memória, com ids crescentes
// que nunca são reaproveitados.
type InMemoryColaboradorRepository struct {
	mu     sync.RWMutex
	rows   map[int64]entities.Colaborador
	nextID int64
}

func NewInMemoryColaboradorRepository() *InMemoryColaboradorRepository {
	return &InMemoryColaboradorRepository{
		rows: make(map[int64]entities.Colaborador),
	}
}

func (r *InMemoryColaboradorRepository) ListAll(ctx context.Context) ([]entities.Colaborador, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	colaboradores := make([]entities.Colaborador, 0, len(r.rows))
	for _, c := range r.rows {
		colaboradores = append(colaboradores, c)
	}

	sort.Slice(colaboradores, func(i, j int) bool {
		return colaboradores[i].ID < colaboradores[j].ID
	})

	return colaboradores, nil
}

func (r *InMemoryColaboradorRepository) Create(ctx context.Context, colaborador entities.Colaborador) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insert(colaborador), nil
}

func (r *InMemoryColaboradorRepository) Update(ctx context.Context, id int64, colaborador entities.Colaborador) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rows[id]; !exists {
		return 0, nil
	}

	colaborador.ID = id
	r.rows[id] = colaborador
	return 1, nil
}

func (r *InMemoryColaboradorRepository) Delete(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rows[id]; !exists {
		return 0, nil
	}

	delete(r.rows, id)
	return 1, nil
}

func (r *InMemoryColaboradorRepository) ImportMany(ctx context.Context, colaboradores []entities.Colaborador) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range colaboradores {
		r.insert(c)
	}

	return int64(len(colaboradores)), nil
}

func (r *InMemoryColaboradorRepository) insert(colaborador entities.Colaborador) int64 {
	r.nextID++
	colaborador.ID = r.nextID
	r.rows[colaborador.ID] = colaborador
	return colaborador.ID
}
