package repository

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"fincalc/domain"
)

// CalculationRepositoryMemory is an in-memory implementation of CalculationRepository.
type CalculationRepositoryMemory struct {
	mu    sync.RWMutex
	data  map[string]domain.Calculation
	order []string // insertion order, oldest first
}

// NewCalculationRepositoryMemory creates a new in-memory calculation repository.
func NewCalculationRepositoryMemory() *CalculationRepositoryMemory {
	return &CalculationRepositoryMemory{
		data: make(map[string]domain.Calculation),
	}
}

func (r *CalculationRepositoryMemory) Create(_ context.Context, c domain.Calculation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[c.ID]; exists {
		return domain.ErrDuplicate
	}
	r.data[c.ID] = cloneCalculation(c)
	r.order = append(r.order, c.ID)
	return nil
}

func (r *CalculationRepositoryMemory) Get(_ context.Context, id string) (domain.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.data[id]
	if !ok {
		return domain.Calculation{}, domain.ErrNotFound
	}
	return cloneCalculation(c), nil
}

func (r *CalculationRepositoryMemory) List(_ context.Context, filter domain.CalculationFilter) ([]domain.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Calculation{}
	for _, id := range slices.Backward(r.order) {
		c := r.data[id]
		if filter.UserID != "" && c.UserID != filter.UserID {
			continue
		}
		if filter.CalculatorType != "" && c.CalculatorType != filter.CalculatorType {
			continue
		}
		if filter.FavoritesOnly && !c.Favorite {
			continue
		}
		out = append(out, cloneCalculation(c))
	}
	slices.SortStableFunc(out, func(a, b domain.Calculation) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *CalculationRepositoryMemory) SetFavorite(_ context.Context, id string, favorite bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.data[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Favorite = favorite
	c.UpdatedAt = at
	r.data[id] = c
	return nil
}

func (r *CalculationRepositoryMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	r.order = slices.DeleteFunc(r.order, func(existing string) bool { return existing == id })
	return nil
}

func cloneCalculation(c domain.Calculation) domain.Calculation {
	c.Inputs = maps.Clone(c.Inputs)
	c.Results = maps.Clone(c.Results)
	return c
}
