package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo inventario en memoria. ConditionalDecrement es atómico bajo el mutex del store.
type ItemRepo struct {
	s *Store
}

// NewItemRepository construye el repositorio.
func NewItemRepository(s *Store) *ItemRepo {
	return &ItemRepo{s: s}
}

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.items[item.ID] = cloneItem(item)
	return nil
}

func (r *ItemRepo) GetForTenant(_ context.Context, tenantID, itemID string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[itemID]
	if !ok || it.TenantID != tenantID {
		return nil, nil
	}
	return cloneItem(it), nil
}

func (r *ItemRepo) ListByTenant(_ context.Context, tenantID string, filter repository.ItemFilter) ([]*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Item
	for _, it := range r.s.items {
		if it.TenantID != tenantID {
			continue
		}
		if filter.Category != nil && it.Category != *filter.Category {
			continue
		}
		if filter.Available != nil && it.Available != *filter.Available {
			continue
		}
		list = append(list, cloneItem(it))
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *ItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[item.ID]
	if !ok || it.TenantID != item.TenantID {
		return domain.ErrNotFound
	}
	it.Name = item.Name
	it.Description = item.Description
	it.Price = item.Price
	it.Category = item.Category
	it.Available = item.Available
	it.UpdatedAt = item.UpdatedAt
	return nil
}

func (r *ItemRepo) Restock(_ context.Context, tenantID, itemID string, amount int) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[itemID]
	if !ok || it.TenantID != tenantID {
		return domain.ErrNotFound
	}
	it.QuantityAvailable += amount
	it.UpdatedAt = time.Now()
	return nil
}

func (r *ItemRepo) ConditionalDecrement(_ context.Context, itemID string, amount int) (bool, error) {
	if amount <= 0 {
		return false, domain.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[itemID]
	if !ok || it.QuantityAvailable < amount {
		return false, nil
	}
	it.QuantityAvailable -= amount
	it.UpdatedAt = time.Now()
	return true, nil
}
