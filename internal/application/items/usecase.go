// Package items casos de uso del inventario de items de un tenant.
package items

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comandas-api/internal/application/dto"
	"github.com/jhoicas/comandas-api/internal/application/tenancy"
	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
)

// ItemUseCase listado (owner y personal) y mantenimiento (solo owner) de items.
// El stock nunca se modifica por lectura-modificación-escritura: solo Restock (suma atómica)
// y el decremento condicional del pipeline de órdenes.
type ItemUseCase struct {
	resolver *tenancy.Resolver
	repo     repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(resolver *tenancy.Resolver, repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{resolver: resolver, repo: repo}
}

// List items del tenant resuelto para el caller.
func (uc *ItemUseCase) List(ctx context.Context, caller tenancy.Caller, q dto.ListItemsQuery) (*dto.ItemListResponse, error) {
	scope, err := uc.resolver.ItemScope(ctx, caller)
	if err != nil {
		return nil, err
	}
	filter := repository.ItemFilter{Available: q.Available}
	if q.Category != "" {
		cat, err := entity.ParseCategory(q.Category)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.Category = &cat
	}
	list, err := uc.repo.ListByTenant(ctx, scope.TenantID, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemListResponse{Items: make([]dto.ItemResponse, 0, len(list))}
	for _, it := range list {
		out.Items = append(out.Items, *toItemResponse(it))
	}
	out.Count = len(out.Items)
	return out, nil
}

// Create crea un item en el inventario del owner que hace la petición.
func (uc *ItemUseCase) Create(ctx context.Context, caller tenancy.Caller, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if !caller.Roles.IsOwner() {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.LessThan(decimal.Zero) || in.QuantityAvailable < 0 {
		return nil, domain.ErrInvalidInput
	}
	cat, err := entity.ParseCategory(in.Category)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	now := time.Now()
	item := &entity.Item{
		ID:                uuid.New().String(),
		TenantID:          caller.ID,
		Name:              name,
		Description:       strings.TrimSpace(in.Description),
		Price:             in.Price,
		QuantityAvailable: in.QuantityAvailable,
		Category:          cat,
		Available:         available,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Update cambia datos del item (precio, disponibilidad, ...). Las órdenes previas conservan su snapshot.
func (uc *ItemUseCase) Update(ctx context.Context, caller tenancy.Caller, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if !caller.Roles.IsOwner() {
		return nil, domain.ErrForbidden
	}
	item, err := uc.repo.GetForTenant(ctx, caller.ID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = name
	}
	if in.Description != nil {
		item.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	if in.Category != nil {
		cat, err := entity.ParseCategory(*in.Category)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		item.Category = cat
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Restock suma unidades al stock del item.
func (uc *ItemUseCase) Restock(ctx context.Context, caller tenancy.Caller, id string, amount int) (*dto.ItemResponse, error) {
	if !caller.Roles.IsOwner() {
		return nil, domain.ErrForbidden
	}
	if amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Restock(ctx, caller.ID, id, amount); err != nil {
		return nil, err
	}
	item, err := uc.repo.GetForTenant(ctx, caller.ID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:                it.ID,
		TenantID:          it.TenantID,
		Name:              it.Name,
		Description:       it.Description,
		Price:             it.Price,
		QuantityAvailable: it.QuantityAvailable,
		Category:          string(it.Category),
		Available:         it.Available,
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
}
