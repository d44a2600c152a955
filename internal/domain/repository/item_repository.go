package repository

import (
	"context"

	"github.com/jhoicas/comandas-api/internal/domain/entity"
)

// ItemRepository define el puerto del inventario de items por tenant.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// GetForTenant devuelve (nil, nil) si el item no existe o pertenece a otro tenant.
	GetForTenant(ctx context.Context, tenantID, itemID string) (*entity.Item, error)
	ListByTenant(ctx context.Context, tenantID string, filter ItemFilter) ([]*entity.Item, error)
	// Update modifica nombre, descripción, precio, categoría y disponibilidad. Nunca el stock.
	Update(ctx context.Context, item *entity.Item) error
	// Restock suma amount al stock de forma atómica.
	Restock(ctx context.Context, tenantID, itemID string, amount int) error
	// ConditionalDecrement resta amount solo si quantity_available >= amount. Devuelve si se aplicó.
	ConditionalDecrement(ctx context.Context, itemID string, amount int) (bool, error)
}
