package repository

import (
	"context"

	"github.com/jhoicas/comandas-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
// Create y CreateLine deben ejecutarse dentro de la misma transacción (ver orders.TxRunner).
type OrderRepository interface {
	// Create persiste la cabecera. Devuelve domain.ErrDuplicate si el order_code ya existe.
	Create(ctx context.Context, order *entity.Order) error
	CreateLine(ctx context.Context, orderID string, lineNo int, line *entity.LineItem) error
	// GetByID devuelve (nil, nil) si no existe o está fuera del scope.
	GetByID(ctx context.Context, scope Scope, id string) (*entity.Order, error)
	// List devuelve las órdenes del scope, más recientes primero.
	List(ctx context.Context, scope Scope, filter OrderFilter) ([]*entity.Order, error)
}
