package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comandas-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con un OrderRepository atado a ella.
// La cabecera y las líneas de la orden se confirman juntas o no se confirman.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// CodeGenerator genera order_codes. Implementado por *ordercode.Generator.
type CodeGenerator interface {
	Generate() (string, error)
}

// EventPublisher publica eventos de órdenes hacia otros procesos (cocina, notificaciones).
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, evt OrderCreatedEvent) error
}

// OrderCreatedEvent mensaje publicado después de persistir una orden.
type OrderCreatedEvent struct {
	OrderID    string          `json:"order_id"`
	OrderCode  string          `json:"order_code"`
	TenantID   string          `json:"tenant_id"`
	WaiterID   string          `json:"waiter_id"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
	CreatedAt  time.Time       `json:"created_at"`
	StockShort []string        `json:"stock_short,omitempty"` // items cuyo decremento no se aplicó
}

// NoopPublisher descarta los eventos (sin broker configurado).
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, OrderCreatedEvent) error { return nil }
