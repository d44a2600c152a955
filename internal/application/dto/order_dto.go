package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientRequest datos del cliente de la orden.
type ClientRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// OrderLineRequest línea solicitada: item y cantidad.
type OrderLineRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

// CreateOrderRequest entrada para crear una orden.
type CreateOrderRequest struct {
	Client ClientRequest      `json:"client"`
	Items  []OrderLineRequest `json:"items"`
	Notes  string             `json:"notes"`
}

// ListOrdersQuery filtros opcionales del listado de órdenes.
type ListOrdersQuery struct {
	Status        string `query:"status"`
	PaymentStatus string `query:"payment_status"`
	Limit         int    `query:"limit"`
	Offset        int    `query:"offset"`
}

// ClientResponse cliente embebido en la orden.
type ClientResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderLineResponse línea de la orden con precio congelado.
type OrderLineResponse struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// StockWarningResponse aviso no fatal: el stock de la línea no se pudo descontar.
type StockWarningResponse struct {
	LineIndex int    `json:"line_index"`
	ItemID    string `json:"item_id"`
	Requested int    `json:"requested"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID            string                 `json:"id"`
	OrderCode     string                 `json:"order_code"`
	Client        ClientResponse         `json:"client"`
	Items         []OrderLineResponse    `json:"items"`
	Total         decimal.Decimal        `json:"total"`
	WaiterID      string                 `json:"waiter_id"`
	TenantID      string                 `json:"tenant_id"`
	Status        string                 `json:"status"`
	PaymentStatus string                 `json:"payment_status"`
	Notes         string                 `json:"notes,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	StockWarnings []StockWarningResponse `json:"stock_warnings,omitempty"`
}

// OrderListResponse lista de órdenes, más recientes primero.
type OrderListResponse struct {
	Count  int             `json:"count"`
	Orders []OrderResponse `json:"orders"`
	Page   PageResponse    `json:"page"`
}
