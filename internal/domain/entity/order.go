package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de Order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus valida un estado de orden.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusServed, OrderStatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("estado de orden inválido: %q", s)
}

// Estados de pago.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// ParsePaymentStatus valida un estado de pago.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
		return PaymentStatus(s), nil
	}
	return "", fmt.Errorf("estado de pago inválido: %q", s)
}

// Client datos del cliente embebidos en la orden (no es una entidad administrada).
type Client struct {
	Name  string
	Email string
	Phone string
}

// LineItem copia de un item al momento de crear la orden; nombre y precio quedan congelados.
type LineItem struct {
	ItemID   string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Subtotal precio * cantidad.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order orden de un cliente tomada por un mesero (o por el owner). Inmutable después de creada.
type Order struct {
	ID            string
	OrderCode     string
	Client        Client
	Items         []LineItem
	WaiterID      string
	TenantID      string
	Status        OrderStatus
	PaymentStatus PaymentStatus
	Notes         string
	CreatedAt     time.Time
}

// Total suma de subtotales.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Items {
		total = total.Add(l.Subtotal())
	}
	return total
}
