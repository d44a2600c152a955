package repository

import "github.com/jhoicas/comandas-api/internal/domain/entity"

// Scope filtro de lectura construido según el rol del caller.
// TenantID siempre está definido; WaiterID restringe a las órdenes creadas por ese usuario.
type Scope struct {
	TenantID string
	WaiterID string
}

// OrderFilter filtros opcionales para listar órdenes. Nunca amplían el Scope.
type OrderFilter struct {
	Status        *entity.OrderStatus
	PaymentStatus *entity.PaymentStatus
	Limit         int
	Offset        int
}

// ItemFilter filtros opcionales para listar items.
type ItemFilter struct {
	Category  *entity.Category
	Available *bool
}
