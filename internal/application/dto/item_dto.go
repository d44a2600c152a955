package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un item del inventario (solo owner).
type CreateItemRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable int             `json:"quantity_available"`
	Category          string          `json:"category" validate:"required,oneof=Food Drink Dessert"`
	Available         *bool           `json:"available"`
}

// UpdateItemRequest entrada para actualizar un item. El stock no se modifica aquí.
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Available   *bool            `json:"available"`
}

// RestockItemRequest suma unidades al stock.
type RestockItemRequest struct {
	Amount int `json:"amount" validate:"required,min=1"`
}

// ListItemsQuery filtros opcionales del listado de items.
type ListItemsQuery struct {
	Category  string `query:"category"`
	Available *bool  `query:"available"`
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ID                string          `json:"id"`
	TenantID          string          `json:"tenant_id"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable int             `json:"quantity_available"`
	Category          string          `json:"category"`
	Available         bool            `json:"available"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ItemListResponse lista de items del tenant.
type ItemListResponse struct {
	Count int            `json:"count"`
	Items []ItemResponse `json:"items"`
}
