package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category categoría cerrada de un item del menú.
type Category string

const (
	CategoryFood    Category = "Food"
	CategoryDrink   Category = "Drink"
	CategoryDessert Category = "Dessert"
)

// ParseCategory valida una categoría.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryFood, CategoryDrink, CategoryDessert:
		return Category(s), nil
	}
	return "", fmt.Errorf("categoría inválida: %q", s)
}

// Item representa un producto vendible del inventario de un tenant.
// QuantityAvailable solo se decrementa con ItemRepository.ConditionalDecrement.
// Available es independiente del stock: un item puede tener stock y estar deshabilitado.
type Item struct {
	ID                string
	TenantID          string
	Name              string
	Description       string
	Price             decimal.Decimal
	QuantityAvailable int
	Category          Category
	Available         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
