// Package memory implementa los puertos de persistencia en memoria. Se usa con STORAGE_DRIVER=memory
// y como doble de prueba en los tests de aplicación.
package memory

import (
	"sync"

	"github.com/jhoicas/comandas-api/internal/domain/entity"
)

// Store estado compartido de los repositorios en memoria.
type Store struct {
	mu         sync.RWMutex
	users      map[string]*entity.User
	items      map[string]*entity.Item
	orders     map[string]*entity.Order
	orderCodes map[string]string // order_code -> order id
	orderSeq   []string          // ids en orden de inserción

	// txMu serializa las transacciones de órdenes (equivalente a la tx SQL).
	txMu sync.Mutex
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		users:      make(map[string]*entity.User),
		items:      make(map[string]*entity.Item),
		orders:     make(map[string]*entity.Order),
		orderCodes: make(map[string]string),
	}
}

func cloneItem(it *entity.Item) *entity.Item {
	c := *it
	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = append([]entity.LineItem(nil), o.Items...)
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}
