package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes en memoria. Las escrituras solo se hacen visibles al confirmar la transacción
// (ver TxRunner); fuera de una transacción Create/CreateLine escriben directo.
type OrderRepo struct {
	s  *Store
	tx *orderTx
}

// NewOrderRepository construye el repositorio de lectura/escritura directa.
func NewOrderRepository(s *Store) *OrderRepo {
	return &OrderRepo{s: s}
}

type orderTx struct {
	orders []*entity.Order
	lines  map[string][]entity.LineItem
}

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	header := cloneOrder(order)
	header.Items = nil
	if r.tx == nil {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
		if _, ok := r.s.orderCodes[order.OrderCode]; ok {
			return domain.ErrDuplicate
		}
		r.s.insertOrderLocked(header)
		return nil
	}
	r.s.mu.RLock()
	_, taken := r.s.orderCodes[order.OrderCode]
	r.s.mu.RUnlock()
	if taken {
		return domain.ErrDuplicate
	}
	for _, o := range r.tx.orders {
		if o.OrderCode == order.OrderCode {
			return domain.ErrDuplicate
		}
	}
	r.tx.orders = append(r.tx.orders, header)
	return nil
}

func (r *OrderRepo) CreateLine(_ context.Context, orderID string, _ int, line *entity.LineItem) error {
	if r.tx != nil {
		r.tx.lines[orderID] = append(r.tx.lines[orderID], *line)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Items = append(o.Items, *line)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, scope repository.Scope, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok || !inScope(o, scope) {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *OrderRepo) List(_ context.Context, scope repository.Scope, filter repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Order
	for i := len(r.s.orderSeq) - 1; i >= 0; i-- {
		o := r.s.orders[r.s.orderSeq[i]]
		if !inScope(o, scope) {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.PaymentStatus != nil && o.PaymentStatus != *filter.PaymentStatus {
			continue
		}
		list = append(list, cloneOrder(o))
	}
	// más recientes primero; a igual timestamp se conserva el orden inverso de inserción
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if filter.Offset > 0 {
		if filter.Offset >= len(list) {
			return nil, nil
		}
		list = list[filter.Offset:]
	}
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
	}
	return list, nil
}

func inScope(o *entity.Order, scope repository.Scope) bool {
	if o.TenantID != scope.TenantID {
		return false
	}
	return scope.WaiterID == "" || o.WaiterID == scope.WaiterID
}

func (s *Store) insertOrderLocked(o *entity.Order) {
	s.orders[o.ID] = o
	s.orderCodes[o.OrderCode] = o.ID
	s.orderSeq = append(s.orderSeq, o.ID)
}
