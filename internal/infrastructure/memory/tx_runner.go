package memory

import (
	"context"

	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
)

// TxRunner emula una transacción: las órdenes escritas en fn se publican juntas solo si fn no falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunOrder ejecuta fn con un OrderRepository atado a la transacción.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	tx := &orderTx{lines: make(map[string][]entity.LineItem)}
	repo := &OrderRepo{s: r.s, tx: tx}
	if err := fn(repo); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range tx.orders {
		if _, ok := r.s.orderCodes[o.OrderCode]; ok {
			return domain.ErrDuplicate
		}
	}
	for _, o := range tx.orders {
		o.Items = append(o.Items, tx.lines[o.ID]...)
		r.s.insertOrderLocked(o)
	}
	return nil
}
