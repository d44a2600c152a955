package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_code, client_name, client_email, client_phone, waiter_id, tenant_id, status, payment_status, notes, created_at`

// Create persiste la cabecera de la orden. order_code duplicado -> domain.ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.OrderCode, order.Client.Name, order.Client.Email, order.Client.Phone,
		order.WaiterID, order.TenantID, string(order.Status), string(order.PaymentStatus),
		order.Notes, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateLine persiste una línea con el snapshot de nombre y precio.
func (r *OrderRepo) CreateLine(ctx context.Context, orderID string, lineNo int, line *entity.LineItem) error {
	query := `
		INSERT INTO order_items (order_id, line_no, item_id, name, price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, orderID, lineNo, line.ItemID, line.Name, line.Price, line.Quantity)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// GetByID obtiene una orden dentro del scope; fuera del scope devuelve (nil, nil).
func (r *OrderRepo) GetByID(ctx context.Context, scope repository.Scope, id string) (*entity.Order, error) {
	if !isUUID(id) {
		return nil, nil
	}
	where, args := scopeWhere(scope)
	args = append(args, id)
	where = append(where, "id = $"+strconv.Itoa(len(args)))
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + strings.Join(where, " AND ")
	o, err := scanOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List lista las órdenes del scope, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, scope repository.Scope, filter repository.OrderFilter) ([]*entity.Order, error) {
	where, args := scopeWhere(scope)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.PaymentStatus != nil {
		args = append(args, string(*filter.PaymentStatus))
		where = append(where, "payment_status = $"+strconv.Itoa(len(args)))
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if err := r.loadLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadLines carga las líneas de todas las órdenes en una sola consulta.
func (r *OrderRepo) loadLines(ctx context.Context, list []*entity.Order) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(list))
	ids := make([]string, 0, len(list))
	for _, o := range list {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT order_id, item_id, name, price, quantity
		FROM order_items WHERE order_id = ANY($1::uuid[]) ORDER BY order_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			orderID string
			line    entity.LineItem
		)
		if err := rows.Scan(&orderID, &line.ItemID, &line.Name, &line.Price, &line.Quantity); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		if o := byID[orderID]; o != nil {
			o.Items = append(o.Items, line)
		}
	}
	return rows.Err()
}

func scopeWhere(scope repository.Scope) ([]string, []any) {
	where := []string{"tenant_id = $1"}
	args := []any{scope.TenantID}
	if scope.WaiterID != "" {
		args = append(args, scope.WaiterID)
		where = append(where, "waiter_id = $"+strconv.Itoa(len(args)))
	}
	return where, args
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o             entity.Order
		status        string
		paymentStatus string
	)
	if err := row.Scan(&o.ID, &o.OrderCode, &o.Client.Name, &o.Client.Email, &o.Client.Phone,
		&o.WaiterID, &o.TenantID, &status, &paymentStatus, &o.Notes, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	o.PaymentStatus = entity.PaymentStatus(paymentStatus)
	return &o, nil
}

// mapUniqueViolation traduce la violación de unicidad del order_code a domain.ErrDuplicate.
func mapUniqueViolation(err error) error {
	return fmt.Errorf("%w (%s): %v", domain.ErrDuplicate, constraintName(err), err)
}
