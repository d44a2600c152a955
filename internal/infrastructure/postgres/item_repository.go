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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, tenant_id, name, description, price, quantity_available, category, available, created_at, updated_at`

// Create persiste un nuevo item.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.TenantID, item.Name, item.Description, item.Price, item.QuantityAvailable,
		string(item.Category), item.Available, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetForTenant obtiene un item solo si pertenece al tenant; si no, (nil, nil).
func (r *ItemRepo) GetForTenant(ctx context.Context, tenantID, itemID string) (*entity.Item, error) {
	if !isUUID(itemID) || !isUUID(tenantID) {
		return nil, nil
	}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 AND tenant_id = $2`
	it, err := scanItem(r.q.QueryRow(ctx, query, itemID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// ListByTenant lista los items del tenant, más recientes primero.
func (r *ItemRepo) ListByTenant(ctx context.Context, tenantID string, filter repository.ItemFilter) ([]*entity.Item, error) {
	where := []string{"tenant_id = $1"}
	args := []any{tenantID}
	if filter.Category != nil {
		args = append(args, string(*filter.Category))
		where = append(where, "category = $"+strconv.Itoa(len(args)))
	}
	if filter.Available != nil {
		args = append(args, *filter.Available)
		where = append(where, "available = $"+strconv.Itoa(len(args)))
	}
	query := `SELECT ` + itemColumns + ` FROM items WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update actualiza los datos descriptivos del item. quantity_available no se toca.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET name = $3, description = $4, price = $5, category = $6, available = $7, updated_at = $8
		WHERE id = $1 AND tenant_id = $2`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.TenantID, item.Name, item.Description, item.Price, string(item.Category), item.Available, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restock suma amount al stock en una sola sentencia.
func (r *ItemRepo) Restock(ctx context.Context, tenantID, itemID string, amount int) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	if !isUUID(itemID) || !isUUID(tenantID) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE items SET quantity_available = quantity_available + $3, updated_at = now() WHERE id = $1 AND tenant_id = $2`,
		itemID, tenantID, amount,
	)
	if err != nil {
		return fmt.Errorf("restock item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ConditionalDecrement resta amount solo si hay stock suficiente. La condición y la resta van en el
// mismo UPDATE, así que es atómico frente a otros decrementos del mismo item.
func (r *ItemRepo) ConditionalDecrement(ctx context.Context, itemID string, amount int) (bool, error) {
	if amount <= 0 {
		return false, domain.ErrInvalidInput
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE items SET quantity_available = quantity_available - $2, updated_at = now()
		 WHERE id = $1 AND quantity_available >= $2`,
		itemID, amount,
	)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var (
		it       entity.Item
		category string
	)
	if err := row.Scan(&it.ID, &it.TenantID, &it.Name, &it.Description, &it.Price, &it.QuantityAvailable,
		&category, &it.Available, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	it.Category = entity.Category(category)
	return &it, nil
}
