package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
	"github.com/jhoicas/comandas-api/internal/infrastructure/memory"
)

func newItem(id, tenant string, qty int) *entity.Item {
	return &entity.Item{
		ID: id, TenantID: tenant, Name: id, Price: decimal.NewFromInt(3),
		QuantityAvailable: qty, Category: entity.CategoryFood, Available: true, CreatedAt: time.Now(),
	}
}

func TestItemRepo_ConditionalDecrement(t *testing.T) {
	repo := memory.NewItemRepository(memory.NewStore())
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newItem("a", "t1", 3)))

	ok, err := repo.ConditionalDecrement(ctx, "a", 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ConditionalDecrement(ctx, "a", 2)
	require.NoError(t, err)
	assert.False(t, ok, "no alcanza: no se aplica")

	_, err = repo.ConditionalDecrement(ctx, "a", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ok, err = repo.ConditionalDecrement(ctx, "missing", 1)
	require.NoError(t, err)
	assert.False(t, ok)

	it, err := repo.GetForTenant(ctx, "t1", "a")
	require.NoError(t, err)
	assert.Equal(t, 1, it.QuantityAvailable)
}

func TestItemRepo_DecrementoConcurrente(t *testing.T) {
	repo := memory.NewItemRepository(memory.NewStore())
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newItem("a", "t1", 25)))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.ConditionalDecrement(ctx, "a", 1)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 25, applied)
	it, err := repo.GetForTenant(ctx, "t1", "a")
	require.NoError(t, err)
	assert.Equal(t, 0, it.QuantityAvailable)
}

func TestItemRepo_GetForTenantAislado(t *testing.T) {
	repo := memory.NewItemRepository(memory.NewStore())
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newItem("a", "t1", 1)))

	it, err := repo.GetForTenant(ctx, "t2", "a")
	require.NoError(t, err)
	assert.Nil(t, it)

	// la copia devuelta no comparte estado con el store
	it, err = repo.GetForTenant(ctx, "t1", "a")
	require.NoError(t, err)
	it.QuantityAvailable = 99
	again, _ := repo.GetForTenant(ctx, "t1", "a")
	assert.Equal(t, 1, again.QuantityAvailable)
}

func TestUserRepo_EmailUnicoSinMayusculas(t *testing.T) {
	repo := memory.NewUserRepository(memory.NewStore())
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "Ana@Bar.Test", Roles: entity.NewRoleSet(entity.RoleOwner)}))

	err := repo.Create(ctx, &entity.User{ID: "u2", Email: "ana@bar.test", Roles: entity.NewRoleSet(entity.RoleOwner)})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := repo.GetByEmail(ctx, "ANA@bar.test")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	u, err = repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func newOrder(id, code, tenant, waiter string, at time.Time) *entity.Order {
	return &entity.Order{
		ID: id, OrderCode: code, TenantID: tenant, WaiterID: waiter,
		Status: entity.OrderStatusPreparing, PaymentStatus: entity.PaymentUnpaid, CreatedAt: at,
	}
}

func TestTxRunner_ConfirmaCabeceraYLineas(t *testing.T) {
	s := memory.NewStore()
	tx := memory.NewTxRunner(s)
	orders := memory.NewOrderRepository(s)
	ctx := context.Background()

	o := newOrder("o1", "CODE0001", "t1", "w1", time.Now())
	err := tx.RunOrder(ctx, func(r repository.OrderRepository) error {
		require.NoError(t, r.Create(ctx, o))
		return r.CreateLine(ctx, o.ID, 0, &entity.LineItem{ItemID: "a", Name: "A", Price: decimal.NewFromInt(2), Quantity: 3})
	})
	require.NoError(t, err)

	got, err := orders.GetByID(ctx, repository.Scope{TenantID: "t1"}, "o1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)
}

func TestTxRunner_RollbackSiFalla(t *testing.T) {
	s := memory.NewStore()
	tx := memory.NewTxRunner(s)
	orders := memory.NewOrderRepository(s)
	ctx := context.Background()
	boom := errors.New("falla en la línea")

	err := tx.RunOrder(ctx, func(r repository.OrderRepository) error {
		require.NoError(t, r.Create(ctx, newOrder("o1", "CODE0001", "t1", "w1", time.Now())))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := orders.GetByID(ctx, repository.Scope{TenantID: "t1"}, "o1")
	require.NoError(t, err)
	assert.Nil(t, got, "nada queda visible tras el rollback")

	// el código no quedó reservado
	err = tx.RunOrder(ctx, func(r repository.OrderRepository) error {
		return r.Create(ctx, newOrder("o2", "CODE0001", "t1", "w1", time.Now()))
	})
	assert.NoError(t, err)
}

func TestTxRunner_CodigoDuplicado(t *testing.T) {
	s := memory.NewStore()
	tx := memory.NewTxRunner(s)
	ctx := context.Background()

	require.NoError(t, tx.RunOrder(ctx, func(r repository.OrderRepository) error {
		return r.Create(ctx, newOrder("o1", "CODE0001", "t1", "w1", time.Now()))
	}))
	err := tx.RunOrder(ctx, func(r repository.OrderRepository) error {
		return r.Create(ctx, newOrder("o2", "CODE0001", "t2", "w2", time.Now()))
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestOrderRepo_ListScopeYPaginacion(t *testing.T) {
	s := memory.NewStore()
	repo := memory.NewOrderRepository(s)
	ctx := context.Background()
	base := time.Now()
	require.NoError(t, repo.Create(ctx, newOrder("o1", "C1", "t1", "w1", base)))
	require.NoError(t, repo.Create(ctx, newOrder("o2", "C2", "t1", "w2", base.Add(time.Second))))
	require.NoError(t, repo.Create(ctx, newOrder("o3", "C3", "t1", "w1", base.Add(2*time.Second))))
	require.NoError(t, repo.Create(ctx, newOrder("o4", "C4", "t2", "w9", base.Add(3*time.Second))))

	list, err := repo.List(ctx, repository.Scope{TenantID: "t1"}, repository.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "o3", list[0].ID)
	assert.Equal(t, "o1", list[2].ID)

	list, err = repo.List(ctx, repository.Scope{TenantID: "t1", WaiterID: "w1"}, repository.OrderFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "o1", list[0].ID)

	got, err := repo.GetByID(ctx, repository.Scope{TenantID: "t1", WaiterID: "w2"}, "o1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
