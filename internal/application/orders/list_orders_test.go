package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comandas-api/internal/application/dto"
	"github.com/jhoicas/comandas-api/internal/application/orders"
	"github.com/jhoicas/comandas-api/internal/application/tenancy"
	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
)

// seedOrders crea una orden del owner, dos del mesero y una del manager.
func seedOrders(t *testing.T, f *fixture) map[string]*entity.Order {
	t.Helper()
	f.addItem(t, f.owner.ID, "beer", "5", 100, true)
	uc := f.useCase()
	out := make(map[string]*entity.Order)
	for _, c := range []struct {
		key    string
		caller tenancy.Caller
	}{
		{"owner", f.owner},
		{"waiter-a", f.waiter},
		{"waiter-b", f.waiter},
		{"manager", f.manager},
	} {
		res, err := uc.CreateOrder(context.Background(), c.caller, orderRequest(line("beer", 1)))
		require.NoError(t, err)
		out[c.key] = res.Order
		time.Sleep(time.Millisecond)
	}
	return out
}

func TestListOrders_ScopePorRol(t *testing.T) {
	f := newFixture(t)
	seeded := seedOrders(t, f)
	uc := orders.NewListOrdersUseCase(f.resolver, f.orders)

	all, _, err := uc.List(context.Background(), f.owner, dto.ListOrdersQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, seeded["manager"].ID, all[0].ID, "más recientes primero")

	viaManager, _, err := uc.List(context.Background(), f.manager, dto.ListOrdersQuery{})
	require.NoError(t, err)
	assert.Len(t, viaManager, 4)

	mine, _, err := uc.List(context.Background(), f.waiter, dto.ListOrdersQuery{})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, o := range mine {
		assert.Equal(t, f.waiter.ID, o.WaiterID)
	}
}

func TestListOrders_ManagerYWaiterVeTodoElTenant(t *testing.T) {
	f := newFixture(t)
	seedOrders(t, f)
	both := f.addUser(t, "mw-1", entity.NewRoleSet(entity.RoleManager, entity.RoleWaiter), f.owner.ID)

	list, _, err := orders.NewListOrdersUseCase(f.resolver, f.orders).List(context.Background(), both, dto.ListOrdersQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

func TestListOrders_AislamientoEntreTenants(t *testing.T) {
	f := newFixture(t)
	seeded := seedOrders(t, f)
	other := f.addUser(t, "owner-2", entity.NewRoleSet(entity.RoleOwner), "")
	uc := orders.NewListOrdersUseCase(f.resolver, f.orders)

	list, _, err := uc.List(context.Background(), other, dto.ListOrdersQuery{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.Get(context.Background(), other, seeded["owner"].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrders_WaiterNoVeOrdenesAjenas(t *testing.T) {
	f := newFixture(t)
	seeded := seedOrders(t, f)
	uc := orders.NewListOrdersUseCase(f.resolver, f.orders)

	_, err := uc.Get(context.Background(), f.waiter, seeded["manager"].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.Get(context.Background(), f.waiter, seeded["waiter-a"].ID)
	require.NoError(t, err)
	assert.Equal(t, seeded["waiter-a"].OrderCode, got.OrderCode)
}

func TestListOrders_SinSuperior(t *testing.T) {
	f := newFixture(t)
	seedOrders(t, f)
	orphan := tenancy.Caller{ID: "waiter-x", Roles: entity.NewRoleSet(entity.RoleWaiter)}

	_, _, err := orders.NewListOrdersUseCase(f.resolver, f.orders).List(context.Background(), orphan, dto.ListOrdersQuery{})
	assert.ErrorIs(t, err, domain.ErrNoSuperiorAssigned)
}

func TestListOrders_Filtros(t *testing.T) {
	f := newFixture(t)
	seedOrders(t, f)
	uc := orders.NewListOrdersUseCase(f.resolver, f.orders)

	list, filter, err := uc.List(context.Background(), f.owner, dto.ListOrdersQuery{Status: "served"})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 50, filter.Limit)

	list, filter, err = uc.List(context.Background(), f.owner, dto.ListOrdersQuery{Status: "preparing", Limit: 1000, Offset: 3})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 200, filter.Limit)

	_, _, err = uc.List(context.Background(), f.owner, dto.ListOrdersQuery{PaymentStatus: "fiado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestToOrderResponse(t *testing.T) {
	f := newFixture(t)
	seeded := seedOrders(t, f)
	o := seeded["owner"]

	resp := orders.ToOrderResponse(o, []domain.StockConsistencyWarning{{LineIndex: 0, ItemID: "beer", Requested: 1}})
	assert.Equal(t, o.OrderCode, resp.OrderCode)
	assert.Equal(t, "preparing", resp.Status)
	assert.Equal(t, "unpaid", resp.PaymentStatus)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "5", resp.Total.String())
	require.Len(t, resp.StockWarnings, 1)
	assert.Equal(t, "beer", resp.StockWarnings[0].ItemID)
}
