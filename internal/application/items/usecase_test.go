package items_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comandas-api/internal/application/dto"
	"github.com/jhoicas/comandas-api/internal/application/items"
	"github.com/jhoicas/comandas-api/internal/application/tenancy"
	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/infrastructure/memory"
)

type env struct {
	uc     *items.ItemUseCase
	owner  tenancy.Caller
	waiter tenancy.Caller
	other  tenancy.Caller
}

func newEnv(t *testing.T) env {
	t.Helper()
	s := memory.NewStore()
	users := memory.NewUserRepository(s)
	add := func(id string, roles entity.RoleSet, superior string) tenancy.Caller {
		u := &entity.User{ID: id, Email: id + "@bar.test", Roles: roles, SuperiorID: superior, CreatedAt: time.Now()}
		require.NoError(t, users.Create(context.Background(), u))
		return tenancy.CallerFromUser(u)
	}
	e := env{
		owner: add("o1", entity.NewRoleSet(entity.RoleOwner), ""),
		other: add("o2", entity.NewRoleSet(entity.RoleOwner), ""),
	}
	e.waiter = add("w1", entity.NewRoleSet(entity.RoleWaiter), "o1")
	e.uc = items.NewItemUseCase(tenancy.NewResolver(users), memory.NewItemRepository(s))
	return e
}

func createReq(name, category string, qty int) dto.CreateItemRequest {
	return dto.CreateItemRequest{Name: name, Price: decimal.RequireFromString("4.50"), QuantityAvailable: qty, Category: category}
}

func TestItemUseCase_CreateYList(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	beer, err := e.uc.Create(ctx, e.owner, createReq("Cerveza", "Drink", 10))
	require.NoError(t, err)
	assert.Equal(t, "o1", beer.TenantID)
	assert.True(t, beer.Available, "disponible por defecto")

	no := false
	_, err = e.uc.Create(ctx, e.owner, dto.CreateItemRequest{Name: "Flan", Category: "Dessert", Available: &no})
	require.NoError(t, err)

	list, err := e.uc.List(ctx, e.waiter, dto.ListItemsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Count)

	yes := true
	list, err = e.uc.List(ctx, e.waiter, dto.ListItemsQuery{Available: &yes})
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Cerveza", list.Items[0].Name)

	list, err = e.uc.List(ctx, e.owner, dto.ListItemsQuery{Category: "Dessert"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)

	_, err = e.uc.List(ctx, e.owner, dto.ListItemsQuery{Category: "Snack"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err = e.uc.List(ctx, e.other, dto.ListItemsQuery{})
	require.NoError(t, err)
	assert.Zero(t, list.Count, "otro tenant no ve los items")
}

func TestItemUseCase_SoloOwnerModifica(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.uc.Create(ctx, e.waiter, createReq("Cerveza", "Drink", 1))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	beer, err := e.uc.Create(ctx, e.owner, createReq("Cerveza", "Drink", 1))
	require.NoError(t, err)

	_, err = e.uc.Restock(ctx, e.waiter, beer.ID, 5)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	name := "Otra"
	_, err = e.uc.Update(ctx, e.other, beer.ID, dto.UpdateItemRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound, "un owner no ve items de otro tenant")
}

func TestItemUseCase_CreateInvalido(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	cases := map[string]dto.CreateItemRequest{
		"sin nombre":      createReq("  ", "Food", 1),
		"categoria":       createReq("Pizza", "Pizza", 1),
		"stock negativo":  createReq("Pizza", "Food", -1),
		"precio negativo": {Name: "Pizza", Category: "Food", Price: decimal.NewFromInt(-1)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.uc.Create(ctx, e.owner, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestItemUseCase_UpdateNoTocaStock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	beer, err := e.uc.Create(ctx, e.owner, createReq("Cerveza", "Drink", 7))
	require.NoError(t, err)

	price := decimal.RequireFromString("6")
	off := false
	out, err := e.uc.Update(ctx, e.owner, beer.ID, dto.UpdateItemRequest{Price: &price, Available: &off})
	require.NoError(t, err)
	assert.True(t, price.Equal(out.Price))
	assert.False(t, out.Available)
	assert.Equal(t, 7, out.QuantityAvailable)
}

func TestItemUseCase_Restock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	beer, err := e.uc.Create(ctx, e.owner, createReq("Cerveza", "Drink", 2))
	require.NoError(t, err)

	out, err := e.uc.Restock(ctx, e.owner, beer.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, out.QuantityAvailable)

	_, err = e.uc.Restock(ctx, e.owner, beer.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.Restock(ctx, e.owner, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
