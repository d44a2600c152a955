package tenancy_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comandas-api/internal/application/tenancy"
	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
	"github.com/jhoicas/comandas-api/internal/infrastructure/memory"
)

func setup(t *testing.T) (*tenancy.Resolver, *memory.UserRepo) {
	t.Helper()
	users := memory.NewUserRepository(memory.NewStore())
	for _, u := range []*entity.User{
		{ID: "o1", Email: "o1@bar.test", Roles: entity.NewRoleSet(entity.RoleOwner)},
		{ID: "m1", Email: "m1@bar.test", Roles: entity.NewRoleSet(entity.RoleManager), SuperiorID: "o1"},
	} {
		u.CreatedAt = time.Now()
		require.NoError(t, users.Create(context.Background(), u))
	}
	return tenancy.NewResolver(users), users
}

func caller(id string, superior string, roles ...entity.Role) tenancy.Caller {
	return tenancy.Caller{ID: id, Roles: entity.NewRoleSet(roles...), SuperiorID: superior}
}

func TestResolveTenant(t *testing.T) {
	r, _ := setup(t)
	ctx := context.Background()

	tenant, err := r.ResolveTenant(ctx, caller("o1", "", entity.RoleOwner))
	require.NoError(t, err)
	assert.Equal(t, "o1", tenant)

	tenant, err = r.ResolveTenant(ctx, caller("w1", "o1", entity.RoleWaiter))
	require.NoError(t, err)
	assert.Equal(t, "o1", tenant)

	_, err = r.ResolveTenant(ctx, caller("w2", "", entity.RoleWaiter))
	assert.ErrorIs(t, err, domain.ErrNoSuperiorAssigned)

	_, err = r.ResolveTenant(ctx, caller("w3", "ghost", entity.RoleWaiter))
	assert.ErrorIs(t, err, domain.ErrInvalidSuperior)

	_, err = r.ResolveTenant(ctx, caller("w4", "m1", entity.RoleWaiter))
	assert.ErrorIs(t, err, domain.ErrInvalidSuperior, "un superior que no es owner es inválido")
}

func TestResolveTenant_OwnerConSuperiorIgnoraElSuperior(t *testing.T) {
	r, _ := setup(t)
	tenant, err := r.ResolveTenant(context.Background(), caller("o2", "o1", entity.RoleOwner, entity.RoleWaiter))
	require.NoError(t, err)
	assert.Equal(t, "o2", tenant)
}

type failingUsers struct {
	repository.UserRepository
}

func (failingUsers) GetByID(context.Context, string) (*entity.User, error) {
	return nil, errors.New("db caída")
}

func TestResolveTenant_ErrorDeRepositorio(t *testing.T) {
	r := tenancy.NewResolver(failingUsers{})
	_, err := r.ResolveTenant(context.Background(), caller("w1", "o1", entity.RoleWaiter))
	require.Error(t, err)
	var scopeErr *domain.ScopeError
	assert.False(t, errors.As(err, &scopeErr), "un fallo de infraestructura no es error de scope")
}

func TestOrderScope(t *testing.T) {
	r, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		caller tenancy.Caller
		want   repository.Scope
	}{
		{"owner", caller("o1", "", entity.RoleOwner), repository.Scope{TenantID: "o1"}},
		{"manager", caller("m1", "o1", entity.RoleManager), repository.Scope{TenantID: "o1"}},
		{"waiter", caller("w1", "o1", entity.RoleWaiter), repository.Scope{TenantID: "o1", WaiterID: "w1"}},
		{"manager y waiter", caller("mw", "o1", entity.RoleManager, entity.RoleWaiter), repository.Scope{TenantID: "o1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.OrderScope(ctx, tt.caller)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := r.OrderScope(ctx, tenancy.Caller{ID: "x", SuperiorID: "o1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = r.OrderScope(ctx, caller("w9", "", entity.RoleWaiter))
	assert.ErrorIs(t, err, domain.ErrNoSuperiorAssigned)
}

func TestItemScope(t *testing.T) {
	r, _ := setup(t)
	ctx := context.Background()

	got, err := r.ItemScope(ctx, caller("w1", "o1", entity.RoleWaiter))
	require.NoError(t, err)
	assert.Equal(t, repository.Scope{TenantID: "o1"}, got)

	_, err = r.ItemScope(ctx, tenancy.Caller{ID: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
