package tenancy

import (
	"context"

	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
)

// OrderScope construye el filtro de lectura de órdenes:
//   - owner: todo su tenant.
//   - manager: todo el tenant de su superior.
//   - waiter: solo las órdenes que creó, dentro del tenant de su superior.
func (r *Resolver) OrderScope(ctx context.Context, caller Caller) (repository.Scope, error) {
	if caller.Roles.IsOwner() {
		return repository.Scope{TenantID: caller.ID}, nil
	}
	if !caller.Roles.HasAny(entity.RoleManager, entity.RoleWaiter) {
		return repository.Scope{}, domain.ErrForbidden
	}
	tenantID, err := r.ResolveTenant(ctx, caller)
	if err != nil {
		return repository.Scope{}, err
	}
	scope := repository.Scope{TenantID: tenantID}
	if !caller.Roles.Has(entity.RoleManager) {
		scope.WaiterID = caller.ID
	}
	return scope, nil
}

// ItemScope filtro de lectura de items: solo el tenant resuelto.
func (r *Resolver) ItemScope(ctx context.Context, caller Caller) (repository.Scope, error) {
	if !caller.Roles.HasAny(entity.RoleOwner, entity.RoleManager, entity.RoleWaiter) {
		return repository.Scope{}, domain.ErrForbidden
	}
	tenantID, err := r.ResolveTenant(ctx, caller)
	if err != nil {
		return repository.Scope{}, err
	}
	return repository.Scope{TenantID: tenantID}, nil
}
