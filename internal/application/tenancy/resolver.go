// Package tenancy resuelve el tenant (owner) al que aplica una operación y construye
// los filtros de lectura según el rol del caller.
package tenancy

import (
	"context"
	"fmt"

	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
)

// Caller identidad ya autenticada que invoca el motor.
type Caller struct {
	ID         string
	Roles      entity.RoleSet
	SuperiorID string
}

// CallerFromUser construye el Caller a partir del usuario cargado por la capa de auth.
func CallerFromUser(u *entity.User) Caller {
	return Caller{ID: u.ID, Roles: u.Roles, SuperiorID: u.SuperiorID}
}

// Resolver resuelve el tenant de un caller. No cachea: el superior se valida en cada llamada
// porque el vínculo puede editarse fuera de este flujo.
type Resolver struct {
	users repository.UserRepository
}

// NewResolver construye el resolver.
func NewResolver(users repository.UserRepository) *Resolver {
	return &Resolver{users: users}
}

// ResolveTenant devuelve el id del owner cuyo inventario aplica al caller.
func (r *Resolver) ResolveTenant(ctx context.Context, caller Caller) (string, error) {
	if caller.Roles.IsOwner() {
		return caller.ID, nil
	}
	if caller.SuperiorID == "" {
		return "", domain.ErrNoSuperiorAssigned
	}
	superior, err := r.users.GetByID(ctx, caller.SuperiorID)
	if err != nil {
		return "", fmt.Errorf("cargar superior: %w", err)
	}
	if superior == nil || !superior.Roles.IsOwner() {
		return "", domain.ErrInvalidSuperior
	}
	return superior.ID, nil
}
