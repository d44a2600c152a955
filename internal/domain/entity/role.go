package entity

import (
	"fmt"
	"strings"
)

// Role rol cerrado de un usuario.
type Role uint8

const (
	RoleOwner Role = 1 << iota
	RoleManager
	RoleWaiter
)

var roleNames = []struct {
	role Role
	name string
}{
	{RoleOwner, "owner"},
	{RoleManager, "manager"},
	{RoleWaiter, "waiter"},
}

func (r Role) String() string {
	for _, rn := range roleNames {
		if rn.role == r {
			return rn.name
		}
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// ParseRole convierte el nombre de un rol. "admin" se acepta como alias histórico de owner.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "admin" {
		return RoleOwner, nil
	}
	for _, rn := range roleNames {
		if rn.name == s {
			return rn.role, nil
		}
	}
	return 0, fmt.Errorf("rol desconocido: %q", s)
}

// RoleSet conjunto de roles (bitset).
type RoleSet uint8

// NewRoleSet construye el conjunto con los roles dados.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= RoleSet(r)
	}
	return s
}

// ParseRoleSet convierte una lista de nombres en RoleSet.
func ParseRoleSet(names []string) (RoleSet, error) {
	var s RoleSet
	for _, n := range names {
		r, err := ParseRole(n)
		if err != nil {
			return 0, err
		}
		s |= RoleSet(r)
	}
	return s, nil
}

func (s RoleSet) Has(r Role) bool { return s&RoleSet(r) != 0 }
func (s RoleSet) IsEmpty() bool   { return s == 0 }
func (s RoleSet) IsOwner() bool   { return s.Has(RoleOwner) }

// HasAny true si contiene al menos uno de los roles.
func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Names devuelve los nombres en orden estable (owner, manager, waiter).
func (s RoleSet) Names() []string {
	names := make([]string, 0, len(roleNames))
	for _, rn := range roleNames {
		if s.Has(rn.role) {
			names = append(names, rn.name)
		}
	}
	return names
}
