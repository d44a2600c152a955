package entity

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// User representa un usuario del sistema: owner (tenant) o personal subordinado (manager, waiter).
// SuperiorID es una referencia débil (solo id) al owner para quien trabaja; vacío si el usuario es owner.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca se expone
	Roles        RoleSet
	SuperiorID   string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var emailFolder = cases.Fold()

// NormalizeEmail normaliza el email para comparaciones sin distinguir mayúsculas.
func NormalizeEmail(email string) string {
	return emailFolder.String(strings.TrimSpace(email))
}

// Validate verifica las invariantes locales del usuario. La integridad referencial del superior
// (que exista y sea owner) la verifica quien escribe, porque requiere consultar el repositorio.
func (u *User) Validate() error {
	if u.Roles.IsEmpty() {
		return errors.New("el usuario requiere al menos un rol")
	}
	if u.Roles.IsOwner() && u.SuperiorID != "" {
		return errors.New("un owner no puede tener superior")
	}
	if !u.Roles.IsOwner() && u.SuperiorID == "" {
		return errors.New("el personal subordinado requiere un superior")
	}
	if u.SuperiorID != "" && u.SuperiorID == u.ID {
		return errors.New("un usuario no puede ser su propio superior")
	}
	return nil
}
