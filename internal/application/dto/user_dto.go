package dto

import "time"

// RegisterOwnerRequest entrada para registrar un owner (tenant).
type RegisterOwnerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Phone    string `json:"phone"`
}

// RegisterStaffRequest entrada para que un owner registre personal (manager, waiter).
// El superior siempre es el owner que hace la petición.
type RegisterStaffRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Name     string   `json:"name" validate:"required,min=1,max=200"`
	Phone    string   `json:"phone"`
	Roles    []string `json:"roles" validate:"required,dive,oneof=manager waiter"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Roles      []string  `json:"roles"`
	SuperiorID *string   `json:"superior_id"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
