package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comandas-api/internal/application/dto"
	"github.com/jhoicas/comandas-api/internal/application/tenancy"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/pkg/jwt"
)

// Locals keys del usuario autenticado en Fiber.
const (
	LocalUserID = "user_id"
	LocalCaller = "caller"
)

// callerLoader recarga el usuario del token. Lo implementa *auth.AuthUseCase.
type callerLoader interface {
	LoadCaller(ctx context.Context, userID string) (tenancy.Caller, error)
}

// AuthMiddleware valida el Bearer Token JWT y carga el Caller vigente en c.Locals.
// Los roles y el superior se leen del repositorio en cada petición, no del token.
func AuthMiddleware(jwtSecret string, loader callerLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		caller, err := loader.LoadCaller(c.UserContext(), userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNKNOWN_USER", Message: "usuario del token no existe"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalCaller, caller)
		return c.Next()
	}
}

// RequireRole permite continuar si el caller tiene al menos uno de los roles indicados.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, ok := GetCaller(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no autenticado"})
		}
		if !caller.Roles.HasAny(allowed...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetCaller devuelve el Caller cargado por AuthMiddleware.
func GetCaller(c *fiber.Ctx) (tenancy.Caller, bool) {
	caller, ok := c.Locals(LocalCaller).(tenancy.Caller)
	return caller, ok
}
