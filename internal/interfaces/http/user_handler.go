package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comandas-api/internal/application/auth"
	"github.com/jhoicas/comandas-api/internal/application/dto"
	"github.com/jhoicas/comandas-api/pkg/logger"
)

// UserHandler alta de personal por parte del owner.
type UserHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *auth.AuthUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// CreateStaff godoc
// @Summary      Registrar personal (manager, waiter) del owner autenticado
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterStaffRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) CreateStaff(c *fiber.Ctx) error {
	caller, _ := GetCaller(c)
	var in dto.RegisterStaffRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" || len(in.Roles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password y roles son requeridos"})
	}
	user, err := h.uc.RegisterStaff(c.UserContext(), caller, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}
