package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comandas-api/internal/application/dto"
	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/pkg/logger"
)

// writeError traduce errores de dominio a respuestas HTTP. Los 5xx se registran en el log.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var scopeErr *domain.ScopeError
	if errors.As(err, &scopeErr) {
		code := "INVALID_SUPERIOR"
		if scopeErr.Reason == domain.ScopeNoSuperiorAssigned {
			code = "NO_SUPERIOR_ASSIGNED"
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: scopeErr.Error()})
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		switch valErr.Kind {
		case domain.ValidationEmptyOrder:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_ORDER", Message: valErr.Error()})
		case domain.ValidationInvalidClient:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CLIENT", Message: valErr.Error()})
		default:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.LineErrorResponse{
				Code:      "INVALID_LINE_ITEM",
				Message:   valErr.Message,
				LineIndex: valErr.LineIndex,
				ItemID:    valErr.ItemID,
				Reason:    string(valErr.Reason),
			})
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrOrderCodeExhausted):
		if log != nil {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("order_code agotado")
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "ORDER_CODE_EXHAUSTED", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	if log != nil {
		log.Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("user_id", GetUserID(c)).
			Msg("error interno atendiendo la petición")
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
