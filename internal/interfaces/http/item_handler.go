package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comandas-api/internal/application/dto"
	"github.com/jhoicas/comandas-api/internal/application/items"
	"github.com/jhoicas/comandas-api/pkg/logger"
)

// ItemHandler maneja el inventario de items del tenant.
type ItemHandler struct {
	uc  *items.ItemUseCase
	log *logger.Logger
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *items.ItemUseCase, log *logger.Logger) *ItemHandler {
	return &ItemHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar items del tenant
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        category   query  string  false  "Food | Drink | Dessert"
// @Param        available  query  bool    false  "Filtrar por disponibilidad"
// @Success      200  {object}  dto.ItemListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	caller, _ := GetCaller(c)
	q := dto.ListItemsQuery{Category: c.Query("category")}
	if raw := c.Query("available"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "available debe ser true o false"})
		}
		q.Available = &v
	}
	out, err := h.uc.List(c.UserContext(), caller, q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del item"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	caller, _ := GetCaller(c)
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), caller, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar item (no modifica stock)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del item"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [patch]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	caller, _ := GetCaller(c)
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), caller, c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Restock godoc
// @Summary      Reponer stock del item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del item"
// @Param        body  body  dto.RestockItemRequest  true  "Unidades a sumar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/restock [post]
func (h *ItemHandler) Restock(c *fiber.Ctx) error {
	caller, _ := GetCaller(c)
	var in dto.RestockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Restock(c.UserContext(), caller, c.Params("id"), in.Amount)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
