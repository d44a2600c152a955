package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comandas-api/internal/application/dto"
	"github.com/jhoicas/comandas-api/internal/application/orders"
	"github.com/jhoicas/comandas-api/pkg/logger"
)

// OrderHandler creación y consulta de órdenes.
type OrderHandler struct {
	create *orders.CreateOrderUseCase
	list   *orders.ListOrdersUseCase
	log    *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(create *orders.CreateOrderUseCase, list *orders.ListOrdersUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{create: create, list: list, log: log}
}

// Create godoc
// @Summary      Crear orden
// @Description  Valida stock, congela nombre y precio de cada línea, persiste y descuenta inventario.
// @Description  Si un descuento no se aplica, la orden se crea igual y la respuesta incluye stock_warnings.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Cliente e items"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.LineErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	caller, _ := GetCaller(c)
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	result, err := h.create.CreateOrder(c.UserContext(), caller, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(orders.ToOrderResponse(result.Order, result.Warnings))
}

// List godoc
// @Summary      Listar órdenes visibles para el usuario
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status          query  string  false  "pending | preparing | served | cancelled"
// @Param        payment_status  query  string  false  "unpaid | paid | refunded"
// @Param        limit           query  int     false  "Límite"  default(50)
// @Param        offset          query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	caller, _ := GetCaller(c)
	q := dto.ListOrdersQuery{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		Limit:         c.QueryInt("limit", 0),
		Offset:        c.QueryInt("offset", 0),
	}
	list, filter, err := h.list.List(c.UserContext(), caller, q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.OrderListResponse{
		Orders: make([]dto.OrderResponse, 0, len(list)),
		Page:   dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}
	for _, o := range list {
		out.Orders = append(out.Orders, orders.ToOrderResponse(o, nil))
	}
	out.Count = len(out.Orders)
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	caller, _ := GetCaller(c)
	order, err := h.list.Get(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(orders.ToOrderResponse(order, nil))
}
