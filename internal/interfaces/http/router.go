package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comandas-api/internal/application/auth"
	"github.com/jhoicas/comandas-api/internal/application/items"
	"github.com/jhoicas/comandas-api/internal/application/orders"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ItemUC      *items.ItemUseCase
	CreateOrder *orders.CreateOrderUseCase
	ListOrders  *orders.ListOrdersUseCase
	JWTSecret   string
	Log         *logger.Logger // nil descarta el log de errores
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	ownerOnly := RequireRole(entity.RoleOwner)
	staff := RequireRole(entity.RoleOwner, entity.RoleManager, entity.RoleWaiter)

	// Users: el owner da de alta a su personal
	userHandler := NewUserHandler(deps.AuthUC, deps.Log)
	protected.Post("/users", ownerOnly, userHandler.CreateStaff)

	// Items
	itemHandler := NewItemHandler(deps.ItemUC, deps.Log)
	protected.Get("/items", staff, itemHandler.List)
	protected.Post("/items", ownerOnly, itemHandler.Create)
	protected.Patch("/items/:id", ownerOnly, itemHandler.Update)
	protected.Post("/items/:id/restock", ownerOnly, itemHandler.Restock)

	// Orders
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.ListOrders, deps.Log)
	protected.Post("/orders", staff, orderHandler.Create)
	protected.Get("/orders", staff, orderHandler.List)
	protected.Get("/orders/:id", staff, orderHandler.GetByID)
}
