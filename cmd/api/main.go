package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/comandas-api/internal/application/auth"
	"github.com/jhoicas/comandas-api/internal/application/items"
	"github.com/jhoicas/comandas-api/internal/application/orders"
	"github.com/jhoicas/comandas-api/internal/application/tenancy"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/ordercode"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
	"github.com/jhoicas/comandas-api/internal/infrastructure/memory"
	"github.com/jhoicas/comandas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/comandas-api/internal/infrastructure/rabbitmq"
	httpRouter "github.com/jhoicas/comandas-api/internal/interfaces/http"
	"github.com/jhoicas/comandas-api/pkg/config"
	"github.com/jhoicas/comandas-api/pkg/logger"
	"github.com/jhoicas/comandas-api/pkg/telemetry"
)

// repos adaptadores de persistencia según STORAGE_DRIVER.
type repos struct {
	users    repository.UserRepository
	items    repository.ItemRepository
	orders   repository.OrderRepository
	txRunner orders.TxRunner
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	r, err := openRepos(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a almacenamiento")
	}
	defer r.close()

	// Eventos: sin AMQP_URL las órdenes se crean igual, solo no se publican.
	var events orders.EventPublisher = orders.NoopPublisher{}
	if cfg.AMQP.URL != "" {
		conn, err := rabbitmq.Connect(cfg.AMQP.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer conn.Close()
		events = rabbitmq.NewPublisher(conn, cfg.AMQP.Exchange)
	}

	resolver := tenancy.NewResolver(r.users)
	authUC := auth.NewAuthUseCase(r.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	itemUC := items.NewItemUseCase(resolver, r.items)
	createOrderUC := orders.NewCreateOrderUseCase(resolver, r.items, r.txRunner, ordercode.New(), events, log, orders.Config{
		InitialStatus:   entity.OrderStatus(cfg.Orders.InitialStatus),
		MaxCodeAttempts: cfg.Orders.CodeMaxAttempts,
		PublishTimeout:  time.Duration(cfg.Orders.PublishTimeoutMS) * time.Millisecond,
	})
	listOrdersUC := orders.NewListOrdersUseCase(resolver, r.orders)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Comandas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ItemUC:      itemUC,
		CreateOrder: createOrderUC,
		ListOrders:  listOrdersUC,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("aplicación detenida")
}

func openRepos(ctx context.Context, cfg *config.Config) (*repos, error) {
	if cfg.Storage.Driver == "memory" {
		s := memory.NewStore()
		return &repos{
			users:    memory.NewUserRepository(s),
			items:    memory.NewItemRepository(s),
			orders:   memory.NewOrderRepository(s),
			txRunner: memory.NewTxRunner(s),
			close:    func() {},
		}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &repos{
		users:    postgres.NewUserRepository(pool),
		items:    postgres.NewItemRepository(pool),
		orders:   postgres.NewOrderRepository(pool),
		txRunner: postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}
