package orders

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/comandas-api/internal/application/dto"
	"github.com/jhoicas/comandas-api/internal/application/tenancy"
	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
	"github.com/jhoicas/comandas-api/pkg/logger"
)

var tracer = otel.Tracer("github.com/jhoicas/comandas-api/internal/application/orders")

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// DefaultPublishTimeout tope para publicar order.created antes de responder.
const DefaultPublishTimeout = 2 * time.Second

// Config parámetros del pipeline de creación.
type Config struct {
	InitialStatus   entity.OrderStatus // pending o preparing
	MaxCodeAttempts int                // intentos ante colisión de order_code
	PublishTimeout  time.Duration      // tope de la publicación del evento
}

// DefaultConfig valores por defecto: las órdenes nacen en preparing, 5 intentos de código.
func DefaultConfig() Config {
	return Config{InitialStatus: entity.OrderStatusPreparing, MaxCodeAttempts: 5, PublishTimeout: DefaultPublishTimeout}
}

// CreateOrderResult orden persistida más los avisos de stock no fatales.
type CreateOrderResult struct {
	Order    *entity.Order
	Warnings []domain.StockConsistencyWarning
}

// CreateOrderUseCase pipeline explícito: resolver tenant → validar → snapshot → persistir → descontar stock.
//
// La validación y el decremento NO son atómicos entre sí: entre ambos, otras órdenes pueden pasar la
// validación contra el mismo stock. ConditionalDecrement impide stock negativo, pero una orden ya
// persistida puede quedar sin descontar; se registra como StockConsistencyWarning y no se revierte.
// Cerrar esa ventana (validar y descontar en una sola operación por tenant) cambiaría el comportamiento
// observable bajo carga: hoy una orden validada nunca se rechaza después de persistida.
type CreateOrderUseCase struct {
	resolver  *tenancy.Resolver
	validator *Validator
	items     repository.ItemRepository
	txRunner  TxRunner
	codes     CodeGenerator
	events    EventPublisher
	log       *logger.Logger
	cfg       Config
	now       func() time.Time
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	resolver *tenancy.Resolver,
	items repository.ItemRepository,
	txRunner TxRunner,
	codes CodeGenerator,
	events EventPublisher,
	log *logger.Logger,
	cfg Config,
) *CreateOrderUseCase {
	if events == nil {
		events = NoopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.InitialStatus == "" {
		cfg.InitialStatus = entity.OrderStatusPreparing
	}
	if cfg.MaxCodeAttempts <= 0 {
		cfg.MaxCodeAttempts = 1
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = DefaultPublishTimeout
	}
	return &CreateOrderUseCase{
		resolver:  resolver,
		validator: NewValidator(items),
		items:     items,
		txRunner:  txRunner,
		codes:     codes,
		events:    events,
		log:       log,
		cfg:       cfg,
		now:       time.Now,
	}
}

// CreateOrder crea la orden del caller. Todo lo anterior a la persistencia no tiene efectos si falla;
// lo posterior (decremento, evento) nunca deshace una orden ya persistida.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, caller tenancy.Caller, in dto.CreateOrderRequest) (*CreateOrderResult, error) {
	ctx, span := tracer.Start(ctx, "orders.CreateOrder", trace.WithAttributes(attribute.String("caller.id", caller.ID)))
	defer span.End()

	result, err := uc.createOrder(ctx, caller, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.String("order.code", result.Order.OrderCode),
		attribute.Int("order.stock_warnings", len(result.Warnings)),
	)
	return result, nil
}

func (uc *CreateOrderUseCase) createOrder(ctx context.Context, caller tenancy.Caller, in dto.CreateOrderRequest) (*CreateOrderResult, error) {
	// 1) Tenant
	tenantID, err := uc.resolver.ResolveTenant(ctx, caller)
	if err != nil {
		return nil, err
	}

	// 2) Contenido mínimo
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	client, err := normalizeClient(in.Client)
	if err != nil {
		return nil, err
	}

	// 3) Stock (fail-fast)
	stageCtx, span := tracer.Start(ctx, "orders.Validate")
	loaded, err := uc.validator.Validate(stageCtx, tenantID, in.Items)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return nil, err
	}
	span.End()

	// 4) Snapshot de nombre y precio al momento de la orden
	order := &entity.Order{
		ID:            uuid.New().String(),
		Client:        client,
		Items:         make([]entity.LineItem, len(in.Items)),
		WaiterID:      caller.ID,
		TenantID:      tenantID,
		Status:        uc.cfg.InitialStatus,
		PaymentStatus: entity.PaymentUnpaid,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     uc.now(),
	}
	for i, line := range in.Items {
		order.Items[i] = entity.LineItem{
			ItemID:   loaded[i].ID,
			Name:     loaded[i].Name,
			Price:    loaded[i].Price,
			Quantity: line.Quantity,
		}
	}

	// 5) Persistencia con reintento ante colisión de order_code
	if err := uc.persist(ctx, order); err != nil {
		return nil, err
	}

	// A partir de aquí la orden está comprometida con el cliente: no se cancela con el request.
	ctx = context.WithoutCancel(ctx)

	// 6) Decremento condicional por línea
	warnings := uc.decrement(ctx, order)

	// 7) Evento (best effort)
	uc.publish(ctx, order, warnings)

	return &CreateOrderResult{Order: order, Warnings: warnings}, nil
}

func normalizeClient(in dto.ClientRequest) (entity.Client, error) {
	c := entity.Client{
		Name:  strings.TrimSpace(in.Name),
		Email: entity.NormalizeEmail(in.Email),
		Phone: strings.TrimSpace(in.Phone),
	}
	if c.Name == "" || c.Email == "" || c.Phone == "" {
		return entity.Client{}, domain.NewClientError("nombre, email y teléfono del cliente son requeridos")
	}
	if !emailPattern.MatchString(c.Email) {
		return entity.Client{}, domain.NewClientError("email del cliente inválido")
	}
	return c, nil
}

func (uc *CreateOrderUseCase) persist(ctx context.Context, order *entity.Order) error {
	ctx, span := tracer.Start(ctx, "orders.Persist")
	defer span.End()

	for attempt := 1; attempt <= uc.cfg.MaxCodeAttempts; attempt++ {
		code, err := uc.codes.Generate()
		if err != nil {
			return fmt.Errorf("generar order_code: %w", err)
		}
		order.OrderCode = code

		err = uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository) error {
			if err := orderRepo.Create(ctx, order); err != nil {
				return err
			}
			for i := range order.Items {
				if err := orderRepo.CreateLine(ctx, order.ID, i, &order.Items[i]); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			span.SetAttributes(attribute.Int("order.code_attempts", attempt))
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return fmt.Errorf("persistir orden: %w", err)
		}
		uc.log.Warn().
			Str("order_code", code).
			Int("attempt", attempt).
			Msg("colisión de order_code, se genera uno nuevo")
	}
	return domain.ErrOrderCodeExhausted
}

func (uc *CreateOrderUseCase) decrement(ctx context.Context, order *entity.Order) []domain.StockConsistencyWarning {
	ctx, span := tracer.Start(ctx, "orders.Decrement")
	defer span.End()

	var warnings []domain.StockConsistencyWarning
	for i, line := range order.Items {
		applied, err := uc.items.ConditionalDecrement(ctx, line.ItemID, line.Quantity)
		if applied && err == nil {
			continue
		}
		w := domain.StockConsistencyWarning{LineIndex: i, ItemID: line.ItemID, Requested: line.Quantity, Err: err}
		warnings = append(warnings, w)
		uc.log.Warn().
			Err(err).
			Str("order_id", order.ID).
			Str("order_code", order.OrderCode).
			Str("tenant_id", order.TenantID).
			Str("item_id", line.ItemID).
			Int("line_index", i).
			Int("requested", line.Quantity).
			Msg("stock inconsistente: orden persistida sin descontar inventario")
	}
	span.SetAttributes(attribute.Int("order.stock_warnings", len(warnings)))
	return warnings
}

func (uc *CreateOrderUseCase) publish(ctx context.Context, order *entity.Order, warnings []domain.StockConsistencyWarning) {
	evt := OrderCreatedEvent{
		OrderID:   order.ID,
		OrderCode: order.OrderCode,
		TenantID:  order.TenantID,
		WaiterID:  order.WaiterID,
		Status:    string(order.Status),
		Total:     order.Total(),
		ItemCount: len(order.Items),
		CreatedAt: order.CreatedAt,
	}
	for _, w := range warnings {
		evt.StockShort = append(evt.StockShort, w.ItemID)
	}
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.PublishTimeout)
	defer cancel()
	if err := uc.events.PublishOrderCreated(ctx, evt); err != nil {
		uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("no se pudo publicar order.created")
	}
}
