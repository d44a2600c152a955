package orders_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comandas-api/internal/application/dto"
	"github.com/jhoicas/comandas-api/internal/application/orders"
	"github.com/jhoicas/comandas-api/internal/application/tenancy"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/ordercode"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
	"github.com/jhoicas/comandas-api/internal/infrastructure/memory"
	"github.com/jhoicas/comandas-api/pkg/logger"
)

// fixture tenant con owner O, manager M y mesero W sobre el store en memoria.
type fixture struct {
	store    *memory.Store
	users    *memory.UserRepo
	items    *memory.ItemRepo
	orders   *memory.OrderRepo
	resolver *tenancy.Resolver

	owner, manager, waiter tenancy.Caller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	f := &fixture{
		store:  s,
		users:  memory.NewUserRepository(s),
		items:  memory.NewItemRepository(s),
		orders: memory.NewOrderRepository(s),
	}
	f.resolver = tenancy.NewResolver(f.users)
	f.owner = f.addUser(t, "owner-1", entity.NewRoleSet(entity.RoleOwner), "")
	f.manager = f.addUser(t, "manager-1", entity.NewRoleSet(entity.RoleManager), "owner-1")
	f.waiter = f.addUser(t, "waiter-1", entity.NewRoleSet(entity.RoleWaiter), "owner-1")
	return f
}

func (f *fixture) addUser(t *testing.T, id string, roles entity.RoleSet, superiorID string) tenancy.Caller {
	t.Helper()
	u := &entity.User{ID: id, Name: id, Email: id + "@bar.test", Roles: roles, SuperiorID: superiorID, CreatedAt: time.Now()}
	require.NoError(t, f.users.Create(context.Background(), u))
	return tenancy.CallerFromUser(u)
}

func (f *fixture) addItem(t *testing.T, tenantID, id string, price string, qty int, available bool) {
	t.Helper()
	it := &entity.Item{
		ID:                id,
		TenantID:          tenantID,
		Name:              "item " + id,
		Price:             decimal.RequireFromString(price),
		QuantityAvailable: qty,
		Category:          entity.CategoryDrink,
		Available:         available,
		CreatedAt:         time.Now(),
	}
	require.NoError(t, f.items.Create(context.Background(), it))
}

func (f *fixture) stock(t *testing.T, tenantID, id string) int {
	t.Helper()
	it, err := f.items.GetForTenant(context.Background(), tenantID, id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.QuantityAvailable
}

func (f *fixture) useCase(opts ...func(*ucDeps)) *orders.CreateOrderUseCase {
	d := ucDeps{
		items: f.items,
		tx:    memory.NewTxRunner(f.store),
		codes: ordercode.New(),
		log:   logger.Nop(),
		cfg:   orders.DefaultConfig(),
	}
	for _, o := range opts {
		o(&d)
	}
	return orders.NewCreateOrderUseCase(f.resolver, d.items, d.tx, d.codes, d.events, d.log, d.cfg)
}

type ucDeps struct {
	items  repository.ItemRepository
	tx     orders.TxRunner
	codes  orders.CodeGenerator
	events orders.EventPublisher
	log    *logger.Logger
	cfg    orders.Config
}

func orderRequest(lines ...dto.OrderLineRequest) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Client: dto.ClientRequest{Name: "Ana", Email: "ana@cliente.test", Phone: "3001234567"},
		Items:  lines,
	}
}

func line(itemID string, qty int) dto.OrderLineRequest {
	return dto.OrderLineRequest{ItemID: itemID, Quantity: qty}
}

// sequenceCodes devuelve los códigos en orden y repite el último.
type sequenceCodes struct {
	mu    sync.Mutex
	codes []string
	calls int
}

func (s *sequenceCodes) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.codes) {
		i = len(s.codes) - 1
	}
	s.calls++
	return s.codes[i], nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []orders.OrderCreatedEvent
	err    error
}

func (p *recordingPublisher) PublishOrderCreated(_ context.Context, evt orders.OrderCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}
