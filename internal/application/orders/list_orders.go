package orders

import (
	"context"

	"github.com/jhoicas/comandas-api/internal/application/dto"
	"github.com/jhoicas/comandas-api/internal/application/tenancy"
	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ListOrdersUseCase lectura de órdenes acotada al scope del caller.
type ListOrdersUseCase struct {
	resolver *tenancy.Resolver
	orders   repository.OrderRepository
}

// NewListOrdersUseCase construye el caso de uso.
func NewListOrdersUseCase(resolver *tenancy.Resolver, orders repository.OrderRepository) *ListOrdersUseCase {
	return &ListOrdersUseCase{resolver: resolver, orders: orders}
}

// List devuelve las órdenes visibles para el caller, más recientes primero.
// Los filtros solo restringen dentro del scope; nunca lo amplían.
func (uc *ListOrdersUseCase) List(ctx context.Context, caller tenancy.Caller, q dto.ListOrdersQuery) ([]*entity.Order, repository.OrderFilter, error) {
	scope, err := uc.resolver.OrderScope(ctx, caller)
	if err != nil {
		return nil, repository.OrderFilter{}, err
	}
	filter, err := toOrderFilter(q)
	if err != nil {
		return nil, repository.OrderFilter{}, err
	}
	list, err := uc.orders.List(ctx, scope, filter)
	if err != nil {
		return nil, repository.OrderFilter{}, err
	}
	return list, filter, nil
}

// Get devuelve una orden del scope del caller; fuera del scope se reporta como no encontrada.
func (uc *ListOrdersUseCase) Get(ctx context.Context, caller tenancy.Caller, id string) (*entity.Order, error) {
	scope, err := uc.resolver.OrderScope(ctx, caller)
	if err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func toOrderFilter(q dto.ListOrdersQuery) (repository.OrderFilter, error) {
	f := repository.OrderFilter{Limit: q.Limit, Offset: q.Offset}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if q.Status != "" {
		st, err := entity.ParseOrderStatus(q.Status)
		if err != nil {
			return f, domain.ErrInvalidInput
		}
		f.Status = &st
	}
	if q.PaymentStatus != "" {
		ps, err := entity.ParsePaymentStatus(q.PaymentStatus)
		if err != nil {
			return f, domain.ErrInvalidInput
		}
		f.PaymentStatus = &ps
	}
	return f, nil
}

// ToOrderResponse convierte la orden (y sus avisos de stock) a la salida HTTP.
func ToOrderResponse(o *entity.Order, warnings []domain.StockConsistencyWarning) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:        o.ID,
		OrderCode: o.OrderCode,
		Client: dto.ClientResponse{
			Name:  o.Client.Name,
			Email: o.Client.Email,
			Phone: o.Client.Phone,
		},
		Items:         make([]dto.OrderLineResponse, 0, len(o.Items)),
		Total:         o.Total(),
		WaiterID:      o.WaiterID,
		TenantID:      o.TenantID,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
	}
	for _, l := range o.Items {
		resp.Items = append(resp.Items, dto.OrderLineResponse{
			ItemID:   l.ItemID,
			Name:     l.Name,
			Price:    l.Price,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		})
	}
	for _, w := range warnings {
		resp.StockWarnings = append(resp.StockWarnings, dto.StockWarningResponse{
			LineIndex: w.LineIndex,
			ItemID:    w.ItemID,
			Requested: w.Requested,
		})
	}
	return resp
}
