package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/comandas-api/internal/application/dto"
	"github.com/jhoicas/comandas-api/internal/domain"
	"github.com/jhoicas/comandas-api/internal/domain/entity"
	"github.com/jhoicas/comandas-api/internal/domain/repository"
)

// Validator verifica las líneas de una orden contra el inventario vivo del tenant.
type Validator struct {
	items repository.ItemRepository
}

// NewValidator construye el validador.
func NewValidator(items repository.ItemRepository) *Validator {
	return &Validator{items: items}
}

// Validate revisa las líneas en orden y se detiene en la primera que falla (fail-fast).
// Devuelve los items cargados alineados por índice con lines, para tomar el snapshot.
// Un item de otro tenant se reporta igual que uno inexistente.
func (v *Validator) Validate(ctx context.Context, tenantID string, lines []dto.OrderLineRequest) ([]*entity.Item, error) {
	loaded := make([]*entity.Item, len(lines))
	for i, line := range lines {
		if line.Quantity < 1 {
			return nil, domain.NewLineError(i, line.ItemID, domain.ReasonInvalidQuantity)
		}
		item, err := v.items.GetForTenant(ctx, tenantID, line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("cargar item %s: %w", line.ItemID, err)
		}
		if item == nil {
			return nil, domain.NewLineError(i, line.ItemID, domain.ReasonNotFound)
		}
		if !item.Available {
			return nil, domain.NewLineError(i, line.ItemID, domain.ReasonUnavailable)
		}
		if item.QuantityAvailable < line.Quantity {
			return nil, domain.NewLineError(i, line.ItemID, domain.ReasonInsufficientQuantity)
		}
		loaded[i] = item
	}
	return loaded, nil
}
