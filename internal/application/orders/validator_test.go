package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comandas-api/internal/application/dto"
	"github.com/jhoicas/comandas-api/internal/application/orders"
	"github.com/jhoicas/comandas-api/internal/domain"
)

func TestValidator_Validate(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, f.owner.ID, "beer", "5", 3, true)
	f.addItem(t, f.owner.ID, "off", "5", 3, false)
	f.addItem(t, f.owner.ID, "empty", "5", 0, true)
	v := orders.NewValidator(f.items)

	tests := []struct {
		name   string
		lines  []dto.OrderLineRequest
		index  int
		reason domain.LineReason
	}{
		{"inexistente", []dto.OrderLineRequest{line("nope", 1)}, 0, domain.ReasonNotFound},
		{"no disponible", []dto.OrderLineRequest{line("off", 1)}, 0, domain.ReasonUnavailable},
		{"sin stock", []dto.OrderLineRequest{line("empty", 1)}, 0, domain.ReasonInsufficientQuantity},
		{"excede stock", []dto.OrderLineRequest{line("beer", 4)}, 0, domain.ReasonInsufficientQuantity},
		{"cantidad cero", []dto.OrderLineRequest{line("beer", 0)}, 0, domain.ReasonInvalidQuantity},
		{"cantidad negativa", []dto.OrderLineRequest{line("beer", -2)}, 0, domain.ReasonInvalidQuantity},
		{"falla en la segunda línea", []dto.OrderLineRequest{line("beer", 1), line("off", 1), line("nope", 1)}, 1, domain.ReasonUnavailable},
		{"inexistente antes que sin stock", []dto.OrderLineRequest{line("beer", 1), line("nope", 1), line("beer", 99)}, 1, domain.ReasonNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded, err := v.Validate(context.Background(), f.owner.ID, tt.lines)
			assert.Nil(t, loaded)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, domain.ValidationLineItem, vErr.Kind)
			assert.Equal(t, tt.index, vErr.LineIndex)
			assert.Equal(t, tt.lines[tt.index].ItemID, vErr.ItemID)
			assert.Equal(t, tt.reason, vErr.Reason)
		})
	}
}

func TestValidator_DevuelveItemsAlineados(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, f.owner.ID, "beer", "5", 3, true)
	f.addItem(t, f.owner.ID, "wine", "20", 3, true)
	v := orders.NewValidator(f.items)

	loaded, err := v.Validate(context.Background(), f.owner.ID, []dto.OrderLineRequest{line("wine", 3), line("beer", 1)})
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "wine", loaded[0].ID)
	assert.Equal(t, "beer", loaded[1].ID)
}

func TestValidator_CadaLineaContraElStockCompleto(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, f.owner.ID, "beer", "5", 3, true)
	v := orders.NewValidator(f.items)

	// dos líneas del mismo item se validan por separado; el descuento condicional protege el stock
	_, err := v.Validate(context.Background(), f.owner.ID, []dto.OrderLineRequest{line("beer", 2), line("beer", 2)})
	assert.NoError(t, err)
}
