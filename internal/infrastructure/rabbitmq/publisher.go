package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jhoicas/comandas-api/internal/application/orders"
)

// RoutingKeyOrderCreated routing key del evento de orden creada.
const RoutingKeyOrderCreated = "order.created"

// ChannelOpener abre canales AMQP. Implementado por *Connection.
type ChannelOpener interface {
	Channel() (Channel, error)
}

var _ orders.EventPublisher = (*Publisher)(nil)

// Publisher publica eventos de órdenes en un exchange topic.
type Publisher struct {
	conn     ChannelOpener
	exchange string
}

// NewPublisher construye el publicador sobre el exchange indicado.
func NewPublisher(conn ChannelOpener, exchange string) *Publisher {
	return &Publisher{conn: conn, exchange: exchange}
}

// PublishOrderCreated publica order.created como JSON persistente, con el contexto de traza en los headers.
func (p *Publisher) PublishOrderCreated(ctx context.Context, evt orders.OrderCreatedEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declarar exchange: %w", err)
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	headers := amqp.Table{"tenant_id": evt.TenantID}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier(headers))

	err = ch.PublishWithContext(ctx, p.exchange, RoutingKeyOrderCreated, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    evt.OrderID,
		Timestamp:    evt.CreatedAt,
		Headers:      headers,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publicar %s: %w", RoutingKeyOrderCreated, err)
	}
	return nil
}

// headerCarrier adapta amqp.Table a propagation.TextMapCarrier.
type headerCarrier amqp.Table

var _ propagation.TextMapCarrier = headerCarrier(nil)

func (h headerCarrier) Get(key string) string {
	if v, ok := h[key].(string); ok {
		return v
	}
	return ""
}

func (h headerCarrier) Set(key, value string) { h[key] = value }

func (h headerCarrier) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	return keys
}
