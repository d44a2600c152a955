package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel subconjunto de *amqp.Channel que usa el publicador.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Connection conexión AMQP que reabre la conexión subyacente si el broker la cerró.
type Connection struct {
	url    string
	dial   func(url string) (*amqp.Connection, error)
	mu     sync.Mutex
	conn   *amqp.Connection
	closed bool
}

// Connect abre la conexión con el broker.
func Connect(url string) (*Connection, error) {
	c := &Connection{url: url, dial: amqp.Dial}
	conn, err := c.dial(url)
	if err != nil {
		return nil, fmt.Errorf("conectar a RabbitMQ: %w", err)
	}
	c.conn = conn
	return c, nil
}

// Channel abre un canal; si la conexión se perdió, reconecta una vez.
func (c *Connection) Channel() (Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, fmt.Errorf("conexión cerrada")
	}
	if c.conn == nil || c.conn.IsClosed() {
		conn, err := c.dial(c.url)
		if err != nil {
			return nil, fmt.Errorf("reconectar a RabbitMQ: %w", err)
		}
		c.conn = conn
	}
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("abrir canal: %w", err)
	}
	return ch, nil
}

// Close cierra la conexión de forma permanente.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.conn != nil && !c.conn.IsClosed() {
		return c.conn.Close()
	}
	return nil
}
