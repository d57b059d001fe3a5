package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/log"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel the publisher uses
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// dialer opens a channel and returns a closer for the underlying connection
type dialer func() (channel, func() error, error)

// AMQPPublisher publishes display states and check-in reminders to a direct exchange
type AMQPPublisher struct {
	exchange string
	dial     dialer
	logger   *log.Logger
	now      func() time.Time

	mu        sync.Mutex
	ch        channel
	closeConn func() error
}

// NewAMQPPublisher dials url and declares the exchange
func NewAMQPPublisher(url, exchange string, logger *log.Logger) (*AMQPPublisher, error) {
	dial := func() (channel, func() error, error) {
		conn, err := amqp091.Dial(url)
		if err != nil {
			return nil, nil, fmt.Errorf("dial AMQP: %w", err)
		}
		ch, err := conn.Channel()
		if err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open channel: %w", err)
		}
		return ch, conn.Close, nil
	}
	return newAMQPPublisher(exchange, dial, logger)
}

func newAMQPPublisher(exchange string, dial dialer, logger *log.Logger) (*AMQPPublisher, error) {
	if logger == nil {
		logger = log.Discard()
	}
	p := &AMQPPublisher{
		exchange: exchange,
		dial:     dial,
		logger:   logger.WithComponent(log.ComponentAMQP),
		now:      time.Now,
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// connect must be called with mu held or before the publisher is shared
func (p *AMQPPublisher) connect() error {
	ch, closeConn, err := p.dial()
	if err != nil {
		return err
	}

	err = ch.ExchangeDeclare(
		p.exchange, // name
		"direct",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		ch.Close()
		if closeConn != nil {
			closeConn()
		}
		return fmt.Errorf("declare exchange: %w", err)
	}

	p.ch = ch
	p.closeConn = closeConn
	return nil
}

// PublishDisplayState implements domain.DisplayPublisher
func (p *AMQPPublisher) PublishDisplayState(ctx context.Context, state domain.DisplayState) error {
	body, err := NewDisplayStateMessage(state, p.now()).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := p.publish(ctx, RoutingDisplayState, body); err != nil {
		return err
	}
	p.logger.DebugContext(ctx, "published display state",
		log.FieldNetWorth, state.NetWorth,
		"exchange", p.exchange,
	)
	return nil
}

// Notify implements domain.Notifier
func (p *AMQPPublisher) Notify(ctx context.Context, reminder domain.Reminder) error {
	body, err := NewCheckInMessage(reminder).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	return p.publish(ctx, RoutingCheckIn, body)
}

// publish retries once on a fresh connection when the broker connection was lost
func (p *AMQPPublisher) publish(ctx context.Context, key string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.publishLocked(ctx, key, body)
	if err == nil || !isConnectionError(err) {
		return err
	}

	p.logger.WarnContext(ctx, "AMQP connection lost, reconnecting", log.FieldError, err)
	p.closeLocked()
	if err := p.connect(); err != nil {
		return fmt.Errorf("reconnect: %w", err)
	}
	return p.publishLocked(ctx, key, body)
}

func (p *AMQPPublisher) publishLocked(ctx context.Context, key string, body []byte) error {
	if p.ch == nil {
		return amqp091.ErrClosed
	}
	err := p.ch.PublishWithContext(
		ctx,
		p.exchange, // exchange
		key,        // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    p.now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// Close closes the channel and connection
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func (p *AMQPPublisher) closeLocked() error {
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
		p.ch = nil
	}
	if p.closeConn != nil {
		errs = append(errs, p.closeConn())
		p.closeConn = nil
	}
	return errors.Join(errs...)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, amqp091.ErrClosed) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{"connection refused", "connection closed", "EOF", "broken pipe", "use of closed network connection", "channel/connection is not open"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
