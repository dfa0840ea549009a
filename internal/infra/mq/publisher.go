package mq

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"sync"
	"time"

	"studyroom-booking/internal/pkg/config"
	"studyroom-booking/internal/pkg/errs"
	"studyroom-booking/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrBrokerUnavailable = errs.New("event broker unavailable")

const (
	defaultConnectTimeout = 3 * time.Second
	defaultRetryBackoff   = 10 * time.Second
)

// AMQPPublisher publishes reservation events to a durable topic exchange,
// routed by event type. The connection is opened lazily and reopened after failures.
// Only one caller dials at a time; the others fail fast with ErrBrokerUnavailable
// until the dial succeeds or its retry backoff expires.
type AMQPPublisher struct {
	url            string
	exchange       string
	connectTimeout time.Duration
	retryBackoff   time.Duration

	mu      sync.Mutex
	conn    *amqp.Connection
	ch      *amqp.Channel
	dialing bool
	retryAt time.Time
}

func NewAMQPPublisher(cfg config.MQConfig) *AMQPPublisher {
	p := &AMQPPublisher{
		url:            cfg.URL,
		exchange:       cfg.Exchange,
		connectTimeout: cfg.ConnectTimeout,
		retryBackoff:   cfg.RetryBackoff,
	}
	if p.connectTimeout <= 0 {
		p.connectTimeout = defaultConnectTimeout
	}
	if p.retryBackoff <= 0 {
		p.retryBackoff = defaultRetryBackoff
	}
	return p
}

func (p *AMQPPublisher) Publish(ctx context.Context, event shared.ReservationEvent) error {
	msg, err := buildPublishing(event)
	if err != nil {
		return err
	}

	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}

	if err := ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg); err != nil {
		p.mu.Lock()
		if p.ch == ch {
			p.resetLocked()
		}
		p.mu.Unlock()
		return errs.Wrapf(err, "publish %s", event.Type)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
	return nil
}

func (p *AMQPPublisher) channel(ctx context.Context) (*amqp.Channel, error) {
	p.mu.Lock()
	if p.ch != nil && !p.ch.IsClosed() {
		ch := p.ch
		p.mu.Unlock()
		return ch, nil
	}
	if p.dialing {
		p.mu.Unlock()
		return nil, errs.Wrap(ErrBrokerUnavailable, "connection attempt in progress")
	}
	if wait := time.Until(p.retryAt); wait > 0 {
		p.mu.Unlock()
		return nil, errs.Wrapf(ErrBrokerUnavailable, "retrying in %s", wait.Round(time.Millisecond))
	}
	p.resetLocked()
	p.dialing = true
	p.mu.Unlock()

	conn, ch, err := p.connect(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialing = false
	if err != nil {
		p.retryAt = time.Now().Add(p.retryBackoff)
		return nil, errs.Mark(err, ErrBrokerUnavailable)
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *AMQPPublisher) connect(ctx context.Context) (*amqp.Connection, *amqp.Channel, error) {
	dialCtx, cancel := context.WithTimeout(ctx, p.connectTimeout)
	defer cancel()

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      dialWithin(dialCtx),
	})
	if err != nil {
		return nil, nil, errs.Wrap(err, "dial broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "open channel")
	}
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, errs.Wrapf(err, "declare exchange %s", p.exchange)
	}
	return conn, ch, nil
}

// dialWithin bounds the TCP connect and the AMQP handshake by ctx's deadline.
// amqp091 clears the socket deadline once the handshake completes.
func dialWithin(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		var d net.Dialer
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if deadline, ok := ctx.Deadline(); ok {
			if err := conn.SetDeadline(deadline); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		return conn, nil
	}
}

func (p *AMQPPublisher) resetLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func buildPublishing(event shared.ReservationEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, errs.Wrapf(err, "marshal %s", event.Type)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String() + ":" + string(event.Type),
		Type:         string(event.Type),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}

// LogPublisher is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event shared.ReservationEvent) error {
	p.logger.InfoContext(ctx, "reservation event",
		"event", string(event.Type),
		"reservation_id", event.ID,
		"room_id", event.RoomID,
		"username", event.Username,
		"status", event.Status)
	return nil
}
