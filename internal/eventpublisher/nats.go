// Package eventpublisher publishes committed transactions to NATS.
package eventpublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/EduardoxDev/Digital-Banking-System/internal/domain"
)

// Subject carries every committed transaction event.
const Subject = "banking.transactions"

// NATS publishes transaction events over a NATS connection.
//
// Publish enqueues into the connection's flush buffer and returns without
// waiting for the broker, so a committed transfer is never blocked on
// subscriber availability.
type NATS struct {
	conn *nats.Conn
}

// Connect dials the NATS server and returns a publisher on it.
func Connect(url string, logger zerolog.Logger) (*NATS, error) {
	opts := []nats.Option{
		nats.Name("digital-banking"),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(10),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info().Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATS{conn: conn}, nil
}

// New wraps an existing NATS connection.
func New(conn *nats.Conn) *NATS {
	return &NATS{conn: conn}
}

// Conn returns the underlying NATS connection.
func (p *NATS) Conn() *nats.Conn {
	return p.conn
}

// Publish encodes the transaction and enqueues it on the transactions subject.
func (p *NATS) Publish(ctx context.Context, transaction domain.Transaction) error {
	l := zerolog.Ctx(ctx)

	data, err := json.Marshal(transaction)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	if err := p.conn.Publish(Subject, data); err != nil {
		return fmt.Errorf("failed to publish transaction event: %w", err)
	}

	l.Debug().Str("transaction_id", transaction.ID.String()).Msg("transaction event published")

	return nil
}

// Close drains and closes the underlying connection.
func (p *NATS) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
		p.conn.Close()
	}
}
