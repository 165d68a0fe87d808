// Package auditservice consumes committed transaction events and logs them.
//
// The subscriber is fully decoupled from the transfer engine: it only sees
// transactions after their atomic unit committed and its availability never
// affects a transfer's outcome.
package auditservice

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/EduardoxDev/Digital-Banking-System/internal/domain"
	"github.com/EduardoxDev/Digital-Banking-System/internal/eventpublisher"
)

// Service logs every committed transaction it receives.
type Service struct {
	logger zerolog.Logger
}

// New returns audit service struct.
func New(logger zerolog.Logger) *Service {
	return &Service{logger: logger}
}

// Subscribe attaches the audit handler to the transactions subject.
func (s *Service) Subscribe(conn *nats.Conn) (*nats.Subscription, error) {
	return conn.Subscribe(eventpublisher.Subject, func(msg *nats.Msg) {
		s.Audit(msg.Data)
	})
}

// Audit decodes and logs a single transaction event.
func (s *Service) Audit(data []byte) {
	var transaction domain.Transaction
	if err := json.Unmarshal(data, &transaction); err != nil {
		s.logger.Error().Err(err).Msg("audit: undecodable transaction event")
		return
	}

	s.logger.Info().
		Str("transaction_id", transaction.ID.String()).
		Str("source_account_id", transaction.SourceAccountID.String()).
		Str("destination_account_id", transaction.DestinationAccountID.String()).
		Str("amount", transaction.Amount.String()).
		Str("type", string(transaction.Type)).
		Time("timestamp", transaction.Timestamp).
		Msg("transaction recorded")
}
