// Package transferservice manages business logic layer of transfers.
//
// The service is the transfer engine: it validates a movement, loads fresh
// account state, mutates balances in memory and hands the whole unit to the
// repository. Optimistic concurrency conflicts are retried with a bounded
// jittered backoff; every other failure is terminal and leaves no persisted
// effect.
package transferservice

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/EduardoxDev/Digital-Banking-System/internal/domain"
	"github.com/EduardoxDev/Digital-Banking-System/internal/telemetry"
)

// Retry bounds for optimistic concurrency conflicts. The first attempt plus
// DefaultMaxRetries re-reads, with jittered exponential backoff starting at
// DefaultRetryInterval.
const (
	DefaultMaxRetries    uint64 = 5
	DefaultRetryInterval        = 10 * time.Millisecond
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, source, destination domain.Account, transaction domain.Transaction) (domain.TransferTxResult, error)
	Apply(ctx context.Context, account domain.Account, transaction domain.Transaction) (domain.TransferTxResult, error)
}

// Accounts provides the account read access needed by the transfer service layer.
type Accounts interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Account, error)
}

// Notifier publishes committed transactions to the downstream subscriber.
// Delivery is best effort: a failure never unwinds a committed movement.
type Notifier interface {
	Publish(ctx context.Context, transaction domain.Transaction) error
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo          Repo
	accounts      Accounts
	notifier      Notifier
	maxRetries    uint64
	retryInterval time.Duration
}

// New returns transfer service struct to manage transfer bussines logic.
// Non-positive retry settings fall back to the defaults.
func New(tr Repo, as Accounts, n Notifier, maxRetries uint64, retryInterval time.Duration) *Service {
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}

	if retryInterval <= 0 {
		retryInterval = DefaultRetryInterval
	}

	return &Service{
		repo:          tr,
		accounts:      as,
		notifier:      n,
		maxRetries:    maxRetries,
		retryInterval: retryInterval,
	}
}

// Transfer moves amount from the source account to the destination account as
// one all-or-nothing unit and returns the committed result.
func (s *Service) Transfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount decimal.Decimal) (domain.TransferTxResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		telemetry.TransfersTotal.WithLabelValues("invalid_amount").Inc()
		return domain.TransferTxResult{}, domain.ErrInvalidAmount
	}

	if sourceID == destinationID {
		telemetry.TransfersTotal.WithLabelValues("same_account").Inc()
		return domain.TransferTxResult{}, domain.ErrSameAccount
	}

	result, err := s.commitWithRetry(ctx, func(ctx context.Context) (domain.TransferTxResult, error) {
		source, err := s.accounts.Get(ctx, sourceID)
		if err != nil {
			return domain.TransferTxResult{}, err
		}

		destination, err := s.accounts.Get(ctx, destinationID)
		if err != nil {
			return domain.TransferTxResult{}, err
		}

		if err := source.Withdraw(amount); err != nil {
			return domain.TransferTxResult{}, err
		}

		if err := destination.Deposit(amount); err != nil {
			return domain.TransferTxResult{}, err
		}

		transaction := domain.NewTransaction(sourceID, destinationID, amount, domain.TypeTransfer)

		return s.repo.Transfer(ctx, source, destination, transaction)
	})
	if err != nil {
		telemetry.TransfersTotal.WithLabelValues(statusLabel(err)).Inc()
		return domain.TransferTxResult{}, err
	}

	telemetry.TransfersTotal.WithLabelValues("success").Inc()
	s.publish(ctx, result.Transaction)

	return result, nil
}

// Deposit credits amount to the account and records a DEPOSIT transaction.
func (s *Service) Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (domain.TransferTxResult, error) {
	return s.apply(ctx, accountID, amount, domain.TypeDeposit)
}

// Withdraw debits amount from the account and records a WITHDRAWAL transaction.
func (s *Service) Withdraw(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (domain.TransferTxResult, error) {
	return s.apply(ctx, accountID, amount, domain.TypeWithdrawal)
}

func (s *Service) apply(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, transactionType domain.TransactionType) (domain.TransferTxResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		telemetry.TransfersTotal.WithLabelValues("invalid_amount").Inc()
		return domain.TransferTxResult{}, domain.ErrInvalidAmount
	}

	result, err := s.commitWithRetry(ctx, func(ctx context.Context) (domain.TransferTxResult, error) {
		account, err := s.accounts.Get(ctx, accountID)
		if err != nil {
			return domain.TransferTxResult{}, err
		}

		if transactionType == domain.TypeWithdrawal {
			err = account.Withdraw(amount)
		} else {
			err = account.Deposit(amount)
		}

		if err != nil {
			return domain.TransferTxResult{}, err
		}

		transaction := domain.NewTransaction(accountID, accountID, amount, transactionType)

		return s.repo.Apply(ctx, account, transaction)
	})
	if err != nil {
		telemetry.TransfersTotal.WithLabelValues(statusLabel(err)).Inc()
		return domain.TransferTxResult{}, err
	}

	telemetry.TransfersTotal.WithLabelValues("success").Inc()
	s.publish(ctx, result.Transaction)

	return result, nil
}

// commitWithRetry runs attempt until it commits, a terminal error occurs or
// the retry budget is spent. Every retry re-reads the accounts so a conflict
// never persists a partial balance change.
func (s *Service) commitWithRetry(ctx context.Context, attempt func(context.Context) (domain.TransferTxResult, error)) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	operation := func() error {
		var err error

		result, err = attempt(ctx)
		if err != nil && errors.Is(err, domain.ErrConcurrentModification) {
			telemetry.TransferConflicts.Inc()
			l.Info().Msg("concurrent modification, retrying with fresh accounts")

			return err
		}

		if err != nil {
			return backoff.Permanent(err)
		}

		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.retryInterval
	policy.MaxElapsedTime = 0

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, s.maxRetries), ctx))
	if err != nil {
		if errors.Is(err, domain.ErrConcurrentModification) {
			return domain.TransferTxResult{}, domain.ErrConcurrencyExhausted
		}

		return domain.TransferTxResult{}, err
	}

	return result, nil
}

// publish hands the committed transaction to the notifier. The transfer is
// already durable at this point, so a notification failure is only logged
// and counted.
func (s *Service) publish(ctx context.Context, transaction domain.Transaction) {
	l := zerolog.Ctx(ctx)

	if s.notifier == nil {
		return
	}

	if err := s.notifier.Publish(ctx, transaction); err != nil {
		telemetry.EventPublishFailures.Inc()
		l.Error().Err(err).
			Str("transaction_id", transaction.ID.String()).
			Msg("transaction event publish failed")

		return
	}

	telemetry.EventsPublished.WithLabelValues(string(transaction.Type)).Inc()
}

func statusLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrConcurrencyExhausted):
		return "concurrency_exhausted"
	default:
		return "error"
	}
}
