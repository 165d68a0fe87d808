package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrSameAccount indicates a transfer where source and destination are the same account.
	ErrSameAccount = errors.New("source and destination accounts are the same")
	// ErrConcurrencyExhausted indicates that the transfer gave up after the
	// bounded number of optimistic retries.
	ErrConcurrencyExhausted = errors.New("too many concurrent modifications")
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionType classifies a balance movement.
type TransactionType string

// Transaction types.
const (
	TypeTransfer   TransactionType = "TRANSFER"
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
)

// Transaction is the immutable ledger record of a committed balance movement.
// It is never written for a failed or rolled back attempt. For DEPOSIT and
// WITHDRAWAL movements both account references carry the same id.
type Transaction struct {
	ID                   uuid.UUID       `json:"id"`
	SourceAccountID      uuid.UUID       `json:"source_account_id"`
	DestinationAccountID uuid.UUID       `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
	Type                 TransactionType `json:"type"`
	Timestamp            time.Time       `json:"timestamp"`
}

// NewTransaction assembles a ledger record for the given movement.
func NewTransaction(sourceID, destinationID uuid.UUID, amount decimal.Decimal, transactionType TransactionType) Transaction {
	return Transaction{
		ID:                   uuid.New(),
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               amount,
		Type:                 transactionType,
		Timestamp:            time.Now().UTC(),
	}
}

// TransferTxResult is the result of the atomic transfer unit.
type TransferTxResult struct {
	Transaction Transaction `json:"transaction"`
	Source      Account     `json:"source"`
	Destination Account     `json:"destination"`
}
