// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidAmount indicates a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientFunds indicates that the account balance does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrConcurrentModification indicates that the account version changed
	// between the caller's read and the attempted save.
	ErrConcurrentModification = errors.New("account modified concurrently")
)

// Account holds the balance of a single account holder.
//
// Version is the optimistic concurrency token: it starts at 0 and the store
// increments it on every successful save. A save that supplies a stale
// version fails with ErrConcurrentModification.
type Account struct {
	ID         uuid.UUID       `json:"id"`
	HolderName string          `json:"holder_name"`
	Balance    decimal.Decimal `json:"balance"`
	Version    int64           `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Deposit adds the amount to the balance in memory.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	a.Balance = a.Balance.Add(amount)

	return nil
}

// Withdraw subtracts the amount from the balance in memory.
// The balance never goes negative.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount)

	return nil
}
