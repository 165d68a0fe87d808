// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/EduardoxDev/Digital-Banking-System/internal/domain"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/dbpkg"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (id, holder_name, balance, version)
VALUES
    ($1, $2, $3, 0)
RETURNING id, holder_name, balance, version, created_at
`

// Create creates the account with version 0 and then returns it.
func (r *RepoPGS) Create(ctx context.Context, holderName string, initialBalance decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, uuid.New(), holderName, initialBalance)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.HolderName,
		&a.Balance,
		&a.Version,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInvalidAmount
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, holder_name, balance, version, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.HolderName,
		&a.Balance,
		&a.Version,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const saveQuery = `
UPDATE accounts
SET balance = $2, version = version + 1
WHERE id = $1 AND version = $3
RETURNING id, holder_name, balance, version, created_at
`

// Save persists the account's balance iff the stored version still equals the
// version the caller read, incrementing the stored version.
//
// This conditional update is the sole concurrency control: no row lock is
// held across the caller's read, compute and save. A stale version yields
// domain.ErrConcurrentModification.
func (r *RepoPGS) Save(ctx context.Context, account domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, saveQuery, account.ID, account.Balance, account.Version)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.HolderName,
		&a.Balance,
		&a.Version,
		&a.CreatedAt,
	)

	if err == nil {
		return a, nil
	}

	if pqErr, ok := err.(*pq.Error); ok {
		l.Error().Err(err).Send()

		if pqErr.Constraint == "accounts_balance_check" {
			return a, domain.ErrInsufficientFunds
		}

		// A serialization failure or deadlock abort is as transient as a
		// stale version: let the caller re-read and retry.
		if dbpkg.IsConcurrencyConflict(err) {
			return a, domain.ErrConcurrentModification
		}

		return a, errorspkg.ErrInternal
	}

	if err != sql.ErrNoRows {
		l.Error().Err(err).Send()
		return a, errorspkg.ErrInternal
	}

	// Zero rows either means the row is gone or another writer bumped the
	// version first. Tell the two apart so the caller can retry conflicts.
	if _, getErr := r.Get(ctx, account.ID); getErr != nil {
		return a, getErr
	}

	return a, domain.ErrConcurrentModification
}

const listAccounts = `
SELECT
	id, holder_name, balance, version, created_at
FROM accounts
ORDER BY created_at, id
LIMIT $1 OFFSET $2
`

// List returns the specified page of accounts.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listAccounts, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.HolderName, &a.Balance, &a.Version, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
