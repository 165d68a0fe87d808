// Package transactionrepo manages the append-only transaction ledger.
//
// The ledger records committed balance movements only. The package has no
// update or delete statements.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/EduardoxDev/Digital-Banking-System/internal/domain"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/dbpkg"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (id, source_account_id, destination_account_id, amount, type, created_at)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING id, source_account_id, destination_account_id, amount, type, created_at
`

// Create appends the transaction to the ledger and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.Transaction) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.ID,
		arg.SourceAccountID,
		arg.DestinationAccountID,
		arg.Amount,
		arg.Type,
		arg.Timestamp,
	)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.SourceAccountID,
		&t.DestinationAccountID,
		&t.Amount,
		&t.Type,
		&t.Timestamp,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_source_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_destination_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrInvalidAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT
	id, source_account_id, destination_account_id, amount, type, created_at
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.SourceAccountID,
		&t.DestinationAccountID,
		&t.Amount,
		&t.Type,
		&t.Timestamp,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listTransactions = `
SELECT
	id, source_account_id, destination_account_id, amount, type, created_at
FROM transactions
WHERE
    source_account_id = $1 OR destination_account_id = $1
ORDER BY created_at, id
LIMIT $2 OFFSET $3
`

// List returns the transactions that touch the given account.
func (r *RepoPGS) List(ctx context.Context, accountID uuid.UUID, limit, offset int32) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listTransactions, accountID, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.SourceAccountID,
			&t.DestinationAccountID,
			&t.Amount,
			&t.Type,
			&t.Timestamp,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
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
