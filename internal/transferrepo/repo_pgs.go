// Package transferrepo manages the atomic unit of a balance movement.
package transferrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/EduardoxDev/Digital-Banking-System/internal/accountrepo"
	"github.com/EduardoxDev/Digital-Banking-System/internal/domain"
	"github.com/EduardoxDev/Digital-Banking-System/internal/transactionrepo"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/dbpkg"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/errorspkg"
)

// RepoPGS executes balance movements as single database transactions.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns transfer RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{
		conn: conn,
	}
}

// Transfer persists both mutated accounts and appends the ledger record
// within a single database transaction.
//
// Both account saves are version checked; a stale version on either side
// rolls back the whole unit and surfaces domain.ErrConcurrentModification so
// the caller can re-read and retry. No lock ordering between the two
// accounts is needed for that.
func (r *RepoPGS) Transfer(ctx context.Context, source, destination domain.Account, transaction domain.Transaction) (domain.TransferTxResult, error) {
	var result domain.TransferTxResult

	err := r.execTx(ctx, func(accounts *accountrepo.RepoPGS, transactions *transactionrepo.RepoPGS) error {
		var err error

		result.Source, err = accounts.Save(ctx, source)
		if err != nil {
			return err
		}

		result.Destination, err = accounts.Save(ctx, destination)
		if err != nil {
			return err
		}

		result.Transaction, err = transactions.Create(ctx, transaction)

		return err
	})
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	return result, nil
}

// Apply persists a single mutated account and appends the ledger record
// within one database transaction. It backs deposits and withdrawals.
func (r *RepoPGS) Apply(ctx context.Context, account domain.Account, transaction domain.Transaction) (domain.TransferTxResult, error) {
	var result domain.TransferTxResult

	err := r.execTx(ctx, func(accounts *accountrepo.RepoPGS, transactions *transactionrepo.RepoPGS) error {
		var err error

		result.Source, err = accounts.Save(ctx, account)
		if err != nil {
			return err
		}

		result.Destination = result.Source

		result.Transaction, err = transactions.Create(ctx, transaction)

		return err
	})
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	return result, nil
}

func (r *RepoPGS) execTx(ctx context.Context, fn func(*accountrepo.RepoPGS, *transactionrepo.RepoPGS) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	if err := fn(accountrepo.NewRepoPGS(tx), transactionrepo.NewRepoPGS(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()

		if dbpkg.IsConcurrencyConflict(err) {
			return domain.ErrConcurrentModification
		}

		return errorspkg.ErrInternal
	}

	return nil
}
