//go:build integration

package transactionrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/EduardoxDev/Digital-Banking-System/internal/accountrepo"
	"github.com/EduardoxDev/Digital-Banking-System/internal/domain"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/configpkg"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/dbpkg"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/randompkg"
)

var (
	dbDriver string
	dbSource string
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func seedAccount(t *testing.T, tx *sql.Tx) domain.Account {
	t.Helper()

	accounts := accountrepo.NewRepoPGS(tx)

	account, err := accounts.Create(context.Background(), randompkg.HolderName(), randompkg.MoneyAmountBetween(1_000, 10_000))
	require.NoError(t, err)

	return account
}

func seedTransaction(t *testing.T, tx *sql.Tx, sourceID, destinationID uuid.UUID) domain.Transaction {
	t.Helper()

	testRepo := NewRepoPGS(tx)
	arg := domain.NewTransaction(sourceID, destinationID, randompkg.MoneyAmountBetween(10, 100), domain.TypeTransfer)

	transaction, err := testRepo.Create(context.Background(), arg)
	require.NoError(t, err)

	return transaction
}

func TestCreate(t *testing.T) {
	testCases := []struct {
		name            string
		wantTransaction func(tx *sql.Tx) domain.Transaction
		wantErr         error
	}{
		{
			name: "OK",
			wantTransaction: func(tx *sql.Tx) domain.Transaction {
				source := seedAccount(t, tx)
				destination := seedAccount(t, tx)

				return domain.NewTransaction(source.ID, destination.ID, randompkg.MoneyAmountBetween(10, 100), domain.TypeTransfer)
			},
		},
		{
			name: "Deposit",
			wantTransaction: func(tx *sql.Tx) domain.Transaction {
				account := seedAccount(t, tx)

				return domain.NewTransaction(account.ID, account.ID, randompkg.MoneyAmountBetween(10, 100), domain.TypeDeposit)
			},
		},
		{
			name: "ErrSourceAccountNotFound",
			wantTransaction: func(tx *sql.Tx) domain.Transaction {
				destination := seedAccount(t, tx)

				return domain.NewTransaction(uuid.New(), destination.ID, randompkg.MoneyAmountBetween(10, 100), domain.TypeTransfer)
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "ErrDestinationAccountNotFound",
			wantTransaction: func(tx *sql.Tx) domain.Transaction {
				source := seedAccount(t, tx)

				return domain.NewTransaction(source.ID, uuid.New(), randompkg.MoneyAmountBetween(10, 100), domain.TypeTransfer)
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "ErrInvalidAmount",
			wantTransaction: func(tx *sql.Tx) domain.Transaction {
				source := seedAccount(t, tx)
				destination := seedAccount(t, tx)

				return domain.NewTransaction(source.ID, destination.ID, decimal.Zero, domain.TypeTransfer)
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := dbpkg.SetupTX(t, dbDriver, dbSource)
			testRepo := NewRepoPGS(tx)
			want := tc.wantTransaction(tx)

			got, err := testRepo.Create(context.Background(), want)
			if tc.wantErr != nil {
				require.EqualError(t, err, tc.wantErr.Error())
				return
			}

			require.NoError(t, err)

			compareTimestamps := cmpopts.EquateApproxTime(time.Second)
			compareDecimals := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
			if diff := cmp.Diff(want, got, compareTimestamps, compareDecimals); diff != "" {
				t.Errorf("transaction mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGet(t *testing.T) {
	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	testRepo := NewRepoPGS(tx)

	source := seedAccount(t, tx)
	destination := seedAccount(t, tx)
	want := seedTransaction(t, tx, source.ID, destination.ID)

	got, err := testRepo.Get(context.Background(), want.ID)
	require.NoError(t, err)

	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.SourceAccountID, got.SourceAccountID)
	require.Equal(t, want.DestinationAccountID, got.DestinationAccountID)
	require.True(t, want.Amount.Equal(got.Amount))
	require.Equal(t, want.Type, got.Type)
	require.WithinDuration(t, want.Timestamp, got.Timestamp, time.Second)
}

func TestGetNotFound(t *testing.T) {
	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	testRepo := NewRepoPGS(tx)

	transaction, err := testRepo.Get(context.Background(), uuid.New())
	require.EqualError(t, err, domain.ErrTransactionNotFound.Error())
	require.Empty(t, transaction)
}

func TestList(t *testing.T) {
	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	testRepo := NewRepoPGS(tx)

	source := seedAccount(t, tx)
	destination := seedAccount(t, tx)
	bystander := seedAccount(t, tx)

	const transactionsCount = 10

	for i := 0; i < transactionsCount; i++ {
		seedTransaction(t, tx, source.ID, destination.ID)
	}

	testCases := []struct {
		name      string
		accountID uuid.UUID
		limit     int32
		offset    int32
		wantLen   int
	}{
		{name: "SourceSide", accountID: source.ID, limit: 100, offset: 0, wantLen: transactionsCount},
		{name: "DestinationSide", accountID: destination.ID, limit: 100, offset: 0, wantLen: transactionsCount},
		{name: "Limit5Offset5", accountID: source.ID, limit: 5, offset: 5, wantLen: 5},
		{name: "Bystander", accountID: bystander.ID, limit: 100, offset: 0, wantLen: 0},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			got, err := testRepo.List(context.Background(), tc.accountID, tc.limit, tc.offset)
			require.NoError(t, err)
			require.Len(t, got, tc.wantLen)
		})
	}
}
