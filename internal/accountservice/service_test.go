package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/EduardoxDev/Digital-Banking-System/internal/domain"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/errorspkg"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/randompkg"
)

func randomAccount(balance string) domain.Account {
	return domain.Account{
		ID:         uuid.New(),
		HolderName: randompkg.HolderName(),
		Balance:    decimal.RequireFromString(balance),
		CreatedAt:  time.Now().Truncate(time.Second).UTC(),
	}
}

func TestCreate(t *testing.T) {
	testAccount := randomAccount("1000.00")

	testCases := []struct {
		name           string
		holderName     string
		initialBalance decimal.Decimal
		buildStubs     func(repo *MockRepo)
		checkResponse  func(t *testing.T, res domain.Account, err error)
	}{
		{
			name:           "Zero initial balance",
			holderName:     testAccount.HolderName,
			initialBalance: decimal.Zero,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:           "Negative initial balance",
			holderName:     testAccount.HolderName,
			initialBalance: decimal.RequireFromString("-100.00"),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:           "Repo error",
			holderName:     testAccount.HolderName,
			initialBalance: testAccount.Balance,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(testAccount.HolderName), gomock.Eq(testAccount.Balance)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
		{
			name:           "OK",
			holderName:     testAccount.HolderName,
			initialBalance: testAccount.Balance,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(testAccount.HolderName), gomock.Eq(testAccount.Balance)).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, testAccount, res)
				require.Zero(t, res.Version)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accountRepo := NewMockRepo(ctrl)
			accountService := New(accountRepo)

			tc.buildStubs(accountRepo)

			res, err := accountService.Create(context.Background(), tc.holderName, tc.initialBalance)
			tc.checkResponse(t, res, err)
		})
	}
}

func TestGet(t *testing.T) {
	testAccount := randomAccount("1000.00")

	testCases := []struct {
		name          string
		id            uuid.UUID
		buildStubs    func(repo *MockRepo)
		checkResponse func(t *testing.T, res domain.Account, err error)
	}{
		{
			name: "Not found",
			id:   testAccount.ID,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
			},
		},
		{
			name: "OK",
			id:   testAccount.ID,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, testAccount, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accountRepo := NewMockRepo(ctrl)
			accountService := New(accountRepo)

			tc.buildStubs(accountRepo)

			res, err := accountService.Get(context.Background(), tc.id)
			tc.checkResponse(t, res, err)
		})
	}
}

func TestList(t *testing.T) {
	accounts := []domain.Account{randomAccount("100.00"), randomAccount("200.00")}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountRepo := NewMockRepo(ctrl)
	accountService := New(accountRepo)

	accountRepo.EXPECT().List(gomock.Any(), gomock.Eq(int32(5)), gomock.Eq(int32(5))).
		Times(1).
		Return(accounts, nil)

	res, err := accountService.List(context.Background(), 5, 2)

	require.NoError(t, err)
	require.Equal(t, accounts, res)
}
