// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EduardoxDev/Digital-Banking-System/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, holderName string, initialBalance decimal.Decimal) (domain.Account, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Account, error)
	List(ctx context.Context, limit, offset int32) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates and returns an account for the given holder with the given
// initial balance. The initial balance must be positive.
func (s *Service) Create(ctx context.Context, holderName string, initialBalance decimal.Decimal) (domain.Account, error) {
	if initialBalance.LessThanOrEqual(decimal.Zero) {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	account, err := s.repo.Create(ctx, holderName, initialBalance)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns the requested page of accounts.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	accounts, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return accounts, err
}
