// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/EduardoxDev/Digital-Banking-System/internal/domain"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/errorspkg"
	"github.com/EduardoxDev/Digital-Banking-System/pkg/jsonresponse"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount decimal.Decimal) (domain.TransferTxResult, error)
	Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (domain.TransferTxResult, error)
	Withdraw(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (domain.TransferTxResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type transferRequest struct {
	SourceID      string `json:"source_id" binding:"required,uuid"`
	DestinationID string `json:"destination_id" binding:"required,uuid"`
	Amount        string `json:"amount" binding:"required,money"`
}

type data struct {
	Transaction domain.Transaction `json:"transaction"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to create a transfer between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(domain.ErrInvalidAmount))

		return
	}

	result, err := h.service.Transfer(ctx,
		uuid.MustParse(req.SourceID),
		uuid.MustParse(req.DestinationID),
		amount,
	)
	if err != nil {
		respondServiceError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{result.Transaction}})
}

type movementRequest struct {
	AccountID string `json:"account_id" binding:"required,uuid"`
	Amount    string `json:"amount" binding:"required,money"`
}

// Deposit handles http request to credit a single account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.movement(gctx, h.service.Deposit)
}

// Withdraw handles http request to debit a single account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.movement(gctx, h.service.Withdraw)
}

func (h *Handler) movement(gctx *gin.Context, apply func(context.Context, uuid.UUID, decimal.Decimal) (domain.TransferTxResult, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req movementRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(domain.ErrInvalidAmount))

		return
	}

	result, err := apply(ctx, uuid.MustParse(req.AccountID), amount)
	if err != nil {
		respondServiceError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{result.Transaction}})
}

// respondServiceError maps engine errors onto http statuses: unknown accounts
// are 404, business rule violations 400, exhausted optimistic retries 409
// and everything else a masked 500.
func respondServiceError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())
	l.Info().Err(err).Send()

	switch err {
	case domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))

		return
	case
		domain.ErrInvalidAmount,
		domain.ErrSameAccount,
		domain.ErrInsufficientFunds:
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	case domain.ErrConcurrencyExhausted:
		gctx.JSON(http.StatusConflict, jsonresponse.Error(err))

		return
	}

	gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
}
