// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ledgerflow/ledgerflow/internal/domain"
	"github.com/ledgerflow/ledgerflow/pkg/errorspkg"
	"github.com/ledgerflow/ledgerflow/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, owner string, kind domain.Kind, openingBalance, overdraftLimit string) (*domain.Account, error)
	Get(ctx context.Context, number string) (*domain.Account, error)
	List(ctx context.Context, owner string) ([]*domain.Account, error)
	Deposit(ctx context.Context, number, amount string) (domain.Transaction, error)
	Withdraw(ctx context.Context, number, amount string) (domain.Transaction, error)
	AccrueYield(ctx context.Context, number, rate string) (domain.Transaction, error)
	Transactions(ctx context.Context, number string, f domain.Filter) ([]domain.Transaction, error)
	Statement(ctx context.Context, number string, f domain.Filter) ([]string, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

type accountResponse struct {
	Owner          string      `json:"owner"`
	Number         string      `json:"number"`
	Branch         string      `json:"branch"`
	Kind           domain.Kind `json:"kind"`
	Balance        string      `json:"balance"`
	OverdraftLimit string      `json:"overdraft_limit"`
}

func newAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		Owner:          a.Owner(),
		Number:         a.Number(),
		Branch:         a.Branch(),
		Kind:           a.Kind(),
		Balance:        a.Balance().String(),
		OverdraftLimit: a.OverdraftLimit().String(),
	}
}

// bindError writes a 400 response for a failed request binding, unwrapping
// validator field errors into readable messages.
func bindError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())

	var (
		ve     validator.ValidationErrors
		errMsg string
	)

	if errors.As(err, &ve) {
		field := ve[0]
		errMsg = field.Field() + web.GetErrorMsg(field)
	} else {
		errMsg = err.Error()
	}

	l.Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})
}

// domainStatus maps domain sentinel errors onto HTTP status codes.
// Unknown errors read as internal.
func domainStatus(err error) int {
	switch err {
	case domain.ErrAccountNotFound:
		return http.StatusNotFound
	case domain.ErrInsufficientFunds, domain.ErrAccountExists:
		return http.StatusConflict
	case domain.ErrInvalidAmount,
		domain.ErrInvalidRate,
		domain.ErrSelfTransfer,
		domain.ErrYieldUnsupported:
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func domainError(gctx *gin.Context, err error) {
	status := domainStatus(err)
	if status == http.StatusInternalServerError {
		zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Send()
		err = errorspkg.ErrInternal
	}

	gctx.JSON(status, web.Error(err))
}

type createRequest struct {
	Owner          string `json:"owner" binding:"required"`
	Kind           string `json:"kind" binding:"required,accountkind"`
	OpeningBalance string `json:"opening_balance"`
	OverdraftLimit string `json:"overdraft_limit"`
}

type accountData struct {
	Account accountResponse `json:"account"`
}

// Create handles http request to open an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	account, err := h.service.Create(ctx, req.Owner, domain.Kind(req.Kind), req.OpeningBalance, req.OverdraftLimit)
	if err != nil {
		domainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{newAccountResponse(account)}})
}

type numberRequest struct {
	Number string `uri:"number" binding:"required,numeric"`
}

// Get handles http request to read one account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req numberRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, err)
		return
	}

	account, err := h.service.Get(ctx, req.Number)
	if err != nil {
		domainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{newAccountResponse(account)}})
}

type listRequest struct {
	Owner string `form:"owner" binding:"required"`
}

type accountsData struct {
	Accounts []accountResponse `json:"accounts"`
}

// List handles http request to list accounts by owner.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, err)
		return
	}

	accounts, err := h.service.List(ctx, req.Owner)
	if err != nil {
		domainError(gctx, err)
		return
	}

	res := accountsData{Accounts: make([]accountResponse, 0, len(accounts))}
	for _, account := range accounts {
		res.Accounts = append(res.Accounts, newAccountResponse(account))
	}

	gctx.JSON(http.StatusOK, web.Response{Data: res})
}

type amountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type transactionData struct {
	Transaction domain.Transaction `json:"transaction"`
}

// Deposit handles http request to deposit into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri numberRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	tx, err := h.service.Deposit(ctx, uri.Number, req.Amount)
	if err != nil {
		domainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{tx}})
}

// Withdraw handles http request to withdraw from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri numberRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	tx, err := h.service.Withdraw(ctx, uri.Number, req.Amount)
	if err != nil {
		domainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{tx}})
}

type yieldRequest struct {
	Rate string `json:"rate" binding:"required"`
}

// AccrueYield handles http request to accrue yield on a savings account.
func (h *Handler) AccrueYield(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri numberRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req yieldRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	tx, err := h.service.AccrueYield(ctx, uri.Number, req.Rate)
	if err != nil {
		domainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{tx}})
}

type filterRequest struct {
	Kind string    `form:"kind" binding:"omitempty,oneof=DEPOSIT WITHDRAWAL TRANSFER"`
	From time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To   time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

func (r filterRequest) filter() domain.Filter {
	return domain.Filter{
		Kind: domain.TxKind(r.Kind),
		From: r.From,
		To:   r.To,
	}
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// Transactions handles http request to query the account's ledger entries.
func (h *Handler) Transactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri numberRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req filterRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, err)
		return
	}

	txs, err := h.service.Transactions(ctx, uri.Number, req.filter())
	if err != nil {
		domainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionsData{txs}})
}

type statementData struct {
	Lines []string `json:"lines"`
}

// Statement handles http request to render the account's statement lines.
func (h *Handler) Statement(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri numberRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req filterRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, err)
		return
	}

	lines, err := h.service.Statement(ctx, uri.Number, req.filter())
	if err != nil {
		domainError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: statementData{lines}})
}
