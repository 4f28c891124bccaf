package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stayhub/wallet-service/internal/application/errs"
	"github.com/stayhub/wallet-service/internal/application/interfaces"
	"github.com/stayhub/wallet-service/internal/application/params"
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
	"github.com/stayhub/wallet-service/internal/interface/api/rest/header"
	"github.com/stayhub/wallet-service/internal/interface/api/rest/request"
	"github.com/stayhub/wallet-service/internal/interface/api/rest/response"
)

// WalletController serves the user-facing wallet surface: balance,
// withdrawal creation and own request history.
type WalletController struct {
	accounts    interfaces.AccountService
	withdrawals interfaces.WithdrawalService
}

// NewWalletController registers http.Handlers with additional options.
func NewWalletController(
	accounts interfaces.AccountService,
	withdrawals interfaces.WithdrawalService,
	options ChiServerOptions,
) {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	c := WalletController{
		accounts:    accounts,
		withdrawals: withdrawals,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Get(options.BaseURL+"/balance", c.GetBalance)
		r.Get(options.BaseURL+"/withdrawals", c.GetWithdrawals)
		r.Post(options.BaseURL+"/withdrawals", c.CreateWithdrawal)
	})
}

// Get user balance (GET /api/user/balance).
func (c *WalletController) GetBalance(w http.ResponseWriter, r *http.Request) {
	u, found := user.FromContext(r.Context())
	if !found {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	account, err := c.accounts.GetAccount(r.Context(), u.ID)
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	if err = json.NewEncoder(w).Encode(response.NewGetBalance(account)); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}
}

// Create withdrawal request (POST /api/user/withdrawals).
func (c *WalletController) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	if !header.IsApplicationJSONContentType(r) {
		ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	defer r.Body.Close()

	var payload request.CreateWithdrawal

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	if err := request.Validate(&payload); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	u, found := user.FromContext(r.Context())
	if !found {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	create := params.NewCreateWithdrawal(u.ID, payload.Amount, entities.BankData{
		BankName:      payload.BankName,
		AccountNumber: payload.AccountNumber,
		AccountHolder: payload.AccountHolder,
	})

	created, err := c.withdrawals.Create(r.Context(), create)
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(response.NewWithdrawalRequest(created)); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}
}

// Get all user withdrawals (GET /api/user/withdrawals).
func (c *WalletController) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	u, found := user.FromContext(r.Context())
	if !found {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	withdrawals, err := c.withdrawals.ListByUser(r.Context(), u.ID)
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	if err = json.NewEncoder(w).Encode(response.NewWithdrawalRequests(withdrawals)); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}
}
