package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stayhub/wallet-service/internal/application/errs"
	"github.com/stayhub/wallet-service/internal/application/interfaces"
	"github.com/stayhub/wallet-service/internal/application/params"
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
	"github.com/stayhub/wallet-service/internal/interface/api/rest/header"
	"github.com/stayhub/wallet-service/internal/interface/api/rest/request"
	"github.com/stayhub/wallet-service/internal/interface/api/rest/response"
)

// AdminController serves the review surface: listing and resolving
// withdrawal requests and KYC submissions.
type AdminController struct {
	withdrawals interfaces.WithdrawalService
	kyc         interfaces.KYCService
}

// NewAdminController registers http.Handlers with additional options.
func NewAdminController(
	withdrawals interfaces.WithdrawalService,
	kyc interfaces.KYCService,
	options ChiServerOptions,
) {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	c := AdminController{
		withdrawals: withdrawals,
		kyc:         kyc,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Get(options.BaseURL+"/withdrawals", c.ListWithdrawals)
		r.Post(options.BaseURL+"/withdrawals/{requestID}/approve", c.ApproveWithdrawal)
		r.Post(options.BaseURL+"/withdrawals/{requestID}/reject", c.RejectWithdrawal)
		r.Delete(options.BaseURL+"/withdrawals/{requestID}", c.DeleteWithdrawal)
		r.Post(options.BaseURL+"/kyc/{userID}/resolve", c.ResolveKYC)
	})
}

// List withdrawal requests (GET /api/admin/withdrawals).
func (c *AdminController) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	filter := entities.WithdrawalFilter{
		Status: entities.WithdrawalStatus(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
	}

	requests, err := c.withdrawals.List(r.Context(), filter)
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	if err = json.NewEncoder(w).Encode(response.NewWithdrawalRequests(requests)); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}
}

// Approve a pending request (POST /api/admin/withdrawals/{requestID}/approve).
func (c *AdminController) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromURL(r)
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	if !header.IsApplicationJSONContentType(r) {
		ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	defer r.Body.Close()

	var payload request.ApproveWithdrawal

	if err = json.NewDecoder(r.Body).Decode(&payload); err != nil {
		ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	if err = request.Validate(&payload); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	approve := params.NewApproveWithdrawal(requestID, payload.TransactionReference, payload.ProofDocumentRef)

	if err = c.withdrawals.Approve(r.Context(), approve); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}
}

// Reject a pending request and return the funds
// (POST /api/admin/withdrawals/{requestID}/reject).
func (c *AdminController) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromURL(r)
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	if !header.IsApplicationJSONContentType(r) {
		ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	defer r.Body.Close()

	var payload request.RejectWithdrawal

	if err = json.NewDecoder(r.Body).Decode(&payload); err != nil {
		ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	if err = request.Validate(&payload); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	if err = c.withdrawals.Reject(r.Context(), params.NewRejectWithdrawal(requestID, payload.AdminNote)); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}
}

// Remove a request record without touching balances
// (DELETE /api/admin/withdrawals/{requestID}).
func (c *AdminController) DeleteWithdrawal(w http.ResponseWriter, r *http.Request) {
	requestID, err := requestIDFromURL(r)
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	if err = c.withdrawals.Delete(r.Context(), requestID); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Resolve a pending KYC submission (POST /api/admin/kyc/{userID}/resolve).
func (c *AdminController) ResolveKYC(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "userID")

	id, err := strconv.Atoi(rawID)
	if err != nil {
		ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid user id %q", errs.ErrInvalidRequest, rawID))
		return
	}

	if !header.IsApplicationJSONContentType(r) {
		ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	defer r.Body.Close()

	var payload request.ResolveKYC

	if err = json.NewDecoder(r.Body).Decode(&payload); err != nil {
		ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	if err = request.Validate(&payload); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	resolve := params.NewResolveKYC(user.ID(id), entities.KYCStatus(payload.Decision), payload.Reason)

	if err = c.kyc.Resolve(r.Context(), resolve); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}
}

func requestIDFromURL(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "requestID")

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid request id %q", errs.ErrInvalidRequest, raw)
	}

	return id, nil
}
