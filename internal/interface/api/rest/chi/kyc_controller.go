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

// maxDocumentSize caps uploaded KYC/proof images at 10 MB.
const maxDocumentSize = 10 << 20

// KYCController serves identity verification: status lookup, document
// upload and submission.
type KYCController struct {
	kyc       interfaces.KYCService
	documents interfaces.DocumentStore
}

// NewKYCController registers http.Handlers with additional options.
func NewKYCController(
	kyc interfaces.KYCService,
	documents interfaces.DocumentStore,
	options ChiServerOptions,
) {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	c := KYCController{
		kyc:       kyc,
		documents: documents,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Get(options.BaseURL+"/kyc", c.GetStatus)
		r.Post(options.BaseURL+"/kyc", c.Submit)
		r.Post(options.BaseURL+"/documents", c.UploadDocument)
	})
}

// Get verification status (GET /api/user/kyc). The withdrawal form
// uses it to decide whether to route the user to submission first.
func (c *KYCController) GetStatus(w http.ResponseWriter, r *http.Request) {
	u, found := user.FromContext(r.Context())
	if !found {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	status, err := c.kyc.StatusOf(r.Context(), u.ID)
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	if err = json.NewEncoder(w).Encode(response.NewKYCStatus(status)); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}
}

// Submit identity data (POST /api/user/kyc).
func (c *KYCController) Submit(w http.ResponseWriter, r *http.Request) {
	if !header.IsApplicationJSONContentType(r) {
		ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	defer r.Body.Close()

	var payload request.SubmitKYC

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

	submit := &params.SubmitKYC{
		UserID:            u.ID,
		FullName:          payload.FullName,
		IDNumber:          payload.IDNumber,
		BankAccountHint:   payload.BankAccountHint,
		IDDocumentRef:     payload.IDDocumentRef,
		SelfieDocumentRef: payload.SelfieDocumentRef,
	}

	if payload.WithdrawalIntent != nil {
		if err := request.Validate(payload.WithdrawalIntent); err != nil {
			ErrorHandlerFunc(w, r, err)
			return
		}
		submit.Intent = &params.WithdrawalIntent{
			Amount: payload.WithdrawalIntent.Amount,
			Bank: entities.BankData{
				BankName:      payload.WithdrawalIntent.BankName,
				AccountNumber: payload.WithdrawalIntent.AccountNumber,
				AccountHolder: payload.WithdrawalIntent.AccountHolder,
			},
		}
	}

	if err := c.kyc.Submit(r.Context(), submit); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// Upload a document (POST /api/user/documents). Returns the stable
// reference to put into a subsequent KYC submission or approval.
func (c *KYCController) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if _, found := user.FromContext(r.Context()); !found {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid multipart form", errs.ErrInvalidRequest))
		return
	}

	file, fileHeader, err := r.FormFile("document")
	if err != nil {
		ErrorHandlerFunc(w, r, fmt.Errorf("%w: document file is required", errs.ErrInvalidRequest))
		return
	}
	defer file.Close()

	ref, err := c.documents.Save(r.Context(), fileHeader.Filename, file)
	if err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(response.DocumentRef{Ref: ref}); err != nil {
		ErrorHandlerFunc(w, r, err)
		return
	}
}
