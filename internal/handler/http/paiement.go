package http

import (
	"encoding/json"
	"net/http"

	"github.com/gestipay/paie-backend-go/internal/domain/paiement"
	"github.com/gestipay/paie-backend-go/internal/handler/http/middleware"
	"github.com/gestipay/paie-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PaiementHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListByBulletin(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type paiementHandlerImpl struct {
	paiementService paiement.PaiementService
}

func NewPaiementHandler(paiementService paiement.PaiementService) PaiementHandler {
	return &paiementHandlerImpl{paiementService: paiementService}
}

func (h *paiementHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req paiement.CreatePaiementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.BulletinID = chi.URLParam(r, "bulletinID")

	result, err := h.paiementService.Create(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Paiement recorded", result)
}

func (h *paiementHandlerImpl) ListByBulletin(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.paiementService.ListByBulletin(r.Context(), principal, chi.URLParam(r, "bulletinID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paiementHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req paiement.UpdatePaiementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "paiementID")

	result, err := h.paiementService.Update(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Paiement updated", result)
}

func (h *paiementHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.paiementService.Delete(r.Context(), principal, chi.URLParam(r, "paiementID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Paiement deleted", nil)
}

func (h *paiementHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.paiementService.Cancel(r.Context(), principal, chi.URLParam(r, "paiementID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Paiement cancelled", nil)
}
