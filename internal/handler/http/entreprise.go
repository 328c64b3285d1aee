package http

import (
	"encoding/json"
	"net/http"

	"github.com/gestipay/paie-backend-go/internal/domain/entreprise"
	"github.com/gestipay/paie-backend-go/internal/handler/http/middleware"
	"github.com/gestipay/paie-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EntrepriseHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type entrepriseHandlerImpl struct {
	entrepriseService entreprise.EntrepriseService
}

func NewEntrepriseHandler(entrepriseService entreprise.EntrepriseService) EntrepriseHandler {
	return &entrepriseHandlerImpl{entrepriseService: entrepriseService}
}

func (h *entrepriseHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req entreprise.CreateEntrepriseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.entrepriseService.Create(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Enterprise created", result)
}

func (h *entrepriseHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.entrepriseService.GetByID(r.Context(), principal, chi.URLParam(r, "entrepriseID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *entrepriseHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.entrepriseService.List(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
