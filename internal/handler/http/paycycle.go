package http

import (
	"encoding/json"
	"net/http"

	"github.com/gestipay/paie-backend-go/internal/domain/bulletin"
	"github.com/gestipay/paie-backend-go/internal/domain/paycycle"
	"github.com/gestipay/paie-backend-go/internal/handler/http/middleware"
	"github.com/gestipay/paie-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CycleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	CanPay(w http.ResponseWriter, r *http.Request)
	GenerateBulletins(w http.ResponseWriter, r *http.Request)
	ListBulletins(w http.ResponseWriter, r *http.Request)
	GetBulletin(w http.ResponseWriter, r *http.Request)
	UpdateBulletin(w http.ResponseWriter, r *http.Request)
	DeleteBulletin(w http.ResponseWriter, r *http.Request)
}

type cycleHandlerImpl struct {
	cycleService paycycle.CycleService
}

func NewCycleHandler(cycleService paycycle.CycleService) CycleHandler {
	return &cycleHandlerImpl{cycleService: cycleService}
}

func (h *cycleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req paycycle.CreateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.cycleService.Create(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay cycle created", result)
}

func (h *cycleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.cycleService.GetByID(r.Context(), principal, chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *cycleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.cycleService.List(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *cycleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req paycycle.UpdateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "cycleID")

	result, err := h.cycleService.Update(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay cycle updated", result)
}

func (h *cycleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.cycleService.Delete(r.Context(), principal, chi.URLParam(r, "cycleID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay cycle deleted", nil)
}

func (h *cycleHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.cycleService.Validate(r.Context(), principal, chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay cycle validated", result)
}

func (h *cycleHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.cycleService.Close(r.Context(), principal, chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay cycle closed", result)
}

func (h *cycleHandlerImpl) CanPay(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	canPay, err := h.cycleService.CanCashierPay(r.Context(), principal, chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, paycycle.CanPayResponse{CanPay: canPay})
}

func (h *cycleHandlerImpl) GenerateBulletins(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.cycleService.GenerateBulletins(r.Context(), principal, chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bulletins generated", result)
}

func (h *cycleHandlerImpl) GetBulletin(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.cycleService.GetBulletin(r.Context(), principal, chi.URLParam(r, "bulletinID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *cycleHandlerImpl) UpdateBulletin(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req bulletin.UpdateBulletinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "bulletinID")

	result, err := h.cycleService.UpdateBulletin(r.Context(), principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulletin updated", result)
}

func (h *cycleHandlerImpl) DeleteBulletin(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.cycleService.DeleteBulletin(r.Context(), principal, chi.URLParam(r, "bulletinID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulletin deleted", nil)
}

func (h *cycleHandlerImpl) ListBulletins(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.PrincipalFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.cycleService.ListBulletins(r.Context(), principal, chi.URLParam(r, "cycleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
