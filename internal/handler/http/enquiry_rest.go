package httphandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/middleware"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/usecase"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/response"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/xerrors"
)

type EnquiryHandler struct {
	uc *usecase.EnquiryUsecase
}

func NewEnquiryHandler(uc *usecase.EnquiryUsecase) *EnquiryHandler {
	return &EnquiryHandler{uc: uc}
}

type enquiryRequest struct {
	PropertyID string `json:"property_id"`
	Message    string `json:"message"`
}

func (h *EnquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req enquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}

	e, err := h.uc.Create(r.Context(), userID, req.PropertyID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrNotFound):
			response.Error(w, http.StatusNotFound, "property not found")
		case errors.Is(err, xerrors.ErrInvalidRequest):
			response.Error(w, http.StatusBadRequest, "invalid enquiry")
		default:
			response.Error(w, http.StatusInternalServerError, "failed to create enquiry")
		}
		return
	}
	response.JSON(w, http.StatusCreated, e)
}

func (h *EnquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	items, err := h.uc.ListForUser(r.Context(), userID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "failed to list enquiries")
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *EnquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	if err := h.uc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "enquiry not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "failed to delete enquiry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
