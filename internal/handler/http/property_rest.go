package httphandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/middleware"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/usecase"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/response"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/xerrors"
)

type PropertyHandler struct {
	uc *usecase.PropertyUsecase
}

func NewPropertyHandler(uc *usecase.PropertyUsecase) *PropertyHandler {
	return &PropertyHandler{uc: uc}
}

type propertyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Price       int64  `json:"price"`
	Bedrooms    int    `json:"bedrooms"`
	Bathrooms   int    `json:"bathrooms"`
	AreaSqft    int    `json:"area_sqft"`
}

func (r propertyRequest) toInput() usecase.PropertyInput {
	return usecase.PropertyInput{
		Title:       r.Title,
		Description: r.Description,
		Address:     r.Address,
		City:        r.City,
		Price:       r.Price,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		AreaSqft:    r.AreaSqft,
	}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}

	pr, err := h.uc.Create(r.Context(), userID, req.toInput())
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidRequest) {
			response.Error(w, http.StatusBadRequest, "title and address required")
			return
		}
		response.Error(w, http.StatusInternalServerError, "failed to create property")
		return
	}
	response.JSON(w, http.StatusCreated, pr)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	pr, err := h.uc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "property not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "failed to fetch property")
		return
	}
	response.JSON(w, http.StatusOK, pr)
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := h.uc.List(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "failed to list properties")
		return
	}
	response.JSON(w, http.StatusOK, items)
}

// ListMine returns the authenticated user's own listings.
func (h *PropertyHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	items, err := h.uc.ListByOwner(r.Context(), userID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "failed to list properties")
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}

	pr, err := h.uc.Update(r.Context(), userID, chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrNotFound):
			response.Error(w, http.StatusNotFound, "property not found")
		case errors.Is(err, xerrors.ErrForbidden):
			response.Error(w, http.StatusForbidden, "not your property")
		default:
			response.Error(w, http.StatusInternalServerError, "failed to update property")
		}
		return
	}
	response.JSON(w, http.StatusOK, pr)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	if err := h.uc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		switch {
		case errors.Is(err, xerrors.ErrNotFound):
			response.Error(w, http.StatusNotFound, "property not found")
		case errors.Is(err, xerrors.ErrForbidden):
			response.Error(w, http.StatusForbidden, "not your property")
		default:
			response.Error(w, http.StatusInternalServerError, "failed to delete property")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
