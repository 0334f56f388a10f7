package httphandler

import (
	"errors"
	"net/http"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/middleware"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/usecase"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/response"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/xerrors"
)

type ActivityHandler struct {
	uc *usecase.ActivityUsecase
}

func NewActivityHandler(uc *usecase.ActivityUsecase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	items, err := h.uc.List(r.Context(), userID)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "user not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "failed to list activities")
		return
	}
	response.JSON(w, http.StatusOK, items)
}
