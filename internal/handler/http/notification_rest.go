package httphandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/middleware"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/usecase"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/response"
	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/xerrors"
)

type NotificationHandler struct {
	uc *usecase.NotificationUsecase
}

func NewNotificationHandler(uc *usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// idList accepts both "id": "x" and "id": ["x", "y"].
type idList []string

func (l *idList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*l = idList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

type idRequest struct {
	ID idList `json:"id"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	items, err := h.uc.List(r.Context(), userID)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "user not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req idRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.ID) == 0 {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}

	updated, err := h.uc.MarkRead(r.Context(), userID, req.ID)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrNothingToUpdate):
			response.Error(w, http.StatusBadRequest, "nothing to update")
		case errors.Is(err, xerrors.ErrNotFound):
			response.Error(w, http.StatusNotFound, "user not found")
		default:
			response.Error(w, http.StatusInternalServerError, "failed to mark notifications read")
		}
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req idRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.ID) == 0 {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}

	if err := h.uc.Delete(r.Context(), userID, req.ID); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "user not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "failed to delete notifications")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
