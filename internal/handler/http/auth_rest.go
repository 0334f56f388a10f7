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

type AuthHandler struct {
	uc *usecase.UserUsecase
}

func NewAuthHandler(uc *usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Device   string `json:"device"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type authResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Token    string `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}

	u, token, err := h.uc.Register(r.Context(), req.Email, req.Password, req.FullName, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrUserAlreadyExists):
			response.Error(w, http.StatusConflict, "user already exists")
		case errors.Is(err, xerrors.ErrEmailRequired), errors.Is(err, xerrors.ErrPasswordRequired):
			response.Error(w, http.StatusBadRequest, err.Error())
		default:
			response.Error(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}
	response.JSON(w, http.StatusCreated, authResponse{
		UserID: u.ID, Email: u.Email, FullName: u.FullName, Token: token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}

	u, token, err := h.uc.Login(r.Context(), req.Email, req.Password, req.Device)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		response.Error(w, http.StatusInternalServerError, "login failed")
		return
	}
	response.JSON(w, http.StatusOK, authResponse{
		UserID: u.ID, Email: u.Email, FullName: u.FullName, Token: token,
	})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}

	if err := h.uc.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, xerrors.ErrInvalidCredentials):
			response.Error(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, xerrors.ErrPasswordRequired):
			response.Error(w, http.StatusBadRequest, "password required")
		case errors.Is(err, xerrors.ErrNotFound):
			response.Error(w, http.StatusNotFound, "user not found")
		default:
			response.Error(w, http.StatusInternalServerError, "password change failed")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}

	u, err := h.uc.UpdateProfile(r.Context(), userID, req.FullName, req.Phone)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "user not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "profile update failed")
		return
	}
	response.JSON(w, http.StatusOK, u)
}
