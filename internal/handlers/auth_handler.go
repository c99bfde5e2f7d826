package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/services"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/pkg/utils"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Signup(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.users.Login(r.Context(), &req)
	if err != nil {
		// Credential failures come back as validation errors; report 401
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}
