package handlers

import (
	"encoding/json"
	"net/http"

	"files-manager/internal/dto"
	"files-manager/internal/middleware"
	"files-manager/internal/services"
	"files-manager/utils/response"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /users.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, dto.UserResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}

// Connect handles GET /connect, exchanging a Basic auth header for a token.
func (h *AuthHandler) Connect(w http.ResponseWriter, r *http.Request) {
	token, err := h.auth.Login(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		serviceError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

// Disconnect handles GET /disconnect.
func (h *AuthHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), r.Header.Get("X-Token")); err != nil {
		serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /users/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.auth.UserByID(r.Context(), userID)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.UserResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}
