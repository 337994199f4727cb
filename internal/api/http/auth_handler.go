package http

import (
	"net/http"

	"github.com/Girthywoody/law-loyalty-backend/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	principal, token, err := h.svc.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"token":     token,
		"principal": principal,
	})
}

func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.RequestPasswordReset(r.Context(), body.Email); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, nil)
}
