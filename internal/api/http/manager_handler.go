package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Girthywoody/law-loyalty-backend/internal/service"
)

type ManagerHandler struct {
	svc service.ManagerService
}

func NewManagerHandler(svc service.ManagerService) *ManagerHandler {
	return &ManagerHandler{svc: svc}
}

func (h *ManagerHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	var body struct {
		FirstName   string   `json:"first_name"`
		LastName    string   `json:"last_name"`
		Email       string   `json:"email"`
		Restaurants []string `json:"restaurants"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	mgr, err := h.svc.Create(r.Context(), actor, body.FirstName, body.LastName, body.Email, body.Restaurants)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, mgr)
}

func (h *ManagerHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	mgr, err := h.svc.Get(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, mgr)
}

func (h *ManagerHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	mgrs, err := h.svc.List(r.Context(), actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"managers": mgrs})
}

func (h *ManagerHandler) UpdateRestaurants(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	var body struct {
		Restaurants []string `json:"restaurants"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	mgr, err := h.svc.UpdateRestaurants(r.Context(), actor, mux.Vars(r)["id"], body.Restaurants)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, mgr)
}

func (h *ManagerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	if err := h.svc.Delete(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
