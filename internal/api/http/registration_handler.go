package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
	"github.com/Girthywoody/law-loyalty-backend/internal/service"
)

type RegistrationHandler struct {
	svc service.RegistrationService
}

func NewRegistrationHandler(svc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

// Submit is the only unauthenticated mutation: prospective employees have no
// account yet.
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub service.RegistrationSubmission
	if err := decodeBody(r, &sub); err != nil {
		respondError(w, err)
		return
	}

	req, err := h.svc.Submit(r.Context(), sub)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, req)
}

func (h *RegistrationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	var restaurants []string
	if raw := r.URL.Query().Get("restaurants"); raw != "" {
		restaurants = strings.Split(raw, ",")
	}

	reqs, err := h.svc.ListPending(r.Context(), actor, restaurants)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"registrations": reqs})
}

func (h *RegistrationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	emp, err := h.svc.Approve(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		// The promotion committed even when the setup email could not go
		// out; report the employee with a warning instead of failing.
		if errors.Is(err, domain.ErrCredentialIssuance) {
			respondJSON(w, http.StatusOK, map[string]any{
				"employee": emp,
				"warning":  err.Error(),
			})
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"employee": emp})
}

func (h *RegistrationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	if err := h.svc.Reject(r.Context(), actor, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *RegistrationHandler) UpdateEmployeeStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	var body struct {
		Status domain.EmployeeStatus `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	emp, err := h.svc.UpdateEmployeeStatus(r.Context(), actor, mux.Vars(r)["id"], body.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"employee": emp})
}

func (h *RegistrationHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	emps, err := h.svc.ListEmployees(r.Context(), actor, mux.Vars(r)["restaurantId"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"employees": emps})
}
