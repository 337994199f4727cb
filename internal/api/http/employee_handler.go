package http

import (
	"net/http"
	"strconv"

	"github.com/Girthywoody/law-loyalty-backend/internal/catalog"
	"github.com/Girthywoody/law-loyalty-backend/internal/service"
)

type EmployeeHandler struct {
	svc service.EmployeeService
}

func NewEmployeeHandler(svc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

func (h *EmployeeHandler) Profile(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	profile, err := h.svc.Profile(r.Context(), actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *EmployeeHandler) RecordVisit(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	var body struct {
		LocationID string `json:"location_id,omitempty"`
	}
	if err := decodeBody(r, &body); err != nil {
		respondError(w, err)
		return
	}

	visit, err := h.svc.RecordVisit(r.Context(), actor, body.LocationID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, visit)
}

// CatalogHandler serves the static restaurant list so registration forms can
// populate their dropdowns.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"restaurants": h.catalog.Restaurants()})
}

// ActivityHandler exposes the admin audit trail.
type ActivityHandler struct {
	svc service.ActivityService
}

func NewActivityHandler(svc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

func (h *ActivityHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	entries, err := h.svc.ListRecent(r.Context(), actor, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"activity": entries})
}
