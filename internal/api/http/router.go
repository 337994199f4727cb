package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Girthywoody/law-loyalty-backend/internal/catalog"
	"github.com/Girthywoody/law-loyalty-backend/internal/security"
	"github.com/Girthywoody/law-loyalty-backend/internal/service"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth         *AuthHandler
	Registration *RegistrationHandler
	Manager      *ManagerHandler
	Employee     *EmployeeHandler
	Catalog      *CatalogHandler
	Activity     *ActivityHandler
}

// NewHandlers wires handlers from services.
func NewHandlers(
	authSvc service.AuthService,
	regSvc service.RegistrationService,
	mgrSvc service.ManagerService,
	empSvc service.EmployeeService,
	actSvc service.ActivityService,
	cat *catalog.Catalog,
) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(authSvc),
		Registration: NewRegistrationHandler(regSvc),
		Manager:      NewManagerHandler(mgrSvc),
		Employee:     NewEmployeeHandler(empSvc),
		Catalog:      NewCatalogHandler(cat),
		Activity:     NewActivityHandler(actSvc),
	}
}

// NewRouter builds the API routing table. Registration submission, login,
// password reset, and the catalog are public; everything else requires a
// session token.
func NewRouter(h *Handlers, tokens security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	// Public endpoints
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/password-reset", h.Auth.RequestPasswordReset).Methods(http.MethodPost)
	api.HandleFunc("/registrations", h.Registration.Submit).Methods(http.MethodPost)
	api.HandleFunc("/restaurants", h.Catalog.List).Methods(http.MethodGet)

	// Authenticated endpoints
	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))

	authed.HandleFunc("/registrations", h.Registration.ListPending).Methods(http.MethodGet)
	authed.HandleFunc("/registrations/{id}/approve", h.Registration.Approve).Methods(http.MethodPost)
	authed.HandleFunc("/registrations/{id}/reject", h.Registration.Reject).Methods(http.MethodPost)

	authed.HandleFunc("/employees/me", h.Employee.Profile).Methods(http.MethodGet)
	authed.HandleFunc("/employees/me/visits", h.Employee.RecordVisit).Methods(http.MethodPost)
	authed.HandleFunc("/employees/{id}/status", h.Registration.UpdateEmployeeStatus).Methods(http.MethodPatch)
	authed.HandleFunc("/restaurants/{restaurantId}/employees", h.Registration.ListEmployees).Methods(http.MethodGet)

	authed.HandleFunc("/managers", h.Manager.Create).Methods(http.MethodPost)
	authed.HandleFunc("/managers", h.Manager.List).Methods(http.MethodGet)
	authed.HandleFunc("/managers/{id}", h.Manager.Get).Methods(http.MethodGet)
	authed.HandleFunc("/managers/{id}", h.Manager.UpdateRestaurants).Methods(http.MethodPut)
	authed.HandleFunc("/managers/{id}", h.Manager.Delete).Methods(http.MethodDelete)

	authed.HandleFunc("/activity", h.Activity.ListRecent).Methods(http.MethodGet)

	return router
}
