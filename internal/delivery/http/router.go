package http

import (
	"net/http"

	"bloodbank-backend/internal/delivery/http/handler"
	"bloodbank-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	donorHandler        *handler.DonorHandler
	patientHandler      *handler.PatientHandler
	inventoryHandler    *handler.InventoryHandler
	bloodRequestHandler *handler.BloodRequestHandler
	bloodbankHandler    *handler.BloodbankHandler
	staffHandler        *handler.StaffHandler
	notificationHandler *handler.NotificationHandler
	adminHandler        *handler.AdminHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	donorHandler *handler.DonorHandler,
	patientHandler *handler.PatientHandler,
	inventoryHandler *handler.InventoryHandler,
	bloodRequestHandler *handler.BloodRequestHandler,
	bloodbankHandler *handler.BloodbankHandler,
	staffHandler *handler.StaffHandler,
	notificationHandler *handler.NotificationHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		donorHandler:        donorHandler,
		patientHandler:      patientHandler,
		inventoryHandler:    inventoryHandler,
		bloodRequestHandler: bloodRequestHandler,
		bloodbankHandler:    bloodbankHandler,
		staffHandler:        staffHandler,
		notificationHandler: notificationHandler,
		adminHandler:        adminHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/donor", r.authHandler.RegisterDonor).Methods(http.MethodPost)
	auth.HandleFunc("/register/bloodbank", r.authHandler.RegisterBloodbank).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Donor self-service and directory (any authenticated user)
	donors := api.PathPrefix("/donors").Subrouter()
	donors.Use(r.authMiddleware.Authenticate)
	donors.HandleFunc("/me", r.donorHandler.Profile).Methods(http.MethodGet)
	donors.HandleFunc("/me", r.donorHandler.UpdateProfile).Methods(http.MethodPut)
	donors.HandleFunc("", r.donorHandler.Search).Methods(http.MethodGet)
	donors.HandleFunc("/search", r.donorHandler.Search).Methods(http.MethodGet)
	donors.HandleFunc("/search/mrid/{mrid}", r.donorHandler.SearchByMRID).Methods(http.MethodGet)
	donors.HandleFunc("/{id}", r.donorHandler.Get).Methods(http.MethodGet)
	donors.HandleFunc("/{id}/eligibility", r.donorHandler.Eligibility).Methods(http.MethodGet)

	// Donation requests (any authenticated user can file one)
	donationRequests := api.PathPrefix("/donation-requests").Subrouter()
	donationRequests.Use(r.authMiddleware.Authenticate)
	donationRequests.HandleFunc("", r.bloodbankHandler.CreateDonationRequest).Methods(http.MethodPost)

	// Notifications (any authenticated user)
	notifications := api.PathPrefix("/notifications").Subrouter()
	notifications.Use(r.authMiddleware.Authenticate)
	notifications.HandleFunc("", r.notificationHandler.List).Methods(http.MethodGet)
	notifications.HandleFunc("/send", r.notificationHandler.Send).Methods(http.MethodPost)
	notifications.HandleFunc("/read-all", r.notificationHandler.MarkAllRead).Methods(http.MethodPut)
	notifications.HandleFunc("/{id}/read", r.notificationHandler.MarkRead).Methods(http.MethodPut)

	// Hospital-scoped routes (blood bank owner and staff)
	bloodbank := api.PathPrefix("/bloodbank").Subrouter()
	bloodbank.Use(r.authMiddleware.Authenticate)
	bloodbank.Use(middleware.RequireBloodbankStaff)

	bloodbank.HandleFunc("/bookings", r.bloodbankHandler.Appointments).Methods(http.MethodGet)
	bloodbank.HandleFunc("/bookings", r.bloodbankHandler.CreateBooking).Methods(http.MethodPost)
	bloodbank.HandleFunc("/bookings/token/{token}", r.bloodbankHandler.FindByToken).Methods(http.MethodGet)
	bloodbank.HandleFunc("/bookings/{id}/status", r.bloodbankHandler.UpdateStatus).Methods(http.MethodPut)
	bloodbank.HandleFunc("/bookings/{id}/reschedule", r.bloodbankHandler.Reschedule).Methods(http.MethodPut)
	bloodbank.HandleFunc("/donation-requests", r.bloodbankHandler.DonationRequests).Methods(http.MethodGet)
	bloodbank.HandleFunc("/donation-requests/{id}/status", r.bloodbankHandler.UpdateDonationRequestStatus).Methods(http.MethodPut)
	bloodbank.HandleFunc("/donation-requests/{id}/reschedule", r.bloodbankHandler.RescheduleDonationRequest).Methods(http.MethodPut)
	bloodbank.HandleFunc("/analytics", r.bloodbankHandler.Analytics).Methods(http.MethodGet)
	bloodbank.HandleFunc("/visited-donors", r.bloodbankHandler.VisitedDonors).Methods(http.MethodGet)

	// Patient records
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequireBloodbankStaff)
	patients.HandleFunc("", r.patientHandler.Create).Methods(http.MethodPost)
	patients.HandleFunc("", r.patientHandler.List).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.Get).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.Update).Methods(http.MethodPut)
	patients.HandleFunc("/{id}", r.patientHandler.Delete).Methods(http.MethodDelete)

	// Inventory
	inventory := api.PathPrefix("/inventory").Subrouter()
	inventory.Use(r.authMiddleware.Authenticate)
	inventory.Use(middleware.RequireBloodbankStaff)
	inventory.HandleFunc("", r.inventoryHandler.Create).Methods(http.MethodPost)
	inventory.HandleFunc("", r.inventoryHandler.List).Methods(http.MethodGet)
	inventory.HandleFunc("/availability", r.inventoryHandler.Availability).Methods(http.MethodGet)
	inventory.HandleFunc("/expiring/soon", r.inventoryHandler.ExpiringSoon).Methods(http.MethodGet)
	inventory.HandleFunc("/{id}", r.inventoryHandler.Get).Methods(http.MethodGet)
	inventory.HandleFunc("/{id}", r.inventoryHandler.Update).Methods(http.MethodPut)
	inventory.HandleFunc("/{id}", r.inventoryHandler.Delete).Methods(http.MethodDelete)
	inventory.HandleFunc("/{id}/reserve", r.inventoryHandler.Reserve).Methods(http.MethodPut)

	// Blood requests against inventory
	bloodRequests := api.PathPrefix("/requests").Subrouter()
	bloodRequests.Use(r.authMiddleware.Authenticate)
	bloodRequests.Use(middleware.RequireBloodbankStaff)
	bloodRequests.HandleFunc("", r.bloodRequestHandler.Create).Methods(http.MethodPost)
	bloodRequests.HandleFunc("", r.bloodRequestHandler.List).Methods(http.MethodGet)
	bloodRequests.HandleFunc("/{id}", r.bloodRequestHandler.Get).Methods(http.MethodGet)
	bloodRequests.HandleFunc("/{id}/status", r.bloodRequestHandler.UpdateStatus).Methods(http.MethodPut)

	// Staff management (blood bank owner only)
	staff := api.PathPrefix("/bloodbank/staff").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireBloodbank)
	staff.HandleFunc("", r.staffHandler.Create).Methods(http.MethodPost)
	staff.HandleFunc("", r.staffHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/{id}", r.staffHandler.Delete).Methods(http.MethodDelete)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/users", r.adminHandler.Users).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/block", r.adminHandler.Block).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/unblock", r.adminHandler.Unblock).Methods(http.MethodPut)
	admin.HandleFunc("/donors", r.adminHandler.Donors).Methods(http.MethodGet)
	admin.HandleFunc("/bloodbanks", r.adminHandler.Bloodbanks).Methods(http.MethodGet)
	admin.HandleFunc("/admins", r.adminHandler.Admins).Methods(http.MethodGet)
	admin.HandleFunc("/patients", r.adminHandler.Patients).Methods(http.MethodGet)
	admin.HandleFunc("/donation-requests", r.adminHandler.DonationRequests).Methods(http.MethodGet)
	admin.HandleFunc("/activities", r.adminHandler.Activities).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
