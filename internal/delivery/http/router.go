package http

import (
	"net/http"

	"go-clinic-booking/internal/delivery/http/handler"
	"go-clinic-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	slotHandler         *handler.SlotHandler
	appointmentHandler  *handler.AppointmentHandler
	labTestHandler      *handler.LabTestHandler
	calendarNoteHandler *handler.CalendarNoteHandler
	healthHandler       *handler.HealthHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	slotHandler *handler.SlotHandler,
	appointmentHandler *handler.AppointmentHandler,
	labTestHandler *handler.LabTestHandler,
	calendarNoteHandler *handler.CalendarNoteHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		slotHandler:         slotHandler,
		appointmentHandler:  appointmentHandler,
		labTestHandler:      labTestHandler,
		calendarNoteHandler: calendarNoteHandler,
		healthHandler:       healthHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Slot management (doctor only)
	doctorSlots := api.PathPrefix("/slots").Subrouter()
	doctorSlots.Use(r.authMiddleware.Authenticate)
	doctorSlots.Use(middleware.RequireDoctor)
	doctorSlots.HandleFunc("", r.slotHandler.PublishSlots).Methods(http.MethodPost)
	doctorSlots.HandleFunc("/mine", r.slotHandler.GetMySlots).Methods(http.MethodGet)
	doctorSlots.HandleFunc("/{id}", r.slotHandler.DeleteSlot).Methods(http.MethodDelete)

	// Slot browsing (any authenticated user)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.HandleFunc("/{doctorId}/slots", r.slotHandler.GetDoctorSlots).Methods(http.MethodGet)

	// Appointments
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Handle("", middleware.RequirePatient(http.HandlerFunc(r.appointmentHandler.ClaimSlot))).Methods(http.MethodPost)
	appointments.Handle("/mine", middleware.RequirePatient(http.HandlerFunc(r.appointmentHandler.GetMyAppointments))).Methods(http.MethodGet)
	appointments.Handle("/doctor", middleware.RequireDoctor(http.HandlerFunc(r.appointmentHandler.GetDoctorAppointments))).Methods(http.MethodGet)
	// Cancellation is open to both roles; ownership is checked in the usecase
	appointments.HandleFunc("/{id}", r.appointmentHandler.CancelAppointment).Methods(http.MethodDelete)

	// Lab tests
	labTests := api.PathPrefix("/lab-tests").Subrouter()
	labTests.Use(r.authMiddleware.Authenticate)
	labTests.Handle("", middleware.RequirePatient(http.HandlerFunc(r.labTestHandler.CreateLabTest))).Methods(http.MethodPost)
	labTests.HandleFunc("/mine", r.labTestHandler.GetMyLabTests).Methods(http.MethodGet)
	labTests.Handle("/{id}/result", middleware.RequireDoctor(http.HandlerFunc(r.labTestHandler.RecordResult))).Methods(http.MethodPut)

	// Calendar notes (owner scoped)
	notes := api.PathPrefix("/calendar-notes").Subrouter()
	notes.Use(r.authMiddleware.Authenticate)
	notes.HandleFunc("", r.calendarNoteHandler.CreateNote).Methods(http.MethodPost)
	notes.HandleFunc("", r.calendarNoteHandler.GetMyNotes).Methods(http.MethodGet)
	notes.HandleFunc("/{id}", r.calendarNoteHandler.UpdateNote).Methods(http.MethodPut)
	notes.HandleFunc("/{id}", r.calendarNoteHandler.DeleteNote).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
