package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"fleetdesk-go/internal/config"
	"fleetdesk-go/internal/supabase"
	"fleetdesk-go/internal/transport/httpserver/handler"
	authmw "fleetdesk-go/internal/transport/httpserver/middleware"
	"fleetdesk-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *supabase.AuthClient, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORS.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/signup", handlers.SignUp)
		r.Post("/auth/signin", handlers.SignIn)

		guard := authmw.NewSupabaseAuth(cfg.Supabase, auth, log)
		r.Group(func(r chi.Router) {
			r.Use(guard.Middleware)

			r.Get("/auth/me", handlers.AuthMe)
			r.Post("/auth/signout", handlers.SignOut)

			r.Get("/drivers", handlers.ListDrivers)
			r.Post("/drivers", handlers.CreateDriver)
			r.Get("/drivers/{id}", handlers.GetDriver)
			r.Put("/drivers/{id}", handlers.UpdateDriver)
			r.Delete("/drivers/{id}", handlers.DeleteDriver)
			r.Put("/drivers/{id}/vehicle", handlers.ChangeDriverVehicle)
			r.Post("/drivers/{id}/photos", handlers.AttachDriverPhoto)

			r.Get("/vehicles", handlers.ListVehicles)
			r.Post("/vehicles", handlers.CreateVehicle)
			r.Get("/vehicles/{id}", handlers.GetVehicle)
			r.Put("/vehicles/{id}", handlers.UpdateVehicle)
			r.Delete("/vehicles/{id}", handlers.DeleteVehicle)

			r.Get("/assignments", handlers.AssignmentOverview)
			r.Post("/assignments", handlers.Assign)
			r.Delete("/assignments/{driverID}", handlers.Unassign)

			r.Get("/fines", handlers.ListFines)
			r.Post("/fines", handlers.CreateFine)
			r.Get("/fines/{id}", handlers.GetFine)
			r.Put("/fines/{id}", handlers.UpdateFine)
			r.Delete("/fines/{id}", handlers.DeleteFine)
			r.Get("/fines/{id}/designation", handlers.FineDesignation)

			r.Get("/payments", handlers.ListPaymentReceipts)
			r.Post("/payments", handlers.CreatePaymentReceipt)
			r.Delete("/payments/{id}", handlers.DeletePaymentReceipt)
		})
	})

	return r
}
