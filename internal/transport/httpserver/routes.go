package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"hr-interviews-go/internal/config"
	"hr-interviews-go/internal/transport/httpserver/handler"
	"hr-interviews-go/internal/transport/httpserver/middleware"
	"hr-interviews-go/pkg/logger"
)

// NewRouter mounts the REST API under /api. events serves the websocket
// change stream and may be nil.
func NewRouter(cfg config.Config, handlers *handler.Handlers, events http.Handler, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		if events != nil {
			r.Handle("/events", events)
		}

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(30 * time.Second))

			r.Get("/health", handlers.Common.Health)

			r.Get("/employees", handlers.Employees.ListEmployees)
			r.Post("/employees", handlers.Employees.CreateEmployee)
			r.Get("/employees/{id}", handlers.Employees.GetEmployee)
			r.Put("/employees/{id}", handlers.Employees.UpdateEmployee)
			r.Delete("/employees/{id}", handlers.Employees.DeleteEmployee)

			r.Get("/interviews", handlers.Interviews.ListInterviews)
			r.Post("/interviews", handlers.Interviews.CreateInterview)
			r.Put("/interviews/{id}", handlers.Interviews.UpdateInterview)
			r.Delete("/interviews/{id}", handlers.Interviews.DeleteInterview)
		})
	})

	return otelhttp.NewHandler(r, "http.server",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
