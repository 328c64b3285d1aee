package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gestipay/paie-backend-go/internal/handler/http/middleware"
	"github.com/gestipay/paie-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	entrepriseHandler EntrepriseHandler,
	cycleHandler CycleHandler,
	paiementHandler PaiementHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "gestipay"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// SSE stream authenticates with a short-lived token in the query
		// string, outside the JWT header middleware.
		r.Get("/dashboard/stream", func(w http.ResponseWriter, req *http.Request) {
			dashboardHandler.Stream(w, req)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/entreprises", func(r chi.Router) {
				r.Get("/", entrepriseHandler.List)
				r.Post("/", entrepriseHandler.Create)
				r.Get("/{entrepriseID}", entrepriseHandler.Get)
			})

			r.Route("/cycles", func(r chi.Router) {
				r.Get("/", cycleHandler.List)
				r.Post("/", cycleHandler.Create)

				r.Route("/{cycleID}", func(r chi.Router) {
					r.Get("/", cycleHandler.Get)
					r.Put("/", cycleHandler.Update)
					r.Delete("/", cycleHandler.Delete)

					r.Post("/validate", cycleHandler.Validate)
					r.Post("/close", cycleHandler.Close)
					r.Get("/can-pay", cycleHandler.CanPay)

					r.Post("/bulletins", cycleHandler.GenerateBulletins)
					r.Get("/bulletins", cycleHandler.ListBulletins)
				})
			})

			r.Route("/bulletins/{bulletinID}", func(r chi.Router) {
				r.Get("/", cycleHandler.GetBulletin)
				r.Put("/", cycleHandler.UpdateBulletin)
				r.Delete("/", cycleHandler.DeleteBulletin)
				r.Route("/paiements", func(r chi.Router) {
					r.Post("/", paiementHandler.Create)
					r.Get("/", paiementHandler.ListByBulletin)
				})
			})
			r.Route("/paiements/{paiementID}", func(r chi.Router) {
				r.Put("/", paiementHandler.Update)
				r.Delete("/", paiementHandler.Delete)
				r.Post("/cancel", paiementHandler.Cancel)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/kpis", dashboardHandler.GetKPIs)
				r.Get("/sse-token", dashboardHandler.GetSSEToken)
			})
		})
	})

	return r
}
