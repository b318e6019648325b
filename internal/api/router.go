package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/healthscript/healthscript-backend/internal/app"
	"github.com/healthscript/healthscript-backend/internal/auth"
	"github.com/healthscript/healthscript-backend/internal/ocr"
	"github.com/healthscript/healthscript-backend/internal/realtime"
	"github.com/healthscript/healthscript-backend/internal/records"
	"github.com/healthscript/healthscript-backend/internal/store"
)

type Server struct {
	cfg      app.Config
	build    app.Build
	logger   *slog.Logger
	accounts *auth.Service
	tokens   *auth.TokenService
	records  *records.Service
	ocr      *ocr.Service
	realtime *realtime.Hub
	limiter  *ipRateLimiter
}

func NewServer(cfg app.Config, logger *slog.Logger, repo store.Repository) *Server {
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	realtimeHub := realtime.NewHub(logger)
	recordsService := records.NewService(repo)
	recordsService.SetBroadcaster(realtimeHub)

	return &Server{
		cfg:      cfg,
		build:    app.CurrentBuild(),
		logger:   logger,
		accounts: auth.NewService(repo, tokens),
		tokens:   tokens,
		records:  recordsService,
		ocr:      ocr.NewService(cfg.OCRMaxBytes),
		realtime: realtimeHub,
		limiter:  newIPRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
	}
}

func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	if s.cfg.TrustProxy {
		router.Use(middleware.RealIP)
	}
	router.Use(middleware.Recoverer)
	router.Use(s.corsHandler())
	router.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))
	router.Use(middleware.SetHeader("X-Frame-Options", "DENY"))
	router.Use(middleware.SetHeader("Referrer-Policy", "no-referrer"))
	router.Use(middleware.Compress(5, "application/json"))
	if !s.cfg.IsProduction() {
		router.Use(middleware.Logger)
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.build.Version})
	})

	router.Route("/api", func(api chi.Router) {
		api.Use(s.limiter.middleware)

		api.Post("/auth/login", s.login)
		api.Post("/auth/register", s.register)
		api.Post("/auth/forgot-password", s.forgotPassword)

		api.Get("/doctors", s.listDoctors)
		api.Get("/doctors/{id}", s.getDoctor)

		api.Post("/ocr/process", s.processOCR)

		api.Group(func(authed chi.Router) {
			authed.Use(func(next http.Handler) http.Handler {
				return s.withIdentity(next, s.cfg.IsProduction())
			})

			authed.Get("/prescriptions", s.listPrescriptions)
			authed.Post("/prescriptions", s.createPrescription)
			authed.Get("/prescriptions/{id}", s.getPrescription)
			authed.Put("/prescriptions/{id}", s.updatePrescription)
			authed.Delete("/prescriptions/{id}", s.deletePrescription)

			authed.Get("/appointments", s.listAppointments)
			authed.Post("/appointments", s.createAppointment)
			authed.Get("/appointments/{id}", s.getAppointment)
			authed.Put("/appointments/{id}", s.updateAppointment)
			authed.Delete("/appointments/{id}", s.cancelAppointment)

			authed.Get("/notifications", s.listNotifications)
			authed.Post("/notifications", s.createNotification)
			authed.Put("/notifications/{id}/read", s.markNotificationRead)

			authed.Get("/user/profile", s.getProfile)
			authed.Put("/user/profile", s.updateProfile)

			authed.Get("/health/stats", s.healthStats)

			authed.Get("/realtime", s.realtimeWS)
		})
	})

	return router
}

func (s *Server) corsHandler() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
	}).Handler
}
