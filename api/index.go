package api

import (
	"fmt"
	"net/http"
	"time"

	"shift-planner-backend/pkg/config"
	"shift-planner-backend/pkg/database"
	"shift-planner-backend/pkg/handlers"
	customMiddleware "shift-planner-backend/pkg/middleware"
	"shift-planner-backend/pkg/scheduling"
	"shift-planner-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter wires the whole API: one chi router, the middleware chain, and
// every route the scheduling core exposes.
func NewRouter(cfg *config.Config, store database.Store, log *zap.Logger) *chi.Mux {
	router := chi.NewRouter()
	setupMiddleware(router, cfg, log)
	setupRoutes(router, cfg, store, log)
	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, log *zap.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(customMiddleware.Normalize())
	router.Use(customMiddleware.Logger(log))
	router.Use(customMiddleware.Recovery(cfg, log))
	router.Use(customMiddleware.CORS(cfg))
	router.Use(middleware.Timeout(25 * time.Second))
	router.Use(middleware.Compress(5))

	if cfg.IsDevelopment() {
		router.Use(middleware.Heartbeat("/ping"))
	}
}

func setupRoutes(router *chi.Mux, cfg *config.Config, store database.Store, log *zap.Logger) {
	notifier := &scheduling.LogNotifier{Log: log}
	inviteService := scheduling.NewInviteService(store, cfg.InviteTTL, log)
	onboardingService := scheduling.NewOnboardingService(store, notifier, log)
	scheduleService := scheduling.NewScheduleService(store, notifier, cfg.DeadlineOffsetDays, log)

	authHandler := handlers.NewAuthHandler(cfg, store)
	orgsHandler := handlers.NewOrgsHandler(cfg, store, inviteService)
	onboardingHandler := handlers.NewOnboardingHandler(cfg, store, inviteService, onboardingService)
	schedulesHandler := handlers.NewSchedulesHandler(cfg, scheduleService)
	availabilityHandler := handlers.NewAvailabilityHandler(cfg, store)

	router.Get("/", authHandler.HealthCheck)

	// Public invite-link validation, reachable from the invite URL itself.
	router.Get("/invite", onboardingHandler.ValidateInvite)

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Auth(cfg))

			r.Get("/user/profile", authHandler.GetProfile)

			r.Route("/orgs", func(r chi.Router) {
				r.Get("/", orgsHandler.ListMyOrganizations)
				r.Post("/", orgsHandler.CreateOrganization)

				r.Route("/{orgID}", func(r chi.Router) {
					r.Delete("/", orgsHandler.DeleteOrganization)
					r.Put("/roles", orgsHandler.UpdateRoles)
					r.Get("/members", orgsHandler.ListMembers)
					r.Delete("/members/{userID}", orgsHandler.RemoveMember)
					r.Post("/invites", orgsHandler.IssueInvite)

					r.Post("/join", onboardingHandler.RequestJoin)
					r.Get("/pending", onboardingHandler.ListPending)
					r.Post("/pending/{userID}/approve", onboardingHandler.Approve)
					r.Post("/pending/{userID}/deny", onboardingHandler.Deny)

					r.Route("/schedules", func(r chi.Router) {
						r.Get("/", schedulesHandler.List)
						r.Post("/", schedulesHandler.Generate)
						r.Get("/candidates", schedulesHandler.Candidates)
						r.Get("/{scheduleID}", schedulesHandler.Get)
						r.Put("/{scheduleID}", schedulesHandler.Update)
						r.Delete("/{scheduleID}", schedulesHandler.Delete)
						r.Post("/{scheduleID}/publish", schedulesHandler.Publish)
					})
				})
			})

			r.Route("/availability", func(r chi.Router) {
				r.Get("/", availabilityHandler.Get)
				r.Put("/", availabilityHandler.Set)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteNotFoundResponse(w, fmt.Sprintf("Route not found: %s %s", r.Method, r.URL.Path))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorResponseWithCode(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
			fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path), "")
	})
}
