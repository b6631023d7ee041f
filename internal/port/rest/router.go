package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ahsanauddry027/safetails-sub000/internal/auth"
	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
	"github.com/ahsanauddry027/safetails-sub000/internal/platform/metrics"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/rest/middleware"
	"github.com/ahsanauddry027/safetails-sub000/internal/port/rest/response"
)

type Handlers struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Posts      *PostHandler
	Alerts     *AlertHandler
	Listings   *ListingHandler
	Vets       *VetHandler
	Moderation *ModerationHandler
	Media      *MediaHandler
}

// RouterOptions carries the cross-cutting pieces. Nil limiters and a nil
// metrics manager switch those features off.
type RouterOptions struct {
	Authenticator  middleware.Authenticator
	Cookies        auth.CookieIssuer
	Metrics        *metrics.MetricsManager
	LoginLimiter   middleware.Limiter
	CommentLimiter middleware.Limiter
	TracerName     string
	Health         func(ctx context.Context) error
	Logger         *zap.Logger
}

func NewRouter(h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Tracing(opts.TracerName))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(middleware.Authenticate(opts.Authenticator, opts.Cookies, opts.Logger))

	r.Get("/health", healthHandler(opts.Health, opts.Logger))
	r.Get("/api/forms/{kind}", Forms)

	SetupAuthRoutes(r, h.Auth, opts)
	SetupAdminRoutes(r, h.Users, h.Moderation)
	SetupPostRoutes(r, h.Posts)
	SetupAlertRoutes(r, h.Alerts)
	SetupListingRoutes(r, h.Listings)
	SetupVetRoutes(r, h.Vets)
	SetupModerationRoutes(r, h.Moderation, opts)
	r.With(middleware.RequireAuth).Post("/api/uploads", h.Media.Upload)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Fail(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

func healthHandler(check func(ctx context.Context) error, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				logger.Warn("Health check failed", zap.Error(err))
				response.Fail(w, http.StatusServiceUnavailable, "Database unavailable")
				return
			}
		}
		response.OK(w, map[string]string{"status": "ok"})
	}
}

func SetupAuthRoutes(r chi.Router, h *AuthHandler, opts RouterOptions) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.With(middleware.RateLimit(opts.LoginLimiter, "login", opts.Metrics)).Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/reset-password", h.ResetPassword)
		r.Get("/verify-email", h.VerifyEmail)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", h.Me)
			r.Put("/profile", h.UpdateProfile)
		})
	})
}

func SetupAdminRoutes(r chi.Router, users *UserHandler, moderation *ModerationHandler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireRole(entity.RoleAdmin))

		r.Get("/stats", users.Stats)
		r.Get("/users", users.List)
		r.Post("/users", users.Create)
		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/", users.Get)
			r.Put("/", users.Update)
			r.Delete("/", users.Delete)
			r.Post("/block", users.Block)
			r.Post("/unblock", users.Unblock)
			r.Put("/role", users.ChangeRole)
		})

		r.Get("/comments", moderation.AdminTestimonials)
		r.Put("/comments/{id}", moderation.SetTestimonialApproval)
		r.Delete("/comments/{id}", moderation.AdminDeleteTestimonial)
	})
}

func SetupPostRoutes(r chi.Router, h *PostHandler) {
	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", h.Create)
			r.Patch("/{id}", h.Patch)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func SetupAlertRoutes(r chi.Router, h *AlertHandler) {
	r.Route("/api/alerts", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", h.Create)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
}

func SetupListingRoutes(r chi.Router, h *ListingHandler) {
	r.Route("/api/adoption", func(r chi.Router) {
		r.Get("/", h.ListAdoption)
		r.Get("/{id}", h.GetAdoption)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", h.CreateAdoption)
			r.Post("/{id}/apply", h.ApplyAdoption)
			r.Patch("/{id}/status", h.UpdateAdoptionStatus)
			r.Delete("/{id}", h.DeleteAdoption)
		})
	})
	r.Route("/api/foster", func(r chi.Router) {
		r.Get("/", h.ListFoster)
		r.Get("/{id}", h.GetFoster)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", h.CreateFoster)
			r.Post("/{id}/apply", h.ApplyFoster)
			r.Post("/{id}/assign", h.AssignFoster)
			r.Post("/{id}/complete", h.CompleteFoster)
			r.Delete("/{id}", h.DeleteFoster)
		})
	})
}

func SetupVetRoutes(r chi.Router, h *VetHandler) {
	r.Route("/api/vet-directory", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Post("/{id}/rate", h.Rate)
			r.Patch("/{id}/verify", h.Verify)
		})
	})
}

func SetupModerationRoutes(r chi.Router, h *ModerationHandler, opts RouterOptions) {
	r.Route("/api/reports", func(r chi.Router) {
		r.With(middleware.RequireAuth).Post("/", h.CreateReport)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleAdmin))
			r.Get("/", h.ListReports)
			r.Put("/", h.ReviewReport)
		})
	})

	r.Get("/api/comments", h.PublicTestimonials)
	r.Route("/api/comments/user", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.MyTestimonial)
		r.With(middleware.RateLimit(opts.CommentLimiter, "comment", opts.Metrics)).Post("/", h.CreateTestimonial)
		r.Put("/", h.UpdateTestimonial)
		r.Delete("/", h.DeleteTestimonial)
	})
}
