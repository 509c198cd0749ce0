// Package router sets up all HTTP routes and middleware chains for the
// Serenamente server. It organizes routes into public, API and admin
// groups with appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"serenamente/internal/handlers"
	"serenamente/internal/middleware"
	"serenamente/internal/session"
	"serenamente/web"
)

// Deps bundles everything the router needs.
type Deps struct {
	Sessions *session.Store
	Admin    *handlers.Admin
	Auth     *handlers.Auth
	Public   *handlers.Public
	API      *handlers.API

	// SecureCookies should be true everywhere except local development.
	SecureCookies bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(deps Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Static assets.
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Brute-force protection for the endpoints visitors can write to.
	contactLimiter := middleware.NewRateLimiter(5, time.Minute)
	commentLimiter := middleware.NewRateLimiter(10, time.Minute)
	loginLimiter := middleware.NewRateLimiter(10, 5*time.Minute)

	// Public site.
	r.Group(func(r chi.Router) {
		r.Get("/", deps.Public.Home)
		r.Get("/servicios", deps.Public.Services)
		r.Get("/sobre-mi", deps.Public.About)
		r.Get("/testimonios", deps.Public.Testimonials)
		r.Get("/privacidad", deps.Public.Privacy)
		r.Get("/contacto", deps.Public.ContactPage)
		r.With(contactLimiter.Middleware).Post("/contacto", deps.Public.ContactSubmit)

		r.Get("/blog", deps.Public.BlogIndex)
		r.Get("/novedades", deps.Public.Feed)
		r.Get("/blog/{slug}", deps.Public.BlogPost)
		r.With(commentLimiter.Middleware).Post("/blog/{slug}/comentarios", deps.Public.CommentSubmit)
		r.Post("/blog/{slug}/me-gusta", deps.Public.LikeSubmit)
	})

	// Read-only JSON API, open to cross-origin embeds.
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/feed", deps.API.Feed)
		r.Get("/posts/{slug}", deps.API.Post)
	})

	// Admin routes — session, CSRF, then auth gates.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NewCSRF(deps.SecureCookies))
		r.Use(middleware.LoadSession(deps.Sessions))

		// Auth pages — accessible without a session.
		r.Get("/login", deps.Auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", deps.Auth.LoginSubmit)
		r.Post("/logout", deps.Auth.Logout)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", deps.Auth.TwoFASetupPage)
			r.Get("/2fa/verify", deps.Auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", deps.Auth.TwoFAVerifySubmit)
		})

		// Authenticated + 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/", deps.Admin.Dashboard)
			r.Get("/stats", deps.Admin.Stats)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", deps.Admin.PostsList)
				r.Get("/new", deps.Admin.PostNew)
				r.Post("/", deps.Admin.PostCreate)
				r.Get("/{id}", deps.Admin.PostEdit)
				r.Post("/{id}", deps.Admin.PostUpdate)
				r.Delete("/{id}", deps.Admin.PostDelete)
			})

			r.Route("/comments", func(r chi.Router) {
				r.Get("/", deps.Admin.CommentsList)
				r.Post("/{id}/approve", deps.Admin.CommentSetApproved(true))
				r.Post("/{id}/reject", deps.Admin.CommentSetApproved(false))
				r.Delete("/{id}", deps.Admin.CommentDelete)
			})

			r.Route("/messages", func(r chi.Router) {
				r.Get("/", deps.Admin.Messages)
				r.Post("/{id}/read", deps.Admin.MessageSetStatus("read"))
				r.Post("/{id}/answered", deps.Admin.MessageSetStatus("answered"))
			})

			// Settings — admin only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/settings", deps.Admin.SettingsPage)
				r.Post("/settings", deps.Admin.SettingsSubmit)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
