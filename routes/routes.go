package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/fencing-tournament/docs"
	"github.com/Dosada05/fencing-tournament/handlers"
	"github.com/Dosada05/fencing-tournament/middleware"
	"github.com/Dosada05/fencing-tournament/models"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Tournament    *handlers.TournamentHandler
	Event         *handlers.EventHandler
	KnockoutStage *handlers.KnockoutStageHandler
	Player        *handlers.PlayerHandler
	User          *handlers.UserHandler
	WebSocket     *handlers.WebSocketHandler
}

type Options struct {
	Authenticator  middleware.TokenAuthenticator
	AllowedOrigins []string
	Logger         *slog.Logger
}

func SetupRoutes(router *chi.Mux, h Handlers, opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	adminOnly := middleware.RequireRole(models.RoleAdmin)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.Authenticator, logger))

		r.Get("/ws/events/{eventID}", h.WebSocket.ServeWs)

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", h.Tournament.ListHandler)
			r.With(adminOnly).Post("/", h.Tournament.CreateHandler)

			r.Route("/{tournamentID}", func(r chi.Router) {
				r.Get("/", h.Tournament.GetByIDHandler)
				r.With(adminOnly).Put("/", h.Tournament.UpdateHandler)
				r.With(adminOnly).Delete("/", h.Tournament.DeleteHandler)

				r.Route("/events", func(r chi.Router) {
					r.Get("/", h.Event.ListHandler)
					r.With(adminOnly).Post("/", h.Event.CreateHandler)

					r.Route("/{eventID}", func(r chi.Router) {
						r.Get("/", h.Event.GetByIDHandler)
						r.With(adminOnly).Put("/", h.Event.UpdateHandler)
						r.With(adminOnly).Delete("/", h.Event.DeleteHandler)

						r.Get("/rankings", h.Event.RankingsHandler)

						r.Route("/players/{playerID}", func(r chi.Router) {
							r.Use(adminOnly)
							r.Post("/", h.Event.AddPlayerHandler)
							r.Put("/", h.Event.UpdateScoreHandler)
							r.Delete("/", h.Event.RemovePlayerHandler)
						})

						r.Route("/knockoutStage", func(r chi.Router) {
							r.Get("/", h.KnockoutStage.ListHandler)
							r.With(adminOnly).Post("/", h.KnockoutStage.CreateHandler)
							r.Get("/{stageID}", h.KnockoutStage.GetByIDHandler)
							r.With(adminOnly).Put("/{stageID}", h.KnockoutStage.UpdateHandler)
							r.With(adminOnly).Delete("/{stageID}", h.KnockoutStage.DeleteHandler)
						})
					})
				})
			})
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.Player.ListHandler)
			r.With(adminOnly).Post("/", h.Player.CreateHandler)
			r.Get("/by-username/{username}", h.Player.GetByUsernameHandler)

			r.Route("/{playerID}", func(r chi.Router) {
				r.Get("/", h.Player.GetByIDHandler)
				r.With(adminOnly).Put("/", h.Player.UpdateHandler)
				r.With(adminOnly).Delete("/", h.Player.DeleteHandler)
				r.With(adminOnly).Post("/photo", h.Player.UploadPhotoHandler)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", h.User.ListHandler)
			r.Patch("/{userID}/role", h.User.ChangeRoleHandler)
		})
	})
}
