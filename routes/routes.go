package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/playleague/league-api/handlers"
	"github.com/playleague/league-api/middleware"
)

// SetupRoutes объявляет все маршруты приложения. Порядок middleware на
// защищённых группах: Authenticate → (RequireAdmin) → обработчик.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Auth,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	leagueHandler *handlers.LeagueHandler,
	teamHandler *handlers.TeamHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/users", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Get("/captains", userHandler.ListCaptains)
			r.Get("/freeagents", userHandler.ListFreeAgents)
			r.Get("/{userID}", userHandler.GetProfile)
			r.Put("/{userID}", userHandler.UpdateProfile)
			r.Patch("/{userID}", userHandler.UpdateProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.RequireAdmin)

			r.Put("/{userID}/team", userHandler.AssignToTeam)
		})
	})

	router.Route("/leagues", func(r chi.Router) {
		// Публичные маршруты для просмотра лиг
		r.Get("/", leagueHandler.GetAllLeagues)
		r.Get("/{leagueID}", leagueHandler.GetLeagueByID)

		// Мутации — только для администраторов
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.RequireAdmin)

			r.Post("/", leagueHandler.CreateLeague)
			r.Put("/{leagueID}", leagueHandler.UpdateLeague)
			r.Patch("/{leagueID}", leagueHandler.UpdateLeague)
			r.Delete("/{leagueID}", leagueHandler.DeleteLeague)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.GetAllTeams)
		r.Get("/{teamID}", teamHandler.GetTeamByID)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.RequireAdmin)

			r.Post("/", teamHandler.CreateTeam)
			r.Put("/{teamID}", teamHandler.UpdateTeam)
			r.Patch("/{teamID}", teamHandler.UpdateTeam)
			r.Put("/{teamID}/record", teamHandler.UpdateRecord)
			r.Post("/{teamID}/logo", teamHandler.UploadLogo)
			r.Delete("/{teamID}", teamHandler.DeleteTeam)
		})
	})
}
