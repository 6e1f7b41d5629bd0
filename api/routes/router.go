package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clubmate-app/clubmate-backend/api/controllers"
	"github.com/clubmate-app/clubmate-backend/api/middleware"
	"github.com/clubmate-app/clubmate-backend/internal/auth"
	"github.com/clubmate-app/clubmate-backend/internal/clubs"
	"github.com/clubmate-app/clubmate-backend/internal/friends"
	"github.com/clubmate-app/clubmate-backend/internal/members"
	"github.com/clubmate-app/clubmate-backend/internal/schedules"
	"github.com/clubmate-app/clubmate-backend/pkg/auth/session"
	"github.com/clubmate-app/clubmate-backend/pkg/config"
	"github.com/clubmate-app/clubmate-backend/pkg/logger"
	"github.com/clubmate-app/clubmate-backend/pkg/metrics"
)

// Deps bundles everything the router needs. cmd/api fills it in at startup.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DBPinger        controllers.Pinger
	RedisPinger     controllers.Pinger
	SessionVerifier session.AccessSessionChecker
	AuthService     auth.Service
	ClubService     clubs.Service
	FriendService   friends.Service
	ScheduleService schedules.Service
	MemberRepo      *members.Repository
	Registry        *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var httpMetrics *metrics.HTTPMetrics
	if deps.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(deps.Registry)
		r.Use(middleware.Metrics(httpMetrics))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionVerifier, logg))

		r.Get("/members/me", controllers.MemberMe(deps.MemberRepo, logg))
		r.Get("/members/me/clubs", controllers.ListMyClubs(deps.ClubService, logg))

		r.Route("/clubs", func(r chi.Router) {
			r.Post("/", controllers.CreateClub(deps.ClubService, logg))
			r.Route("/{clubID}", func(r chi.Router) {
				r.Get("/", controllers.GetClub(deps.ClubService, logg))
				r.Patch("/active", controllers.SetClubActive(deps.ClubService, logg))

				r.Route("/members", func(r chi.Router) {
					r.Get("/", controllers.ListClubMembers(deps.ClubService, logg))
					r.Post("/", controllers.AddClubMember(deps.ClubService, logg))
					r.Post("/apply", controllers.ApplyToClub(deps.ClubService, logg))
					r.Post("/respond", controllers.RespondToInvitation(deps.ClubService, logg))
					r.Post("/{memberID}/approve", controllers.ApproveApplication(deps.ClubService, logg))
					r.Post("/withdraw", controllers.WithdrawFromClub(deps.ClubService, logg))
				})

				r.Route("/schedules", func(r chi.Router) {
					r.Get("/", controllers.ListSchedules(deps.ScheduleService, logg))
					r.Post("/", controllers.CreateSchedule(deps.ScheduleService, logg))
				})
			})
		})

		r.Route("/schedules/{scheduleID}", func(r chi.Router) {
			r.Put("/", controllers.UpdateSchedule(deps.ScheduleService, logg))
			r.Delete("/", controllers.DeleteSchedule(deps.ScheduleService, logg))
			r.Route("/checklist", func(r chi.Router) {
				r.Get("/", controllers.ListChecklist(deps.ScheduleService, logg))
				r.Post("/", controllers.AddChecklistItem(deps.ScheduleService, logg))
			})
		})
		r.Patch("/checklist/{itemID}/done", controllers.SetChecklistItemDone(deps.ScheduleService, logg))

		r.Route("/friends", func(r chi.Router) {
			r.Get("/", controllers.ListFriends(deps.FriendService, logg))
			r.Get("/pending", controllers.ListPendingFriendRequests(deps.FriendService, logg))
			r.Post("/", controllers.RequestFriend(deps.FriendService, logg))
			r.Post("/{friendID}/respond", controllers.RespondFriend(deps.FriendService, logg))
		})
	})

	return r
}
