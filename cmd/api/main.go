package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/clubmate-app/clubmate-backend/api/routes"
	"github.com/clubmate-app/clubmate-backend/internal/auth"
	"github.com/clubmate-app/clubmate-backend/internal/clubs"
	"github.com/clubmate-app/clubmate-backend/internal/friends"
	"github.com/clubmate-app/clubmate-backend/internal/members"
	"github.com/clubmate-app/clubmate-backend/internal/schedules"
	"github.com/clubmate-app/clubmate-backend/pkg/auth/session"
	"github.com/clubmate-app/clubmate-backend/pkg/config"
	"github.com/clubmate-app/clubmate-backend/pkg/db"
	"github.com/clubmate-app/clubmate-backend/pkg/logger"
	"github.com/clubmate-app/clubmate-backend/pkg/migrate"
	"github.com/clubmate-app/clubmate-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := run(logg); err != nil {
		logg.Error(context.Background(), "api server exited", err)
		os.Exit(1)
	}
}

// run owns the whole bootstrap so its deferred cleanup fires on every exit
// path; main only maps the returned error to the process exit code.
func run(logg *logger.Logger) error {
	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	closers := map[string]func() error{}
	defer func() {
		var closeErr error
		for name, closeFn := range closers {
			if err := closeFn(); err != nil {
				closeErr = multierr.Append(closeErr, fmt.Errorf("%s: %w", name, err))
			}
		}
		if closeErr != nil {
			logg.Error(context.Background(), "error closing resources", closeErr)
		}
	}()

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("bootstrap database: %w", err)
	}
	closers["postgres"] = dbClient.Close

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		return fmt.Errorf("run dev migrations: %w", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		return fmt.Errorf("bootstrap redis: %w", err)
	}
	closers["redis"] = redisClient.Close

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return fmt.Errorf("create session manager: %w", err)
	}

	gormDB := dbClient.DB()
	memberRepo := members.NewRepository(gormDB)
	clubRepo := clubs.NewRepository(gormDB)
	clubMemberRepo := clubs.NewMemberRepository(gormDB)
	authorizer := clubs.NewAuthorizer(clubRepo, clubMemberRepo)

	authService, err := auth.NewService(auth.ServiceParams{
		MemberRepo:     memberRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return fmt.Errorf("create auth service: %w", err)
	}

	clubService, err := clubs.NewService(clubRepo, clubMemberRepo, memberRepo, authorizer, dbClient)
	if err != nil {
		return fmt.Errorf("create club service: %w", err)
	}

	friendService, err := friends.NewService(friends.NewRepository(gormDB), memberRepo, dbClient)
	if err != nil {
		return fmt.Errorf("create friend service: %w", err)
	}

	scheduleService, err := schedules.NewService(schedules.NewRepository(gormDB), authorizer)
	if err != nil {
		return fmt.Errorf("create schedule service: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DBPinger:        dbClient,
			RedisPinger:     redisClient,
			SessionVerifier: sessionManager,
			AuthService:     authService,
			ClubService:     clubService,
			FriendService:   friendService,
			ScheduleService: scheduleService,
			MemberRepo:      memberRepo,
			Registry:        registry,
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server stopped unexpectedly: %w", err)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
	}
	return nil
}
