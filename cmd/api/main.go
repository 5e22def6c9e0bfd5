// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/dangerclosesec/orgward/internal/auth"
	"github.com/dangerclosesec/orgward/internal/authz"
	"github.com/dangerclosesec/orgward/internal/config"
	"github.com/dangerclosesec/orgward/internal/handler"
	"github.com/dangerclosesec/orgward/internal/middleware"
	"github.com/dangerclosesec/orgward/internal/repository"
	"github.com/dangerclosesec/orgward/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := setupDatabase(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	joinRequestRepo := repository.NewJoinRequestRepository(db)

	// Capability evaluator over the membership store
	evaluator := authz.NewEvaluator(memberRepo)

	// Initialize auth services
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Initialize workflow services
	directory := service.NewDirectoryService(userRepo)
	orgService := service.NewOrganizationService(orgRepo, memberRepo, evaluator)
	memberService := service.NewMemberService(memberRepo, orgRepo, evaluator)
	joinCodeService := service.NewJoinCodeService(orgRepo, evaluator)
	joinRequestService := service.NewJoinRequestService(joinRequestRepo, orgRepo, evaluator)
	invitationService := service.NewInvitationService(invitationRepo, orgRepo, directory, evaluator)

	// Initialize handlers
	orgHandler := handler.NewOrganizationHandler(orgService, joinCodeService)
	memberHandler := handler.NewMemberHandler(memberService)
	invitationHandler := handler.NewInvitationHandler(invitationService)
	joinRequestHandler := handler.NewJoinRequestHandler(joinRequestService)

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// API routes. Every route requires an authenticated caller; the
	// directory lookups have no route at all and stay internal to the
	// invitation workflow.
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			r.Use(middleware.AuthMiddleware(tokenManager))

			r.Route("/orgs", func(r chi.Router) {
				r.Post("/", orgHandler.Create)
				r.Get("/", orgHandler.List)

				r.Route("/{orgID}", func(r chi.Router) {
					r.Get("/", orgHandler.Get)
					r.Delete("/", orgHandler.Delete)

					r.Post("/join-code", orgHandler.IssueJoinCode)

					r.Get("/members", memberHandler.List)

					r.Route("/sites", func(r chi.Router) {
						r.Get("/", orgHandler.ListSites)
						r.Post("/", orgHandler.CreateSite)
					})

					r.Route("/invitations", func(r chi.Router) {
						r.Get("/", invitationHandler.List)
						r.Post("/", invitationHandler.Create)
					})

					r.Route("/join-requests", func(r chi.Router) {
						r.Get("/", joinRequestHandler.ListForOrg)
						r.Post("/", joinRequestHandler.Submit)
					})
				})
			})

			r.Post("/join-code/redeem", orgHandler.RedeemJoinCode)

			r.Route("/sites/{siteID}", func(r chi.Router) {
				r.Delete("/", orgHandler.DeleteSite)
			})

			r.Route("/members/{memberID}", func(r chi.Router) {
				r.Put("/role", memberHandler.SetRole)
				r.Delete("/", memberHandler.Remove)
				r.Get("/sites", memberHandler.ListAssignments)
				r.Post("/sites/{siteID}", memberHandler.AssignSite)
				r.Delete("/sites/{siteID}", memberHandler.UnassignSite)
			})

			r.Route("/invitations/{invitationID}", func(r chi.Router) {
				r.Post("/redeem", invitationHandler.Redeem)
				r.Post("/revoke", invitationHandler.Revoke)
			})

			r.Route("/join-requests", func(r chi.Router) {
				r.Get("/", joinRequestHandler.ListOwn)
				r.Route("/{requestID}", func(r chi.Router) {
					r.Get("/", joinRequestHandler.Get)
					r.Post("/approve", joinRequestHandler.Approve)
					r.Post("/reject", joinRequestHandler.Reject)
				})
			})
		})
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					err := errors.New("panic recovered")
					logger.Error("panic recovered",
						"error", err,
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.Write([]byte("{\"error\":\"error encountered\"}"))
					return
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
