package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexedwards/scs/postgresstore"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"

	"PANTRY-TRACKER/internal/config"
	"PANTRY-TRACKER/internal/handlers"
	"PANTRY-TRACKER/internal/logging"
	"PANTRY-TRACKER/internal/migrations"
	"PANTRY-TRACKER/internal/repository"
	"PANTRY-TRACKER/internal/routes"
	"PANTRY-TRACKER/internal/session"
	"PANTRY-TRACKER/internal/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("error").Error("load config", "err", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log.Level)

	db, err := sql.Open("pgx", cfg.GetDSN())
	if err != nil {
		log.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	{
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Error("ping database", "err", err)
			os.Exit(1)
		}
		if err := migrations.Up(ctx, db); err != nil {
			log.Error("apply migrations", "err", err)
			os.Exit(1)
		}
	}

	store := postgresstore.NewWithCleanupInterval(db, cfg.Session.CleanupInterval)
	defer store.StopCleanup()

	sessions := session.New(store, cfg.Session.CookieName, cfg.Session.Lifetime, cfg.Session.Secure)

	renderer, err := views.New(sessions, log)
	if err != nil {
		log.Error("parse templates", "err", err)
		os.Exit(1)
	}

	userRepo := repository.NewPostgresUserRepository(db)
	productRepo := repository.NewPostgresProductRepository(db)

	authHandler := handlers.NewAuthHandler(userRepo, sessions, renderer, log, cfg.Auth.BcryptCost)
	productHandler := handlers.NewProductHandler(productRepo, sessions, renderer, log)
	healthHandler := handlers.NewHealthHandler(db)

	router := routes.New(sessions, renderer, userRepo, productRepo,
		authHandler, productHandler, healthHandler, log)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      c.Handler(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("serve", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "err", err)
	}
	log.Info("server stopped")
}
