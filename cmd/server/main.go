package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/harshprakash01/music-share-backend/internal/app"
	"github.com/harshprakash01/music-share-backend/internal/config"
	"github.com/harshprakash01/music-share-backend/internal/database"
	"github.com/harshprakash01/music-share-backend/internal/hub"
	"github.com/harshprakash01/music-share-backend/internal/logging"
	"github.com/harshprakash01/music-share-backend/internal/nowplaying"
	"github.com/harshprakash01/music-share-backend/internal/resolver"
	"github.com/harshprakash01/music-share-backend/internal/server"
	"github.com/harshprakash01/music-share-backend/internal/youtube"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Starting server", "env", cfg.AppEnv, "port", cfg.Port)

	clock := clockwork.NewRealClock()

	pool := setupDatabase(cfg.DatabaseURL)
	defer pool.Close()

	users := database.NewUserRepo(pool)
	search := youtube.NewSearchClient(cfg.YouTubeAPIKey)
	player := youtube.NewPlayer()
	res := resolver.New(search, player)

	store := nowplaying.NewStore()
	h := hub.New(cfg.WSMaxClients, clock)
	coordinator := nowplaying.NewCoordinator(store, h)

	svc := app.NewService(res, users, coordinator, cfg.ResolveTimeout, clock)
	srv := server.New(cfg, svc, h, coordinator, pool)

	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("Shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
		h.Stop()
		close(done)
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server stopped unexpectedly", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("Server stopped")
}

func setupDatabase(databaseURL string) *pgxpool.Pool {
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(connectCtx, databaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.RunMigrations(migrateCtx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		pool.Close()
		os.Exit(1)
	}

	return pool
}
