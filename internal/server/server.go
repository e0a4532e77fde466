// Package server hosts the HTTP surface: the play and user endpoints, the
// WebSocket subscription endpoint, health probes and Prometheus metrics.
package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	apperrors "github.com/harshprakash01/music-share-backend/internal/errors"

	"github.com/harshprakash01/music-share-backend/internal/config"
	"github.com/harshprakash01/music-share-backend/internal/domain"
)

// AppService is the command gateway the handlers delegate to.
type AppService interface {
	Play(ctx context.Context, query string) (*domain.Track, error)
	UserExists(ctx context.Context, username string) (bool, error)
}

// Syncer pushes the current track to one just-registered subscriber.
type Syncer interface {
	SyncSubscriber(id uuid.UUID)
}

// subscriberHub is the part of the hub the WebSocket handler drives.
type subscriberHub interface {
	Register(conn *websocket.Conn) (uuid.UUID, error)
	Unregister(id uuid.UUID)
}

// postgresPinger is satisfied by *pgxpool.Pool; the readiness probe uses it.
type postgresPinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo    *echo.Echo
	cfg     *config.Config
	app     AppService
	hub     subscriberHub
	syncer  Syncer
	db      postgresPinger
	limits  *ConnectionLimits
	started time.Time
}

func New(cfg *config.Config, app AppService, hub subscriberHub, syncer Syncer, db postgresPinger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apperrors.Middleware())

	s := &Server{
		echo:    e,
		cfg:     cfg,
		app:     app,
		hub:     hub,
		syncer:  syncer,
		db:      db,
		limits:  NewConnectionLimits(cfg.WSMaxPerIP, cfg.WSConnRate, cfg.WSConnBurst),
		started: time.Now(),
	}
	s.registerRoutes()
	return s
}

// Start blocks serving HTTP on the configured port.
func (s *Server) Start() error {
	return s.echo.Start(":" + s.cfg.Port)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
