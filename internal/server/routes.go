package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	api := s.echo.Group("/api")
	api.GET("/play", s.handlePlay)
	api.GET("/users/:username/exists", s.handleUserExists)

	s.echo.GET("/ws", s.handleWebSocket)

	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
