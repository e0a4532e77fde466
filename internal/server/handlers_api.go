package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/harshprakash01/music-share-backend/internal/errors"

	"github.com/harshprakash01/music-share-backend/internal/domain"
)

// handlePlay resolves the song query, replaces the current track and fans it
// out to all subscribers. The response body is the exact record that was
// broadcast.
func (s *Server) handlePlay(c echo.Context) error {
	query := c.QueryParam("song")

	track, err := s.app.Play(c.Request().Context(), query)
	if err != nil {
		return playError(err, query)
	}

	return c.JSON(http.StatusOK, track)
}

func playError(err error, query string) error {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return apperrors.ValidationError("song query must not be empty")
	case errors.Is(err, domain.ErrNoResults):
		return apperrors.NotFoundError("no results for query").WithField("query", query)
	case errors.Is(err, domain.ErrResolveTimeout):
		return apperrors.TimeoutError("track resolution timed out").WithField("query", query)
	case errors.Is(err, domain.ErrResolveFailed):
		return apperrors.ExternalError("track resolution failed", err).WithField("query", query)
	default:
		return apperrors.InternalError("play command failed", err)
	}
}

func (s *Server) handleUserExists(c echo.Context) error {
	username := c.Param("username")

	exists, err := s.app.UserExists(c.Request().Context(), username)
	if err != nil {
		return apperrors.UnavailableError("user lookup failed", err).WithField("username", username)
	}

	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}
