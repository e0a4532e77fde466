package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	apperrors "github.com/harshprakash01/music-share-backend/internal/errors"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleWebSocket upgrades the connection and registers it as a subscriber.
// The subscriber is registered before the initial state push, so an accept
// that races the handshake is either in the push or in the fan-out, never
// lost.
func (s *Server) handleWebSocket(c echo.Context) error {
	ip := c.RealIP()
	ok, reason := s.limits.Acquire(ip)
	if !ok {
		slog.Warn("WebSocket connection rejected", "ip", ip, "reason", reason)
		return apperrors.UnavailableError("too many connections", nil).WithField("reason", string(reason))
	}
	defer s.limits.Release(ip)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return apperrors.InternalError("websocket upgrade failed", err)
	}

	id, err := s.hub.Register(conn)
	if err != nil {
		_ = conn.Close()
		return apperrors.UnavailableError("subscriber registration failed", err)
	}
	defer s.hub.Unregister(id)

	s.syncer.SyncSubscriber(id)

	// Read pump. Subscribers never send application messages; reading only
	// services control frames and detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("WebSocket read error", "subscriber_id", id.String(), "error", err)
			}
			return nil
		}
	}
}
