// Package hub tracks the set of live WebSocket subscribers and fans messages
// out to them. A single goroutine owns the membership map; register,
// unregister and broadcast all go through a command channel, so iteration
// never races a mutation and a removed subscriber can never be written to.
package hub

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/harshprakash01/music-share-backend/internal/metrics"
)

const (
	commandTimeout   = 5 * time.Second
	commandQueueSize = 256
)

// ErrSubscriberGone is returned by Send when the subscriber has already been
// removed.
var ErrSubscriberGone = errors.New("subscriber not registered")

type hubCmd interface{ isHubCmd() }

type baseHubCmd struct{}

func (baseHubCmd) isHubCmd() {}

type registerCmd struct {
	baseHubCmd
	conn    *websocket.Conn
	replyCh chan registerReply
}

type registerReply struct {
	id  uuid.UUID
	err error
}

type unregisterCmd struct {
	baseHubCmd
	id uuid.UUID
}

type broadcastCmd struct {
	baseHubCmd
	data []byte
}

type sendCmd struct {
	baseHubCmd
	id    uuid.UUID
	data  []byte
	errCh chan error
}

type countCmd struct {
	baseHubCmd
	replyCh chan int
}

type stopCmd struct {
	baseHubCmd
}

// Hub is the subscriber registry.
type Hub struct {
	cmdCh      chan hubCmd
	clock      clockwork.Clock
	clients    map[uuid.UUID]*clientWriter
	maxClients int
}

// New creates a hub and starts its actor goroutine. maxClients caps the
// total number of subscribers; zero means unlimited.
func New(maxClients int, clock clockwork.Clock) *Hub {
	h := &Hub{
		cmdCh:      make(chan hubCmd, commandQueueSize),
		clock:      clock,
		clients:    make(map[uuid.UUID]*clientWriter),
		maxClients: maxClients,
	}
	go h.run()
	return h
}

// Register adds a connection and returns its subscriber ID. The connection
// is owned by the hub from this point on; callers must not write to it.
func (h *Hub) Register(conn *websocket.Conn) (uuid.UUID, error) {
	replyCh := make(chan registerReply, 1)
	h.cmdCh <- registerCmd{conn: conn, replyCh: replyCh}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case reply := <-replyCh:
		return reply.id, reply.err
	case <-timer.Chan():
		return uuid.Nil, fmt.Errorf("register command timed out after %v", commandTimeout)
	}
}

// Unregister removes a subscriber and closes its connection. Safe to call
// for an already-removed subscriber.
func (h *Hub) Unregister(id uuid.UUID) {
	h.cmdCh <- unregisterCmd{id: id}
}

// Broadcast queues data for delivery to every live subscriber. Subscribers
// whose send buffer is full are evicted rather than blocking the rest.
func (h *Hub) Broadcast(data []byte) {
	h.cmdCh <- broadcastCmd{data: data}
}

// Send queues data for one subscriber. Returns ErrSubscriberGone if the id
// is not registered.
func (h *Hub) Send(id uuid.UUID, data []byte) error {
	errCh := make(chan error, 1)
	h.cmdCh <- sendCmd{id: id, data: data, errCh: errCh}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		return err
	case <-timer.Chan():
		return fmt.Errorf("send command timed out after %v", commandTimeout)
	}
}

// ClientCount returns the number of registered subscribers.
func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- countCmd{replyCh: replyCh}
	return <-replyCh
}

// Stop shuts down the hub, closing all subscriber connections with a close
// frame.
func (h *Hub) Stop() {
	h.cmdCh <- stopCmd{}
}

func (h *Hub) run() {
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case registerCmd:
			h.handleRegister(c)
		case unregisterCmd:
			h.handleUnregister(c.id)
		case broadcastCmd:
			h.handleBroadcast(c.data)
		case sendCmd:
			c.errCh <- h.handleSend(c.id, c.data)
		case countCmd:
			c.replyCh <- len(h.clients)
		case stopCmd:
			h.handleStop()
			return
		default:
			slog.Error("Hub: unknown command type", "type", fmt.Sprintf("%T", cmd))
		}
	}
}

func (h *Hub) handleRegister(c registerCmd) {
	if h.maxClients > 0 && len(h.clients) >= h.maxClients {
		slog.Warn("Rejecting subscriber: max clients reached", "max", h.maxClients)
		_ = c.conn.Close()
		c.replyCh <- registerReply{err: fmt.Errorf("max clients (%d) reached", h.maxClients)}
		return
	}

	id := uuid.New()
	h.clients[id] = newClientWriter(c.conn, h.clock)
	metrics.HubConnectedClients.Set(float64(len(h.clients)))
	slog.Info("Subscriber registered", "subscriber_id", id.String(), "total", len(h.clients))
	c.replyCh <- registerReply{id: id}
}

func (h *Hub) handleUnregister(id uuid.UUID) {
	cw, exists := h.clients[id]
	if !exists {
		return
	}

	cw.stop()
	delete(h.clients, id)
	metrics.HubConnectedClients.Set(float64(len(h.clients)))
	slog.Info("Subscriber unregistered", "subscriber_id", id.String(), "remaining", len(h.clients))
}

func (h *Hub) handleBroadcast(data []byte) {
	var slow []uuid.UUID
	for id, cw := range h.clients {
		select {
		case cw.sendCh <- data:
		default:
			slow = append(slow, id)
		}
	}

	for _, id := range slow {
		slog.Warn("Disconnecting slow subscriber", "subscriber_id", id.String())
		metrics.HubSlowClientsEvicted.Inc()
		h.handleUnregister(id)
	}
}

func (h *Hub) handleSend(id uuid.UUID, data []byte) error {
	cw, exists := h.clients[id]
	if !exists {
		return ErrSubscriberGone
	}

	select {
	case cw.sendCh <- data:
		return nil
	default:
		metrics.HubSlowClientsEvicted.Inc()
		h.handleUnregister(id)
		return fmt.Errorf("subscriber %s send buffer full", id)
	}
}

func (h *Hub) handleStop() {
	for id, cw := range h.clients {
		cw.stopGraceful("server shutting down")
		delete(h.clients, id)
	}
	metrics.HubConnectedClients.Set(0)
}
