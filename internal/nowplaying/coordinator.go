package nowplaying

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/harshprakash01/music-share-backend/internal/domain"
	"github.com/harshprakash01/music-share-backend/internal/metrics"
)

// Pusher is the part of the subscriber hub the coordinator drives.
type Pusher interface {
	Broadcast(data []byte)
	Send(id uuid.UUID, data []byte) error
}

// Coordinator is the only place where the store and the subscriber hub are
// touched together. Accept is mutually exclusive across the store write and
// the fan-out, so every subscriber observes replacements in the order they
// were accepted.
type Coordinator struct {
	mu    sync.Mutex
	store *Store
	hub   Pusher
}

func NewCoordinator(store *Store, hub Pusher) *Coordinator {
	return &Coordinator{store: store, hub: hub}
}

// Accept replaces the current track and pushes the identical serialized
// record to every live subscriber. Concurrent accepts queue on the mutex
// rather than interleave. A push failure to one subscriber is handled inside
// the hub (eviction) and never fails the accept.
func (c *Coordinator) Accept(track *domain.Track) {
	data, err := json.Marshal(track)
	if err != nil {
		slog.Error("Failed to marshal track for broadcast", "error", err, "video_id", track.VideoID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.Replace(track)
	c.hub.Broadcast(data)
	metrics.BroadcastsTotal.Inc()

	slog.Info("Now playing changed", "video_id", track.VideoID, "title", track.Title)
}

// SyncSubscriber pushes the current track to one just-registered subscriber.
// No-op while the store is empty. Does not re-broadcast to others.
func (c *Coordinator) SyncSubscriber(id uuid.UUID) {
	track := c.store.Current()
	if track == nil {
		return
	}

	data, err := json.Marshal(track)
	if err != nil {
		slog.Error("Failed to marshal track for sync push", "error", err, "video_id", track.VideoID)
		return
	}

	if err := c.hub.Send(id, data); err != nil {
		slog.Debug("Initial push failed", "subscriber_id", id.String(), "error", err)
	}
}
