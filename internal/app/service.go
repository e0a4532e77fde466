// Package app is the application layer: the command gateway that ties the
// resolver, the broadcast coordinator and the user repository together. It
// is the only component that references more than one of them.
package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/harshprakash01/music-share-backend/internal/domain"
	"github.com/harshprakash01/music-share-backend/internal/metrics"
)

// Broadcaster is the part of the coordinator the gateway drives.
type Broadcaster interface {
	Accept(track *domain.Track)
}

type Service struct {
	resolver       domain.TrackResolver
	users          domain.UserRepository
	broadcaster    Broadcaster
	resolveTimeout time.Duration
	clock          clockwork.Clock
	playGroup      singleflight.Group
}

func NewService(resolver domain.TrackResolver, users domain.UserRepository, broadcaster Broadcaster, resolveTimeout time.Duration, clock clockwork.Clock) *Service {
	return &Service{
		resolver:       resolver,
		users:          users,
		broadcaster:    broadcaster,
		resolveTimeout: resolveTimeout,
		clock:          clock,
	}
}

// Play resolves the query and, on success, hands the record to the
// coordinator before returning it, so the response and the broadcast carry
// the same record. On any error the store is untouched and nothing is
// broadcast. Concurrent identical queries collapse into one resolution;
// sequential repeats always re-resolve.
func (s *Service) Play(ctx context.Context, query string) (*domain.Track, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	v, err, _ := s.playGroup.Do(key, func() (any, error) {
		return s.play(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Track), nil
}

func (s *Service) play(ctx context.Context, query string) (*domain.Track, error) {
	ctx, cancel := context.WithTimeout(ctx, s.resolveTimeout)
	defer cancel()

	start := s.clock.Now()
	track, err := s.resolver.Resolve(ctx, query)
	metrics.ResolveDuration.Observe(s.clock.Since(start).Seconds())

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, domain.ErrEmptyQuery) {
			metrics.PlaysTotal.WithLabelValues("timeout").Inc()
			return nil, fmt.Errorf("%w after %v", domain.ErrResolveTimeout, s.resolveTimeout)
		}
		metrics.PlaysTotal.WithLabelValues(playStatus(err)).Inc()
		return nil, err
	}

	s.broadcaster.Accept(track)
	metrics.PlaysTotal.WithLabelValues("ok").Inc()
	return track, nil
}

func playStatus(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return "invalid_query"
	case errors.Is(err, domain.ErrNoResults):
		return "not_found"
	case errors.Is(err, domain.ErrResolveFailed):
		return "resolve_failed"
	default:
		return "error"
	}
}

// UserExists is a pure passthrough to the persistence collaborator. A
// backend error surfaces as domain.ErrUserLookup, never as "does not exist".
func (s *Service) UserExists(ctx context.Context, username string) (bool, error) {
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		metrics.UserExistsChecksTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("%w: %v", domain.ErrUserLookup, err)
	}
	metrics.UserExistsChecksTotal.WithLabelValues(strconv.FormatBool(exists)).Inc()
	return exists, nil
}
