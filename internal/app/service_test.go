package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshprakash01/music-share-backend/internal/domain"
)

type stubResolver struct {
	track *domain.Track
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (s *stubResolver) Resolve(ctx context.Context, _ string) (*domain.Track, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.track, s.err
}

type stubUsers struct {
	exists bool
	err    error
}

func (s *stubUsers) Exists(_ context.Context, _ string) (bool, error) {
	return s.exists, s.err
}

type recordingBroadcaster struct {
	mu       sync.Mutex
	accepted []*domain.Track
}

func (r *recordingBroadcaster) Accept(track *domain.Track) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted = append(r.accepted, track)
}

func (r *recordingBroadcaster) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accepted)
}

func newTestService(res domain.TrackResolver, users domain.UserRepository, timeout time.Duration) (*Service, *recordingBroadcaster) {
	broadcaster := &recordingBroadcaster{}
	svc := NewService(res, users, broadcaster, timeout, clockwork.NewRealClock())
	return svc, broadcaster
}

func TestService_PlayAcceptsResolvedTrack(t *testing.T) {
	track := &domain.Track{Title: "Song A", VideoID: "abc123"}
	svc, broadcaster := newTestService(&stubResolver{track: track}, &stubUsers{}, time.Second)

	got, err := svc.Play(context.Background(), "song a")
	require.NoError(t, err)

	assert.Same(t, track, got)
	require.Equal(t, 1, broadcaster.count())
	assert.Same(t, track, broadcaster.accepted[0])
}

func TestService_PlayErrorNeverReachesBroadcaster(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"empty query", domain.ErrEmptyQuery},
		{"no results", domain.ErrNoResults},
		{"resolve failed", domain.ErrResolveFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, broadcaster := newTestService(&stubResolver{err: tc.err}, &stubUsers{}, time.Second)

			track, err := svc.Play(context.Background(), "whatever")
			assert.Nil(t, track)
			assert.ErrorIs(t, err, tc.err)
			assert.Zero(t, broadcaster.count())
		})
	}
}

func TestService_PlayTimesOut(t *testing.T) {
	res := &stubResolver{track: &domain.Track{Title: "slow"}, delay: time.Second}
	svc, broadcaster := newTestService(res, &stubUsers{}, 50*time.Millisecond)

	track, err := svc.Play(context.Background(), "song a")
	assert.Nil(t, track)
	assert.ErrorIs(t, err, domain.ErrResolveTimeout)
	assert.Zero(t, broadcaster.count())
}

func TestService_PlayCollapsesConcurrentIdenticalQueries(t *testing.T) {
	res := &stubResolver{track: &domain.Track{Title: "Song A"}, delay: 100 * time.Millisecond}
	svc, _ := newTestService(res, &stubUsers{}, time.Second)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Play(context.Background(), "  Song A ")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// All five overlap the first resolution, so at most a couple of
	// flights actually run.
	assert.Less(t, res.calls.Load(), int32(5))
}

func TestService_PlaySequentialRepeatsReResolve(t *testing.T) {
	res := &stubResolver{track: &domain.Track{Title: "Song A"}}
	svc, _ := newTestService(res, &stubUsers{}, time.Second)

	for range 3 {
		_, err := svc.Play(context.Background(), "song a")
		require.NoError(t, err)
	}

	assert.Equal(t, int32(3), res.calls.Load())
}

func TestService_UserExists(t *testing.T) {
	t.Run("exists", func(t *testing.T) {
		svc, _ := newTestService(&stubResolver{}, &stubUsers{exists: true}, time.Second)
		exists, err := svc.UserExists(context.Background(), "alice")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("does not exist", func(t *testing.T) {
		svc, _ := newTestService(&stubResolver{}, &stubUsers{exists: false}, time.Second)
		exists, err := svc.UserExists(context.Background(), "nobody")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("backend failure is not false", func(t *testing.T) {
		svc, _ := newTestService(&stubResolver{}, &stubUsers{err: errors.New("connection refused")}, time.Second)
		exists, err := svc.UserExists(context.Background(), "alice")
		assert.False(t, exists)
		assert.ErrorIs(t, err, domain.ErrUserLookup)
	})
}
