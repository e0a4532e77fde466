package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshprakash01/music-share-backend/internal/domain"
)

type stubSearch struct {
	result *domain.SearchResult
	err    error
	calls  int
}

func (s *stubSearch) Search(_ context.Context, _ string) (*domain.SearchResult, error) {
	s.calls++
	return s.result, s.err
}

type stubAudio struct {
	url      string
	err      error
	calls    int
	watchURL string
}

func (s *stubAudio) ResolveAudio(_ context.Context, watchURL string) (string, error) {
	s.calls++
	s.watchURL = watchURL
	return s.url, s.err
}

func TestResolver_BuildsFullTrack(t *testing.T) {
	search := &stubSearch{result: &domain.SearchResult{
		VideoID:   "abc123",
		Title:     "Song A",
		Thumbnail: "https://img.example/t.png",
		Owner:     "Chan",
	}}
	audio := &stubAudio{url: "http://audio/abc123"}
	r := New(search, audio)

	track, err := r.Resolve(context.Background(), "song a")
	require.NoError(t, err)

	assert.Equal(t, &domain.Track{
		Title:     "Song A",
		VideoID:   "abc123",
		EmbedURL:  "https://www.youtube.com/embed/abc123?autoplay=1",
		Thumbnail: "https://img.example/t.png",
		Owner:     "Chan",
		AudioURL:  "http://audio/abc123",
	}, track)

	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", audio.watchURL)
}

func TestResolver_EmptyQueryMakesNoExternalCalls(t *testing.T) {
	search := &stubSearch{}
	audio := &stubAudio{}
	r := New(search, audio)

	for _, query := range []string{"", "   ", "\t\n"} {
		track, err := r.Resolve(context.Background(), query)
		assert.Nil(t, track)
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	}

	assert.Zero(t, search.calls)
	assert.Zero(t, audio.calls)
}

func TestResolver_NoResultsPassesThrough(t *testing.T) {
	search := &stubSearch{err: domain.ErrNoResults}
	audio := &stubAudio{}
	r := New(search, audio)

	track, err := r.Resolve(context.Background(), "obscure")
	assert.Nil(t, track)
	assert.ErrorIs(t, err, domain.ErrNoResults)
	assert.Zero(t, audio.calls)
}

func TestResolver_SearchFailureWrapsResolveFailed(t *testing.T) {
	search := &stubSearch{err: errors.New("connection refused")}
	r := New(search, &stubAudio{})

	track, err := r.Resolve(context.Background(), "song a")
	assert.Nil(t, track)
	assert.ErrorIs(t, err, domain.ErrResolveFailed)
	assert.NotErrorIs(t, err, domain.ErrNoResults)
}

func TestResolver_AudioFailureWrapsResolveFailed(t *testing.T) {
	search := &stubSearch{result: &domain.SearchResult{VideoID: "abc123", Title: "Song A"}}
	audio := &stubAudio{err: errors.New("no audio-only format available")}
	r := New(search, audio)

	track, err := r.Resolve(context.Background(), "song a")
	assert.Nil(t, track)
	assert.ErrorIs(t, err, domain.ErrResolveFailed)
}

func TestResolver_RepeatedQueriesReResolve(t *testing.T) {
	search := &stubSearch{result: &domain.SearchResult{VideoID: "abc123", Title: "Song A"}}
	audio := &stubAudio{url: "http://audio/abc123"}
	r := New(search, audio)

	for range 3 {
		_, err := r.Resolve(context.Background(), "song a")
		require.NoError(t, err)
	}

	assert.Equal(t, 3, search.calls)
	assert.Equal(t, 3, audio.calls)
}
