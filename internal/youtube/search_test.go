package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshprakash01/music-share-backend/internal/domain"
)

const searchHit = `{
	"items": [{
		"id": {"videoId": "abc123"},
		"snippet": {
			"title": "Song A",
			"channelTitle": "Chan",
			"thumbnails": {"high": {"url": "https://img.example/t.png"}}
		}
	}]
}`

func TestSearchClient_ReturnsTopHit(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"q":          q.Get("q"),
			"part":       q.Get("part"),
			"type":       q.Get("type"),
			"maxResults": q.Get("maxResults"),
			"key":        q.Get("key"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchHit))
	}))
	defer server.Close()

	client := NewSearchClientWithBaseURL("test-key", server.URL)
	result, err := client.Search(context.Background(), "song a")
	require.NoError(t, err)

	assert.Equal(t, &domain.SearchResult{
		VideoID:   "abc123",
		Title:     "Song A",
		Thumbnail: "https://img.example/t.png",
		Owner:     "Chan",
	}, result)

	assert.Equal(t, map[string]string{
		"q":          "song a",
		"part":       "snippet",
		"type":       "video",
		"maxResults": "1",
		"key":        "test-key",
	}, gotQuery)
}

func TestSearchClient_ZeroItemsIsNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := NewSearchClientWithBaseURL("test-key", server.URL)

	// Repeated empty result sets stay ErrNoResults; a healthy response
	// never opens the breaker.
	for range breakerFailureThreshold + 1 {
		result, err := client.Search(context.Background(), "obscure")
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrNoResults)
	}
}

func TestSearchClient_UpstreamErrorsOpenBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewSearchClientWithBaseURL("test-key", server.URL)

	for range breakerFailureThreshold {
		_, err := client.Search(context.Background(), "song a")
		require.Error(t, err)
		require.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}

	// Breaker is open now; calls fail fast without touching the server.
	_, err := client.Search(context.Background(), "song a")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestSearchClient_Non200StatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewSearchClientWithBaseURL("test-key", server.URL)
	_, err := client.Search(context.Background(), "song a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
