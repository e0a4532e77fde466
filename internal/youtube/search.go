// Package youtube implements the two external collaborators of the track
// resolver: the Data API v3 search endpoint and audio stream resolution.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/harshprakash01/music-share-backend/internal/domain"
)

const defaultSearchBaseURL = "https://www.googleapis.com/youtube/v3/search"

// SearchClient queries the YouTube Data API v3 for the single best matching
// video. It implements domain.SearchClient.
type SearchClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewSearchClient(apiKey string) *SearchClient {
	return NewSearchClientWithBaseURL(apiKey, defaultSearchBaseURL)
}

// NewSearchClientWithBaseURL exists so tests can point the client at a stub
// server.
func NewSearchClientWithBaseURL(apiKey, baseURL string) *SearchClient {
	return &SearchClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: newBreaker("youtube_search"),
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search returns the top hit for the query, or domain.ErrNoResults if the
// API returned zero items. Zero results is a healthy response and does not
// count against the circuit breaker.
func (c *SearchClient) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	resp, err := c.breaker.Execute(func() (any, error) {
		return c.search(ctx, query)
	})
	if err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	sr := resp.(*searchResponse)
	if len(sr.Items) == 0 {
		return nil, domain.ErrNoResults
	}

	top := sr.Items[0]
	return &domain.SearchResult{
		VideoID:   top.ID.VideoID,
		Title:     top.Snippet.Title,
		Thumbnail: top.Snippet.Thumbnails.High.URL,
		Owner:     top.Snippet.ChannelTitle,
	}, nil
}

func (c *SearchClient) search(ctx context.Context, query string) (*searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("q", query)
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("maxResults", "1")
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &sr, nil
}
