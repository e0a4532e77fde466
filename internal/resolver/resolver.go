// Package resolver maps a free-text query to a playable track via two
// external lookups: search first, then audio resolution for the top hit.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harshprakash01/music-share-backend/internal/domain"
)

const (
	watchURLFormat = "https://www.youtube.com/watch?v=%s"
	embedURLFormat = "https://www.youtube.com/embed/%s?autoplay=1"
)

// Resolver implements domain.TrackResolver. It is stateless: repeated
// identical queries re-resolve every time, because audio stream URLs expire
// upstream and freshness matters more than call savings. A single external
// failure surfaces immediately; there are no retries here.
type Resolver struct {
	search domain.SearchClient
	audio  domain.AudioResolver
}

func New(search domain.SearchClient, audio domain.AudioResolver) *Resolver {
	return &Resolver{search: search, audio: audio}
}

func (r *Resolver) Resolve(ctx context.Context, query string) (*domain.Track, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	hit, err := r.search.Search(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrNoResults) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrResolveFailed, err)
	}

	audioURL, err := r.audio.ResolveAudio(ctx, fmt.Sprintf(watchURLFormat, hit.VideoID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrResolveFailed, err)
	}

	return &domain.Track{
		Title:     hit.Title,
		VideoID:   hit.VideoID,
		EmbedURL:  fmt.Sprintf(embedURLFormat, hit.VideoID),
		Thumbnail: hit.Thumbnail,
		Owner:     hit.Owner,
		AudioURL:  audioURL,
	}, nil
}
