// Package domain holds the core types, collaborator interfaces and sentinel
// errors shared across the service. It has no dependencies on other internal
// packages.
package domain

import "context"

// SearchClient maps a free-text query to the top matching video.
type SearchClient interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
}

// AudioResolver maps a canonical watch URL to a directly playable audio
// stream URL. Stream URLs are signed upstream and expire; callers re-resolve
// instead of caching.
type AudioResolver interface {
	ResolveAudio(ctx context.Context, watchURL string) (string, error)
}

// TrackResolver turns a free-text query into a playable Track via the two
// external lookups.
type TrackResolver interface {
	Resolve(ctx context.Context, query string) (*Track, error)
}

// UserRepository is the persistence collaborator for user lookups.
type UserRepository interface {
	Exists(ctx context.Context, username string) (bool, error)
}
