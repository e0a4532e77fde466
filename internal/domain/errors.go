package domain

import "errors"

var (
	// ErrEmptyQuery rejects empty or whitespace-only queries before any
	// external call is made.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrNoResults means the search collaborator returned zero hits.
	ErrNoResults = errors.New("no results for query")

	// ErrResolveFailed covers resolution failures after input validation:
	// search transport errors, missing audio-only encodings, stream URL
	// resolution errors. Distinct from ErrNoResults.
	ErrResolveFailed = errors.New("track resolution failed")

	// ErrResolveTimeout means the bounded wait on resolution was exceeded.
	ErrResolveTimeout = errors.New("track resolution timed out")

	// ErrUserLookup means the persistence backend failed; it is never
	// conflated with "user does not exist".
	ErrUserLookup = errors.New("user lookup unavailable")
)
