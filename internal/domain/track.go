package domain

// Track is the one currently selected playable media item. It is immutable
// once built; the now-playing store replaces it wholesale, never field by
// field. The JSON field names are the wire format pushed to subscribers and
// returned from the play endpoint.
type Track struct {
	Title     string `json:"title"`
	VideoID   string `json:"videoId"`
	EmbedURL  string `json:"embedUrl"`
	Thumbnail string `json:"thumbnail"`
	Owner     string `json:"owner"`
	AudioURL  string `json:"audioFile"`
}

// SearchResult is the single best-ranked hit returned by the search
// collaborator. Ranking is whatever the collaborator returns; we never
// re-rank.
type SearchResult struct {
	VideoID   string
	Title     string
	Thumbnail string
	Owner     string
}
