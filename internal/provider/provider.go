// Package provider fetches metadata from external sources to fill gaps the
// filename parser leaves, such as missing episode titles.
package provider

import "errors"

var (
	ErrNoResults      = errors.New("no results found")
	ErrInvalidAPIKey  = errors.New("invalid API key")
	ErrRateLimited    = errors.New("rate limited")
	ErrAPIUnavailable = errors.New("API unavailable")
)

// MetadataProvider defines the interface for fetching metadata from external
// sources. Episode lookups are keyed by show name; providers resolve their
// own internal identifiers.
type MetadataProvider interface {
	SearchMovie(name, year string) (*EnrichedMetadata, error)
	SearchTVShow(name string) (*EnrichedMetadata, error)
	GetEpisodeInfo(show string, season, episode int) (*EnrichedMetadata, error)
}

// EnrichedMetadata contains metadata fetched from external providers.
type EnrichedMetadata struct {
	// Movie/Show common fields
	Title    string
	Year     string
	Overview string
	Rating   float32
	Genres   []string
	Runtime  int
	ID       int

	// TV specific fields
	ShowName    string
	EpisodeName string
	EpisodeAir  string
	SeasonNum   int
	EpisodeNum  int

	// Original parsed data (fallback)
	LocalName    string
	LocalYear    string
	LocalSeason  int
	LocalEpisode int
}
