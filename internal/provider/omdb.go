package provider

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Digital-Shane/omdb"
	"github.com/patrickmn/go-cache"
)

// OMDBProvider implements the MetadataProvider interface using OMDb. It is
// the fallback when TMDB is unconfigured or finds nothing; OMDb queries are
// title-keyed so no ID resolution round trip is needed.
type OMDBProvider struct {
	client *omdb.Client
	cache  *cache.Cache
}

// NewOMDBProvider creates a new OMDb provider instance.
func NewOMDBProvider(apiKey string) (*OMDBProvider, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}

	return &OMDBProvider{
		client: omdb.NewClient(strings.TrimSpace(apiKey), httpClient),
		cache:  cache.New(time.Hour, 10*time.Minute),
	}, nil
}

// SearchMovie searches for a movie by title and optionally year.
func (p *OMDBProvider) SearchMovie(name, year string) (*EnrichedMetadata, error) {
	if name == "" {
		return nil, errors.New("movie name is required")
	}

	cacheKey := fmt.Sprintf("movie:%s:%s", name, year)
	if cached, found := p.cache.Get(cacheKey); found {
		if meta, ok := cached.(*EnrichedMetadata); ok {
			return meta, nil
		}
	}

	result, err := p.client.SearchByTitle(omdb.QueryData{
		Title:      name,
		Year:       year,
		SearchType: "movie",
		Plot:       "full",
	})
	if err != nil {
		return nil, p.mapError(err)
	}

	var meta *EnrichedMetadata
	switch movie := result.(type) {
	case omdb.MovieResult:
		meta = p.movieResultToMetadata(movie, name, year)
	case *omdb.MovieResult:
		meta = p.movieResultToMetadata(*movie, name, year)
	default:
		return nil, ErrNoResults
	}

	p.cache.Set(cacheKey, meta, cache.DefaultExpiration)
	return meta, nil
}

// SearchTVShow searches for a TV series by title.
func (p *OMDBProvider) SearchTVShow(name string) (*EnrichedMetadata, error) {
	if name == "" {
		return nil, errors.New("show name is required")
	}

	cacheKey := "tvshow:" + name
	if cached, found := p.cache.Get(cacheKey); found {
		if meta, ok := cached.(*EnrichedMetadata); ok {
			return meta, nil
		}
	}

	result, err := p.client.SearchByTitle(omdb.QueryData{
		Title:      name,
		SearchType: "series",
		Plot:       "full",
	})
	if err != nil {
		return nil, p.mapError(err)
	}

	var meta *EnrichedMetadata
	switch series := result.(type) {
	case omdb.SeriesResult:
		meta = p.seriesResultToMetadata(series, name)
	case *omdb.SeriesResult:
		meta = p.seriesResultToMetadata(*series, name)
	default:
		return nil, ErrNoResults
	}

	p.cache.Set(cacheKey, meta, cache.DefaultExpiration)
	return meta, nil
}

// GetEpisodeInfo fetches a single episode by show title and numbers.
func (p *OMDBProvider) GetEpisodeInfo(show string, season, episode int) (*EnrichedMetadata, error) {
	if show == "" || season < 0 || episode < 1 {
		return nil, errors.New("invalid show name, season, or episode number")
	}

	cacheKey := fmt.Sprintf("episode:%s:%d:%d", show, season, episode)
	if cached, found := p.cache.Get(cacheKey); found {
		if meta, ok := cached.(*EnrichedMetadata); ok {
			return meta, nil
		}
	}

	result, err := p.client.SearchByTitle(omdb.QueryData{
		Title:   show,
		Season:  strconv.Itoa(season),
		Episode: strconv.Itoa(episode),
		Plot:    "full",
	})
	if err != nil {
		return nil, p.mapError(err)
	}

	var meta *EnrichedMetadata
	switch ep := result.(type) {
	case omdb.EpisodeResult:
		meta = p.episodeResultToMetadata(ep, show, season, episode)
	case *omdb.EpisodeResult:
		meta = p.episodeResultToMetadata(*ep, show, season, episode)
	default:
		return nil, ErrNoResults
	}

	p.cache.Set(cacheKey, meta, cache.DefaultExpiration)
	return meta, nil
}

func (p *OMDBProvider) movieResultToMetadata(result omdb.MovieResult, localName, localYear string) *EnrichedMetadata {
	return &EnrichedMetadata{
		Title:     result.Title,
		Year:      omdb.FirstYear(result.Year),
		Overview:  result.Plot,
		Rating:    omdb.ParseRating(result.ImdbRating),
		Genres:    omdb.SplitAndTrim(result.Genre),
		LocalName: localName,
		LocalYear: localYear,
	}
}

func (p *OMDBProvider) seriesResultToMetadata(result omdb.SeriesResult, localName string) *EnrichedMetadata {
	return &EnrichedMetadata{
		ShowName:  result.Title,
		Title:     result.Title,
		Year:      omdb.FirstYear(result.Year),
		Overview:  result.Plot,
		Rating:    omdb.ParseRating(result.ImdbRating),
		Genres:    omdb.SplitAndTrim(result.Genre),
		LocalName: localName,
	}
}

func (p *OMDBProvider) episodeResultToMetadata(result omdb.EpisodeResult, show string, season, episode int) *EnrichedMetadata {
	return &EnrichedMetadata{
		ShowName:     show,
		Title:        show,
		Year:         omdb.FirstYear(result.Released),
		EpisodeName:  result.Title,
		EpisodeAir:   result.Released,
		Overview:     result.Plot,
		Rating:       omdb.ParseRating(result.ImdbRating),
		SeasonNum:    season,
		EpisodeNum:   episode,
		LocalName:    show,
		LocalSeason:  season,
		LocalEpisode: episode,
	}
}

func (p *OMDBProvider) mapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "invalid api key") || strings.Contains(errStr, "401"):
		return ErrInvalidAPIKey
	case strings.Contains(errStr, "request limit") || strings.Contains(errStr, "429"):
		return ErrRateLimited
	case strings.Contains(errStr, "not found"):
		return ErrNoResults
	case strings.Contains(errStr, "503") || strings.Contains(errStr, "unavailable"):
		return ErrAPIUnavailable
	}

	return fmt.Errorf("OMDb API error: %w", err)
}
