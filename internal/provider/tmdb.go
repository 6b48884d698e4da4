package provider

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	tmdb "github.com/ryanbradynd05/go-tmdb"
)

// TMDBClient interface for testing (matches *tmdb.TMDb exactly)
type TMDBClient interface {
	SearchMovie(name string, options map[string]string) (*tmdb.MovieSearchResults, error)
	SearchTv(name string, options map[string]string) (*tmdb.TvSearchResults, error)
	GetMovieInfo(id int, options map[string]string) (*tmdb.Movie, error)
	GetTvInfo(id int, options map[string]string) (*tmdb.TV, error)
	GetTvEpisodeInfo(showID, seasonNum, episodeNum int, options map[string]string) (*tmdb.TvEpisode, error)
}

// TMDBProvider implements the MetadataProvider interface using TMDB.
type TMDBProvider struct {
	client   TMDBClient
	cache    *cache.Cache
	language string
}

// NewTMDBProvider creates a new TMDB provider instance.
func NewTMDBProvider(apiKey, language string) (*TMDBProvider, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}

	if language == "" {
		language = "en-US"
	}

	config := tmdb.Config{
		APIKey:   apiKey,
		Proxies:  nil,
		UseProxy: false,
	}

	return &TMDBProvider{
		client:   tmdb.Init(config),
		cache:    cache.New(time.Hour, 10*time.Minute),
		language: language,
	}, nil
}

// SearchMovie searches for a movie by name and optionally year.
func (p *TMDBProvider) SearchMovie(name, year string) (*EnrichedMetadata, error) {
	if name == "" {
		return nil, errors.New("movie name is required")
	}

	cacheKey := fmt.Sprintf("movie:%s:%s:%s", name, year, p.language)
	if cached, found := p.cache.Get(cacheKey); found {
		if meta, ok := cached.(*EnrichedMetadata); ok {
			return meta, nil
		}
	}

	options := map[string]string{
		"language": p.language,
	}
	if year != "" {
		options["year"] = year
	}

	results, err := p.client.SearchMovie(name, options)
	if err != nil {
		return nil, p.mapError(err)
	}

	if results == nil || len(results.Results) == 0 {
		return nil, ErrNoResults
	}

	// First result is the best match
	movie := results.Results[0]

	fullMovie, err := p.client.GetMovieInfo(movie.ID, options)
	if err != nil {
		// Fall back to search result data
		meta := p.movieSearchResultToMetadata(&movie, name, year)
		p.cache.Set(cacheKey, meta, cache.DefaultExpiration)
		return meta, nil
	}

	meta := p.movieToMetadata(fullMovie, name, year)
	p.cache.Set(cacheKey, meta, cache.DefaultExpiration)
	return meta, nil
}

// SearchTVShow searches for a TV show by name.
func (p *TMDBProvider) SearchTVShow(name string) (*EnrichedMetadata, error) {
	if name == "" {
		return nil, errors.New("show name is required")
	}

	cacheKey := fmt.Sprintf("tvshow:%s:%s", name, p.language)
	if cached, found := p.cache.Get(cacheKey); found {
		if meta, ok := cached.(*EnrichedMetadata); ok {
			return meta, nil
		}
	}

	options := map[string]string{
		"language": p.language,
	}

	results, err := p.client.SearchTv(name, options)
	if err != nil {
		return nil, p.mapError(err)
	}

	if results == nil || len(results.Results) == 0 {
		return nil, ErrNoResults
	}

	show := results.Results[0]

	fullShow, err := p.client.GetTvInfo(show.ID, options)
	if err != nil {
		meta := &EnrichedMetadata{
			ShowName:  show.Name,
			Title:     show.Name,
			ID:        show.ID,
			LocalName: name,
		}
		if len(show.FirstAirDate) >= 4 {
			meta.Year = show.FirstAirDate[:4]
		}
		p.cache.Set(cacheKey, meta, cache.DefaultExpiration)
		return meta, nil
	}

	meta := p.tvToMetadata(fullShow, name)
	p.cache.Set(cacheKey, meta, cache.DefaultExpiration)
	return meta, nil
}

// GetEpisodeInfo fetches episode metadata, resolving the show by name first.
func (p *TMDBProvider) GetEpisodeInfo(show string, season, episode int) (*EnrichedMetadata, error) {
	if show == "" || season < 0 || episode < 1 {
		return nil, errors.New("invalid show name, season, or episode number")
	}

	cacheKey := fmt.Sprintf("episode:%s:%d:%d:%s", show, season, episode, p.language)
	if cached, found := p.cache.Get(cacheKey); found {
		if meta, ok := cached.(*EnrichedMetadata); ok {
			return meta, nil
		}
	}

	showMeta, err := p.SearchTVShow(show)
	if err != nil {
		return nil, err
	}

	options := map[string]string{
		"language": p.language,
	}

	ep, err := p.client.GetTvEpisodeInfo(showMeta.ID, season, episode, options)
	if err != nil {
		return nil, p.mapError(err)
	}
	if ep == nil {
		return nil, ErrNoResults
	}

	meta := &EnrichedMetadata{
		ShowName:     showMeta.ShowName,
		Title:        showMeta.ShowName,
		Year:         showMeta.Year,
		EpisodeName:  ep.Name,
		EpisodeAir:   ep.AirDate,
		Overview:     ep.Overview,
		Rating:       ep.VoteAverage,
		SeasonNum:    ep.SeasonNumber,
		EpisodeNum:   ep.EpisodeNumber,
		ID:           showMeta.ID,
		LocalName:    show,
		LocalSeason:  season,
		LocalEpisode: episode,
	}
	p.cache.Set(cacheKey, meta, cache.DefaultExpiration)
	return meta, nil
}

func (p *TMDBProvider) movieSearchResultToMetadata(movie *tmdb.MovieShort, localName, localYear string) *EnrichedMetadata {
	releaseYear := ""
	if len(movie.ReleaseDate) >= 4 {
		releaseYear = movie.ReleaseDate[:4]
	}

	return &EnrichedMetadata{
		Title:     movie.Title,
		Year:      releaseYear,
		Overview:  movie.Overview,
		Rating:    movie.VoteAverage,
		ID:        movie.ID,
		LocalName: localName,
		LocalYear: localYear,
	}
}

func (p *TMDBProvider) movieToMetadata(movie *tmdb.Movie, localName, localYear string) *EnrichedMetadata {
	releaseYear := ""
	if len(movie.ReleaseDate) >= 4 {
		releaseYear = movie.ReleaseDate[:4]
	}

	genres := make([]string, 0, len(movie.Genres))
	for _, g := range movie.Genres {
		genres = append(genres, g.Name)
	}

	return &EnrichedMetadata{
		Title:     movie.Title,
		Year:      releaseYear,
		Overview:  movie.Overview,
		Rating:    movie.VoteAverage,
		Genres:    genres,
		Runtime:   int(movie.Runtime),
		ID:        movie.ID,
		LocalName: localName,
		LocalYear: localYear,
	}
}

func (p *TMDBProvider) tvToMetadata(show *tmdb.TV, localName string) *EnrichedMetadata {
	firstAirYear := ""
	if len(show.FirstAirDate) >= 4 {
		firstAirYear = show.FirstAirDate[:4]
	}

	genres := make([]string, 0, len(show.Genres))
	for _, g := range show.Genres {
		genres = append(genres, g.Name)
	}

	runtime := 0
	if len(show.EpisodeRunTime) > 0 {
		runtime = show.EpisodeRunTime[0]
	}

	return &EnrichedMetadata{
		ShowName:  show.Name,
		Title:     show.Name,
		Year:      firstAirYear,
		Overview:  show.Overview,
		Rating:    show.VoteAverage,
		Genres:    genres,
		Runtime:   runtime,
		ID:        show.ID,
		LocalName: localName,
	}
}

func (p *TMDBProvider) mapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "unauthorized") {
		return ErrInvalidAPIKey
	}
	if strings.Contains(errStr, "429") || strings.Contains(errStr, "rate limit") {
		return ErrRateLimited
	}
	if strings.Contains(errStr, "503") || strings.Contains(errStr, "unavailable") {
		return ErrAPIUnavailable
	}

	return fmt.Errorf("TMDB API error: %w", err)
}

// SetClient sets the TMDB client (for testing)
func (p *TMDBProvider) SetClient(client TMDBClient) {
	p.client = client
}
