package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/Digital-Shane/library-tidy/internal/media"
	csmap "github.com/mhmtszr/concurrent-swiss-map"
)

// Enricher fills missing episode titles from metadata providers. Movie
// classifications always carry a year parsed from the filename, so episodes
// are the only classification with a gap to fill. Providers are tried in
// order; the first answer wins. Lookups fan out across a worker pool and are
// deduplicated through a concurrent result map, so fifty episodes of one
// show cost one show search.
type Enricher struct {
	providers   []MetadataProvider
	workerCount int
	results     *csmap.CsMap[string, *EnrichedMetadata]

	errorsMu sync.Mutex
	errors   []error
}

// NewEnricher creates an enricher over the given providers in priority order.
func NewEnricher(workerCount int, providers ...MetadataProvider) *Enricher {
	if workerCount <= 0 {
		workerCount = 10
	}
	return &Enricher{
		providers:   providers,
		workerCount: workerCount,
		results:     csmap.Create[string, *EnrichedMetadata](),
	}
}

// EnrichAll fills missing fields in the classifications in place and returns
// the number it completed. Lookup failures never fail the batch; the affected
// files keep their parsed names and the errors are available via Errors.
func (e *Enricher) EnrichAll(ctx context.Context, classes []*media.Classification) int {
	if len(e.providers) == 0 {
		return 0
	}

	pending := make([]*media.Classification, 0, len(classes))
	for _, c := range classes {
		if c != nil && needsEnrichment(c) {
			pending = append(pending, c)
		}
	}
	if len(pending) == 0 {
		return 0
	}

	workerCount := min(e.workerCount, len(pending))
	workCh := make(chan *media.Classification)
	var wg sync.WaitGroup
	var filledMu sync.Mutex
	filled := 0

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range workCh {
				if ctx.Err() != nil {
					continue
				}
				if e.enrichOne(c) {
					filledMu.Lock()
					filled++
					filledMu.Unlock()
				}
			}
		}()
	}

	for _, c := range pending {
		select {
		case workCh <- c:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(workCh)
	wg.Wait()

	return filled
}

// Errors returns the lookup failures collected during EnrichAll.
func (e *Enricher) Errors() []error {
	e.errorsMu.Lock()
	defer e.errorsMu.Unlock()
	return append([]error(nil), e.errors...)
}

func needsEnrichment(c *media.Classification) bool {
	return c.Kind == media.KindEpisode && c.Episode != nil && c.Episode.Title == ""
}

func (e *Enricher) enrichOne(c *media.Classification) bool {
	meta := e.lookup(c)
	if meta == nil {
		return false
	}

	// Only fill the gap; parsed names keep their original capitalization.
	if c.Episode.Title == "" && meta.EpisodeName != "" {
		c.Episode.Title = meta.EpisodeName
		return true
	}
	return false
}

func (e *Enricher) lookup(c *media.Classification) *EnrichedMetadata {
	key := metadataKey(c)
	if meta, ok := e.results.Load(key); ok {
		return meta
	}

	var lastErr error
	for _, p := range e.providers {
		meta, err := e.fetch(p, c)
		if err != nil {
			lastErr = err
			continue
		}
		e.results.Store(key, meta)
		return meta
	}

	if lastErr != nil {
		e.errorsMu.Lock()
		e.errors = append(e.errors, fmt.Errorf("%s: %w", key, lastErr))
		e.errorsMu.Unlock()
	}
	return nil
}

func (e *Enricher) fetch(p MetadataProvider, c *media.Classification) (*EnrichedMetadata, error) {
	return p.GetEpisodeInfo(c.Episode.Show, c.Episode.Season, c.Episode.Episode)
}

func metadataKey(c *media.Classification) string {
	return fmt.Sprintf("episode:%s:%d:%d", c.Episode.Show, c.Episode.Season, c.Episode.Episode)
}
