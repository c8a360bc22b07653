package catalog

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// genreCache holds the process-wide genre id to name mapping. It is
// populated once on the first successful fetch and never invalidated;
// concurrent first accesses collapse into a single upstream fetch.
type genreCache struct {
	mu     sync.RWMutex
	byID   map[int]string
	loaded bool
	group  singleflight.Group
}

func newGenreCache() *genreCache {
	return &genreCache{}
}

// GenreMap returns the genre id to display name mapping, merging the
// movie and TV genre lists with movie entries winning id collisions.
// Fail-soft: an empty map is returned on fetch failure and the fetch is
// retried on the next call. The returned map must not be mutated.
func (c *Client) GenreMap(ctx context.Context) map[int]string {
	c.genres.mu.RLock()
	if c.genres.loaded {
		defer c.genres.mu.RUnlock()
		return c.genres.byID
	}
	c.genres.mu.RUnlock()

	if !c.IsConfigured() {
		c.logger.Warn().Msg("TMDB API key not configured, returning empty genre map")
		return map[int]string{}
	}

	result, err, _ := c.genres.group.Do("genres", func() (interface{}, error) {
		byID, err := c.fetchGenreMap(ctx)
		if err != nil {
			return nil, err
		}

		c.genres.mu.Lock()
		c.genres.byID = byID
		c.genres.loaded = true
		c.genres.mu.Unlock()

		return byID, nil
	})
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to fetch genre lists")
		return map[int]string{}
	}

	return result.(map[int]string)
}

// fetchGenreMap fetches the movie and TV genre lists concurrently and
// merges them.
func (c *Client) fetchGenreMap(ctx context.Context) (map[int]string, error) {
	var movieGenres, tvGenres genreListResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		endpoint := fmt.Sprintf("%s/genre/movie/list", c.config.BaseURL)
		return c.doRequest(gctx, endpoint, url.Values{"language": {"en-US"}}, &movieGenres)
	})
	g.Go(func() error {
		endpoint := fmt.Sprintf("%s/genre/tv/list", c.config.BaseURL)
		return c.doRequest(gctx, endpoint, url.Values{"language": {"en-US"}}, &tvGenres)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[int]string, len(movieGenres.Genres)+len(tvGenres.Genres))
	for _, g := range movieGenres.Genres {
		byID[g.ID] = g.Name
	}
	for _, g := range tvGenres.Genres {
		if _, exists := byID[g.ID]; !exists {
			byID[g.ID] = g.Name
		}
	}

	c.logger.Info().Int("genres", len(byID)).Msg("Genre map populated")
	return byID, nil
}
