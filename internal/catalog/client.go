// Package catalog wraps the TMDB API behind a fail-soft client that
// returns unified media records. Lookup failures degrade to empty results
// so that one bad call never aborts a whole recommendation batch.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/hassaancode/CineSage/internal/config"
	"github.com/hassaancode/CineSage/internal/media"
	"github.com/hassaancode/CineSage/internal/ratelimit"
)

var (
	ErrAPIKeyMissing = errors.New("TMDB API key is not configured")
	ErrAPIError      = errors.New("TMDB API error")
	ErrRateLimited   = errors.New("TMDB API rate limited")
)

// SuggestLimit is the number of autocomplete suggestions returned.
const SuggestLimit = 5

// Client is a TMDB catalog client.
type Client struct {
	httpClient *http.Client
	config     config.TMDBConfig
	logger     zerolog.Logger
	limiter    *ratelimit.Limiter
	cache      *searchCache
	genres     *genreCache
}

// NewClient creates a new catalog client.
func NewClient(cfg config.TMDBConfig, logger zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		config:  cfg,
		logger:  logger.With().Str("component", "catalog").Logger(),
		limiter: ratelimit.New("tmdb", cfg.RequestsPerSecond),
		cache:   newSearchCache(time.Duration(cfg.CacheTTLMinutes)*time.Minute, 1000),
		genres:  newGenreCache(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "tmdb"
}

// IsConfigured returns true if the API key is set.
func (c *Client) IsConfigured() bool {
	return c.config.APIKey != ""
}

// Test verifies connectivity to the TMDB API by making a configuration request.
func (c *Client) Test(ctx context.Context) error {
	if !c.IsConfigured() {
		return ErrAPIKeyMissing
	}

	endpoint := fmt.Sprintf("%s/configuration", c.config.BaseURL)

	var result struct {
		Images struct {
			BaseURL string `json:"base_url"`
		} `json:"images"`
	}

	return c.doRequest(ctx, endpoint, url.Values{}, &result)
}

// Search queries TMDB for the given text. With a valid type filter it hits
// the typed search endpoint; otherwise it uses multi search and drops
// non-movie/non-tv entries (persons). Fail-soft: any error is logged and
// an empty slice returned.
func (c *Client) Search(ctx context.Context, query string, typeFilter media.Type) []media.Item {
	if query == "" {
		return nil
	}
	if !c.IsConfigured() {
		c.logger.Warn().Msg("TMDB API key not configured, returning no results")
		return nil
	}

	cacheKey := fmt.Sprintf("search:%s:%s", typeFilter, query)
	if results, ok := c.cache.get(cacheKey); ok {
		c.logger.Debug().Str("query", query).Msg("Search cache hit")
		return results
	}

	endpoint := fmt.Sprintf("%s/search/multi", c.config.BaseURL)
	if typeFilter.IsValid() {
		endpoint = fmt.Sprintf("%s/search/%s", c.config.BaseURL, typeFilter)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("language", "en-US")
	params.Set("page", "1")
	params.Set("include_adult", "false")

	var response searchResponse
	if err := c.doRequest(ctx, endpoint, params, &response); err != nil {
		c.logger.Error().Err(err).Str("query", query).Msg("TMDB search failed")
		return nil
	}

	results := make([]media.Item, 0, len(response.Results))
	for _, raw := range response.Results {
		item, ok := normalize(raw, typeFilter)
		if !ok {
			continue
		}
		results = append(results, item)
	}

	c.cache.set(cacheKey, results)

	c.logger.Debug().
		Str("query", query).
		Str("type", string(typeFilter)).
		Int("results", len(results)).
		Msg("Search completed")

	return results
}

// ResolveByTitle resolves a title to its best catalog match by running a
// typed search and taking the first (catalog-ranked) result. Returns nil
// when the title is unknown to the catalog or the lookup fails.
func (c *Client) ResolveByTitle(ctx context.Context, title string, mediaType media.Type) *media.Item {
	results := c.Search(ctx, title, mediaType)
	if len(results) == 0 {
		return nil
	}
	item := results[0]
	return &item
}

// Videos fetches the videos (trailers, teasers, clips) attached to a
// catalog item. Fail-soft: empty slice on any error.
func (c *Client) Videos(ctx context.Context, id int, mediaType media.Type) []media.Video {
	if !c.IsConfigured() || !mediaType.IsValid() {
		return nil
	}

	endpoint := fmt.Sprintf("%s/%s/%d/videos", c.config.BaseURL, mediaType, id)
	params := url.Values{}
	params.Set("language", "en-US")

	var response videosResponse
	if err := c.doRequest(ctx, endpoint, params, &response); err != nil {
		c.logger.Error().Err(err).Int("id", id).Str("type", string(mediaType)).Msg("TMDB videos fetch failed")
		return nil
	}

	videos := make([]media.Video, len(response.Results))
	for i, v := range response.Results {
		videos[i] = media.Video{
			ID:       v.ID,
			Key:      v.Key,
			Name:     v.Name,
			Site:     v.Site,
			Type:     v.Type,
			Official: v.Official,
		}
	}
	return videos
}

// Credits fetches the cast and crew for a catalog item. Fail-soft: nil on
// any error.
func (c *Client) Credits(ctx context.Context, id int, mediaType media.Type) *Credits {
	if !c.IsConfigured() || !mediaType.IsValid() {
		return nil
	}

	endpoint := fmt.Sprintf("%s/%s/%d/credits", c.config.BaseURL, mediaType, id)

	var response creditsResponse
	if err := c.doRequest(ctx, endpoint, url.Values{}, &response); err != nil {
		c.logger.Error().Err(err).Int("id", id).Str("type", string(mediaType)).Msg("TMDB credits fetch failed")
		return nil
	}

	credits := &Credits{Cast: make([]Person, len(response.Cast))}
	for i, p := range response.Cast {
		credits.Cast[i] = Person{
			ID:          p.ID,
			Name:        p.Name,
			Role:        p.Character,
			ProfilePath: deref(p.ProfilePath),
		}
	}
	for _, p := range response.Crew {
		credits.Crew = append(credits.Crew, Person{
			ID:          p.ID,
			Name:        p.Name,
			Role:        p.Job,
			ProfilePath: deref(p.ProfilePath),
		})
	}
	return credits
}

// Reviews fetches user reviews for a catalog item. Fail-soft: empty slice
// on any error.
func (c *Client) Reviews(ctx context.Context, id int, mediaType media.Type) []Review {
	if !c.IsConfigured() || !mediaType.IsValid() {
		return nil
	}

	endpoint := fmt.Sprintf("%s/%s/%d/reviews", c.config.BaseURL, mediaType, id)
	params := url.Values{}
	params.Set("language", "en-US")

	var response reviewsResponse
	if err := c.doRequest(ctx, endpoint, params, &response); err != nil {
		c.logger.Error().Err(err).Int("id", id).Str("type", string(mediaType)).Msg("TMDB reviews fetch failed")
		return nil
	}

	reviews := make([]Review, len(response.Results))
	for i, r := range response.Results {
		reviews[i] = Review{
			ID:        r.ID,
			Author:    r.Author,
			Content:   r.Content,
			URL:       r.URL,
			CreatedAt: r.CreatedAt,
		}
	}
	return reviews
}

// ClearCache clears the search result cache.
func (c *Client) ClearCache() {
	c.cache.clear()
}

// doRequest performs a rate-limited HTTP GET request and decodes the JSON
// response.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("api_key", c.config.APIKey)
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.StatusMessage != "" {
			c.logger.Debug().
				Int("status", resp.StatusCode).
				Str("message", errResp.StatusMessage).
				Msg("TMDB API error")
		}

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: invalid API key", ErrAPIError)
		case http.StatusTooManyRequests:
			return ErrRateLimited
		default:
			return fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// normalize converts a raw TMDB search result to a unified media item.
// Returns false for entries that are neither movies nor series (persons
// from multi search).
func normalize(raw searchResult, fallbackType media.Type) (media.Item, bool) {
	mediaType := fallbackType
	switch raw.MediaType {
	case "movie":
		mediaType = media.TypeMovie
	case "tv":
		mediaType = media.TypeTV
	case "":
		// Typed search endpoints omit media_type; trust the filter.
	default:
		return media.Item{}, false
	}
	if !mediaType.IsValid() {
		return media.Item{}, false
	}

	item := media.Item{
		ID:          raw.ID,
		Overview:    raw.Overview,
		PosterPath:  deref(raw.PosterPath),
		VoteAverage: raw.VoteAverage,
		Popularity:  raw.Popularity,
		GenreIDs:    raw.GenreIDs,
		MediaType:   mediaType,
	}

	if mediaType == media.TypeMovie {
		item.Title = raw.Title
		item.ReleaseDate = raw.ReleaseDate
	} else {
		item.Title = raw.Name
		item.ReleaseDate = raw.FirstAirDate
	}

	return item, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
