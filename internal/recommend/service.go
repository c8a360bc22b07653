// Package recommend implements the recommendation reconciliation
// pipeline: it fans out to the query analyzer and title generator,
// resolves every candidate title against the catalog, deduplicates by
// catalog identity and tracks delivered items per session so that "load
// more" continuations never re-surface anything already shown.
package recommend

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hassaancode/CineSage/internal/catalog"
	"github.com/hassaancode/CineSage/internal/genai"
	"github.com/hassaancode/CineSage/internal/media"
)

// defaultResolveLimit caps how many catalog lookups run concurrently for
// one candidate batch.
const defaultResolveLimit = 8

// Analyzer extracts genres and context clues from raw user input.
type Analyzer interface {
	Analyze(ctx context.Context, userInput string) (*media.AnalyzedInput, error)
}

// Generator produces candidate title suggestions.
type Generator interface {
	Generate(ctx context.Context, userInput string, exclude []string) ([]genai.Candidate, error)
}

// Catalog resolves titles and search queries against the media catalog.
type Catalog interface {
	Search(ctx context.Context, query string, typeFilter media.Type) []media.Item
	ResolveByTitle(ctx context.Context, title string, mediaType media.Type) *media.Item
}

// ResultEnvelope is the pipeline output. Analysis is present only on the
// first page of a query, never on continuations.
type ResultEnvelope struct {
	SessionID string               `json:"sessionId"`
	Media     []media.Item         `json:"media"`
	Analysis  *media.AnalyzedInput `json:"analysis,omitempty"`
}

// Service orchestrates the recommendation pipeline.
type Service struct {
	analyzer     Analyzer
	generator    Generator
	catalog      Catalog
	sessions     *SessionStore
	logger       zerolog.Logger
	resolveLimit int
}

// NewService creates a new recommendation service.
func NewService(analyzer Analyzer, generator Generator, cat Catalog, logger zerolog.Logger) *Service {
	return &Service{
		analyzer:     analyzer,
		generator:    generator,
		catalog:      cat,
		sessions:     NewSessionStore(),
		logger:       logger.With().Str("component", "recommend").Logger(),
		resolveLimit: defaultResolveLimit,
	}
}

// Sessions returns the underlying session store.
func (s *Service) Sessions() *SessionStore {
	return s.sessions
}

// Start runs a fresh recommendation search: analysis and generation run
// concurrently and both must succeed, then every candidate is resolved
// against the catalog, deduplicated and recorded in a new session.
func (s *Service) Start(ctx context.Context, userInput string) (*ResultEnvelope, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return nil, ErrEmptyInput
	}

	var (
		analysis   *media.AnalyzedInput
		candidates []genai.Candidate
	)

	// Hard dependency pair: a failure of either call fails the search.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		analysis, err = s.analyzer.Analyze(gctx, userInput)
		return err
	})
	g.Go(func() error {
		var err error
		candidates, err = s.generator.Generate(gctx, userInput, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("Analyzer/generator barrier failed")
		return nil, &GenerationError{cause: err}
	}

	if len(candidates) == 0 {
		return nil, ErrNoRecommendations
	}

	resolved := s.resolveAll(ctx, candidates)
	items := dedupe(resolved, nil)

	if len(items) == 0 {
		return nil, ErrNoMatchesInCatalog
	}

	session := s.sessions.New(userInput)
	session.Record(items)

	s.logger.Info().
		Str("sessionId", session.ID).
		Int("candidates", len(candidates)).
		Int("results", len(items)).
		Msg("Recommendation search completed")

	return &ResultEnvelope{
		SessionID: session.ID,
		Media:     items,
		Analysis:  analysis,
	}, nil
}

// More continues an existing session: only the generator runs (the
// original analysis stays valid for the whole session), excluding the
// titles already delivered, and resolved items are re-filtered against
// the session's seen set in case the model re-suggests an excluded title.
// An empty generation is a normal "no more results" terminal state.
func (s *Service) More(ctx context.Context, sessionID string) (*ResultEnvelope, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if strings.TrimSpace(session.Query) == "" {
		return nil, ErrEmptyInput
	}

	candidates, err := s.generator.Generate(ctx, session.Query, session.Titles())
	if err != nil {
		s.logger.Error().Err(err).Str("sessionId", sessionID).Msg("Generator failed on continuation")
		return nil, &GenerationError{cause: err}
	}

	if len(candidates) == 0 {
		s.logger.Debug().Str("sessionId", sessionID).Msg("No further recommendations")
		return &ResultEnvelope{SessionID: sessionID, Media: []media.Item{}}, nil
	}

	resolved := s.resolveAll(ctx, candidates)
	items := dedupe(resolved, session.Seen())

	session.Record(items)

	s.logger.Info().
		Str("sessionId", sessionID).
		Int("candidates", len(candidates)).
		Int("results", len(items)).
		Msg("Recommendation continuation completed")

	return &ResultEnvelope{SessionID: sessionID, Media: items}, nil
}

// Suggest returns the top autocomplete suggestions for a partial query.
// An empty query yields an empty result, not an error.
func (s *Service) Suggest(ctx context.Context, query string) []media.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return []media.Item{}
	}

	items := s.catalog.Search(ctx, query, "")
	if len(items) > catalog.SuggestLimit {
		items = items[:catalog.SuggestLimit]
	}
	return items
}

// resolveAll resolves every candidate concurrently with a bounded worker
// pool. Results land in an indexed slice so output order follows
// generator emission order regardless of completion order; a failed or
// absent resolution leaves a nil slot and never aborts its siblings.
func (s *Service) resolveAll(ctx context.Context, candidates []genai.Candidate) []*media.Item {
	resolved := make([]*media.Item, len(candidates))

	var g errgroup.Group
	g.SetLimit(s.resolveLimit)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			resolved[i] = s.catalog.ResolveByTitle(ctx, candidate.Title, candidate.Type)
			return nil
		})
	}
	// Workers never return errors; Wait is just the join barrier.
	_ = g.Wait()

	return resolved
}

// dedupe collapses resolved items to one per (id, mediaType) key, keeping
// the first occurrence in candidate order, skipping unresolved slots and
// anything in the exclusion set.
func dedupe(resolved []*media.Item, exclude map[media.Key]struct{}) []media.Item {
	items := make([]media.Item, 0, len(resolved))
	seen := make(map[media.Key]struct{}, len(resolved))

	for _, item := range resolved {
		if item == nil {
			continue
		}
		key := item.Key()
		if _, ok := exclude[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, *item)
	}

	return items
}
