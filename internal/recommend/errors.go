package recommend

import (
	"errors"
	"fmt"
)

// Typed pipeline errors. Handlers map these to user-facing responses;
// raw transport errors never cross the API boundary.
var (
	// ErrEmptyInput means the user submitted blank text.
	ErrEmptyInput = errors.New("please enter a description of what you want to watch")

	// ErrNoRecommendations means the backend returned zero candidate titles
	// for a fresh search.
	ErrNoRecommendations = errors.New("could not generate recommendations, try a different query")

	// ErrNoMatchesInCatalog means candidates existed but none resolved
	// against the catalog.
	ErrNoMatchesInCatalog = errors.New("recommendations were found but none matched the catalog, try a more specific query")

	// ErrSessionNotFound means a continuation referenced an unknown or
	// expired session.
	ErrSessionNotFound = errors.New("recommendation session not found")
)

// GenerationError wraps a failure of the analyzer/generator barrier on a
// fresh search. The underlying cause text is preserved for display.
type GenerationError struct {
	cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("recommendation generation failed: %v", e.cause)
}

func (e *GenerationError) Unwrap() error {
	return e.cause
}
