package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/hassaancode/CineSage/internal/media"
)

// Candidate is a single title suggestion from the generator.
type Candidate struct {
	Title string     `json:"title"`
	Type  media.Type `json:"type"`
}

// Generate produces candidate title suggestions for the user input.
// When exclude is non-empty the prompt asks the backend to avoid those
// titles (continuation requests). An empty candidate list is a valid
// result, not an error; individual candidates with a blank title or an
// unknown type are dropped.
func (c *Client) Generate(ctx context.Context, userInput string, exclude []string) ([]Candidate, error) {
	var out struct {
		Recommendations *[]struct {
			Title string `json:"title"`
			Type  string `json:"type"`
		} `json:"recommendations"`
	}

	if err := c.complete(ctx, generatePrompt(userInput, exclude), &out); err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}

	if out.Recommendations == nil {
		return nil, fmt.Errorf("generate recommendations: %w: missing recommendations field", ErrMalformedResponse)
	}

	candidates := make([]Candidate, 0, len(*out.Recommendations))
	for _, rec := range *out.Recommendations {
		title := strings.TrimSpace(rec.Title)
		if title == "" {
			continue
		}
		mediaType, err := media.ParseType(rec.Type)
		if err != nil {
			c.logger.Debug().Str("title", title).Str("type", rec.Type).Msg("Dropping candidate with unknown type")
			continue
		}
		candidates = append(candidates, Candidate{Title: title, Type: mediaType})
	}

	c.logger.Debug().
		Int("candidates", len(candidates)).
		Int("excluded", len(exclude)).
		Msg("Recommendations generated")

	return candidates, nil
}
