package genai

import (
	"context"
	"fmt"

	"github.com/hassaancode/CineSage/internal/media"
)

// Analyze extracts relevant genres and free-text context clues from raw
// user input. Transport and backend errors propagate to the caller; the
// semantic quality of the extracted genres is the model's problem, not
// ours.
func (c *Client) Analyze(ctx context.Context, userInput string) (*media.AnalyzedInput, error) {
	var out struct {
		RelevantGenres    *[]string `json:"relevantGenres"`
		OtherContextClues *string   `json:"otherContextClues"`
	}

	if err := c.complete(ctx, analyzePrompt(userInput), &out); err != nil {
		return nil, fmt.Errorf("analyze user input: %w", err)
	}

	// Shape validation: both fields must be present, even if empty.
	if out.RelevantGenres == nil || out.OtherContextClues == nil {
		return nil, fmt.Errorf("analyze user input: %w: missing fields", ErrMalformedResponse)
	}

	analysis := &media.AnalyzedInput{
		RelevantGenres:    *out.RelevantGenres,
		OtherContextClues: *out.OtherContextClues,
	}

	c.logger.Debug().
		Strs("genres", analysis.RelevantGenres).
		Msg("User input analyzed")

	return analysis, nil
}
