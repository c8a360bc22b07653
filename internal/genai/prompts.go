package genai

import (
	"fmt"
	"strings"
)

const analyzePromptTemplate = `You are an AI assistant designed to analyze user input for movie recommendations.

Your task is to identify relevant movie genres and other context clues from the user's input.

Consider the following:
- The user's input may explicitly mention genres (e.g., "I like action movies").
- The user's input may contain implicit preferences (e.g., "I want something with a lot of suspense").
- Extract as many genres as possible and put them into the relevantGenres field, ordered by relevance.
- Extract any other context clues and put them in otherContextClues. Use "none" if there are no other clues.

Respond with a single JSON object of the shape:
{"relevantGenres": ["..."], "otherContextClues": "..."}

User input: %s`

const generatePromptTemplate = `You are a movie and TV recommendation engine.

Suggest movies and TV series that match the user's request. For each
suggestion give the exact release title and whether it is a movie or a
TV series.

Respond with a single JSON object of the shape:
{"recommendations": [{"title": "...", "type": "movie"}, {"title": "...", "type": "tv"}]}
%s
User request: %s`

// analyzePrompt builds the instruction for the query analyzer.
func analyzePrompt(userInput string) string {
	return fmt.Sprintf(analyzePromptTemplate, userInput)
}

// generatePrompt builds the instruction for the recommendation generator.
// When exclude is non-empty the backend is asked to avoid those titles;
// the caller must still re-filter since the model is not guaranteed to
// honor the exclusion.
func generatePrompt(userInput string, exclude []string) string {
	exclusion := ""
	if len(exclude) > 0 {
		exclusion = fmt.Sprintf("\nDo not suggest any of the following titles, the user has already seen them: %s.\n",
			strings.Join(exclude, "; "))
	}
	return fmt.Sprintf(generatePromptTemplate, exclusion, userInput)
}
