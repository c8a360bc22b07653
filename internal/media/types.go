// Package media holds the shared domain types for catalog records and
// query analysis results.
package media

import (
	"fmt"
	"strings"
)

// Type identifies whether an item is a movie or a TV series.
type Type string

const (
	TypeMovie Type = "movie"
	TypeTV    Type = "tv"
)

// ParseType validates and normalizes a media type string.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie":
		return TypeMovie, nil
	case "tv", "series":
		return TypeTV, nil
	default:
		return "", fmt.Errorf("unknown media type %q", s)
	}
}

// IsValid returns true if the type is one of the known media types.
func (t Type) IsValid() bool {
	return t == TypeMovie || t == TypeTV
}

// Item is the unified catalog record for a movie or TV series.
// Title and ReleaseDate are normalized from the type-specific source
// fields (movie title vs. series name, release date vs. first air date).
type Item struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"posterPath,omitempty"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	VoteAverage float64 `json:"voteAverage"`
	Popularity  float64 `json:"popularity"`
	GenreIDs    []int   `json:"genreIds,omitempty"`
	MediaType   Type    `json:"mediaType"`
	Reason      string  `json:"reason,omitempty"`
}

// Key is the identity key used for deduplication and exclusion.
// Catalog ids are only unique per type, so the pair is the entity identity.
type Key struct {
	ID        int  `json:"id"`
	MediaType Type `json:"mediaType"`
}

// Key returns the identity key for the item.
func (i Item) Key() Key {
	return Key{ID: i.ID, MediaType: i.MediaType}
}

// AnalyzedInput is the structured analysis of a user query.
type AnalyzedInput struct {
	RelevantGenres   []string `json:"relevantGenres"`
	OtherContextClues string  `json:"otherContextClues"`
}

// ContextClues returns OtherContextClues with the "none" sentinel
// (case-insensitive) normalized to the empty string.
func (a AnalyzedInput) ContextClues() string {
	clues := strings.TrimSpace(a.OtherContextClues)
	if strings.EqualFold(clues, "none") {
		return ""
	}
	return clues
}

// Video is a trailer, teaser or clip attached to a catalog item.
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// PickTrailer selects the best video to present as the trailer:
// an official YouTube trailer, then any YouTube trailer, then any
// YouTube video. Returns nil if nothing qualifies.
func PickTrailer(videos []Video) *Video {
	for i := range videos {
		v := &videos[i]
		if v.Type == "Trailer" && v.Site == "YouTube" && v.Official {
			return v
		}
	}
	for i := range videos {
		v := &videos[i]
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return v
		}
	}
	for i := range videos {
		if videos[i].Site == "YouTube" {
			return &videos[i]
		}
	}
	return nil
}
