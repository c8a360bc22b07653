package catalog

// searchResponse is the response from TMDB search endpoints.
// The multi endpoint mixes movie, tv and person entries; typed endpoints
// return only their own kind and omit media_type.
type searchResponse struct {
	Page         int            `json:"page"`
	Results      []searchResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// searchResult is a single entry from TMDB search results. Movie and TV
// entries carry different title/date fields; both are present here and
// resolved during normalization.
type searchResult struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int   `json:"genre_ids"`
}

// genreListResponse is the response from TMDB genre list endpoints.
type genreListResponse struct {
	Genres []genreEntry `json:"genres"`
}

type genreEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// videosResponse is the response from TMDB /{type}/{id}/videos.
type videosResponse struct {
	ID      int          `json:"id"`
	Results []videoEntry `json:"results"`
}

type videoEntry struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// creditsResponse is the response from TMDB /{type}/{id}/credits.
type creditsResponse struct {
	ID   int          `json:"id"`
	Cast []castMember `json:"cast"`
	Crew []crewMember `json:"crew"`
}

type castMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	Order       int     `json:"order"`
	ProfilePath *string `json:"profile_path"`
}

type crewMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Job         string  `json:"job"`
	Department  string  `json:"department"`
	ProfilePath *string `json:"profile_path"`
}

// reviewsResponse is the response from TMDB /{type}/{id}/reviews.
type reviewsResponse struct {
	ID      int           `json:"id"`
	Results []reviewEntry `json:"results"`
}

type reviewEntry struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}

// errorResponse is an error from the TMDB API.
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}

// Person is a normalized cast or crew member.
type Person struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	ProfilePath string `json:"profilePath,omitempty"`
}

// Credits is the normalized credits output for a catalog item.
type Credits struct {
	Cast []Person `json:"cast"`
	Crew []Person `json:"crew,omitempty"`
}

// Review is a normalized user review for a catalog item.
type Review struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
