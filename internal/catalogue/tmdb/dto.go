package tmdb

// Required fields are pointers (or nil-able slices) so the mapper can tell
// a missing field from a zero value.

// ListResponse is a paginated list of movies (popular, search, discover)
type ListResponse struct {
	Page         int        `json:"page"`
	Results      []MovieDTO `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

// MovieDTO is a movie as it appears in list results
type MovieDTO struct {
	ID          *int    `json:"id"`
	Title       *string `json:"title"`
	PosterPath  *string `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview,omitempty"`
	GenreIDs    []int   `json:"genre_ids,omitempty"`
	Popularity  float64 `json:"popularity,omitempty"`
}

// MovieDetailDTO is the response of /movie/{id}
type MovieDetailDTO struct {
	MovieDTO
	Runtime *int       `json:"runtime"`
	Genres  []GenreDTO `json:"genres"`
}

// GenreDTO is a single genre
type GenreDTO struct {
	ID   *int   `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse is the response of /genre/movie/list
type GenreListResponse struct {
	Genres []GenreDTO `json:"genres"`
}

// CreditsResponse is the response of /movie/{id}/credits
type CreditsResponse struct {
	ID   int       `json:"id"`
	Cast []CastDTO `json:"cast"`
}

// CastDTO is one cast entry
type CastDTO struct {
	Name        *string `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// StatusResponse is the error body the service sends with non-2xx responses
type StatusResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       *bool  `json:"success,omitempty"`
}
