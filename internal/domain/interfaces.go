package domain

import "context"

// Catalogue is the read-only movie metadata source.
// Implementations must be safe for concurrent use; overlapping calls are independent.
type Catalogue interface {
	// FetchPopular returns one page of currently popular movies
	FetchPopular(ctx context.Context, page int) (*MoviePage, error)

	// SearchByTitle returns one page of movies matching title.
	// An empty title yields an empty page without contacting the service.
	SearchByTitle(ctx context.Context, title string, page int) (*MoviePage, error)

	// FetchMovieDetail returns the full record for one movie (ErrNotFound if unknown)
	FetchMovieDetail(ctx context.Context, movieID int) (*MovieDetail, error)

	// FetchCredits returns the cast of one movie; an empty cast is not an error
	FetchCredits(ctx context.Context, movieID int) (*Credits, error)

	// FetchGenres returns every movie genre the service knows
	FetchGenres(ctx context.Context) (GenreSet, error)

	// FetchByGenre returns one page of movies belonging to genreID
	FetchByGenre(ctx context.Context, genreID, page int) (*MoviePage, error)

	// ImageURL resolves a relative image path, or returns a placeholder
	ImageURL(path string) string
}
