package tmdb

import (
	"fmt"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// releaseDateLayout is the format of release_date values
const releaseDateLayout = "2006-01-02"

// MapMoviePage converts a list response to a domain page.
// Any item that fails to map fails the whole page.
func MapMoviePage(path string, resp ListResponse) (*domain.MoviePage, error) {
	if resp.Results == nil {
		return nil, &domain.DecodeError{Path: path, Field: "results"}
	}

	items := make([]domain.MovieSummary, 0, len(resp.Results))
	for i, dto := range resp.Results {
		movie, err := mapSummary(path, fmt.Sprintf("results[%d].", i), dto)
		if err != nil {
			return nil, err
		}
		items = append(items, movie)
	}

	totalResults := resp.TotalResults
	if totalResults < 0 {
		totalResults = 0
	}
	totalPages := resp.TotalPages
	if totalPages <= 0 {
		totalPages = domain.TotalPages(totalResults)
	}

	return &domain.MoviePage{
		Items:        items,
		Page:         resp.Page,
		TotalResults: totalResults,
		TotalPages:   totalPages,
	}, nil
}

// MapMovieDetail converts a /movie/{id} response to a domain detail
func MapMovieDetail(path string, dto MovieDetailDTO) (*domain.MovieDetail, error) {
	summary, err := mapSummary(path, "", dto.MovieDTO)
	if err != nil {
		return nil, err
	}

	genres, err := mapGenres(path, "genres", dto.Genres)
	if err != nil {
		return nil, err
	}

	var runtime *int
	if dto.Runtime != nil && *dto.Runtime >= 0 {
		minutes := *dto.Runtime
		runtime = &minutes
	}

	return &domain.MovieDetail{
		MovieSummary: summary,
		Overview:     dto.Overview,
		Runtime:      runtime,
		Genres:       genres,
	}, nil
}

// MapGenreSet converts a genre list response to a de-duplicated set
func MapGenreSet(path string, resp GenreListResponse) (domain.GenreSet, error) {
	if resp.Genres == nil {
		return nil, &domain.DecodeError{Path: path, Field: "genres"}
	}
	genres, err := mapGenres(path, "genres", resp.Genres)
	if err != nil {
		return nil, err
	}
	return domain.NewGenreSet(genres), nil
}

// MapCredits converts a credits response. An empty cast is valid.
func MapCredits(path string, resp CreditsResponse) (*domain.Credits, error) {
	if resp.Cast == nil {
		return nil, &domain.DecodeError{Path: path, Field: "cast"}
	}

	cast := make([]domain.CastMember, 0, len(resp.Cast))
	for i, dto := range resp.Cast {
		if dto.Name == nil {
			return nil, &domain.DecodeError{Path: path, Field: fmt.Sprintf("cast[%d].name", i)}
		}
		cast = append(cast, domain.CastMember{
			Name:        *dto.Name,
			Character:   dto.Character,
			ProfilePath: deref(dto.ProfilePath),
		})
	}
	return &domain.Credits{Cast: cast}, nil
}

// mapSummary converts a single movie, checking required fields
func mapSummary(path, prefix string, dto MovieDTO) (domain.MovieSummary, error) {
	if dto.ID == nil {
		return domain.MovieSummary{}, &domain.DecodeError{Path: path, Field: prefix + "id"}
	}
	if dto.Title == nil {
		return domain.MovieSummary{}, &domain.DecodeError{Path: path, Field: prefix + "title"}
	}

	return domain.MovieSummary{
		ID:          *dto.ID,
		Title:       *dto.Title,
		PosterPath:  deref(dto.PosterPath),
		ReleaseDate: parseReleaseDate(dto.ReleaseDate),
		VoteAverage: clampRating(dto.VoteAverage),
	}, nil
}

func mapGenres(path, field string, dtos []GenreDTO) ([]domain.Genre, error) {
	genres := make([]domain.Genre, 0, len(dtos))
	for i, dto := range dtos {
		if dto.ID == nil {
			return nil, &domain.DecodeError{Path: path, Field: fmt.Sprintf("%s[%d].id", field, i)}
		}
		genres = append(genres, domain.Genre{ID: *dto.ID, Name: dto.Name})
	}
	return genres, nil
}

// parseReleaseDate returns nil for empty or malformed dates
func parseReleaseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(releaseDateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func clampRating(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 10:
		return 10
	default:
		return v
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
