package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/sahilm/fuzzy"
)

// ErrGenreNotFound is returned when no genre name resembles the query
var ErrGenreNotFound = errors.New("no matching genre")

// GenreService lists genres and resolves them by name
type GenreService struct {
	catalogue domain.Catalogue
	logger    *slog.Logger
}

// NewGenreService creates a new genre service
func NewGenreService(catalogue domain.Catalogue, logger *slog.Logger) *GenreService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenreService{catalogue: catalogue, logger: logger}
}

// Genres returns every genre, sorted by name
func (s *GenreService) Genres(ctx context.Context) (domain.GenreSet, error) {
	genres, err := s.catalogue.FetchGenres(ctx)
	if err != nil {
		s.logger.Error("failed to load genres", "error", err)
		return nil, err
	}
	sorted := make(domain.GenreSet, len(genres))
	copy(sorted, genres)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	return sorted, nil
}

// Resolve fetches the genre list and returns the genre best matching name
func (s *GenreService) Resolve(ctx context.Context, name string) (domain.Genre, error) {
	genres, err := s.catalogue.FetchGenres(ctx)
	if err != nil {
		return domain.Genre{}, err
	}
	genre, ok := MatchGenre(genres, name)
	if !ok {
		return domain.Genre{}, fmt.Errorf("%w: %q", ErrGenreNotFound, name)
	}
	s.logger.Debug("resolved genre", "query", name, "genre", genre.Name, "id", genre.ID)
	return genre, nil
}

// MatchGenre picks the genre whose name best matches query.
// Exact (case-insensitive) beats prefix, prefix beats fuzzy.
func MatchGenre(genres domain.GenreSet, query string) (domain.Genre, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(genres) == 0 {
		return domain.Genre{}, false
	}

	best := -1
	bestScore := 0
	for i, g := range genres {
		score, ok := genreMatchScore(strings.ToLower(g.Name), query)
		if !ok {
			continue
		}
		if best == -1 || score < bestScore {
			best, bestScore = i, score
		}
	}
	if best == -1 {
		return domain.Genre{}, false
	}
	return genres[best], true
}

// genreMatchScore ranks a candidate; lower is better
func genreMatchScore(name, query string) (int, bool) {
	if name == query {
		return 0, true
	}
	if strings.HasPrefix(name, query) {
		return 10, true
	}
	if strings.Contains(name, query) {
		return 50, true
	}
	if lfuzzy.MatchFold(query, name) {
		return 100 + lfuzzy.RankMatchFold(query, name), true
	}
	return 0, false
}

// FilterResult is a movie matching a local filter, with match positions for highlighting
type FilterResult struct {
	Movie          domain.MovieSummary
	MatchedIndexes []int
	Score          int
}

// movieIndex implements sahilm/fuzzy.Source over lowercase titles
type movieIndex struct {
	lowerTitles []string
}

func (idx movieIndex) String(i int) string { return idx.lowerTitles[i] }

func (idx movieIndex) Len() int { return len(idx.lowerTitles) }

// FilterMovies fuzzy-filters an already loaded page by title, best match first.
// An empty query returns every movie in its original order.
func FilterMovies(movies []domain.MovieSummary, query string) []FilterResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		results := make([]FilterResult, len(movies))
		for i, m := range movies {
			results[i] = FilterResult{Movie: m}
		}
		return results
	}

	idx := movieIndex{lowerTitles: make([]string, len(movies))}
	for i, m := range movies {
		idx.lowerTitles[i] = strings.ToLower(m.Title)
	}

	matches := fuzzy.FindFrom(query, idx)
	results := make([]FilterResult, len(matches))
	for i, match := range matches {
		results[i] = FilterResult{
			Movie:          movies[match.Index],
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		}
	}
	return results
}
