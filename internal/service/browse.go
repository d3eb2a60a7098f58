package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
)

// BrowseService serves the paginated movie lists (popular, search, genre)
type BrowseService struct {
	catalogue domain.Catalogue
	logger    *slog.Logger
}

// NewBrowseService creates a new browse service
func NewBrowseService(catalogue domain.Catalogue, logger *slog.Logger) *BrowseService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrowseService{catalogue: catalogue, logger: logger}
}

// Popular returns one page of popular movies
func (s *BrowseService) Popular(ctx context.Context, page int) (*domain.MoviePage, error) {
	page = NormalizePage(page)
	result, err := s.catalogue.FetchPopular(ctx, page)
	if err != nil {
		s.logger.Error("failed to load popular movies", "page", page, "error", err)
		return nil, err
	}
	s.logger.Debug("loaded popular movies", "page", page, "count", len(result.Items))
	return result, nil
}

// Search returns one page of title matches. A blank title yields an empty page.
func (s *BrowseService) Search(ctx context.Context, title string, page int) (*domain.MoviePage, error) {
	page = NormalizePage(page)
	result, err := s.catalogue.SearchByTitle(ctx, title, page)
	if err != nil {
		s.logger.Error("search failed", "query", title, "page", page, "error", err)
		return nil, err
	}
	s.logger.Debug("search complete", "query", title, "page", page, "results", result.TotalResults)
	return result, nil
}

// ByGenre returns one page of movies in a genre
func (s *BrowseService) ByGenre(ctx context.Context, genreID, page int) (*domain.MoviePage, error) {
	page = NormalizePage(page)
	result, err := s.catalogue.FetchByGenre(ctx, genreID, page)
	if err != nil {
		s.logger.Error("failed to load genre", "genre", genreID, "page", page, "error", err)
		return nil, err
	}
	return result, nil
}

// ImageURL resolves a poster or profile path
func (s *BrowseService) ImageURL(path string) string {
	return s.catalogue.ImageURL(path)
}

// NormalizePage clamps page into [1, domain.MaxPage]
func NormalizePage(page int) int {
	switch {
	case page < 1:
		return 1
	case page > domain.MaxPage:
		return domain.MaxPage
	default:
		return page
	}
}

// PageCount returns the number of pages to offer for a result page,
// preferring the server's count and falling back to total results
func PageCount(p *domain.MoviePage) int {
	if p == nil {
		return 0
	}
	if p.TotalPages > 0 {
		return min(p.TotalPages, domain.MaxPage)
	}
	return domain.TotalPages(p.TotalResults)
}
