package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/sync/errgroup"
)

// MovieView is everything the detail screen shows for one movie
type MovieView struct {
	Detail    *domain.MovieDetail
	Credits   *domain.Credits
	PosterURL string
}

// MovieService loads single-movie views
type MovieService struct {
	catalogue domain.Catalogue
	logger    *slog.Logger
}

// NewMovieService creates a new movie service
func NewMovieService(catalogue domain.Catalogue, logger *slog.Logger) *MovieService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MovieService{catalogue: catalogue, logger: logger}
}

// Load fetches detail and credits concurrently.
// A detail failure fails the load; a credits failure only empties the cast.
func (s *MovieService) Load(ctx context.Context, movieID int) (*MovieView, error) {
	var (
		detail  *domain.MovieDetail
		credits *domain.Credits
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail, err = s.catalogue.FetchMovieDetail(gctx, movieID)
		return err
	})
	g.Go(func() error {
		c, err := s.catalogue.FetchCredits(gctx, movieID)
		if err != nil {
			s.logger.Warn("failed to load credits", "movie", movieID, "error", err)
		}
		if c == nil {
			c = &domain.Credits{Cast: []domain.CastMember{}}
		}
		credits = c
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load movie", "movie", movieID, "error", err)
		return nil, err
	}

	return &MovieView{
		Detail:    detail,
		Credits:   credits,
		PosterURL: s.catalogue.ImageURL(detail.PosterPath),
	}, nil
}
