package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalogue is an in-memory domain.Catalogue
type fakeCatalogue struct {
	mu    sync.Mutex
	calls []domain.CatalogueQuery

	page       *domain.MoviePage
	details    map[int]*domain.MovieDetail
	credits    map[int]*domain.Credits
	genres     domain.GenreSet
	err        error
	creditsErr error
}

func (f *fakeCatalogue) record(q domain.CatalogueQuery) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, q)
}

func (f *fakeCatalogue) FetchPopular(ctx context.Context, page int) (*domain.MoviePage, error) {
	f.record(domain.PopularQuery(page))
	return f.page, f.err
}

func (f *fakeCatalogue) SearchByTitle(ctx context.Context, title string, page int) (*domain.MoviePage, error) {
	f.record(domain.SearchQuery(title, page))
	return f.page, f.err
}

func (f *fakeCatalogue) FetchMovieDetail(ctx context.Context, id int) (*domain.MovieDetail, error) {
	f.record(domain.MovieQuery(id))
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.details[id]
	if !ok {
		return nil, &domain.RemoteError{StatusCode: 404}
	}
	return d, nil
}

func (f *fakeCatalogue) FetchCredits(ctx context.Context, id int) (*domain.Credits, error) {
	f.record(domain.CreditsQuery(id))
	if f.creditsErr != nil {
		return nil, f.creditsErr
	}
	return f.credits[id], nil
}

func (f *fakeCatalogue) FetchGenres(ctx context.Context) (domain.GenreSet, error) {
	f.record(domain.GenresQuery())
	return f.genres, f.err
}

func (f *fakeCatalogue) FetchByGenre(ctx context.Context, genreID, page int) (*domain.MoviePage, error) {
	f.record(domain.DiscoverQuery(genreID, page))
	return f.page, f.err
}

func (f *fakeCatalogue) ImageURL(path string) string {
	if path == "" {
		return "placeholder"
	}
	return "img" + path
}

var testGenres = domain.GenreSet{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 878, Name: "Science Fiction"},
}

func TestBrowseService_NormalizesPage(t *testing.T) {
	fake := &fakeCatalogue{page: &domain.MoviePage{Page: 1}}
	svc := NewBrowseService(fake, nil)

	_, err := svc.Popular(context.Background(), 0)
	require.NoError(t, err)
	_, err = svc.ByGenre(context.Background(), 28, 9999)
	require.NoError(t, err)

	require.Len(t, fake.calls, 2)
	assert.Equal(t, 1, fake.calls[0].Page)
	assert.Equal(t, domain.MaxPage, fake.calls[1].Page)
	assert.Equal(t, 28, fake.calls[1].GenreID)
}

func TestBrowseService_PropagatesErrors(t *testing.T) {
	fake := &fakeCatalogue{err: domain.ErrNetwork}
	svc := NewBrowseService(fake, nil)

	_, err := svc.Search(context.Background(), "alien", 1)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(nil))
	assert.Equal(t, 7, PageCount(&domain.MoviePage{TotalPages: 7, TotalResults: 9999}))
	assert.Equal(t, 3, PageCount(&domain.MoviePage{TotalResults: 41}))
	assert.Equal(t, domain.MaxPage, PageCount(&domain.MoviePage{TotalPages: 40000}))
}

func TestMovieService_Load(t *testing.T) {
	fake := &fakeCatalogue{
		details: map[int]*domain.MovieDetail{
			550: {MovieSummary: domain.MovieSummary{ID: 550, Title: "Fight Club", PosterPath: "/fc.jpg"}},
		},
		credits: map[int]*domain.Credits{
			550: {Cast: []domain.CastMember{{Name: "Edward Norton", Character: "The Narrator"}}},
		},
	}
	svc := NewMovieService(fake, nil)

	view, err := svc.Load(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "Fight Club", view.Detail.Title)
	assert.Equal(t, "img/fc.jpg", view.PosterURL)
	require.Len(t, view.Credits.Cast, 1)
	assert.Len(t, fake.calls, 2)
}

func TestMovieService_Load_CreditsFailureDegrades(t *testing.T) {
	fake := &fakeCatalogue{
		details: map[int]*domain.MovieDetail{
			1: {MovieSummary: domain.MovieSummary{ID: 1, Title: "One"}},
		},
		creditsErr: errors.New("boom"),
	}
	svc := NewMovieService(fake, nil)

	view, err := svc.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, view.Credits.Cast)
	assert.Equal(t, "placeholder", view.PosterURL)
}

func TestMovieService_Load_NotFound(t *testing.T) {
	svc := NewMovieService(&fakeCatalogue{}, nil)

	view, err := svc.Load(context.Background(), 404)
	assert.Nil(t, view)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenreService_GenresSortedByName(t *testing.T) {
	fake := &fakeCatalogue{genres: domain.GenreSet{{ID: 35, Name: "Comedy"}, {ID: 28, Name: "action"}}}
	svc := NewGenreService(fake, nil)

	genres, err := svc.Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"action", "Comedy"}, genres.Names())
	// Source slice untouched
	assert.Equal(t, "Comedy", fake.genres[0].Name)
}

func TestGenreService_Resolve(t *testing.T) {
	svc := NewGenreService(&fakeCatalogue{genres: testGenres}, nil)

	tests := []struct {
		query string
		want  int
	}{
		{"action", 28},
		{"ACTION", 28},
		{"adv", 12},
		{"fiction", 878},
		{"scifi", 878},
		{"cmdy", 35},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			genre, err := svc.Resolve(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, genre.ID)
		})
	}

	_, err := svc.Resolve(context.Background(), "western")
	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestMatchGenre_Empty(t *testing.T) {
	_, ok := MatchGenre(testGenres, "  ")
	assert.False(t, ok)
	_, ok = MatchGenre(nil, "action")
	assert.False(t, ok)
}

func TestFilterMovies(t *testing.T) {
	movies := []domain.MovieSummary{
		{ID: 1, Title: "The Matrix"},
		{ID: 2, Title: "Alien"},
		{ID: 3, Title: "The Matrix Reloaded"},
	}

	all := FilterMovies(movies, "")
	require.Len(t, all, 3)
	assert.Equal(t, 2, all[1].Movie.ID)

	matches := FilterMovies(movies, "matrix")
	require.Len(t, matches, 2)
	ids := []int{matches[0].Movie.ID, matches[1].Movie.ID}
	assert.ElementsMatch(t, []int{1, 3}, ids)
	assert.NotEmpty(t, matches[0].MatchedIndexes)

	assert.Empty(t, FilterMovies(movies, "zzz"))
}
