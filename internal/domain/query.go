package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// QueryKind identifies which catalogue endpoint a query targets
type QueryKind int

const (
	KindPopular QueryKind = iota
	KindSearch
	KindMovie
	KindCredits
	KindGenres
	KindDiscover
)

func (k QueryKind) String() string {
	switch k {
	case KindPopular:
		return "popular"
	case KindSearch:
		return "search"
	case KindMovie:
		return "movie"
	case KindCredits:
		return "credits"
	case KindGenres:
		return "genres"
	case KindDiscover:
		return "discover"
	default:
		return "unknown"
	}
}

// CatalogueQuery describes one outbound catalogue request.
// Values are built with the constructors below and never mutated.
type CatalogueQuery struct {
	Kind    QueryKind
	Title   string
	Page    int
	MovieID int
	GenreID int
}

func PopularQuery(page int) CatalogueQuery {
	return CatalogueQuery{Kind: KindPopular, Page: page}
}

func SearchQuery(title string, page int) CatalogueQuery {
	return CatalogueQuery{Kind: KindSearch, Title: strings.TrimSpace(title), Page: page}
}

func MovieQuery(movieID int) CatalogueQuery {
	return CatalogueQuery{Kind: KindMovie, MovieID: movieID}
}

func CreditsQuery(movieID int) CatalogueQuery {
	return CatalogueQuery{Kind: KindCredits, MovieID: movieID}
}

func GenresQuery() CatalogueQuery {
	return CatalogueQuery{Kind: KindGenres}
}

func DiscoverQuery(genreID, page int) CatalogueQuery {
	return CatalogueQuery{Kind: KindDiscover, GenreID: genreID, Page: page}
}

// EffectivePage returns Page, or 1 when unset
func (q CatalogueQuery) EffectivePage() int {
	if q.Page < 1 {
		return 1
	}
	return q.Page
}

// Paged returns true for list-type queries that carry a page number
func (q CatalogueQuery) Paged() bool {
	return q.Kind == KindPopular || q.Kind == KindSearch || q.Kind == KindDiscover
}

// Validate checks the fields required by the query kind
func (q CatalogueQuery) Validate() error {
	if q.Page < 0 {
		return fmt.Errorf("%w: page must be positive", ErrInvalidQuery)
	}
	switch q.Kind {
	case KindPopular, KindGenres:
		return nil
	case KindSearch:
		if strings.TrimSpace(q.Title) == "" {
			return fmt.Errorf("%w: search title is empty", ErrInvalidQuery)
		}
	case KindMovie, KindCredits:
		if q.MovieID <= 0 {
			return fmt.Errorf("%w: movie id is required", ErrInvalidQuery)
		}
	case KindDiscover:
		if q.GenreID <= 0 {
			return fmt.Errorf("%w: genre id is required", ErrInvalidQuery)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidQuery, q.Kind)
	}
	return nil
}

// Path returns the endpoint path relative to the catalogue base URL
func (q CatalogueQuery) Path() string {
	switch q.Kind {
	case KindPopular:
		return "/movie/popular"
	case KindSearch:
		return "/search/movie"
	case KindMovie:
		return fmt.Sprintf("/movie/%d", q.MovieID)
	case KindCredits:
		return fmt.Sprintf("/movie/%d/credits", q.MovieID)
	case KindGenres:
		return "/genre/movie/list"
	case KindDiscover:
		return "/discover/movie"
	default:
		return ""
	}
}

// Params returns the operation-specific query-string values.
// The access credential is not included.
func (q CatalogueQuery) Params() url.Values {
	params := url.Values{}
	switch q.Kind {
	case KindSearch:
		params.Set("query", q.Title)
	case KindDiscover:
		params.Set("with_genres", strconv.Itoa(q.GenreID))
	}
	if q.Paged() {
		params.Set("page", strconv.Itoa(q.EffectivePage()))
	}
	return params
}
