package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogueQuery_PathAndParams(t *testing.T) {
	tests := []struct {
		name   string
		query  CatalogueQuery
		path   string
		params string
	}{
		{"popular", PopularQuery(3), "/movie/popular", "page=3"},
		{"popular default page", PopularQuery(0), "/movie/popular", "page=1"},
		{"search", SearchQuery(" star wars ", 2), "/search/movie", "page=2&query=star+wars"},
		{"movie", MovieQuery(550), "/movie/550", ""},
		{"credits", CreditsQuery(550), "/movie/550/credits", ""},
		{"genres", GenresQuery(), "/genre/movie/list", ""},
		{"discover", DiscoverQuery(28, 1), "/discover/movie", "page=1&with_genres=28"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.query.Validate())
			assert.Equal(t, tt.path, tt.query.Path())
			assert.Equal(t, tt.params, tt.query.Params().Encode())
		})
	}
}

func TestCatalogueQuery_Validate(t *testing.T) {
	invalid := []CatalogueQuery{
		SearchQuery("   ", 1),
		MovieQuery(0),
		CreditsQuery(-1),
		DiscoverQuery(0, 1),
		PopularQuery(-2),
		{Kind: QueryKind(99)},
	}
	for _, q := range invalid {
		assert.ErrorIs(t, q.Validate(), ErrInvalidQuery, q.Kind.String())
	}
}

func TestQueryKind_String(t *testing.T) {
	assert.Equal(t, "discover", KindDiscover.String())
	assert.Equal(t, "unknown", QueryKind(99).String())
}
