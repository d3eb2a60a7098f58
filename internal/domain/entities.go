package domain

import (
	"fmt"
	"time"
)

// PageSize is the number of movies the catalogue returns per list page
const PageSize = 20

// MaxPage is the highest page number the catalogue will serve
const MaxPage = 500

// MovieSummary represents a movie as it appears in list results
type MovieSummary struct {
	ID          int        // Server-assigned unique identifier
	Title       string     // Display title
	PosterPath  string     // Relative poster path, empty if none
	ReleaseDate *time.Time // Nil when unknown
	VoteAverage float64    // Audience rating, 0-10
}

// Year returns the release year (0 if unknown)
func (m MovieSummary) Year() int {
	if m.ReleaseDate == nil {
		return 0
	}
	return m.ReleaseDate.Year()
}

// FormattedRating returns the vote average as "7.3/10"
func (m MovieSummary) FormattedRating() string {
	return fmt.Sprintf("%.1f/10", m.VoteAverage)
}

// FormattedReleaseDate returns the release date in a human-readable format
func (m MovieSummary) FormattedReleaseDate() string {
	if m.ReleaseDate == nil {
		return "Unknown"
	}
	return m.ReleaseDate.Format("Jan 2, 2006")
}

// MovieDetail is the full record for a single movie
type MovieDetail struct {
	MovieSummary
	Overview string  // Plot synopsis
	Runtime  *int    // Minutes, nil when unknown
	Genres   []Genre // In server order
}

// FormattedRuntime returns the runtime in a human-readable format
func (m MovieDetail) FormattedRuntime() string {
	if m.Runtime == nil || *m.Runtime == 0 {
		return ""
	}
	h := *m.Runtime / 60
	mins := *m.Runtime % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// MoviePage is one page of a list-type query
type MoviePage struct {
	Items        []MovieSummary
	Page         int
	TotalResults int
	TotalPages   int
}

// Empty returns true if the page holds no movies
func (p *MoviePage) Empty() bool {
	return p == nil || len(p.Items) == 0
}

// TotalPages returns how many pages of PageSize are needed for totalResults,
// capped at MaxPage.
func TotalPages(totalResults int) int {
	if totalResults <= 0 {
		return 0
	}
	pages := (totalResults + PageSize - 1) / PageSize
	if pages > MaxPage {
		return MaxPage
	}
	return pages
}

// Genre is a catalogue genre
type Genre struct {
	ID   int
	Name string
}

// GenreSet is an ordered list of genres, unique by ID
type GenreSet []Genre

// NewGenreSet builds a GenreSet, dropping later duplicates of an ID
func NewGenreSet(genres []Genre) GenreSet {
	seen := make(map[int]bool, len(genres))
	set := make(GenreSet, 0, len(genres))
	for _, g := range genres {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		set = append(set, g)
	}
	return set
}

// Lookup returns the genre with the given ID
func (s GenreSet) Lookup(id int) (Genre, bool) {
	for _, g := range s {
		if g.ID == id {
			return g, true
		}
	}
	return Genre{}, false
}

// Names returns genre names in order
func (s GenreSet) Names() []string {
	names := make([]string, len(s))
	for i, g := range s {
		names[i] = g.Name
	}
	return names
}

// CastMember is one credited actor
type CastMember struct {
	Name        string
	Character   string
	ProfilePath string // Relative profile image path, empty if none
}

// Credits holds the cast of a movie
type Credits struct {
	Cast []CastMember
}

// Top returns at most n cast members in billing order
func (c *Credits) Top(n int) []CastMember {
	if c == nil {
		return nil
	}
	if n >= len(c.Cast) {
		return c.Cast
	}
	return c.Cast[:n]
}
