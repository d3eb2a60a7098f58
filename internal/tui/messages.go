package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
	Screen  Screen
	Seq     int // Request sequence, 0 if untracked
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PageLoadedMsg signals that a page of movies arrived for a list screen
type PageLoadedMsg struct {
	Screen Screen
	Seq    int
	Page   *domain.MoviePage
}

// GenresLoadedMsg signals that the genre list arrived
type GenresLoadedMsg struct {
	Genres domain.GenreSet
}

// MovieLoadedMsg signals that a movie detail view arrived
type MovieLoadedMsg struct {
	Seq  int
	View *service.MovieView
}

// LoginResultMsg carries the outcome of a login attempt.
// User is nil when the credentials were rejected.
type LoginResultMsg struct {
	User *domain.SessionRecord
	Err  error
}

// SessionChangedMsg signals a session transition
type SessionChangedMsg struct {
	Change domain.SessionChange
}

// ClearStatusMsg clears the status line
type ClearStatusMsg struct {
	ID int
}
