package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
)

// requestTimeout bounds every catalogue command so the UI always leaves its loading state
const requestTimeout = 30 * time.Second

// statusTimeout is how long transient status messages stay visible
const statusTimeout = 3 * time.Second

// Command factories for async operations

// LoadPopularCmd loads one page of popular movies
func LoadPopularCmd(svc *service.BrowseService, seq, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := svc.Popular(ctx, page)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading popular movies", Screen: ScreenPopular, Seq: seq}
		}
		return PageLoadedMsg{Screen: ScreenPopular, Seq: seq, Page: result}
	}
}

// SearchCmd loads one page of title search results
func SearchCmd(svc *service.BrowseService, seq int, title string, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := svc.Search(ctx, title, page)
		if err != nil {
			return ErrMsg{Err: err, Context: "searching", Screen: ScreenSearch, Seq: seq}
		}
		return PageLoadedMsg{Screen: ScreenSearch, Seq: seq, Page: result}
	}
}

// LoadGenreCmd loads one page of movies in a genre
func LoadGenreCmd(svc *service.BrowseService, seq, genreID, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := svc.ByGenre(ctx, genreID, page)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading genre", Screen: ScreenGenres, Seq: seq}
		}
		return PageLoadedMsg{Screen: ScreenGenres, Seq: seq, Page: result}
	}
}

// LoadGenresCmd loads the genre list
func LoadGenresCmd(svc *service.GenreService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		genres, err := svc.Genres(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading genres", Screen: ScreenGenres}
		}
		return GenresLoadedMsg{Genres: genres}
	}
}

// LoadMovieCmd loads detail and credits for one movie
func LoadMovieCmd(svc *service.MovieService, seq, movieID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		view, err := svc.Load(ctx, movieID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading movie", Screen: ScreenDetail, Seq: seq}
		}
		return MovieLoadedMsg{Seq: seq, View: view}
	}
}

// LoginCmd runs the session login
func LoginCmd(session Session, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		user, err := session.Login(ctx, username, password)
		return LoginResultMsg{User: user, Err: err}
	}
}

// WaitForSessionChangeCmd blocks until the session store reports a transition
func WaitForSessionChangeCmd(ch <-chan domain.SessionChange) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return SessionChangedMsg{Change: change}
	}
}

// ClearStatusCmd clears the status line after statusTimeout
func ClearStatusCmd(id int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
