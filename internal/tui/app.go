package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Screen identifies what the body of the UI shows
type Screen int

const (
	ScreenPopular Screen = iota
	ScreenSearch
	ScreenGenres
	ScreenProfile
	ScreenDetail
	ScreenLogin
)

// tabs are the screens reachable with tab/shift+tab, in order
var tabs = []Screen{ScreenPopular, ScreenSearch, ScreenGenres, ScreenProfile}

func (s Screen) String() string {
	switch s {
	case ScreenPopular:
		return "Popular"
	case ScreenSearch:
		return "Search"
	case ScreenGenres:
		return "Genres"
	case ScreenProfile:
		return "Profile"
	case ScreenDetail:
		return "Movie"
	case ScreenLogin:
		return "Login"
	default:
		return ""
	}
}

// Session is the part of the session store the UI drives
type Session interface {
	Login(ctx context.Context, username, password string) (*domain.SessionRecord, error)
	Logout() error
	IsAuthenticated() bool
	CurrentUser() *domain.SessionRecord
	Subscribe(obs domain.SessionObserver) (unsubscribe func())
}

// sessionBuffer is the capacity of the session change channel
const sessionBuffer = 16

// listState is one paginated movie list (popular, search results, genre results)
type listState struct {
	page    *domain.MoviePage
	pageNum int
	cursor  int
	seq     int // Sequence of the request whose response is expected
	loading bool
	err     error
	filter  string
	visible []service.FilterResult
}

func (l *listState) setPage(p *domain.MoviePage) {
	l.page = p
	if p != nil && p.Page > 0 {
		l.pageNum = p.Page
	}
	l.cursor = 0
	l.refilter()
}

func (l *listState) refilter() {
	var items []domain.MovieSummary
	if l.page != nil {
		items = l.page.Items
	}
	l.visible = service.FilterMovies(items, l.filter)
	if l.cursor >= len(l.visible) {
		l.cursor = max(len(l.visible)-1, 0)
	}
}

func (l *listState) selected() (domain.MovieSummary, bool) {
	if l.cursor < 0 || l.cursor >= len(l.visible) {
		return domain.MovieSummary{}, false
	}
	return l.visible[l.cursor].Movie, true
}

// Model is the root Bubble Tea model
type Model struct {
	browse      *service.BrowseService
	movies      *service.MovieService
	genreSvc    *service.GenreService
	session     Session
	sessionCh   chan domain.SessionChange
	unsubscribe func()
	castLimit   int

	keys      KeyMap
	help      help.Model
	spinner   spinner.Model
	paginator paginator.Model

	width  int
	height int

	screen   Screen
	returnTo Screen // Screen to restore when leaving Detail or Login

	popular listState
	search  listState
	genre   listState

	searchInput textinput.Model
	searchQuery string
	filterInput textinput.Model
	filtering   bool

	genres        domain.GenreSet
	genreCursor   int
	genresLoading bool
	genresErr     error
	selectedGenre *domain.Genre

	detail        *service.MovieView
	detailSeq     int
	detailLoading bool
	detailErr     error

	usernameInput textinput.Model
	passwordInput textinput.Model
	loginFocus    int
	loginErr      string
	loginPending  bool

	user     *domain.SessionRecord
	seq      int
	status   string
	statusID int
}

// NewModel creates the root model and subscribes it to session changes
func NewModel(
	browse *service.BrowseService,
	movies *service.MovieService,
	genres *service.GenreService,
	session Session,
	castLimit int,
) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle

	pg := paginator.New()
	pg.Type = paginator.Arabic
	pg.ArabicFormat = "Page %d of %d"

	search := textinput.New()
	search.Placeholder = "Search for a movie..."
	search.Prompt = "🔍 "
	search.CharLimit = 100

	filter := textinput.New()
	filter.Placeholder = "filter this page"
	filter.Prompt = "/"

	username := textinput.New()
	username.Placeholder = "Username"
	username.Prompt = "Username: "

	password := textinput.New()
	password.Placeholder = "Password"
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	if castLimit <= 0 {
		castLimit = 10
	}

	ch := make(chan domain.SessionChange, sessionBuffer)
	unsubscribe := session.Subscribe(NewChannelObserver(ch))

	m := Model{
		browse:        browse,
		movies:        movies,
		genreSvc:      genres,
		session:       session,
		sessionCh:     ch,
		unsubscribe:   unsubscribe,
		castLimit:     castLimit,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		spinner:       sp,
		paginator:     pg,
		screen:        ScreenPopular,
		searchInput:   search,
		filterInput:   filter,
		usernameInput: username,
		passwordInput: password,
		user:          session.CurrentUser(),
	}

	// The first popular page is requested by Init
	m.seq = 1
	m.popular.seq = 1
	m.popular.pageNum = 1
	m.popular.loading = true

	return m
}

// Init starts the spinner, loads the first popular page and listens for session changes
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		LoadPopularCmd(m.browse, m.popular.seq, 1),
		WaitForSessionChangeCmd(m.sessionCh),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PageLoadedMsg:
		ls := m.list(msg.Screen)
		if ls == nil || msg.Seq != ls.seq {
			// Superseded by a newer request
			return m, nil
		}
		ls.loading = false
		ls.err = nil
		ls.setPage(msg.Page)
		return m, nil

	case GenresLoadedMsg:
		m.genresLoading = false
		m.genresErr = nil
		m.genres = msg.Genres
		if m.genreCursor >= len(m.genres) {
			m.genreCursor = 0
		}
		// Drop a selection the reloaded list no longer has
		if m.selectedGenre != nil {
			if g, ok := m.genres.Lookup(m.selectedGenre.ID); ok {
				m.selectedGenre = &g
			} else {
				m.selectedGenre = nil
			}
		}
		return m, nil

	case MovieLoadedMsg:
		if msg.Seq != m.detailSeq {
			return m, nil
		}
		m.detailLoading = false
		m.detailErr = nil
		m.detail = msg.View
		return m, nil

	case ErrMsg:
		return m.handleErr(msg)

	case LoginResultMsg:
		return m.handleLoginResult(msg)

	case SessionChangedMsg:
		m.user = m.session.CurrentUser()
		if msg.Change.To == domain.Anonymous && m.screen == ScreenProfile {
			m.openLogin(ScreenProfile)
		}
		return m, WaitForSessionChangeCmd(m.sessionCh)

	case ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// list returns the list state backing a list screen, or nil
func (m *Model) list(s Screen) *listState {
	switch s {
	case ScreenPopular:
		return &m.popular
	case ScreenSearch:
		return &m.search
	case ScreenGenres:
		return &m.genre
	default:
		return nil
	}
}

// activeList returns the list shown on the current screen, or nil
func (m *Model) activeList() *listState {
	if m.screen == ScreenGenres && m.selectedGenre == nil {
		return nil
	}
	return m.list(m.screen)
}

func (m Model) handleErr(msg ErrMsg) (tea.Model, tea.Cmd) {
	switch msg.Screen {
	case ScreenDetail:
		if msg.Seq != m.detailSeq {
			return m, nil
		}
		m.detailLoading = false
		m.detailErr = msg.Err
	case ScreenGenres:
		if msg.Seq == 0 {
			m.genresLoading = false
			m.genresErr = msg.Err
			break
		}
		fallthrough
	default:
		ls := m.list(msg.Screen)
		if ls == nil || msg.Seq != ls.seq {
			return m, nil
		}
		ls.loading = false
		ls.err = msg.Err
	}
	return m.setStatus(msg.Error())
}

func (m Model) handleLoginResult(msg LoginResultMsg) (tea.Model, tea.Cmd) {
	m.loginPending = false
	switch {
	case msg.Err != nil:
		m.loginErr = "An error occurred during login"
		return m, nil
	case msg.User == nil:
		m.loginErr = "Invalid username or password"
		return m, nil
	}

	m.loginErr = ""
	m.usernameInput.SetValue("")
	m.passwordInput.SetValue("")
	m.usernameInput.Blur()
	m.passwordInput.Blur()
	m.user = msg.User
	m.screen = ScreenPopular
	return m.setStatus("Welcome, " + msg.User.Username)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch {
	case m.screen == ScreenLogin:
		return m.handleLoginKey(msg)
	case m.filtering:
		return m.handleFilterKey(msg)
	case m.screen == ScreenSearch && m.searchInput.Focused():
		return m.handleSearchInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(1)

	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(-1)

	case key.Matches(msg, m.keys.Login):
		if !m.session.IsAuthenticated() {
			return m.openLogin(m.screen), textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		return m.logout()
	}

	switch m.screen {
	case ScreenDetail:
		if key.Matches(msg, m.keys.Back) {
			m.screen = m.returnTo
		}
		return m, nil

	case ScreenProfile:
		if key.Matches(msg, m.keys.Enter) && !m.session.IsAuthenticated() {
			return m.openLogin(ScreenProfile), textinput.Blink
		}
		return m, nil

	case ScreenGenres:
		if m.selectedGenre == nil {
			return m.handleGenrePickerKey(msg)
		}
		if key.Matches(msg, m.keys.Back) {
			m.selectedGenre = nil
			return m, nil
		}

	case ScreenSearch:
		if key.Matches(msg, m.keys.Search) || key.Matches(msg, m.keys.Back) {
			cmd := m.searchInput.Focus()
			return m, cmd
		}
	}

	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ls := m.activeList()
	if ls == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if ls.cursor > 0 {
			ls.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if ls.cursor < len(ls.visible)-1 {
			ls.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if movie, ok := ls.selected(); ok {
			return m.openDetail(movie.ID)
		}
	case key.Matches(msg, m.keys.NextPage):
		if ls.page != nil && !ls.loading && ls.pageNum < service.PageCount(ls.page) {
			return m.loadList(m.screen, ls.pageNum+1)
		}
	case key.Matches(msg, m.keys.PrevPage):
		if !ls.loading && ls.pageNum > 1 {
			return m.loadList(m.screen, ls.pageNum-1)
		}
	case key.Matches(msg, m.keys.Reload):
		return m.loadList(m.screen, max(ls.pageNum, 1))
	case key.Matches(msg, m.keys.Filter):
		if ls.page != nil {
			m.filtering = true
			m.filterInput.SetValue(ls.filter)
			cmd := m.filterInput.Focus()
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleGenrePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.genreCursor > 0 {
			m.genreCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.genreCursor < len(m.genres)-1 {
			m.genreCursor++
		}
	case key.Matches(msg, m.keys.Reload):
		return m.loadGenres()
	case key.Matches(msg, m.keys.Filter):
		if len(m.genres) > 0 {
			m.filtering = true
			m.filterInput.SetValue("")
			cmd := m.filterInput.Focus()
			return m, cmd
		}
	case key.Matches(msg, m.keys.Enter):
		if m.genreCursor < len(m.genres) {
			g := m.genres[m.genreCursor]
			m.selectedGenre = &g
			m.genre = listState{}
			return m.loadList(ScreenGenres, 1)
		}
	}
	return m, nil
}

func (m Model) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchInput.Blur()
		return m, nil
	case tea.KeyTab:
		m.searchInput.Blur()
		return m.switchTab(1)
	case tea.KeyEnter:
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m.setStatus("Enter a title to search")
		}
		m.searchQuery = query
		m.searchInput.Blur()
		m.search.filter = ""
		return m.loadList(ScreenSearch, 1)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == ScreenGenres && m.selectedGenre == nil {
		return m.handleGenreJumpKey(msg)
	}

	ls := m.activeList()
	if ls == nil {
		m.filtering = false
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filterInput.Blur()
		ls.filter = ""
		ls.refilter()
		return m, nil
	case tea.KeyEnter:
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	ls.filter = m.filterInput.Value()
	ls.cursor = 0
	ls.refilter()
	return m, cmd
}

// handleGenreJumpKey moves the genre cursor to the best name match as the user types
func (m Model) handleGenreJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.filtering = false
		m.filterInput.Blur()
		return m.handleGenrePickerKey(msg)
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if g, ok := service.MatchGenre(m.genres, m.filterInput.Value()); ok {
		for i := range m.genres {
			if m.genres[i].ID == g.ID {
				m.genreCursor = i
				break
			}
		}
	}
	return m, cmd
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loginPending {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.usernameInput.Blur()
		m.passwordInput.Blur()
		m.loginErr = ""
		m.screen = m.returnTo
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		cmd := m.focusLogin(1 - m.loginFocus)
		return m, cmd
	case tea.KeyEnter:
		if m.loginFocus == 0 {
			cmd := m.focusLogin(1)
			return m, cmd
		}
		username := strings.TrimSpace(m.usernameInput.Value())
		password := m.passwordInput.Value()
		if username == "" {
			m.loginErr = "Username is required"
			cmd := m.focusLogin(0)
			return m, cmd
		}
		if password == "" {
			m.loginErr = "Password is required"
			return m, nil
		}
		m.loginErr = ""
		m.loginPending = true
		return m, LoginCmd(m.session, username, password)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusLogin(field int) tea.Cmd {
	m.loginFocus = field
	if field == 0 {
		m.passwordInput.Blur()
		return m.usernameInput.Focus()
	}
	m.usernameInput.Blur()
	return m.passwordInput.Focus()
}

func (m *Model) openLogin(returnTo Screen) Model {
	if m.screen != ScreenLogin {
		m.returnTo = returnTo
	}
	m.screen = ScreenLogin
	m.loginErr = ""
	m.focusLogin(0)
	return *m
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	if !m.session.IsAuthenticated() {
		return m, nil
	}
	err := m.session.Logout()
	m.user = m.session.CurrentUser()
	if err != nil {
		return m.setStatus("Logged out, but the saved session could not be removed: " + err.Error())
	}
	return m.setStatus("Logged out")
}

func (m Model) switchTab(delta int) (tea.Model, tea.Cmd) {
	current := 0
	target := m.screen
	if target == ScreenDetail || target == ScreenLogin {
		target = m.returnTo
	}
	for i, s := range tabs {
		if s == target {
			current = i
		}
	}
	next := tabs[(current+delta+len(tabs))%len(tabs)]
	m.screen = next
	m.filtering = false

	switch next {
	case ScreenSearch:
		if m.searchQuery == "" {
			cmd := m.searchInput.Focus()
			return m, cmd
		}
	case ScreenGenres:
		if m.genres == nil && !m.genresLoading {
			return m.loadGenres()
		}
	}
	return m, nil
}

// loadList requests page for a list screen, superseding any in-flight request for it
func (m Model) loadList(screen Screen, page int) (tea.Model, tea.Cmd) {
	ls := m.list(screen)
	if ls == nil {
		return m, nil
	}
	m.seq++
	ls.seq = m.seq
	ls.loading = true
	ls.err = nil
	ls.pageNum = page

	switch screen {
	case ScreenPopular:
		return m, LoadPopularCmd(m.browse, ls.seq, page)
	case ScreenSearch:
		return m, SearchCmd(m.browse, ls.seq, m.searchQuery, page)
	case ScreenGenres:
		if m.selectedGenre == nil {
			ls.loading = false
			return m, nil
		}
		return m, LoadGenreCmd(m.browse, ls.seq, m.selectedGenre.ID, page)
	}
	return m, nil
}

func (m Model) loadGenres() (tea.Model, tea.Cmd) {
	m.genresLoading = true
	m.genresErr = nil
	return m, LoadGenresCmd(m.genreSvc)
}

func (m Model) openDetail(movieID int) (tea.Model, tea.Cmd) {
	m.returnTo = m.screen
	m.screen = ScreenDetail
	m.seq++
	m.detailSeq = m.seq
	m.detailLoading = true
	m.detailErr = nil
	m.detail = nil
	return m, LoadMovieCmd(m.movies, m.detailSeq, movieID)
}

func (m Model) setStatus(status string) (tea.Model, tea.Cmd) {
	m.statusID++
	m.status = status
	return m, ClearStatusCmd(m.statusID)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return m, tea.Quit
}
