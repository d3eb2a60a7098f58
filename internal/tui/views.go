package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// chromeHeight is the number of lines used by header, footer and list captions
const chromeHeight = 10

// View renders the UI
func (m Model) View() string {
	var body string
	switch m.screen {
	case ScreenPopular:
		body = m.renderList(&m.popular, "Popular movies")
	case ScreenSearch:
		body = m.renderSearch()
	case ScreenGenres:
		body = m.renderGenres()
	case ScreenProfile:
		body = m.renderProfile()
	case ScreenDetail:
		body = m.renderDetail()
	case ScreenLogin:
		body = m.renderLogin()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	active := m.screen
	if active == ScreenDetail || active == ScreenLogin {
		active = m.returnTo
	}

	rendered := make([]string, 0, len(tabs))
	for _, s := range tabs {
		if s == active {
			rendered = append(rendered, styles.ActiveTab.Render(s.String()))
		} else {
			rendered = append(rendered, styles.InactiveTab.Render(s.String()))
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	var who string
	if m.user != nil {
		who = styles.SuccessStyle.Render("● " + m.user.Username)
	} else {
		who = styles.DimStyle.Render("○ not logged in")
	}

	gap := m.width - lipgloss.Width(tabBar) - lipgloss.Width(who)
	if gap < 1 {
		gap = 1
	}
	return styles.HeaderStyle.Render(tabBar + strings.Repeat(" ", gap) + who)
}

func (m Model) renderFooter() string {
	var status string
	if m.status != "" {
		status = styles.AccentStyle.Render(m.status) + "\n"
	}
	return styles.FooterStyle.Render(status + m.help.View(m.keys))
}

func (m Model) listRows() int {
	return max(m.height-chromeHeight, 5)
}

func (m Model) renderList(ls *listState, caption string) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(caption))
	b.WriteString("\n\n")

	switch {
	case ls.loading:
		b.WriteString(m.spinner.View() + " Loading...")
		return b.String()
	case ls.err != nil:
		b.WriteString(styles.ErrorStyle.Render("Error: " + ls.err.Error()))
		b.WriteString("\n" + styles.DimStyle.Render("press r to retry"))
		return b.String()
	case ls.page.Empty():
		b.WriteString(styles.DimStyle.Render("No movies found."))
		return b.String()
	}

	if m.filtering {
		b.WriteString(m.filterInput.View() + "\n")
	} else if ls.filter != "" {
		b.WriteString(styles.DimStyle.Render("filter: "+ls.filter) + "\n")
	}

	if len(ls.visible) == 0 {
		b.WriteString(styles.DimStyle.Render("No movies on this page match the filter."))
	}

	rows := m.listRows()
	start := 0
	if ls.cursor >= rows {
		start = ls.cursor - rows + 1
	}
	end := min(start+rows, len(ls.visible))

	for i := start; i < end; i++ {
		b.WriteString(renderMovieRow(ls.visible[i], i == ls.cursor))
		b.WriteString("\n")
	}

	p := m.paginator
	p.TotalPages = max(service.PageCount(ls.page), 1)
	p.Page = max(ls.pageNum-1, 0)
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%s · %d results", p.View(), ls.page.TotalResults)))

	return b.String()
}

func renderMovieRow(r service.FilterResult, selected bool) string {
	year := "    "
	if y := r.Movie.Year(); y > 0 {
		year = fmt.Sprintf("%d", y)
	}

	title := highlightMatches(r.Movie.Title, r.MatchedIndexes)
	line := fmt.Sprintf("%s  %s  %s",
		styles.DimStyle.Render(year),
		styles.RatingStyle.Render(fmt.Sprintf("★ %.1f", r.Movie.VoteAverage)),
		title,
	)
	if selected {
		return styles.SelectedRow.Render("▶ " + line)
	}
	return "  " + line
}

// highlightMatches styles the bytes of title at the given indexes
func highlightMatches(title string, indexes []int) string {
	if len(indexes) == 0 {
		return title
	}
	matched := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		matched[i] = true
	}

	var b strings.Builder
	for i, r := range title {
		if matched[i] {
			b.WriteString(styles.MatchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (m Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	if m.searchQuery == "" {
		b.WriteString(styles.DimStyle.Render("Type a title and press enter."))
		return b.String()
	}
	b.WriteString(m.renderList(&m.search, fmt.Sprintf("Results for %q", m.searchQuery)))
	return b.String()
}

func (m Model) renderGenres() string {
	if m.selectedGenre != nil {
		return m.renderList(&m.genre, m.selectedGenre.Name+styles.DimStyle.Render("  (esc for genres)"))
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Genres"))
	b.WriteString("\n\n")

	switch {
	case m.genresLoading:
		b.WriteString(m.spinner.View() + " Loading genres...")
		return b.String()
	case m.genresErr != nil:
		b.WriteString(styles.ErrorStyle.Render("Error: " + m.genresErr.Error()))
		return b.String()
	case len(m.genres) == 0:
		b.WriteString(styles.DimStyle.Render("No genres."))
		return b.String()
	}

	if m.filtering {
		b.WriteString(m.filterInput.View() + "\n")
	}

	rows := m.listRows()
	start := 0
	if m.genreCursor >= rows {
		start = m.genreCursor - rows + 1
	}
	end := min(start+rows, len(m.genres))
	for i := start; i < end; i++ {
		if i == m.genreCursor {
			b.WriteString(styles.SelectedRow.Render("▶ " + m.genres[i].Name))
		} else {
			b.WriteString("  " + m.genres[i].Name)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDetail() string {
	switch {
	case m.detailLoading:
		return m.spinner.View() + " Loading movie..."
	case m.detailErr != nil:
		return styles.ErrorStyle.Render("Error: "+m.detailErr.Error()) + "\n" +
			styles.DimStyle.Render("press esc to go back")
	case m.detail == nil || m.detail.Detail == nil:
		return ""
	}

	d := m.detail.Detail
	width := max(m.width-4, 20)

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(d.Title))
	b.WriteString("\n")

	meta := []string{d.FormattedReleaseDate()}
	if rt := d.FormattedRuntime(); rt != "" {
		meta = append(meta, rt)
	}
	meta = append(meta, styles.RatingStyle.Render("★ "+d.FormattedRating()))
	b.WriteString(styles.SubtitleStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	if len(d.Genres) > 0 {
		names := domain.GenreSet(d.Genres).Names()
		b.WriteString(styles.AccentStyle.Render(strings.Join(names, ", ")))
		b.WriteString("\n")
	}
	b.WriteString(styles.DimStyle.Render("Poster: " + m.detail.PosterURL))
	b.WriteString("\n\n")

	overview := d.Overview
	if overview == "" {
		overview = "No overview available."
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Render(overview))
	b.WriteString("\n\n")

	b.WriteString(styles.TitleStyle.Render("Cast"))
	b.WriteString("\n")
	cast := m.detail.Credits.Top(m.castLimit)
	if len(cast) == 0 {
		b.WriteString(styles.DimStyle.Render("No cast information."))
	}
	for _, c := range cast {
		line := "  " + c.Name
		if c.Character != "" {
			line += styles.DimStyle.Render(" as " + c.Character)
		}
		b.WriteString(line + "\n")
	}

	return styles.ActiveBorder.Width(width).Render(b.String())
}

func (m Model) renderLogin() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Log in"))
	b.WriteString("\n\n")
	b.WriteString(m.usernameInput.View())
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n\n")

	switch {
	case m.loginPending:
		b.WriteString(m.spinner.View() + " Logging in...")
	case m.loginErr != "":
		b.WriteString(styles.ErrorStyle.Render(m.loginErr))
	default:
		b.WriteString(styles.DimStyle.Render("enter to submit · esc to cancel"))
	}

	return styles.ActiveBorder.Width(44).Render(b.String())
}

func (m Model) renderProfile() string {
	if m.user == nil {
		return styles.InactiveBorder.Render(
			styles.SubtitleStyle.Render("You are not logged in.") + "\n" +
				styles.DimStyle.Render("press enter or L to log in"),
		)
	}

	token := m.user.Token
	if len(token) > 8 {
		token = token[:8] + "…"
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.user.Username))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", styles.DimStyle.Render("User ID:"), m.user.ID))
	b.WriteString(fmt.Sprintf("%s %s\n", styles.DimStyle.Render("Session:"), token))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("press O to log out"))
	return styles.ActiveBorder.Render(b.String())
}
