package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/saavnx/internal/dispatch"
	"github.com/desertthunder/saavnx/internal/formatter"
	"github.com/desertthunder/saavnx/internal/models"
	"github.com/desertthunder/saavnx/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	ResultsView
	DetailView
)

// Catalog answers the queries the TUI issues. [dispatch.Dispatcher] satisfies it.
type Catalog interface {
	Result(ctx context.Context, q models.RawQuery) models.Envelope
	GetSong(ctx context.Context, q models.RawQuery) models.Envelope
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	catalog Catalog
	limit   *int
	width   int
	height  int
	input   textinput.Model
	spinner spinner.Model
	loading bool
	query   string
	listing *formatter.Listing
	results list.Model
	song    *formatter.Song
	lyrics  string
	detail  viewport.Model
	err     error
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model. A non-nil limit truncates every result list.
func NewModel(ctx context.Context, catalog Catalog, limit *int) *Model {
	input := textinput.New()
	input.Placeholder = "Song name or jiosaavn.com link"
	input.CharLimit = 512
	input.Width = 60
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &Model{
		ctx:     ctx,
		view:    SearchView,
		catalog: catalog,
		limit:   limit,
		input:   input,
		spinner: s,
		results: list.New(nil, list.NewDefaultDelegate(), 0, 0),
		detail:  viewport.New(0, 0),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init starts the cursor blinking in the search box.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.SetSize(msg.Width-4, msg.Height-4)
		m.detail.Width = msg.Width - 4
		m.detail.Height = msg.Height - 6
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		m.loading = false
		switch msg.kind {
		case MsgResultsFetched:
			return m.handleResults(msg.data)
		case MsgSongFetched:
			return m.handleSong(msg.data)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case SearchView:
		body = m.renderSearch()
	case ResultsView:
		body = m.renderResults()
	case DetailView:
		body = m.renderDetail()
	}

	if m.err != nil {
		body = fmt.Sprintf("%s\n\n%s", body, styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	return body
}

func (m *Model) handleResults(data fetched) (tea.Model, tea.Cmd) {
	if data.err != nil {
		m.err = data.err
		return m, nil
	}
	if len(data.listing.Songs) == 0 {
		m.err = fmt.Errorf("%w: no songs for %q", shared.ErrNotFound, data.query)
		return m, nil
	}

	m.err = nil
	m.query = data.query
	m.listing = data.listing
	m.results.SetItems(songItems(data.listing.Songs))
	m.results.Select(0)
	m.results.Title = data.listing.Title
	if m.results.Title == "" {
		m.results.Title = fmt.Sprintf("Results for %q", data.query)
	}
	m.input.Blur()
	m.view = ResultsView
	return m, nil
}

func (m *Model) handleSong(data fetched) (tea.Model, tea.Cmd) {
	if data.err != nil {
		m.err = data.err
		return m, nil
	}
	if len(data.listing.Songs) == 0 {
		m.err = fmt.Errorf("%w: song %s", shared.ErrNotFound, data.query)
		return m, nil
	}

	m.err = nil
	m.showDetail(data.listing.Songs[0], data.listing.Lyrics)
	return m, nil
}

func (m *Model) showDetail(song formatter.Song, lyrics string) {
	m.song = &song
	m.lyrics = lyrics
	m.detail.SetContent(songDetail(song, lyrics))
	m.detail.GotoTop()
	m.view = DetailView
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.listing == nil {
			return m, tea.Quit
		}
		m.input.Blur()
		m.view = ResultsView
		return m, nil
	case "enter":
		if m.loading {
			return m, nil
		}
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			m.err = errors.New(dispatch.MsgResultQueryRequired)
			return m, nil
		}
		m.err = nil
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.search(query))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.results.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "s":
		m.err = nil
		m.view = SearchView
		return m, m.input.Focus()
	case "enter":
		if m.loading {
			return m, nil
		}
		item, ok := m.results.SelectedItem().(songItem)
		if !ok {
			return m, nil
		}
		if item.song.ID == "" {
			m.showDetail(item.song, "")
			return m, nil
		}
		m.err = nil
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchSong(item.song.ID))
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.err = nil
		m.view = ResultsView
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// search resolves any query kind the way the /result/ endpoint does.
func (m *Model) search(query string) tea.Cmd {
	ctx, catalog, limit := m.ctx, m.catalog, m.limit
	return func() tea.Msg {
		env := catalog.Result(ctx, models.RawQuery{Text: query, Limit: limit})
		listing, err := formatter.FromEnvelope(env)
		return resultsFetchedMsg(query, listing, err)
	}
}

func (m *Model) fetchSong(id string) tea.Cmd {
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		lyrics := "true"
		env := catalog.GetSong(ctx, models.RawQuery{Text: id, Lyrics: &lyrics})
		listing, err := formatter.FromEnvelope(env)
		return songFetchedMsg(id, listing, err)
	}
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Search JioSaavn")
	body := m.input.View()
	if m.loading {
		body = fmt.Sprintf("%s\n\n%s Resolving query...", body, m.spinner.View())
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.back}
	return fmt.Sprintf("%s\n%s\n\n%s", title, body, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderResults() string {
	view := m.results.View()
	if m.loading {
		view = fmt.Sprintf("%s\n%s Fetching song...", view, m.spinner.View())
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", view, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderDetail() string {
	if m.song == nil {
		return styles.warn.Render("No song selected")
	}

	title := styles.title.Render(m.song.Title)
	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.detail.View(), m.help.ShortHelpView(helpKeys))
}

// songDetail lays out the song's fields followed by its lyrics.
func songDetail(song formatter.Song, lyrics string) string {
	var b strings.Builder

	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s %s\n", styles.label.Render(label), value)
		}
	}
	field("Artist", song.Artist)
	field("Album", song.Album)
	field("Year", song.Year)
	if song.Duration > 0 {
		field("Duration", shared.FormatDuration(song.Duration))
	}
	field("Link", song.URL)

	b.WriteString("\n")
	if lyrics == "" {
		b.WriteString(styles.help.Render("No lyrics available"))
	} else {
		b.WriteString(styles.ok.Render("Lyrics"))
		b.WriteString("\n\n")
		b.WriteString(formatter.LyricsText(lyrics))
	}
	return b.String()
}
