package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

const scoreboardLimit = 100

var (
	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	sizeTabStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)

	activeSizeTabStyle = sizeTabStyle.
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(boardColor)

	emptyScoresStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 2)
)

// scoreboardKeys are the bindings of the scoreboard screen.
type scoreboardKeys struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Quit key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "smaller size")),
		Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "larger size")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreStats is the part of the score store the scoreboard reads.
type ScoreStats interface {
	TopScores(size storage.Size, limit int) ([]storage.ScoreEntry, error)
	GetAllStats() ([]storage.Stats, error)
}

// ScoreboardModel shows the best runs of one board size at a time. The
// sizes offered are those with at least one recorded run.
type ScoreboardModel struct {
	store  ScoreStats
	sizes  []storage.Stats
	cursor int
	scores []storage.ScoreEntry
	err    error

	table table.Model
	keys  scoreboardKeys
	help  help.Model

	width  int
	height int
	done   bool
}

// NewScoreboardModel creates a scoreboard opened on initial, or on the first
// recorded size when initial has no runs.
func NewScoreboardModel(store ScoreStats, initial storage.Size, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		keys:   defaultScoreboardKeys(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = newScoreTable(width, height)

	sizes, err := store.GetAllStats()
	if err != nil {
		m.err = err
	}
	m.sizes = sizes

	for i, st := range m.sizes {
		if st.Size == initial {
			m.cursor = i
		}
	}
	m.refresh()

	return m
}

// newScoreTable builds the score table for a window of width x height.
func newScoreTable(width, height int) table.Model {
	dateWidth := 12
	if width > 70 {
		dateWidth = min(width-54, 20)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 8},
			{Title: "Moves", Width: 7},
			{Title: "Tile", Width: 6},
			{Title: "Played", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(darkText).
		Background(tileBackground(2048)).
		Bold(false)
	t.SetStyles(styles)

	return t
}

// current returns the stats of the selected size. ok is false when no run
// was recorded yet.
func (m *ScoreboardModel) current() (storage.Stats, bool) {
	if len(m.sizes) == 0 {
		return storage.Stats{}, false
	}
	return m.sizes[m.cursor], true
}

// refresh reloads the scores of the selected size into the table.
func (m *ScoreboardModel) refresh() {
	m.scores = nil
	if st, ok := m.current(); ok {
		scores, err := m.store.TopScores(st.Size, scoreboardLimit)
		if err != nil {
			m.err = err
		}
		m.scores = scores
	}

	m.table.SetRows(scoreRows(m.scores))
	m.table.GotoTop()
}

// scoreRows formats entries as table rows. Runs that reached the win tile
// are starred.
func scoreRows(entries []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		tile := strconv.FormatUint(uint64(e.MaxTile), 10)
		if e.Won {
			tile += "*"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.FormatUint(uint64(e.Score), 10),
			strconv.FormatUint(uint64(e.Moves), 10),
			tile,
			e.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	return rows
}

// step moves the selection by delta sizes, wrapping around.
func (m *ScoreboardModel) step(delta int) {
	if len(m.sizes) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.sizes)) % len(m.sizes)
	m.refresh()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(msg.Width, msg.Height)
		m.table.SetRows(scoreRows(m.scores))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.done {
		return ""
	}

	st, ok := m.current()

	title := "HIGH SCORES"
	if ok {
		title += " - " + st.Size.String()
	}

	sections := []string{
		titleStyle.Render(title),
		m.renderSizes(),
	}

	if len(m.scores) == 0 {
		sections = append(sections, panelStyle.Render(
			emptyScoresStyle.Render("No scores recorded yet.\nLose a game to get on the board!")))
	} else {
		sections = append(sections, panelStyle.Render(m.table.View()))
	}

	if ok {
		sections = append(sections, statusStyle.Render(fmt.Sprintf(
			"%d games  %d wins  best %d  avg %.0f  best tile %d",
			st.GamesCount, st.Wins, st.HighScore, st.AvgScore, st.BestTile)))
	}
	if m.err != nil {
		sections = append(sections, errorStyle.Render(m.err.Error()))
	}
	sections = append(sections, helpStyle.Render(m.help.View(m.keys)))

	body := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body)
}

// renderSizes draws one tab per recorded size. When the tabs do not fit the
// window only the selected size is shown.
func (m ScoreboardModel) renderSizes() string {
	if len(m.sizes) == 0 {
		return ""
	}

	tabs := make([]string, len(m.sizes))
	for i, st := range m.sizes {
		style := sizeTabStyle
		if i == m.cursor {
			style = activeSizeTabStyle
		}
		tabs[i] = style.Render(st.Size.String())
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width {
		line = activeSizeTabStyle.Render("‹ " + m.sizes[m.cursor].Size.String() + " ›")
	}
	return line
}

// Done reports whether the user left the scoreboard.
func (m ScoreboardModel) Done() bool {
	return m.done
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(store ScoreStats, initial storage.Size, width, height int) error {
	p := tea.NewProgram(NewScoreboardModel(store, initial, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
