// Package tui provides the Bubble Tea integration for the 2048 game.
// It maps keys to session intents, renders the board and records finished
// runs in the score store.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// ScoreStore is the part of the score store the game screen uses.
type ScoreStore interface {
	SaveScore(r storage.Result) (int64, error)
	HighScore(size storage.Size) (uint32, error)
}

// Model is the Bubble Tea model for a 2048 session.
type Model struct {
	game    *game.Game
	store   ScoreStore
	cfg     config.Config
	runtime core.RuntimeConfig
	logger  board.Logger

	keys KeyMap
	help help.Model

	best     uint32 // Best stored score for the current size
	won      bool   // Win tile reached in this run
	showWin  bool   // Win banner visible until the next key
	recorded bool   // Result of this run already stored

	message  string
	isError  bool
	quitting bool
	width    int
	height   int
}

// NewModel creates a model around g and starts the session.
// store may be nil, in which case no score is recorded.
func NewModel(g *game.Game, store ScoreStore, cfg config.Config, rt core.RuntimeConfig, logger board.Logger) Model {
	if g.Paused() {
		g.TogglePause()
	}

	m := Model{
		game:    g,
		store:   store,
		cfg:     cfg,
		runtime: rt,
		logger:  logger,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		width:   rt.ScreenW,
		height:  rt.ScreenH,
	}
	m.won = g.Board().MaxTile() >= cfg.WinTile
	m.refreshBest()

	logger.Info("started run", "run", rt.RunID, "width", g.W(), "height", g.H())
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	m.showWin = false

	switch action {
	case core.ActionQuit:
		m.quitting = true
		m.logger.Info("quit", "run", m.runtime.RunID, "moves", m.game.Moves(), "score", m.game.Score())
		return m, tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionPause:
		m.game.TogglePause()

	case core.ActionUndo:
		m.game.Undo()

	case core.ActionReset:
		if !m.game.Paused() {
			m.game.Reset()
			m.newRun()
		}

	case core.ActionSave:
		m.save()

	case core.ActionLoad:
		m.load()

	case core.ActionWiden, core.ActionNarrow, core.ActionTaller, core.ActionShorter:
		m.resize(action)

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		dx, dy, _ := action.Delta()
		if m.game.Move(dx, dy) {
			m.message = ""
		}
	}

	m.step()
	return m, nil
}

// step runs the per-frame checks after an intent: loss and win detection.
func (m *Model) step() {
	if !m.game.Step() {
		m.record()
		return
	}
	if m.game.CanMove() {
		// An undo out of a loss continues the same run
		m.recorded = false
	}

	if !m.won && m.game.Board().MaxTile() >= m.cfg.WinTile {
		m.won = true
		m.showWin = true
		m.logger.Info("reached win tile", "run", m.runtime.RunID, "tile", m.cfg.WinTile, "moves", m.game.Moves())
	}
}

// record stores the result of a lost run once per loss. A run lost again
// after an undo replaces its earlier result.
func (m *Model) record() {
	if m.recorded {
		return
	}
	m.recorded = true

	s := m.game.Snapshot()
	if m.store == nil || s.Moves == 0 {
		return
	}

	result := storage.Result{
		RunID:   m.runtime.RunID,
		Size:    storage.Size{Width: s.Width, Height: s.Height},
		Score:   s.Score,
		Moves:   s.Moves,
		MaxTile: s.MaxTile,
		Won:     m.won,
	}
	if _, err := m.store.SaveScore(result); err != nil {
		m.logger.Warn("cannot record score", "run", m.runtime.RunID, "err", err)
		m.setError(err)
		return
	}

	m.best = max(m.best, s.Score)
	m.logger.Info("recorded score", "run", m.runtime.RunID, "score", s.Score, "moves", s.Moves, "max", s.MaxTile)
}

// newRun starts bookkeeping for a fresh run on the current board.
func (m *Model) newRun() {
	m.runtime.RunID = uuid.NewString()
	m.recorded = false
	m.won = m.game.Board().MaxTile() >= m.cfg.WinTile
	m.message = ""
	m.refreshBest()

	m.logger.Info("started run", "run", m.runtime.RunID, "width", m.game.W(), "height", m.game.H())
}

func (m *Model) refreshBest() {
	m.best = 0
	if m.store == nil {
		return
	}

	best, err := m.store.HighScore(storage.Size{Width: m.game.W(), Height: m.game.H()})
	if err != nil {
		m.logger.Warn("cannot read high score", "err", err)
		return
	}
	m.best = best
}

func (m *Model) resize(action core.Action) {
	if m.game.Paused() {
		return
	}

	dw, dh, _ := action.Resize()
	w := m.cfg.ClampWidth(m.game.W() + dw)
	h := m.cfg.ClampHeight(m.game.H() + dh)
	if w == m.game.W() && h == m.game.H() {
		return
	}

	m.game.SetBoardDimensions(w, h)
	m.newRun()
}

func (m *Model) save() {
	path := m.cfg.Paths.Save
	if err := m.game.Save(path); err != nil {
		m.logger.Warn("save failed", "path", path, "err", err)
		m.setError(err)
		return
	}
	m.setMessage(fmt.Sprintf("Saved to %s", path))
}

func (m *Model) load() {
	path := m.cfg.Paths.Save
	if err := m.game.Load(path); err != nil {
		m.logger.Warn("load failed", "path", path, "err", err)
		m.setError(err)
		return
	}
	m.newRun()
	m.setMessage(fmt.Sprintf("Loaded %s", path))
}

func (m *Model) setMessage(s string) {
	m.message = s
	m.isError = false
}

func (m *Model) setError(err error) {
	m.message = err.Error()
	m.isError = true
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.game.Snapshot()

	cw, ch, ok := cellSize(s.Width, s.Height, m.width, m.height)
	if !ok {
		return m.renderTooSmall()
	}

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render("2048"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(renderStatus(s, m.best), m.width))
	b.WriteString("\n\n")

	grid := renderBoard(s, cw, ch)
	if overlay := renderOverlay(s, m.showWin, m.cfg.WinTile); overlay != "" {
		grid = lipgloss.Place(lipgloss.Width(grid), lipgloss.Height(grid),
			lipgloss.Center, lipgloss.Center, overlay,
			lipgloss.WithWhitespaceBackground(boardColor))
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, grid))
	b.WriteString("\n")

	if m.message != "" {
		style := messageStyle
		if m.isError {
			style = errorStyle
		}
		b.WriteString(centerText(style.Render(m.message), m.width))
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTooSmall shows a "window too small" message.
func (m Model) renderTooSmall() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		"Window too small\nPlease resize terminal or shrink the board with [ and {")
}

// Game returns the session driven by the model.
func (m Model) Game() *game.Game {
	return m.game
}

// Run starts the Bubble Tea program for g.
func Run(g *game.Game, store ScoreStore, cfg config.Config, rt core.RuntimeConfig, logger board.Logger) error {
	model := NewModel(g, store, cfg, rt, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
