package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

type fakeStats struct {
	stats   []storage.Stats
	scores  map[storage.Size][]storage.ScoreEntry
	queried []storage.Size
	err     error
}

func (f *fakeStats) TopScores(size storage.Size, limit int) ([]storage.ScoreEntry, error) {
	f.queried = append(f.queried, size)
	if f.err != nil {
		return nil, f.err
	}
	return f.scores[size], nil
}

func (f *fakeStats) GetAllStats() ([]storage.Stats, error) {
	return f.stats, nil
}

func newFakeStats() *fakeStats {
	small := storage.Size{Width: 4, Height: 4}
	big := storage.Size{Width: 5, Height: 5}
	created := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	return &fakeStats{
		stats: []storage.Stats{
			{Size: small, GamesCount: 2, HighScore: 1200, BestTile: 128},
			{Size: big, GamesCount: 1, Wins: 1, HighScore: 30000, BestTile: 2048},
		},
		scores: map[storage.Size][]storage.ScoreEntry{
			small: {
				{ID: 1, Result: storage.Result{Size: small, Score: 1200, Moves: 140, MaxTile: 128}, CreatedAt: created},
				{ID: 2, Result: storage.Result{Size: small, Score: 800, Moves: 90, MaxTile: 64}, CreatedAt: created},
			},
			big: {
				{ID: 3, Result: storage.Result{Size: big, Score: 30000, Moves: 1500, MaxTile: 2048, Won: true}, CreatedAt: created},
			},
		},
	}
}

func updateScoreboard(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update() returned %T, want ScoreboardModel", next)
	}
	return sm
}

func TestScoreboardStartsOnInitialSize(t *testing.T) {
	store := newFakeStats()
	m := NewScoreboardModel(store, storage.Size{Width: 5, Height: 5}, 100, 30)

	view := m.View()
	if !strings.Contains(view, "HIGH SCORES - 5x5") {
		t.Errorf("view does not show the 5x5 board:\n%s", view)
	}
	if !strings.Contains(view, "2048*") {
		t.Errorf("view does not mark the won run:\n%s", view)
	}
	if len(store.queried) != 1 || store.queried[0] != (storage.Size{Width: 5, Height: 5}) {
		t.Errorf("queried = %v, want [5x5]", store.queried)
	}
}

func TestScoreboardCyclesSizes(t *testing.T) {
	store := newFakeStats()
	m := NewScoreboardModel(store, storage.Size{Width: 5, Height: 5}, 100, 30)

	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if st, _ := m.current(); st.Size != (storage.Size{Width: 4, Height: 4}) {
		t.Errorf("after right size = %v, want 4x4", st.Size)
	}
	if len(m.scores) != 2 {
		t.Errorf("len(scores) = %d, want 2", len(m.scores))
	}

	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if st, _ := m.current(); st.Size != (storage.Size{Width: 5, Height: 5}) {
		t.Errorf("after left size = %v, want 5x5", st.Size)
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(&fakeStats{}, storage.Size{Width: 4, Height: 4}, 60, 20)

	view := m.View()
	if !strings.Contains(view, "No scores recorded yet.") {
		t.Errorf("empty scoreboard view:\n%s", view)
	}

	// Cycling with no sizes must not panic
	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if _, ok := m.current(); ok {
		t.Error("current() ok = true on an empty store")
	}
}

func TestScoreboardShowsError(t *testing.T) {
	store := newFakeStats()
	store.err = errors.New("storage: cannot query scores: disk gone")
	m := NewScoreboardModel(store, storage.Size{Width: 4, Height: 4}, 100, 30)

	if !strings.Contains(m.View(), "disk gone") {
		t.Errorf("view does not show the error:\n%s", m.View())
	}
}

func TestScoreboardQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(msg.String(), func(t *testing.T) {
			m := NewScoreboardModel(newFakeStats(), storage.Size{Width: 4, Height: 4}, 100, 30)
			m = updateScoreboard(t, m, msg)
			if !m.Done() {
				t.Errorf("%s did not leave the scoreboard", msg)
			}
			if m.View() != "" {
				t.Errorf("View() after quit = %q, want empty", m.View())
			}
		})
	}
}

func TestScoreRows(t *testing.T) {
	rows := scoreRows([]storage.ScoreEntry{
		{Result: storage.Result{Score: 5000, Moves: 400, MaxTile: 2048, Won: true}},
		{Result: storage.Result{Score: 300, Moves: 60, MaxTile: 64}},
	})

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0][0] != "1" || rows[0][1] != "5000" || rows[0][3] != "2048*" {
		t.Errorf("rows[0] = %v, want rank 1, score 5000, starred tile", rows[0])
	}
	if rows[1][0] != "2" || rows[1][2] != "60" || rows[1][3] != "64" {
		t.Errorf("rows[1] = %v, want rank 2, 60 moves, tile 64", rows[1])
	}
}
