package board

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeWords(t *testing.T, path string, words ...uint32) {
	t.Helper()
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, words); err != nil {
		t.Fatalf("binary.Write() failed: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.bin")

	src := mustRows(t, 3,
		[]uint32{2, 0, 2},
		[]uint32{4, 4, 0},
	)
	src.MoveHorizontally(false)
	src.MoveVertically(true)

	if err := src.Save(path, 7, 42); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	dst, err := New(Options{Width: 4, Height: 4, Depth: DefaultDepth, Rand: &seqSource{}})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	counters, err := dst.Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if counters != (Counters{Moves: 7, Score: 42}) {
		t.Errorf("Load() counters = %+v, want moves 7 score 42", counters)
	}
	if dst.W() != 3 || dst.H() != 2 {
		t.Errorf("loaded dimensions = %dx%d, want 3x2", dst.W(), dst.H())
	}
	if !slices.Equal(dst.Tiles(), src.Tiles()) {
		t.Errorf("loaded tiles = %v, want %v", dst.Tiles(), src.Tiles())
	}
	if dst.Depth() != 3 {
		t.Errorf("loaded depth = %d, want 3", dst.Depth())
	}
	if dst.HistoryLen() != src.HistoryLen() {
		t.Fatalf("loaded history = %d snapshots, want %d", dst.HistoryLen(), src.HistoryLen())
	}

	// History order survives: undoing on both sides stays in lockstep.
	for dst.CanUndo() {
		src.Undo()
		dst.Undo()
		if !slices.Equal(dst.Tiles(), src.Tiles()) {
			t.Fatalf("after undo loaded tiles = %v, want %v", dst.Tiles(), src.Tiles())
		}
	}
}

func TestSaveLayout(t *testing.T) {
	sf := SaveFile{
		Width:    2,
		Height:   1,
		Counters: Counters{Moves: 3, Score: 8},
		Cells:    []uint32{8, 0},
		Depth:    5,
		History:  [][]uint32{{4, 4}},
	}

	var buf bytes.Buffer
	if err := sf.Encode(&buf); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	want := []uint32{2, 1, 3, 8, 8, 0, 5, 1, 4, 4}
	got := make([]uint32, buf.Len()/4)
	if err := binary.Read(bytes.NewReader(buf.Bytes()), binary.LittleEndian, got); err != nil {
		t.Fatalf("binary.Read() failed: %v", err)
	}
	if !slices.Equal(got, want) {
		t.Errorf("encoded words = %v, want %v", got, want)
	}
	if buf.Len() != len(want)*4 {
		t.Errorf("encoded length = %d bytes, want %d", buf.Len(), len(want)*4)
	}
}

func TestLoadMissingFileKeepsBoard(t *testing.T) {
	b := mustRows(t, DefaultDepth, []uint32{2, 4}, []uint32{0, 8})
	b.MoveHorizontally(false)
	before := b.Tiles()

	_, err := b.Load(filepath.Join(t.TempDir(), "missing.bin"))
	if err == nil {
		t.Fatal("Load() of a missing file should fail")
	}
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("Load() error = %v, want ErrPersistence", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want fs.ErrNotExist", err)
	}
	if errors.Is(err, ErrOutOfRange) {
		t.Error("I/O failures must be distinguishable from bounds errors")
	}

	if !slices.Equal(b.Tiles(), before) || b.W() != 2 || b.H() != 2 || b.HistoryLen() != 1 {
		t.Error("failed Load() must leave the board untouched")
	}
}

func TestLoadRejectsCorruptFiles(t *testing.T) {
	tests := []struct {
		name  string
		words []uint32
		extra error
	}{
		{"zero width", []uint32{0, 4, 0, 0}, ErrInvalidDimensions},
		{"zero height", []uint32{4, 0, 0, 0}, ErrInvalidDimensions},
		{"truncated board", []uint32{2, 2, 0, 0, 2, 2}, nil},
		{"missing undo header", []uint32{1, 1, 0, 0, 2}, nil},
		{"history beyond depth", []uint32{1, 1, 0, 0, 2, 1, 2, 2, 2}, nil},
		{"truncated snapshot", []uint32{2, 1, 0, 0, 2, 0, 3, 1, 2}, nil},
		{"invalid tile", []uint32{1, 1, 0, 0, 3, 0, 0}, nil},
		{"oversized board", []uint32{1 << 10, 1 << 10, 0, 0}, nil},
		{"oversized undo depth", []uint32{2, 2, 0, 0, 2, 0, 2, 0, 0xFFFFFFFF, 0}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "corrupt.bin")
			writeWords(t, path, tt.words...)

			b := mustRows(t, DefaultDepth, []uint32{2, 0})
			_, err := b.Load(path)

			if !errors.Is(err, ErrCorruptSave) {
				t.Fatalf("Load() error = %v, want ErrCorruptSave", err)
			}
			if tt.extra != nil && !errors.Is(err, tt.extra) {
				t.Errorf("Load() error = %v, want %v", err, tt.extra)
			}
			if b.W() != 2 || b.H() != 1 {
				t.Errorf("failed Load() changed dimensions to %dx%d", b.W(), b.H())
			}
		})
	}
}

func TestLoadedDepthWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depth.bin")
	writeWords(t, path, 2, 1, 0, 0, 2, 2, 2, 0)

	b := mustRows(t, 9, []uint32{0, 0})
	if _, err := b.Load(path); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if b.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2 from the file", b.Depth())
	}

	b.MoveHorizontally(false)
	b.MoveHorizontally(true)
	b.MoveHorizontally(false)
	if b.HistoryLen() != 2 {
		t.Errorf("HistoryLen() = %d, want 2 (bounded by loaded depth)", b.HistoryLen())
	}
}

func TestSaveToUnwritablePath(t *testing.T) {
	b := mustRows(t, DefaultDepth, []uint32{2, 0})

	err := b.Save(filepath.Join(t.TempDir(), "missing", "dir", "game.bin"), 0, 0)
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("Save() error = %v, want ErrPersistence", err)
	}
}

func TestFailedSaveKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.bin")

	b := mustRows(t, DefaultDepth, []uint32{2, 4})
	if err := b.Save(path, 1, 4); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}

	boom := errors.New("disk full")
	err = writeFileAtomic(path, func(w io.Writer) error {
		w.Write([]byte{1, 2, 3})
		return boom
	})
	if !errors.Is(err, ErrPersistence) || !errors.Is(err, boom) {
		t.Errorf("writeFileAtomic() error = %v, want ErrPersistence wrapping the encode error", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !bytes.Equal(after, before) {
		t.Errorf("failed save changed the file: %v -> %v", before, after)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries after a failed save, want 1", len(entries))
	}
}

func TestSaveOverwritesPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.bin")

	b := mustRows(t, DefaultDepth, []uint32{2, 4})
	if err := b.Save(path, 1, 4); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := b.Save(path, 9, 40); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}

	sf, err := ReadSaveFile(path)
	if err != nil {
		t.Fatalf("ReadSaveFile() failed: %v", err)
	}
	if sf.Counters != (Counters{Moves: 9, Score: 40}) {
		t.Errorf("counters = %+v, want moves 9 score 40", sf.Counters)
	}
}
