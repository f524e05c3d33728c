package board

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// maxCells bounds width*height when decoding so a corrupt header cannot
// trigger a huge allocation.
const maxCells = 1 << 16

var (
	// ErrPersistence wraps every failure to open, read or write a save file.
	ErrPersistence = errors.New("board: persistence failure")

	// ErrCorruptSave is returned when a save file does not decode to a valid board.
	ErrCorruptSave = errors.New("board: corrupt save file")
)

// byteOrder is the on-disk integer encoding. Every field is a uint32.
var byteOrder = binary.LittleEndian

// Counters are the session values stored in a save file header.
// The engine does not track them; it only carries them to and from disk.
type Counters struct {
	Moves uint32
	Score uint32
}

// SaveFile is the decoded content of a save file.
type SaveFile struct {
	Width    uint32
	Height   uint32
	Counters Counters
	Cells    []uint32
	Depth    uint32
	History  [][]uint32 // Oldest first
}

// Save writes the board, its undo history and the given counters to path.
// The file is written next to path and renamed over it, so a failed save
// leaves any previous file intact.
func (b *Board) Save(path string, moves, score uint32) error {
	sf := SaveFile{
		Width:    uint32(b.width),
		Height:   uint32(b.height),
		Counters: Counters{Moves: moves, Score: score},
		Cells:    b.cells,
		Depth:    uint32(b.history.depth),
		History:  b.history.snapshots,
	}

	if err := writeFileAtomic(path, sf.Encode); err != nil {
		return err
	}

	b.logger.Info("saved board", "path", path, "width", b.width, "height", b.height, "history", b.history.len())
	return nil
}

// writeFileAtomic writes through encode into a temporary file in the
// directory of path, then renames it to path.
func writeFileAtomic(path string, encode func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("%w: cannot create %s: %w", ErrPersistence, path, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	w := bufio.NewWriter(f)
	if err := encode(w); err != nil {
		return fmt.Errorf("%w: cannot write %s: %w", ErrPersistence, path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: cannot write %s: %w", ErrPersistence, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: cannot close %s: %w", ErrPersistence, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: cannot replace %s: %w", ErrPersistence, path, err)
	}
	return nil
}

// Load replaces the board's dimensions, cells, undo depth and history with the
// content of path and returns the counters stored in the header. On failure the
// board is left untouched.
func (b *Board) Load(path string) (Counters, error) {
	sf, err := ReadSaveFile(path)
	if err != nil {
		return Counters{}, err
	}

	b.width = int(sf.Width)
	b.height = int(sf.Height)
	b.cells = sf.Cells
	b.history = &history{
		depth:     int(sf.Depth),
		snapshots: sf.History,
	}

	b.logger.Info("loaded board", "path", path, "width", b.width, "height", b.height,
		"depth", sf.Depth, "history", len(sf.History))
	return sf.Counters, nil
}

// ReadSaveFile opens and decodes the save file at path.
func ReadSaveFile(path string) (*SaveFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %w", ErrPersistence, path, err)
	}
	defer f.Close()

	sf, err := DecodeSaveFile(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sf, nil
}

// Encode writes the save file layout to w.
func (sf *SaveFile) Encode(w io.Writer) error {
	header := []uint32{sf.Width, sf.Height, sf.Counters.Moves, sf.Counters.Score}
	if err := binary.Write(w, byteOrder, header); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, sf.Cells); err != nil {
		return err
	}

	stack := []uint32{sf.Depth, uint32(len(sf.History))}
	if err := binary.Write(w, byteOrder, stack); err != nil {
		return err
	}
	for _, snap := range sf.History {
		if err := binary.Write(w, byteOrder, snap); err != nil {
			return err
		}
	}

	return nil
}

// DecodeSaveFile reads and validates the save file layout from r.
func DecodeSaveFile(r io.Reader) (*SaveFile, error) {
	var header [4]uint32
	if err := readFields(r, header[:], "header"); err != nil {
		return nil, err
	}

	sf := &SaveFile{
		Width:    header[0],
		Height:   header[1],
		Counters: Counters{Moves: header[2], Score: header[3]},
	}

	if sf.Width == 0 || sf.Height == 0 {
		return nil, fmt.Errorf("%w: %w: %dx%d", ErrCorruptSave, ErrInvalidDimensions, sf.Width, sf.Height)
	}
	size := uint64(sf.Width) * uint64(sf.Height)
	if size > maxCells {
		return nil, fmt.Errorf("%w: board of %dx%d exceeds %d cells", ErrCorruptSave, sf.Width, sf.Height, maxCells)
	}

	sf.Cells = make([]uint32, size)
	if err := readTiles(r, sf.Cells, "board"); err != nil {
		return nil, err
	}

	var stack [2]uint32
	if err := readFields(r, stack[:], "undo stack header"); err != nil {
		return nil, err
	}
	sf.Depth = stack[0]
	count := stack[1]
	if sf.Depth > MaxDepth {
		return nil, fmt.Errorf("%w: undo depth %d exceeds %d", ErrCorruptSave, sf.Depth, MaxDepth)
	}
	if count > sf.Depth {
		return nil, fmt.Errorf("%w: %d snapshots exceed undo depth %d", ErrCorruptSave, count, sf.Depth)
	}

	sf.History = make([][]uint32, 0, min(count, 64))
	for i := range count {
		snap := make([]uint32, size)
		if err := readTiles(r, snap, fmt.Sprintf("snapshot %d", i)); err != nil {
			return nil, err
		}
		sf.History = append(sf.History, snap)
	}

	return sf, nil
}

// readFields fills dst from r.
func readFields(r io.Reader, dst []uint32, section string) error {
	if err := binary.Read(r, byteOrder, dst); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: truncated %s", ErrCorruptSave, section)
		}
		return fmt.Errorf("%w: cannot read %s: %w", ErrPersistence, section, err)
	}
	return nil
}

// readTiles fills dst from r and rejects values that are not legal tiles.
func readTiles(r io.Reader, dst []uint32, section string) error {
	if err := readFields(r, dst, section); err != nil {
		return err
	}
	for i, v := range dst {
		if !validTile(v) {
			return fmt.Errorf("%w: %s holds invalid tile %d at index %d", ErrCorruptSave, section, v, i)
		}
	}
	return nil
}
