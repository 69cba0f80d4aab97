package leaderboard

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/lox/minesweeper/internal/fileutil"
)

// FileSuffix is appended to the difficulty key to name its leaderboard file
const FileSuffix = "_leaderboard.csv"

var header = []string{"player_name", "elapsed_seconds"}

// FileStore keeps one CSV file per difficulty in a directory
type FileStore struct {
	dir string
}

// NewFileStore returns a store writing <key>_leaderboard.csv files under dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file backing key
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+FileSuffix)
}

// Load reads the file for key. A missing file holds no entries.
func (s *FileStore) Load(key string) ([]Entry, error) {
	f, err := os.Open(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	defer f.Close()

	entries, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path(key), err)
	}
	return entries, nil
}

// Save atomically replaces the file for key
func (s *FileStore) Save(key string, entries []Entry) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return fileutil.WriteAtomic(s.Path(key), 0o644, func(w io.Writer) error {
		return WriteCSV(w, entries)
	})
}

// Remove deletes the file for key if it exists
func (s *FileStore) Remove(key string) error {
	return fileutil.RemoveIfExists(s.Path(key))
}

// ReadCSV parses a leaderboard file. A missing or wrong header, or a line
// that is not valid CSV, makes the whole file corrupt. Rows with the wrong
// number of fields or a time that is not a positive integer are skipped.
func ReadCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	got, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	if !slices.Equal(got, header) {
		return nil, fmt.Errorf("%w: unexpected header %q", ErrCorruptData, strings.Join(got, ","))
	}

	var entries []Entry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
		}
		if len(record) != len(header) {
			continue
		}
		seconds, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil || seconds <= 0 {
			continue
		}
		entries = append(entries, Entry{Name: record[0], Seconds: seconds})
	}
	return entries, nil
}

// WriteCSV writes entries with a header row
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Name, strconv.Itoa(e.Seconds)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MemoryStore keeps entries in memory
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]Entry)}
}

func (s *MemoryStore) Load(key string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries[key]), nil
}

func (s *MemoryStore) Save(key string, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = slices.Clone(entries)
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
