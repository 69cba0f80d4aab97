// Package leaderboard keeps the best completion times for each difficulty.
//
// A Leaderboard holds one ranked list per difficulty key, sorted ascending by
// time and capped at a configurable size. Entries with equal times keep their
// submission order. Persistence goes through a Store, so tests can run
// against NewMemoryStore while the game uses NewFileStore.
package leaderboard

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

const (
	// DefaultLimit is the number of entries kept per difficulty
	DefaultLimit = 10

	// MaxSeconds is the longest time a leaderboard records
	MaxSeconds = 999

	// MaxNameLength is the longest player name accepted, in runes
	MaxNameLength = 32

	// Anonymous replaces an empty player name
	Anonymous = "Anonymous"
)

var (
	// ErrCorruptData marks leaderboard data that could not be read. It is
	// logged and the leaderboard is treated as empty.
	ErrCorruptData = errors.New("corrupt leaderboard data")

	// ErrInvalidInput is returned for a player name that cannot be stored
	ErrInvalidInput = errors.New("invalid input")
)

// Entry is one ranked completion time
type Entry struct {
	Name    string
	Seconds int
}

// Store persists the entries of one difficulty at a time
type Store interface {
	// Load returns the stored entries for key, or none if nothing is stored
	Load(key string) ([]Entry, error)
	// Save replaces everything stored for key
	Save(key string, entries []Entry) error
	// Remove deletes everything stored for key
	Remove(key string) error
}

// Leaderboard ranks completion times per difficulty key
type Leaderboard struct {
	store  Store
	limit  int
	logger *log.Logger
	boards map[string][]Entry
}

// Option configures a Leaderboard
type Option func(*Leaderboard)

// WithLimit sets how many entries are kept per difficulty
func WithLimit(n int) Option {
	return func(lb *Leaderboard) {
		if n > 0 {
			lb.limit = n
		}
	}
}

// WithLogger sets the logger used to report unreadable data
func WithLogger(logger *log.Logger) Option {
	return func(lb *Leaderboard) {
		lb.logger = logger
	}
}

// New creates a leaderboard backed by store
func New(store Store, opts ...Option) *Leaderboard {
	lb := &Leaderboard{
		store:  store,
		limit:  DefaultLimit,
		logger: log.New(io.Discard),
		boards: make(map[string][]Entry),
	}
	for _, opt := range opts {
		opt(lb)
	}
	lb.logger = lb.logger.WithPrefix("leaderboard")
	return lb
}

// Limit returns the number of entries kept per difficulty
func (lb *Leaderboard) Limit() int {
	return lb.limit
}

// Load reads the given difficulties from the store, replacing what is held
// in memory. Missing data loads as an empty list; unreadable data is logged
// and also loads as an empty list, so loading never fails.
func (lb *Leaderboard) Load(keys ...string) {
	for _, key := range keys {
		lb.load(key)
	}
}

func (lb *Leaderboard) load(key string) []Entry {
	entries, err := lb.store.Load(key)
	if err != nil {
		if !errors.Is(err, ErrCorruptData) {
			err = fmt.Errorf("%w: %w", ErrCorruptData, err)
		}
		lb.logger.Warn("Treating leaderboard as empty", "difficulty", key, "error", err)
		entries = nil
	}
	ranked := lb.rank(entries)
	lb.boards[key] = ranked
	lb.logger.Debug("Loaded leaderboard", "difficulty", key, "entries", len(ranked))
	return ranked
}

// entries returns the ranked list for key, loading it on first use
func (lb *Leaderboard) entries(key string) []Entry {
	if entries, ok := lb.boards[key]; ok {
		return entries
	}
	return lb.load(key)
}

// Submit records a completion time and saves the difficulty's list. Times
// are clamped to [1, MaxSeconds]. The list in memory only changes once the
// store has accepted it.
func (lb *Leaderboard) Submit(key, name string, seconds int) error {
	if key == "" {
		return fmt.Errorf("%w: empty difficulty key", ErrInvalidInput)
	}
	name, err := NormalizeName(name)
	if err != nil {
		return err
	}

	entries := append(slices.Clone(lb.entries(key)), Entry{Name: name, Seconds: clampSeconds(seconds)})
	entries = lb.rank(entries)

	if err := lb.store.Save(key, entries); err != nil {
		return fmt.Errorf("failed to save %s leaderboard: %w", key, err)
	}
	lb.boards[key] = entries

	lb.logger.Info("Recorded time", "difficulty", key, "name", name, "seconds", seconds)
	return nil
}

// Qualifies reports whether a time would make the difficulty's list
func (lb *Leaderboard) Qualifies(key string, seconds int) bool {
	entries := lb.entries(key)
	if len(entries) < lb.limit {
		return true
	}
	return clampSeconds(seconds) < entries[len(entries)-1].Seconds
}

// TopEntries yields up to limit entries for key, best first. A limit of zero
// or less yields every entry. The sequence reads the current list each time
// it is iterated.
func (lb *Leaderboard) TopEntries(key string, limit int) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for i, entry := range lb.entries(key) {
			if limit > 0 && i >= limit {
				return
			}
			if !yield(entry) {
				return
			}
		}
	}
}

// Save writes the given difficulties back to the store
func (lb *Leaderboard) Save(keys ...string) error {
	var errs []error
	for _, key := range keys {
		if err := lb.store.Save(key, lb.entries(key)); err != nil {
			errs = append(errs, fmt.Errorf("failed to save %s leaderboard: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Reset deletes the stored entries of the given difficulties
func (lb *Leaderboard) Reset(keys ...string) error {
	var errs []error
	for _, key := range keys {
		if err := lb.store.Remove(key); err != nil {
			errs = append(errs, fmt.Errorf("failed to reset %s leaderboard: %w", key, err))
			continue
		}
		lb.boards[key] = nil
		lb.logger.Info("Reset leaderboard", "difficulty", key)
	}
	return errors.Join(errs...)
}

// rank normalises entries, sorts them stably by time and truncates the list
func (lb *Leaderboard) rank(entries []Entry) []Entry {
	ranked := make([]Entry, 0, min(len(entries), lb.limit))
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			e.Name = Anonymous
		}
		e.Seconds = clampSeconds(e.Seconds)
		ranked = append(ranked, e)
	}
	slices.SortStableFunc(ranked, func(a, b Entry) int {
		return a.Seconds - b.Seconds
	})
	if len(ranked) > lb.limit {
		ranked = ranked[:lb.limit]
	}
	return ranked
}

// NormalizeName trims a player name and checks it can be stored. An empty
// name becomes Anonymous. Names holding the field delimiter, quotes or line
// breaks, or longer than MaxNameLength, fail with ErrInvalidInput.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return Anonymous, nil
	case !utf8.ValidString(name):
		return "", fmt.Errorf("%w: name is not valid UTF-8", ErrInvalidInput)
	case strings.ContainsAny(name, ",\"\r\n"):
		return "", fmt.Errorf("%w: name %q contains a comma, quote or line break", ErrInvalidInput, name)
	case utf8.RuneCountInString(name) > MaxNameLength:
		return "", fmt.Errorf("%w: name longer than %d characters", ErrInvalidInput, MaxNameLength)
	}
	return name, nil
}

func clampSeconds(seconds int) int {
	return max(1, min(seconds, MaxSeconds))
}
