package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/calcmaster/internal/common"
)

// Log is an ordered, optionally capacity-bounded collection backed by a
// single JSON array file. Every mutation rewrites the whole file before
// returning. It is not safe for concurrent use.
//
// When a save fails the in-memory mutation is kept and the error, wrapping
// common.ErrPersistence, is returned to the caller.
type Log[T any] struct {
	now      func() time.Time
	logger   *slog.Logger
	path     string
	items    []T
	capacity int
}

// Option configures a Log.
type Option func(*options)

type options struct {
	now      func() time.Time
	logger   *slog.Logger
	capacity int
}

// WithCapacity bounds the log to n items. Zero means unbounded.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithClock overrides the clock used for corrupt-file backup names.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger overrides the logger used for load warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Open loads the log stored at path.
//
// A missing file yields an empty log and the file is created. A file that
// cannot be decoded is copied aside (see PreserveCorrupt), a warning is
// logged and the log starts empty; the original path is rewritten by the
// next save. A missing file that cannot be created is only logged, so Open
// fails only on an empty path.
func Open[T any](path string, opts ...Option) (*Log[T], error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty store path", common.ErrInvalidInput)
	}

	o := options{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	l := &Log[T]{
		path:     path,
		capacity: o.capacity,
		now:      o.now,
		logger:   o.logger,
	}

	var items []T
	err := ReadJSON(path, &items)
	switch {
	case err == nil:
		l.items = l.truncate(items)
	case errors.Is(err, os.ErrNotExist):
		l.items = []T{}
		if saveErr := l.Save(); saveErr != nil {
			l.logger.Warn("Could not create file", "path", path, "error", saveErr)
		}
	case errors.Is(err, ErrCorrupted):
		l.items = []T{}
		backup, backupErr := PreserveCorrupt(path, l.now())
		if backupErr != nil {
			l.logger.Warn("Could not load file, starting empty",
				"path", path, "error", err, "backup_error", backupErr)
		} else {
			l.logger.Warn("Could not load file, starting empty",
				"path", path, "error", err, "backup", backup)
		}
	default:
		l.items = []T{}
		l.logger.Warn("Could not load file, starting empty", "path", path, "error", err)
	}

	return l, nil
}

// Path returns the backing file location.
func (l *Log[T]) Path() string {
	return l.path
}

// Len returns the number of items.
func (l *Log[T]) Len() int {
	return len(l.items)
}

// Items returns a copy of the items in stored order.
func (l *Log[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// At returns the item at index i.
func (l *Log[T]) At(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, fmt.Errorf("%w: %d (have %d)", common.ErrOutOfRange, i, len(l.items))
	}
	return l.items[i], nil
}

// Prepend inserts item at the front, evicting the oldest items beyond capacity.
func (l *Log[T]) Prepend(item T) error {
	items := make([]T, 0, len(l.items)+1)
	items = append(items, item)
	items = append(items, l.items...)
	l.items = l.truncate(items)
	return l.Save()
}

// Append adds item at the end. When the log is full the item is rejected
// with common.ErrOutOfRange.
func (l *Log[T]) Append(item T) error {
	if l.capacity > 0 && len(l.items) >= l.capacity {
		return fmt.Errorf("%w: log is full (%d items)", common.ErrOutOfRange, l.capacity)
	}
	l.items = append(l.items, item)
	return l.Save()
}

// Update applies fn to the item at index i and saves.
func (l *Log[T]) Update(i int, fn func(*T)) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: %d (have %d)", common.ErrOutOfRange, i, len(l.items))
	}
	fn(&l.items[i])
	return l.Save()
}

// RemoveAt deletes the item at index i, preserving the order of the rest.
func (l *Log[T]) RemoveAt(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, fmt.Errorf("%w: %d (have %d)", common.ErrOutOfRange, i, len(l.items))
	}
	removed := l.items[i]
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	return removed, l.Save()
}

// Replace swaps the whole collection, applying the capacity bound.
func (l *Log[T]) Replace(items []T) error {
	cp := make([]T, len(items))
	copy(cp, items)
	l.items = l.truncate(cp)
	return l.Save()
}

// Save writes the full collection to disk.
func (l *Log[T]) Save() error {
	if err := WriteJSON(l.path, l.items); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return nil
}

func (l *Log[T]) truncate(items []T) []T {
	if items == nil {
		return []T{}
	}
	if l.capacity > 0 && len(items) > l.capacity {
		return items[:l.capacity]
	}
	return items
}
