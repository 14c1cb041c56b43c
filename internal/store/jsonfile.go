// Package store provides write-through JSON file persistence.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/calcmaster/internal/common"
)

// ErrCorrupted is returned by ReadJSON when the file exists but cannot be decoded.
var ErrCorrupted = errors.New("file is not valid JSON")

const (
	dirPerm  = 0750
	filePerm = 0600
)

// ReadJSON decodes the file at path into v.
// It returns an error wrapping os.ErrNotExist when the file is absent and
// ErrCorrupted when it cannot be decoded.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupted, path, err)
	}
	return nil
}

// WriteJSON encodes v with a two space indent and atomically replaces the
// file at path: the data goes to a temp file in the same directory which is
// then renamed over the target.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	// A reader holding the target open can make the rename fail briefly.
	err = common.WithRetry(context.Background(), func() error {
		err := os.Rename(tmp, path)
		if errors.Is(err, os.ErrNotExist) {
			return common.Permanent(err)
		}
		return err
	}, common.RetryOptions{})
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// PreserveCorrupt copies an unreadable file aside so that the next save can
// overwrite the original path without losing its contents. It returns the
// backup location.
func PreserveCorrupt(path string, now time.Time) (string, error) {
	backup := fmt.Sprintf("%s.corrupt-%s", path, now.Format("20060102-150405"))

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open corrupt file: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(backup, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to copy corrupt file: %w", err)
	}

	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close backup: %w", err)
	}

	return backup, nil
}
