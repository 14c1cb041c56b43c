package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/calcmaster/internal/common"
)

// WriteExport writes rendered export data to path, drawing a byte progress
// bar on progress. A nil progress writer disables the bar.
func WriteExport(progress io.Writer, path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("%w: could not write export: %v", common.ErrPersistence, err)
	}

	var dst io.Writer = f
	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = progressbar.NewOptions64(int64(len(data)),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetDescription("Exporting "+path),
			progressbar.OptionClearOnFinish(),
		)
		dst = io.MultiWriter(f, bar)
	}

	if _, err := io.Copy(dst, bytes.NewReader(data)); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: could not write export: %v", common.ErrPersistence, err)
	}
	if bar != nil {
		if err := bar.Finish(); err != nil {
			slog.Warn("Failed to finish progress bar", "error", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: could not write export: %v", common.ErrPersistence, err)
	}
	return nil
}
