package waitlog

import (
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Writer appends rows to per-park, per-day CSV logs under a base directory.
// Files are only ever created or appended to; nothing is rewritten.
type Writer struct {
	basePath string
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string) *Writer {
	if basePath == "" {
		basePath = "data"
	}
	return &Writer{basePath: basePath}
}

// Path returns the log path for a park on the calendar day of now.
func (w *Writer) Path(parkName string, now time.Time) string {
	return LogPath(w.basePath, parkName, now)
}

// Prepare makes sure the log directory exists and reports whether path already exists.
func (w *Writer) Prepare(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Append opens path for appending (creating it if needed), writes the header first when
// withHeader is set, then one record per row.
func (w *Writer) Append(path string, withHeader bool, rows []Row) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	cw := csv.NewWriter(f)
	if withHeader {
		if err := cw.Write(Header); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
